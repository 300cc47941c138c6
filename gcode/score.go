package gcode

// scoreGcodeBlocks distributes the residual scoreTracker across every
// GCODE section in proportion to its share of the total GCODE line
// count, approximating how long each block of prints takes relative to
// the others (spec §4.9).
func scoreGcodeBlocks(list *sectionList, scoreTracker float64) {
	totalLines := 0
	for idx := list.Head(); idx != nilIdx; idx = list.Next(idx) {
		sec := list.at(idx)
		if sec.Kind == KindGcode {
			totalLines += len(sec.Lines)
		}
	}
	if totalLines == 0 {
		return
	}
	for idx := list.Head(); idx != nilIdx; idx = list.Next(idx) {
		sec := list.at(idx)
		if sec.Kind == KindGcode {
			sec.Score = (float64(len(sec.Lines)) / float64(totalLines)) * scoreTracker
		}
	}
}
