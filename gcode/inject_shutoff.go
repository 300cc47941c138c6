package gcode

import "fmt"

// injectShutoff finds, for every used tool that isn't still selected at
// the end of the print, the last TOOLCHANGE section that deselects it
// and inserts, as its second-to-last line, a line turning its heater
// fully off — it will not be
// selected again (spec §4.10).
func injectShutoff(list *sectionList, tools []ToolConfig) int {
	count := 0
	tailIdx := list.Head()
	for idx := list.Next(tailIdx); idx != nilIdx; idx = list.Next(idx) {
		tailIdx = idx
	}
	if tailIdx == nilIdx {
		return 0
	}

	for _, t := range tools {
		if !t.ToolUsed {
			continue
		}
		if list.at(tailIdx).Tool == t.ToolNumber {
			continue
		}
		for idx := list.Prev(tailIdx); idx != nilIdx; idx = list.Prev(idx) {
			sec := list.at(idx)
			if sec.Kind != KindToolchange || sec.OutgoingTool != t.ToolNumber {
				continue
			}
			sec.LastDeselect = true
			sec.Lines = insertBeforeLast(sec.Lines, fmt.Sprintf("M104 S0 T%d ; set tool temperature to zero since this tool is no longer used in print", t.ToolNumber))
			count++
			break
		}
	}
	return count
}

// insertBeforeLast inserts line immediately before the last element of
// lines, so that it becomes the second-to-last element.
func insertBeforeLast(lines []string, line string) []string {
	if len(lines) == 0 {
		return []string{line}
	}
	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:len(lines)-1]...)
	out = append(out, line, lines[len(lines)-1])
	return out
}
