package gcode

import "fmt"

// rewriteToolchanges scores every non-skipped TOOLCHANGE section with
// timeToolchange, decrementing scoreTracker by the same amount, extracts
// its CURRENT_TOOL=/NEXT_TOOL= directives into OutgoingTool/IncomingTool,
// and replaces its lines with the canonical temperature-set, tool-select,
// verify sequence (spec §4.8).
//
// The first TOOLCHANGE section reached is left untouched whenever
// hasFirstToolchange is true: that section is the one the start rewriter
// (§4.6) just synthesized, and it already carries its own hand-built
// lines.
func rewriteToolchanges(list *sectionList, tools []ToolConfig, timeToolchange int, hasFirstToolchange bool, scoreTracker float64) (float64, int, error) {
	count := 0
	skipFirst := hasFirstToolchange
	for idx := list.Head(); idx != nilIdx; idx = list.Next(idx) {
		sec := list.at(idx)
		if sec.Kind != KindToolchange {
			continue
		}
		if skipFirst {
			skipFirst = false
			continue
		}

		outgoing, ok := findDirectiveInt(sec.Lines, "CURRENT_TOOL=")
		if !ok {
			return scoreTracker, count, fmt.Errorf("gcode: toolchange section has no CURRENT_TOOL= directive")
		}
		incoming, ok := findDirectiveInt(sec.Lines, "NEXT_TOOL=")
		if !ok {
			return scoreTracker, count, fmt.Errorf("gcode: toolchange section has no NEXT_TOOL= directive")
		}
		if outgoing < 0 || outgoing >= len(tools) || incoming < 0 || incoming >= len(tools) {
			return scoreTracker, count, fmt.Errorf("gcode: toolchange section has out-of-range tool (outgoing %d, incoming %d)", outgoing, incoming)
		}
		sec.OutgoingTool = outgoing
		sec.IncomingTool = incoming

		sec.Score = float64(timeToolchange)
		scoreTracker -= sec.Score

		firstLine := sec.Lines[0]
		lastLine := sec.Lines[len(sec.Lines)-1]

		var tempLine string
		if sec.FirstLayerTempsUsed {
			tempLine = fmt.Sprintf("M104 S%d T%d ; set tool temperature", tools[incoming].FirstLayerTemperature, incoming)
		} else {
			tempLine = fmt.Sprintf("M104 S%d T%d ; set tool temperature", tools[incoming].Temperature, incoming)
		}

		sec.Lines = []string{
			"",
			firstLine,
			tempLine,
			fmt.Sprintf("T%d ; select tool %d", incoming, incoming),
			"VERIFY_TOOL_DETECTED ASYNC=1 ; verify tool detected",
			lastLine,
			"",
		}
		count++
	}
	return scoreTracker, count, nil
}
