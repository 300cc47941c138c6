package gcode

import "fmt"

// injectPreheat walks backward from every non-initial TOOLCHANGE section
// accumulating preceding Score values until the running total would meet
// or exceed the incoming tool's warmup time, then inserts a preheat
// section immediately before whichever section tipped the balance. If
// the walk reaches the very front of the print without crossing the
// threshold, the preheat section is clamped to immediately after
// START_GCODE instead — unless the tool in question is already the
// first tool selected, which start rewriting (§4.6) already preheated
// (spec §4.12).
func injectPreheat(list *sectionList, tools []ToolConfig) (int, error) {
	count := 0
	usedCount := 0
	for _, t := range tools {
		if t.ToolUsed {
			usedCount++
		}
	}
	if usedCount <= 1 {
		return 0, nil
	}

	var toolchangeSections []int
	for idx := list.Head(); idx != nilIdx; idx = list.Next(idx) {
		sec := list.at(idx)
		if sec.Kind == KindToolchange && !sec.InitialToolchange {
			toolchangeSections = append(toolchangeSections, idx)
		}
	}

	firstTool := list.at(list.Head()).Tool

	for _, t := range tools {
		if t.ToolNumber == firstTool || !t.ToolUsed {
			continue
		}
		for _, idx := range toolchangeSections {
			if list.at(idx).IncomingTool == t.ToolNumber {
				list.at(idx).HeatFromOff = true
				break
			}
		}
	}

	startIdx := list.FindFirst(func(s *Section) bool { return s.Kind == KindStartGcode })
	if startIdx == nilIdx {
		return 0, fmt.Errorf("gcode: no START_GCODE section found")
	}

	for _, tcIdx := range toolchangeSections {
		tc := list.at(tcIdx)
		currentTool := tc.IncomingTool
		if currentTool < 0 || currentTool >= len(tools) {
			return count, fmt.Errorf("gcode: toolchange section has out-of-range incoming tool %d", currentTool)
		}

		var tempToSet int
		if tc.FirstLayerTempsUsed {
			tempToSet = tools[currentTool].FirstLayerTemperature
		} else {
			tempToSet = tools[currentTool].Temperature
		}
		var preheatTimeS int
		if tc.HeatFromOff {
			preheatTimeS = tools[currentTool].WarmupFromOffTimeS
		} else {
			preheatTimeS = tools[currentTool].WarmupTimeS
		}
		preheatLines := []string{
			"",
			fmt.Sprintf("; custom gcode: preheat_section T%d", currentTool),
			fmt.Sprintf("M104 S%d T%d ; set tool temperature to preheat", tempToSet, currentTool),
			fmt.Sprintf("; custom gcode end: preheat_section T%d", currentTool),
			"",
		}

		cur := tcIdx
		scoreTracker := 0.0
		for {
			prev := list.Prev(cur)
			if prev == nilIdx {
				break
			}
			scoreTracker += list.at(prev).Score
			if prev == list.Head() {
				if currentTool != firstTool {
					list.InsertAfter(startIdx, append([]string(nil), preheatLines...), currentTool)
					count++
				}
				break
			}
			if scoreTracker >= float64(preheatTimeS) {
				list.InsertBefore(prev, append([]string(nil), preheatLines...), currentTool)
				count++
				break
			}
			cur = prev
		}
	}
	return count, nil
}
