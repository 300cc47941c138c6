package gcode

import "fmt"

// rewriteStart implements the start rewriter (spec §4.6). It synthesizes
// a pre-start section ahead of the slicer's own start_gcode, removes the
// slicer's initial temperature block and first toolchange_gcode section,
// and then inserts either a first-tool temperature-wait section (tool 0
// is already selected by start_gcode) or a synthesized first-toolchange
// plus matching preheat section (some other tool goes first).
//
// It returns the score_tracker residual described in spec §4.9 — seeded
// to printTimeS-g.TimeStartGcode and decremented by any time_toolchange
// spent synthesizing a first toolchange here — and whether a first
// toolchange was synthesized, which the toolchange rewriter (§4.8) needs
// to know which TOOLCHANGE section, if any, to leave untouched.
func rewriteStart(list *sectionList, tools []ToolConfig, g GlobalConfig, printTimeS int) (scoreTracker float64, hasFirstToolchange bool, err error) {
	scoreTracker = float64(printTimeS - g.TimeStartGcode)

	maxFirstLayerBedTemp := 0
	for _, t := range tools {
		if t.ToolUsed && t.FirstLayerBedTemperature > maxFirstLayerBedTemp {
			maxFirstLayerBedTemp = t.FirstLayerBedTemperature
		}
	}

	startIdx := list.FindFirst(func(s *Section) bool { return s.Kind == KindStartGcode })
	if startIdx == nilIdx {
		return 0, false, fmt.Errorf("gcode: no START_GCODE section found")
	}
	firstTool := list.at(startIdx).Tool
	if firstTool < 0 || firstTool >= len(tools) {
		return 0, false, fmt.Errorf("gcode: first tool %d out of range for tool count %d", firstTool, len(tools))
	}

	preStart := []string{
		"; custom gcode: pre_start_gcode",
		"T0 ; select T0",
		fmt.Sprintf("M140 S%d ; set bed temperature", maxFirstLayerBedTemp),
		fmt.Sprintf("M109 S%d T0 ; set T0 temperature and wait", defaults.PreStartBootstrapTemp),
		fmt.Sprintf("M190 S%d ; set bed temperature and wait", maxFirstLayerBedTemp),
		"; custom gcode end: pre_start_gcode",
		"",
	}
	preStartIdx := list.PushFront(preStart, firstTool)
	list.at(preStartIdx).Kind = KindPreStart

	list.at(startIdx).Score = float64(g.TimeStartGcode)

	initialTempIdx := list.FindFirst(func(s *Section) bool { return s.Kind == KindInitialTemp })
	if initialTempIdx == nilIdx {
		return 0, false, fmt.Errorf("gcode: no INITIAL_TEMP section found")
	}
	list.Delete(initialTempIdx)

	firstToolchangeIdx := list.FindFirst(func(s *Section) bool { return s.Kind == KindToolchange })
	if firstToolchangeIdx == nilIdx {
		return 0, false, fmt.Errorf("gcode: no TOOLCHANGE section found")
	}
	list.Delete(firstToolchangeIdx)

	if firstTool == 0 {
		lines := []string{
			"; custom gcode: first_tool_temperature",
			fmt.Sprintf("M109 S%d T0 ; set T0 temperature and wait", tools[0].FirstLayerTemperature),
			"; custom gcode end: first_tool_temperature",
			"",
		}
		idx := list.InsertAfter(startIdx, lines, 0)
		list.at(idx).Kind = KindOther
		return scoreTracker, false, nil
	}

	hasFirstToolchange = true
	t0Used := tools[0].ToolUsed

	var lines []string
	lines = append(lines, "; custom gcode: first_tool_selection")
	if !t0Used {
		lines = append(lines, "M104 S0 T0 ; turn off T0 as it is not used in print")
	}
	lines = append(lines,
		fmt.Sprintf("T%d ; select tool %d", firstTool, firstTool),
		"; custom gcode end: first_tool_selection",
		"",
	)
	toolchangeIdx := list.InsertAfter(startIdx, lines, firstTool)
	sec := list.at(toolchangeIdx)
	sec.Kind = KindToolchange
	sec.Score = float64(g.TimeToolchange)
	sec.InitialToolchange = true
	scoreTracker -= sec.Score

	preheatLines := []string{
		"",
		fmt.Sprintf("; custom gcode: preheat_section T%d", firstTool),
		fmt.Sprintf("M104 S%d T%d ; set tool temperature to preheat", tools[firstTool].FirstLayerTemperature, firstTool),
		fmt.Sprintf("; custom gcode end: preheat_section T%d", firstTool),
		"",
	}
	preheatIdx := list.InsertBefore(startIdx, preheatLines, firstTool)
	list.at(preheatIdx).Kind = KindOther

	return scoreTracker, hasFirstToolchange, nil
}
