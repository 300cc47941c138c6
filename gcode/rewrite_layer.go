package gcode

import "fmt"

// rewriteSecondLayerTransition marks every section as first- or
// other-layer depending on whether the single SECOND_LAYER_TEMP section
// has been passed yet, and rewrites that section's lines into the
// combined bed/tool temperature block used for every layer after the
// first (spec §4.7).
func rewriteSecondLayerTransition(list *sectionList, tools []ToolConfig) error {
	maxOtherLayerBedTemp := 0
	for _, t := range tools {
		if t.ToolUsed && t.BedTemperature > maxOtherLayerBedTemp {
			maxOtherLayerBedTemp = t.BedTemperature
		}
	}

	inFirstLayerTemps := true
	secondLayerIdx := nilIdx
	for idx := list.Head(); idx != nilIdx; idx = list.Next(idx) {
		sec := list.at(idx)
		if sec.Kind == KindSecondLayerTemp {
			inFirstLayerTemps = false
			secondLayerIdx = idx
		}
		if inFirstLayerTemps {
			sec.FirstLayerTempsUsed = true
		} else {
			sec.OtherLayerTempsUsed = true
		}
	}
	if secondLayerIdx == nilIdx {
		return fmt.Errorf("gcode: no SECOND_LAYER_TEMP section found")
	}

	sec := list.at(secondLayerIdx)
	if sec.Tool < 0 || sec.Tool >= len(tools) {
		return fmt.Errorf("gcode: SECOND_LAYER_TEMP section has out-of-range tool %d", sec.Tool)
	}
	sec.Lines = []string{
		"",
		"; custom gcode: second_layer_temperature",
		fmt.Sprintf("M140 S%d ; set bed temperature", maxOtherLayerBedTemp),
		fmt.Sprintf("M104 S%d T%d ; set tool temperature", tools[sec.Tool].Temperature, sec.Tool),
		"; custom gcode end: second_layer_temperature",
		"",
	}
	return nil
}
