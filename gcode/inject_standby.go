package gcode

import "fmt"

// injectStandby walks every TOOLCHANGE section that deselects a tool and
// looks ahead to the point where that tool is reselected. If the gap is
// long enough to clear the tool's dormant_time_s, its heater is turned
// off entirely and the reselecting section is flagged HeatFromOff so the
// preheat injector (§4.12) knows to budget a from-cold warmup; otherwise
// the tool is dropped to its idle temperature, offset by
// standby_temperature_delta (spec §4.11).
//
// A section whose tool is never reselected before the end of the print
// is left untouched — there is nothing to budget a standby drop against.
func injectStandby(list *sectionList, tools []ToolConfig, standbyDelta int) (int, error) {
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

	for idx := list.Head(); idx != nilIdx; idx = list.Next(idx) {
		sec := list.at(idx)
		if sec.Kind != KindToolchange || sec.LastDeselect {
			continue
		}
		outgoing := sec.OutgoingTool
		if outgoing < 0 {
			// synthesized toolchange sections (the start rewriter's first
			// toolchange among them) never get a real outgoing tool — they
			// have nothing to drop to standby.
			continue
		}
		if outgoing >= len(tools) {
			return count, fmt.Errorf("gcode: toolchange section has out-of-range outgoing tool %d", outgoing)
		}

		scoreTracker := 0.0
		reselectIdx := nilIdx
		for j := list.Next(idx); j != nilIdx; j = list.Next(j) {
			cur := list.at(j)
			if cur.Kind == KindToolchange && cur.IncomingTool == outgoing {
				reselectIdx = j
				break
			}
			scoreTracker += cur.Score
		}
		if reselectIdx == nilIdx {
			continue
		}
		reselect := list.at(reselectIdx)

		if scoreTracker >= float64(tools[outgoing].DormantTimeS) {
			reselect.HeatFromOff = true
			sec.Lines = insertBeforeLast(sec.Lines, fmt.Sprintf("M104 S0 T%d ; turn off tool heater for now as it will not be used again soon", outgoing))
			count++
			continue
		}

		var nextToolTemp int
		if reselect.FirstLayerTempsUsed {
			nextToolTemp = tools[outgoing].FirstLayerTemperature
		} else {
			nextToolTemp = tools[outgoing].Temperature
		}
		nextToolTemp -= standbyDelta
		sec.Lines = insertBeforeLast(sec.Lines, fmt.Sprintf("M104 S%d T%d ; set tool temperature to idle temperature", nextToolTemp, outgoing))
		count++
	}
	return count, nil
}
