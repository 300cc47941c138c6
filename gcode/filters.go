package gcode

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	startFilamentOpen  = "; custom gcode: start_filament_gcode"
	startFilamentClose = "; custom gcode end: start_filament_gcode"
	toolchangeOpen     = "; custom gcode: toolchange_gcode"
)

// removePreToolchangeTempDrop drops any M104 line immediately followed
// by the toolchange_gcode marker — the slicer's own pre-toolchange
// temperature drop, which this tool replaces with its own (spec §4.4).
func removePreToolchangeTempDrop(lines []string) []string {
	out := make([]string, 0, len(lines))
	for i, l := range lines {
		if strings.HasPrefix(l, "M104") && i+1 < len(lines) && strings.TrimSpace(lines[i+1]) == toolchangeOpen {
			continue
		}
		out = append(out, l)
	}
	return out
}

// removePostStartFilamentTempSet drops any M109 line immediately
// preceded by the start_filament_gcode end marker — the slicer's own
// post-toolchange temperature wait, replaced by this tool's own
// toolchange rewrite (spec §4.4).
func removePostStartFilamentTempSet(lines []string) []string {
	out := make([]string, 0, len(lines))
	for i, l := range lines {
		if strings.HasPrefix(l, "M109") && i > 0 && strings.HasPrefix(lines[i-1], startFilamentClose) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// extractStartFilamentParams parses EXTRUDER=/WARMUP_TIME=/
// WARMUP_FROM_OFF_TIME=/DORMANT_TIME= directive lines out of every
// start_filament_gcode block, applying them to the indexed tool table
// and stripping the directive lines (and the marker pair itself, if the
// block turns out to contain nothing else) from the output.
//
// This differs from the original tool's restart-to-fixed-point loop
// (spec §9, REDESIGN FLAGS): directive locations for every block are
// collected first and deletions are applied in one pass, which reaches
// the same fixed point in a single linear scan.
func extractStartFilamentParams(lines []string, tools []ToolConfig) ([]string, error) {
	toDelete := make(map[int]bool)

	for i := 0; i < len(lines); i++ {
		if !strings.HasPrefix(lines[i], startFilamentOpen) {
			continue
		}
		openIdx := i
		j := i + 1
		for j < len(lines) && !strings.HasPrefix(lines[j], startFilamentClose) {
			j++
		}
		if j >= len(lines) {
			return nil, fmt.Errorf("gcode: unterminated %q block", startFilamentOpen)
		}
		closeIdx := j
		interiorLen := closeIdx - openIdx - 1

		if interiorLen == 0 {
			toDelete[openIdx] = true
			toDelete[closeIdx] = true
			i = closeIdx
			continue
		}

		extruder, warmup, warmupFromOff, dormant := -1, -1, -1, -1
		var directiveIdxs []int
		for k := openIdx + 1; k < closeIdx; k++ {
			line := lines[k]
			var v int
			var err error
			switch {
			case strings.HasPrefix(line, "EXTRUDER="):
				v, err = parseDirectiveInt(line, "EXTRUDER=")
				extruder = v
			case strings.HasPrefix(line, "WARMUP_FROM_OFF_TIME="):
				v, err = parseDirectiveInt(line, "WARMUP_FROM_OFF_TIME=")
				warmupFromOff = v
			case strings.HasPrefix(line, "WARMUP_TIME="):
				v, err = parseDirectiveInt(line, "WARMUP_TIME=")
				warmup = v
			case strings.HasPrefix(line, "DORMANT_TIME="):
				v, err = parseDirectiveInt(line, "DORMANT_TIME=")
				dormant = v
			default:
				continue
			}
			if err != nil {
				return nil, err
			}
			directiveIdxs = append(directiveIdxs, k)
		}

		if len(directiveIdxs) == 0 {
			i = closeIdx
			continue
		}
		if extruder < 0 {
			return nil, fmt.Errorf("gcode: start_filament_gcode block has timing directives but no EXTRUDER=")
		}
		if extruder >= len(tools) {
			return nil, fmt.Errorf("gcode: EXTRUDER=%d out of range for tool count %d", extruder, len(tools))
		}

		if warmup >= 0 {
			tools[extruder].WarmupTimeS = warmup
		} else {
			tools[extruder].WarmupTimeS = defaults.WarmupTimeS
		}
		if warmupFromOff >= 0 {
			tools[extruder].WarmupFromOffTimeS = warmupFromOff
		} else {
			tools[extruder].WarmupFromOffTimeS = defaults.WarmupFromOffTimeS
		}
		if dormant >= 0 {
			tools[extruder].DormantTimeS = dormant
		} else {
			tools[extruder].DormantTimeS = defaults.DormantTimeS
		}

		for _, idx := range directiveIdxs {
			toDelete[idx] = true
		}
		if len(directiveIdxs) == interiorLen {
			toDelete[openIdx] = true
			toDelete[closeIdx] = true
		}
		i = closeIdx
	}

	if len(toDelete) == 0 {
		return lines, nil
	}
	out := make([]string, 0, len(lines)-len(toDelete))
	for idx, l := range lines {
		if toDelete[idx] {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func parseDirectiveInt(line, prefix string) (int, error) {
	v := strings.TrimSpace(strings.TrimPrefix(line, prefix))
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("gcode: parsing %s%s: %w", prefix, v, err)
	}
	return n, nil
}
