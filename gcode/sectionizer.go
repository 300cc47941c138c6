package gcode

import (
	"fmt"
	"strings"
)

const (
	toolchangeClose     = "; custom gcode end: toolchange_gcode"
	layerChangeSentinel = ";LAYER_CHANGE"
	layerGcodeOpen      = "; custom gcode: layer_gcode"
	layerGcodeClose     = "; custom gcode end: layer_gcode"
	startGcodeClose     = "; custom gcode end: start_gcode"
)

// sectionize tokenizes the middle region into the typed, linked section
// list described in spec §4.5. It assumes at least one toolchange_gcode
// block is present (callers short-circuit before reaching this stage
// when there is none — spec §6).
func sectionize(lines []string) (*sectionList, error) {
	list := newSectionList()

	currentTool, err := findInitialTool(lines)
	if err != nil {
		return nil, err
	}

	initialTempFound := false
	initialToolchangeFound := false

	i := 0
	for i < len(lines) {
		line := lines[i]
		switch {
		case strings.HasPrefix(line, markerStartGcode):
			end := indexOfPrefix(lines, i, startGcodeClose)
			if end < 0 {
				return nil, fmt.Errorf("gcode: unterminated %q block", markerStartGcode)
			}
			idx := list.PushBack(cloneLines(lines[i:end+1]), currentTool)
			list.at(idx).Kind = KindStartGcode
			i = end + 1

		case strings.HasPrefix(line, "G1"):
			end := i
			for end < len(lines) && strings.HasPrefix(lines[end], "G1") {
				end++
			}
			idx := list.PushBack(cloneLines(lines[i:end]), currentTool)
			list.at(idx).Kind = KindGcode
			i = end

		case strings.HasPrefix(line, toolchangeOpen):
			end := indexOfPrefix(lines, i, toolchangeClose)
			if end < 0 {
				return nil, fmt.Errorf("gcode: unterminated %q block", toolchangeOpen)
			}
			block := cloneLines(lines[i : end+1])
			idx := list.PushBack(block, currentTool)
			sec := list.at(idx)
			sec.Kind = KindToolchange
			if !initialToolchangeFound {
				sec.InitialToolchange = true
				initialToolchangeFound = true
			}
			if nt, ok := findDirectiveInt(block, "NEXT_TOOL="); ok {
				currentTool = nt
			}
			i = end + 1

		case strings.HasPrefix(line, layerChangeSentinel):
			end := i + 2
			if end >= len(lines) {
				return nil, fmt.Errorf("gcode: truncated %q block", layerChangeSentinel)
			}
			idx := list.PushBack(cloneLines(lines[i:end+1]), currentTool)
			list.at(idx).Kind = KindLayerChangeComment
			i = end + 1

		case strings.HasPrefix(line, layerGcodeOpen):
			end := indexOfPrefix(lines, i, layerGcodeClose)
			if end < 0 {
				return nil, fmt.Errorf("gcode: unterminated %q block", layerGcodeOpen)
			}
			idx := list.PushBack(cloneLines(lines[i:end+1]), currentTool)
			list.at(idx).Kind = KindLayerChangeGcode
			i = end + 1

		case isTempLine(line):
			end := i
			for end < len(lines) && isTempLine(lines[end]) {
				end++
			}
			idx := list.PushBack(cloneLines(lines[i:end]), currentTool)
			if !initialTempFound {
				list.at(idx).Kind = KindInitialTemp
				initialTempFound = true
			} else {
				list.at(idx).Kind = KindSecondLayerTemp
			}
			i = end

		default:
			idx := list.PushBack([]string{line}, currentTool)
			list.at(idx).Kind = KindOther
			i++
		}
	}

	return list, nil
}

func isTempLine(line string) bool {
	return strings.HasPrefix(line, "M104") ||
		strings.HasPrefix(line, "M109") ||
		strings.HasPrefix(line, "M140") ||
		strings.HasPrefix(line, "M190")
}

// indexOfPrefix returns the index >= start of the first line with the
// given prefix, or -1 if none is found.
func indexOfPrefix(lines []string, start int, prefix string) int {
	for i := start; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], prefix) {
			return i
		}
	}
	return -1
}

// findDirectiveInt scans lines for the first one starting with prefix
// and parses the integer that follows it.
func findDirectiveInt(lines []string, prefix string) (int, bool) {
	for _, l := range lines {
		if strings.HasPrefix(l, prefix) {
			v, err := parseDirectiveInt(l, prefix)
			if err != nil {
				return 0, false
			}
			return v, true
		}
	}
	return 0, false
}

// findInitialTool scans forward for the first toolchange_gcode block and
// returns the tool number from its interior NEXT_TOOL= directive.
func findInitialTool(lines []string) (int, error) {
	start := indexOfPrefix(lines, 0, toolchangeOpen)
	if start < 0 {
		return 0, fmt.Errorf("gcode: no %q block found", toolchangeOpen)
	}
	end := indexOfPrefix(lines, start, toolchangeClose)
	if end < 0 {
		return 0, fmt.Errorf("gcode: unterminated %q block", toolchangeOpen)
	}
	tool, ok := findDirectiveInt(lines[start:end+1], "NEXT_TOOL=")
	if !ok {
		return 0, fmt.Errorf("gcode: no NEXT_TOOL= directive in initial %q block", toolchangeOpen)
	}
	return tool, nil
}

func cloneLines(lines []string) []string {
	return append([]string(nil), lines...)
}
