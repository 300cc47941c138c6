package gcode

import (
	"fmt"
	"strings"
)

// preambleParts is the result of splitting the raw input into the
// regions described in spec §4.1: a head kept verbatim at the top of
// the output, a middle region the rest of the pipeline operates on, and
// three trailers (end-of-print, print-stats, slicer-config) kept
// verbatim at the bottom.
type preambleParts struct {
	head   []string
	middle []string
	end    []string
	stats  []string
	config []string
}

const (
	markerM73         = "M73"
	markerStartGcode  = "; custom gcode: start_gcode"
	markerConfigBegin = "; SuperSlicer_config = begin"
	markerFanOff      = "M107"
)

// splitPreamble peels the head, config trailer, stats trailer, and end
// trailer off raw, leaving the middle region for the sectionizer.
// Blank lines are eliminated from the whole buffer first, matching the
// original tool's eliminate-then-split order.
func splitPreamble(raw []string) (preambleParts, error) {
	lines := eliminateBlankLines(raw)

	head, rest, err := splitHead(lines)
	if err != nil {
		return preambleParts{}, err
	}

	config, rest, err := extractConfigTrailer(rest)
	if err != nil {
		return preambleParts{}, err
	}

	stats, rest := extractStatsTrailer(rest)

	end, middle, err := extractEndTrailer(rest)
	if err != nil {
		return preambleParts{}, err
	}

	return preambleParts{
		head:   head,
		middle: middle,
		end:    end,
		stats:  stats,
		config: config,
	}, nil
}

func eliminateBlankLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}

// splitHead moves everything up to (but not including) the M73 progress
// marker, then continues moving lines up to (but not including) the
// start_gcode custom-gcode marker, into the head.
func splitHead(lines []string) (head, rest []string, err error) {
	i := 0
	for i < len(lines) && !strings.HasPrefix(lines[i], markerM73) {
		i++
	}
	if i >= len(lines) {
		return nil, nil, fmt.Errorf("gcode: no %q marker found", markerM73)
	}
	for i < len(lines) && !strings.HasPrefix(lines[i], markerStartGcode) {
		i++
	}
	if i >= len(lines) {
		return nil, nil, fmt.Errorf("gcode: no %q marker found", markerStartGcode)
	}
	return append([]string(nil), lines[:i]...), lines[i:], nil
}

// extractConfigTrailer removes the slicer-config block (from its begin
// marker through end of buffer) from the tail of lines.
func extractConfigTrailer(lines []string) (config, rest []string, err error) {
	idx := -1
	for i, l := range lines {
		if strings.HasPrefix(l, markerConfigBegin) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil, fmt.Errorf("gcode: no %q marker found", markerConfigBegin)
	}
	return append([]string(nil), lines[idx:]...), append([]string(nil), lines[:idx]...), nil
}

// extractStatsTrailer pops comment/blank lines off the tail of lines
// into the print-stats trailer, restoring their original order.
func extractStatsTrailer(lines []string) (stats, rest []string) {
	end := len(lines)
	for end > 0 {
		l := lines[end-1]
		if strings.HasPrefix(l, "; ") || strings.TrimSpace(l) == "" {
			end--
			continue
		}
		break
	}
	stats = append([]string(nil), lines[end:]...)
	rest = append([]string(nil), lines[:end]...)
	return stats, rest
}

// extractEndTrailer finds the first fan-off command and splits
// everything from there onward into the end trailer.
func extractEndTrailer(lines []string) (end, middle []string, err error) {
	idx := -1
	for i, l := range lines {
		if strings.HasPrefix(l, markerFanOff) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil, fmt.Errorf("gcode: no %q marker found", markerFanOff)
	}
	return append([]string(nil), lines[idx:]...), append([]string(nil), lines[:idx]...), nil
}
