package gcode

import (
	"fmt"
	"strconv"
	"strings"
)

// parsePrintStats reads the print-stats trailer for the layer count and
// the slicer's estimated print duration (spec §4.3).
func parsePrintStats(lines []string) (PrintStats, error) {
	var stats PrintStats

	found := false
	for _, l := range lines {
		if idx := strings.Index(l, "layer count:"); idx >= 0 {
			v := strings.TrimSpace(l[idx+len("layer count:"):])
			n, err := strconv.Atoi(v)
			if err != nil {
				return stats, fmt.Errorf("gcode: parsing layer count %q: %w", v, err)
			}
			stats.LayerCount = n
			found = true
			break
		}
	}
	if !found {
		return stats, fmt.Errorf("gcode: no layer count line in print stats")
	}

	timeLine := ""
	for _, l := range lines {
		if strings.Contains(l, "estimated printing time") {
			timeLine = l
			break
		}
	}
	if timeLine == "" {
		return stats, fmt.Errorf("gcode: no estimated printing time line in print stats")
	}
	eq := strings.Index(timeLine, "=")
	if eq < 0 {
		return stats, fmt.Errorf("gcode: malformed estimated printing time line %q", timeLine)
	}
	durStr := strings.TrimSpace(timeLine[eq+1:])

	seconds, err := parsePrintDuration(durStr)
	if err != nil {
		return stats, err
	}
	stats.PrintTimeS = seconds
	return stats, nil
}

// parsePrintDuration parses "<mins>m <secs>s" or "<secs>s" into seconds.
func parsePrintDuration(s string) (int, error) {
	minutes := 0
	seconds := 0
	if strings.Contains(s, "m") {
		parts := strings.SplitN(s, "m", 2)
		m, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return 0, fmt.Errorf("gcode: parsing minutes in %q: %w", s, err)
		}
		minutes = m
		secPart := strings.TrimSpace(parts[1])
		secPart = strings.TrimSuffix(strings.TrimSpace(secPart), "s")
		sec, err := strconv.Atoi(strings.TrimSpace(secPart))
		if err != nil {
			return 0, fmt.Errorf("gcode: parsing seconds in %q: %w", s, err)
		}
		seconds = sec
	} else {
		secPart := strings.TrimSuffix(strings.TrimSpace(s), "s")
		sec, err := strconv.Atoi(strings.TrimSpace(secPart))
		if err != nil {
			return 0, fmt.Errorf("gcode: parsing seconds in %q: %w", s, err)
		}
		seconds = sec
	}
	return minutes*60 + seconds, nil
}
