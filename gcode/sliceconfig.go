package gcode

import (
	"fmt"
	"strconv"
	"strings"
)

// parseSliceConfig reads the slicer-config trailer and returns the
// global parameters plus an indexed per-tool config table, sized by the
// comma-arity of bed_temperature (spec §4.2).
func parseSliceConfig(lines []string) (GlobalConfig, []ToolConfig, error) {
	var g GlobalConfig

	if v, ok := configInt(lines, "standby_temperature_delta"); ok {
		g.StandbyTemperatureDelta = v
	}
	if v, ok := configInt(lines, "time_start_gcode"); ok {
		g.TimeStartGcode = v
	}
	if v, ok := configInt(lines, "time_toolchange"); ok {
		g.TimeToolchange = v
	}

	bedTemps, ok := configList(lines, "bed_temperature")
	if !ok {
		return g, nil, fmt.Errorf("gcode: no bed_temperature in slicer config")
	}
	g.ToolCount = len(bedTemps)

	tools := make([]ToolConfig, g.ToolCount)
	for i := range tools {
		tools[i].ToolNumber = i
		tools[i].WarmupTimeS = defaults.WarmupTimeS
		tools[i].WarmupFromOffTimeS = defaults.WarmupFromOffTimeS
		tools[i].DormantTimeS = defaults.DormantTimeS
	}

	applyConfigList(bedTemps, func(i, v int) { tools[i].BedTemperature = v })
	if vals, ok := configList(lines, "chamber_temperature"); ok {
		applyConfigList(vals, func(i, v int) { tools[i].ChamberTemperature = v })
	}
	if vals, ok := configList(lines, "first_layer_bed_temperature"); ok {
		applyConfigList(vals, func(i, v int) { tools[i].FirstLayerBedTemperature = v })
	}
	if vals, ok := configList(lines, "first_layer_temperature"); ok {
		applyConfigList(vals, func(i, v int) { tools[i].FirstLayerTemperature = v })
	}
	if vals, ok := configList(lines, "temperature"); ok {
		applyConfigList(vals, func(i, v int) { tools[i].Temperature = v })
	}

	return g, tools, nil
}

// configValue returns the trimmed right-hand side of the first
// "; key = value" line, if present.
func configValue(lines []string, key string) (string, bool) {
	prefix := "; " + key + " ="
	for _, l := range lines {
		if strings.HasPrefix(l, prefix) {
			return strings.TrimSpace(l[strings.Index(l, "=")+1:]), true
		}
	}
	return "", false
}

func configInt(lines []string, key string) (int, bool) {
	v, ok := configValue(lines, key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// configList returns the comma-separated values of a "; key = v0,v1,..."
// line, split but not yet parsed to int.
func configList(lines []string, key string) ([]string, bool) {
	v, ok := configValue(lines, key)
	if !ok {
		return nil, false
	}
	parts := strings.Split(v, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts, true
}

// applyConfigList parses each value positionally and invokes set(i, v)
// for indices within the slice. Unparseable entries are skipped rather
// than failing the whole config, since a malformed per-tool value should
// not abort parsing of the rest of the table.
func applyConfigList(vals []string, set func(i, v int)) {
	for i, s := range vals {
		n, err := strconv.Atoi(s)
		if err != nil {
			continue
		}
		set(i, n)
	}
}
