package gcode

import (
	"fmt"
	"strings"
)

// hasToolchangeBlock reports whether raw contains at least one
// toolchange_gcode marker line — the signal that this file actually
// switches tools and is worth post-processing at all (spec §6, §9).
func hasToolchangeBlock(raw []string) bool {
	for _, l := range raw {
		if strings.HasPrefix(l, toolchangeOpen) {
			return true
		}
	}
	return false
}

// Process runs the full post-processing pipeline over raw (the input
// file split into lines, without trailing newlines) and returns the
// rewritten file in the same form, along with a report describing what
// was done.
//
// If raw contains no toolchange_gcode block at all, Process short-
// circuits: it returns a report with Skipped set and a nil output slice,
// and the caller should leave the file on disk untouched (spec §6, §9).
func Process(raw []string) ([]string, *ProcessingReport, error) {
	report := &ProcessingReport{InputLines: len(raw)}

	if !hasToolchangeBlock(raw) {
		report.Skipped = true
		return nil, report, nil
	}

	parts, err := splitPreamble(raw)
	if err != nil {
		return nil, report, fmt.Errorf("gcode: splitting preamble: %w", err)
	}

	g, tools, err := parseSliceConfig(parts.config)
	if err != nil {
		return nil, report, fmt.Errorf("gcode: parsing slicer config: %w", err)
	}
	report.ToolCount = g.ToolCount

	stats, err := parsePrintStats(parts.stats)
	if err != nil {
		return nil, report, fmt.Errorf("gcode: parsing print stats: %w", err)
	}

	findToolsUsed(parts.middle, tools)

	middle := removePreToolchangeTempDrop(parts.middle)
	middle = removePostStartFilamentTempSet(middle)
	middle, err = extractStartFilamentParams(middle, tools)
	if err != nil {
		return nil, report, fmt.Errorf("gcode: extracting start-filament parameters: %w", err)
	}

	list, err := sectionize(middle)
	if err != nil {
		return nil, report, fmt.Errorf("gcode: sectionizing: %w", err)
	}

	scoreTracker, hasFirstToolchange, err := rewriteStart(list, tools, g, stats.PrintTimeS)
	if err != nil {
		return nil, report, fmt.Errorf("gcode: rewriting start section: %w", err)
	}
	report.FirstTool = list.at(list.Head()).Tool

	if err := rewriteSecondLayerTransition(list, tools); err != nil {
		return nil, report, fmt.Errorf("gcode: rewriting second-layer transition: %w", err)
	}

	scoreTracker, toolchangeCount, err := rewriteToolchanges(list, tools, g.TimeToolchange, hasFirstToolchange, scoreTracker)
	if err != nil {
		return nil, report, fmt.Errorf("gcode: rewriting toolchange sections: %w", err)
	}
	report.ToolchangeCount = toolchangeCount

	scoreGcodeBlocks(list, scoreTracker)

	report.ShutoffCount = injectShutoff(list, tools)

	standbyCount, err := injectStandby(list, tools, g.StandbyTemperatureDelta)
	if err != nil {
		return nil, report, fmt.Errorf("gcode: injecting standby logic: %w", err)
	}
	report.StandbyCount = standbyCount

	preheatCount, err := injectPreheat(list, tools)
	if err != nil {
		return nil, report, fmt.Errorf("gcode: injecting preheat logic: %w", err)
	}
	report.PreheatCount = preheatCount

	for _, t := range tools {
		if t.ToolUsed {
			report.ToolsUsed = append(report.ToolsUsed, t.ToolNumber)
		}
	}
	report.HasToolchange = true

	out := serialize(parts, list)
	report.OutputLines = len(out)
	return out, report, nil
}
