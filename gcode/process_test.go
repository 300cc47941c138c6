package gcode

import (
	"sort"
	"strings"
	"testing"
)

func twoToolFixture() []string {
	return []string{
		"; generated by test slicer",
		"M73 P0",
		"; custom gcode: start_gcode",
		"G28",
		"; custom gcode end: start_gcode",
		"M104 S200 T0",
		"M140 S60",
		"M104 S0 T0",
		"; custom gcode: toolchange_gcode",
		"CURRENT_TOOL=0",
		"NEXT_TOOL=1",
		"T1 ; select tool 1",
		"; custom gcode end: toolchange_gcode",
		"G1 X1 Y1",
		"G1 X2 Y2",
		";LAYER_CHANGE",
		";Z:0.2",
		";HEIGHT:0.2",
		"; custom gcode: layer_gcode",
		"G1 E1",
		"; custom gcode end: layer_gcode",
		"M104 S210 T1",
		"M140 S65",
		"G1 X3 Y3",
		"G1 X4 Y4",
		"; custom gcode: toolchange_gcode",
		"CURRENT_TOOL=1",
		"NEXT_TOOL=0",
		"T0 ; select tool 0",
		"; custom gcode end: toolchange_gcode",
		"G1 X5 Y5",
		"G1 X6 Y6",
		"M107",
		"G1 Z10",
		"M104 S0",
		"; layer count: 2",
		"; estimated printing time (normal mode) = 1m 0s",
		"; SuperSlicer_config = begin",
		"; standby_temperature_delta = -5",
		"; time_start_gcode = 10",
		"; time_toolchange = 5",
		"; bed_temperature = 60,65",
		"; first_layer_bed_temperature = 65,70",
		"; first_layer_temperature = 215,220",
		"; temperature = 210,215",
		"; SuperSlicer_config = end",
	}
}

func TestProcessTwoToolFixture(t *testing.T) {
	out, report, err := Process(twoToolFixture())
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if report.Skipped {
		t.Fatal("report.Skipped = true, want false (fixture has a toolchange)")
	}

	if report.ToolCount != 2 {
		t.Errorf("ToolCount = %d, want 2", report.ToolCount)
	}
	usedSorted := append([]int(nil), report.ToolsUsed...)
	sort.Ints(usedSorted)
	if len(usedSorted) != 2 || usedSorted[0] != 0 || usedSorted[1] != 1 {
		t.Errorf("ToolsUsed = %v, want both tools used", report.ToolsUsed)
	}
	if report.FirstTool != 1 {
		t.Errorf("FirstTool = %d, want 1 (the synthesized initial toolchange selects T1)", report.FirstTool)
	}
	if !report.HasToolchange {
		t.Error("HasToolchange = false, want true")
	}
	if report.ToolchangeCount != 1 {
		t.Errorf("ToolchangeCount = %d, want 1 (the first toolchange is synthesized, not rewritten)", report.ToolchangeCount)
	}
	if report.ShutoffCount != 1 {
		t.Errorf("ShutoffCount = %d, want 1 (tool 1 is not selected at the end of the print)", report.ShutoffCount)
	}
	if report.PreheatCount != 1 {
		t.Errorf("PreheatCount = %d, want 1 (tool 0's only reselect needs a preheat)", report.PreheatCount)
	}
	if report.OutputLines != len(out) {
		t.Errorf("OutputLines = %d, want len(out) = %d", report.OutputLines, len(out))
	}

	joined := strings.Join(out, "\n")
	for _, want := range []string{
		"; generated by test slicer",
		"; custom gcode: pre_start_gcode",
		"; custom gcode: first_tool_selection",
		"VERIFY_TOOL_DETECTED ASYNC=1 ; verify tool detected",
		"; custom gcode: preheat_section T0",
		"M104 S0 T1 ; set tool temperature to zero since this tool is no longer used in print",
		"; SuperSlicer_config = begin",
		"; SuperSlicer_config = end",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("output missing expected fragment %q", want)
		}
	}

	if out[0] != "; generated by test slicer" {
		t.Errorf("out[0] = %q, want the head's first line preserved verbatim", out[0])
	}
	if out[len(out)-1] != "; SuperSlicer_config = end" {
		t.Errorf("last output line = %q, want the config trailer's last line preserved verbatim", out[len(out)-1])
	}
}

func TestProcessSkipsFileWithNoToolchange(t *testing.T) {
	raw := []string{
		"; generated by test slicer",
		"M73 P0",
		"; custom gcode: start_gcode",
		"G28",
		"; custom gcode end: start_gcode",
		"G1 X1 Y1",
		"M107",
		"; layer count: 1",
		"; estimated printing time (normal mode) = 10s",
		"; SuperSlicer_config = begin",
		"; bed_temperature = 60",
		"; SuperSlicer_config = end",
	}

	out, report, err := Process(raw)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if !report.Skipped {
		t.Error("report.Skipped = false, want true (no toolchange_gcode marker present)")
	}
	if out != nil {
		t.Errorf("out = %v, want nil on skip", out)
	}
}

func TestProcessMissingM73Errors(t *testing.T) {
	raw := []string{
		"; custom gcode: start_gcode",
		"; custom gcode end: start_gcode",
		"; custom gcode: toolchange_gcode",
		"NEXT_TOOL=0",
		"; custom gcode end: toolchange_gcode",
	}
	if _, _, err := Process(raw); err == nil {
		t.Error("Process() error = nil, want error when the M73 marker is missing")
	}
}
