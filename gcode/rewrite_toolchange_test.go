package gcode

import "testing"

func toolchangeTools() []ToolConfig {
	return []ToolConfig{
		{ToolNumber: 0, ToolUsed: true, Temperature: 200, FirstLayerTemperature: 205},
		{ToolNumber: 1, ToolUsed: true, Temperature: 210, FirstLayerTemperature: 215},
	}
}

func buildToolchangeList() (*sectionList, int, int) {
	list := newSectionList()
	first := list.PushBack([]string{"; custom gcode: toolchange_gcode", "CURRENT_TOOL=0", "NEXT_TOOL=1", "; custom gcode end: toolchange_gcode"}, 0)
	list.at(first).Kind = KindToolchange

	second := list.PushBack([]string{"; custom gcode: toolchange_gcode", "CURRENT_TOOL=1", "NEXT_TOOL=0", "; custom gcode end: toolchange_gcode"}, 1)
	list.at(second).Kind = KindToolchange

	return list, first, second
}

func TestRewriteToolchangesSkipsSynthesizedFirst(t *testing.T) {
	list, first, second := buildToolchangeList()

	scoreTracker, count, err := rewriteToolchanges(list, toolchangeTools(), 5, true, 100)
	if err != nil {
		t.Fatalf("rewriteToolchanges() error = %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1 (first section skipped)", count)
	}
	if want := 100.0 - 5; scoreTracker != want {
		t.Errorf("scoreTracker = %v, want %v", scoreTracker, want)
	}
	if list.at(first).OutgoingTool != -1 {
		t.Error("skipped first toolchange section should be untouched (OutgoingTool still -1)")
	}
	if list.at(second).OutgoingTool != 1 || list.at(second).IncomingTool != 0 {
		t.Errorf("second section outgoing/incoming = %d/%d, want 1/0", list.at(second).OutgoingTool, list.at(second).IncomingTool)
	}
}

func TestRewriteToolchangesProcessesAllWhenNoFirst(t *testing.T) {
	list, first, second := buildToolchangeList()

	_, count, err := rewriteToolchanges(list, toolchangeTools(), 5, false, 100)
	if err != nil {
		t.Fatalf("rewriteToolchanges() error = %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
	if list.at(first).OutgoingTool != 0 || list.at(first).IncomingTool != 1 {
		t.Errorf("first section outgoing/incoming = %d/%d, want 0/1", list.at(first).OutgoingTool, list.at(first).IncomingTool)
	}
	if list.at(second).OutgoingTool != 1 || list.at(second).IncomingTool != 0 {
		t.Errorf("second section outgoing/incoming = %d/%d, want 1/0", list.at(second).OutgoingTool, list.at(second).IncomingTool)
	}
}

func TestRewriteToolchangesRewritesLines(t *testing.T) {
	list, first, _ := buildToolchangeList()
	_, _, err := rewriteToolchanges(list, toolchangeTools(), 5, false, 100)
	if err != nil {
		t.Fatalf("rewriteToolchanges() error = %v", err)
	}

	lines := list.at(first).Lines
	want := []string{
		"",
		"; custom gcode: toolchange_gcode",
		"M104 S210 T1 ; set tool temperature",
		"T1 ; select tool 1",
		"VERIFY_TOOL_DETECTED ASYNC=1 ; verify tool detected",
		"; custom gcode end: toolchange_gcode",
		"",
	}
	if len(lines) != len(want) {
		t.Fatalf("lines = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("lines[%d] = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRewriteToolchangesUsesFirstLayerTemp(t *testing.T) {
	list, first, _ := buildToolchangeList()
	list.at(first).FirstLayerTempsUsed = true

	_, _, err := rewriteToolchanges(list, toolchangeTools(), 5, false, 100)
	if err != nil {
		t.Fatalf("rewriteToolchanges() error = %v", err)
	}
	lines := list.at(first).Lines
	if lines[2] != "M104 S215 T1 ; set tool temperature" {
		t.Errorf("temp line = %q, want first-layer temperature for tool 1 (215)", lines[2])
	}
}

func TestRewriteToolchangesOutOfRangeTool(t *testing.T) {
	list := newSectionList()
	idx := list.PushBack([]string{"CURRENT_TOOL=0", "NEXT_TOOL=9"}, 0)
	list.at(idx).Kind = KindToolchange

	_, _, err := rewriteToolchanges(list, toolchangeTools(), 5, false, 100)
	if err == nil {
		t.Error("rewriteToolchanges() error = nil, want error for out-of-range NEXT_TOOL=9")
	}
}

func TestRewriteToolchangesMissingDirective(t *testing.T) {
	list := newSectionList()
	idx := list.PushBack([]string{"CURRENT_TOOL=0"}, 0)
	list.at(idx).Kind = KindToolchange

	_, _, err := rewriteToolchanges(list, toolchangeTools(), 5, false, 100)
	if err == nil {
		t.Error("rewriteToolchanges() error = nil, want error for missing NEXT_TOOL=")
	}
}
