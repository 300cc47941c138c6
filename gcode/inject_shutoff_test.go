package gcode

import "testing"

func TestInjectShutoff(t *testing.T) {
	list := newSectionList()
	tc := list.PushBack([]string{"", "; custom gcode: toolchange_gcode", "T1", "; custom gcode end: toolchange_gcode", ""}, 1)
	list.at(tc).Kind = KindToolchange
	list.at(tc).OutgoingTool = 0
	list.at(tc).IncomingTool = 1

	gc := list.PushBack([]string{"G1 X1"}, 1)
	list.at(gc).Kind = KindGcode

	tools := []ToolConfig{
		{ToolNumber: 0, ToolUsed: true},
		{ToolNumber: 1, ToolUsed: true},
	}

	count := injectShutoff(list, tools)
	if count != 1 {
		t.Fatalf("injectShutoff() count = %d, want 1", count)
	}
	if !list.at(tc).LastDeselect {
		t.Error("toolchange section deselecting tool 0 should be marked LastDeselect")
	}

	lines := list.at(tc).Lines
	if len(lines) != 6 {
		t.Fatalf("toolchange lines = %v, want 6 lines after injection", lines)
	}
	if lines[len(lines)-2] != "M104 S0 T0 ; set tool temperature to zero since this tool is no longer used in print" {
		t.Errorf("injected shutoff line = %q", lines[len(lines)-2])
	}
	if lines[len(lines)-1] != "" {
		t.Errorf("last line = %q, want trailing blank preserved", lines[len(lines)-1])
	}
}

func TestInjectShutoffSkipsToolStillSelectedAtEnd(t *testing.T) {
	list := newSectionList()
	tc := list.PushBack([]string{"T1"}, 1)
	list.at(tc).Kind = KindToolchange
	list.at(tc).OutgoingTool = 0
	list.at(tc).IncomingTool = 1

	gc := list.PushBack([]string{"G1 X1"}, 1)
	list.at(gc).Kind = KindGcode

	tools := []ToolConfig{
		{ToolNumber: 0, ToolUsed: true},
		{ToolNumber: 1, ToolUsed: true},
	}

	count := injectShutoff(list, tools)
	if count != 1 {
		t.Fatalf("injectShutoff() count = %d, want 1 (only tool 0 needs shutoff)", count)
	}
}

func TestInsertBeforeLast(t *testing.T) {
	got := insertBeforeLast([]string{"a", "b", "c"}, "x")
	want := []string{"a", "b", "x", "c"}
	if len(got) != len(want) {
		t.Fatalf("insertBeforeLast() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("insertBeforeLast()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
