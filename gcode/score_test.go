package gcode

import "testing"

func TestScoreGcodeBlocks(t *testing.T) {
	list := newSectionList()
	a := list.PushBack([]string{"G1 X1", "G1 X2"}, 0) // 2 lines
	list.at(a).Kind = KindGcode
	b := list.PushBack([]string{"G1 X3", "G1 X4", "G1 X5", "G1 X6"}, 0) // 4 lines
	list.at(b).Kind = KindGcode
	other := list.PushBack([]string{"; comment"}, 0)
	list.at(other).Kind = KindOther

	scoreGcodeBlocks(list, 90)

	if got, want := list.at(a).Score, 30.0; got != want {
		t.Errorf("section a score = %v, want %v", got, want)
	}
	if got, want := list.at(b).Score, 60.0; got != want {
		t.Errorf("section b score = %v, want %v", got, want)
	}
	if got := list.at(other).Score; got != 0 {
		t.Errorf("non-GCODE section score = %v, want 0", got)
	}
}

func TestScoreGcodeBlocksNoGcodeSections(t *testing.T) {
	list := newSectionList()
	idx := list.PushBack([]string{"; comment"}, 0)
	list.at(idx).Kind = KindOther

	scoreGcodeBlocks(list, 50)

	if got := list.at(idx).Score; got != 0 {
		t.Errorf("score = %v, want 0 when there are no GCODE sections", got)
	}
}
