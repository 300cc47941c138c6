// Package gcode implements the toolchanger temperature-management
// post-processor: it rewrites a slicer-emitted gcode file in place so
// that each tool is preheated only in time for its next use, dropped to
// standby or fully off when idle, and shut off for good once its last
// use has passed.
package gcode

// Kind classifies a Section by the role it plays in the instruction stream.
type Kind int

const (
	KindPreStart Kind = iota
	KindStartGcode
	KindInitialTemp
	KindGcode
	KindToolchange
	KindLayerChangeComment
	KindLayerChangeGcode
	KindSecondLayerTemp
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindPreStart:
		return "PRE_START"
	case KindStartGcode:
		return "START_GCODE"
	case KindInitialTemp:
		return "INITIAL_TEMP"
	case KindGcode:
		return "GCODE"
	case KindToolchange:
		return "TOOLCHANGE"
	case KindLayerChangeComment:
		return "LAYER_CHANGE_COMMENT"
	case KindLayerChangeGcode:
		return "LAYER_CHANGE_GCODE"
	case KindSecondLayerTemp:
		return "SECOND_LAYER_TEMP"
	default:
		return "OTHER"
	}
}

// Section is one node of the doubly linked instruction-stream graph.
// Prev/Next are indices into a sectionList's arena rather than raw
// pointers, so the list can be spliced and walked without the owning
// list ever handing out a node it doesn't still track.
type Section struct {
	Lines []string
	Tool  int
	Kind  Kind

	FirstLayerTempsUsed bool
	OtherLayerTempsUsed bool

	Score float64

	// Toolchange-only fields.
	OutgoingTool      int
	IncomingTool      int
	InitialToolchange bool
	LastDeselect      bool
	HeatFromOff       bool

	prev int
	next int
	live bool
}

const nilIdx = -1

// sectionList is the arena-backed doubly linked list of sections. Nodes
// are addressed by integer index; deletion marks a slot dead rather
// than compacting the slice, so outstanding indices never dangle mid-walk.
type sectionList struct {
	nodes []*Section
	head  int
	tail  int
}

func newSectionList() *sectionList {
	return &sectionList{head: nilIdx, tail: nilIdx}
}

func (l *sectionList) alloc(s *Section) int {
	s.prev, s.next, s.live = nilIdx, nilIdx, true
	s.OutgoingTool, s.IncomingTool = -1, -1
	l.nodes = append(l.nodes, s)
	return len(l.nodes) - 1
}

// Head returns the index of the first live section, or nilIdx if empty.
func (l *sectionList) Head() int { return l.head }

func (l *sectionList) at(idx int) *Section {
	if idx == nilIdx {
		return nil
	}
	return l.nodes[idx]
}

func (l *sectionList) Next(idx int) int {
	if idx == nilIdx {
		return nilIdx
	}
	return l.nodes[idx].next
}

func (l *sectionList) Prev(idx int) int {
	if idx == nilIdx {
		return nilIdx
	}
	return l.nodes[idx].prev
}

// PushBack appends a new section built from lines/tool at the tail.
func (l *sectionList) PushBack(lines []string, tool int) int {
	s := &Section{Lines: lines, Tool: tool}
	idx := l.alloc(s)
	if l.head == nilIdx {
		l.head, l.tail = idx, idx
		return idx
	}
	l.nodes[l.tail].next = idx
	s.prev = l.tail
	l.tail = idx
	return idx
}

// PushFront inserts a new section built from lines/tool before the
// current head, which becomes the new section's successor.
func (l *sectionList) PushFront(lines []string, tool int) int {
	s := &Section{Lines: lines, Tool: tool}
	idx := l.alloc(s)
	if l.head == nilIdx {
		l.head, l.tail = idx, idx
		return idx
	}
	l.nodes[l.head].prev = idx
	s.next = l.head
	l.head = idx
	return idx
}

// InsertAfter inserts a new section built from lines/tool immediately
// after afterIdx, returning the new section's index. afterIdx must be a
// live node; if it is the tail, the new node becomes the new tail.
func (l *sectionList) InsertAfter(afterIdx int, lines []string, tool int) int {
	s := &Section{Lines: lines, Tool: tool}
	idx := l.alloc(s)
	after := l.nodes[afterIdx]
	nextIdx := after.next
	s.prev = afterIdx
	s.next = nextIdx
	after.next = idx
	if nextIdx != nilIdx {
		l.nodes[nextIdx].prev = idx
	} else {
		l.tail = idx
	}
	return idx
}

// InsertBefore inserts a new section built from lines/tool immediately
// before beforeIdx, returning the new section's index. beforeIdx must be
// a live node; if it is the head, the new node becomes the new head.
func (l *sectionList) InsertBefore(beforeIdx int, lines []string, tool int) int {
	prevIdx := l.nodes[beforeIdx].prev
	if prevIdx == nilIdx {
		return l.PushFront(lines, tool)
	}
	return l.InsertAfter(prevIdx, lines, tool)
}

// Delete unlinks idx from the list, patching its neighbors together.
func (l *sectionList) Delete(idx int) {
	n := l.nodes[idx]
	if n.prev != nilIdx {
		l.nodes[n.prev].next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nilIdx {
		l.nodes[n.next].prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.live = false
}

// FindFirst returns the index of the first live section for which pred
// returns true, walking from the head, or nilIdx if none matches.
func (l *sectionList) FindFirst(pred func(*Section) bool) int {
	for idx := l.head; idx != nilIdx; idx = l.nodes[idx].next {
		if pred(l.nodes[idx]) {
			return idx
		}
	}
	return nilIdx
}

// Linearize concatenates every live section's Lines in list order.
func (l *sectionList) Linearize() []string {
	var out []string
	for idx := l.head; idx != nilIdx; idx = l.nodes[idx].next {
		out = append(out, l.nodes[idx].Lines...)
	}
	return out
}

// ToolConfig holds the per-tool temperatures and timing overrides parsed
// from the slicer config block and the start-filament directive blocks.
type ToolConfig struct {
	ToolNumber int

	BedTemperature           int
	FirstLayerBedTemperature int
	Temperature              int
	FirstLayerTemperature    int
	ChamberTemperature       int

	ToolUsed bool

	WarmupTimeS        int
	WarmupFromOffTimeS int
	DormantTimeS       int
}

// GlobalConfig holds the slicer-wide parameters parsed from the slicer
// config block that aren't indexed per tool.
type GlobalConfig struct {
	StandbyTemperatureDelta int
	TimeStartGcode          int
	TimeToolchange          int
	ToolCount               int
}

// PrintStats holds the slicer's own estimate of the print, parsed from
// the print-stats trailer.
type PrintStats struct {
	LayerCount int
	PrintTimeS int
}
