package sortable

// Bounds is the vertical footprint of a rendered view, in the same units as
// Event.Y (terminal rows in the TUI).
type Bounds struct {
	Top    int
	Height int
}

func (b Bounds) Contains(y int) bool {
	return y >= b.Top && y < b.Top+b.Height
}

// midpoint is kept in float64 so odd heights split exactly.
func (b Bounds) midpoint() float64 {
	return float64(b.Top) + float64(b.Height)/2
}

// View is a handle to one rendered item. Index is the item's position in the
// list the renderer drew from; Bounds is queried on demand.
type View interface {
	Key() string
	Index() int
	Bounds() Bounds
}

type EventKind int

const (
	EventStart EventKind = iota
	EventMove
	EventLeave
	EventDrop
	EventEnd
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventMove:
		return "move"
	case EventLeave:
		return "leave"
	case EventDrop:
		return "drop"
	case EventEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Event is one pointer-drag gesture step. Target is the view under the
// pointer, nil when there is none.
type Event struct {
	Kind   EventKind
	Y      int
	Target View
}

// MoveInstruction asks the list owner to move OldIndex to NewIndex, where
// NewIndex is the final resting position.
type MoveInstruction struct {
	OldIndex int `json:"oldIndex"`
	NewIndex int `json:"newIndex"`
}
