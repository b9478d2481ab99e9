package sortable

import (
	"pdfmerge-cli/internal/order"

	"github.com/rs/zerolog"
)

type State int

const (
	StateIdle State = iota
	StateDragging
)

func (s State) String() string {
	if s == StateDragging {
		return "dragging"
	}
	return "idle"
}

// Outcome records how the most recent session ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeDropped
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDropped:
		return "dropped"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "none"
	}
}

type Options struct {
	Logger zerolog.Logger
}

// session lives from EventStart to drop, end or Cancel.
type session struct {
	key           string
	originalIndex int
	height        int

	// slot is the placeholder position in the attached views: the placeholder
	// sits immediately before views[slot], or after the last view when
	// slot == len(views). -1 means the placeholder is not in the tree.
	slot int
}

// Controller turns drag gestures over a rendered list into move
// instructions. It never touches the list itself.
type Controller struct {
	log zerolog.Logger

	views   []View
	sess    *session
	outcome Outcome
}

func New(opts Options) *Controller {
	return &Controller{log: opts.Logger}
}

// Attach hands the controller the views of the latest render, in rendered
// order. It must be called after every render. A session survives a
// re-render only if the rendered order still matches what it started on.
func (c *Controller) Attach(views []View) {
	prev := c.views
	c.views = append([]View(nil), views...)
	if c.sess == nil {
		return
	}
	if !sameOrder(prev, c.views) {
		c.log.Debug().Str("key", c.sess.key).Msg("drag: rendered order changed under session; cancelling")
		c.finish(OutcomeCancelled)
	}
}

func sameOrder(a, b []View) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Key() != b[i].Key() || a[i].Index() != b[i].Index() {
			return false
		}
	}
	return true
}

func (c *Controller) State() State {
	if c.sess != nil {
		return StateDragging
	}
	return StateIdle
}

func (c *Controller) Dragging() bool { return c.sess != nil }

func (c *Controller) LastOutcome() Outcome { return c.outcome }

// DraggedKey is empty when idle.
func (c *Controller) DraggedKey() string {
	if c.sess == nil {
		return ""
	}
	return c.sess.key
}

func (c *Controller) IsGhost(key string) bool {
	return c.sess != nil && key != "" && c.sess.key == key
}

// Placeholder reports where the placeholder is rendered: before the view at
// slot, or at the end when slot equals the number of views.
func (c *Controller) Placeholder() (slot int, height int, ok bool) {
	if c.sess == nil || c.sess.slot < 0 {
		return -1, 0, false
	}
	return c.sess.slot, c.sess.height, true
}

// Cancel ends any active session without emitting a move.
func (c *Controller) Cancel() {
	if c.sess == nil {
		return
	}
	c.finish(OutcomeCancelled)
}

// HandleEvent advances the state machine by one gesture event. The returned
// instruction is valid only when ok is true, which happens solely on a drop
// that changes the item's position.
func (c *Controller) HandleEvent(ev Event) (mv MoveInstruction, ok bool) {
	switch ev.Kind {
	case EventStart:
		c.start(ev)
	case EventMove:
		c.move(ev)
	case EventLeave:
		if c.sess != nil {
			c.sess.slot = -1
		}
	case EventDrop:
		return c.drop()
	case EventEnd:
		if c.sess != nil {
			c.finish(OutcomeCancelled)
		}
	}
	return MoveInstruction{}, false
}

func (c *Controller) start(ev Event) {
	if c.sess != nil {
		c.log.Debug().Str("key", c.sess.key).Msg("drag: start while dragging ignored")
		return
	}
	if ev.Target == nil {
		return
	}
	pos := c.position(ev.Target.Key())
	if pos < 0 {
		return
	}
	src := c.views[pos]
	c.sess = &session{
		key:           src.Key(),
		originalIndex: src.Index(),
		height:        src.Bounds().Height,
		slot:          -1,
	}
	c.outcome = OutcomeNone
	c.log.Debug().Str("key", src.Key()).Int("index", src.Index()).Msg("drag: start")
}

func (c *Controller) move(ev Event) {
	if c.sess == nil || ev.Target == nil {
		return
	}
	if ev.Target.Key() == c.sess.key {
		return
	}
	pos := c.position(ev.Target.Key())
	if pos < 0 {
		return
	}
	b := c.views[pos].Bounds()
	if float64(ev.Y) < b.midpoint() {
		c.sess.slot = pos
	} else {
		c.sess.slot = pos + 1
	}
}

func (c *Controller) drop() (MoveInstruction, bool) {
	if c.sess == nil {
		return MoveInstruction{}, false
	}
	if c.sess.slot < 0 {
		c.finish(OutcomeCancelled)
		return MoveInstruction{}, false
	}

	target := len(c.views)
	if c.sess.slot < len(c.views) {
		target = c.views[c.sess.slot].Index()
	}
	// The dragged item vacates a slot before the target when moving forward.
	if c.sess.originalIndex < target {
		target--
	}

	mv := MoveInstruction{OldIndex: c.sess.originalIndex, NewIndex: target}
	c.log.Debug().Str("key", c.sess.key).Int("old", mv.OldIndex).Int("new", mv.NewIndex).Msg("drag: drop")
	c.finish(OutcomeDropped)
	if mv.OldIndex == mv.NewIndex {
		return MoveInstruction{}, false
	}
	return mv, true
}

func (c *Controller) finish(o Outcome) {
	c.sess = nil
	c.outcome = o
}

func (c *Controller) position(key string) int {
	for i, v := range c.views {
		if v.Key() == key {
			return i
		}
	}
	return -1
}

// Apply commits mv to l.
func Apply(l *order.List, mv MoveInstruction) error {
	return l.Move(mv.OldIndex, mv.NewIndex)
}
