package sortable

import (
	"testing"

	"pdfmerge-cli/internal/model"
	"pdfmerge-cli/internal/order"

	"github.com/google/go-cmp/cmp"
)

type fakeView struct {
	key    string
	index  int
	bounds Bounds
}

func (v fakeView) Key() string    { return v.key }
func (v fakeView) Index() int     { return v.index }
func (v fakeView) Bounds() Bounds { return v.bounds }

// render lays keys out as cards of height 2 starting at row 0.
func render(keys ...string) []View {
	out := make([]View, 0, len(keys))
	for i, k := range keys {
		out = append(out, fakeView{key: k, index: i, bounds: Bounds{Top: i * 2, Height: 2}})
	}
	return out
}

func newList(t *testing.T, keys ...string) *order.List {
	t.Helper()
	its := make([]model.Item, 0, len(keys))
	for _, k := range keys {
		its = append(its, model.Item{Key: k, Label: k})
	}
	l, err := order.New(its...)
	if err != nil {
		t.Fatalf("order.New: %v", err)
	}
	return l
}

func assertClean(t *testing.T, c *Controller) {
	t.Helper()
	if c.State() != StateIdle {
		t.Fatalf("expected idle, got %v", c.State())
	}
	if _, _, ok := c.Placeholder(); ok {
		t.Fatalf("placeholder left behind")
	}
	if c.DraggedKey() != "" {
		t.Fatalf("ghost left behind: %q", c.DraggedKey())
	}
}

func TestDrag_ForwardDropAfterC(t *testing.T) {
	l := newList(t, "A", "B", "C", "D")
	views := render(l.Keys()...)
	c := New(Options{})
	c.Attach(views)

	c.HandleEvent(Event{Kind: EventStart, Y: 0, Target: views[0]})
	if !c.IsGhost("A") || c.State() != StateDragging {
		t.Fatalf("expected A ghosted and dragging")
	}
	// C occupies rows 4-5; row 5 is below its midpoint.
	c.HandleEvent(Event{Kind: EventMove, Y: 5, Target: views[2]})
	slot, h, ok := c.Placeholder()
	if !ok || slot != 3 || h != 2 {
		t.Fatalf("placeholder = (%d,%d,%v), want (3,2,true)", slot, h, ok)
	}

	mv, ok := c.HandleEvent(Event{Kind: EventDrop, Y: 5})
	if !ok {
		t.Fatalf("expected a move instruction")
	}
	if mv != (MoveInstruction{OldIndex: 0, NewIndex: 2}) {
		t.Fatalf("move = %+v, want {0 2}", mv)
	}
	if err := Apply(l, mv); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	c.HandleEvent(Event{Kind: EventEnd})

	if diff := cmp.Diff([]string{"B", "C", "A", "D"}, l.Keys()); diff != "" {
		t.Fatalf("order (-want +got):\n%s", diff)
	}
	if c.LastOutcome() != OutcomeDropped {
		t.Fatalf("outcome = %v, want dropped", c.LastOutcome())
	}
	assertClean(t, c)
}

func TestDrag_BackwardDropBeforeA(t *testing.T) {
	l := newList(t, "A", "B", "C")
	views := render(l.Keys()...)
	c := New(Options{})
	c.Attach(views)

	c.HandleEvent(Event{Kind: EventStart, Y: 4, Target: views[2]})
	c.HandleEvent(Event{Kind: EventMove, Y: 0, Target: views[0]})
	mv, ok := c.HandleEvent(Event{Kind: EventDrop, Y: 0})
	if !ok || mv != (MoveInstruction{OldIndex: 2, NewIndex: 0}) {
		t.Fatalf("move = %+v ok=%v, want {2 0} true", mv, ok)
	}
	if err := Apply(l, mv); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if diff := cmp.Diff([]string{"C", "A", "B"}, l.Keys()); diff != "" {
		t.Fatalf("order (-want +got):\n%s", diff)
	}
}

func TestDrag_DropAtEnd(t *testing.T) {
	views := render("A", "B", "C", "D")
	c := New(Options{})
	c.Attach(views)

	c.HandleEvent(Event{Kind: EventStart, Target: views[0]})
	c.HandleEvent(Event{Kind: EventMove, Y: 7, Target: views[3]})
	mv, ok := c.HandleEvent(Event{Kind: EventDrop})
	if !ok || mv != (MoveInstruction{OldIndex: 0, NewIndex: 3}) {
		t.Fatalf("move = %+v ok=%v, want {0 3} true", mv, ok)
	}
}

func TestDrag_EndOutsideWithoutDropCancels(t *testing.T) {
	l := newList(t, "A", "B", "C")
	views := render(l.Keys()...)
	c := New(Options{})
	c.Attach(views)

	c.HandleEvent(Event{Kind: EventStart, Y: 2, Target: views[1]})
	c.HandleEvent(Event{Kind: EventMove, Y: 0, Target: views[0]})
	c.HandleEvent(Event{Kind: EventLeave, Y: 40})
	if _, ok := c.HandleEvent(Event{Kind: EventEnd, Y: 40}); ok {
		t.Fatalf("cancel emitted a move")
	}

	if diff := cmp.Diff([]string{"A", "B", "C"}, l.Keys()); diff != "" {
		t.Fatalf("order changed (-want +got):\n%s", diff)
	}
	if c.LastOutcome() != OutcomeCancelled {
		t.Fatalf("outcome = %v, want cancelled", c.LastOutcome())
	}
	assertClean(t, c)
}

func TestDrag_DropOntoSelfIsNoop(t *testing.T) {
	views := render("A", "B", "C")
	c := New(Options{})
	c.Attach(views)

	c.HandleEvent(Event{Kind: EventStart, Y: 2, Target: views[1]})
	// Hovering the dragged card itself is ignored.
	c.HandleEvent(Event{Kind: EventMove, Y: 3, Target: views[1]})
	if _, _, ok := c.Placeholder(); ok {
		t.Fatalf("hovering the dragged view positioned the placeholder")
	}

	// Just after A (i.e. just before B) and just before C both resolve to B's own slot.
	for _, probe := range []Event{
		{Kind: EventMove, Y: 1, Target: views[0]},
		{Kind: EventMove, Y: 4, Target: views[2]},
	} {
		c.HandleEvent(Event{Kind: EventStart, Y: 2, Target: views[1]})
		c.HandleEvent(probe)
		if mv, ok := c.HandleEvent(Event{Kind: EventDrop}); ok {
			t.Fatalf("drop onto own slot emitted %+v", mv)
		}
		c.HandleEvent(Event{Kind: EventEnd})
		assertClean(t, c)
	}
}

func TestDrag_LeaveRemovesPlaceholderAndReentryResumes(t *testing.T) {
	views := render("A", "B", "C")
	c := New(Options{})
	c.Attach(views)

	c.HandleEvent(Event{Kind: EventStart, Target: views[0]})
	c.HandleEvent(Event{Kind: EventMove, Y: 3, Target: views[1]})
	c.HandleEvent(Event{Kind: EventLeave, Y: -1})
	if _, _, ok := c.Placeholder(); ok {
		t.Fatalf("placeholder survived leaving the container")
	}
	if c.State() != StateDragging || !c.IsGhost("A") {
		t.Fatalf("leave must keep the session alive")
	}

	c.HandleEvent(Event{Kind: EventMove, Y: 5, Target: views[2]})
	slot, _, ok := c.Placeholder()
	if !ok || slot != 3 {
		t.Fatalf("placeholder after re-entry = (%d,%v), want (3,true)", slot, ok)
	}
	mv, ok := c.HandleEvent(Event{Kind: EventDrop})
	if !ok || mv != (MoveInstruction{OldIndex: 0, NewIndex: 2}) {
		t.Fatalf("move = %+v ok=%v, want {0 2} true", mv, ok)
	}
}

func TestDrag_DropWithoutPlaceholderEndsSession(t *testing.T) {
	views := render("A", "B")
	c := New(Options{})
	c.Attach(views)

	c.HandleEvent(Event{Kind: EventStart, Target: views[0]})
	c.HandleEvent(Event{Kind: EventLeave})
	if _, ok := c.HandleEvent(Event{Kind: EventDrop}); ok {
		t.Fatalf("drop without placeholder emitted a move")
	}
	assertClean(t, c)
}

func TestDrag_MidpointBoundary(t *testing.T) {
	views := []View{
		fakeView{key: "A", index: 0, bounds: Bounds{Top: 0, Height: 3}},
		fakeView{key: "B", index: 1, bounds: Bounds{Top: 3, Height: 3}},
	}
	c := New(Options{})
	c.Attach(views)
	c.HandleEvent(Event{Kind: EventStart, Target: views[0]})

	// B's midpoint is 4.5: row 4 is above it, row 5 below.
	c.HandleEvent(Event{Kind: EventMove, Y: 4, Target: views[1]})
	if slot, _, _ := c.Placeholder(); slot != 1 {
		t.Fatalf("row 4: slot = %d, want 1", slot)
	}
	c.HandleEvent(Event{Kind: EventMove, Y: 5, Target: views[1]})
	if slot, h, _ := c.Placeholder(); slot != 2 || h != 3 {
		t.Fatalf("row 5: slot,height = %d,%d, want 2,3", slot, h)
	}
}

func TestDrag_IgnoredEvents(t *testing.T) {
	views := render("A", "B", "C")
	c := New(Options{})
	c.Attach(views)

	// Events without a session do nothing.
	for _, ev := range []Event{
		{Kind: EventMove, Y: 1, Target: views[0]},
		{Kind: EventLeave},
		{Kind: EventDrop},
		{Kind: EventEnd},
		{Kind: EventStart},
		{Kind: EventStart, Target: fakeView{key: "zzz"}},
	} {
		if _, ok := c.HandleEvent(ev); ok {
			t.Fatalf("%v while idle emitted a move", ev.Kind)
		}
		assertClean(t, c)
	}

	// A second start while dragging keeps the first session.
	c.HandleEvent(Event{Kind: EventStart, Target: views[0]})
	c.HandleEvent(Event{Kind: EventStart, Target: views[2]})
	if c.DraggedKey() != "A" {
		t.Fatalf("second start replaced session: %q", c.DraggedKey())
	}
	// Move without a candidate keeps the placeholder unset.
	c.HandleEvent(Event{Kind: EventMove, Y: 3})
	if _, _, ok := c.Placeholder(); ok {
		t.Fatalf("move without candidate positioned placeholder")
	}
}

func TestCancel_ClearsSession(t *testing.T) {
	views := render("A", "B")
	c := New(Options{})
	c.Attach(views)
	c.HandleEvent(Event{Kind: EventStart, Target: views[1]})
	c.HandleEvent(Event{Kind: EventMove, Y: 0, Target: views[0]})

	c.Cancel()
	assertClean(t, c)
	if c.LastOutcome() != OutcomeCancelled {
		t.Fatalf("outcome = %v, want cancelled", c.LastOutcome())
	}
}

func TestAttach_KeepsSessionWhenOrderUnchanged(t *testing.T) {
	c := New(Options{})
	c.Attach(render("A", "B", "C"))
	views := render("A", "B", "C")
	c.HandleEvent(Event{Kind: EventStart, Target: views[0]})

	// Same order, shifted geometry (as when the placeholder pushes cards down).
	shifted := []View{
		fakeView{key: "A", index: 0, bounds: Bounds{Top: 0, Height: 2}},
		fakeView{key: "B", index: 1, bounds: Bounds{Top: 4, Height: 2}},
		fakeView{key: "C", index: 2, bounds: Bounds{Top: 6, Height: 2}},
	}
	c.Attach(shifted)
	if !c.Dragging() {
		t.Fatalf("re-render with same order cancelled the session")
	}
	c.HandleEvent(Event{Kind: EventMove, Y: 7, Target: shifted[2]})
	mv, ok := c.HandleEvent(Event{Kind: EventDrop})
	if !ok || mv != (MoveInstruction{OldIndex: 0, NewIndex: 2}) {
		t.Fatalf("move = %+v ok=%v, want {0 2} true", mv, ok)
	}
}

func TestAttach_CancelsSessionWhenOrderChanges(t *testing.T) {
	c := New(Options{})
	views := render("A", "B", "C")
	c.Attach(views)
	c.HandleEvent(Event{Kind: EventStart, Target: views[1]})
	c.HandleEvent(Event{Kind: EventMove, Y: 0, Target: views[0]})

	c.Attach(render("A", "C"))
	assertClean(t, c)
}

func TestDrag_RandomizedMatchesSplice(t *testing.T) {
	keys := []string{"A", "B", "C", "D", "E"}
	for from := range keys {
		for slot := 0; slot <= len(keys); slot++ {
			l := newList(t, keys...)
			views := render(l.Keys()...)
			c := New(Options{})
			c.Attach(views)
			c.HandleEvent(Event{Kind: EventStart, Target: views[from]})

			// Aim at the slot: above the midpoint of views[slot], or below the last one.
			var ev Event
			if slot < len(views) {
				ev = Event{Kind: EventMove, Y: views[slot].Bounds().Top, Target: views[slot]}
			} else {
				last := views[len(views)-1]
				ev = Event{Kind: EventMove, Y: last.Bounds().Top + 1, Target: last}
			}
			if ev.Target.Key() == keys[from] {
				c.HandleEvent(Event{Kind: EventEnd})
				continue
			}
			c.HandleEvent(ev)
			if mv, ok := c.HandleEvent(Event{Kind: EventDrop}); ok {
				if err := Apply(l, mv); err != nil {
					t.Fatalf("Apply(%+v): %v", mv, err)
				}
			}

			// Expected: remove from, insert before keys[slot] (or at end).
			want := make([]string, 0, len(keys))
			for i := 0; i <= len(keys); i++ {
				if i == slot {
					want = append(want, keys[from])
				}
				if i < len(keys) && i != from {
					want = append(want, keys[i])
				}
			}
			if diff := cmp.Diff(want, l.Keys()); diff != "" {
				t.Fatalf("from=%d slot=%d (-want +got):\n%s", from, slot, diff)
			}
		}
	}
}
