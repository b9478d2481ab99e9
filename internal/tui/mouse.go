package tui

import (
	"pdfmerge-cli/internal/sortable"

	tea "github.com/charmbracelet/bubbletea"
)

// cardAt returns the card under screen row y. Rows below the last card but
// still inside the list area resolve to the last card, so the end of the list
// is a valid drop target.
func (m *appModel) cardAt(y int) (sortable.View, bool) {
	if !m.lay.inList(y) || len(m.views) == 0 {
		return nil, false
	}
	for _, v := range m.views {
		if v.bounds.Contains(y) {
			return v.rowView, true
		}
	}
	last := m.views[len(m.views)-1]
	if y >= last.bounds.Top+last.bounds.Height {
		return last.rowView, true
	}
	return nil, false
}

func (m *appModel) inContainer(x, y int) bool {
	w := m.width
	if w <= 0 {
		w = defaultWidth
	}
	return x >= 0 && x < w && m.lay.inList(y)
}

func (m *appModel) handleMouse(msg tea.MouseMsg) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp && msg.Action == tea.MouseActionPress:
		m.scroll -= cardHeight
		return
	case msg.Button == tea.MouseButtonWheelDown && msg.Action == tea.MouseActionPress:
		m.scroll += cardHeight
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if m.drag.Dragging() {
			// A second press without a release: treat the old gesture as lost.
			m.drag.HandleEvent(sortable.Event{Kind: sortable.EventEnd, Y: msg.Y})
		}
		m.pressed = nil
		v, ok := m.cardAt(msg.Y)
		if !ok || !v.Bounds().Contains(msg.Y) {
			return
		}
		m.selected = v.Index()
		m.pressed = &pressState{key: v.Key(), index: v.Index(), y: msg.Y}

	case tea.MouseActionMotion:
		if !m.drag.Dragging() {
			if m.pressed == nil || msg.Y == m.pressed.y {
				return
			}
			// First motion after a press promotes it to a drag.
			src := m.viewByKey(m.pressed.key)
			m.pressed = nil
			if src == nil {
				return
			}
			m.drag.HandleEvent(sortable.Event{Kind: sortable.EventStart, Y: msg.Y, Target: src})
			if !m.drag.Dragging() {
				return
			}
		}
		if !m.inContainer(msg.X, msg.Y) {
			m.drag.HandleEvent(sortable.Event{Kind: sortable.EventLeave, Y: msg.Y})
			return
		}
		target, _ := m.cardAt(msg.Y)
		m.drag.HandleEvent(sortable.Event{Kind: sortable.EventMove, Y: msg.Y, Target: target})

	case tea.MouseActionRelease:
		m.pressed = nil
		if !m.drag.Dragging() {
			return
		}
		if m.inContainer(msg.X, msg.Y) {
			if mv, ok := m.drag.HandleEvent(sortable.Event{Kind: sortable.EventDrop, Y: msg.Y}); ok {
				m.applyMove(mv)
			}
		}
		m.drag.HandleEvent(sortable.Event{Kind: sortable.EventEnd, Y: msg.Y})
		if m.drag.LastOutcome() == sortable.OutcomeCancelled {
			m.log.Debug().Msg("tui: drag cancelled")
		}
	}
}

// viewByKey returns nil (an untyped interface) when the key is not rendered.
func (m *appModel) viewByKey(key string) sortable.View {
	for _, v := range m.views {
		if v.key == key {
			return v.rowView
		}
	}
	return nil
}
