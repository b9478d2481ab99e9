package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Init() tea.Cmd {
	return nil
}

// Update handles msg, then re-lays out the list so the drag controller always
// sees the views of the frame about to be drawn.
func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.relayout()
	return m, cmd
}

func (m *appModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = max(msg.Width-12, 10)
		if m.modal == modalPickFile {
			m.picker.Height = filePickerHeight(m.height)
		}
		return nil

	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.clearStatus()
		}
		return nil

	case mergeStepMsg:
		return m.handleMergeStep(msg)

	case mergeDoneMsg:
		return m.handleMergeDone(msg)

	case historyLoadedMsg:
		m.handleHistoryLoaded(msg)
		return nil

	case tea.MouseMsg:
		if m.modal != modalNone {
			return nil
		}
		m.handleMouse(msg)
		return nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.modal == modalPickFile {
		return m.updateFilePicker(msg)
	}
	return nil
}

func (m *appModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		m.drag.Cancel()
		m.cancelMerge()
		return tea.Quit
	}

	switch m.modal {
	case modalPickFile:
		return m.updateFilePicker(msg)
	case modalConfirmClear:
		m.handleConfirmClearKey(msg)
		return nil
	case modalHelp, modalHistory:
		if key.Matches(msg, m.keys.Cancel, m.keys.Quit, m.keys.Help) || msg.Type == tea.KeyEnter {
			m.modal = modalNone
		}
		return nil
	}

	// Esc first ends a drag, then a running merge.
	if key.Matches(msg, m.keys.Cancel) {
		switch {
		case m.drag.Dragging():
			m.drag.Cancel()
			m.pressed = nil
		case m.merging:
			m.cancelMerge()
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.drag.Cancel()
		m.cancelMerge()
		return tea.Quit
	case isMoveUp(msg):
		m.moveSelected(-1)
		m.relayout()
		m.scroll = m.lay.ensureVisible(m.selected)
	case isMoveDown(msg):
		m.moveSelected(1)
		m.relayout()
		m.scroll = m.lay.ensureVisible(m.selected)
	case key.Matches(msg, m.keys.Up):
		m.selectIndex(m.selected - 1)
	case key.Matches(msg, m.keys.Down):
		m.selectIndex(m.selected + 1)
	case key.Matches(msg, m.keys.Add):
		return m.openFilePicker()
	case key.Matches(msg, m.keys.Remove):
		m.removeSelected()
	case key.Matches(msg, m.keys.Clear):
		if m.list.Len() > 0 {
			m.modal = modalConfirmClear
			m.confirm = confirmFocusCancel
		}
	case key.Matches(msg, m.keys.Merge):
		return m.startMerge()
	case key.Matches(msg, m.keys.History):
		return m.openHistoryModal()
	case key.Matches(msg, m.keys.Help):
		m.openHelpModal()
	}
	return nil
}

func (m *appModel) handleConfirmClearKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "tab", "shift+tab", "left", "right":
		if m.confirm == confirmFocusConfirm {
			m.confirm = confirmFocusCancel
		} else {
			m.confirm = confirmFocusConfirm
		}
	case "y":
		m.modal = modalNone
		m.clearAll()
	case "n", "esc", "ctrl+g", "q":
		m.modal = modalNone
	case "enter":
		m.modal = modalNone
		if m.confirm == confirmFocusConfirm {
			m.clearAll()
		}
	}
}
