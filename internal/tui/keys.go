package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Add      key.Binding
	Remove   key.Binding
	Clear    key.Binding
	Merge    key.Binding
	History  key.Binding
	Help     key.Binding
	Cancel   key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		MoveUp:   key.NewBinding(key.WithKeys("shift+up", "K", "ctrl+k"), key.WithHelp("K", "move up")),
		MoveDown: key.NewBinding(key.WithKeys("shift+down", "J", "ctrl+j"), key.WithHelp("J", "move down")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Remove:   key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove")),
		Clear:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Merge:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "merge")),
		History:  key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Cancel:   key.NewBinding(key.WithKeys("esc", "ctrl+g"), key.WithHelp("esc", "cancel")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.MoveUp, k.MoveDown, k.Add, k.Remove, k.Merge, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.MoveUp, k.MoveDown},
		{k.Add, k.Remove, k.Clear},
		{k.Merge, k.History, k.Help, k.Cancel, k.Quit},
	}
}

// isMoveUp also accepts the raw shift/ctrl key types some terminals send
// instead of a named string.
func isMoveUp(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyShiftUp, tea.KeyCtrlK:
		return true
	}
	return key.Matches(msg, defaultKeyMap().MoveUp)
}

func isMoveDown(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyShiftDown, tea.KeyCtrlJ:
		return true
	}
	return key.Matches(msg, defaultKeyMap().MoveDown)
}
