package tui

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func filePickerHeight(screenH int) int {
	// Leave room for the modal title, borders, and help line.
	h := screenH - 12
	if h < 6 {
		h = 6
	}
	if h > 18 {
		h = 18
	}
	return h
}

func (m *appModel) openFilePicker() tea.Cmd {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".pdf", ".PDF"}
	fp.FileAllowed = true
	fp.DirAllowed = false
	fp.ShowHidden = false
	fp.ShowPermissions = false
	fp.ShowSize = true
	fp.AutoHeight = false
	fp.Height = filePickerHeight(m.height)
	fp.Cursor = "›"
	if glyphs() == glyphSetASCII {
		fp.Cursor = ">"
	}
	fp.KeyMap.Back = key.NewBinding(
		key.WithKeys("h", "backspace", "left"),
		key.WithHelp("h", "up"),
	)

	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(colorAccent)
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(colorAccent)
	fp.Styles.Symlink = lipgloss.NewStyle().Foreground(colorAccent)
	fp.Styles.DisabledFile = styleMuted()
	fp.Styles.DisabledSelected = styleMuted()
	fp.Styles.FileSize = styleMuted().Width(fp.Styles.FileSize.GetWidth()).Align(lipgloss.Right)

	// Start where the last pick happened, else the output dir, else home.
	startDir := strings.TrimSpace(m.pickerDir)
	if startDir == "" {
		startDir = strings.TrimSpace(m.cfg.OutputDir)
	}
	if startDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			startDir = home
		}
	}
	if startDir == "" {
		startDir = "."
	}
	fp.CurrentDirectory = startDir

	m.picker = fp
	m.modal = modalPickFile
	return fp.Init()
}

func (m *appModel) updateFilePicker(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, m.keys.Cancel) {
		m.modal = modalNone
		return nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.pickerDir = filepath.Dir(path)
		m.modal = modalNone
		m.addPaths([]string{path})
		return cmd
	}
	if ok, _ := m.picker.DidSelectDisabledFile(msg); ok {
		m.setStatus(statusError, msgOnlyPDF)
	}
	return cmd
}

func (m *appModel) renderFilePickerModal() string {
	help := styleMuted().Render("enter: add   esc: cancel   h/backspace: up   l/right: open dir   j/k: move")
	body := styleMuted().Render(m.picker.CurrentDirectory) + "\n\n" + m.picker.View() + "\n" + help
	return renderModalBox(m.width, "Add PDF", body)
}
