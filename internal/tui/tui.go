package tui

import (
	"pdfmerge-cli/internal/pdf"
	"pdfmerge-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

type Options struct {
	// Paths preload the list in order. When empty and the config asks for
	// it, the last session is restored instead.
	Paths   []string
	Config  *store.Config
	History *store.History
	Merger  *pdf.Merger
	Logger  zerolog.Logger
}

func Run(opts Options) error {
	var theme, glyphPref string
	if opts.Config != nil && opts.Config.TUI != nil {
		theme = opts.Config.TUI.Theme
		glyphPref = opts.Config.TUI.Glyphs
	}
	applyColorProfilePreference()
	applyThemePreference(theme)
	applyGlyphPreference(glyphPref)

	m := newAppModel(opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
