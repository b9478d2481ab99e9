package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"pdfmerge-cli/internal/docs"
	"pdfmerge-cli/internal/pdf"
	"pdfmerge-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

const historyModalLimit = 10

func (m *appModel) openHelpModal() {
	var parts []string
	for _, topic := range []string{"keys", "drag"} {
		if md, ok := docs.Get(topic); ok {
			parts = append(parts, md)
		}
	}
	m.modalTitle = "Help"
	m.modalBody = renderMarkdown(strings.Join(parts, "\n\n"), modalBodyWidth(m.width))
	m.modal = modalHelp
}

func (m *appModel) openHistoryModal() tea.Cmd {
	m.modalTitle = "Recent merges"
	m.modalBody = styleMuted().Render("loading...")
	m.modal = modalHistory
	return loadHistoryCmd(m.history)
}

func loadHistoryCmd(h *store.History) tea.Cmd {
	return func() tea.Msg {
		if h == nil {
			return historyLoadedMsg{err: fmt.Errorf("history is unavailable")}
		}
		recs, err := h.List(context.Background(), historyModalLimit)
		if err != nil {
			return historyLoadedMsg{err: err}
		}
		lines := make([]string, 0, len(recs))
		for _, r := range recs {
			lines = append(lines, fmt.Sprintf("%s  %s  %d files %s %d pages %s %s",
				r.CreatedAt.Local().Format("2006-01-02 15:04"),
				filepath.Base(r.OutputPath),
				len(r.Inputs), glyphSep(), r.Pages, glyphSep(), pdf.FormatSize(r.Bytes)))
		}
		return historyLoadedMsg{lines: lines}
	}
}

func (m *appModel) handleHistoryLoaded(msg historyLoadedMsg) {
	if m.modal != modalHistory {
		return
	}
	switch {
	case msg.err != nil:
		m.modalBody = styleStatus(statusError).Render(msg.err.Error())
	case len(msg.lines) == 0:
		m.modalBody = styleMuted().Render("No merges yet.")
	default:
		m.modalBody = strings.Join(msg.lines, "\n")
	}
}

func (m *appModel) renderInfoModal() string {
	body := m.modalBody + "\n\n" + styleMuted().Render("esc/q: close")
	return renderModalBox(m.width, m.modalTitle, body)
}
