package tui

import (
	"fmt"
	"strings"

	"pdfmerge-cli/internal/pdf"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (m appModel) View() string {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}

	switch m.modal {
	case modalConfirmClear:
		body := fmt.Sprintf("Remove all %d files from the list?", m.list.Len())
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center,
			renderConfirmModal(w, "Clear list", body, "Clear", "Cancel", m.confirm))
	case modalPickFile:
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, m.renderFilePickerModal())
	case modalHelp, modalHistory:
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, m.renderInfoModal())
	}

	lines := make([]string, 0, h)
	lines = append(lines, m.renderHeader(w)...)
	lines = append(lines, m.renderList(w)...)
	lines = append(lines, m.renderFooter(w)...)
	return strings.Join(lines, "\n")
}

func (m appModel) renderHeader(w int) []string {
	var total int64
	for _, it := range m.list.Items() {
		total += it.SizeBytes
	}
	title := styleHeader().Render("PDF merge")
	summary := styleMuted().Render(fmt.Sprintf("  %d files %s %s", m.list.Len(), glyphSep(), pdf.FormatSize(total)))
	hint := ""
	if m.drag.Dragging() {
		hint = styleMuted().Render("drop to reorder, release outside or esc to cancel")
	}
	return padLines([]string{ansi.Truncate(title+summary, w, "…"), ansi.Truncate(hint, w, "…")}, headerRows)
}

func (m appModel) renderList(w int) []string {
	if m.list.Len() == 0 {
		empty := styleMuted().Render("No files selected. Press a to add PDF files.")
		return padLines([]string{empty}, m.lay.listHeight)
	}

	content := make([]string, 0, m.lay.content)
	phDone := m.lay.phTop < 0
	placeholder := func() {
		fill := strings.Repeat(glyphPlaceholderFill(), w)
		for i := 0; i < m.lay.phHeight; i++ {
			content = append(content, stylePlaceholder().Render(fill))
		}
		phDone = true
	}
	for _, v := range m.views {
		if !phDone && len(content) == m.lay.phTop {
			placeholder()
		}
		content = append(content, m.renderCard(v, w)...)
	}
	if !phDone {
		placeholder()
	}

	end := m.lay.scroll + m.lay.listHeight
	if end > len(content) {
		end = len(content)
	}
	start := m.lay.scroll
	if start > end {
		start = end
	}
	return padLines(content[start:end], m.lay.listHeight)
}

func (m appModel) renderCard(v cardView, w int) []string {
	it := v.item
	line1 := fmt.Sprintf("%s %s %s (%s)", glyphDragHandle(), glyphFile(), it.Label, pdf.FormatSize(it.SizeBytes))
	meta := it.Path
	if it.Pages > 0 {
		meta = fmt.Sprintf("%d pages %s %s", it.Pages, glyphSep(), it.Path)
	}
	line2 := "     " + meta

	line1 = ansi.Truncate(line1, w, "…")
	line2 = ansi.Truncate(line2, w, "…")

	switch {
	case m.drag.IsGhost(v.key):
		st := styleGhost()
		return []string{st.Render(line1), st.Render(line2)}
	case v.index == m.selected:
		st := styleCard(true).Width(w)
		return []string{st.Render(line1), st.Render(line2)}
	default:
		return []string{styleCard(false).Render(line1), styleMuted().Render(line2)}
	}
}

func (m appModel) renderFooter(w int) []string {
	status := ""
	if m.status != "" {
		status = styleStatus(m.statusKind).Render(ansi.Truncate(m.status, w, "…"))
	}
	progressLine := ""
	if m.merging {
		step := fmt.Sprintf(" %d/%d", m.mergeStep, len(m.mergePaths))
		progressLine = m.progress.ViewAs(m.mergeFraction()) + styleMuted().Render(step)
	}
	helpLine := m.help.ShortHelpView(m.keys.ShortHelp())
	return []string{status, progressLine, helpLine}
}

func padLines(lines []string, n int) []string {
	for len(lines) < n {
		lines = append(lines, "")
	}
	if len(lines) > n {
		lines = lines[:n]
	}
	return lines
}
