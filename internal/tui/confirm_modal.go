package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func modalWidth(screenW int) int {
	if screenW <= 0 {
		screenW = defaultWidth
	}
	w := screenW - 8
	if w > 72 {
		w = 72
	}
	if w < 24 {
		w = 24
	}
	return w
}

// modalBodyWidth is the usable width inside the modal's border and padding.
func modalBodyWidth(screenW int) int {
	return modalWidth(screenW) - 4
}

func renderModalBox(screenW int, title string, body string) string {
	w := modalWidth(screenW)
	head := styleHeader().Render(title)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1).
		Width(w - 2)
	return box.Render(head + "\n\n" + body)
}

func renderConfirmModal(width int, title string, body string, confirmLabel string, cancelLabel string, focus confirmModalFocus) string {
	// No borders on the buttons: nested borders inside a bordered modal render
	// badly on some terminals.
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render(confirmLabel)
	cancel := btnBase.Render(cancelLabel)
	if focus == confirmFocusConfirm {
		confirm = btnActive.Render(confirmLabel)
	}
	if focus == confirmFocusCancel {
		cancel = btnActive.Render(cancelLabel)
	}

	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, " ", cancel)
	help := styleMuted().Width(modalBodyWidth(width)).Render("tab: focus   enter: select   y/n   esc: cancel")

	content := strings.Join([]string{
		body,
		"",
		controls,
		"",
		help,
	}, "\n")
	return renderModalBox(width, title, content)
}
