package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal backgrounds.
// Faint styling is only applied on dark backgrounds (faint text on light
// terminals often becomes illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted      lipgloss.TerminalColor = ac("240", "243")
	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")
	colorControlBg  lipgloss.TerminalColor = ac("252", "235")
	colorSurfaceFg  lipgloss.TerminalColor = ac("235", "252")
	colorAccent     lipgloss.TerminalColor = ac("27", "62")
	colorGhostFg    lipgloss.TerminalColor = ac("250", "240")
	colorSuccessFg  lipgloss.TerminalColor = ac("28", "78")
	colorErrorFg    lipgloss.TerminalColor = ac("160", "203")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleHeader() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true)
}

func styleCard(selected bool) lipgloss.Style {
	st := lipgloss.NewStyle().Foreground(colorSurfaceFg)
	if selected {
		st = st.Background(colorSelectedBg).Foreground(colorSelectedFg).Bold(true)
	}
	return st
}

// styleGhost marks the card being dragged.
func styleGhost() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorGhostFg).Italic(true))
}

func stylePlaceholder() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorAccent)
}

func styleStatus(kind statusKind) lipgloss.Style {
	switch kind {
	case statusSuccess:
		return lipgloss.NewStyle().Foreground(colorSuccessFg).Bold(true)
	case statusError:
		return lipgloss.NewStyle().Foreground(colorErrorFg).Bold(true)
	default:
		return styleMuted()
	}
}

// applyColorProfilePreference sets Lip Gloss's color profile for the TUI.
//
// termenv.EnvColorProfile respects CLICOLOR/CLICOLOR_FORCE, which can disable
// colors in a TUI by accident, so only NO_COLOR is honored here.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	// Trust TERM/COLORTERM when they claim more than the detector reports.
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") {
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}

	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures Lip Gloss's background detection.
//
// Priority:
// 1) PDFMERGE_TUI_THEME=light|dark|auto
// 2) configured theme (config.json tui.theme)
// 3) COLORFGBG heuristic ("fg;bg")
func applyThemePreference(configured string) {
	for _, v := range []string{os.Getenv("PDFMERGE_TUI_THEME"), configured} {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "light":
			lipgloss.SetHasDarkBackground(false)
			return
		case "dark":
			lipgloss.SetHasDarkBackground(true)
			return
		}
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}

func markdownStyle() string {
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
