package tui

import (
	"os"
	"strings"
	"sync"
)

// Terminal apps can't change the user's font, but they can pick between
// Unicode and ASCII glyphs for affordances (drag handles, placeholder fill).

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// applyGlyphPreference: env beats config; unknown values are ignored.
func applyGlyphPreference(configured string) {
	for _, v := range []string{os.Getenv("PDFMERGE_TUI_GLYPHS"), configured} {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "unicode", "utf8":
			setGlyphs(glyphSetUnicode)
			return
		case "ascii":
			setGlyphs(glyphSetASCII)
			return
		}
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphDragHandle() string {
	if glyphs() == glyphSetASCII {
		return "::"
	}
	return "⋮⋮"
}

func glyphFile() string {
	if glyphs() == glyphSetASCII {
		return "#"
	}
	return "▤"
}

func glyphPlaceholderFill() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "┄"
}

func glyphSep() string {
	if glyphs() == glyphSetASCII {
		return "|"
	}
	return "·"
}
