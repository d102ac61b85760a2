package tui

import (
	"os"
	"strings"
	"sync"
)

// Some terminals/fonts render box-drawing glyphs badly, so the UI affordances
// (selection marker, separators) have an ASCII fallback.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

const glyphsEnv = "LOTR_INGEST_TUI_GLYPHS"

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(glyphsEnv))) {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	defer glyphsMu.RUnlock()
	return currentGlyphs
}

func glyphSelected() string {
	if glyphs() == glyphSetASCII {
		return "> "
	}
	return "▌ "
}

func glyphDot() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "•"
}

func glyphVBar() string {
	if glyphs() == glyphSetASCII {
		return "|"
	}
	return "│"
}

func glyphEllipsis() string {
	if glyphs() == glyphSetASCII {
		return "..."
	}
	return "…"
}
