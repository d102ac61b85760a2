package tui

import (
	"net/url"
	"strings"
	"unicode"

	xansi "github.com/charmbracelet/x/ansi"
)

// sanitizeText is the only path from remote data to the screen. It strips ANSI
// escape sequences (CSI, OSC, DCS...), then drops the remaining control and
// bidi-override runes. Newlines and tabs survive as plain whitespace.
func sanitizeText(s string) string {
	if s == "" {
		return ""
	}
	s = xansi.Strip(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n':
			b.WriteRune('\n')
		case r == '\t':
			b.WriteRune(' ')
		case unicode.IsControl(r), unicode.Is(unicode.Bidi_Control, r):
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// sanitizeLine is sanitizeText for single-line slots (names, list rows).
func sanitizeLine(s string) string {
	s = sanitizeText(s)
	if strings.ContainsRune(s, '\n') {
		s = strings.Join(strings.Fields(s), " ")
	}
	return s
}

// sanitizeLink returns a link target safe to embed in an OSC 8 hyperlink. Only
// absolute http(s) URLs with a host are accepted.
func sanitizeLink(raw string) (string, bool) {
	raw = strings.TrimSpace(sanitizeLine(raw))
	if raw == "" || strings.ContainsAny(raw, " \x1b") {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return "", false
	}
	if u.Host == "" {
		return "", false
	}
	return u.String(), true
}

// hyperlink wraps label in an OSC 8 hyperlink. Terminals without support show
// the label only.
func hyperlink(target, label string) string {
	return xansi.SetHyperlink(target) + label + xansi.ResetHyperlink()
}
