package tui

import (
	"fmt"
	"strings"

	"lotr-ingest/internal/model"

	"github.com/charmbracelet/lipgloss"
)

const (
	noQuotesText = "This character has no recorded quotes in the films."
	spouseNone   = "None"
	wikiLabel    = "📖 View on Wiki"
)

// renderCharacterDetail is a pure function of the character and width:
// re-selecting the same character yields identical output.
func renderCharacterDetail(c model.Character, width int) string {
	if width < 20 {
		width = 20
	}
	label := styleMuted()
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	b.WriteString(styleHeading().Render(field(model.Field(c.Name), model.UnknownLabel)))
	b.WriteString("\n\n")

	stat := func(icon, name, value string) string {
		return icon + " " + label.Render(name+":") + " " + value
	}
	b.WriteString(wrap.Render(strings.Join([]string{
		stat("🧝", "Race", field(c.Race, model.UnknownLabel)),
		stat("👤", "Gender", field(c.Gender, model.UnknownLabel)),
		stat("🏰", "Realm", field(c.Realm, model.UnknownLabel)),
		stat("💬", "Quotes", fmt.Sprint(c.QuoteCount)),
	}, "   ")))
	b.WriteString("\n\n")

	rows := []struct {
		name  string
		value string
	}{
		{"Birth", field(c.Birth, model.UnknownLabel)},
		{"Death", field(c.Death, model.UnknownLabel)},
		{"Spouse", field(c.Spouse, spouseNone)},
		{"Height", field(c.Height, model.UnknownLabel)},
		{"Hair", field(c.Hair, model.UnknownLabel)},
	}
	for _, r := range rows {
		b.WriteString(wrap.Render(label.Render(fmt.Sprintf("%-7s", r.name+":")) + " " + r.value))
		b.WriteString("\n")
	}
	if target, ok := sanitizeLink(string(c.WikiURL)); ok {
		b.WriteString(hyperlink(target, wikiLabel))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleHeading().Render(fmt.Sprintf("💬 Quotes (%d)", c.QuoteCount)))
	b.WriteString("\n")
	if len(c.SampleQuotes) == 0 {
		b.WriteString(styleMuted().Render(noQuotesText))
		return b.String()
	}
	quoteStyle := lipgloss.NewStyle().Width(width - 2).PaddingLeft(2)
	for _, q := range c.SampleQuotes {
		b.WriteString("\n")
		b.WriteString(quoteStyle.Render(`"` + sanitizeText(q.Dialog) + `"`))
		b.WriteString("\n")
		b.WriteString(quoteStyle.Render(label.Render("— " + field(model.Field(q.Movie), model.UnknownLabel))))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// field falls back when the value is unknown or sanitizes to nothing.
func field(f model.Field, fallback string) string {
	if s := strings.TrimSpace(sanitizeLine(f.Or(fallback))); s != "" {
		return s
	}
	return fallback
}
