package tui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"lotr-ingest/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// filterCharacters returns a new slice of the characters whose name, race or
// realm contains query (case-insensitive). Unknown fields never match. The input
// is never modified.
func filterCharacters(chars []model.Character, query string) []model.Character {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]model.Character, 0, len(chars))
	for _, c := range chars {
		if q == "" ||
			strings.Contains(strings.ToLower(model.Field(c.Name).Or("")), q) ||
			strings.Contains(strings.ToLower(c.Race.Or("")), q) ||
			strings.Contains(strings.ToLower(c.Realm.Or("")), q) {
			out = append(out, c)
		}
	}
	return out
}

// sortCharacters orders in place: quote count descending, then name with English
// collation. The sort is stable so input order breaks remaining ties.
func sortCharacters(chars []model.Character) {
	col := collate.New(language.English)
	var buf collate.Buffer
	keys := make(map[string][]byte, len(chars))
	key := func(name string) []byte {
		if k, ok := keys[name]; ok {
			return k
		}
		k := append([]byte(nil), col.KeyFromString(&buf, name)...)
		buf.Reset()
		keys[name] = k
		return k
	}
	sort.SliceStable(chars, func(i, j int) bool {
		a, b := chars[i], chars[j]
		if a.QuoteCount != b.QuoteCount {
			return a.QuoteCount > b.QuoteCount
		}
		return string(key(a.Name)) < string(key(b.Name))
	})
}

// visibleCharacters is filter then sort, the pipeline rerun on every keystroke.
func visibleCharacters(chars []model.Character, query string) []model.Character {
	out := filterCharacters(chars, query)
	sortCharacters(out)
	return out
}

type characterItem struct {
	ch       model.Character
	selected bool
}

func (i characterItem) FilterValue() string { return i.ch.Name }
func (i characterItem) Title() string       { return sanitizeLine(i.ch.DisplayName()) }

func (i characterItem) Description() string {
	meta := sanitizeLine(i.ch.Race.Or(model.UnknownLabel))
	if i.ch.Realm.Known() {
		meta += " " + glyphDot() + " " + sanitizeLine(string(i.ch.Realm))
	}
	return meta
}

func quoteCountLabel(n int) string {
	if n > 0 {
		return fmt.Sprintf("%d quotes", n)
	}
	return "No quotes"
}

// characterItems flags the row whose ID matches selectedID. A selection that was
// filtered out stays selected but has no row to flag.
func characterItems(chars []model.Character, selectedID string) []list.Item {
	items := make([]list.Item, 0, len(chars))
	for _, c := range chars {
		items = append(items, characterItem{ch: c, selected: selectedID != "" && c.ID == selectedID})
	}
	return items
}

func searchPlaceholder(n int) string {
	return fmt.Sprintf("Search %d characters...", n)
}

// characterDelegate renders two lines per row: name + quote count, then
// race • realm.
type characterDelegate struct{}

func (d characterDelegate) Height() int                             { return 2 }
func (d characterDelegate) Spacing() int                            { return 0 }
func (d characterDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d characterDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(characterItem)
	if !ok {
		return
	}
	contentW := m.Width() - 2
	if contentW < 8 {
		return
	}

	marker := "  "
	if it.selected {
		marker = lipgloss.NewStyle().Foreground(colorAccent).Render(glyphSelected())
	}

	count := quoteCountLabel(it.ch.QuoteCount)
	countStyle := styleMuted()
	if it.ch.QuoteCount > 0 {
		countStyle = lipgloss.NewStyle().Foreground(colorAccent)
	}
	name := fitWidth(it.Title(), contentW-xansi.StringWidth(count)-1)
	line1 := name + " " + countStyle.Render(count)
	line2 := styleMuted().Render(fitWidth(it.Description(), contentW))

	rowStyle := lipgloss.NewStyle().Width(contentW)
	if index == m.Index() {
		rowStyle = rowStyle.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	}
	fmt.Fprint(w, marker+rowStyle.Render(line1)+"\n"+marker+rowStyle.Render(line2))
}

// fitWidth pads or cuts s to exactly w cells.
func fitWidth(s string, w int) string {
	if w <= 0 {
		return ""
	}
	sw := xansi.StringWidth(s)
	switch {
	case sw < w:
		return s + strings.Repeat(" ", w-sw)
	case sw > w:
		return xansi.Truncate(s, w, glyphEllipsis())
	default:
		return s
	}
}

func newCharacterList() list.Model {
	l := newList("Characters", characterDelegate{})
	l.SetStatusBarItemName("character", "characters")
	return l
}
