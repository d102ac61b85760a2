package tui

import (
	"fmt"
	"io"
	"strings"

	"lotr-ingest/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type movieItem struct {
	mv model.Movie
}

func (i movieItem) FilterValue() string { return i.mv.Name }
func (i movieItem) Title() string       { return sanitizeLine(model.Field(i.mv.Name).Or(model.UnknownLabel)) }

// Description is "N min" (or "N/A"), followed by budget and awards when present.
func (i movieItem) Description() string {
	parts := []string{"N/A"}
	if i.mv.RuntimeInMinutes != nil && *i.mv.RuntimeInMinutes > 0 {
		parts[0] = model.FormatNumber(*i.mv.RuntimeInMinutes) + " min"
	}
	if i.mv.BudgetInMillions != nil && *i.mv.BudgetInMillions > 0 {
		parts = append(parts, "$"+model.FormatNumber(*i.mv.BudgetInMillions)+"M budget")
	}
	if i.mv.AcademyAwardWins != nil && *i.mv.AcademyAwardWins > 0 {
		parts = append(parts, fmt.Sprintf("%d Academy Awards", *i.mv.AcademyAwardWins))
	}
	return strings.Join(parts, " · ")
}

// movieItems keeps source order.
func movieItems(movies []model.Movie) []list.Item {
	items := make([]list.Item, 0, len(movies))
	for _, mv := range movies {
		items = append(items, movieItem{mv: mv})
	}
	return items
}

type movieDelegate struct{}

func (d movieDelegate) Height() int                             { return 2 }
func (d movieDelegate) Spacing() int                            { return 0 }
func (d movieDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d movieDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(movieItem)
	if !ok {
		return
	}
	contentW := m.Width() - 2
	if contentW < 8 {
		return
	}
	rowStyle := lipgloss.NewStyle().Width(contentW)
	if index == m.Index() {
		rowStyle = rowStyle.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	}
	line1 := fitWidth("🎬 "+it.Title(), contentW)
	line2 := styleMuted().Render(fitWidth(it.Description(), contentW))
	fmt.Fprint(w, "  "+rowStyle.Render(line1)+"\n  "+rowStyle.Render(line2))
}

func newMovieList() list.Model {
	l := newList("Movies", movieDelegate{})
	l.SetStatusBarItemName("movie", "movies")
	return l
}
