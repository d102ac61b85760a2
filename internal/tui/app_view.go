package tui

import (
	"fmt"
	"strings"

	"lotr-ingest/internal/format"
	"lotr-ingest/internal/model"

	"github.com/charmbracelet/lipgloss"
)

const (
	headerLines = 2
	tabLines    = 1
	logLines    = 6
	footerLines = 1
	minBody     = 3
)

func (m appModel) contentWidth() int {
	if m.width < 20 {
		return 20
	}
	return m.width
}

func (m appModel) bodyHeight() int {
	h := m.height - headerLines - tabLines - (logLines + 1) - footerLines
	if r := m.ctrl.Report(); r != nil {
		h -= lipgloss.Height(renderReport(r, m.contentWidth())) + 1
	}
	if h < minBody {
		h = minBody
	}
	return h
}

func (m appModel) detailVisible() bool {
	return m.detailOpen && m.mode == viewRendered && m.tab == tabCharacters
}

// layout sizes every sub-component for the current window and panel state.
func (m *appModel) layout() {
	w := m.contentWidth()
	bodyH := m.bodyHeight()

	listW := w
	if m.detailVisible() {
		listW = w * 2 / 5
		detailW := w - listW - 3
		if detailW != m.detail.Width {
			m.detail.Width = detailW
			m.refreshDetail()
		}
		m.detail.Height = bodyH
	}
	// One line for the search input.
	m.charList.SetSize(listW, bodyH-1)
	m.search.Width = max(listW-4, 10)
	m.movieList.SetSize(w, bodyH)

	m.raw.Height = bodyH
	if m.raw.Width != w {
		m.raw.Width = w
		m.refreshRaw()
	}
	m.help.Width = w
}

func (m appModel) View() string {
	w := m.contentWidth()
	if m.confirm != nil {
		modal := renderConfirmModal(w, m.confirm.Title, m.confirm.Prompt, "Destroy it", "Keep it", m.confirmFocus)
		return lipgloss.Place(w, m.height, lipgloss.Center, lipgloss.Center, modal)
	}

	sections := []string{m.viewHeader(), m.viewTabs(), m.viewBody()}
	if r := m.ctrl.Report(); r != nil {
		sections = append(sections, styleHeading().Render("Summary"), renderReport(r, w))
	}
	sections = append(sections,
		styleHeading().Render("Log"),
		renderLogPanel(m.ctrl.Logs().Entries(), w, logLines),
		m.viewFooter(),
	)
	return strings.Join(sections, "\n")
}

func (m appModel) viewHeader() string {
	title := styleHeading().Render("💍 LOTR Ingest")
	status := styleMuted().Render(m.mode.String() + " view")
	if op, ok := m.ctrl.InFlight(); ok {
		status = m.spinner.View() + " " + processingLabel(op)
	}
	line1 := title + "  " + status

	line2 := styleMuted().Render("Press f to fetch characters, quotes and movies.")
	if ds := m.ctrl.Dataset(); ds != nil {
		line2 = statsHeader(ds.Stats)
	}
	return line1 + "\n" + line2
}

func statsHeader(s model.Stats) string {
	label := styleMuted()
	return strings.Join([]string{
		fmt.Sprintf("%d %s", s.CharacterCount, label.Render("characters")),
		fmt.Sprintf("%d %s", s.QuoteCount, label.Render("quotes")),
		fmt.Sprintf("%d %s", s.MovieCount, label.Render("movies")),
		fmt.Sprintf("%d %s", s.CharactersWithQuotes, label.Render("speakers")),
	}, "  ·  ")
}

func (m appModel) viewTabs() string {
	ds := m.ctrl.Dataset()
	if m.mode == viewRaw {
		line := rawSliceTabs(m.slice)
		if ds != nil {
			copyText := copyLabel
			if m.copied {
				copyText = copiedLabel
			}
			line += "   " + styleMuted().Render(format.Caption(ds, m.slice)) + "   " + copyText
		}
		return line
	}
	nChars, nMovies := 0, 0
	if ds != nil {
		nChars, nMovies = len(ds.Characters), len(ds.Movies)
	}
	chars := fmt.Sprintf("Characters (%d)", nChars)
	movies := fmt.Sprintf("Movies (%d)", nMovies)
	if m.tab == tabMovies {
		return styleMuted().Render(" "+chars+" ") + " " + styleHeading().Render("["+movies+"]")
	}
	return styleHeading().Render("["+chars+"]") + " " + styleMuted().Render(" "+movies+" ")
}

func (m appModel) viewBody() string {
	w := m.contentWidth()
	bodyH := m.bodyHeight()
	box := lipgloss.NewStyle().Width(w).Height(bodyH).MaxHeight(bodyH)

	if !m.ctrl.HasDataset() {
		return box.Render(styleMuted().Render("No dataset loaded."))
	}
	if m.mode == viewRaw {
		return box.Render(m.raw.View())
	}
	if m.tab == tabMovies {
		if len(m.movieList.Items()) == 0 {
			return box.Render(styleMuted().Render("No movies in this dataset."))
		}
		return box.Render(m.movieList.View())
	}

	list := m.charList.View()
	if len(m.visible) == 0 {
		list = styleMuted().Render("No characters match your search.")
	}
	left := m.search.View() + "\n" + list
	if !m.detailVisible() {
		return box.Render(left)
	}
	listW := w * 2 / 5
	left = lipgloss.NewStyle().Width(listW).Height(bodyH).MaxHeight(bodyH).Render(left)
	sep := lipgloss.NewStyle().Foreground(colorMuted).Render(strings.TrimRight(strings.Repeat(" "+glyphVBar()+"\n", bodyH), "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, sep, " "+m.detail.View())
}

func (m appModel) viewFooter() string {
	if strings.TrimSpace(m.minibufferText) != "" {
		return fitWidth(m.minibufferText, m.contentWidth())
	}
	return m.help.View(m.keys)
}
