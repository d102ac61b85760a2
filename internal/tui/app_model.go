package tui

import (
	"context"
	"time"

	"lotr-ingest/internal/format"
	"lotr-ingest/internal/model"
	"lotr-ingest/internal/store"
	"lotr-ingest/internal/workflow"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/rs/zerolog"
)

const defaultOpTimeout = 5 * time.Minute

// ReportJournal receives every published summary report.
type ReportJournal interface {
	Record(ctx context.Context, opID string, r model.SummaryReport) (string, error)
}

// Options wires the TUI to its collaborators. Journal may be nil.
type Options struct {
	Controller *workflow.Controller
	Journal    ReportJournal
	State      store.Store
	Logger     zerolog.Logger
	// Timeout bounds each network operation.
	Timeout time.Duration
}

type tab int

const (
	tabCharacters tab = iota
	tabMovies
)

func (t tab) String() string {
	if t == tabMovies {
		return "movies"
	}
	return "characters"
}

func parseTab(s string) tab {
	if s == "movies" {
		return tabMovies
	}
	return tabCharacters
}

type appModel struct {
	ctrl    *workflow.Controller
	journal ReportJournal
	state   store.Store
	log     zerolog.Logger
	timeout time.Duration

	width  int
	height int

	keys keyMap
	help help.Model

	mode  viewMode
	slice format.Slice
	tab   tab

	search    textinput.Model
	searching bool
	// visible is the filtered, sorted projection of the dataset's characters.
	visible []model.Character

	charList  list.Model
	movieList list.Model

	detail     viewport.Model
	detailOpen bool
	raw        viewport.Model

	spinner spinner.Model

	confirm      *workflow.ConfirmationRequest
	confirmFocus confirmModalFocus

	copied  bool
	copySeq int

	minibufferText string
}

type opDoneMsg struct {
	outcome workflow.Outcome
}

// selectCharacterMsg carries the identity of the character to show.
type selectCharacterMsg struct {
	id string
}

func newAppModel(opts Options) appModel {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultOpTimeout
	}

	search := textinput.New()
	search.Prompt = "🔍 "
	search.Placeholder = searchPlaceholder(0)
	search.CharLimit = 100
	search.Width = 40
	// A blinking cursor would keep a timer running for the whole session.
	_ = search.Cursor.SetMode(cursor.CursorStatic)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := appModel{
		ctrl:      opts.Controller,
		journal:   opts.Journal,
		state:     opts.State,
		log:       opts.Logger.With().Str("component", "tui").Logger(),
		timeout:   timeout,
		keys:      defaultKeyMap(),
		help:      help.New(),
		search:    search,
		charList:  newCharacterList(),
		movieList: newMovieList(),
		detail:    viewport.New(0, 0),
		raw:       viewport.New(0, 0),
		spinner:   sp,
	}

	if st, err := m.state.LoadTUIState(); err != nil {
		m.log.Warn().Err(err).Msg("load tui state")
	} else {
		m.mode = parseViewMode(st.ViewMode)
		if s, err := format.ParseSlice(st.RawSlice); err == nil {
			m.slice = s
		}
		m.tab = parseTab(st.Tab)
	}
	m.refreshData()
	return m
}

func (m *appModel) saveState() {
	err := m.state.SaveTUIState(&store.TUIState{
		ViewMode: m.mode.String(),
		RawSlice: m.slice.String(),
		Tab:      m.tab.String(),
	})
	if err != nil {
		m.log.Warn().Err(err).Msg("save tui state")
	}
}

func (m *appModel) showMinibuffer(text string) {
	m.minibufferText = text
}

// refreshData rebuilds every derived projection of the controller's dataset.
func (m *appModel) refreshData() {
	ds := m.ctrl.Dataset()
	if ds == nil {
		m.visible = nil
		m.detailOpen = false
		m.charList.SetItems(nil)
		m.movieList.SetItems(nil)
		m.search.Placeholder = searchPlaceholder(0)
		m.raw.SetContent("")
		return
	}
	m.refreshCharacters()
	m.movieList.SetItems(movieItems(ds.Movies))
	m.refreshRaw()
}

// refreshCharacters reruns filter + sort for the current query.
func (m *appModel) refreshCharacters() {
	ds := m.ctrl.Dataset()
	if ds == nil {
		m.visible = nil
		m.charList.SetItems(nil)
		return
	}
	m.visible = visibleCharacters(ds.Characters, m.search.Value())
	m.charList.SetItems(characterItems(m.visible, m.ctrl.SelectedID()))
	m.search.Placeholder = searchPlaceholder(len(m.visible))
}

func (m *appModel) refreshRaw() {
	m.raw.SetContent(renderRaw(m.ctrl.Dataset(), m.slice, m.raw.Width))
	m.raw.GotoTop()
}

func (m *appModel) refreshDetail() {
	ch, ok := m.ctrl.SelectedCharacter()
	if !ok {
		m.detailOpen = false
		m.detail.SetContent("")
		return
	}
	m.detail.SetContent(renderCharacterDetail(ch, m.detail.Width))
}
