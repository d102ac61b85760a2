package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lotr-ingest/internal/format"
	"lotr-ingest/internal/model"
	"lotr-ingest/internal/workflow"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const journalTimeout = 5 * time.Second

func (m appModel) Init() tea.Cmd { return nil }

// Update recovers from panics so one bad message degrades to a log line instead
// of tearing down the terminal.
func (m appModel) Update(msg tea.Msg) (out tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			m.ctrl.ReportUnexpected(fmt.Errorf("update %T: %v", msg, r))
			m.refreshData()
			out, cmd = m, nil
		}
	}()
	return m.update(msg)
}

func (m appModel) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case opDoneMsg:
		cmd := m.applyOutcome(msg.outcome)
		return m, cmd

	case selectCharacterMsg:
		if !m.ctrl.Select(msg.id) {
			return m, nil
		}
		m.detailOpen = true
		m.layout()
		m.refreshDetail()
		m.detail.GotoTop()
		m.charList.SetItems(characterItems(m.visible, m.ctrl.SelectedID()))
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("clipboard")
			m.ctrl.Note(msgCopyFailed, true)
			return m, nil
		}
		if msg.seq != m.copySeq {
			return m, nil
		}
		m.copied = true
		return m, copiedResetCmd(msg.seq)

	case copiedResetMsg:
		if msg.seq == m.copySeq {
			m.copied = false
		}
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.Processing() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.minibufferText = ""
	if m.confirm != nil {
		return m.updateConfirm(msg)
	}
	if m.searching {
		return m.updateSearch(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Fetch):
		p, err := m.ctrl.BeginFetch()
		if err != nil {
			m.rejected(err)
			return m, nil
		}
		m.detailOpen = false
		return m, m.start(p)

	case key.Matches(msg, m.keys.Ingest):
		p, err := m.ctrl.BeginCommitCharacters()
		if err != nil {
			m.rejected(err)
			return m, nil
		}
		return m, m.start(p)

	case key.Matches(msg, m.keys.IngestQuotes):
		p, err := m.ctrl.BeginCommitQuotes()
		if err != nil {
			m.rejected(err)
			return m, nil
		}
		return m, m.start(p)

	case key.Matches(msg, m.keys.Cancel):
		if err := m.ctrl.Cancel(); err != nil {
			m.rejected(err)
			return m, nil
		}
		m.search.SetValue("")
		m.refreshData()
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.Wipe):
		req, err := m.ctrl.RequestWipe()
		if err != nil {
			m.rejected(err)
			return m, nil
		}
		m.confirm = &req
		m.confirmFocus = confirmFocusCancel
		return m, nil

	case key.Matches(msg, m.keys.ToggleView):
		if m.mode == viewRaw {
			m.mode = viewRendered
		} else {
			m.mode = viewRaw
		}
		m.saveState()
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.Close):
		if m.detailOpen {
			m.closeDetail()
		}
		return m, nil
	}

	if m.mode == viewRaw {
		return m.updateRawKey(msg)
	}
	return m.updateRenderedKey(msg)
}

func (m appModel) updateRawKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Slice):
		idx := int(msg.String()[0] - '1')
		if idx >= 0 && idx < len(format.Slices) && format.Slices[idx] != m.slice {
			m.slice = format.Slices[idx]
			m.copied = false
			m.refreshRaw()
			m.saveState()
		}
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		doc := rawDocument(m.ctrl.Dataset(), m.slice)
		if doc == "" {
			return m, nil
		}
		m.copySeq++
		return m, copyCmd(m.copySeq, doc)
	}
	var cmd tea.Cmd
	m.raw, cmd = m.raw.Update(msg)
	return m, cmd
}

func (m appModel) updateRenderedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.SwitchTab):
		if m.tab == tabCharacters {
			m.tab = tabMovies
		} else {
			m.tab = tabCharacters
		}
		m.saveState()
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.Search):
		if m.tab != tabCharacters || !m.ctrl.HasDataset() {
			return m, nil
		}
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Select):
		if m.tab != tabCharacters {
			return m, nil
		}
		it, ok := m.charList.SelectedItem().(characterItem)
		if !ok {
			return m, nil
		}
		id := it.ch.ID
		return m, func() tea.Msg { return selectCharacterMsg{id: id} }

	case m.detailOpen && (key.Matches(msg, m.keys.ScrollUp) || key.Matches(msg, m.keys.ScrollDown)):
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	if m.tab == tabMovies {
		m.movieList, cmd = m.movieList.Update(msg)
	} else {
		m.charList, cmd = m.charList.Update(msg)
	}
	return m, cmd
}

func (m appModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	}
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		// Editing the filter closes the detail panel.
		m.closeDetail()
		m.refreshCharacters()
		m.charList.ResetSelected()
	}
	return m, cmd
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	answer := func(yes bool) (tea.Model, tea.Cmd) {
		m.confirm = nil
		p, err := m.ctrl.ConfirmWipe(yes)
		if err != nil || p == nil {
			return m, nil
		}
		// The local dataset is gone before the store is called.
		m.search.SetValue("")
		m.refreshData()
		m.layout()
		return m, m.start(p)
	}
	switch msg.String() {
	case "tab", "shift+tab", "left", "right", "h", "l":
		m.confirmFocus = m.confirmFocus.toggle()
		return m, nil
	case "y", "Y":
		return answer(true)
	case "n", "N", "esc", "ctrl+g":
		return answer(false)
	case "enter":
		return answer(m.confirmFocus == confirmFocusConfirm)
	}
	return m, nil
}

// rejected explains a refused operation in the minibuffer. Preconditions that
// already wrote to the log panel need no echo.
func (m *appModel) rejected(err error) {
	switch {
	case errors.Is(err, workflow.ErrBusy):
		if op, ok := m.ctrl.InFlight(); ok {
			m.showMinibuffer("Busy: " + op.String() + " in progress")
		}
	case errors.Is(err, workflow.ErrNoDataset):
		m.showMinibuffer("Nothing to commit yet. Press f to fetch.")
	}
}

func (m *appModel) closeDetail() {
	m.detailOpen = false
	m.ctrl.ClearSelection()
	m.charList.SetItems(characterItems(m.visible, ""))
	m.layout()
}

// start hands the network half of an operation to a command goroutine. The
// closure never touches the model; its Outcome comes back as an opDoneMsg.
func (m appModel) start(p *workflow.Pending) tea.Cmd {
	timeout := m.timeout
	run := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return opDoneMsg{outcome: p.Run(ctx)}
	}
	return tea.Batch(m.spinner.Tick, run)
}

func (m *appModel) applyOutcome(o workflow.Outcome) tea.Cmd {
	res := m.ctrl.Resolve(o)
	if res.Stale {
		return nil
	}
	if res.DatasetLoaded {
		// A fresh fetch shows the rendered view; the raw sub-view is kept.
		if m.mode != viewRendered {
			m.mode = viewRendered
			m.saveState()
		}
		m.search.SetValue("")
		m.searching = false
		m.search.Blur()
		m.detailOpen = false
		m.copied = false
		m.charList.ResetSelected()
		m.movieList.ResetSelected()
	}
	if res.DatasetLoaded || res.DatasetCleared {
		m.refreshData()
		m.layout()
	}
	var pe *workflow.PanicError
	if errors.As(res.Err, &pe) {
		m.showMinibuffer("Operation failed unexpectedly; see the log panel.")
	}
	if res.Report != nil {
		m.layout()
		return m.recordReport(o.ID, *res.Report)
	}
	return nil
}

func (m *appModel) recordReport(opID string, r model.SummaryReport) tea.Cmd {
	if m.journal == nil {
		return nil
	}
	journal, log := m.journal, m.log
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
		defer cancel()
		if _, err := journal.Record(ctx, opID, r); err != nil {
			log.Warn().Err(err).Str("op_id", opID).Msg("journal report")
		}
		return nil
	}
}

func processingLabel(op workflow.Op) string {
	switch op {
	case workflow.OpFetch:
		return "Fetching characters, quotes and movies..."
	case workflow.OpCommitCharacters:
		return "Sending characters to the store..."
	case workflow.OpCommitQuotes:
		return "Sending quotes to the store..."
	case workflow.OpWipe:
		return "Wiping the store..."
	default:
		return "Processing..."
	}
}
