// Package workflow implements the fetch -> preview -> commit lifecycle.
//
// The Controller is driven from a single event loop. Every mutating operation is
// split in two: a Begin* call that checks preconditions and updates local state
// synchronously, and Resolve, which applies the Outcome of the network call. The
// network call itself (Pending.Run) never touches controller state, so it can run
// on any goroutine.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lotr-ingest/internal/config"
	"lotr-ingest/internal/gateway"
	"lotr-ingest/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Gateway is the pair of remote collaborators as seen by the controller.
type Gateway interface {
	Fetch(ctx context.Context) (*gateway.FetchResponse, error)
	IngestCharacters(ctx context.Context, chars []model.Character) (*gateway.IngestResponse, error)
	IngestQuotes(ctx context.Context, chars []model.Character) (*gateway.IngestResponse, error)
	Wipe(ctx context.Context) (*gateway.WipeResponse, error)
}

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFetching
	PhasePreviewing
	PhaseCommitting
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFetching:
		return "fetching"
	case PhasePreviewing:
		return "previewing"
	case PhaseCommitting:
		return "committing"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

type Op int

const (
	OpFetch Op = iota + 1
	OpCommitCharacters
	OpCommitQuotes
	OpWipe
)

func (o Op) String() string {
	switch o {
	case OpFetch:
		return "fetch"
	case OpCommitCharacters:
		return "ingest characters"
	case OpCommitQuotes:
		return "ingest quotes"
	case OpWipe:
		return "wipe"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

type Options struct {
	MaxCharacters int
	MaxLogEntries int
	Logger        zerolog.Logger
	Now           func() time.Time
}

// Pending is an operation whose local half has run and whose network half has not.
type Pending struct {
	Op    Op
	Token uint64
	// ID correlates the diagnostic log lines of one operation.
	ID string

	epoch uint64
	call  func(ctx context.Context) (any, error)
}

// Outcome is the result of Pending.Run, handed back to Controller.Resolve.
type Outcome struct {
	Op       Op
	Token    uint64
	ID       string
	Response any
	Err      error

	epoch uint64
}

// Run performs the network call. A panic inside the call is recovered and
// reported as a *PanicError so the processing flag is always released.
func (p *Pending) Run(ctx context.Context) (out Outcome) {
	out = Outcome{Op: p.Op, Token: p.Token, ID: p.ID, epoch: p.epoch}
	defer func() {
		if r := recover(); r != nil {
			out.Response = nil
			out.Err = &PanicError{Op: p.Op, Value: r}
		}
	}()
	out.Response, out.Err = p.call(ctx)
	return out
}

// Resolution describes what Resolve changed, for callers that keep derived state.
type Resolution struct {
	Op Op
	// Stale is set when the outcome arrived after the local state it was meant for
	// had been discarded.
	Stale          bool
	DatasetLoaded  bool
	DatasetCleared bool
	Report         *model.SummaryReport
	Err            error
}

// ConfirmationRequest is the first half of the two-phase wipe confirmation.
type ConfirmationRequest struct {
	Op     Op
	Title  string
	Prompt string
}

type inflight struct {
	op    Op
	token uint64
}

// Controller owns the dataset, the selection, the processing flag, the log panel
// and the most recent summary report.
type Controller struct {
	gw   Gateway
	opts Options
	log  zerolog.Logger
	logs *LogPanel

	dataset        *model.Dataset
	selectedID     string
	previewVisible bool
	report         *model.SummaryReport

	processing     bool
	current        *inflight
	seq            uint64
	epoch          uint64
	confirmPending bool
}

func New(gw Gateway, opts Options) *Controller {
	if opts.MaxCharacters < 1 {
		opts.MaxCharacters = config.DefaultMaxCharacters
	}
	if opts.MaxLogEntries < 1 {
		opts.MaxLogEntries = config.DefaultMaxLogEntries
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logs := NewLogPanel(opts.MaxLogEntries)
	logs.now = opts.Now
	return &Controller{
		gw:   gw,
		opts: opts,
		log:  opts.Logger.With().Str("component", "workflow").Logger(),
		logs: logs,
	}
}

// Accessors. Callers must treat returned datasets and reports as read-only.

func (c *Controller) Phase() Phase {
	if c.current != nil {
		if c.current.op == OpFetch {
			return PhaseFetching
		}
		return PhaseCommitting
	}
	if c.dataset != nil {
		return PhasePreviewing
	}
	return PhaseIdle
}

func (c *Controller) Processing() bool             { return c.processing }
func (c *Controller) Dataset() *model.Dataset      { return c.dataset }
func (c *Controller) HasDataset() bool             { return c.dataset != nil }
func (c *Controller) PreviewVisible() bool         { return c.previewVisible && c.dataset != nil }
func (c *Controller) Report() *model.SummaryReport { return c.report }
func (c *Controller) Logs() *LogPanel              { return c.logs }
func (c *Controller) SelectedID() string           { return c.selectedID }
func (c *Controller) ConfirmationPending() bool    { return c.confirmPending }
func (c *Controller) MaxCharacters() int           { return c.opts.MaxCharacters }
func (c *Controller) InFlight() (Op, bool)         { return c.inflightOp() }

func (c *Controller) SelectedCharacter() (model.Character, bool) {
	return c.dataset.FindCharacter(c.selectedID)
}

func (c *Controller) inflightOp() (Op, bool) {
	if c.current == nil {
		return 0, false
	}
	return c.current.op, true
}

// Select marks one character as selected. Unknown IDs are ignored.
func (c *Controller) Select(id string) bool {
	if _, ok := c.dataset.FindCharacter(id); !ok {
		return false
	}
	c.selectedID = id
	return true
}

func (c *Controller) ClearSelection() { c.selectedID = "" }

// Note appends a local line to the log panel.
func (c *Controller) Note(message string, isError bool) { c.logs.Add(message, isError) }

// ReportUnexpected degrades an unexpected failure to a generic log line.
func (c *Controller) ReportUnexpected(err error) {
	c.log.Error().Err(err).Msg("unexpected failure")
	c.logs.Add(msgUnexpected, true)
}

func (c *Controller) begin(op Op, call func(ctx context.Context) (any, error)) *Pending {
	c.seq++
	c.processing = true
	c.current = &inflight{op: op, token: c.seq}
	p := &Pending{Op: op, Token: c.seq, ID: uuid.NewString(), epoch: c.epoch, call: call}
	c.log.Debug().Str("op", op.String()).Str("op_id", p.ID).Msg("begin")
	return p
}

func (c *Controller) release() {
	c.processing = false
	c.current = nil
}

func (c *Controller) reject(op Op, err error) error {
	c.log.Debug().Str("op", op.String()).Err(err).Msg("rejected")
	return err
}

func (c *Controller) clearPreview() {
	c.dataset = nil
	c.selectedID = ""
	c.previewVisible = false
	c.epoch++
}

// BeginFetch starts a fetch. A prior dataset stays in place until a successful
// response replaces it.
func (c *Controller) BeginFetch() (*Pending, error) {
	if c.processing {
		return nil, c.reject(OpFetch, ErrBusy)
	}
	c.logs.Add(msgFetchStart, false)
	c.previewVisible = false
	c.report = nil
	c.selectedID = ""
	gw := c.gw
	return c.begin(OpFetch, func(ctx context.Context) (any, error) {
		return gw.Fetch(ctx)
	}), nil
}

// BeginCommitCharacters sends the whole character list to the store.
func (c *Controller) BeginCommitCharacters() (*Pending, error) {
	if c.processing {
		return nil, c.reject(OpCommitCharacters, ErrBusy)
	}
	if c.dataset == nil {
		return nil, c.reject(OpCommitCharacters, ErrNoDataset)
	}
	n := len(c.dataset.Characters)
	if n > c.opts.MaxCharacters {
		c.logs.Add(fmt.Sprintf(msgTooManyFmt, n, c.opts.MaxCharacters), true)
		return nil, c.reject(OpCommitCharacters, fmt.Errorf("%w: %d exceeds limit of %d", ErrTooManyCharacters, n, c.opts.MaxCharacters))
	}
	if n == 0 {
		c.logs.Add(msgEmptyDataset, true)
		return nil, c.reject(OpCommitCharacters, ErrEmptyDataset)
	}
	c.logs.Add(fmt.Sprintf(msgCommitStartFmt, n), false)
	gw, chars := c.gw, c.dataset.Characters
	return c.begin(OpCommitCharacters, func(ctx context.Context) (any, error) {
		return gw.IngestCharacters(ctx, chars)
	}), nil
}

// BeginCommitQuotes sends the characters' sampled quotes to the store. The
// dataset survives a successful quote commit.
func (c *Controller) BeginCommitQuotes() (*Pending, error) {
	if c.processing {
		return nil, c.reject(OpCommitQuotes, ErrBusy)
	}
	if c.dataset == nil {
		return nil, c.reject(OpCommitQuotes, ErrNoDataset)
	}
	total := c.dataset.SampledQuoteCount()
	if total == 0 {
		c.logs.Add(msgNoQuotes, true)
		return nil, c.reject(OpCommitQuotes, ErrNoQuotes)
	}
	c.logs.Add(fmt.Sprintf(msgQuotesStartFmt, total), false)
	gw, chars := c.gw, c.dataset.Characters
	return c.begin(OpCommitQuotes, func(ctx context.Context) (any, error) {
		return gw.IngestQuotes(ctx, chars)
	}), nil
}

// Cancel discards the previewed dataset. It is rejected while a commit or wipe
// is in flight; during a fetch it invalidates the eventual response.
func (c *Controller) Cancel() error {
	if op, ok := c.inflightOp(); ok && op != OpFetch {
		return c.reject(op, ErrBusy)
	}
	if c.dataset == nil {
		return ErrNoDataset
	}
	c.clearPreview()
	c.logs.Add(msgCancelled, false)
	return nil
}

// RequestWipe opens the confirmation exchange. Nothing happens until ConfirmWipe.
func (c *Controller) RequestWipe() (ConfirmationRequest, error) {
	if c.processing {
		return ConfirmationRequest{}, c.reject(OpWipe, ErrBusy)
	}
	c.confirmPending = true
	return ConfirmationRequest{Op: OpWipe, Title: wipeConfirmTitle, Prompt: wipeConfirmPrompt}, nil
}

// ConfirmWipe answers a pending RequestWipe. Declining logs a notice and returns
// (nil, nil).
func (c *Controller) ConfirmWipe(confirmed bool) (*Pending, error) {
	if !c.confirmPending {
		return nil, ErrNoConfirmation
	}
	c.confirmPending = false
	if !confirmed {
		c.logs.Add(msgWipeDeclined, false)
		return nil, nil
	}
	if c.processing {
		return nil, c.reject(OpWipe, ErrBusy)
	}
	c.logs.Add(msgWipeStart, false)
	// Cleared before the call so stale data cannot be re-committed meanwhile.
	c.clearPreview()
	gw := c.gw
	return c.begin(OpWipe, func(ctx context.Context) (any, error) {
		return gw.Wipe(ctx)
	}), nil
}

// Resolve applies an Outcome. The processing flag is released on every path.
func (c *Controller) Resolve(o Outcome) Resolution {
	res := Resolution{Op: o.Op, Err: o.Err}
	if c.current == nil || c.current.token != o.Token {
		c.log.Warn().Str("op", o.Op.String()).Uint64("token", o.Token).Msg("outcome for an operation that is not in flight")
		res.Stale = true
		return res
	}
	defer c.release()

	ev := c.log.Debug().Str("op", o.Op.String()).Str("op_id", o.ID)
	if o.Err != nil {
		ev = c.log.Warn().Str("op", o.Op.String()).Str("op_id", o.ID).Err(o.Err)
	}
	ev.Msg("resolve")

	var pe *PanicError
	if errors.As(o.Err, &pe) {
		c.logs.Add(msgUnexpected, true)
	}

	stale := o.epoch != c.epoch
	switch o.Op {
	case OpFetch:
		c.resolveFetch(o, stale, &res)
	case OpCommitCharacters:
		c.resolveIngest(o, stale, model.ReportCharacterIngest, &res)
	case OpCommitQuotes:
		c.resolveIngest(o, stale, model.ReportQuoteIngest, &res)
	case OpWipe:
		c.resolveWipe(o, &res)
	}
	return res
}

func (c *Controller) resolveFetch(o Outcome, stale bool, res *Resolution) {
	if stale {
		res.Stale = true
		c.logs.Add(msgStaleFetch, false)
		return
	}
	if o.Err != nil {
		c.logs.Add(fmt.Sprintf(msgNetworkErrorFmt, o.Err), true)
		return
	}
	resp, ok := o.Response.(*gateway.FetchResponse)
	if !ok || resp == nil {
		res.Err = ErrMalformedResponse
		c.logs.Add(fmt.Sprintf(msgErrorFmt, ErrMalformedResponse), true)
		return
	}
	if model.ParseReportStatus(resp.Status) == model.StatusError {
		msg := resp.Error
		if msg == "" {
			msg = "Unknown error"
		}
		res.Err = &RemoteError{Op: OpFetch, Message: msg}
		for _, l := range resp.Logs {
			c.logs.Add(l, true)
		}
		c.logs.Add(fmt.Sprintf(msgErrorFmt, msg), true)
		return
	}
	if !resp.HasCharacters() {
		res.Err = ErrMalformedResponse
		c.logs.Add(fmt.Sprintf(msgErrorFmt, ErrMalformedResponse), true)
		return
	}

	chars := resp.Characters
	if len(chars) > c.opts.MaxCharacters {
		c.logs.Add(fmt.Sprintf(msgTruncatedFmt, len(chars), c.opts.MaxCharacters), true)
		chars = chars[:c.opts.MaxCharacters:c.opts.MaxCharacters]
	}
	movies := resp.Movies
	if movies == nil {
		movies = []model.Movie{}
	}
	c.dataset = &model.Dataset{
		Stats:      resp.Stats,
		Characters: chars,
		Movies:     movies,
		Logs:       resp.Logs,
	}
	c.selectedID = ""
	c.previewVisible = true
	c.epoch++
	res.DatasetLoaded = true

	for _, l := range resp.Logs {
		c.logs.Add(l, false)
	}
	c.logs.Add(msgFetchHint, false)
}

func (c *Controller) resolveIngest(o Outcome, stale bool, kind model.ReportKind, res *Resolution) {
	if o.Err != nil {
		c.logs.Add(fmt.Sprintf(msgNetworkErrorFmt, o.Err), true)
		failure := msgSendCharactersFailed
		if kind == model.ReportQuoteIngest {
			failure = msgSendQuotesFailed
		}
		c.publish(model.SummaryReport{Status: model.StatusError, Kind: kind, Error: failure, Timestamp: c.timestamp("")}, res)
		return
	}
	resp, ok := o.Response.(*gateway.IngestResponse)
	if !ok || resp == nil {
		res.Err = fmt.Errorf("%s: %w", o.Op, gateway.ErrMalformedResponse)
		c.logs.Add(fmt.Sprintf(msgNetworkErrorFmt, res.Err), true)
		c.publish(model.SummaryReport{Status: model.StatusError, Kind: kind, Error: res.Err.Error(), Timestamp: c.timestamp("")}, res)
		return
	}

	status := model.ParseReportStatus(resp.Status)
	c.relay(resp.Logs, status)

	report := model.SummaryReport{
		Status:            status,
		Kind:              kind,
		IngestedCount:     model.IntPtr(model.Deref(resp.IngestedCount)),
		SuccessfulBatches: resp.SuccessfulBatches,
		FailedBatches:     resp.FailedBatches,
		Error:             resp.Error,
		Timestamp:         c.timestamp(resp.Timestamp),
	}
	if resp.SuccessfulBatches != nil {
		report.TotalBatches = model.IntPtr(model.Deref(resp.TotalBatches))
	}
	if kind == model.ReportQuoteIngest {
		report.TotalQuotes = model.IntPtr(model.Deref(resp.TotalQuotes))
	} else {
		report.TotalRecords = model.IntPtr(model.Deref(resp.TotalRecords))
	}
	if status == model.StatusError {
		res.Err = &RemoteError{Op: o.Op, Message: resp.Error}
	}
	c.publish(report, res)

	if status != model.StatusSuccess {
		return
	}
	if kind == model.ReportQuoteIngest {
		c.logs.Add(msgQuotesDone, false)
		return
	}
	if !stale {
		c.clearPreview()
		res.DatasetCleared = true
	}
	c.logs.Add(msgCommitDone, false)
}

func (c *Controller) resolveWipe(o Outcome, res *Resolution) {
	if o.Err != nil {
		c.logs.Add(fmt.Sprintf(msgNetworkErrorFmt, o.Err), true)
		c.publish(model.SummaryReport{Status: model.StatusError, Kind: model.ReportWipe, Error: msgWipeFailed, Timestamp: c.timestamp("")}, res)
		return
	}
	resp, ok := o.Response.(*gateway.WipeResponse)
	if !ok || resp == nil {
		res.Err = fmt.Errorf("%s: %w", o.Op, gateway.ErrMalformedResponse)
		c.logs.Add(fmt.Sprintf(msgNetworkErrorFmt, res.Err), true)
		c.publish(model.SummaryReport{Status: model.StatusError, Kind: model.ReportWipe, Error: res.Err.Error(), Timestamp: c.timestamp("")}, res)
		return
	}
	status := model.ParseReportStatus(resp.Status)
	c.relay(resp.Logs, status)
	if status == model.StatusError {
		res.Err = &RemoteError{Op: OpWipe, Message: resp.Error}
	}
	c.publish(model.SummaryReport{
		Status:       status,
		Kind:         model.ReportWipe,
		DeletedCount: model.IntPtr(model.Deref(resp.DeletedCount)),
		Error:        resp.Error,
		Timestamp:    c.timestamp(resp.Timestamp),
	}, res)
	if status == model.StatusSuccess {
		c.logs.Add(msgWipeDone, false)
	}
}

// relay appends remote log lines in order; each takes its error flag from the
// overall response status.
func (c *Controller) relay(lines []string, status model.ReportStatus) {
	isErr := status == model.StatusError
	for _, l := range lines {
		c.logs.Add(l, isErr)
	}
}

func (c *Controller) publish(r model.SummaryReport, res *Resolution) {
	c.report = &r
	res.Report = &r
	c.log.Info().
		Str("type", string(r.Kind)).
		Str("status", string(r.Status)).
		Int("ingested", model.Deref(r.IngestedCount)).
		Int("deleted", model.Deref(r.DeletedCount)).
		Msg("summary report")
}

func (c *Controller) timestamp(remote string) string {
	if remote != "" {
		return remote
	}
	return c.opts.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}
