// Package gateway talks to the two remote collaborators: the source API that
// serves the dataset and the store API that ingests or wipes it.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"lotr-ingest/internal/config"
	"lotr-ingest/internal/model"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// ErrMalformedResponse marks a 2xx response whose body does not have the expected shape.
var ErrMalformedResponse = errors.New("malformed response")

// HTTPError is returned for any non-2xx status. Callers treat it like a transport failure.
type HTTPError struct {
	Op         string
	StatusCode int
	Status     string
	// Message is the "error" field of the body, when the body carried one.
	Message string
}

func (e *HTTPError) Error() string {
	s := fmt.Sprintf("%s: HTTP %d", e.Op, e.StatusCode)
	if t := strings.TrimSpace(http.StatusText(e.StatusCode)); t != "" {
		s += ": " + t
	}
	if e.Message != "" {
		s += " (" + e.Message + ")"
	}
	return s
}

type Options struct {
	SourceURL string
	StoreURL  string

	FetchPath        string
	IngestPath       string
	IngestQuotesPath string
	WipePath         string

	APIToken string
	Timeout  time.Duration
	Logger   zerolog.Logger
}

// OptionsFromConfig maps the application config onto gateway options.
func OptionsFromConfig(cfg config.Config, log zerolog.Logger) Options {
	return Options{
		SourceURL:        cfg.SourceURL,
		StoreURL:         cfg.StoreURL,
		FetchPath:        cfg.FetchPath,
		IngestPath:       cfg.IngestPath,
		IngestQuotesPath: cfg.IngestQuotesPath,
		WipePath:         cfg.WipePath,
		APIToken:         cfg.APIToken,
		Timeout:          cfg.Timeout,
		Logger:           log,
	}
}

type Client struct {
	source *resty.Client
	store  *resty.Client
	opts   Options
	log    zerolog.Logger
}

func New(opts Options) *Client {
	if opts.FetchPath == "" {
		opts.FetchPath = "/fetch"
	}
	if opts.IngestPath == "" {
		opts.IngestPath = "/ingest"
	}
	if opts.IngestQuotesPath == "" {
		opts.IngestQuotesPath = "/ingest-quotes"
	}
	if opts.WipePath == "" {
		opts.WipePath = "/wipe"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Minute
	}
	return &Client{
		source: newResty(opts.SourceURL, opts),
		store:  newResty(opts.StoreURL, opts),
		opts:   opts,
		log:    opts.Logger.With().Str("component", "gateway").Logger(),
	}
}

func newResty(base string, opts Options) *resty.Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(base, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(opts.Timeout)
	if tok := strings.TrimSpace(opts.APIToken); tok != "" {
		c.SetAuthToken(tok)
	}
	return c
}

type FetchResponse struct {
	Status     string            `json:"status"`
	Error      string            `json:"error,omitempty"`
	Characters []model.Character `json:"characters"`
	Movies     []model.Movie     `json:"movies"`
	Stats      model.Stats       `json:"stats"`
	Logs       []string          `json:"logs,omitempty"`

	hasCharacters bool
}

// HasCharacters reports whether the body carried a "characters" array (possibly empty).
func (r *FetchResponse) HasCharacters() bool { return r != nil && r.hasCharacters }

func (r *FetchResponse) UnmarshalJSON(b []byte) error {
	type wire FetchResponse
	var raw struct {
		wire
		Characters json.RawMessage `json:"characters"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*r = FetchResponse(raw.wire)
	chars := strings.TrimSpace(string(raw.Characters))
	if chars == "" || chars == "null" {
		return nil
	}
	if !strings.HasPrefix(chars, "[") {
		return fmt.Errorf("characters is not an array")
	}
	if err := json.Unmarshal(raw.Characters, &r.Characters); err != nil {
		return fmt.Errorf("characters: %w", err)
	}
	r.hasCharacters = true
	return nil
}

// IngestResponse is shared by character and quote ingestion; TotalRecords is set
// for characters and TotalQuotes for quotes.
type IngestResponse struct {
	Status            string   `json:"status"`
	Logs              []string `json:"logs,omitempty"`
	IngestedCount     *int     `json:"ingestedCount,omitempty"`
	TotalRecords      *int     `json:"totalRecords,omitempty"`
	TotalQuotes       *int     `json:"totalQuotes,omitempty"`
	Timestamp         string   `json:"timestamp,omitempty"`
	SuccessfulBatches *int     `json:"successfulBatches,omitempty"`
	FailedBatches     *int     `json:"failedBatches,omitempty"`
	TotalBatches      *int     `json:"totalBatches,omitempty"`
	Error             string   `json:"error,omitempty"`
}

type WipeResponse struct {
	Status       string   `json:"status"`
	Logs         []string `json:"logs,omitempty"`
	DeletedCount *int     `json:"deletedCount,omitempty"`
	Timestamp    string   `json:"timestamp,omitempty"`
	Error        string   `json:"error,omitempty"`
}

type ingestRequest struct {
	Characters []model.Character `json:"characters"`
}

func (c *Client) Fetch(ctx context.Context) (*FetchResponse, error) {
	var out FetchResponse
	if err := c.post(ctx, c.source, "fetch", c.opts.FetchPath, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) IngestCharacters(ctx context.Context, chars []model.Character) (*IngestResponse, error) {
	var out IngestResponse
	if err := c.post(ctx, c.store, "ingest characters", c.opts.IngestPath, ingestRequest{Characters: chars}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) IngestQuotes(ctx context.Context, chars []model.Character) (*IngestResponse, error) {
	var out IngestResponse
	if err := c.post(ctx, c.store, "ingest quotes", c.opts.IngestQuotesPath, ingestRequest{Characters: chars}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Wipe(ctx context.Context) (*WipeResponse, error) {
	var out WipeResponse
	if err := c.post(ctx, c.store, "wipe", c.opts.WipePath, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) post(ctx context.Context, rc *resty.Client, op, path string, body any, out any) error {
	start := time.Now()
	resp, err := rc.R().
		SetContext(ctx).
		SetBody(body).
		Post(path)
	if err != nil {
		c.log.Warn().Err(err).Str("op", op).Dur("took", time.Since(start)).Msg("request failed")
		return fmt.Errorf("%s: %w", op, err)
	}
	c.log.Debug().Str("op", op).Int("status", resp.StatusCode()).Dur("took", time.Since(start)).Msg("request done")

	if !resp.IsSuccess() {
		herr := &HTTPError{Op: op, StatusCode: resp.StatusCode(), Status: resp.Status()}
		var errBody struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(resp.Body(), &errBody) == nil {
			herr.Message = strings.TrimSpace(errBody.Error)
		}
		return herr
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrMalformedResponse, err)
	}
	return nil
}
