package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lotr-ingest/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, r chi.Router) *Client {
	t.Helper()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return New(Options{
		SourceURL: srv.URL,
		StoreURL:  srv.URL,
		APIToken:  "secret",
		Timeout:   5 * time.Second,
		Logger:    zerolog.Nop(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestFetch_DecodesDataset(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/fetch", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "Bearer secret", req.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "success",
			"characters": [{"_id": "c1", "name": "Frodo", "race": "Hobbit", "height": "NaN", "quoteCount": 2,
				"sampleQuotes": [{"dialog": "I will take it", "movie": "The Fellowship of the Ring"}]}],
			"movies": [{"_id": "m1", "name": "The Two Towers", "runtimeInMinutes": 179}],
			"stats": {"characterCount": 1, "quoteCount": 2, "movieCount": 1, "charactersWithQuotes": 1},
			"logs": ["one", "two"]
		}`))
	})
	c := newTestClient(t, r)

	resp, err := c.Fetch(context.Background())
	require.NoError(t, err)
	require.True(t, resp.HasCharacters())
	require.Len(t, resp.Characters, 1)
	assert.Equal(t, "Frodo", resp.Characters[0].Name)
	assert.False(t, resp.Characters[0].Height.Known())
	assert.Equal(t, 1, resp.Stats.CharactersWithQuotes)
	require.NotNil(t, resp.Movies[0].RuntimeInMinutes)
	assert.Nil(t, resp.Movies[0].BudgetInMillions)
	assert.Equal(t, []string{"one", "two"}, resp.Logs)
}

func TestFetch_MissingCharactersIsReported(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/fetch", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "success", "movies": []any{}})
	})
	c := newTestClient(t, r)

	resp, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.False(t, resp.HasCharacters())
}

func TestFetch_CharactersNotArrayIsMalformed(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/fetch", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "success", "characters": "lots"})
	})
	c := newTestClient(t, r)

	_, err := c.Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedResponse))
}

func TestPost_Non2xxIsHTTPError(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/wipe", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"status": "error", "error": "shadow grows"})
	})
	c := newTestClient(t, r)

	_, err := c.Wipe(context.Background())
	var herr *HTTPError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, http.StatusInternalServerError, herr.StatusCode)
	assert.Equal(t, "shadow grows", herr.Message)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestIngestCharacters_SendsCharacters(t *testing.T) {
	var got struct {
		Characters []model.Character `json:"characters"`
	}
	r := chi.NewRouter()
	r.Post("/ingest", func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, json.NewDecoder(req.Body).Decode(&got))
		writeJSON(w, http.StatusOK, map[string]any{
			"status": "success", "ingestedCount": 2, "totalRecords": 2,
			"successfulBatches": 1, "totalBatches": 1, "logs": []string{"sent"},
		})
	})
	c := newTestClient(t, r)

	resp, err := c.IngestCharacters(context.Background(), []model.Character{{ID: "a", Name: "Sam"}, {ID: "b", Name: "Merry"}})
	require.NoError(t, err)
	require.Len(t, got.Characters, 2)
	assert.Equal(t, "Sam", got.Characters[0].Name)
	assert.Equal(t, 2, model.Deref(resp.IngestedCount))
	assert.Equal(t, 1, model.Deref(resp.TotalBatches))
	assert.Nil(t, resp.TotalQuotes)
}

func TestPost_TransportFailure(t *testing.T) {
	c := New(Options{SourceURL: "http://127.0.0.1:1", StoreURL: "http://127.0.0.1:1", Timeout: time.Second, Logger: zerolog.Nop()})
	_, err := c.IngestQuotes(context.Background(), nil)
	require.Error(t, err)
	var herr *HTTPError
	assert.False(t, errors.As(err, &herr))
}
