package tui

import (
	"strings"
	"testing"

	"lotr-ingest/internal/format"
	"lotr-ingest/internal/model"

	xansi "github.com/charmbracelet/x/ansi"
)

func TestRawDocument_IndentedAndScoped(t *testing.T) {
	ds := &model.Dataset{
		Stats:      model.Stats{CharacterCount: 1},
		Characters: []model.Character{{ID: "c1", Name: "Elrond"}},
		Movies:     []model.Movie{},
	}
	doc := rawDocument(ds, format.SliceCharacters)
	if !strings.HasPrefix(doc, "[\n  {\n    \"_id\": \"c1\"") {
		t.Fatalf("expected 2-space indented characters; got:\n%s", doc)
	}
	if doc := rawDocument(ds, format.SliceMovies); doc != "[]" {
		t.Fatalf("expected empty movies array; got %q", doc)
	}
	if rawDocument(nil, format.SliceAll) != "" {
		t.Fatalf("expected empty document without a dataset")
	}
}

func TestRenderRaw_HighlightsJSON(t *testing.T) {
	ds := &model.Dataset{Stats: model.Stats{MovieCount: 3}}
	body := renderRaw(ds, format.SliceStats, 80)
	if !strings.Contains(xansi.Strip(body), `"movieCount": 3`) {
		t.Fatalf("expected stats JSON in body; got:\n%s", body)
	}
}

func TestRenderRaw_DropsControlAndBidiRunes(t *testing.T) {
	ds := &model.Dataset{Characters: []model.Character{{ID: "c1", Name: "Gollum\u202eevil\u009b31mRED\u0085x"}}}
	body := renderRaw(ds, format.SliceCharacters, 80)
	for _, r := range []rune{'\u202e', '\u009b', '\u0085'} {
		if strings.ContainsRune(body, r) {
			t.Fatalf("expected %U removed from raw body:\n%q", r, body)
		}
	}
	if !strings.Contains(xansi.Strip(body), "Gollum") {
		t.Fatalf("expected name kept; got:\n%s", body)
	}
	if doc := rawDocument(ds, format.SliceCharacters); !strings.ContainsRune(doc, '\u202e') {
		t.Fatalf("expected the copy document to stay unmodified")
	}
}

func TestParseViewMode(t *testing.T) {
	if parseViewMode("RAW") != viewRaw || parseViewMode("") != viewRendered || parseViewMode("x") != viewRendered {
		t.Fatalf("unexpected view mode parsing")
	}
}
