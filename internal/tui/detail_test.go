package tui

import (
	"strings"
	"testing"

	"lotr-ingest/internal/model"

	xansi "github.com/charmbracelet/x/ansi"
)

func TestRenderCharacterDetail_Fallbacks(t *testing.T) {
	c := model.Character{
		ID:     "c1",
		Name:   "Bob",
		Race:   "NaN",
		Gender: "",
		Spouse: "NaN",
		Hair:   "Brown",
	}
	out := xansi.Strip(renderCharacterDetail(c, 80))

	for _, want := range []string{"Bob", "Race: Unknown", "Gender: Unknown", "Spouse: None", noQuotesText, "Quotes (0)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
	if line := lineWith(out, "Hair:"); !strings.Contains(line, "Brown") {
		t.Fatalf("expected hair on its row; got %q", line)
	}
	if strings.Contains(out, "NaN") {
		t.Fatalf("sentinel leaked into output:\n%s", out)
	}
	if strings.Contains(out, wikiLabel) {
		t.Fatalf("expected no wiki link without a URL")
	}
}

func TestRenderCharacterDetail_QuotesAndLink(t *testing.T) {
	c := model.Character{
		Name:       "Gandalf",
		WikiURL:    "https://lotr.fandom.com/wiki/Gandalf",
		QuoteCount: 2,
		SampleQuotes: []model.Quote{
			{Dialog: "You shall not pass!", Movie: "The Fellowship of the Ring"},
			{Dialog: "Fly, \x1b[2Jyou fools!"},
		},
	}
	raw := renderCharacterDetail(c, 80)
	if !strings.Contains(raw, xansi.SetHyperlink("https://lotr.fandom.com/wiki/Gandalf")) {
		t.Fatalf("expected OSC 8 hyperlink for wiki url")
	}
	out := xansi.Strip(raw)
	for _, want := range []string{`"You shall not pass!"`, "— The Fellowship of the Ring", `"Fly, you fools!"`, "— Unknown", wikiLabel} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
	if renderCharacterDetail(c, 80) != raw {
		t.Fatalf("expected identical output for the same character")
	}
}

func TestRenderCharacterDetail_RejectsUnsafeLink(t *testing.T) {
	c := model.Character{Name: "Saruman", WikiURL: "javascript:alert(1)"}
	out := renderCharacterDetail(c, 80)
	if strings.Contains(out, wikiLabel) || strings.Contains(out, "javascript") {
		t.Fatalf("expected unsafe link to be dropped:\n%s", out)
	}
}

func TestRenderCharacterDetail_EscapesInNameAreInert(t *testing.T) {
	c := model.Character{Name: "\x1b]0;owned\x07Sméagol"}
	out := renderCharacterDetail(c, 80)
	if strings.Contains(out, "owned") || strings.Contains(out, "\x07") {
		t.Fatalf("expected OSC sequence removed; got %q", out)
	}
	if !strings.Contains(xansi.Strip(out), "Sméagol") {
		t.Fatalf("expected name kept")
	}
}

func lineWith(s, substr string) string {
	for _, l := range strings.Split(s, "\n") {
		if strings.Contains(l, substr) {
			return l
		}
	}
	return ""
}
