package tui

import (
	"testing"

	"lotr-ingest/internal/model"
)

func ids(chars []model.Character) []string {
	out := make([]string, 0, len(chars))
	for _, c := range chars {
		out = append(out, c.ID)
	}
	return out
}

func TestSortCharacters_QuotesThenCollatedNameThenInputOrder(t *testing.T) {
	chars := []model.Character{
		{ID: "zed", Name: "Zed"},
		{ID: "eowyn", Name: "Éowyn"},
		{ID: "orc-1", Name: "Orc"},
		{ID: "gandalf", Name: "Gandalf", QuoteCount: 5},
		{ID: "aragorn", Name: "aragorn"},
		{ID: "orc-2", Name: "Orc"},
		{ID: "eomer", Name: "Eomer"},
		{ID: "sam", Name: "Samwise", QuoteCount: 9},
	}
	sortCharacters(chars)

	want := []string{"sam", "gandalf", "aragorn", "eomer", "eowyn", "orc-1", "orc-2", "zed"}
	got := ids(chars)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order:\nwant %v\ngot  %v", want, got)
		}
	}
}

func TestFilterCharacters_NameRaceRealmCaseInsensitive(t *testing.T) {
	chars := []model.Character{
		{ID: "a", Name: "Frodo Baggins", Race: "Hobbit", Realm: "Shire"},
		{ID: "b", Name: "Legolas", Race: "Elf", Realm: "Woodland Realm"},
		{ID: "c", Name: "Gimli", Race: "Dwarf"},
	}
	orig := append([]model.Character(nil), chars...)

	cases := map[string][]string{
		"":        {"a", "b", "c"},
		"BAGG":    {"a"},
		"elf":     {"b"},
		"realm":   {"b"},
		"shire":   {"a"},
		"dw":      {"c"},
		"nothing": {},
	}
	for q, want := range cases {
		got := ids(filterCharacters(chars, q))
		if len(got) != len(want) {
			t.Fatalf("filter %q: want %v got %v", q, want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("filter %q: want %v got %v", q, want, got)
			}
		}
	}
	for i := range orig {
		if chars[i].ID != orig[i].ID {
			t.Fatalf("expected input slice to be untouched")
		}
	}
}

func TestSortCharacters_CaseBreaksTiesDeterministically(t *testing.T) {
	chars := []model.Character{{ID: "upper", Name: "Bob"}, {ID: "lower", Name: "bob"}}
	sortCharacters(chars)
	if chars[0].ID != "lower" || chars[1].ID != "upper" {
		t.Fatalf("expected lowercase first; got %v", ids(chars))
	}
}

func TestFilterCharacters_UnknownFieldsNeverMatch(t *testing.T) {
	chars := []model.Character{
		{ID: "a", Name: "Grima", Race: "NaN", Realm: "NaN"},
		{ID: "b", Name: "Nandor", Race: "Elf"},
	}
	got := ids(filterCharacters(chars, "nan"))
	if len(got) != 1 || got[0] != "b" {
		t.Fatalf("expected only the name match; got %v", got)
	}
}

func TestVisibleCharacters_DoesNotReorderInput(t *testing.T) {
	chars := []model.Character{{ID: "b", Name: "B"}, {ID: "a", Name: "A"}}
	got := visibleCharacters(chars, "")
	if got[0].ID != "a" || chars[0].ID != "b" {
		t.Fatalf("expected sorted copy and untouched input; got %v, input %v", ids(got), ids(chars))
	}
}

func TestCharacterItems_FlagsOnlyVisibleSelection(t *testing.T) {
	chars := []model.Character{{ID: "a"}, {ID: "b"}}
	items := characterItems(chars, "b")
	if items[0].(characterItem).selected || !items[1].(characterItem).selected {
		t.Fatalf("expected only b flagged")
	}
	for _, it := range characterItems(chars, "zzz") {
		if it.(characterItem).selected {
			t.Fatalf("expected no row flagged for a filtered-out selection")
		}
	}
}

func TestCharacterRowText(t *testing.T) {
	it := characterItem{ch: model.Character{Name: "Frodo \x1b[31mBaggins", Race: "Hobbit", Realm: "NaN", QuoteCount: 3}}
	if got := it.Title(); got != "Frodo Baggins" {
		t.Fatalf("unexpected title %q", got)
	}
	if got := it.Description(); got != "Hobbit" {
		t.Fatalf("expected unknown realm omitted; got %q", got)
	}
	unknown := characterItem{ch: model.Character{Race: "", Realm: "Gondor"}}
	if got := unknown.Title(); got != model.UnknownLabel {
		t.Fatalf("unexpected title %q", got)
	}
	if got := unknown.Description(); got != "Unknown • Gondor" {
		t.Fatalf("unexpected description %q", got)
	}
	if quoteCountLabel(0) != "No quotes" || quoteCountLabel(4) != "4 quotes" {
		t.Fatalf("unexpected quote labels")
	}
}

func TestMovieRowText(t *testing.T) {
	runtime, budget, awards := 178.0, 93.0, 4
	full := movieItem{mv: model.Movie{Name: "The Fellowship of the Ring", RuntimeInMinutes: &runtime, BudgetInMillions: &budget, AcademyAwardWins: &awards}}
	if got := full.Description(); got != "178 min · $93M budget · 4 Academy Awards" {
		t.Fatalf("unexpected description %q", got)
	}
	bare := movieItem{mv: model.Movie{Name: "Unfinished"}}
	if got := bare.Description(); got != "N/A" {
		t.Fatalf("expected absent fields omitted; got %q", got)
	}
}
