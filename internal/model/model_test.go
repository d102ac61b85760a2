package model

import (
	"encoding/json"
	"testing"
)

func TestFieldKnown(t *testing.T) {
	cases := map[Field]bool{
		"":       false,
		"  ":     false,
		"NaN":    false,
		"Hobbit": true,
		"0":      true,
	}
	for f, want := range cases {
		if got := f.Known(); got != want {
			t.Fatalf("Field(%q).Known() = %v, want %v", string(f), got, want)
		}
	}
	if got := Field("NaN").Or(UnknownLabel); got != UnknownLabel {
		t.Fatalf("expected %q, got %q", UnknownLabel, got)
	}
	if got := Field("Rohan").Or(UnknownLabel); got != "Rohan" {
		t.Fatalf("expected Rohan, got %q", got)
	}
}

func TestFieldUnmarshalLooseTypes(t *testing.T) {
	var c Character
	body := `{"_id":"x","name":"Éowyn","height":1.7,"spouse":null,"race":"Human","birth":"NaN"}`
	if err := json.Unmarshal([]byte(body), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c.Height != "1.7" {
		t.Fatalf("expected numeric height as text, got %q", c.Height)
	}
	if c.Spouse.Known() {
		t.Fatalf("expected null spouse to be unknown")
	}
	if c.Birth.Known() {
		t.Fatalf("expected NaN birth to be unknown")
	}
	if c.Race.Or(UnknownLabel) != "Human" {
		t.Fatalf("unexpected race %q", c.Race)
	}
}

func TestDisplayNameFallback(t *testing.T) {
	if got := (Character{Name: "NaN"}).DisplayName(); got != UnknownLabel {
		t.Fatalf("expected %q, got %q", UnknownLabel, got)
	}
	if got := (Character{Name: "Sam"}).DisplayName(); got != "Sam" {
		t.Fatalf("expected Sam, got %q", got)
	}
}

func TestDatasetHelpers(t *testing.T) {
	var nilDS *Dataset
	if nilDS.SampledQuoteCount() != 0 {
		t.Fatalf("nil dataset should have no quotes")
	}
	if _, ok := nilDS.FindCharacter("a"); ok {
		t.Fatalf("nil dataset should find nothing")
	}
	ds := &Dataset{Characters: []Character{
		{ID: "a", SampleQuotes: []Quote{{Dialog: "x"}, {Dialog: "y"}}},
		{ID: "b"},
	}}
	if got := ds.SampledQuoteCount(); got != 2 {
		t.Fatalf("expected 2 sampled quotes, got %d", got)
	}
	if c, ok := ds.FindCharacter("b"); !ok || c.ID != "b" {
		t.Fatalf("expected to find b")
	}
	if _, ok := ds.FindCharacter(""); ok {
		t.Fatalf("empty id must not match")
	}
}

func TestParseReportStatus(t *testing.T) {
	cases := map[string]ReportStatus{
		"success": StatusSuccess,
		"SUCCESS": StatusSuccess,
		"partial": StatusPartial,
		"warning": StatusWarning,
		"error":   StatusError,
		"":        StatusError,
		"weird":   StatusError,
	}
	for in, want := range cases {
		if got := ParseReportStatus(in); got != want {
			t.Fatalf("ParseReportStatus(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	if got := FormatNumber(93); got != "93" {
		t.Fatalf("expected 93, got %q", got)
	}
	if got := FormatNumber(281.5); got != "281.5" {
		t.Fatalf("expected 281.5, got %q", got)
	}
}
