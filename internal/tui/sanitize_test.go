package tui

import (
	"strings"
	"testing"
)

func TestSanitizeText_StripsEscapeSequences(t *testing.T) {
	cases := map[string]string{
		"plain":                      "plain",
		"\x1b[31mred\x1b[0m":         "red",
		"\x1b]0;pwned\x07Frodo":      "Frodo",
		"bell\x07 and \x08backspace": "bell and backspace",
		"tab\there":                  "tab here",
		"a\u202eb":                   "ab",
		"line1\nline2":               "line1\nline2",
		"":                           "",
	}
	for in, want := range cases {
		if got := sanitizeText(in); got != want {
			t.Fatalf("sanitizeText(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeText_NeverLeavesEscByte(t *testing.T) {
	in := "<script>\x1b[2J\x1b]8;;http://evil\x1b\\click\x1b]8;;\x1b\\\u009b</script>"
	got := sanitizeText(in)
	if strings.ContainsAny(got, "\x1b\u009b\x07") {
		t.Fatalf("expected no control bytes; got %q", got)
	}
	if !strings.Contains(got, "<script>") {
		t.Fatalf("expected markup-looking text to be kept literally; got %q", got)
	}
}

func TestSanitizeLine_FlattensNewlines(t *testing.T) {
	if got := sanitizeLine("Samwise\n  Gamgee"); got != "Samwise Gamgee" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestSanitizeLink(t *testing.T) {
	ok := []string{
		"http://lotr.fandom.com/wiki/Frodo_Baggins",
		"https://lotr.fandom.com/wiki/Gimli",
	}
	for _, in := range ok {
		if got, valid := sanitizeLink(in); !valid || got != in {
			t.Fatalf("sanitizeLink(%q) = %q,%v; want accepted", in, got, valid)
		}
	}
	bad := []string{
		"",
		"javascript:alert(1)",
		"file:///etc/passwd",
		"//no-scheme.example",
		"https://",
		"https://ex ample.com",
		"NaN",
	}
	for _, in := range bad {
		if got, valid := sanitizeLink(in); valid {
			t.Fatalf("sanitizeLink(%q) accepted as %q", in, got)
		}
	}
	if got, valid := sanitizeLink("https://a.example/\x1b]8;;x\x07"); !valid || strings.ContainsRune(got, 0x1b) {
		t.Fatalf("expected escapes stripped from link; got %q valid=%v", got, valid)
	}
}
