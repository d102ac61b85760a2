package tui

import "testing"

func TestGlyphs_ASCIIFallback(t *testing.T) {
	t.Cleanup(func() { setGlyphs(glyphSetUnicode) })

	t.Setenv(glyphsEnv, "ascii")
	applyGlyphPreference()
	if glyphSelected() != "> " || glyphVBar() != "|" || glyphDot() != "-" {
		t.Fatalf("expected ASCII glyphs; got %q %q %q", glyphSelected(), glyphVBar(), glyphDot())
	}

	t.Setenv(glyphsEnv, "bogus")
	applyGlyphPreference()
	if glyphs() != glyphSetASCII {
		t.Fatalf("expected unknown value to leave glyphs unchanged")
	}

	t.Setenv(glyphsEnv, "")
	applyGlyphPreference()
	if glyphSelected() != "▌ " {
		t.Fatalf("expected unicode marker; got %q", glyphSelected())
	}
}
