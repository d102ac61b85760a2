package tui

import (
	"strings"

	"lotr-ingest/internal/format"
	"lotr-ingest/internal/model"
)

type viewMode int

const (
	viewRendered viewMode = iota
	viewRaw
)

func (v viewMode) String() string {
	if v == viewRaw {
		return "raw"
	}
	return "rendered"
}

func parseViewMode(s string) viewMode {
	if strings.EqualFold(strings.TrimSpace(s), "raw") {
		return viewRaw
	}
	return viewRendered
}

// rawDocument is the plain JSON for one slice. It is what gets copied to the
// clipboard; the viewport shows the highlighted form.
func rawDocument(ds *model.Dataset, s format.Slice) string {
	v := format.SliceOf(ds, s)
	if v == nil {
		return ""
	}
	b, err := format.MarshalJSON(v, true)
	if err != nil {
		return ""
	}
	return string(b)
}

// renderRaw builds the highlighted body for the viewport. encoding/json leaves
// C1 controls and bidi overrides unescaped, so the document is sanitized too.
func renderRaw(ds *model.Dataset, s format.Slice, width int) string {
	return renderJSONBlock(sanitizeText(rawDocument(ds, s)), width)
}

func rawSliceTabs(active format.Slice) string {
	parts := make([]string, 0, len(format.Slices))
	for i, s := range format.Slices {
		label := string(rune('1'+i)) + " " + s.String()
		if s == active {
			parts = append(parts, styleHeading().Render("["+label+"]"))
			continue
		}
		parts = append(parts, styleMuted().Render(" "+label+" "))
	}
	return strings.Join(parts, " ")
}
