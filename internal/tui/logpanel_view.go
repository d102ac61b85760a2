package tui

import (
	"strconv"
	"strings"

	"lotr-ingest/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// renderLogPanel renders newest first, at most height lines. Messages are
// sanitized here too: the panel is plain text whatever its source.
func renderLogPanel(entries []model.LogEntry, width int, height int) string {
	if height <= 0 || width <= 0 {
		return ""
	}
	if len(entries) == 0 {
		return styleMuted().Render("No activity yet.")
	}
	lines := make([]string, 0, height)
	for _, e := range entries {
		if len(lines) >= height {
			break
		}
		msg := fitWidth(sanitizeLine(e.Message), width)
		if e.IsError {
			msg = styleError().Render(msg)
		}
		lines = append(lines, msg)
	}
	return strings.Join(lines, "\n")
}

// renderReport renders the current summary report as a compact key/value block.
func renderReport(r *model.SummaryReport, width int) string {
	if r == nil {
		return ""
	}
	label := styleMuted()
	status := styleStatus(r.OK(), r.Status == model.StatusPartial || r.Status == model.StatusWarning).
		Render(strings.ToUpper(string(r.Status)))

	var b strings.Builder
	b.WriteString(styleHeading().Render(string(r.Kind)) + "  " + status + "\n")
	row := func(name string, v *int) {
		if v == nil {
			return
		}
		b.WriteString(label.Render(name+": ") + strconv.Itoa(*v) + "\n")
	}
	row("Ingested", r.IngestedCount)
	row("Total records", r.TotalRecords)
	row("Total quotes", r.TotalQuotes)
	row("Deleted", r.DeletedCount)
	if r.SuccessfulBatches != nil {
		batches := strconv.Itoa(*r.SuccessfulBatches) + "/" + strconv.Itoa(model.Deref(r.TotalBatches))
		if r.FailedBatches != nil && *r.FailedBatches > 0 {
			batches += " (" + strconv.Itoa(*r.FailedBatches) + " failed)"
		}
		b.WriteString(label.Render("Batches: ") + batches + "\n")
	}
	if r.Error != "" {
		b.WriteString(styleError().Render(sanitizeLine(r.Error)) + "\n")
	}
	if r.Timestamp != "" {
		b.WriteString(label.Render(sanitizeLine(r.Timestamp)))
	}
	return lipgloss.NewStyle().Width(width).Render(strings.TrimRight(b.String(), "\n"))
}
