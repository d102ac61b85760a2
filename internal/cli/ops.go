package cli

import (
	"context"
	"fmt"

	"lotr-ingest/internal/model"
	"lotr-ingest/internal/store"
	"lotr-ingest/internal/workflow"

	"github.com/spf13/cobra"
)

// runPending drives one operation to completion on the calling goroutine.
func runPending(ctx context.Context, app *App, ctrl *workflow.Controller, p *workflow.Pending) (workflow.Resolution, string) {
	ctx, cancel := context.WithTimeout(ctx, app.cfg.Timeout)
	defer cancel()
	return ctrl.Resolve(p.Run(ctx)), p.ID
}

// fetchDataset performs the fetch half shared by fetch and ingest.
func fetchDataset(cmd *cobra.Command, app *App, ctrl *workflow.Controller) error {
	p, err := ctrl.BeginFetch()
	if err != nil {
		return err
	}
	res, _ := runPending(cmd.Context(), app, ctrl, p)
	if res.Err != nil {
		return fmt.Errorf("fetch: %w", res.Err)
	}
	return nil
}

// logLines returns the activity log oldest first, the order a script reads it.
func logLines(ctrl *workflow.Controller) []model.LogEntry {
	entries := ctrl.Logs().Entries()
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries
}

// journalReport appends a published report to the history. Failures are logged,
// not returned: the remote operation already happened.
func journalReport(ctx context.Context, app *App, opID string, r *model.SummaryReport) {
	if r == nil {
		return
	}
	j, err := store.OpenJournal(ctx, app.cfg.JournalPath())
	if err != nil {
		app.log.Warn().Err(err).Msg("open report journal")
		return
	}
	defer j.Close()
	if _, err := j.Record(ctx, opID, *r); err != nil {
		app.log.Warn().Err(err).Str("op_id", opID).Msg("journal report")
	}
}

// finishReport prints the report with the activity log and maps an error status
// to a non-zero exit.
func finishReport(cmd *cobra.Command, app *App, ctrl *workflow.Controller, res workflow.Resolution, opID string) error {
	if res.Report == nil {
		if res.Err != nil {
			return writeErr(cmd, res.Err)
		}
		return writeErr(cmd, fmt.Errorf("%s: no report produced", res.Op))
	}
	journalReport(cmd.Context(), app, opID, res.Report)
	if err := writeOut(cmd, app, envelope{Data: res.Report, Meta: map[string]any{"log": logLines(ctrl)}}); err != nil {
		return writeErr(cmd, err)
	}
	if res.Report.Status == model.StatusError {
		return errReportStatus
	}
	return nil
}
