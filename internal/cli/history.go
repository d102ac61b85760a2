package cli

import (
	"lotr-ingest/internal/store"

	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded summary reports (newest first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := store.OpenJournal(cmd.Context(), app.cfg.JournalPath())
			if err != nil {
				return writeErr(cmd, err)
			}
			defer j.Close()
			entries, err := j.List(cmd.Context(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			if entries == nil {
				entries = []store.JournalEntry{}
			}
			return writeOut(cmd, app, envelope{Data: entries})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", store.DefaultHistoryLimit, "Max reports to return")
	return cmd
}
