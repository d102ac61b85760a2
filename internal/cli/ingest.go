package cli

import (
	"github.com/spf13/cobra"
)

func newIngestCmd(app *App) *cobra.Command {
	var quotes bool

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Fetch, then commit the characters (or their quotes) to the remote store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := app.controller()
			if err := fetchDataset(cmd, app, ctrl); err != nil {
				return writeErr(cmd, err)
			}
			begin := ctrl.BeginCommitCharacters
			if quotes {
				begin = ctrl.BeginCommitQuotes
			}
			p, err := begin()
			if err != nil {
				return writeErr(cmd, err)
			}
			res, opID := runPending(cmd.Context(), app, ctrl, p)
			return finishReport(cmd, app, ctrl, res, opID)
		},
	}
	cmd.Flags().BoolVar(&quotes, "quotes", false, "Commit the sampled quotes instead of the characters")
	return cmd
}
