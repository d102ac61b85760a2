package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var errWipeNeedsYes = errors.New("refusing to wipe without --yes")

func newWipeCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "Delete every record in the remote store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return writeErr(cmd, errWipeNeedsYes)
			}
			ctrl := app.controller()
			if _, err := ctrl.RequestWipe(); err != nil {
				return writeErr(cmd, err)
			}
			p, err := ctrl.ConfirmWipe(true)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, opID := runPending(cmd.Context(), app, ctrl, p)
			return finishReport(cmd, app, ctrl, res, opID)
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the wipe (required)")
	return cmd
}
