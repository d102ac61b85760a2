package cli

import (
	"lotr-ingest/internal/format"

	"github.com/spf13/cobra"
)

func newFetchCmd(app *App) *cobra.Command {
	var slice string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the dataset from the source API and print one slice as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := format.ParseSlice(slice)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctrl := app.controller()
			if err := fetchDataset(cmd, app, ctrl); err != nil {
				return writeErr(cmd, err)
			}
			ds := ctrl.Dataset()
			return writeOut(cmd, app, envelope{
				Data: format.SliceOf(ds, s),
				Meta: map[string]any{
					"slice":   s.String(),
					"caption": format.Caption(ds, s),
					"log":     logLines(ctrl),
				},
			})
		},
	}
	cmd.Flags().StringVar(&slice, "slice", format.SliceCharacters.String(), "Part of the dataset to print (characters|movies|stats|all)")
	return cmd
}
