package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"lotr-ingest/internal/config"
	"lotr-ingest/internal/format"
	"lotr-ingest/internal/gateway"
	"lotr-ingest/internal/logging"
	"lotr-ingest/internal/store"
	"lotr-ingest/internal/tui"
	"lotr-ingest/internal/workflow"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type App struct {
	SourceURL  string
	StoreURL   string
	Home       string
	PrettyJSON bool

	cfg       config.Config
	log       zerolog.Logger
	logCloser io.Closer
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{log: zerolog.Nop()})
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "lotr-ingest",
		Short:        "Fetch, preview and ingest Lord of the Rings data",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  lotr-ingest

  # Scriptable commands
  lotr-ingest fetch --slice stats
  lotr-ingest ingest --quotes
  lotr-ingest history --limit 5
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := app.load(); err != nil {
			return writeErr(cmd, err)
		}
		return nil
	}
	cmd.PersistentFlags().StringVar(&app.SourceURL, "source", "", "Source API base URL (overrides LOTR_INGEST_SOURCE_URL)")
	cmd.PersistentFlags().StringVar(&app.StoreURL, "store", "", "Remote store base URL (overrides LOTR_INGEST_STORE_URL)")
	cmd.PersistentFlags().StringVar(&app.Home, "home", "", "Directory for logs, report history and UI state (overrides LOTR_INGEST_HOME)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newFetchCmd(app))
	cmd.AddCommand(newIngestCmd(app))
	cmd.AddCommand(newWipeCmd(app))
	cmd.AddCommand(newHistoryCmd(app))

	// Post-run hooks are skipped when RunE fails, so the log file is closed here.
	closeAfter(app, cmd)
	for _, sub := range cmd.Commands() {
		closeAfter(app, sub)
	}
	return cmd
}

func closeAfter(app *App, cmd *cobra.Command) {
	run := cmd.RunE
	if run == nil {
		return
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		defer app.close()
		return run(cmd, args)
	}
}

// load resolves config (dotenv, environment, then flags) and opens the log file.
func (app *App) load() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if v := strings.TrimSpace(app.SourceURL); v != "" {
		cfg.SourceURL = v
	}
	if v := strings.TrimSpace(app.StoreURL); v != "" {
		cfg.StoreURL = v
	}
	if v := strings.TrimSpace(app.Home); v != "" {
		cfg.Home = v
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	app.cfg = cfg

	log, closer, err := logging.Open(cfg.LogDir(), cfg.LogLevel)
	if err != nil {
		return err
	}
	app.log, app.logCloser = log, closer
	return nil
}

func (app *App) close() {
	if app.logCloser != nil {
		_ = app.logCloser.Close()
		app.logCloser = nil
		app.log = zerolog.Nop()
	}
}

func (app *App) controller() *workflow.Controller {
	gw := gateway.New(gateway.OptionsFromConfig(app.cfg, app.log))
	return workflow.New(gw, workflow.Options{
		MaxCharacters: app.cfg.MaxCharacters,
		MaxLogEntries: app.cfg.MaxLogEntries,
		Logger:        app.log,
	})
}

func runTUI(cmd *cobra.Command, app *App) error {
	opts := tui.Options{
		Controller: app.controller(),
		State:      store.Store{Dir: app.cfg.StateDir()},
		Logger:     app.log,
		Timeout:    app.cfg.Timeout,
	}
	// History is best-effort in the TUI; a broken journal must not block ingestion.
	j, err := store.OpenJournal(cmd.Context(), app.cfg.JournalPath())
	if err != nil {
		app.log.Warn().Err(err).Msg("open report journal")
	} else {
		defer j.Close()
		opts.Journal = j
	}
	return tui.Run(cmd.Context(), opts)
}

// envelope is the JSON shape every command prints: {"data": ..., "meta": {...}}.
type envelope struct {
	Data any            `json:"data"`
	Meta map[string]any `json:"meta,omitempty"`
}

func writeOut(cmd *cobra.Command, app *App, v envelope) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

// errReportStatus is returned after an error report has been printed so the
// process exits non-zero.
var errReportStatus = errors.New("remote reported an error")
