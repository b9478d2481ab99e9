package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"pdfmerge-cli/internal/format"
	"pdfmerge-cli/internal/logging"
	"pdfmerge-cli/internal/pdf"
	"pdfmerge-cli/internal/store"
	"pdfmerge-cli/internal/tui"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type App struct {
	PrettyJSON bool
	Format     string
	LogLevel   string
	LogFile    string

	log       zerolog.Logger
	logCloser io.Closer
}

func NewRootCmd() *cobra.Command {
	app := &App{log: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:          "pdfmerge",
		Short:        "Order and merge PDF files (TUI + scriptable CLI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  pdfmerge

  # Open the TUI with files preloaded (shortcut for: pdfmerge edit a.pdf b.pdf)
  pdfmerge a.pdf b.pdf

  # Merge from scripts, moving the third file to the front first
  pdfmerge merge -o out.pdf --move 2:0 a.pdf b.pdf c.pdf
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app, nil)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.openLogger(cmd)
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.logCloser != nil {
			return app.logCloser.Close()
		}
		return nil
	}

	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("PDFMERGE_FORMAT", "json"), "Output format (json|text)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("PDFMERGE_LOG_LEVEL", "info"), "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", envOr("PDFMERGE_LOG_FILE", ""), "Log file (default: <config dir>/logs/pdfmerge.log; '-' for stderr, 'off' to disable)")

	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newMergeCmd(app))
	cmd.AddCommand(newInspectCmd(app))
	cmd.AddCommand(newHistoryCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func (app *App) openLogger(cmd *cobra.Command) error {
	file := strings.TrimSpace(app.LogFile)
	switch file {
	case "off", "none":
		file = ""
	case "":
		dir, err := store.ConfigDir()
		if err != nil {
			return writeErr(cmd, err)
		}
		file = filepath.Join(dir, "logs", "pdfmerge.log")
	}
	log, closer, err := logging.New(logging.Options{
		Level:  app.LogLevel,
		File:   file,
		Stderr: cmd.ErrOrStderr(),
	})
	if err != nil {
		return writeErr(cmd, err)
	}
	app.log = log.With().Str("cmd", cmd.Name()).Logger()
	app.logCloser = closer
	return nil
}

func runTUI(cmd *cobra.Command, app *App, paths []string) error {
	cfg, err := store.LoadConfig()
	if err != nil {
		return writeErr(cmd, err)
	}
	hist, err := store.OpenHistory(cmdContext(cmd), app.log)
	if err != nil {
		// The TUI is still useful without history.
		app.log.Warn().Err(err).Msg("open history")
		hist = nil
	}
	defer hist.Close()

	return tui.Run(tui.Options{
		Paths:   paths,
		Config:  cfg,
		History: hist,
		Merger:  pdf.NewMerger(app.log),
		Logger:  app.log,
	})
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// writeOut wraps data in the {"data": ...} envelope for JSON. In text mode a
// non-nil table is rendered instead.
func writeOut(cmd *cobra.Command, app *App, data any, table format.Tabular) error {
	if table != nil && strings.EqualFold(strings.TrimSpace(app.Format), "text") {
		return format.Write(cmd.OutOrStdout(), table, app.Format, app.PrettyJSON)
	}
	return format.Write(cmd.OutOrStdout(), map[string]any{"data": data}, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
