package cli

import (
	"fmt"
	"os"
	"strings"

	"pdfmerge-cli/internal/docs"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
	var (
		raw   bool
		width int
	)

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show built-in documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, map[string]any{"topics": docs.Topics()}, nil)
			}

			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return writeErr(cmd, unknownTopicError{topic: topic})
			}

			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			if strings.EqualFold(strings.TrimSpace(app.Format), "text") {
				out, err := renderDocs(body, width)
				if err != nil {
					return writeErr(cmd, err)
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), out)
				return err
			}

			return writeOut(cmd, app, map[string]any{"topic": topic, "markdown": body}, nil)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no JSON envelope)")
	cmd.Flags().IntVar(&width, "width", 80, "Wrap width for --format text")

	return cmd
}

// renderDocs uses a fixed style; auto-detection queries the terminal, which
// blocks when stdout is a pipe on some systems.
func renderDocs(md string, width int) (string, error) {
	style := "dark"
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		style = "notty"
	} else if strings.EqualFold(strings.TrimSpace(os.Getenv("PDFMERGE_TUI_THEME")), "light") {
		style = "light"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
