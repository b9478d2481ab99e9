package cli

import (
	"github.com/spf13/cobra"
)

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit [files...]",
		Short: "Open the TUI with files preloaded in the given order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app, args)
		},
	}
}
