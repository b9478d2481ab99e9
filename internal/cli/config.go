package cli

import (
	"pdfmerge-cli/internal/format"
	"pdfmerge-cli/internal/store"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change persisted preferences",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, cfg, configTable(cfg))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Set one config key",
		Args:      cobra.ExactArgs(2),
		ValidArgs: store.ConfigKeys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return writeErr(cmd, err)
			}
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			app.log.Info().Str("key", args[0]).Msg("config: updated")
			return writeOut(cmd, app, cfg, configTable(cfg))
		},
	})

	return cmd
}

func configTable(cfg *store.Config) format.Table {
	t := format.Table{Headers: []string{"key", "value"}}
	for _, k := range store.ConfigKeys() {
		v, _ := cfg.Get(k)
		t.Rows = append(t.Rows, []string{k, v})
	}
	return t
}
