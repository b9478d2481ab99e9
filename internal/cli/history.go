package cli

import (
	"strconv"

	"pdfmerge-cli/internal/format"
	"pdfmerge-cli/internal/pdf"
	"pdfmerge-cli/internal/store"

	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past merges, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			hist, err := store.OpenHistory(ctx, app.log)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer hist.Close()

			recs, err := hist.List(ctx, limit)
			if err != nil {
				return writeErr(cmd, err)
			}

			t := format.Table{Headers: []string{"when", "output", "files", "pages", "size"}}
			for _, r := range recs {
				t.Rows = append(t.Rows, []string{
					r.CreatedAt.Local().Format("2006-01-02 15:04"),
					r.OutputPath,
					strconv.Itoa(len(r.Inputs)),
					strconv.Itoa(r.Pages),
					pdf.FormatSize(r.Bytes),
				})
			}
			return writeOut(cmd, app, recs, t)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Max records (0 = all)")
	return cmd
}
