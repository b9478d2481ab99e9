package cli

import (
	"strconv"

	"pdfmerge-cli/internal/format"
	"pdfmerge-cli/internal/model"
	"pdfmerge-cli/internal/pdf"

	"github.com/spf13/cobra"
)

func newInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>...",
		Short: "Show the list descriptor (key, size, pages) for each file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := pdf.InspectAll(cmdContext(cmd), args)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, items, itemsTable(items))
		},
	}
}

func itemsTable(items []model.Item) format.Table {
	t := format.Table{Headers: []string{"#", "file", "pages", "size", "key"}}
	for i, it := range items {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(i),
			it.Label,
			strconv.Itoa(it.Pages),
			pdf.FormatSize(it.SizeBytes),
			it.Key,
		})
	}
	return t
}
