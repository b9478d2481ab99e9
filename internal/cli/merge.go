package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pdfmerge-cli/internal/format"
	"pdfmerge-cli/internal/model"
	"pdfmerge-cli/internal/order"
	"pdfmerge-cli/internal/pdf"
	"pdfmerge-cli/internal/store"

	"github.com/spf13/cobra"
)

func newMergeCmd(app *App) *cobra.Command {
	var (
		out    string
		moves  []string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "merge <file>...",
		Short: "Merge PDFs in the given order (after applying --move steps)",
		Example: strings.TrimSpace(`
  pdfmerge merge -o book.pdf cover.pdf ch1.pdf ch2.pdf
  pdfmerge merge --move 2:0 --move 1:2 a.pdf b.pdf c.pdf
  pdfmerge merge --dry-run --format text --move 0:2 a.pdf b.pdf c.pdf
`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := buildList(cmd, app, args)
			if err != nil {
				return writeErr(cmd, err)
			}
			for _, spec := range moves {
				from, to, err := parseMove(spec)
				if err != nil {
					return writeErr(cmd, err)
				}
				if err := list.Move(from, to); err != nil {
					return writeErr(cmd, fmt.Errorf("--move %s: %w", spec, err))
				}
			}

			if dryRun {
				items := list.Items()
				return writeOut(cmd, app, map[string]any{"order": items}, itemsTable(items))
			}
			if list.Len() < pdf.MinMergeFiles {
				return writeErr(cmd, pdf.ErrTooFewFiles)
			}

			if strings.TrimSpace(out) == "" {
				cfg, err := store.LoadConfig()
				if err != nil {
					return writeErr(cmd, err)
				}
				out = pdf.OutputName(cfg.OutputDir, cfg.OutputPattern, time.Now())
			}

			ctx := cmdContext(cmd)
			merger := pdf.NewMerger(app.log)
			res, err := merger.Merge(ctx, list.Paths(), out, func(done, total int) {
				app.log.Debug().Int("done", done).Int("total", total).Msg("merge: validated")
			})
			if err != nil {
				return writeErr(cmd, err)
			}

			rec := model.MergeRecord{OutputPath: res.OutputPath, Inputs: list.Paths(), Pages: res.Pages, Bytes: res.Bytes}
			if hist, err := store.OpenHistory(ctx, app.log); err != nil {
				app.log.Warn().Err(err).Msg("open history")
			} else {
				if saved, err := hist.Record(ctx, rec); err != nil {
					app.log.Warn().Err(err).Msg("record merge")
				} else {
					rec = saved
				}
				_ = hist.Close()
			}

			t := format.Table{
				Headers: []string{"field", "value"},
				Rows: [][]string{
					{"output", res.OutputPath},
					{"inputs", strconv.Itoa(res.Inputs)},
					{"pages", strconv.Itoa(res.Pages)},
					{"size", pdf.FormatSize(res.Bytes)},
				},
			}
			return writeOut(cmd, app, rec, t)
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "Output file (default: config outputDir + outputPattern)")
	cmd.Flags().StringArrayVar(&moves, "move", nil, "Reorder step old:new (0-based, final position), applied in the order given")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the resulting order without merging")

	return cmd
}

// buildList inspects files and appends them in argument order. Duplicates
// (same name and size) are skipped; anything that is not a PDF fails the
// command.
func buildList(cmd *cobra.Command, app *App, paths []string) (*order.List, error) {
	items, err := pdf.InspectAll(cmdContext(cmd), paths)
	if err != nil {
		var npe *pdf.NotPDFError
		if errors.As(err, &npe) {
			return nil, fmt.Errorf("only PDF files are allowed: %s", npe.Path)
		}
		return nil, err
	}
	list := &order.List{}
	for _, it := range items {
		if err := list.Append(it); err != nil {
			if errors.Is(err, order.ErrDuplicateItem) {
				app.log.Info().Str("path", it.Path).Msg("merge: skipping duplicate")
				continue
			}
			return nil, err
		}
	}
	return list, nil
}

func parseMove(spec string) (int, int, error) {
	a, b, ok := strings.Cut(strings.TrimSpace(spec), ":")
	if !ok {
		return 0, 0, badMoveError{spec: spec, reason: "missing ':'"}
	}
	from, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return 0, 0, badMoveError{spec: spec, reason: "old index is not a number"}
	}
	to, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return 0, 0, badMoveError{spec: spec, reason: "new index is not a number"}
	}
	return from, to, nil
}
