package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pdfmerge-cli/internal/model"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"golang.org/x/sync/errgroup"
)

const mimePDF = "application/pdf"

var ErrNotPDF = errors.New("only PDF files are allowed")

type NotPDFError struct {
	Path string
	MIME string
}

func (e *NotPDFError) Error() string {
	return fmt.Sprintf("%s is %s, only PDF files are allowed", filepath.Base(e.Path), e.MIME)
}

func (e *NotPDFError) Unwrap() error { return ErrNotPDF }

// IsPDF checks the file's magic bytes, not its name.
func IsPDF(path string) (bool, string, error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return false, "", fmt.Errorf("detect file type: %w", err)
	}
	return mt.Is(mimePDF), mt.String(), nil
}

// Inspect builds the list descriptor for a PDF on disk. The page count is
// best-effort; a file pdfcpu cannot count still gets listed and fails later
// at merge time with a per-file error.
func Inspect(path string) (model.Item, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return model.Item{}, err
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return model.Item{}, err
	}
	if fi.IsDir() {
		return model.Item{}, fmt.Errorf("%s is a directory", abs)
	}
	ok, mt, err := IsPDF(abs)
	if err != nil {
		return model.Item{}, err
	}
	if !ok {
		return model.Item{}, &NotPDFError{Path: abs, MIME: mt}
	}

	it := model.Item{
		Key:       model.KeyFor(abs, fi.Size()),
		Label:     filepath.Base(abs),
		Path:      abs,
		SizeBytes: fi.Size(),
		AddedAt:   time.Now().UTC(),
	}
	disableConfigDirOnce.Do(api.DisableConfigDir)
	if n, err := api.PageCountFile(abs); err == nil {
		it.Pages = n
	}
	return it, nil
}

// InspectAll inspects paths concurrently and returns the items in argument
// order. The first failure cancels the rest.
func InspectAll(ctx context.Context, paths []string) ([]model.Item, error) {
	items := make([]model.Item, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			it, err := Inspect(p)
			if err != nil {
				return err
			}
			items[i] = it
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

// FormatSize renders a byte count for display.
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 bytes"
	}
	return humanize.IBytes(uint64(bytes))
}
