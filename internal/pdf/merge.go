package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rs/zerolog"
)

const MinMergeFiles = 2

var ErrTooFewFiles = fmt.Errorf("select at least %d PDF files to merge", MinMergeFiles)

// ErrOutputIsInput is returned when the output path names one of the inputs.
var ErrOutputIsInput = errors.New("output file is one of the inputs")

// FileError wraps a failure tied to one input file.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("could not process %q; make sure it is a valid PDF: %v", filepath.Base(e.Path), e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

type Result struct {
	OutputPath string `json:"outputPath"`
	Inputs     int    `json:"inputs"`
	Pages      int    `json:"pages"`
	Bytes      int64  `json:"bytes"`
}

// Progress is called after each input has been processed (done counts from 1).
type Progress func(done, total int)

type Merger struct {
	log  zerolog.Logger
	conf *model.Configuration
}

var disableConfigDirOnce sync.Once

func NewMerger(log zerolog.Logger) *Merger {
	// pdfcpu would otherwise create a config.yml under the user's config dir.
	disableConfigDirOnce.Do(api.DisableConfigDir)
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Merger{log: log, conf: conf}
}

// Validate checks one input the same way Merge does.
func (m *Merger) Validate(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ok, mt, err := IsPDF(path)
	if err != nil {
		return &FileError{Path: path, Err: err}
	}
	if !ok {
		return &FileError{Path: path, Err: &NotPDFError{Path: path, MIME: mt}}
	}
	if err := api.ValidateFile(path, m.conf); err != nil {
		return &FileError{Path: path, Err: err}
	}
	return nil
}

// Merge validates every input in order, then writes their pages, in the same
// order, to out.
func (m *Merger) Merge(ctx context.Context, paths []string, out string, progress Progress) (Result, error) {
	if len(paths) < MinMergeFiles {
		return Result{}, ErrTooFewFiles
	}
	if err := checkOutputNotInput(paths, out); err != nil {
		return Result{}, err
	}
	for i, p := range paths {
		if err := m.Validate(ctx, p); err != nil {
			m.log.Error().Err(err).Str("file", p).Msg("merge: validation failed")
			return Result{}, err
		}
		if progress != nil {
			progress(i+1, len(paths))
		}
	}
	return m.Write(ctx, paths, out)
}

// Write merges already validated inputs into out. Pages go to a temp file in
// the output directory that replaces out only once the merge succeeded, so a
// failed merge leaves any existing file at out untouched.
func (m *Merger) Write(ctx context.Context, paths []string, out string) (Result, error) {
	if len(paths) < MinMergeFiles {
		return Result{}, ErrTooFewFiles
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(out) == "" {
		return Result{}, errors.New("missing output path")
	}
	if err := checkOutputNotInput(paths, out); err != nil {
		return Result{}, err
	}
	dir := filepath.Dir(out)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, err
	}

	start := time.Now()
	tmp, err := os.CreateTemp(dir, ".pdfmerge-*.pdf")
	if err != nil {
		return Result{}, err
	}
	tmpName := tmp.Name()
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return Result{}, err
	}
	if err := api.MergeCreateFile(paths, tmpName, false, m.conf); err != nil {
		_ = os.Remove(tmpName)
		return Result{}, fmt.Errorf("merge pdfs: %w", err)
	}
	if err := ctx.Err(); err != nil {
		_ = os.Remove(tmpName)
		return Result{}, err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return Result{}, err
	}
	if err := os.Rename(tmpName, out); err != nil {
		_ = os.Remove(tmpName)
		return Result{}, err
	}

	res := Result{OutputPath: out, Inputs: len(paths)}
	if fi, err := os.Stat(out); err == nil {
		res.Bytes = fi.Size()
	}
	if n, err := api.PageCountFile(out); err == nil {
		res.Pages = n
	}
	m.log.Info().
		Str("out", out).
		Int("inputs", res.Inputs).
		Int("pages", res.Pages).
		Int64("bytes", res.Bytes).
		Dur("took", time.Since(start)).
		Msg("merge: done")
	return res, nil
}

func checkOutputNotInput(paths []string, out string) error {
	absOut, err := filepath.Abs(out)
	if err != nil {
		return err
	}
	outInfo, statErr := os.Stat(absOut)
	for _, p := range paths {
		absIn, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		if absIn == absOut {
			return fmt.Errorf("%w: %s", ErrOutputIsInput, p)
		}
		// Catches links and differently spelled paths to the same file.
		if statErr == nil {
			if inInfo, err := os.Stat(absIn); err == nil && os.SameFile(inInfo, outInfo) {
				return fmt.Errorf("%w: %s", ErrOutputIsInput, p)
			}
		}
	}
	return nil
}

// OutputName picks the output path for a merge started at now. pattern may
// contain {ts} (unix millis); the default is "merged-{ts}.pdf".
func OutputName(dir, pattern string, now time.Time) string {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		pattern = "merged-{ts}.pdf"
	}
	name := strings.ReplaceAll(pattern, "{ts}", strconv.FormatInt(now.UnixMilli(), 10))
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		name += ".pdf"
	}
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	return filepath.Join(dir, name)
}
