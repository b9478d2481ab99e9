package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Options defines logger initialization parameters.
type Options struct {
	Level string

	// File is the log destination. "" disables logging, "-" writes
	// human-readable output to Stderr.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int

	// Stderr overrides os.Stderr for File == "-" (tests).
	Stderr io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds a logger. The TUI owns the terminal, so the usual sink is a
// rotated file; the returned closer flushes and closes it.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	file := strings.TrimSpace(opts.File)
	switch file {
	case "":
		return zerolog.Nop(), nopCloser{}, nil
	case "-":
		w := opts.Stderr
		if w == nil {
			w = os.Stderr
		}
		cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		return zerolog.New(cw).Level(lvl).With().Timestamp().Logger(), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("create logs dir: %w", err)
	}
	lj := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    orDefault(opts.MaxSizeMB, 10),
		MaxBackups: orDefault(opts.MaxBackups, 3),
		MaxAge:     orDefault(opts.MaxAgeDays, 30),
	}
	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(lj).Level(lvl).With().Timestamp().Logger(), lj, nil
}

func orDefault(v, d int) int {
	if v <= 0 {
		return d
	}
	return v
}
