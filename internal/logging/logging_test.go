package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pdfmerge.log")
	log, closer, err := New(Options{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Debug().Str("k", "v").Msg("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), `"message":"hello"`) || !strings.Contains(string(b), `"k":"v"`) {
		t.Fatalf("unexpected log content: %s", b)
	}
}

func TestNew_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.log")
	log, closer, err := New(Options{Level: "warn", File: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info().Msg("quiet")
	log.Warn().Msg("loud")
	_ = closer.Close()
	b, _ := os.ReadFile(path)
	if strings.Contains(string(b), "quiet") || !strings.Contains(string(b), "loud") {
		t.Fatalf("level filtering wrong: %s", b)
	}
}

func TestNew_StderrAndDisabled(t *testing.T) {
	var buf bytes.Buffer
	log, _, err := New(Options{File: "-", Stderr: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info().Msg("to-console")
	if !strings.Contains(buf.String(), "to-console") {
		t.Fatalf("console output missing: %q", buf.String())
	}

	nop, closer, err := New(Options{})
	if err != nil || closer == nil {
		t.Fatalf("disabled logger: %v", err)
	}
	nop.Error().Msg("dropped")
}
