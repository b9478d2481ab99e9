package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pdfmerge-cli/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	_ "modernc.org/sqlite"
)

const historyFileName = "history.sqlite"

// History is the local log of completed merges.
type History struct {
	db  *sql.DB
	log zerolog.Logger
}

func HistoryPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, historyFileName), nil
}

func OpenHistory(ctx context.Context, log zerolog.Logger) (*History, error) {
	path, err := HistoryPath()
	if err != nil {
		return nil, err
	}
	return OpenHistoryAt(ctx, path, log)
}

func OpenHistoryAt(ctx context.Context, path string, log zerolog.Logger) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL + busy_timeout: the TUI and a CLI invocation may write at the same time.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	h := &History{db: db, log: log}
	if err := h.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return h, nil
}

func (h *History) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS merges (
			id TEXT PRIMARY KEY,
			output_path TEXT NOT NULL,
			inputs_json TEXT NOT NULL,
			pages INTEGER NOT NULL,
			bytes INTEGER NOT NULL,
			created_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_merges_created ON merges(created_at_unixms);`,
	}
	for _, st := range stmts {
		if _, err := h.db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func (h *History) Close() error {
	if h == nil || h.db == nil {
		return nil
	}
	return h.db.Close()
}

// Record stores rec, filling in ID and CreatedAt when empty.
func (h *History) Record(ctx context.Context, rec model.MergeRecord) (model.MergeRecord, error) {
	if strings.TrimSpace(rec.OutputPath) == "" {
		return model.MergeRecord{}, errors.New("merge record: missing output path")
	}
	if rec.ID == "" {
		rec.ID = "merge-" + uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	inputs, err := json.Marshal(append([]string{}, rec.Inputs...))
	if err != nil {
		return model.MergeRecord{}, err
	}
	_, err = h.db.ExecContext(ctx,
		`INSERT INTO merges (id, output_path, inputs_json, pages, bytes, created_at_unixms) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.OutputPath, string(inputs), rec.Pages, rec.Bytes, rec.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return model.MergeRecord{}, err
	}
	h.log.Debug().Str("id", rec.ID).Str("out", rec.OutputPath).Msg("history: recorded merge")
	return rec, nil
}

// List returns the newest records first. limit <= 0 means no limit.
func (h *History) List(ctx context.Context, limit int) ([]model.MergeRecord, error) {
	q := `SELECT id, output_path, inputs_json, pages, bytes, created_at_unixms FROM merges ORDER BY created_at_unixms DESC, id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := h.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.MergeRecord{}
	for rows.Next() {
		var (
			rec     model.MergeRecord
			inputs  string
			created int64
		)
		if err := rows.Scan(&rec.ID, &rec.OutputPath, &inputs, &rec.Pages, &rec.Bytes, &created); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(inputs), &rec.Inputs); err != nil {
			return nil, err
		}
		rec.CreatedAt = time.UnixMilli(created).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}
