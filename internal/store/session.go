package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

const sessionFileName = "session.json"

// Session is the last file list shown in the TUI, in merge order.
//
// It is best effort: callers should tolerate missing or stale paths.
type Session struct {
	Version int      `json:"version"`
	Paths   []string `json:"paths"`
}

func sessionPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, sessionFileName), nil
}

func LoadSession() (*Session, error) {
	path, err := sessionPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Session{Version: 1}, nil
		}
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		// Corrupt session: start empty rather than block the TUI.
		return &Session{Version: 1}, nil
	}
	if s.Version == 0 {
		s.Version = 1
	}
	return &s, nil
}

func SaveSession(paths []string) error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(Session{Version: 1, Paths: append([]string{}, paths...)}, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(dir, "session.json.*.tmp", path, b, 0o644)
}
