package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Item is one selectable PDF in the merge list.
//
// Key is the identity used for de-duplication and for tracking a card across
// re-renders; it never encodes the display position.
type Item struct {
	Key       string    `json:"key"`
	Label     string    `json:"label"`
	Path      string    `json:"path,omitempty"`
	SizeBytes int64     `json:"sizeBytes"`
	Pages     int       `json:"pages,omitempty"`
	AddedAt   time.Time `json:"addedAt,omitempty"`
}

// KeyFor derives an item key from a file's base name and size.
// Two selections of the same file (same name, same size) collide on purpose.
func KeyFor(path string, size int64) string {
	name := strings.TrimSpace(filepath.Base(path))
	return fmt.Sprintf("%s:%d", name, size)
}

type MergeRecord struct {
	ID         string    `json:"id"`
	OutputPath string    `json:"outputPath"`
	Inputs     []string  `json:"inputs"`
	Pages      int       `json:"pages"`
	Bytes      int64     `json:"bytes"`
	CreatedAt  time.Time `json:"createdAt"`
}
