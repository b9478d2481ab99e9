package order

import (
	"strings"

	"pdfmerge-cli/internal/model"
)

// List is the authoritative merge order. It is owned by a single goroutine
// (the TUI update loop or a CLI command) and is not safe for concurrent use.
// The zero value is an empty list.
type List struct {
	items   []model.Item
	version uint64
}

func New(items ...model.Item) (*List, error) {
	l := &List{}
	for _, it := range items {
		if err := l.Append(it); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Version increases on every successful mutation. Index snapshots taken at an
// older version must be re-derived before issuing further operations.
func (l *List) Version() uint64 { return l.version }

func (l *List) Len() int { return len(l.items) }

func (l *List) At(i int) (model.Item, bool) {
	if i < 0 || i >= len(l.items) {
		return model.Item{}, false
	}
	return l.items[i], true
}

// Items returns a copy of the sequence in merge order.
func (l *List) Items() []model.Item {
	return append([]model.Item(nil), l.items...)
}

func (l *List) Keys() []string {
	out := make([]string, 0, len(l.items))
	for _, it := range l.items {
		out = append(out, it.Key)
	}
	return out
}

func (l *List) Paths() []string {
	out := make([]string, 0, len(l.items))
	for _, it := range l.items {
		out = append(out, it.Path)
	}
	return out
}

func (l *List) IndexOf(key string) int {
	key = strings.TrimSpace(key)
	for i := range l.items {
		if l.items[i].Key == key {
			return i
		}
	}
	return -1
}

func (l *List) Contains(key string) bool { return l.IndexOf(key) >= 0 }

// Append adds it at the end. A key that is already present leaves the list
// untouched and returns a *DuplicateItemError.
func (l *List) Append(it model.Item) error {
	it.Key = strings.TrimSpace(it.Key)
	if l.Contains(it.Key) {
		return &DuplicateItemError{Key: it.Key}
	}
	l.items = append(l.items, it)
	l.version++
	return nil
}

func (l *List) RemoveAt(index int) (model.Item, error) {
	if index < 0 || index >= len(l.items) {
		return model.Item{}, &IndexOutOfRangeError{Op: "remove", Index: index, Len: len(l.items)}
	}
	removed := l.items[index]
	l.items = append(l.items[:index], l.items[index+1:]...)
	l.version++
	return removed, nil
}

// Move splices the item at oldIndex out and reinserts it so that it ends up at
// newIndex. newIndex is the final resting position, measured against the
// sequence after the removal.
func (l *List) Move(oldIndex, newIndex int) error {
	n := len(l.items)
	if oldIndex < 0 || oldIndex >= n {
		return &IndexOutOfRangeError{Op: "move", Index: oldIndex, Len: n}
	}
	if newIndex < 0 || newIndex >= n {
		return &IndexOutOfRangeError{Op: "move", Index: newIndex, Len: n}
	}
	if oldIndex == newIndex {
		return nil
	}

	moved := l.items[oldIndex]
	rest := make([]model.Item, 0, n)
	rest = append(rest, l.items[:oldIndex]...)
	rest = append(rest, l.items[oldIndex+1:]...)

	final := make([]model.Item, 0, n)
	final = append(final, rest[:newIndex]...)
	final = append(final, moved)
	final = append(final, rest[newIndex:]...)

	l.items = final
	l.version++
	return nil
}

func (l *List) Clear() {
	if len(l.items) == 0 {
		return
	}
	l.items = nil
	l.version++
}
