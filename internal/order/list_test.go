package order

import (
	"errors"
	"testing"

	"pdfmerge-cli/internal/model"

	"github.com/google/go-cmp/cmp"
)

func items(keys ...string) []model.Item {
	out := make([]model.Item, 0, len(keys))
	for _, k := range keys {
		out = append(out, model.Item{Key: k, Label: k + ".pdf", SizeBytes: int64(len(k))})
	}
	return out
}

func mustList(t *testing.T, keys ...string) *List {
	t.Helper()
	l, err := New(items(keys...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return l
}

func TestAppend_DuplicateKeyLeavesListUnchanged(t *testing.T) {
	l := mustList(t, "a", "b")
	v := l.Version()

	err := l.Append(model.Item{Key: "a", Label: "other.pdf"})
	if !errors.Is(err, ErrDuplicateItem) {
		t.Fatalf("expected ErrDuplicateItem, got %v", err)
	}
	var dup *DuplicateItemError
	if !errors.As(err, &dup) || dup.Key != "a" {
		t.Fatalf("expected DuplicateItemError for key a, got %#v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, l.Keys()); diff != "" {
		t.Fatalf("keys changed (-want +got):\n%s", diff)
	}
	if l.Version() != v {
		t.Fatalf("version bumped on rejected append: %d -> %d", v, l.Version())
	}
	if got := l.Items()[0].Label; got != "a.pdf" {
		t.Fatalf("existing item overwritten: label=%q", got)
	}
}

func TestNew_RejectsDuplicates(t *testing.T) {
	if _, err := New(items("a", "a")...); !errors.Is(err, ErrDuplicateItem) {
		t.Fatalf("expected ErrDuplicateItem, got %v", err)
	}
}

func TestRemoveAt(t *testing.T) {
	l := mustList(t, "a", "b", "c")

	got, err := l.RemoveAt(1)
	if err != nil {
		t.Fatalf("RemoveAt: %v", err)
	}
	if got.Key != "b" {
		t.Fatalf("removed %q, want b", got.Key)
	}
	if diff := cmp.Diff([]string{"a", "c"}, l.Keys()); diff != "" {
		t.Fatalf("keys (-want +got):\n%s", diff)
	}

	for _, idx := range []int{-1, 2, 10} {
		_, err := l.RemoveAt(idx)
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("RemoveAt(%d): expected ErrIndexOutOfRange, got %v", idx, err)
		}
	}
	if diff := cmp.Diff([]string{"a", "c"}, l.Keys()); diff != "" {
		t.Fatalf("failed remove mutated list (-want +got):\n%s", diff)
	}
}

func TestMove_Table(t *testing.T) {
	cases := []struct {
		name     string
		from, to int
		want     []string
	}{
		{name: "forward to end", from: 0, to: 3, want: []string{"b", "c", "d", "a"}},
		{name: "forward one", from: 0, to: 1, want: []string{"b", "a", "c", "d"}},
		{name: "forward middle", from: 0, to: 2, want: []string{"b", "c", "a", "d"}},
		{name: "backward to front", from: 3, to: 0, want: []string{"d", "a", "b", "c"}},
		{name: "backward one", from: 2, to: 1, want: []string{"a", "c", "b", "d"}},
		{name: "same index", from: 2, to: 2, want: []string{"a", "b", "c", "d"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := mustList(t, "a", "b", "c", "d")
			if err := l.Move(tc.from, tc.to); err != nil {
				t.Fatalf("Move(%d,%d): %v", tc.from, tc.to, err)
			}
			if diff := cmp.Diff(tc.want, l.Keys()); diff != "" {
				t.Fatalf("Move(%d,%d) (-want +got):\n%s", tc.from, tc.to, diff)
			}
		})
	}
}

func TestMove_SameIndexDoesNotBumpVersion(t *testing.T) {
	l := mustList(t, "a", "b")
	v := l.Version()
	if err := l.Move(1, 1); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if l.Version() != v {
		t.Fatalf("no-op move bumped version")
	}
}

func TestMove_OutOfRange(t *testing.T) {
	l := mustList(t, "a", "b", "c")
	for _, tc := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
		err := l.Move(tc[0], tc[1])
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("Move(%d,%d): expected ErrIndexOutOfRange, got %v", tc[0], tc[1], err)
		}
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, l.Keys()); diff != "" {
		t.Fatalf("rejected move mutated list (-want +got):\n%s", diff)
	}

	empty := &List{}
	if err := empty.Move(0, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("Move on empty list: expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestMove_PreservesMultisetAndShiftsOthersByOne(t *testing.T) {
	keys := []string{"a", "b", "c", "d", "e", "f"}
	for i := range keys {
		for j := range keys {
			if i == j {
				continue
			}
			l := mustList(t, keys...)
			if err := l.Move(i, j); err != nil {
				t.Fatalf("Move(%d,%d): %v", i, j, err)
			}
			got := l.Keys()
			if got[j] != keys[i] {
				t.Fatalf("Move(%d,%d): item %q not at %d: %v", i, j, keys[i], j, got)
			}
			for k, key := range keys {
				if k == i {
					continue
				}
				want := k
				switch {
				case i < j && k > i && k <= j:
					want = k - 1
				case i > j && k >= j && k < i:
					want = k + 1
				}
				if got[want] != key {
					t.Fatalf("Move(%d,%d): item %q expected at %d, got %v", i, j, key, want, got)
				}
			}
		}
	}
}

func TestMove_InversesRestoreOriginal(t *testing.T) {
	keys := []string{"a", "b", "c", "d", "e"}
	l := mustList(t, keys...)
	moves := [][2]int{{0, 4}, {3, 1}, {2, 2}, {4, 0}, {1, 3}}
	for _, mv := range moves {
		if err := l.Move(mv[0], mv[1]); err != nil {
			t.Fatalf("Move(%d,%d): %v", mv[0], mv[1], err)
		}
	}
	for i := len(moves) - 1; i >= 0; i-- {
		if err := l.Move(moves[i][1], moves[i][0]); err != nil {
			t.Fatalf("inverse Move(%d,%d): %v", moves[i][1], moves[i][0], err)
		}
	}
	if diff := cmp.Diff(keys, l.Keys()); diff != "" {
		t.Fatalf("inverse moves did not restore order (-want +got):\n%s", diff)
	}
}

func TestClear(t *testing.T) {
	l := mustList(t, "a", "b")
	l.Clear()
	if l.Len() != 0 {
		t.Fatalf("expected empty list, got %v", l.Keys())
	}
	if err := l.Append(model.Item{Key: "a"}); err != nil {
		t.Fatalf("append after clear: %v", err)
	}
}

func TestItems_ReturnsCopy(t *testing.T) {
	l := mustList(t, "a", "b")
	got := l.Items()
	got[0].Key = "zzz"
	if l.Keys()[0] != "a" {
		t.Fatalf("Items leaked internal slice")
	}
}

func TestList_ZeroValueIsEmpty(t *testing.T) {
	var l List
	if l.Len() != 0 || len(l.Items()) != 0 {
		t.Fatalf("zero list should be empty")
	}
	if err := l.Append(model.Item{Key: "a:1", Label: "a.pdf"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if l.Len() != 1 || l.Version() != 1 {
		t.Fatalf("len=%d version=%d", l.Len(), l.Version())
	}
}
