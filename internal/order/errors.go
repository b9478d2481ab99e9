package order

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateItem   = errors.New("duplicate item")
	ErrIndexOutOfRange = errors.New("index out of range")
)

type DuplicateItemError struct {
	Key string
}

func (e *DuplicateItemError) Error() string {
	return fmt.Sprintf("duplicate item: %s", e.Key)
}

func (e *DuplicateItemError) Unwrap() error { return ErrDuplicateItem }

// IndexOutOfRangeError reports an index that does not address the current
// sequence. Callers that derive indices from the latest render never see it.
type IndexOutOfRangeError struct {
	Op    string
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0,%d)", e.Op, e.Index, e.Len)
}

func (e *IndexOutOfRangeError) Unwrap() error { return ErrIndexOutOfRange }
