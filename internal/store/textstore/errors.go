package textstore

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by errors.Is when no record has the requested index.
var ErrNotFound = errors.New("record not found")

// NotFoundError reports the index that had no record.
type NotFoundError struct {
	Index uint64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Item with index %d not found.", e.Index)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// IOError wraps a failure to open, read or write the data file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
