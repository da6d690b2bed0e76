package lattice

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange indicates access outside the populated or valid node range.
	ErrIndexOutOfRange = errors.New("lattice: index out of range")
	// ErrInvalidParameter indicates a bad lattice size or probability at construction.
	ErrInvalidParameter = errors.New("lattice: invalid parameter")
)

// IndexError describes a lattice access that broke the write-before-read
// ordering or the node bounds.
type IndexError struct {
	Op     string
	Index  []int
	Reason string
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("lattice: %s%v: %s", e.Op, e.Index, e.Reason)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

func outOfRange(op, reason string, index ...int) {
	panic(&IndexError{Op: op, Index: index, Reason: reason})
}
