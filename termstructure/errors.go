package termstructure

import "errors"

// ErrInvalidInput indicates a malformed or incomplete term-structure row.
var ErrInvalidInput = errors.New("termstructure: invalid input")
