package rootfind

import "errors"

var (
	// ErrNoRoot indicates no sign change was found in the search interval.
	ErrNoRoot = errors.New("rootfind: no root in search interval")
	// ErrNoConvergence indicates the iteration limit was hit, the Jacobian was
	// singular, or no step reduced the residual.
	ErrNoConvergence = errors.New("rootfind: did not converge")
)
