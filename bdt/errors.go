package bdt

import (
	"errors"
	"fmt"
)

var (
	// ErrRootNotFound indicates the first-step bond equation has no positive root.
	ErrRootNotFound = errors.New("bdt: no positive root for short rate")
	// ErrCalibrationDivergence indicates the two-equation solve did not converge.
	ErrCalibrationDivergence = errors.New("bdt: calibration did not converge")
	// ErrInvalidArgument indicates a bad option, maturity, strike or period count.
	ErrInvalidArgument = errors.New("bdt: invalid argument")
)

// CalibrationError reports which maturity a calibration failed on. Nothing
// of the lattice is kept once a step fails, since later rows depend on it.
type CalibrationError struct {
	Step     int // lattice time step n
	Maturity int // observed maturity n+1 being fitted
	Err      error
}

func (e *CalibrationError) Error() string {
	return fmt.Sprintf("bdt: maturity %d (step %d): %v", e.Maturity, e.Step, e.Err)
}

func (e *CalibrationError) Unwrap() error { return e.Err }
