package bdt

import (
	"fmt"
	"log/slog"
)

// Options tunes the calibration solves.
type Options struct {
	// InitialRate and InitialVol start the two-equation Newton solve at
	// (r, sigma). The node multiplier is exp(2*sigma).
	InitialRate float64
	InitialVol  float64

	// Tolerance is the largest residual accepted on either equation.
	Tolerance float64
	// MaxIterations caps the Newton steps per maturity.
	MaxIterations int

	// RateCeiling and ScanSteps bound the first-step scan for the smallest
	// positive rate: (0, RateCeiling] is cut into ScanSteps pieces. With no
	// sign change there, the ceiling is doubled up to CeilingDoublings times.
	RateCeiling      float64
	ScanSteps        int
	CeilingDoublings int

	// UpProbability fills the risk-neutral probability grid.
	UpProbability float64

	// Recover retries a failed Newton solve by minimizing the squared
	// residual with Nelder-Mead before giving up. Off by default.
	Recover bool

	// Logger receives per-step Debug records; nil uses slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns the settings used for the textbook calibration.
func DefaultOptions() Options {
	return Options{
		InitialRate:      0.08,
		InitialVol:       0.01,
		Tolerance:        1e-10,
		MaxIterations:    100,
		RateCeiling:      1,
		ScanSteps:        1000,
		CeilingDoublings: 20,
		UpProbability:    0.5,
	}
}

func (o *Options) validate() error {
	switch {
	case !(o.Tolerance > 0):
		return fmt.Errorf("%w: tolerance %v must be positive", ErrInvalidArgument, o.Tolerance)
	case o.MaxIterations < 1:
		return fmt.Errorf("%w: max iterations %d must be positive", ErrInvalidArgument, o.MaxIterations)
	case !(o.RateCeiling > 0) || o.ScanSteps < 1:
		return fmt.Errorf("%w: rate scan (0, %v] in %d steps", ErrInvalidArgument, o.RateCeiling, o.ScanSteps)
	case o.CeilingDoublings < 0:
		return fmt.Errorf("%w: ceiling doublings %d must not be negative", ErrInvalidArgument, o.CeilingDoublings)
	case !(o.UpProbability > 0 && o.UpProbability < 1):
		return fmt.Errorf("%w: up-probability %v outside (0, 1)", ErrInvalidArgument, o.UpProbability)
	}
	return nil
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
