package rootfind

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
)

// PositiveRoot returns the smallest root of f in (0, upper]. It scans steps
// equal sub-intervals upward from zero and refines the first sign change
// with Bracketed; later roots are never considered.
func PositiveRoot(f func(float64) float64, upper float64, steps int, s Settings) (float64, error) {
	if !(upper > 0) || steps < 1 {
		return 0, fmt.Errorf("%w: bad scan interval (0, %v] in %d steps", ErrNoRoot, upper, steps)
	}

	width := upper / float64(steps)
	a, fa := 0.0, f(0)
	for k := 1; k <= steps; k++ {
		b := width * float64(k)
		fb := f(b)
		if fb == 0 {
			return b, nil
		}
		if isFinite(fa) && isFinite(fb) && math.Signbit(fa) != math.Signbit(fb) {
			x, _, err := Bracketed(f, a, b, s)
			return x, err
		}
		a, fa = b, fb
	}
	return 0, fmt.Errorf("%w: no sign change in (0, %v]", ErrNoRoot, upper)
}

// ExpandingPositiveRoot is PositiveRoot for residuals that keep their sign
// past upper. When (0, upper] holds no sign change the interval
// (upper, 2*upper] is tried next, and so on for up to doublings intervals.
func ExpandingPositiveRoot(f func(float64) float64, upper float64, steps, doublings int, s Settings) (float64, error) {
	x, err := PositiveRoot(f, upper, steps, s)
	if !errors.Is(err, ErrNoRoot) || !(upper > 0) || steps < 1 {
		return x, err
	}

	lo, flo := upper, f(upper)
	for k := 0; k < doublings; k++ {
		hi := 2 * lo
		fhi := f(hi)
		if fhi == 0 {
			return hi, nil
		}
		if isFinite(flo) && isFinite(fhi) && math.Signbit(flo) != math.Signbit(fhi) {
			x, _, err := Bracketed(f, lo, hi, s)
			return x, err
		}
		lo, flo = hi, fhi
	}
	return 0, fmt.Errorf("%w: no sign change in (0, %v]", ErrNoRoot, lo)
}

// Bracketed finds a root of f inside [lo, hi], where f(lo) and f(hi) differ
// in sign. It takes Newton steps and falls back to bisection whenever a step
// leaves the current bracket. It returns the root and the iterations used.
func Bracketed(f func(float64) float64, lo, hi float64, s Settings) (float64, int, error) {
	flo, fhi := f(lo), f(hi)
	switch {
	case flo == 0:
		return lo, 0, nil
	case fhi == 0:
		return hi, 0, nil
	case !isFinite(flo) || !isFinite(fhi) || math.Signbit(flo) == math.Signbit(fhi):
		return 0, 0, fmt.Errorf("%w: [%v, %v] does not bracket a root", ErrNoRoot, lo, hi)
	}

	x := 0.5 * (lo + hi)
	for iter := 1; iter <= s.MaxIterations; iter++ {
		fx := f(x)
		if math.Abs(fx) <= s.Tolerance {
			return x, iter, nil
		}

		// keep the root bracketed
		if math.Signbit(fx) == math.Signbit(flo) {
			lo, flo = x, fx
		} else {
			hi = x
		}
		if hi-lo <= 4*epsilon*(1+math.Abs(x)) {
			return x, iter, nil
		}

		d := fd.Derivative(f, x, &fd.Settings{Formula: fd.Central})
		next := x - fx/d
		if d == 0 || math.IsNaN(next) || next <= lo || next >= hi {
			next = 0.5 * (lo + hi)
		}
		x = next
	}
	return x, s.MaxIterations, fmt.Errorf("%w: %d iterations in [%v, %v]", ErrNoConvergence, s.MaxIterations, lo, hi)
}

const epsilon = 0x1p-52

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
