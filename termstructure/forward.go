package termstructure

import "fmt"

// ForwardRate returns the simple forward rate for investing from maturity
// from to maturity to, fixed today:
//
//	F = B(from)/B(to) - 1
//
// prices[k-1] is B(k), the time-zero price of the maturity-k bond, and B(0)
// is taken to be 1.
func ForwardRate(prices []float64, from, to int) (float64, error) {
	if from < 0 || to <= from || to > len(prices) {
		return 0, fmt.Errorf("%w: forward rate needs 0 <= from < to <= %d, got from=%d to=%d",
			ErrInvalidInput, len(prices), from, to)
	}

	start := 1.0
	if from > 0 {
		start = prices[from-1]
	}
	return start/prices[to-1] - 1, nil
}
