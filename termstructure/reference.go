package termstructure

import "math"

// Reference returns the four-year textbook term structure used to
// demonstrate and test the calibration.
func Reference() Table {
	t, _ := New(
		[]float64{0.10, 0.11, 0.12, 0.125},
		[]float64{0.9091, 0.8116, 0.7118, 0.6243},
		[]float64{math.NaN(), 0.10, 0.15, 0.14},
	)
	return t
}
