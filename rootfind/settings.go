package rootfind

// Settings bounds an iterative solve.
type Settings struct {
	// Tolerance is the largest absolute residual accepted as a root.
	Tolerance float64
	// MaxIterations caps Newton (or bisection) steps.
	MaxIterations int
}

// DefaultSettings returns a tolerance of 1e-12 and 100 iterations.
func DefaultSettings() Settings {
	return Settings{Tolerance: 1e-12, MaxIterations: 100}
}
