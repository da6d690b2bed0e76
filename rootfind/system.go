package rootfind

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// System evaluates a vector residual f(x) into dst. len(dst) == len(x).
type System func(dst, x []float64)

// Result is the outcome of a system solve.
type Result struct {
	X          []float64
	Residual   float64 // max-norm of f(X)
	Iterations int
}

// maxHalvings bounds the backtracking on each Newton step.
const maxHalvings = 30

// Newton solves f(x) = 0 from x0. Each step solves J dx = f(x) with a
// central-difference Jacobian and halves the step until the max-norm of the
// residual decreases. A full step is always tried first, so on well-behaved
// problems this is plain Newton-Raphson.
func Newton(f System, x0 []float64, s Settings) (Result, error) {
	dim := len(x0)
	x := append([]float64(nil), x0...)
	fx := make([]float64, dim)
	f(fx, x)
	norm := maxNorm(fx)

	jac := mat.NewDense(dim, dim, nil)
	trial := make([]float64, dim)
	ftrial := make([]float64, dim)

	for iter := 0; ; iter++ {
		if norm <= s.Tolerance {
			return Result{X: x, Residual: norm, Iterations: iter}, nil
		}
		if iter == s.MaxIterations {
			return Result{X: x, Residual: norm, Iterations: iter},
				fmt.Errorf("%w: residual %.3g after %d iterations", ErrNoConvergence, norm, iter)
		}

		fd.Jacobian(jac, f, x, &fd.JacobianSettings{Formula: fd.Central})
		var step mat.VecDense
		if err := step.SolveVec(jac, mat.NewVecDense(dim, append([]float64(nil), fx...))); err != nil {
			return Result{X: x, Residual: norm, Iterations: iter},
				fmt.Errorf("%w: jacobian at %v: %v", ErrNoConvergence, x, err)
		}

		accepted := false
		for t, h := 1.0, 0; h < maxHalvings; t, h = t/2, h+1 {
			for k := range trial {
				trial[k] = x[k] - t*step.AtVec(k)
			}
			f(ftrial, trial)
			if n := maxNorm(ftrial); n < norm {
				copy(x, trial)
				copy(fx, ftrial)
				norm = n
				accepted = true
				break
			}
		}
		if !accepted {
			return Result{X: x, Residual: norm, Iterations: iter + 1},
				fmt.Errorf("%w: no step reduces residual %.3g at %v", ErrNoConvergence, norm, x)
		}
	}
}

// Recover is a last resort when Newton fails from x0: it minimizes
// 1/2 ||f(x)||^2 with Nelder-Mead, then polishes the minimizer with Newton.
func Recover(f System, x0 []float64, s Settings) (Result, error) {
	buf := make([]float64, len(x0))
	p := optimize.Problem{
		Func: func(x []float64) float64 {
			f(buf, x)
			v := 0.5 * floats.Dot(buf, buf)
			if !isFinite(v) {
				return math.Inf(1)
			}
			return v
		},
	}
	settings := &optimize.Settings{
		FuncEvaluations: 20000,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-24,
			Iterations: 200,
		},
	}

	res, err := optimize.Minimize(p, x0, settings, &optimize.NelderMead{})
	if res == nil {
		return Result{X: x0}, fmt.Errorf("%w: nelder-mead: %v", ErrNoConvergence, err)
	}
	return Newton(f, res.X, s)
}

func maxNorm(v []float64) float64 {
	for _, x := range v {
		if !isFinite(x) {
			return math.Inf(1)
		}
	}
	return floats.Norm(v, math.Inf(1))
}
