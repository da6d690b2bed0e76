package bdt

import (
	"fmt"
	"math"

	"bdtlattice/lattice"
	"bdtlattice/termstructure"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Model is a calibrated BDT lattice. It is read-only once Calibrate returns.
type Model struct {
	ts         termstructure.Table
	lat        *lattice.Lattice
	rateVols   []float64
	bondPrices []float64
	iterations []int
}

// Size returns N, the number of calibrated time steps.
func (m *Model) Size() int { return m.lat.Size() }

// Rate returns the short rate R[n][j] at node (n, j).
func (m *Model) Rate(n, j int) (float64, error) {
	if err := m.checkNode(n, j); err != nil {
		return 0, err
	}
	return m.lat.Rate(n, j), nil
}

// Rates returns the square N x N short-rate grid; cells with j > n are zero.
func (m *Model) Rates() [][]float64 {
	size := m.Size()
	grid := m.lat.Rates()
	out := make([][]float64, size)
	for n := range out {
		out[n] = mat.Row(nil, n, grid)
	}
	return out
}

// RateGrid returns a copy of the short-rate grid as a matrix.
func (m *Model) RateGrid() *mat.Dense { return m.lat.Rates() }

// UpProb returns the risk-neutral up-move probability at node (n, j).
func (m *Model) UpProb(n, j int) (float64, error) {
	if err := m.checkNode(n, j); err != nil {
		return 0, err
	}
	return m.lat.UpProb(n, j), nil
}

// RateVolatility returns the calibrated rate volatility of step n, which is
// half the log of the node multiplier. Step 0 has a single node and none.
func (m *Model) RateVolatility(n int) (float64, error) {
	if n < 1 || n >= m.Size() {
		return 0, fmt.Errorf("%w: rate volatility step %d, need 1 <= n < %d", lattice.ErrIndexOutOfRange, n, m.Size())
	}
	return m.rateVols[n], nil
}

// RateVolatilities returns the rate volatility of every step, NaN for step 0.
func (m *Model) RateVolatilities() []float64 {
	return append([]float64(nil), m.rateVols...)
}

// Iterations returns the Newton iterations spent on each step; the first
// step is solved by a bracketed scan and reports 0.
func (m *Model) Iterations() []int {
	return append([]int(nil), m.iterations...)
}

// BondPrices returns the time-zero zero-coupon bond prices recorded during
// calibration, index k holding maturity k+1.
func (m *Model) BondPrices() []float64 {
	return append([]float64(nil), m.bondPrices...)
}

// ZeroPrice returns the lattice price of the zero-coupon bond maturing at
// maturity, the sum of the root's Arrow-Debreu prices at that time.
func (m *Model) ZeroPrice(maturity int) (float64, error) {
	if err := m.checkMaturity(maturity, 1); err != nil {
		return 0, err
	}
	return floats.Sum(m.lat.Row(0, 0, maturity)), nil
}

// ForwardRate returns the simple forward rate between maturities from and
// to, implied by the recorded time-zero bond prices.
func (m *Model) ForwardRate(from, to int) (float64, error) {
	f, err := termstructure.ForwardRate(m.bondPrices, from, to)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return f, nil
}

// TimeOneYields returns the yields, seen from the down (node 0) and up
// (node 1) states at time 1, of the bond maturing at maturity.
func (m *Model) TimeOneYields(maturity int) (down, up float64, err error) {
	if err := m.checkMaturity(maturity, 2); err != nil {
		return 0, 0, err
	}
	horizon := float64(maturity - 1)
	down = pow(floats.Sum(m.lat.Row(1, 0, maturity)), -1/horizon) - 1
	up = pow(floats.Sum(m.lat.Row(1, 1, maturity)), -1/horizon) - 1
	return down, up, nil
}

// YieldTree returns the time-1 yields of every bond: row 0 for the down
// node, row 1 for the up node, column k for maturity k+1. Maturity 1 has
// matured by time 1 and holds NaN.
func (m *Model) YieldTree() [2][]float64 {
	size := m.Size()
	tree := [2][]float64{make([]float64, size), make([]float64, size)}
	tree[0][0], tree[1][0] = math.NaN(), math.NaN()
	for maturity := 2; maturity <= size; maturity++ {
		tree[0][maturity-1], tree[1][maturity-1], _ = m.TimeOneYields(maturity)
	}
	return tree
}

// YieldVolatility returns the one-year yield volatility the lattice implies
// for the bond maturing at maturity, 1/2 ln(Yup/Ydown). A calibrated model
// reproduces the observed volatility.
func (m *Model) YieldVolatility(maturity int) (float64, error) {
	down, up, err := m.TimeOneYields(maturity)
	if err != nil {
		return 0, err
	}
	return 0.5 * ln(up/down), nil
}

// NodeProbabilities returns the risk-neutral probability of reaching each
// node (n, 0..n) from the root.
func (m *Model) NodeProbabilities(n int) ([]float64, error) {
	if err := m.checkNode(n, 0); err != nil {
		return nil, err
	}

	q := []float64{1}
	for t := 0; t < n; t++ {
		next := make([]float64, t+2)
		for k, v := range q {
			p := m.lat.UpProb(t, k)
			next[k] += v * (1 - p)
			next[k+1] += v * p
		}
		q = next
	}
	return q, nil
}

// ExpectedShortRate returns the risk-neutral mean of the short rate over
// period n.
func (m *Model) ExpectedShortRate(n int) (float64, error) {
	q, err := m.NodeProbabilities(n)
	if err != nil {
		return 0, err
	}
	rates := make([]float64, n+1)
	for j := range rates {
		rates[j] = m.lat.Rate(n, j)
	}
	return stat.Mean(rates, q), nil
}

func (m *Model) checkNode(n, j int) error {
	if n < 0 || n >= m.Size() || j < 0 || j > n {
		return fmt.Errorf("%w: node (%d, %d), need 0 <= j <= n < %d", lattice.ErrIndexOutOfRange, n, j, m.Size())
	}
	return nil
}

func (m *Model) checkMaturity(maturity, first int) error {
	if maturity < first || maturity > m.Size() {
		return fmt.Errorf("%w: maturity %d, need %d <= maturity <= %d", ErrInvalidArgument, maturity, first, m.Size())
	}
	return nil
}
