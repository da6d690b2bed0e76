package lattice

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Lattice is the single mutable state of a calibration. It is not safe for
// concurrent use.
type Lattice struct {
	size   int
	rates  *mat.Dense
	probs  *mat.Dense
	filled int

	// Arrow-Debreu prices are sparse: only a few (n, i) origins are ever used.
	ad map[adKey]float64
}

type adKey struct{ n, i, m, j int }

// New allocates a lattice for size observed maturities. Row 0 of R is set to
// firstRate and every up-probability to upProb.
func New(size int, firstRate, upProb float64) (*Lattice, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: size %d, need at least 1", ErrInvalidParameter, size)
	}
	if !(upProb > 0 && upProb < 1) {
		return nil, fmt.Errorf("%w: up-probability %v outside (0, 1)", ErrInvalidParameter, upProb)
	}

	l := &Lattice{
		size:  size,
		rates: mat.NewDense(size, size, nil),
		probs: mat.NewDense(size, size, nil),
		ad:    make(map[adKey]float64),
	}
	for n := 0; n < size; n++ {
		for j := 0; j <= n; j++ {
			l.probs.Set(n, j, upProb)
		}
	}
	l.rates.Set(0, 0, firstRate)
	l.filled = 1

	return l, nil
}

// Size returns N, the number of rate rows.
func (l *Lattice) Size() int { return l.size }

// Filled returns how many rows of R have been written.
func (l *Lattice) Filled() int { return l.filled }

// Rate returns R[n][j].
func (l *Lattice) Rate(n, j int) float64 {
	if n < 0 || n >= l.filled || j < 0 || j > n {
		outOfRange("R", fmt.Sprintf("need 0 <= j <= n < %d (filled rows)", l.filled), n, j)
	}
	return l.rates.At(n, j)
}

// SetRow writes row n of R. Rows must be written in order, so n must equal
// Filled(), and rates must hold n+1 values.
func (l *Lattice) SetRow(n int, rates []float64) {
	if n != l.filled || n >= l.size {
		outOfRange("SetRow", fmt.Sprintf("next writable row is %d of %d", l.filled, l.size), n)
	}
	if len(rates) != n+1 {
		outOfRange("SetRow", fmt.Sprintf("row needs %d rates, got %d", n+1, len(rates)), n)
	}
	for j, r := range rates {
		l.rates.Set(n, j, r)
	}
	l.filled++
}

// UpProb returns P[n][j].
func (l *Lattice) UpProb(n, j int) float64 {
	if n < 0 || n >= l.size || j < 0 || j > n {
		outOfRange("P", fmt.Sprintf("need 0 <= j <= n < %d", l.size), n, j)
	}
	return l.probs.At(n, j)
}

// AD returns the time-n, node-i price of a claim paying 1 at node (m, j).
// AD[n,i,n,j] is 1 when i == j and 0 otherwise.
func (l *Lattice) AD(n, i, m, j int) float64 {
	if n < 0 || i < 0 || i > n || m < n || m > l.size || j < 0 || j > m {
		outOfRange("AD", fmt.Sprintf("need 0 <= i <= n <= m <= %d and 0 <= j <= m", l.size), n, i, m, j)
	}
	if m == n {
		if i == j {
			return 1
		}
		return 0
	}

	v, ok := l.ad[adKey{n, i, m, j}]
	if !ok {
		outOfRange("AD", "not populated", n, i, m, j)
	}
	return v
}

// Row returns AD[n,i,m,0..m].
func (l *Lattice) Row(n, i, m int) []float64 {
	row := make([]float64, m+1)
	for j := range row {
		row[j] = l.AD(n, i, m, j)
	}
	return row
}

// Rates returns a copy of the populated short-rate grid. Cells above the
// diagonal and rows not yet calibrated are zero.
func (l *Lattice) Rates() *mat.Dense {
	return mat.DenseCopyOf(l.rates)
}

func (l *Lattice) setAD(n, i, m, j int, v float64) {
	l.ad[adKey{n, i, m, j}] = v
}
