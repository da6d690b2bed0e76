package lattice

import "fmt"

// PriceOneStep computes and stores AD[n-1,i,n,j] by martingale pricing over
// the single period n-1 -> n. Row n-1 of R must be populated.
//
//	i == j-1  up-move:    P[n-1][j-1] / (1 + R[n-1][j-1])
//	i == j    down-move:  (1 - P[n-1][j]) / (1 + R[n-1][j])
//	otherwise unreachable: 0
func (l *Lattice) PriceOneStep(i, n, j int) {
	if n < 1 || n > l.size || i < 0 || i > n-1 || j < 0 || j > n {
		outOfRange("PriceOneStep", fmt.Sprintf("need 0 <= i < n <= %d and 0 <= j <= n", l.size), i, n, j)
	}

	var v float64
	switch i {
	case j - 1:
		v = l.UpProb(n-1, j-1) / (1 + l.Rate(n-1, j-1))
	case j:
		v = (1 - l.UpProb(n-1, j)) / (1 + l.Rate(n-1, j))
	}
	l.setAD(n-1, i, n, j, v)
}

// ForwardInduct computes and stores AD[n,i,m,j] for m > n by chaining the
// row AD[n,i,m-1,*] through one more period: the price of reaching (m, j) is
// the discounted, probability-weighted sum over its parents (m-1, j) and
// (m-1, j-1). Row m-1 of R and AD[n,i,m-1,*] must be populated.
func (l *Lattice) ForwardInduct(n, i, m, j int) {
	if m <= n || m > l.size || j < 0 || j > m {
		outOfRange("ForwardInduct", fmt.Sprintf("need n < m <= %d and 0 <= j <= m", l.size), n, i, m, j)
	}

	var v float64
	if j < m {
		// reached by a down-move from (m-1, j)
		v += l.AD(n, i, m-1, j) * (1 - l.UpProb(m-1, j)) / (1 + l.Rate(m-1, j))
	}
	if j > 0 {
		// reached by an up-move from (m-1, j-1)
		v += l.AD(n, i, m-1, j-1) * l.UpProb(m-1, j-1) / (1 + l.Rate(m-1, j-1))
	}
	l.setAD(n, i, m, j, v)
}

// InductRow fills AD[n,i,m,0..m]. A single-period row uses the martingale
// pricer; longer horizons chain from the already populated row m-1.
func (l *Lattice) InductRow(n, i, m int) {
	for j := 0; j <= m; j++ {
		if m == n+1 {
			l.PriceOneStep(i, m, j)
		} else {
			l.ForwardInduct(n, i, m, j)
		}
	}
}
