// Package termstructure holds the observed term structure a short-rate
// lattice is calibrated to: yields, zero-coupon bond prices and yield
// volatilities indexed by maturity in years.
package termstructure

import (
	"fmt"
	"math"
)

// Row is one observed maturity of the term structure.
// YieldVol is nil for maturity 1, where no volatility is observed.
type Row struct {
	Maturity  int      `yaml:"maturity" validate:"gte=1"`
	Yield     float64  `yaml:"yield" validate:"finite,gt=0,lt=1"`
	BondPrice float64  `yaml:"bond_price" validate:"finite,gt=0,lte=1"`
	YieldVol  *float64 `yaml:"yield_vol,omitempty" validate:"omitempty,finite,gt=0"`
}

// Table is a term structure ordered by maturity, starting at 1.
type Table []Row

// New builds a Table from parallel columns. A NaN volatility is read as
// "not observed", which is how the maturity-1 entry is usually given.
func New(yields, prices, vols []float64) (Table, error) {
	if len(yields) != len(prices) || len(yields) != len(vols) {
		return nil, fmt.Errorf("%w: column lengths differ (yields %d, prices %d, vols %d)",
			ErrInvalidInput, len(yields), len(prices), len(vols))
	}

	t := make(Table, len(yields))
	for k := range yields {
		t[k] = Row{Maturity: k + 1, Yield: yields[k], BondPrice: prices[k]}
		if !math.IsNaN(vols[k]) {
			v := vols[k]
			t[k].YieldVol = &v
		}
	}
	return t, nil
}

// Len returns N, the number of observed maturities.
func (t Table) Len() int { return len(t) }

// Yield returns the observed yield for a maturity.
func (t Table) Yield(maturity int) float64 { return t[maturity-1].Yield }

// Vol returns the observed yield volatility for a maturity, NaN when absent.
func (t Table) Vol(maturity int) float64 {
	v := t[maturity-1].YieldVol
	if v == nil {
		return math.NaN()
	}
	return *v
}

// DiscountFactor is the time-zero price of the zero-coupon bond paying 1
// at the given maturity, implied by its yield: (1+y)^-m.
func (t Table) DiscountFactor(maturity int) float64 {
	return math.Pow(1+t.Yield(maturity), -float64(maturity))
}

// BondPrices returns DiscountFactor for every maturity 1..N.
func (t Table) BondPrices() []float64 {
	prices := make([]float64, len(t))
	for k := range t {
		prices[k] = t.DiscountFactor(k + 1)
	}
	return prices
}
