package termstructure_test

import (
	"math"
	"strings"
	"testing"

	"bdtlattice/termstructure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReference_IsValid(t *testing.T) {
	ts := termstructure.Reference()
	require.NoError(t, ts.Validate())
	assert.Equal(t, 4, ts.Len())
	assert.True(t, math.IsNaN(ts.Vol(1)), "maturity 1 carries no volatility")
	assert.Equal(t, 0.14, ts.Vol(4))
}

func TestNew_ColumnMismatch(t *testing.T) {
	_, err := termstructure.New([]float64{0.1}, []float64{0.9, 0.8}, []float64{math.NaN()})
	assert.ErrorIs(t, err, termstructure.ErrInvalidInput)
}

// TestValidate_Rejects walks the malformed rows that must fail before any
// lattice work begins.
func TestValidate_Rejects(t *testing.T) {
	vol := 0.1
	nan := math.NaN()
	cases := []struct {
		name string
		ts   termstructure.Table
	}{
		{"empty", termstructure.Table{}},
		{"missing yield", termstructure.Table{{Maturity: 1, BondPrice: 0.9}}},
		{"yield above one", termstructure.Table{{Maturity: 1, Yield: 1.2, BondPrice: 0.9}}},
		{"non-positive price", termstructure.Table{{Maturity: 1, Yield: 0.1, BondPrice: 0}}},
		{"price above one", termstructure.Table{{Maturity: 1, Yield: 0.1, BondPrice: 1.01}}},
		{"NaN yield", termstructure.Table{{Maturity: 1, Yield: nan, BondPrice: 0.9}}},
		{"NaN volatility", termstructure.Table{
			{Maturity: 1, Yield: 0.1, BondPrice: 0.9},
			{Maturity: 2, Yield: 0.1, BondPrice: 0.8, YieldVol: &nan},
		}},
		{"missing volatility", termstructure.Table{
			{Maturity: 1, Yield: 0.1, BondPrice: 0.9},
			{Maturity: 2, Yield: 0.1, BondPrice: 0.8},
		}},
		{"gap in maturities", termstructure.Table{
			{Maturity: 1, Yield: 0.1, BondPrice: 0.9},
			{Maturity: 3, Yield: 0.1, BondPrice: 0.8, YieldVol: &vol},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.ts.Validate(), termstructure.ErrInvalidInput)
		})
	}
}

func TestDecode(t *testing.T) {
	doc := `
- maturity: 1
  yield: 0.10
  bond_price: 0.9091
- maturity: 2
  yield: 0.11
  bond_price: 0.8116
  yield_vol: 0.10
`
	ts, err := termstructure.Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, 2, ts.Len())
	assert.Nil(t, ts[0].YieldVol)
	assert.Equal(t, 0.10, ts.Vol(2))
	assert.InDelta(t, 0.8116, ts.DiscountFactor(2), 1e-4)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := termstructure.Decode(strings.NewReader("- maturity: 1\n  yield: 0.1\n"))
	assert.ErrorIs(t, err, termstructure.ErrInvalidInput, "bond price is required")

	_, err = termstructure.Decode(strings.NewReader("not: [a, sequence"))
	assert.ErrorIs(t, err, termstructure.ErrInvalidInput)
}

func TestForwardRate(t *testing.T) {
	prices := termstructure.Reference().BondPrices()

	f, err := termstructure.ForwardRate(prices, 3, 4)
	require.NoError(t, err)
	assert.InDelta(t, 0.140134, f, 1e-5)

	// From time zero the forward rate is the one-period spot rate.
	f, err = termstructure.ForwardRate(prices, 0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.10, f, 1e-12)

	for _, bad := range [][2]int{{-1, 2}, {2, 2}, {3, 1}, {0, 5}} {
		_, err = termstructure.ForwardRate(prices, bad[0], bad[1])
		assert.ErrorIs(t, err, termstructure.ErrInvalidInput, "from=%d to=%d", bad[0], bad[1])
	}
}
