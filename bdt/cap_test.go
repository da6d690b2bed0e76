package bdt_test

import (
	"math"
	"testing"

	"bdtlattice/bdt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceCap_Reference(t *testing.T) {
	m := calibrateReference(t)

	c, err := m.PriceCap(0.12, 4)
	require.NoError(t, err)
	assert.InDelta(t, 0.03909, c, 1e-4)

	back, err := m.PriceCapBackward(0.12, 4)
	require.NoError(t, err)
	assert.InDelta(t, c, back, 1e-12)
}

func TestPriceCap_Monotone(t *testing.T) {
	m := calibrateReference(t)

	prev := math.Inf(1)
	for _, k := range []float64{0.0, 0.08, 0.10, 0.12, 0.15, 0.20} {
		c, err := m.PriceCap(k, 4)
		require.NoError(t, err)
		assert.LessOrEqual(t, c, prev, "cap must not rise with strike %v", k)
		prev = c
	}

	c, err := m.PriceCap(0.5, 4)
	require.NoError(t, err)
	assert.Equal(t, 0.0, c, "strike above every rate")
}

// With a zero strike every caplet pays the short rate, and the cap is
// worth 1 - B(N): the floating leg of a par loan.
func TestPriceCap_ZeroStrike(t *testing.T) {
	m := calibrateReference(t)

	for periods := 1; periods <= 4; periods++ {
		c, err := m.PriceCap(0, periods)
		require.NoError(t, err)
		b, err := m.ZeroPrice(periods)
		require.NoError(t, err)
		assert.InDelta(t, 1-b, c, 1e-12, "periods %d", periods)
	}
}

func TestPriceCap_InvalidArguments(t *testing.T) {
	m := calibrateReference(t)

	for _, periods := range []int{0, 5, -1} {
		_, err := m.PriceCap(0.12, periods)
		assert.ErrorIs(t, err, bdt.ErrInvalidArgument, "periods %d", periods)
		_, err = m.PriceCapBackward(0.12, periods)
		assert.ErrorIs(t, err, bdt.ErrInvalidArgument, "periods %d", periods)
	}
	_, err := m.PriceCap(math.NaN(), 4)
	assert.ErrorIs(t, err, bdt.ErrInvalidArgument)
}
