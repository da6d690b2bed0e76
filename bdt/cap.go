package bdt

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// PriceCap prices a cap with the given strike over periods 1..periods. The
// caplet for period i pays max(0, r - strike) at time i, r being the short
// rate set at time i-1.
//
// Each caplet is valued by enumerating every root-to-leaf path of i moves,
// discounting along the path and weighting by the path probability. Depth i
// costs 2^i paths, which is fine for the ten or so maturities a term
// structure carries; PriceCapBackward gives the same price in O(N^2).
func (m *Model) PriceCap(strike float64, periods int) (float64, error) {
	if err := m.checkCap(strike, periods); err != nil {
		return 0, err
	}

	var total float64
	for i := 1; i <= periods; i++ {
		var values, probs []float64
		// only head counts 0..i are reachable in i moves
		for leaf := 0; leaf <= i; leaf++ {
			for _, moves := range enumeratePaths(i, 0, leaf) {
				value, prob := m.caplet(moves, strike)
				values = append(values, value)
				probs = append(probs, prob)
			}
		}
		total += floats.Dot(probs, values)
	}
	return total, nil
}

// caplet walks one path of moves (1 up, 0 down) and returns the discounted
// payoff of the caplet settled at its end and the probability of the path.
// The payoff is fixed by the rate of the path's last period.
func (m *Model) caplet(moves []int, strike float64) (float64, float64) {
	discount, prob := 1.0, 1.0
	node, rate := 0, 0.0
	for t, up := range moves {
		rate = m.lat.Rate(t, node)
		discount *= 1 + rate

		p := m.lat.UpProb(t, node)
		if up == 1 {
			prob *= p
			node++
		} else {
			prob *= 1 - p
		}
	}
	return math.Max(0, rate-strike) / discount, prob
}

// enumeratePaths returns every sequence of depth moves that ends with
// exactly target up-moves, given heads up-moves so far. It splits on one
// more down-move and one more up-move until depth is exhausted.
func enumeratePaths(depth, heads, target int) [][]int {
	if depth == 0 {
		if heads == target {
			return [][]int{{}}
		}
		return nil
	}

	var paths [][]int
	for _, tail := range enumeratePaths(depth-1, heads, target) {
		paths = append(paths, append([]int{0}, tail...))
	}
	for _, tail := range enumeratePaths(depth-1, heads+1, target) {
		paths = append(paths, append([]int{1}, tail...))
	}
	return paths
}

// PriceCapBackward prices the same cap as PriceCap by rolling caplet
// payoffs back through the lattice one period at a time.
func (m *Model) PriceCapBackward(strike float64, periods int) (float64, error) {
	if err := m.checkCap(strike, periods); err != nil {
		return 0, err
	}

	value := make([]float64, periods+1)
	for t := periods - 1; t >= 0; t-- {
		prev := make([]float64, t+1)
		for k := range prev {
			r := m.lat.Rate(t, k)
			p := m.lat.UpProb(t, k)
			cont := p*value[k+1] + (1-p)*value[k]
			prev[k] = (math.Max(0, r-strike) + cont) / (1 + r)
		}
		value = prev
	}
	return value[0], nil
}

func (m *Model) checkCap(strike float64, periods int) error {
	if math.IsNaN(strike) || math.IsInf(strike, 0) {
		return fmt.Errorf("%w: strike %v", ErrInvalidArgument, strike)
	}
	if periods < 1 || periods > m.Size() {
		return fmt.Errorf("%w: cap periods %d, need 1 <= periods <= %d", ErrInvalidArgument, periods, m.Size())
	}
	return nil
}
