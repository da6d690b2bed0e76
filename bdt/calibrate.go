package bdt

import (
	"fmt"
	"log/slog"
	"math"

	"bdtlattice/lattice"
	"bdtlattice/rootfind"
	"bdtlattice/termstructure"
)

// scanIterations caps the bracketed refinement of the first-step rate. The
// bracket halves at worst, so this is never the binding limit.
const scanIterations = 200

// calibrator carries the state of one calibration run.
type calibrator struct {
	ts       termstructure.Table
	lat      *lattice.Lattice
	opts     *Options
	settings rootfind.Settings
	log      *slog.Logger
}

// Calibrate fits a BDT lattice to ts. The table is validated before any
// lattice work; a failed step aborts the whole calibration with a
// *CalibrationError. A nil opts uses DefaultOptions.
func Calibrate(ts termstructure.Table, opts *Options) (*Model, error) {
	if opts == nil {
		d := DefaultOptions()
		opts = &d
	}
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	// Size the lattice and seed row 0 with the one-year yield
	size := ts.Len()
	lat, err := lattice.New(size, ts.Yield(1), opts.UpProbability)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	c := &calibrator{
		ts:       ts,
		lat:      lat,
		opts:     opts,
		settings: rootfind.Settings{Tolerance: opts.Tolerance, MaxIterations: opts.MaxIterations},
		log:      opts.logger(),
	}

	model := &Model{
		ts:         ts,
		lat:        lat,
		rateVols:   make([]float64, size),
		bondPrices: []float64{ts.DiscountFactor(1)},
		iterations: make([]int, size),
	}
	model.rateVols[0] = math.NaN()

	for n := 1; n < size; n++ {
		r, sigma, iters, err := c.step(n)
		if err != nil {
			return nil, &CalibrationError{Step: n, Maturity: n + 1, Err: err}
		}

		// BDT structural condition: rates rise geometrically across nodes
		mu := exp(2 * sigma)
		row := make([]float64, n+1)
		for j := range row {
			row[j] = r * pow(mu, float64(j))
		}
		lat.SetRow(n, row)

		model.rateVols[n] = 0.5 * ln(mu)
		model.bondPrices = append(model.bondPrices, ts.DiscountFactor(n+1))
		model.iterations[n] = iters

		c.log.Debug("BDT step calibrated",
			slog.Int("step", n),
			slog.Int("maturity", n+1),
			slog.Float64("rate", r),
			slog.Float64("rate_vol", model.rateVols[n]),
			slog.Int("iterations", iters))
	}

	c.finish()

	c.log.Debug("BDT calibration complete",
		slog.Int("maturities", size),
		slog.Float64("top_rate", lat.Rate(size-1, size-1)))

	return model, nil
}

// step solves for the node-0 rate and rate volatility of row n.
func (c *calibrator) step(n int) (float64, float64, int, error) {
	// Arrow-Debreu prices from the root to time n, chained from row n-1
	c.lat.InductRow(0, 0, n)
	fromRoot := c.lat.Row(0, 0, n)
	target := c.ts.DiscountFactor(n + 1)

	if n == 1 {
		sigma := c.ts.Vol(2)
		mu := exp(2 * sigma)
		bond := func(r float64) float64 { return bondPrice(fromRoot, r, mu) - target }

		scan := rootfind.Settings{Tolerance: c.opts.Tolerance, MaxIterations: scanIterations}
		r, err := rootfind.ExpandingPositiveRoot(bond, c.opts.RateCeiling, c.opts.ScanSteps, c.opts.CeilingDoublings, scan)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("%w: %w", ErrRootNotFound, err)
		}
		return r, sigma, 0, nil
	}

	// Arrow-Debreu prices from both time-1 nodes to time n
	var fromOne [2][]float64
	for i := range fromOne {
		c.lat.InductRow(1, i, n)
		fromOne[i] = c.lat.Row(1, i, n)
	}
	volRatio := exp(2 * c.ts.Vol(n+1))
	horizon := float64(n)

	equations := func(dst, x []float64) {
		r, mu := x[0], exp(2*x[1])
		dst[0] = bondPrice(fromRoot, r, mu) - target

		down := pow(bondPrice(fromOne[0], r, mu), -1/horizon) - 1
		up := pow(bondPrice(fromOne[1], r, mu), -1/horizon) - 1
		dst[1] = up - down*volRatio
	}

	guess := []float64{c.opts.InitialRate, c.opts.InitialVol}
	res, err := rootfind.Newton(equations, guess, c.settings)
	if err != nil && c.opts.Recover {
		c.log.Warn("BDT newton solve failed, trying recovery",
			slog.Int("step", n),
			slog.String("error", err.Error()))
		res, err = rootfind.Recover(equations, guess, c.settings)
	}
	if err != nil {
		return 0, 0, res.Iterations, fmt.Errorf("%w: %w", ErrCalibrationDivergence, err)
	}
	if !(res.X[0] > 0) {
		return 0, 0, res.Iterations, fmt.Errorf("%w: solved rate %v is not positive", ErrCalibrationDivergence, res.X[0])
	}
	return res.X[0], res.X[1], res.Iterations, nil
}

// finish extends the Arrow-Debreu rows one period past the last rate row so
// the longest maturity can be priced from the root and from time 1.
func (c *calibrator) finish() {
	last := c.lat.Size()
	c.lat.InductRow(0, 0, last)
	if last < 2 {
		return
	}
	for i := 0; i <= 1; i++ {
		c.lat.InductRow(1, i, last)
	}
}

// bondPrice prices a bond paying 1 one period after the terminal nodes of
// ad, where node j carries the rate r*mu^j.
func bondPrice(ad []float64, r, mu float64) float64 {
	var p float64
	for j, v := range ad {
		p += v / (1 + r*pow(mu, float64(j)))
	}
	return p
}

// local function aliases
var (
	exp = math.Exp
	pow = math.Pow
	ln  = math.Log
)
