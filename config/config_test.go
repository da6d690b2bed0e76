package config_test

import (
	"log/slog"
	"testing"

	"bdtlattice/config"
	"bdtlattice/termstructure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, termstructure.Reference(), cfg.TermStructure)
	assert.Equal(t, 0.12, cfg.Cap.Strike)
	assert.Equal(t, slog.LevelInfo, cfg.Level())

	opts := cfg.Options(nil)
	assert.Equal(t, 0.08, opts.InitialRate)
	assert.Equal(t, 0.01, opts.InitialVol)
	assert.Equal(t, 1.0, opts.RateCeiling)
	assert.Equal(t, 1000, opts.ScanSteps)
	assert.Equal(t, 20, opts.CeilingDoublings)
	assert.False(t, opts.Recover)
}

func TestLoad_File(t *testing.T) {
	cfg, err := config.Load("testdata/reference.yaml")
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, 50, cfg.Solver.MaxIterations)
	assert.Equal(t, 0.5, cfg.Solver.UpProbability, "unset keys keep their defaults")
	assert.Equal(t, 20, cfg.Solver.CeilingDoublings, "unset keys keep their defaults")

	opts := cfg.Options(nil)
	assert.Equal(t, 2.0, opts.RateCeiling)
	assert.Equal(t, 400, opts.ScanSteps)
	assert.Equal(t, 1e6, cfg.Cap.Notional)
	require.Equal(t, 4, cfg.TermStructure.Len())
	assert.Equal(t, 0.14, cfg.TermStructure.Vol(4))
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BDT_LOG_LEVEL", "error")
	t.Setenv("BDT_CAP_STRIKE", "0.1")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelError, cfg.Level())
	assert.Equal(t, 0.1, cfg.Cap.Strike)

	t.Setenv("BDT_CAP_STRIKE", "twelve")
	_, err = config.Load("")
	assert.Error(t, err)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load("testdata/does_not_exist.yaml")
	assert.Error(t, err)

	_, err = config.Load("testdata/missing_vol.yaml")
	assert.ErrorIs(t, err, termstructure.ErrInvalidInput)
}
