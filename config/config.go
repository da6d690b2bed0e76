// Package config loads the run configuration of the bdtlattice command:
// the term structure to fit, solver settings, the cap to price and the log
// level.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"bdtlattice/bdt"
	"bdtlattice/termstructure"

	"gopkg.in/yaml.v3"
)

// SolverConfig mirrors bdt.Options.
type SolverConfig struct {
	InitialRate      float64 `yaml:"initial_rate"`
	InitialVol       float64 `yaml:"initial_vol"`
	Tolerance        float64 `yaml:"tolerance"`
	MaxIterations    int     `yaml:"max_iterations"`
	RateCeiling      float64 `yaml:"rate_ceiling"`
	ScanSteps        int     `yaml:"scan_steps"`
	CeilingDoublings int     `yaml:"ceiling_doublings"`
	UpProbability    float64 `yaml:"up_probability"`
	Recover          bool    `yaml:"recover"`
}

// CapConfig describes the cap priced by the cap command.
type CapConfig struct {
	Strike   float64 `yaml:"strike"`
	Periods  int     `yaml:"periods"` // 0 prices over every maturity
	Notional float64 `yaml:"notional"`
}

// Config is the whole run configuration.
type Config struct {
	LogLevel      string              `yaml:"log_level"`
	Solver        SolverConfig        `yaml:"solver"`
	Cap           CapConfig           `yaml:"cap"`
	TermStructure termstructure.Table `yaml:"term_structure"`
}

// Default returns the textbook term structure with a 12% cap on a notional
// of 1.
func Default() *Config {
	opts := bdt.DefaultOptions()
	return &Config{
		LogLevel: "info",
		Solver: SolverConfig{
			InitialRate:      opts.InitialRate,
			InitialVol:       opts.InitialVol,
			Tolerance:        opts.Tolerance,
			MaxIterations:    opts.MaxIterations,
			RateCeiling:      opts.RateCeiling,
			ScanSteps:        opts.ScanSteps,
			CeilingDoublings: opts.CeilingDoublings,
			UpProbability:    opts.UpProbability,
		},
		Cap:           CapConfig{Strike: 0.12, Notional: 1},
		TermStructure: termstructure.Reference(),
	}
}

// Load reads the YAML file at path over the defaults, then applies the
// BDT_LOG_LEVEL and BDT_CAP_STRIKE environment overrides. An empty path
// keeps the defaults. The term structure is validated before returning.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		// a file that names its own term structure replaces the default one
		cfg.TermStructure = nil
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.LogLevel = getEnv("BDT_LOG_LEVEL", cfg.LogLevel)
	strike, err := getEnvFloat("BDT_CAP_STRIKE", cfg.Cap.Strike)
	if err != nil {
		return nil, err
	}
	cfg.Cap.Strike = strike

	if err := cfg.TermStructure.Validate(); err != nil {
		return nil, fmt.Errorf("config: term_structure: %w", err)
	}
	return cfg, nil
}

// Options converts the solver settings into calibration options.
func (c *Config) Options(logger *slog.Logger) bdt.Options {
	opts := bdt.DefaultOptions()
	opts.InitialRate = c.Solver.InitialRate
	opts.InitialVol = c.Solver.InitialVol
	opts.Tolerance = c.Solver.Tolerance
	opts.MaxIterations = c.Solver.MaxIterations
	opts.RateCeiling = c.Solver.RateCeiling
	opts.ScanSteps = c.Solver.ScanSteps
	opts.CeilingDoublings = c.Solver.CeilingDoublings
	opts.UpProbability = c.Solver.UpProbability
	opts.Recover = c.Solver.Recover
	opts.Logger = logger
	return opts
}

// Level parses LogLevel; unknown names fall back to info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q: %w", key, v, err)
	}
	return f, nil
}
