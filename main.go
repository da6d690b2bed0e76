// Package main runs the Black-Derman-Toy short-rate lattice: it calibrates
// the lattice to a term structure and prices caps and forward rates off it.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"bdtlattice/bdt"
	"bdtlattice/config"

	"github.com/leekchan/accounting"
	"github.com/spf13/cobra"
)

// app holds the state shared by the commands of one invocation.
type app struct {
	configPath string
	logLevel   string

	cfg   *config.Config
	model *bdt.Model
}

// newRootCmd builds a fresh command tree, so flag values never carry over
// from one execution to the next.
func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "bdtlattice",
		Short: "Calibrate a Black-Derman-Toy lattice and price off it",
		Long: `bdtlattice fits a binomial short-rate lattice to observed zero-coupon
yields and yield volatilities, then prices interest-rate caps and forward
rates on the fitted lattice. Without --config the textbook four-year term
structure is used.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.calibrate,
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML run configuration (default: textbook term structure)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (overrides the config)")

	calibrateCmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Print the calibrated short-rate lattice",
		RunE:  a.runCalibrate,
	}
	rootCmd.AddCommand(calibrateCmd)

	capCmd := &cobra.Command{
		Use:   "cap",
		Short: "Price a cap on the calibrated lattice",
		RunE:  a.runCap,
	}
	capCmd.Flags().Float64("strike", 0, "Cap strike rate (default from config)")
	capCmd.Flags().Int("periods", 0, "Number of caplets (default: every maturity)")
	capCmd.Flags().Float64("notional", 0, "Notional the cap is written on (default from config)")
	rootCmd.AddCommand(capCmd)

	forwardCmd := &cobra.Command{
		Use:   "forward",
		Short: "Forward rate between two maturities",
		RunE:  a.runForward,
	}
	forwardCmd.Flags().Int("from", 0, "Start maturity in years")
	forwardCmd.Flags().Int("to", 1, "End maturity in years")
	rootCmd.AddCommand(forwardCmd)

	volCheckCmd := &cobra.Command{
		Use:   "volcheck",
		Short: "Yield volatility implied by the lattice for a maturity",
		RunE:  a.runVolCheck,
	}
	volCheckCmd.Flags().Int("maturity", 0, "Maturity to check (default: longest)")
	rootCmd.AddCommand(volCheckCmd)

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// calibrate loads the configuration and fits the lattice before any
// subcommand runs.
func (a *app) calibrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.Level()}))
	opts := cfg.Options(logger)

	model, err := bdt.Calibrate(cfg.TermStructure, &opts)
	if err != nil {
		return err
	}
	logger.Info("BDT lattice calibrated",
		slog.Int("maturities", model.Size()),
		slog.String("config", a.configPath))

	a.cfg, a.model = cfg, model
	return nil
}

func (a *app) runCalibrate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	vols := a.model.RateVolatilities()
	prices := a.model.BondPrices()

	fmt.Fprintln(out, "Short-rate lattice R[n][j]:")
	for n, row := range a.model.Rates() {
		fmt.Fprintf(out, "  n=%d", n)
		for j := 0; j <= n; j++ {
			fmt.Fprintf(out, "  %.6f", row[j])
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "Maturity  Bond price  Lattice price  Rate vol")
	for k := range prices {
		zero, err := a.model.ZeroPrice(k + 1)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%8d  %10.6f  %13.6f  %8.4f\n", k+1, prices[k], zero, vols[k])
	}
	return nil
}

func (a *app) runCap(cmd *cobra.Command, args []string) error {
	strike, periods, notional := a.cfg.Cap.Strike, a.cfg.Cap.Periods, a.cfg.Cap.Notional
	if cmd.Flags().Changed("strike") {
		strike, _ = cmd.Flags().GetFloat64("strike")
	}
	if cmd.Flags().Changed("periods") {
		periods, _ = cmd.Flags().GetInt("periods")
	}
	if cmd.Flags().Changed("notional") {
		notional, _ = cmd.Flags().GetFloat64("notional")
	}
	if periods == 0 {
		periods = a.model.Size()
	}

	// Estimate the cap value per unit notional
	capValue, err := a.model.PriceCap(strike, periods)
	if err != nil {
		return err
	}

	// Print currency
	ac := accounting.Accounting{Symbol: "$", Precision: 2}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Cap %d periods, strike %.4f: %.6f per unit\n", periods, strike, capValue)
	fmt.Fprintln(out, "The Cap Value:", ac.FormatMoney(capValue*notional))
	return nil
}

func (a *app) runForward(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetInt("from")
	to, _ := cmd.Flags().GetInt("to")

	f, err := a.model.ForwardRate(from, to)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "F(%d,%d) = %.6f\n", from, to, f)
	return nil
}

func (a *app) runVolCheck(cmd *cobra.Command, args []string) error {
	maturity, _ := cmd.Flags().GetInt("maturity")
	if maturity == 0 {
		maturity = a.model.Size()
	}

	vol, err := a.model.YieldVolatility(maturity)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Implied yield volatility, maturity %d: %.6f (observed %.6f)\n",
		maturity, vol, a.cfg.TermStructure.Vol(maturity))
	return nil
}
