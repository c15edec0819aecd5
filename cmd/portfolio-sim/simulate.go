package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rpgo/portfolio-sim/internal/calculation"
	"github.com/rpgo/portfolio-sim/internal/config"
	"github.com/rpgo/portfolio-sim/internal/domain"
	"github.com/rpgo/portfolio-sim/internal/output"
	"github.com/rpgo/portfolio-sim/pkg/dateutil"
)

var (
	flagScenario       string
	flagAll            bool
	flagFormat         string
	flagOutputDir      string
	flagSeed           int64
	flagWorkers        int
	flagNoAdaptive     bool
	flagMaxAttempts    int
	flagInitial        float64
	flagContribution   float64
	flagPeriodsPerYear int
	flagYears          float64
	flagMean           float64
	flagStdDev         float64
	flagSimulations    int
	flagHistory        string
	flagLookbackYears  int
	flagLookbackMonths int
	flagRecessionStart int
	flagRecessionLen   int
	flagRecessionRate  float64
	flagSaveConfig     string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the Monte Carlo projection for one or all scenarios",
	RunE:  runSimulate,
}

func init() {
	defaults := domain.DefaultSimulationConfig()
	f := simulateCmd.Flags()
	f.StringVarP(&flagScenario, "scenario", "s", "", "Scenario name from the config file (default: first)")
	f.BoolVar(&flagAll, "all", false, "Run every scenario and print a comparison")
	f.StringVarP(&flagFormat, "format", "f", "console", "Output format: "+fmt.Sprint(output.AvailableFormatterNames()))
	f.StringVarP(&flagOutputDir, "output", "o", "", "Write a timestamped report into this directory instead of stdout (use format \"all\" for every export)")
	f.Int64Var(&flagSeed, "seed", 0, "Random seed (unset picks one)")
	f.IntVar(&flagWorkers, "workers", 0, "Parallel simulation rows (0 keeps the configured value)")
	f.BoolVar(&flagNoAdaptive, "no-adaptive", false, "Report negative outcomes instead of raising payments")
	f.IntVar(&flagMaxAttempts, "max-attempts", 0, "Cap on controller attempts")
	f.Float64Var(&flagInitial, "initial", defaults.InitialValue, "Initial portfolio value")
	f.Float64Var(&flagContribution, "contribution", defaults.PeriodicContribution, "Payment per period (negative to withdraw)")
	f.IntVar(&flagPeriodsPerYear, "periods-per-year", defaults.PeriodsPerYear, "Compounding periods per year")
	f.Float64Var(&flagYears, "years", defaults.HorizonYears, "Horizon in years")
	f.Float64Var(&flagMean, "mean", defaults.AnnualReturnMeanPct, "Mean annual return (%)")
	f.Float64Var(&flagStdDev, "stddev", defaults.AnnualReturnStdDevPct, "Annual return standard deviation (%)")
	f.IntVar(&flagSimulations, "simulations", defaults.SimulationCount, "Number of simulated paths")
	f.StringVar(&flagHistory, "history", "", "CSV of year,return_pct to estimate mean and volatility from")
	f.IntVar(&flagLookbackYears, "lookback-years", 0, "Only use history from this many years back")
	f.IntVar(&flagLookbackMonths, "lookback-months", 0, "Additional months of lookback")
	f.IntVar(&flagRecessionStart, "recession-start", 0, "First period of a modeled recession")
	f.IntVar(&flagRecessionLen, "recession-periods", 0, "Length of the modeled recession in periods (0 disables)")
	f.Float64Var(&flagRecessionRate, "recession-return", -20, "Annual return during the recession (%)")
	f.StringVar(&flagSaveConfig, "save-config", "", "Write the effective scenarios, after flag overrides, to this YAML file")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfiguration()
	if err != nil {
		return err
	}

	if len(cfg.Scenarios) == 0 {
		return fmt.Errorf("%w: no scenarios to simulate", domain.ErrInvalidConfiguration)
	}
	scenarios := cfg.Scenarios
	switch {
	case flagScenario != "":
		s, err := config.Scenario(cfg, flagScenario)
		if err != nil {
			return err
		}
		scenarios = []domain.Scenario{s}
	case !flagAll:
		scenarios = scenarios[:1]
	}

	history, err := loadHistory()
	if err != nil {
		return err
	}

	effective := &domain.Configuration{
		Options:     applyOptionFlags(cmd, cfg.Options),
		DebtOptions: cfg.DebtOptions,
	}
	for _, s := range scenarios {
		s.Simulation = applySimulationFlags(cmd, s.Simulation)
		if history != nil {
			s.Simulation = history.ApplyTo(s.Simulation)
		}
		if cmd.Flags().Changed("seed") {
			s.Seed = nil
		}
		effective.Scenarios = append(effective.Scenarios, s)
	}
	if flagSaveConfig != "" {
		if err := output.SaveConfiguration(effective, flagSaveConfig); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}
		log.Infof("wrote %s", flagSaveConfig)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var results []*domain.RunResult
	for _, s := range effective.Scenarios {
		simulator := calculation.NewMonteCarloSimulator(effective.OptionsFor(s))
		simulator.SetLogger(log.WithField("scenario", s.Name))
		result, err := simulator.RunSimulation(ctx, s.Simulation)
		if err != nil {
			return fmt.Errorf("scenario %q: %w", s.Name, err)
		}
		result.Name = s.Name
		results = append(results, result)

		if err := emit(cmd, result); err != nil {
			return err
		}
	}

	if len(results) > 1 {
		_, err := cmd.OutOrStdout().Write(output.FormatComparison(results))
		return err
	}
	return nil
}

func emit(cmd *cobra.Command, result *domain.RunResult) error {
	if flagOutputDir != "" {
		paths, err := output.GenerateReport(result, flagFormat, flagOutputDir)
		if err != nil {
			return err
		}
		for _, p := range paths {
			log.WithField("scenario", result.Name).Infof("wrote %s", p)
		}
		return nil
	}
	return output.Render(cmd.OutOrStdout(), result, flagFormat)
}

// applySimulationFlags overrides scenario values with flags the user set explicitly.
func applySimulationFlags(cmd *cobra.Command, sim domain.SimulationConfig) domain.SimulationConfig {
	f := cmd.Flags()
	if f.Changed("initial") {
		sim.InitialValue = flagInitial
	}
	if f.Changed("contribution") {
		sim.PeriodicContribution = flagContribution
	}
	if f.Changed("periods-per-year") {
		sim.PeriodsPerYear = flagPeriodsPerYear
	}
	if f.Changed("years") {
		sim.HorizonYears = flagYears
	}
	if f.Changed("mean") {
		sim.AnnualReturnMeanPct = flagMean
	}
	if f.Changed("stddev") {
		sim.AnnualReturnStdDevPct = flagStdDev
	}
	if f.Changed("simulations") {
		sim.SimulationCount = flagSimulations
	}
	if flagRecessionLen > 0 {
		sim.Recession = &domain.RecessionWindow{
			StartPeriod:     flagRecessionStart,
			Periods:         flagRecessionLen,
			AnnualReturnPct: flagRecessionRate,
		}
	}
	return sim
}

func applyOptionFlags(cmd *cobra.Command, opts domain.RunOptions) domain.RunOptions {
	f := cmd.Flags()
	if f.Changed("seed") {
		opts.Seed = domain.FixedSeed(flagSeed)
	}
	if flagWorkers > 0 {
		opts.Workers = flagWorkers
	}
	if flagNoAdaptive {
		opts.Adaptive.Enabled = false
	}
	if flagMaxAttempts > 0 {
		opts.Adaptive.MaxAttempts = flagMaxAttempts
	}
	return opts
}

// loadHistory reads --history, trimmed to the lookback window when one is given.
func loadHistory() (*calculation.ReturnHistory, error) {
	if flagHistory == "" {
		if flagLookbackYears > 0 || flagLookbackMonths > 0 {
			return nil, fmt.Errorf("--lookback-years/--lookback-months require --history")
		}
		return nil, nil
	}
	history, err := calculation.LoadReturnHistory(flagHistory)
	if err != nil {
		return nil, err
	}
	if flagLookbackYears > 0 || flagLookbackMonths > 0 {
		since := dateutil.DateBack(calculation.Now(), flagLookbackYears, flagLookbackMonths)
		if history, err = history.Since(since.Year()); err != nil {
			return nil, fmt.Errorf("lookback from %s: %w", dateutil.Format(since), err)
		}
	}
	stats := history.Statistics
	log.WithFields(logrus.Fields{
		"source": history.Source,
		"years":  fmt.Sprintf("%d-%d", history.MinYear, history.MaxYear),
	}).Infof("using historical mean %.2f%% and volatility %.2f%%", stats.MeanPct, stats.StdDevPct)
	return history, nil
}
