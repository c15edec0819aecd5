package calculation

import (
	"context"
	"fmt"

	"github.com/rpgo/portfolio-sim/internal/domain"
)

// MonteCarloSimulator projects a savings/withdrawal plan over many random
// return paths and aggregates the outcomes.
type MonteCarloSimulator struct {
	Options domain.RunOptions
	Logger  Logger
}

// NewMonteCarloSimulator creates a simulator. A zero seed is replaced by the
// seed provider at run time.
func NewMonteCarloSimulator(opts domain.RunOptions) *MonteCarloSimulator {
	return &MonteCarloSimulator{
		Options: opts,
		Logger:  NopLogger{},
	}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (mcs *MonteCarloSimulator) SetLogger(l Logger) {
	mcs.Logger = orNop(l)
}

// RunSimulation generates, simulates and aggregates cfg, retrying with a
// larger contribution while the worst outcome is negative (when enabled).
// Configuration problems are reported before any path is simulated.
func (mcs *MonteCarloSimulator) RunSimulation(ctx context.Context, cfg domain.SimulationConfig) (*domain.RunResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := mcs.Options.Validate(); err != nil {
		return nil, err
	}
	log := orNop(mcs.Logger)

	seed := seedFunc()
	if mcs.Options.Seed != nil {
		seed = *mcs.Options.Seed
	}
	gen := ReturnGenerator{Seed: seed, Workers: mcs.Options.Workers}

	log.Debugf("simulating %d paths of %d periods (seed %d)", cfg.SimulationCount, cfg.PeriodCount(), seed)

	run := func(contribution float64, attempt int) (RunOutcome, error) {
		returns := gen.Generate(cfg, attempt)
		paths := SimulatePaths(cfg.InitialValue, contribution, returns, mcs.Options.Workers)
		return RunOutcome{
			Paths:       paths,
			Percentiles: Percentiles(paths.TerminalValues),
		}, nil
	}

	controller := AdaptiveController{Config: mcs.Options.Adaptive, Logger: log}
	out, attempts, err := controller.Resolve(ctx, cfg.PeriodicContribution, run)
	if err != nil {
		return nil, err
	}

	bins, err := BinTerminalValues(out.Paths.TerminalValues, mcs.Options.Bins)
	if err != nil {
		return nil, fmt.Errorf("failed to bin terminal values: %w", err)
	}

	selected, err := SelectPaths(out.Paths.TerminalValues, out.Paths.Trajectories, out.Percentiles[50])
	if err != nil {
		return nil, err
	}

	result := &domain.RunResult{
		Config:            cfg,
		Seed:              seed,
		FinalContribution: out.Contribution,
		Attempts:          attempts,
		Percentiles:       out.Percentiles,
		Bins:              TrimBins(bins),
		TerminalValues:    out.Paths.TerminalValues,
		Trajectories:      out.Paths.Trajectories,
		SelectedPaths:     selected,
		Exceedance:        ExceedanceCurve(out.Paths.TerminalValues, mcs.Options.Report.Buckets),
		Summary:           Summarize(cfg, out.Contribution, out.Percentiles, out.Paths.TerminalValues, mcs.Options.Report),
	}

	log.Infof("completed %d simulations over %g years: median %.0f, 5th percentile %.0f",
		cfg.SimulationCount, cfg.HorizonYears, out.Percentiles[50], out.Percentiles[5])
	return result, nil
}
