package domain

import (
	"fmt"
	"math"
)

// SimulationConfig describes one savings/withdrawal plan to project.
// A negative PeriodicContribution is a withdrawal.
type SimulationConfig struct {
	InitialValue          float64 `yaml:"initial_value" json:"initial_value"`
	PeriodicContribution  float64 `yaml:"periodic_contribution" json:"periodic_contribution"`
	PeriodsPerYear        int     `yaml:"periods_per_year" json:"periods_per_year"`
	HorizonYears          float64 `yaml:"horizon_years" json:"horizon_years"`
	AnnualReturnMeanPct   float64 `yaml:"annual_return_mean_pct" json:"annual_return_mean_pct"`
	AnnualReturnStdDevPct float64 `yaml:"annual_return_stddev_pct" json:"annual_return_stddev_pct"`
	SimulationCount       int     `yaml:"simulation_count" json:"simulation_count"`

	// Recession optionally overrides a contiguous span of periods with a fixed shock.
	Recession *RecessionWindow `yaml:"recession,omitempty" json:"recession,omitempty"`
}

// RecessionWindow is a modeled downturn: periods [StartPeriod, StartPeriod+Periods)
// of every simulation earn AnnualReturnPct instead of a sampled return.
type RecessionWindow struct {
	StartPeriod     int     `yaml:"start_period" json:"start_period"`
	Periods         int     `yaml:"periods" json:"periods"`
	AnnualReturnPct float64 `yaml:"annual_return_pct" json:"annual_return_pct"`
}

// BinConfig is the histogram domain [LowerBound, UpperBound) split into Width-wide bins.
type BinConfig struct {
	LowerBound int64 `yaml:"lower_bound" json:"lower_bound"`
	UpperBound int64 `yaml:"upper_bound" json:"upper_bound"`
	Width      int64 `yaml:"width" json:"width"`
}

// AdaptiveConfig controls the ruin retry loop.
type AdaptiveConfig struct {
	Enabled     bool    `yaml:"enabled" json:"enabled"`
	Increment   float64 `yaml:"increment" json:"increment"`
	MaxAttempts int     `yaml:"max_attempts" json:"max_attempts"`
}

// ReportConfig holds presentation-only parameters.
type ReportConfig struct {
	ReferenceAmount float64 `yaml:"reference_amount" json:"reference_amount"`
	Buckets         int     `yaml:"exceedance_buckets" json:"exceedance_buckets"`
}

// RunOptions bundles everything a single invocation needs besides the plan itself.
type RunOptions struct {
	Bins     BinConfig      `yaml:"bins" json:"bins"`
	Adaptive AdaptiveConfig `yaml:"adaptive" json:"adaptive"`
	Report   ReportConfig   `yaml:"report" json:"report"`
	// Seed pins the random source. Nil picks a fresh seed for every run.
	Seed    *int64 `yaml:"seed,omitempty" json:"seed,omitempty"`
	Workers int    `yaml:"workers" json:"workers"`
}

// FixedSeed returns a pinned seed for RunOptions.Seed or Scenario.Seed.
func FixedSeed(v int64) *int64 { return &v }

// DefaultSimulationConfig returns the reference accumulation plan: $25,000 up front,
// $1,200 monthly for 22 years at 7% +/- 11.4%, 4000 paths.
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		InitialValue:          25000,
		PeriodicContribution:  1200,
		PeriodsPerYear:        12,
		HorizonYears:          22,
		AnnualReturnMeanPct:   7,
		AnnualReturnStdDevPct: 11.4,
		SimulationCount:       4000,
	}
}

// DefaultRunOptions returns the standard bin domain, a $100 retry increment and a $1M reference amount.
func DefaultRunOptions() RunOptions {
	return RunOptions{
		Bins: BinConfig{
			LowerBound: -1_000_000,
			UpperBound: 100_000_000,
			Width:      50_000,
		},
		Adaptive: AdaptiveConfig{
			Enabled:     true,
			Increment:   100,
			MaxAttempts: 1000,
		},
		Report: ReportConfig{
			ReferenceAmount: 1_000_000,
			Buckets:         25,
		},
		Workers: 10,
	}
}

// PeriodCount is the number of compounding periods in the horizon.
// Callers must Validate first; an invalid horizon yields 0.
func (c SimulationConfig) PeriodCount() int {
	n := c.HorizonYears * float64(c.PeriodsPerYear)
	r := math.Round(n)
	if math.Abs(n-r) > 1e-9 || r <= 0 {
		return 0
	}
	return int(r)
}

// Validate rejects configurations that cannot be simulated.
func (c SimulationConfig) Validate() error {
	if c.PeriodsPerYear <= 0 {
		return &ConfigError{Field: "periods_per_year", Reason: fmt.Sprintf("must be positive, got %d", c.PeriodsPerYear)}
	}
	if c.HorizonYears <= 0 || math.IsNaN(c.HorizonYears) || math.IsInf(c.HorizonYears, 0) {
		return &ConfigError{Field: "horizon_years", Reason: fmt.Sprintf("must be positive, got %g", c.HorizonYears)}
	}
	if c.SimulationCount <= 0 {
		return &ConfigError{Field: "simulation_count", Reason: fmt.Sprintf("must be positive, got %d", c.SimulationCount)}
	}
	if c.PeriodCount() == 0 {
		return &ConfigError{
			Field:  "horizon_years",
			Reason: fmt.Sprintf("%g years x %d periods/year is not a whole number of periods", c.HorizonYears, c.PeriodsPerYear),
		}
	}
	if c.AnnualReturnStdDevPct < 0 {
		return &ConfigError{Field: "annual_return_stddev_pct", Reason: "cannot be negative"}
	}
	if r := c.Recession; r != nil {
		if r.StartPeriod < 0 || r.Periods <= 0 {
			return &ConfigError{Field: "recession", Reason: "start_period must be >= 0 and periods > 0"}
		}
		if r.StartPeriod+r.Periods > c.PeriodCount() {
			return &ConfigError{
				Field:  "recession",
				Reason: fmt.Sprintf("window [%d,%d) exceeds %d periods", r.StartPeriod, r.StartPeriod+r.Periods, c.PeriodCount()),
			}
		}
	}
	return nil
}

// Validate checks the bin domain is non-empty and aligned to the bin width.
func (b BinConfig) Validate() error {
	if b.Width <= 0 {
		return &ConfigError{Field: "bins.width", Reason: fmt.Sprintf("must be positive, got %d", b.Width)}
	}
	if b.UpperBound <= b.LowerBound {
		return &ConfigError{Field: "bins", Reason: fmt.Sprintf("upper bound %d must exceed lower bound %d", b.UpperBound, b.LowerBound)}
	}
	if b.LowerBound%b.Width != 0 || b.UpperBound%b.Width != 0 {
		return &ConfigError{Field: "bins", Reason: fmt.Sprintf("bounds must be multiples of width %d", b.Width)}
	}
	return nil
}

// Count is the number of bins tiling the domain.
func (b BinConfig) Count() int {
	return int((b.UpperBound - b.LowerBound) / b.Width)
}

// Validate checks the retry loop can make progress.
func (a AdaptiveConfig) Validate() error {
	if !a.Enabled {
		return nil
	}
	if a.Increment <= 0 {
		return &ConfigError{Field: "adaptive.increment", Reason: "must be positive"}
	}
	if a.MaxAttempts <= 0 {
		return &ConfigError{Field: "adaptive.max_attempts", Reason: "must be positive"}
	}
	return nil
}

// Validate checks every option group.
func (o RunOptions) Validate() error {
	if err := o.Bins.Validate(); err != nil {
		return err
	}
	if err := o.Adaptive.Validate(); err != nil {
		return err
	}
	if o.Report.Buckets < 0 {
		return &ConfigError{Field: "report.exceedance_buckets", Reason: "cannot be negative"}
	}
	return nil
}
