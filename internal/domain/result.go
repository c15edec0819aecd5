package domain

import (
	"github.com/shopspring/decimal"
)

// PercentileCount is the number of entries in a PercentileTable (0 through 100).
const PercentileCount = 101

// SummaryPercentiles are the percentiles reported in the textual summary.
var SummaryPercentiles = []int{0, 1, 5, 10, 50, 75, 90}

// Bin is the half-open range [Low, High) and the number of terminal values in it.
type Bin struct {
	Low   int64 `json:"low"`
	High  int64 `json:"high"`
	Count int   `json:"count"`
}

// PercentileTable maps integer percentile p to the terminal value at p.
type PercentileTable [PercentileCount]float64

// At returns the value at percentile p, clamped to [0, 100].
func (pt PercentileTable) At(p int) float64 {
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return pt[p]
}

// Trajectory is the account value at the end of each period of one simulation.
type Trajectory []float64

// Terminal is the value after the final period.
func (t Trajectory) Terminal() float64 {
	if len(t) == 0 {
		return 0
	}
	return t[len(t)-1]
}

// SelectedPath is a representative simulation picked for presentation.
type SelectedPath struct {
	Index      int        `json:"index"`
	Terminal   float64    `json:"terminal"`
	Trajectory Trajectory `json:"trajectory"`
}

// SelectedPaths holds the worst, median and best simulations.
type SelectedPaths struct {
	Worst  SelectedPath `json:"worst"`
	Median SelectedPath `json:"median"`
	Best   SelectedPath `json:"best"`
}

// Attempt records one full simulation run made by the adaptive controller.
type Attempt struct {
	Contribution float64 `json:"contribution"`
	Percentile0  float64 `json:"percentile_0"`
	NegativePct  float64 `json:"negative_pct"`
}

// ChanceLine reads "ChancePct% chance of ending with more than Value".
type ChanceLine struct {
	Percentile int             `json:"percentile"`
	ChancePct  int             `json:"chance_pct"`
	Value      decimal.Decimal `json:"value"`
}

// ThresholdProbability is the percentage of simulations ending above Threshold.
type ThresholdProbability struct {
	Threshold   decimal.Decimal `json:"threshold"`
	Probability decimal.Decimal `json:"probability_pct"`
}

// Summary carries the figures handed to the textual report.
type Summary struct {
	SimulationCount   int                    `json:"simulation_count"`
	HorizonYears      float64                `json:"horizon_years"`
	InitialValue      decimal.Decimal        `json:"initial_value"`
	Contribution      decimal.Decimal        `json:"contribution"`
	Chances           []ChanceLine           `json:"chances"`
	Thresholds        []ThresholdProbability `json:"thresholds"`
	MeanTerminal      decimal.Decimal        `json:"mean_terminal"`
	StdDevTerminal    decimal.Decimal        `json:"stddev_terminal"`
	ContributionRaise decimal.Decimal        `json:"contribution_raise"`
}

// ExceedancePoint is the fraction of terminal values at or above Edge.
type ExceedancePoint struct {
	Edge     float64 `json:"edge"`
	Fraction float64 `json:"fraction"`
}

// RunResult is everything one invocation produces.
type RunResult struct {
	Name              string            `json:"name,omitempty"`
	Config            SimulationConfig  `json:"config"`
	Seed              int64             `json:"seed"`
	FinalContribution float64           `json:"final_contribution"`
	Attempts          []Attempt         `json:"attempts"`
	Percentiles       PercentileTable   `json:"percentiles"`
	Bins              []Bin             `json:"bins"`
	TerminalValues    []float64         `json:"terminal_values"`
	Trajectories      []Trajectory      `json:"-"`
	SelectedPaths     SelectedPaths     `json:"selected_paths"`
	Exceedance        []ExceedancePoint `json:"exceedance"`
	Summary           Summary           `json:"summary"`
}
