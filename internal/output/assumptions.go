package output

import (
	"fmt"

	"github.com/rpgo/portfolio-sim/internal/domain"
)

// GenerateAssumptions creates the assumptions list from the simulated plan.
func GenerateAssumptions(cfg domain.SimulationConfig) []string {
	out := []string{
		fmt.Sprintf("Mean annual return: %.2f%%", cfg.AnnualReturnMeanPct),
		fmt.Sprintf("Annual volatility: %.2f%%", cfg.AnnualReturnStdDevPct),
		fmt.Sprintf("Periods: %d (%d per year), returns drawn independently each period", cfg.PeriodCount(), cfg.PeriodsPerYear),
		"Payments applied at the end of every period after growth",
	}
	if r := cfg.Recession; r != nil {
		out = append(out, fmt.Sprintf("Recession: periods %d-%d at %.2f%% a year", r.StartPeriod, r.StartPeriod+r.Periods-1, r.AnnualReturnPct))
	}
	return out
}
