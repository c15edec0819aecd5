package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rpgo/portfolio-sim/internal/domain"
	money "github.com/rpgo/portfolio-sim/pkg/decimal"
)

// Recommendation encapsulates the selection result of the best scenario.
type Recommendation struct {
	ScenarioName   string
	MedianTerminal decimal.Decimal
	WorstTerminal  decimal.Decimal
	// MedianGain is the best median minus the lowest median among the scenarios.
	MedianGain decimal.Decimal
}

// AnalyzeScenarios picks the scenario with the highest median terminal value,
// breaking ties on the higher 5th percentile.
func AnalyzeScenarios(results []*domain.RunResult) Recommendation {
	if len(results) == 0 {
		return Recommendation{}
	}
	ranked := append([]*domain.RunResult(nil), results...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Percentiles[50] != ranked[j].Percentiles[50] {
			return ranked[i].Percentiles[50] > ranked[j].Percentiles[50]
		}
		return ranked[i].Percentiles[5] > ranked[j].Percentiles[5]
	})
	best, last := ranked[0], ranked[len(ranked)-1]
	return Recommendation{
		ScenarioName:   best.Name,
		MedianTerminal: money.Dollars(best.Percentiles[50]),
		WorstTerminal:  money.Dollars(best.Percentiles[0]),
		MedianGain:     money.Dollars(best.Percentiles[50] - last.Percentiles[50]),
	}
}

// FormatComparison renders one row per scenario followed by the recommendation.
func FormatComparison(results []*domain.RunResult) []byte {
	var b strings.Builder
	fmt.Fprintln(&b, renderTitle("SCENARIO COMPARISON"))
	fmt.Fprintf(&b, "%-24s %14s %16s %16s %16s\n", "Scenario", "Payment", "P5", "Median", "P90")
	for _, r := range results {
		fmt.Fprintf(&b, "%-24s %14s %16s %16s %16s\n",
			r.Name,
			FormatCurrency(money.Cents(r.FinalContribution)),
			FormatDollars(money.Dollars(r.Percentiles[5])),
			FormatDollars(money.Dollars(r.Percentiles[50])),
			FormatDollars(money.Dollars(r.Percentiles[90])),
		)
	}
	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" {
		fmt.Fprintln(&b)
		fmt.Fprintf(&b, "Recommended: %s (median %s, +%s over the lowest median)\n",
			rec.ScenarioName, FormatDollars(rec.MedianTerminal), FormatDollars(rec.MedianGain))
	}
	return []byte(b.String())
}
