package output

import (
	"fmt"
	"strings"

	"github.com/rpgo/portfolio-sim/internal/domain"
	money "github.com/rpgo/portfolio-sim/pkg/decimal"
)

// ConsoleVerboseFormatter extends the console report with the full percentile
// table, the exceedance curve and every controller attempt.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console-verbose" }

func (c ConsoleVerboseFormatter) Format(result *domain.RunResult) ([]byte, error) {
	var b strings.Builder
	writeConsoleSummary(&b, result)

	writeSection(&b, "Assumptions")
	for _, a := range GenerateAssumptions(result.Config) {
		fmt.Fprintf(&b, "  • %s\n", a)
	}

	writeSection(&b, "Controller attempts")
	for i, a := range result.Attempts {
		fmt.Fprintf(&b, "  %3d  payment %14s  p0 %16s  negative %6.2f%%\n",
			i+1, FormatCurrency(money.Cents(a.Contribution)), FormatCurrency(money.Cents(a.Percentile0)), a.NegativePct)
	}

	writeSection(&b, "Percentiles")
	for p := 0; p < domain.PercentileCount; p += 5 {
		fmt.Fprintf(&b, "  p%-3d %18s\n", p, FormatCurrency(money.Cents(result.Percentiles[p])))
	}

	if len(result.Exceedance) > 0 {
		writeSection(&b, "Chance of ending at or above")
		for _, pt := range result.Exceedance {
			fmt.Fprintf(&b, "  %18s %s %s\n",
				FormatDollars(money.Dollars(pt.Edge)),
				valueStyle.Render(renderBar(pt.Fraction, 1, histogramWidth)),
				FormatPercentage(money.Percent(pt.Fraction)))
		}
	}
	return []byte(b.String()), nil
}
