package output

import (
	"fmt"
	"strings"

	"github.com/rpgo/portfolio-sim/internal/calculation"
)

// FormatDebtOutcomes renders repayment options side by side.
func FormatDebtOutcomes(outcomes []*calculation.DebtOutcome) []byte {
	var b strings.Builder
	fmt.Fprintln(&b, renderTitle("DEBT REPAYMENT OPTIONS"))
	for _, o := range outcomes {
		opt := o.Option
		writeSection(&b, opt.Name)
		fmt.Fprintf(&b, "  Debt %s at %.2f%% over %g years, age %d to %d\n",
			FormatCurrency(o.DebtAfterLump), opt.DebtRatePct, opt.RepaymentYears, opt.CurrentAge, opt.RetirementAge)
		if !o.LumpGross.IsZero() {
			fmt.Fprintf(&b, "  Lump withdrawal:          %s (%s after tax)\n", FormatCurrency(o.LumpGross), FormatCurrency(o.LumpNet))
		}
		fmt.Fprintf(&b, "  Payment per period:       %s\n", FormatCurrency(o.Payment))
		fmt.Fprintf(&b, "  Total paid:               %s (interest %s)\n", FormatCurrency(o.TotalPaid), FormatCurrency(o.TotalInterest))
		fmt.Fprintf(&b, "  Liquid savings at start:  %s\n", FormatCurrency(o.LiquidAfterLump))
		fmt.Fprintf(&b, "  Liquid at retirement:     %s\n", FormatCurrency(o.LiquidAtRetirement))
		fmt.Fprintf(&b, "  Locked at retirement:     %s\n", FormatCurrency(o.LockedAtRetirement))
		fmt.Fprintf(&b, "  Net at retirement:        %s\n", valueStyle.Render(FormatCurrency(o.NetAtRetirement)))
	}
	if best := bestDebtOutcome(outcomes); best != nil && len(outcomes) > 1 {
		fmt.Fprintln(&b)
		fmt.Fprintf(&b, "Best option: %s (%s net at retirement)\n", best.Option.Name, FormatCurrency(best.NetAtRetirement))
	}
	return []byte(b.String())
}

func bestDebtOutcome(outcomes []*calculation.DebtOutcome) *calculation.DebtOutcome {
	var best *calculation.DebtOutcome
	for _, o := range outcomes {
		if best == nil || o.NetAtRetirement.GreaterThan(best.NetAtRetirement) {
			best = o
		}
	}
	return best
}
