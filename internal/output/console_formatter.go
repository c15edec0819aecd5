package output

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rpgo/portfolio-sim/internal/domain"
	money "github.com/rpgo/portfolio-sim/pkg/decimal"
)

const (
	histogramRows  = 20
	histogramWidth = 40
)

// ConsoleFormatter renders the projection summary for a terminal.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.RunResult) ([]byte, error) {
	var b strings.Builder
	writeConsoleSummary(&b, result)
	return []byte(b.String()), nil
}

func writeConsoleSummary(b *strings.Builder, result *domain.RunResult) {
	s := result.Summary
	title := "PORTFOLIO PROJECTION"
	if result.Name != "" {
		title += ": " + strings.ToUpper(result.Name)
	}
	fmt.Fprintln(b, renderTitle(title))
	fmt.Fprintln(b)
	fmt.Fprintf(b, "Based on %d simulations of %g years\n", s.SimulationCount, s.HorizonYears)
	fmt.Fprintf(b, "Starting value: %s, payments: %s per period (%d per year)\n",
		FormatCurrency(s.InitialValue), FormatCurrency(s.Contribution), result.Config.PeriodsPerYear)
	fmt.Fprintln(b, mutedStyle.Render(fmt.Sprintf("seed %d", result.Seed)))

	writeAttemptWarnings(b, result.Attempts)

	fmt.Fprintln(b)
	for _, line := range s.Chances {
		fmt.Fprintf(b, "%3d%% chance of ending with more than %s\n", line.ChancePct, valueStyle.Render(FormatDollars(line.Value)))
	}
	fmt.Fprintln(b, strings.Repeat("---", 10))
	for _, tp := range s.Thresholds {
		fmt.Fprintf(b, "Probability of getting more than %s: %s\n", FormatDollars(tp.Threshold), FormatPercentage(tp.Probability))
	}
	fmt.Fprintf(b, "Mean terminal value: %s (std dev %s)\n", FormatCurrency(s.MeanTerminal), FormatCurrency(s.StdDevTerminal))

	writeHistogram(b, result.Bins)
	writePaths(b, result.SelectedPaths)
}

func writeAttemptWarnings(b *strings.Builder, attempts []domain.Attempt) {
	for i, a := range attempts {
		if a.Percentile0 >= 0 {
			continue
		}
		fmt.Fprintln(b)
		fmt.Fprintln(b, warnStyle.Render("*** Warning **********************"))
		fmt.Fprintf(b, "%.2f%% of results are negative\n", a.NegativePct)
		if i+1 < len(attempts) {
			fmt.Fprintf(b, "Payments changed to %s\n", FormatCurrency(money.Cents(attempts[i+1].Contribution)))
		}
	}
}

func writeHistogram(b *strings.Builder, bins []domain.Bin) {
	if len(bins) == 0 {
		return
	}
	writeSection(b, "Distribution of terminal values")
	grouped := groupBins(bins, histogramRows)
	maxCount := 0
	for _, g := range grouped {
		if g.Count > maxCount {
			maxCount = g.Count
		}
	}
	for _, g := range grouped {
		label := fmt.Sprintf("%14s to %-14s", FormatDollars(decimal.NewFromInt(g.Low)), FormatDollars(decimal.NewFromInt(g.High)))
		fmt.Fprintf(b, "  %s %s %d\n", label, valueStyle.Render(renderBar(float64(g.Count), float64(maxCount), histogramWidth)), g.Count)
	}
}

func writePaths(b *strings.Builder, paths domain.SelectedPaths) {
	if len(paths.Median.Trajectory) == 0 {
		return
	}
	writeSection(b, "Representative paths")
	lo, hi := pathRange(paths.Worst.Trajectory, paths.Median.Trajectory, paths.Best.Trajectory)
	rows := []struct {
		label string
		path  domain.SelectedPath
	}{
		{"worst ", paths.Worst},
		{"median", paths.Median},
		{"best  ", paths.Best},
	}
	for _, r := range rows {
		line := sparkline(r.path.Trajectory, lo, hi, sparkWidth)
		if r.path.Terminal < 0 {
			line = badStyle.Render(line)
		}
		fmt.Fprintf(b, "  %s %s %s (#%d)\n", r.label, line, FormatCurrency(money.Cents(r.path.Terminal)), r.path.Index)
	}
}
