package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/portfolio-sim/internal/domain"
)

// CSVSummarizer implements the summary CSV output (one metric per row).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(result *domain.RunResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	s := result.Summary
	rows := [][]string{
		{"Metric", "Value", "Description"},
		{"Simulations", intToString(s.SimulationCount), "Number of simulated paths"},
		{"HorizonYears", floatToString(s.HorizonYears), "Projection horizon"},
		{"InitialValue", s.InitialValue.StringFixed(2), "Starting account value"},
		{"Contribution", s.Contribution.StringFixed(2), "Accepted per-period payment"},
		{"ContributionRaise", s.ContributionRaise.StringFixed(2), "Increase applied to avoid negative outcomes"},
		{"Attempts", intToString(len(result.Attempts)), "Full simulation runs made"},
		{"MeanTerminal", s.MeanTerminal.StringFixed(2), "Mean terminal value"},
		{"StdDevTerminal", s.StdDevTerminal.StringFixed(2), "Sample standard deviation of terminal values"},
	}
	for _, line := range s.Chances {
		rows = append(rows, []string{
			"P" + intToString(line.Percentile),
			line.Value.String(),
			intToString(line.ChancePct) + "% chance of ending with more than this",
		})
	}
	for _, tp := range s.Thresholds {
		rows = append(rows, []string{
			"ProbabilityAbove" + tp.Threshold.StringFixed(0),
			tp.Probability.StringFixed(2),
			"Percent of paths ending above the threshold",
		})
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
