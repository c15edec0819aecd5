package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/rpgo/portfolio-sim/internal/domain"
)

// PercentileCSVExporter writes the full 0-100 percentile table.
type PercentileCSVExporter struct{}

func (p PercentileCSVExporter) Name() string { return "percentiles-csv" }

func (p PercentileCSVExporter) Format(result *domain.RunResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Percentile", "TerminalValue", "ChanceAbove"}); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for i, v := range result.Percentiles {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(v, 'f', 2, 64),
			strconv.Itoa(100 - i),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write percentile row: %w", err)
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// BinCSVExporter writes the trimmed histogram of terminal values.
type BinCSVExporter struct{}

func (b BinCSVExporter) Name() string { return "bins-csv" }

func (b BinCSVExporter) Format(result *domain.RunResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Low", "High", "Count", "Fraction"}); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	n := float64(len(result.TerminalValues))
	for _, bin := range result.Bins {
		fraction := 0.0
		if n > 0 {
			fraction = float64(bin.Count) / n
		}
		row := []string{
			strconv.FormatInt(bin.Low, 10),
			strconv.FormatInt(bin.High, 10),
			strconv.Itoa(bin.Count),
			strconv.FormatFloat(fraction, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write bin row: %w", err)
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
