package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/portfolio-sim/internal/domain"
)

// PathCSVExporter writes the worst, median and best trajectories period by period.
type PathCSVExporter struct{}

func (c PathCSVExporter) Name() string { return "paths-csv" }

func (c PathCSVExporter) Format(result *domain.RunResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	sel := result.SelectedPaths
	header := []string{
		"Period",
		"Worst#" + intToString(sel.Worst.Index),
		"Median#" + intToString(sel.Median.Index),
		"Best#" + intToString(sel.Best.Index),
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i := range sel.Median.Trajectory {
		row := []string{
			intToString(i + 1),
			valueAt(sel.Worst.Trajectory, i),
			valueAt(sel.Median.Trajectory, i),
			valueAt(sel.Best.Trajectory, i),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func valueAt(t domain.Trajectory, i int) string {
	if i >= len(t) {
		return ""
	}
	return floatToString(t[i])
}
