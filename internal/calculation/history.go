package calculation

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/rpgo/portfolio-sim/internal/domain"
)

// HistoricalDataPoint is one year's total return, in percent.
type HistoricalDataPoint struct {
	Year      int             `json:"year"`
	ReturnPct decimal.Decimal `json:"return_pct"`
}

// HistoricalStatistics summarizes a return series.
type HistoricalStatistics struct {
	MeanPct      float64 `json:"mean_pct"`
	StdDevPct    float64 `json:"std_dev_pct"`
	MinPct       float64 `json:"min_pct"`
	MaxPct       float64 `json:"max_pct"`
	Count        int     `json:"count"`
	MissingYears []int   `json:"missing_years"`
}

// ReturnHistory is an annual return series loaded from CSV.
type ReturnHistory struct {
	Source     string                `json:"source"`
	DataPoints []HistoricalDataPoint `json:"data_points"`
	MinYear    int                   `json:"min_year"`
	MaxYear    int                   `json:"max_year"`
	Statistics HistoricalStatistics  `json:"statistics"`
}

// LoadReturnHistory reads a two-column CSV (year, return in percent) with a
// header row. Rows with an unparseable year or value are skipped.
func LoadReturnHistory(filePath string) (*ReturnHistory, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	h, err := ParseReturnHistory(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filePath, err)
	}
	h.Source = filePath
	return h, nil
}

// ParseReturnHistory parses the CSV format accepted by LoadReturnHistory.
func ParseReturnHistory(r io.Reader) (*ReturnHistory, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("invalid CSV format: expected at least 2 columns")
	}

	var points []HistoricalDataPoint
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read data row: %w", err)
		}
		if len(record) < 2 {
			continue
		}
		year, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		value, err := decimal.NewFromString(record[1])
		if err != nil {
			continue
		}
		points = append(points, HistoricalDataPoint{Year: year, ReturnPct: value})
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("no valid data points found")
	}
	return newReturnHistory(points), nil
}

func newReturnHistory(points []HistoricalDataPoint) *ReturnHistory {
	sort.Slice(points, func(i, j int) bool { return points[i].Year < points[j].Year })
	return &ReturnHistory{
		DataPoints: points,
		MinYear:    points[0].Year,
		MaxYear:    points[len(points)-1].Year,
		Statistics: calculateStatistics(points),
	}
}

// calculateStatistics uses the sample standard deviation, matching how
// volatility is usually quoted for annual return series.
func calculateStatistics(points []HistoricalDataPoint) HistoricalStatistics {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.ReturnPct.InexactFloat64()
	}

	s := HistoricalStatistics{
		MeanPct: stat.Mean(values, nil),
		MinPct:  floats.Min(values),
		MaxPct:  floats.Max(values),
		Count:   len(values),
	}
	if len(values) > 1 {
		s.StdDevPct = stat.StdDev(values, nil)
	}

	seen := make(map[int]bool, len(points))
	for _, p := range points {
		seen[p.Year] = true
	}
	for y := points[0].Year; y <= points[len(points)-1].Year; y++ {
		if !seen[y] {
			s.MissingYears = append(s.MissingYears, y)
		}
	}
	return s
}

// Since returns the part of the series from year onwards.
func (h *ReturnHistory) Since(year int) (*ReturnHistory, error) {
	var kept []HistoricalDataPoint
	for _, p := range h.DataPoints {
		if p.Year >= year {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("no historical returns since %d (data covers %d-%d)", year, h.MinYear, h.MaxYear)
	}
	out := newReturnHistory(kept)
	out.Source = h.Source
	return out, nil
}

// ApplyTo replaces cfg's return assumptions with the series' mean and
// standard deviation.
func (h *ReturnHistory) ApplyTo(cfg domain.SimulationConfig) domain.SimulationConfig {
	cfg.AnnualReturnMeanPct = h.Statistics.MeanPct
	cfg.AnnualReturnStdDevPct = h.Statistics.StdDevPct
	return cfg
}
