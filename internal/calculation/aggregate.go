package calculation

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/rpgo/portfolio-sim/internal/domain"
	money "github.com/rpgo/portfolio-sim/pkg/decimal"
)

// floorDiv is integer division rounding toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// BinTerminalValues counts values into the fixed-width bins tiling cfg's domain.
// A value at or beyond either bound is a *domain.DomainOverflowError.
func BinTerminalValues(values []float64, cfg domain.BinConfig) ([]domain.Bin, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bins := make([]domain.Bin, cfg.Count())
	for i := range bins {
		low := cfg.LowerBound + int64(i)*cfg.Width
		bins[i] = domain.Bin{Low: low, High: low + cfg.Width}
	}

	offset := floorDiv(cfg.LowerBound, cfg.Width)
	for _, v := range values {
		if math.IsNaN(v) || v < float64(cfg.LowerBound) || v >= float64(cfg.UpperBound) {
			return nil, &domain.DomainOverflowError{Value: v, Lower: cfg.LowerBound, Upper: cfg.UpperBound}
		}
		idx := int64(math.Floor(v/float64(cfg.Width))) - offset
		if idx < 0 || idx >= int64(len(bins)) {
			return nil, &domain.DomainOverflowError{Value: v, Lower: cfg.LowerBound, Upper: cfg.UpperBound}
		}
		bins[idx].Count++
	}
	return bins, nil
}

// TrimBins drops empty bins from both ends, stopping at the first non-empty
// bin on each side. All-empty input yields an empty slice.
func TrimBins(bins []domain.Bin) []domain.Bin {
	lo, hi := 0, len(bins)
	for lo < hi && bins[lo].Count == 0 {
		lo++
	}
	for hi > lo && bins[hi-1].Count == 0 {
		hi--
	}
	return append([]domain.Bin(nil), bins[lo:hi]...)
}

// sortedCopy returns values in ascending order without touching the input.
func sortedCopy(values []float64) []float64 {
	s := append([]float64(nil), values...)
	sort.Float64s(s)
	return s
}

// quantileSorted linearly interpolates between the order statistics bracketing
// position p/100*(n-1).
func quantileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	pos := p / 100 * float64(n-1)
	lo := int(math.Floor(pos))
	if lo < 0 {
		lo = 0
	}
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[lo+1]-sorted[lo])*frac
}

// Percentile returns the value at percentile p (0-100) of values.
func Percentile(values []float64, p float64) float64 {
	return quantileSorted(sortedCopy(values), p)
}

// Percentiles computes the value at every integer percentile 0-100.
func Percentiles(values []float64) domain.PercentileTable {
	var pt domain.PercentileTable
	sorted := sortedCopy(values)
	for p := 0; p < domain.PercentileCount; p++ {
		v := quantileSorted(sorted, float64(p))
		// interpolation rounding must not break monotonicity
		if p > 0 && v < pt[p-1] {
			v = pt[p-1]
		}
		pt[p] = v
	}
	return pt
}

// PercentileRank is the percentile-of-score of score within values, averaging
// the strict and weak ranks: (below + belowOrEqual) / 2 / n * 100.
func PercentileRank(values []float64, score float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	var below, atOrBelow int
	for _, v := range values {
		if v < score {
			below++
		}
		if v <= score {
			atOrBelow++
		}
	}
	return float64(below+atOrBelow) / 2 / float64(len(values)) * 100
}

// ThresholdProbability is the percentage of outcomes expected above threshold,
// 100 minus the threshold's percentile rank.
func ThresholdProbability(values []float64, threshold float64) float64 {
	return 100 - PercentileRank(values, threshold)
}

// NegativePct is the percentage of values below zero.
func NegativePct(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var neg int
	for _, v := range values {
		if v < 0 {
			neg++
		}
	}
	return float64(neg) / float64(len(values)) * 100
}

// ExceedanceCurve splits [min, max] of values into buckets equal-width buckets
// and reports, for each bucket's left edge, the fraction of values at or above it.
func ExceedanceCurve(values []float64, buckets int) []domain.ExceedancePoint {
	if len(values) == 0 || buckets <= 0 {
		return nil
	}
	lo, hi := floats.Min(values), floats.Max(values)
	step := (hi - lo) / float64(buckets)
	sorted := sortedCopy(values)
	n := float64(len(sorted))

	points := make([]domain.ExceedancePoint, buckets)
	for i := range points {
		edge := lo + step*float64(i)
		below := sort.SearchFloat64s(sorted, edge)
		points[i] = domain.ExceedancePoint{Edge: edge, Fraction: float64(len(sorted)-below) / n}
	}
	return points
}

// Summarize builds the report figures for an accepted run.
func Summarize(cfg domain.SimulationConfig, contribution float64, pt domain.PercentileTable, values []float64, report domain.ReportConfig) domain.Summary {
	s := domain.Summary{
		SimulationCount:   cfg.SimulationCount,
		HorizonYears:      cfg.HorizonYears,
		InitialValue:      money.Cents(cfg.InitialValue),
		Contribution:      money.Cents(contribution),
		ContributionRaise: money.Cents(contribution).Sub(money.Cents(cfg.PeriodicContribution)),
	}
	for _, p := range domain.SummaryPercentiles {
		s.Chances = append(s.Chances, domain.ChanceLine{
			Percentile: p,
			ChancePct:  100 - p,
			Value:      money.Dollars(pt.At(p)),
		})
	}
	if len(values) == 0 {
		return s
	}
	for _, threshold := range []float64{cfg.InitialValue, report.ReferenceAmount} {
		s.Thresholds = append(s.Thresholds, domain.ThresholdProbability{
			Threshold:   money.Cents(threshold),
			Probability: money.Cents(ThresholdProbability(values, threshold)),
		})
	}
	s.MeanTerminal = money.Cents(stat.Mean(values, nil))
	if len(values) > 1 {
		s.StdDevTerminal = money.Cents(stat.StdDev(values, nil))
	}
	return s
}
