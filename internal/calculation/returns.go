package calculation

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/rpgo/portfolio-sim/internal/domain"
)

// ReturnMatrix holds one row per simulation and one per-period fractional
// return per column.
type ReturnMatrix [][]float64

// ReturnGenerator draws return matrices for a plan.
type ReturnGenerator struct {
	Seed    int64
	Workers int
}

// Generate draws SimulationCount x PeriodCount independent returns from
// N(mean/100, stddev/100) and divides each draw by PeriodsPerYear. The division
// scales the annual volatility linearly rather than by sqrt(periods); existing
// projections depend on that, so keep it.
//
// attempt selects an independent stream for each adaptive retry.
func (g ReturnGenerator) Generate(cfg domain.SimulationConfig, attempt int) ReturnMatrix {
	periods := cfg.PeriodCount()
	perYear := float64(cfg.PeriodsPerYear)
	m := make(ReturnMatrix, cfg.SimulationCount)

	forEachRow(cfg.SimulationCount, g.Workers, func(row int) {
		dist := distuv.Normal{
			Mu:    cfg.AnnualReturnMeanPct / 100,
			Sigma: cfg.AnnualReturnStdDevPct / 100,
			Src:   rowSource(g.Seed, attempt, row),
		}
		r := make([]float64, periods)
		for j := range r {
			r[j] = dist.Rand() / perYear
		}
		m[row] = r
	})

	if cfg.Recession != nil {
		ApplyRecession(m, *cfg.Recession, cfg.PeriodsPerYear)
	}
	return m
}

// ApplyRecession overwrites the window's periods in every row with the
// recession's fixed annual return, periodized the same way as sampled draws.
// Periods past the end of a row are ignored.
func ApplyRecession(m ReturnMatrix, w domain.RecessionWindow, periodsPerYear int) {
	shock := w.AnnualReturnPct / 100 / float64(periodsPerYear)
	for _, row := range m {
		for j := w.StartPeriod; j < w.StartPeriod+w.Periods && j < len(row); j++ {
			if j < 0 {
				continue
			}
			row[j] = shock
		}
	}
}
