package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/rpgo/portfolio-sim/internal/domain"
)

func returnConfig() domain.SimulationConfig {
	return domain.SimulationConfig{
		InitialValue:          10000,
		PeriodicContribution:  100,
		PeriodsPerYear:        12,
		HorizonYears:          10,
		AnnualReturnMeanPct:   7,
		AnnualReturnStdDevPct: 11.4,
		SimulationCount:       200,
	}
}

func TestReturnGenerator_Shape(t *testing.T) {
	cfg := returnConfig()
	m := ReturnGenerator{Seed: 42}.Generate(cfg, 0)

	require.Len(t, m, cfg.SimulationCount)
	for _, row := range m {
		assert.Len(t, row, 120)
	}
}

func TestReturnGenerator_Distribution(t *testing.T) {
	cfg := returnConfig()
	cfg.SimulationCount = 400
	m := ReturnGenerator{Seed: 7}.Generate(cfg, 0)

	var all []float64
	for _, row := range m {
		all = append(all, row...)
	}
	// draws are N(0.07, 0.114) scaled by 1/12
	assert.InDelta(t, 0.07/12, stat.Mean(all, nil), 0.0005)
	assert.InDelta(t, 0.114/12, stat.StdDev(all, nil), 0.0005)
}

func TestReturnGenerator_ZeroStdDev(t *testing.T) {
	cfg := returnConfig()
	cfg.AnnualReturnStdDevPct = 0
	m := ReturnGenerator{Seed: 1}.Generate(cfg, 0)

	want := 7.0 / 100 / 12
	for _, row := range m {
		for _, r := range row {
			assert.Equal(t, want, r)
		}
	}
}

func TestReturnGenerator_Deterministic(t *testing.T) {
	cfg := returnConfig()

	a := ReturnGenerator{Seed: 99, Workers: 1}.Generate(cfg, 0)
	b := ReturnGenerator{Seed: 99, Workers: 8}.Generate(cfg, 0)
	assert.Equal(t, a, b, "worker count must not change the draws")

	c := ReturnGenerator{Seed: 99}.Generate(cfg, 1)
	assert.NotEqual(t, a[0], c[0], "each attempt draws a fresh matrix")

	assert.NotEqual(t, a[0], a[1], "rows are independent")
}

func TestReturnGenerator_Recession(t *testing.T) {
	cfg := returnConfig()
	cfg.Recession = &domain.RecessionWindow{StartPeriod: 12, Periods: 6, AnnualReturnPct: -30}
	m := ReturnGenerator{Seed: 3}.Generate(cfg, 0)

	shock := -30.0 / 100 / 12
	for _, row := range m {
		for j := 12; j < 18; j++ {
			assert.Equal(t, shock, row[j])
		}
		assert.NotEqual(t, shock, row[11])
		assert.NotEqual(t, shock, row[18])
	}
}

func TestApplyRecession_ClipsToRow(t *testing.T) {
	m := ReturnMatrix{{0.1, 0.1, 0.1}}
	ApplyRecession(m, domain.RecessionWindow{StartPeriod: 2, Periods: 10, AnnualReturnPct: -12}, 12)
	assert.Equal(t, 0.1, m[0][1])
	assert.InDelta(t, -0.01, m[0][2], 1e-15)
}
