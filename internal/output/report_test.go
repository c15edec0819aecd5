package output_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/portfolio-sim/internal/calculation"
	"github.com/rpgo/portfolio-sim/internal/config"
	"github.com/rpgo/portfolio-sim/internal/domain"
	"github.com/rpgo/portfolio-sim/internal/output"
)

func smallResult(t *testing.T, name string, mean float64) *domain.RunResult {
	t.Helper()
	cfg := domain.DefaultSimulationConfig()
	cfg.SimulationCount = 50
	cfg.AnnualReturnMeanPct = mean
	opts := domain.DefaultRunOptions()
	opts.Seed = domain.FixedSeed(99)
	result, err := calculation.NewMonteCarloSimulator(opts).RunSimulation(context.Background(), cfg)
	require.NoError(t, err)
	result.Name = name
	return result
}

func TestGenerateReport(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	calculation.SetNowFunc(func() time.Time { return fixed })
	defer calculation.SetNowFunc(time.Now)

	dir := t.TempDir()
	result := smallResult(t, "report", 7)

	paths, err := output.GenerateReport(result, "json", dir)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, filepath.Join(dir, "portfolio_report_report_20260102_030405.json"), paths[0])
	_, err = os.Stat(paths[0])
	assert.NoError(t, err)

	paths, err = output.GenerateReport(result, "all", dir)
	require.NoError(t, err)
	assert.Len(t, paths, 5)
	for _, p := range paths {
		_, err := os.Stat(p)
		assert.NoError(t, err, p)
	}

	_, err = output.GenerateReport(result, "pdf", dir)
	assert.ErrorIs(t, err, output.ErrUnsupportedFormat)
}

func TestGenerateReport_ScenariosInSameSecond(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	calculation.SetNowFunc(func() time.Time { return fixed })
	defer calculation.SetNowFunc(time.Now)

	dir := t.TempDir()
	for _, name := range []string{"accumulate", "Early Recession", ""} {
		_, err := output.GenerateReport(smallResult(t, name, 7), "all", dir)
		require.NoError(t, err)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 15)
	_, err = os.Stat(filepath.Join(dir, "portfolio_report_early_recession_20260102_030405.csv.csv"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "portfolio_report_20260102_030405.console.txt"))
	assert.NoError(t, err)
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.Render(&buf, smallResult(t, "render", 7), "percentiles"))
	assert.True(t, strings.HasPrefix(buf.String(), "Percentile,TerminalValue,ChanceAbove\n"))
}

func TestSaveConfiguration(t *testing.T) {
	cfg := &domain.Configuration{
		Options:   domain.DefaultRunOptions(),
		Scenarios: []domain.Scenario{{Name: "saved", Simulation: domain.DefaultSimulationConfig()}},
	}
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, output.SaveConfiguration(cfg, path))

	loaded, err := config.NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Options, loaded.Options)
	assert.Equal(t, cfg.Scenarios, loaded.Scenarios)
}

func TestFormatComparison(t *testing.T) {
	low := smallResult(t, "cautious", 4)
	high := smallResult(t, "growth", 8)

	rec := output.AnalyzeScenarios([]*domain.RunResult{low, high})
	assert.Equal(t, "growth", rec.ScenarioName)
	assert.True(t, rec.MedianGain.IsPositive())

	out := string(output.FormatComparison([]*domain.RunResult{low, high}))
	assert.Contains(t, out, "cautious")
	assert.Contains(t, out, "Recommended: growth")

	assert.Empty(t, output.AnalyzeScenarios(nil).ScenarioName)
}

func TestFormatDebtOutcomes(t *testing.T) {
	usual, err := calculation.CompareRepayment(domain.DefaultDebtOption())
	require.NoError(t, err)

	lump := domain.DefaultDebtOption()
	lump.Name = "withdraw liquid"
	lump.LumpWithdrawal = -lump.LiquidBalance
	withdraw, err := calculation.CompareRepayment(lump)
	require.NoError(t, err)

	out := string(output.FormatDebtOutcomes([]*calculation.DebtOutcome{usual, withdraw}))
	assert.Contains(t, out, "repay as usual")
	assert.Contains(t, out, "Payment per period:       $807.39")
	assert.Contains(t, out, "Net at retirement:")
	assert.Contains(t, out, "Best option:")
}
