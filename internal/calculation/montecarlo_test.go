package calculation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/portfolio-sim/internal/domain"
)

func testOptions(seed int64) domain.RunOptions {
	opts := domain.DefaultRunOptions()
	opts.Seed = domain.FixedSeed(seed)
	return opts
}

func TestMonteCarloSimulator(t *testing.T) {
	cfg := domain.DefaultSimulationConfig()
	cfg.SimulationCount = 500

	simulator := NewMonteCarloSimulator(testOptions(12345))
	result, err := simulator.RunSimulation(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, int64(12345), result.Seed)
	assert.Len(t, result.TerminalValues, cfg.SimulationCount)
	require.Len(t, result.Trajectories, cfg.SimulationCount)
	for _, traj := range result.Trajectories {
		assert.Len(t, traj, 22*12)
	}

	for p := 0; p < 100; p++ {
		assert.LessOrEqual(t, result.Percentiles[p], result.Percentiles[p+1])
	}

	require.NotEmpty(t, result.Bins)
	total := 0
	for _, b := range result.Bins {
		total += b.Count
	}
	assert.Equal(t, cfg.SimulationCount, total)

	assert.Equal(t, result.Percentiles[0], result.SelectedPaths.Worst.Terminal)
	assert.Equal(t, result.Percentiles[100], result.SelectedPaths.Best.Terminal)
	assert.Len(t, result.Exceedance, 25)

	// an accumulation plan this size is never ruined
	assert.Len(t, result.Attempts, 1)
	assert.Equal(t, cfg.PeriodicContribution, result.FinalContribution)
	assert.Len(t, result.Summary.Chances, 7)
	assert.Len(t, result.Summary.Thresholds, 2)
}

func TestMonteCarloSimulator_Reproducible(t *testing.T) {
	cfg := domain.DefaultSimulationConfig()
	cfg.SimulationCount = 100

	a, err := NewMonteCarloSimulator(testOptions(777)).RunSimulation(context.Background(), cfg)
	require.NoError(t, err)
	b, err := NewMonteCarloSimulator(testOptions(777)).RunSimulation(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, a.TerminalValues, b.TerminalValues)
	assert.Equal(t, a.Percentiles, b.Percentiles)
}

func TestMonteCarloSimulator_SeedProvider(t *testing.T) {
	orig := seedFunc
	SetSeedFunc(func() int64 { return 31337 })
	defer SetSeedFunc(orig)

	cfg := domain.DefaultSimulationConfig()
	cfg.SimulationCount = 10
	result, err := NewMonteCarloSimulator(domain.DefaultRunOptions()).RunSimulation(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, int64(31337), result.Seed)

	// zero is a valid pinned seed
	pinned, err := NewMonteCarloSimulator(testOptions(0)).RunSimulation(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pinned.Seed)
	again, err := NewMonteCarloSimulator(testOptions(0)).RunSimulation(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, pinned.TerminalValues, again.TerminalValues)
}

func TestMonteCarloSimulator_DeterministicGrowth(t *testing.T) {
	cfg := domain.SimulationConfig{
		InitialValue:          10000,
		PeriodicContribution:  100,
		PeriodsPerYear:        12,
		HorizonYears:          10,
		AnnualReturnMeanPct:   7,
		AnnualReturnStdDevPct: 0,
		SimulationCount:       5,
	}

	result, err := NewMonteCarloSimulator(testOptions(2024)).RunSimulation(context.Background(), cfg)
	require.NoError(t, err)

	want := make([]float64, 120)
	value := 10000.0
	for i := range want {
		value = value*(1+0.07/12) + 100
		want[i] = value
	}

	require.Len(t, result.Trajectories, 5)
	for _, traj := range result.Trajectories {
		assert.InDeltaSlice(t, want, []float64(traj), 1e-6)
		assert.Equal(t, []float64(result.Trajectories[0]), []float64(traj))
	}
	for p := 0; p <= 100; p++ {
		assert.InDelta(t, want[119], result.Percentiles[p], 1e-6)
	}
}

func TestMonteCarloSimulator_SingleSimulation(t *testing.T) {
	cfg := domain.DefaultSimulationConfig()
	cfg.SimulationCount = 1

	result, err := NewMonteCarloSimulator(testOptions(8)).RunSimulation(context.Background(), cfg)
	require.NoError(t, err)

	terminal := result.TerminalValues[0]
	for p := 0; p <= 100; p++ {
		assert.Equal(t, terminal, result.Percentiles[p])
	}
	sel := result.SelectedPaths
	assert.Equal(t, 0, sel.Worst.Index)
	assert.Equal(t, 0, sel.Median.Index)
	assert.Equal(t, 0, sel.Best.Index)
	require.Len(t, result.Bins, 1)
	assert.Equal(t, 1, result.Bins[0].Count)
}

func TestMonteCarloSimulator_AdaptiveWithdrawal(t *testing.T) {
	// 10,000 at a steady 7% supports withdrawals of about 116/month for ten
	// years; starting at 200 the controller must step to 100.
	cfg := domain.SimulationConfig{
		InitialValue:          10000,
		PeriodicContribution:  -200,
		PeriodsPerYear:        12,
		HorizonYears:          10,
		AnnualReturnMeanPct:   7,
		AnnualReturnStdDevPct: 0,
		SimulationCount:       20,
	}

	result, err := NewMonteCarloSimulator(testOptions(1)).RunSimulation(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, -100.0, result.FinalContribution)
	require.Len(t, result.Attempts, 2)
	assert.Less(t, result.Attempts[0].Percentile0, 0.0)
	assert.Equal(t, 100.0, result.Attempts[0].NegativePct)
	assert.GreaterOrEqual(t, result.Percentiles[0], 0.0)
	assert.Equal(t, "100", result.Summary.ContributionRaise.String())
}

func TestMonteCarloSimulator_AdaptiveStochastic(t *testing.T) {
	cfg := domain.SimulationConfig{
		InitialValue:          300000,
		PeriodicContribution:  -2500,
		PeriodsPerYear:        12,
		HorizonYears:          25,
		AnnualReturnMeanPct:   7,
		AnnualReturnStdDevPct: 11.4,
		SimulationCount:       300,
	}

	result, err := NewMonteCarloSimulator(testOptions(4242)).RunSimulation(context.Background(), cfg)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.Percentiles[0], 0.0)
	raise := (result.FinalContribution - cfg.PeriodicContribution) / 100
	assert.GreaterOrEqual(t, raise, 0.0)
	assert.Equal(t, float64(int(raise)), raise)
	assert.Len(t, result.Attempts, int(raise)+1)
}

func TestMonteCarloSimulator_RuinUnresolved(t *testing.T) {
	cfg := domain.SimulationConfig{
		InitialValue:          0,
		PeriodicContribution:  -100_000,
		PeriodsPerYear:        12,
		HorizonYears:          1,
		AnnualReturnMeanPct:   0,
		AnnualReturnStdDevPct: 0,
		SimulationCount:       3,
	}
	opts := testOptions(1)
	opts.Adaptive.MaxAttempts = 5

	_, err := NewMonteCarloSimulator(opts).RunSimulation(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRuinUnresolved))
}

func TestMonteCarloSimulator_InvalidConfiguration(t *testing.T) {
	valid := domain.DefaultSimulationConfig()

	tests := map[string]func(*domain.SimulationConfig){
		"zero periods":        func(c *domain.SimulationConfig) { c.PeriodsPerYear = 0 },
		"negative horizon":    func(c *domain.SimulationConfig) { c.HorizonYears = -1 },
		"zero simulations":    func(c *domain.SimulationConfig) { c.SimulationCount = 0 },
		"fractional periods":  func(c *domain.SimulationConfig) { c.HorizonYears = 1.01 },
		"negative volatility": func(c *domain.SimulationConfig) { c.AnnualReturnStdDevPct = -1 },
		"recession too long": func(c *domain.SimulationConfig) {
			c.Recession = &domain.RecessionWindow{StartPeriod: 200, Periods: 100, AnnualReturnPct: -20}
		},
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := valid
			mutate(&cfg)
			_, err := NewMonteCarloSimulator(testOptions(1)).RunSimulation(context.Background(), cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)

			var cfgErr *domain.ConfigError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestMonteCarloSimulator_DomainOverflow(t *testing.T) {
	cfg := domain.DefaultSimulationConfig()
	cfg.SimulationCount = 50
	opts := testOptions(3)
	opts.Bins = domain.BinConfig{LowerBound: 0, UpperBound: 100_000, Width: 50_000}

	_, err := NewMonteCarloSimulator(opts).RunSimulation(context.Background(), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDomainOverflow)
}

func TestMonteCarloSimulator_Recession(t *testing.T) {
	cfg := domain.DefaultSimulationConfig()
	cfg.SimulationCount = 200

	base, err := NewMonteCarloSimulator(testOptions(55)).RunSimulation(context.Background(), cfg)
	require.NoError(t, err)

	cfg.Recession = &domain.RecessionWindow{StartPeriod: 0, Periods: 24, AnnualReturnPct: -25}
	hit, err := NewMonteCarloSimulator(testOptions(55)).RunSimulation(context.Background(), cfg)
	require.NoError(t, err)

	assert.Less(t, hit.Percentiles[50], base.Percentiles[50])
}

func TestMonteCarloSimulator_SetLogger(t *testing.T) {
	simulator := NewMonteCarloSimulator(testOptions(1))
	simulator.SetLogger(nil)
	assert.IsType(t, NopLogger{}, simulator.Logger)

	logger := &recordingLogger{}
	simulator.SetLogger(logger)
	assert.Same(t, logger, simulator.Logger)
}
