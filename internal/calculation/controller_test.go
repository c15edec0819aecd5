package calculation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/portfolio-sim/internal/domain"
)

// linearRun fakes a pass whose worst outcome is contribution - breakEven.
func linearRun(breakEven float64, calls *int) RunFunc {
	return func(contribution float64, attempt int) (RunOutcome, error) {
		*calls++
		worst := contribution - breakEven
		values := []float64{worst, worst + 10, worst + 20}
		return RunOutcome{
			Paths:       PathSet{TerminalValues: values},
			Percentiles: Percentiles(values),
		}, nil
	}
}

type recordingLogger struct {
	NopLogger
	warnings []string
}

func (r *recordingLogger) Warnf(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func TestAdaptiveController_Converges(t *testing.T) {
	calls := 0
	logger := &recordingLogger{}
	ac := AdaptiveController{
		Config: domain.AdaptiveConfig{Enabled: true, Increment: 100, MaxAttempts: 50},
		Logger: logger,
	}

	out, attempts, err := ac.Resolve(context.Background(), 250, linearRun(1000, &calls))
	require.NoError(t, err)

	assert.Equal(t, 1050.0, out.Contribution)
	assert.GreaterOrEqual(t, out.Percentiles[0], 0.0)
	assert.Len(t, attempts, 9)
	assert.Equal(t, 9, calls)
	assert.Len(t, logger.warnings, 8)

	raise := (out.Contribution - 250) / 100
	assert.Equal(t, math.Trunc(raise), raise, "raise must be a whole number of increments")
	for i, a := range attempts {
		assert.Equal(t, 250+float64(i)*100, a.Contribution)
	}
	assert.Equal(t, 100.0, attempts[0].NegativePct)
	assert.Equal(t, 0.0, attempts[len(attempts)-1].NegativePct)
}

func TestAdaptiveController_NoRuinSingleAttempt(t *testing.T) {
	calls := 0
	ac := AdaptiveController{Config: domain.AdaptiveConfig{Enabled: true, Increment: 100, MaxAttempts: 5}}

	out, attempts, err := ac.Resolve(context.Background(), 500, linearRun(0, &calls))
	require.NoError(t, err)
	assert.Equal(t, 500.0, out.Contribution)
	assert.Len(t, attempts, 1)
	assert.Equal(t, 1, calls)
}

func TestAdaptiveController_AttemptCap(t *testing.T) {
	calls := 0
	ac := AdaptiveController{Config: domain.AdaptiveConfig{Enabled: true, Increment: 100, MaxAttempts: 3}}

	_, attempts, err := ac.Resolve(context.Background(), 0, linearRun(10_000, &calls))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRuinUnresolved))

	var ruin *domain.RuinError
	require.True(t, errors.As(err, &ruin))
	assert.Equal(t, 3, ruin.Attempts)
	assert.Equal(t, 200.0, ruin.LastContribution)
	assert.Less(t, ruin.Percentile0, 0.0)
	assert.Len(t, attempts, 3)
	assert.Equal(t, 3, calls)
}

func TestAdaptiveController_Disabled(t *testing.T) {
	calls := 0
	ac := AdaptiveController{Config: domain.AdaptiveConfig{Enabled: false}}

	out, attempts, err := ac.Resolve(context.Background(), 0, linearRun(10_000, &calls))
	require.NoError(t, err)
	assert.Less(t, out.Percentiles[0], 0.0)
	assert.Len(t, attempts, 1)
}

func TestAdaptiveController_RunError(t *testing.T) {
	boom := errors.New("boom")
	ac := AdaptiveController{Config: domain.AdaptiveConfig{Enabled: true, Increment: 100, MaxAttempts: 3}}

	_, _, err := ac.Resolve(context.Background(), 0, func(float64, int) (RunOutcome, error) {
		return RunOutcome{}, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestAdaptiveController_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	ac := AdaptiveController{Config: domain.AdaptiveConfig{Enabled: true, Increment: 100, MaxAttempts: 3}}
	_, _, err := ac.Resolve(ctx, 0, linearRun(0, &calls))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}
