package calculation

import (
	"context"
	"fmt"

	"github.com/rpgo/portfolio-sim/internal/domain"
)

// RunOutcome is one complete generate, simulate and aggregate pass.
type RunOutcome struct {
	Contribution float64
	Paths        PathSet
	Percentiles  domain.PercentileTable
}

// RunFunc performs a pass with the given contribution. attempt is 0 for the
// first pass and increments on every retry.
type RunFunc func(contribution float64, attempt int) (RunOutcome, error)

// AdaptiveController raises the periodic contribution until the worst
// simulated outcome is no longer negative.
type AdaptiveController struct {
	Config domain.AdaptiveConfig
	Logger Logger
}

// Resolve runs passes until percentile 0 is non-negative, raising the
// contribution by Config.Increment after each ruinous pass. With the
// controller disabled the first pass is accepted as is. Exceeding
// Config.MaxAttempts returns a *domain.RuinError.
func (ac AdaptiveController) Resolve(ctx context.Context, initial float64, run RunFunc) (RunOutcome, []domain.Attempt, error) {
	log := orNop(ac.Logger)
	var attempts []domain.Attempt

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return RunOutcome{}, attempts, err
		}

		// multiply rather than accumulate so the raise stays an exact multiple
		contribution := initial + float64(attempt)*ac.Config.Increment
		out, err := run(contribution, attempt)
		if err != nil {
			return RunOutcome{}, attempts, fmt.Errorf("simulation attempt %d: %w", attempt+1, err)
		}
		out.Contribution = contribution

		p0 := out.Percentiles[0]
		negPct := NegativePct(out.Paths.TerminalValues)
		attempts = append(attempts, domain.Attempt{
			Contribution: contribution,
			Percentile0:  p0,
			NegativePct:  negPct,
		})

		if p0 >= 0 {
			if attempt > 0 {
				log.Infof("plan solvent after %d attempts with contribution %.2f", attempt+1, contribution)
			}
			return out, attempts, nil
		}
		if !ac.Config.Enabled {
			log.Warnf("%.2f%% of results are negative; adaptive contribution disabled", negPct)
			return out, attempts, nil
		}
		if attempt+1 >= ac.Config.MaxAttempts {
			return RunOutcome{}, attempts, &domain.RuinError{
				Attempts:         attempt + 1,
				LastContribution: contribution,
				Percentile0:      p0,
			}
		}
		log.Warnf("%.2f%% of results are negative; contribution changed to %.2f",
			negPct, initial+float64(attempt+1)*ac.Config.Increment)
	}
}
