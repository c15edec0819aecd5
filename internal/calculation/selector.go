package calculation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/rpgo/portfolio-sim/internal/domain"
)

// SelectPaths picks the worst, median and best simulations by terminal value.
// Worst and best are the first minimum and maximum. The median path is the one
// whose terminal value is closest to median (normally the interpolated 50th
// percentile, which need not equal any terminal value); ties go to the lower index.
func SelectPaths(terminals []float64, trajectories []domain.Trajectory, median float64) (domain.SelectedPaths, error) {
	if len(terminals) == 0 {
		return domain.SelectedPaths{}, fmt.Errorf("select paths: no terminal values")
	}
	if len(terminals) != len(trajectories) {
		return domain.SelectedPaths{}, fmt.Errorf("select paths: %d terminal values but %d trajectories", len(terminals), len(trajectories))
	}

	pick := func(i int) domain.SelectedPath {
		return domain.SelectedPath{Index: i, Terminal: terminals[i], Trajectory: trajectories[i]}
	}

	medianIdx := 0
	bestDist := math.Inf(1)
	for i, v := range terminals {
		if d := math.Abs(v - median); d < bestDist {
			bestDist = d
			medianIdx = i
		}
	}

	return domain.SelectedPaths{
		Worst:  pick(floats.MinIdx(terminals)),
		Median: pick(medianIdx),
		Best:   pick(floats.MaxIdx(terminals)),
	}, nil
}
