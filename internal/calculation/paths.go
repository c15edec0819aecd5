package calculation

import "github.com/rpgo/portfolio-sim/internal/domain"

// PathSet is the output of the path simulator.
type PathSet struct {
	Trajectories   []domain.Trajectory
	TerminalValues []float64
}

// SimulatePaths compounds every row of returns in period order:
//
//	value[t] = value[t-1] * (1 + return[t]) + contribution
//
// starting from initial. Rows are independent and may run concurrently; the
// returns matrix is left untouched.
func SimulatePaths(initial, contribution float64, returns ReturnMatrix, workers int) PathSet {
	ps := PathSet{
		Trajectories:   make([]domain.Trajectory, len(returns)),
		TerminalValues: make([]float64, len(returns)),
	}

	forEachRow(len(returns), workers, func(row int) {
		rates := returns[row]
		traj := make(domain.Trajectory, len(rates))
		value := initial
		for t, r := range rates {
			value = value*(1+r) + contribution
			traj[t] = value
		}
		ps.Trajectories[row] = traj
		if len(traj) > 0 {
			ps.TerminalValues[row] = traj[len(traj)-1]
		} else {
			ps.TerminalValues[row] = initial
		}
	})

	return ps
}
