// Package optim drives black-box minimization of a scalar objective such
// as dive.DepthWrapper.
package optim

import "math"

// Objective maps a point to a cost to be minimized.
type Objective func(x []float64) float64

type Result struct {
	X         []float64
	F         float64
	Iter      int
	Evals     int
	Converged bool
}

// counted wraps f and counts its calls. NaN costs are treated as +Inf so
// that they always lose comparisons.
func counted(f Objective, n *int) Objective {
	return func(x []float64) float64 {
		*n++
		v := f(x)
		if math.IsNaN(v) {
			return math.Inf(1)
		}
		return v
	}
}
