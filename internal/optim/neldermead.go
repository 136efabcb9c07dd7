package optim

import (
	"context"
	"errors"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// NelderMead runs gonum's downhill simplex with the standard reflection,
// expansion, contraction and shrink coefficients.
type NelderMead struct {
	MaxIter int
	// Tol stops the search once the best cost has not improved by more
	// than Tol for Stall consecutive iterations.
	Tol   float64
	Stall int
	// Step is the edge length of the initial simplex.
	Step float64
	// OnIter, if set, is called with the best point so far after every
	// iteration.
	OnIter func(iter int, x []float64, f float64)
}

func NewNelderMead(maxIter int, tol float64) *NelderMead {
	return &NelderMead{
		MaxIter: maxIter,
		Tol:     tol,
		Stall:   100,
		Step:    0.05,
	}
}

// recorder follows the best point seen and stops the search when ctx ends.
type recorder struct {
	ctx    context.Context
	onIter func(iter int, x []float64, f float64)
	best   optimize.Location
	seen   bool
}

func (r *recorder) Init() error { return nil }

func (r *recorder) Record(loc *optimize.Location, op optimize.Operation, stats *optimize.Stats) error {
	if op&(optimize.InitIteration|optimize.MajorIteration) != 0 && loc.X != nil {
		if !r.seen || loc.F < r.best.F {
			r.best.X = clone(loc.X)
			r.best.F = loc.F
			r.seen = true
		}
		if op&optimize.MajorIteration != 0 && r.onIter != nil {
			r.onIter(stats.MajorIterations, r.best.X, r.best.F)
		}
	}
	return r.ctx.Err()
}

// Minimize searches from x0. It returns ctx.Err() together with the best
// point so far if the context ends first.
func (nm *NelderMead) Minimize(ctx context.Context, f Objective, x0 []float64) (Result, error) {
	if len(x0) == 0 {
		return Result{}, errors.New("optim: empty starting point")
	}

	evals := 0
	obj := counted(f, &evals)
	if err := ctx.Err(); err != nil {
		return Result{X: clone(x0), F: obj(x0), Evals: evals}, err
	}

	rec := &recorder{ctx: ctx, onIter: nm.OnIter}
	settings := &optimize.Settings{
		MajorIterations: nm.MaxIter,
		Converger: &optimize.FunctionConverge{
			Absolute:   nm.Tol,
			Iterations: max(nm.Stall, 1),
		},
		Recorder: rec,
	}
	method := &optimize.NelderMead{SimplexSize: nm.Step}

	res, err := optimize.Minimize(optimize.Problem{Func: obj}, x0, settings, method)

	out := Result{Evals: evals, F: math.Inf(1)}
	if rec.seen {
		out.X, out.F = rec.best.X, rec.best.F
	}
	if res != nil {
		out.Iter = res.MajorIterations
		if res.X != nil && (out.X == nil || res.F <= out.F) {
			out.X, out.F = clone(res.X), res.F
		}
		out.Converged = res.Status == optimize.FunctionConvergence || res.Status == optimize.MethodConverge
	}
	if out.X == nil {
		out.X = clone(x0)
		out.F = obj(x0)
		out.Evals = evals
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		out.Converged = false
		return out, ctxErr
	}
	if err != nil {
		return out, err
	}
	return out, nil
}

func clone(x []float64) []float64 {
	c := make([]float64, len(x))
	copy(c, x)
	return c
}
