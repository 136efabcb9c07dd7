package optim

import (
	"context"
	"fmt"
	"math"
)

// GridSearch evaluates every combination of the given values for a subset
// of coordinates, holding the remaining coordinates of a base point fixed.
type GridSearch struct {
	indices []int
	ranges  [][]float64
}

func NewGridSearch(indices []int, ranges [][]float64) (*GridSearch, error) {
	if len(indices) != len(ranges) {
		return nil, fmt.Errorf("optim: %d indices but %d ranges", len(indices), len(ranges))
	}
	return &GridSearch{indices: indices, ranges: ranges}, nil
}

// Linspace returns n evenly spaced values over [lo, hi].
func Linspace(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	out[n-1] = hi
	return out
}

func (g *GridSearch) Search(ctx context.Context, f Objective, base []float64) (Result, error) {
	for _, idx := range g.indices {
		if idx < 0 || idx >= len(base) {
			return Result{}, fmt.Errorf("optim: index %d out of range", idx)
		}
	}

	best := Result{F: math.Inf(1)}
	evals := 0
	err := g.searchRecursive(ctx, 0, clone(base), counted(f, &evals), &best)
	best.Evals = evals
	best.Iter = evals
	best.Converged = err == nil
	return best, err
}

func (g *GridSearch) searchRecursive(ctx context.Context, depth int, current []float64, f Objective, best *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.indices) {
		val := f(current)
		if best.X == nil || val < best.F {
			best.F = val
			best.X = clone(current)
		}
		return nil
	}

	idx := g.indices[depth]
	for _, val := range g.ranges[depth] {
		current[idx] = val
		if err := g.searchRecursive(ctx, depth+1, current, f, best); err != nil {
			return err
		}
	}
	return nil
}
