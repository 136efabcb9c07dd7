package optim

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// MultiStart runs one Nelder–Mead search per starting point with at most
// parallel searches in flight. results[i] belongs to starts[i]. The
// objective must be safe for concurrent use.
func MultiStart(ctx context.Context, nm NelderMead, f Objective, starts [][]float64, parallel int, log logrus.FieldLogger) ([]Result, error) {
	results := make([]Result, len(starts))

	g, ctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}

	for i, x0 := range starts {
		i, x0 := i, x0
		g.Go(func() error {
			entry := log.WithField("start", i)
			entry.WithField("x0", x0).Debug("starting search")

			local := nm
			if nm.OnIter == nil {
				local.OnIter = func(iter int, x []float64, fx float64) {
					if iter%1000 == 0 {
						entry.WithFields(logrus.Fields{"iter": iter, "f": fx}).Debug("progress")
					}
				}
			}

			res, err := local.Minimize(ctx, f, x0)
			results[i] = res
			if err != nil {
				return err
			}

			entry.WithFields(logrus.Fields{
				"f":         res.F,
				"iter":      res.Iter,
				"evals":     res.Evals,
				"converged": res.Converged,
			}).Info("search finished")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// Best returns the index of the lowest cost result, or -1.
func Best(results []Result) int {
	best := -1
	for i, r := range results {
		if r.X == nil {
			continue
		}
		if best < 0 || r.F < results[best].F {
			best = i
		}
	}
	return best
}
