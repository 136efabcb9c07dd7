package dive

import (
	"fmt"
	"io"
	"math"

	"github.com/san-kum/eggdive/internal/dynamo"
	"github.com/san-kum/eggdive/internal/integrators"
	"github.com/sirupsen/logrus"
)

var discard = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

// Evaluator scores designs. The zero value uses the Leapfrog scheme and
// logs nothing.
type Evaluator struct {
	Log     logrus.FieldLogger
	Stepper integrators.Stepper
}

func New(log logrus.FieldLogger) *Evaluator {
	return &Evaluator{Log: log, Stepper: integrators.NewLeapfrog()}
}

func (e *Evaluator) logger() logrus.FieldLogger {
	if e.Log == nil {
		return discard
	}
	return e.Log
}

func (e *Evaluator) stepper() integrators.Stepper {
	if e.Stepper == nil {
		return integrators.NewLeapfrog()
	}
	return e.Stepper
}

// Simulate runs the dive and returns the deepest position minus the egg
// height. Errors are returned unchanged.
func (e *Evaluator) Simulate(p Params, env Environment) (float64, error) {
	body, err := integrators.NewBody(p.Shape(), env.Fluid)
	if err != nil {
		return 0, err
	}

	maxY := math.Inf(-1)
	err = integrators.Run(e.stepper(), body, env.Step, func(s dynamo.Sample) bool {
		if s.Y > maxY {
			maxY = s.Y
		}
		return true
	})
	if err != nil {
		return 0, err
	}
	return maxY - p.Height, nil
}

// Evaluate is DiveDepth with the absorbed error returned alongside the
// zero score.
func (e *Evaluator) Evaluate(p Params, env Environment) (float64, error) {
	p.GrooveCount = math.Trunc(p.GrooveCount)

	if err := CheckBounds(p, env); err != nil {
		e.logger().WithFields(fields(p)).WithError(err).Debug("parameters rejected")
		return 0, err
	}

	depth, err := e.Simulate(p, env)
	if err != nil {
		e.logger().WithFields(fields(p)).WithError(err).Debug("simulation failed")
		return 0, err
	}
	if math.IsNaN(depth) || math.IsInf(depth, 0) {
		e.logger().WithFields(fields(p)).WithField("depth", depth).Debug("non-finite depth")
		return 0, fmt.Errorf("%w: depth is %v", dynamo.ErrDegenerate, depth)
	}
	return depth, nil
}

// DiveDepth returns the depth reached by p, or 0 if p is out of bounds or
// the simulation fails.
func (e *Evaluator) DiveDepth(p Params, env Environment) float64 {
	depth, _ := e.Evaluate(p, env)
	return depth
}

// DepthWrapper scores a flat parameter vector and negates the result.
func (e *Evaluator) DepthWrapper(vec []float64, env Environment) float64 {
	p, err := ParamsFromVector(vec)
	if err != nil {
		e.logger().WithError(err).Debug("malformed parameter vector")
		return 0
	}
	return -e.DiveDepth(p, env)
}

// EvaluateBatch scores independent vectors concurrently. out[i] is
// DiveDepth of vectors[i], not negated.
func (e *Evaluator) EvaluateBatch(vectors [][]float64, env Environment) []float64 {
	out := make([]float64, len(vectors))
	dynamo.ParallelFor(len(vectors), 1, func(start, end int) {
		for i := start; i < end; i++ {
			p, err := ParamsFromVector(vectors[i])
			if err != nil {
				continue
			}
			out[i] = e.DiveDepth(p, env)
		}
	})
	return out
}

func fields(p Params) logrus.Fields {
	return logrus.Fields{
		"height": p.Height,
		"width":  p.Width,
		"n":      p.GrooveCount,
	}
}

var defaultEvaluator = &Evaluator{}

func DiveDepth(p Params, env Environment) float64 {
	return defaultEvaluator.DiveDepth(p, env)
}

func DepthWrapper(vec []float64, env Environment) float64 {
	return defaultEvaluator.DepthWrapper(vec, env)
}

func EvaluateBatch(vectors [][]float64, env Environment) []float64 {
	return defaultEvaluator.EvaluateBatch(vectors, env)
}
