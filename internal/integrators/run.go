package integrators

import (
	"fmt"

	"github.com/san-kum/eggdive/internal/dynamo"
	"github.com/san-kum/eggdive/internal/physics"
)

// Run steps the body from its initial state and hands every sample, the
// initial one included, to fn. It stops after cfg.StepCount() samples or
// as soon as fn returns false.
func Run(st Stepper, b *Body, cfg dynamo.StepConfig, fn func(dynamo.Sample) bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	steps := cfg.StepCount()
	cur := b.Initial()
	if !fn(cur) {
		return nil
	}

	for i := 1; i < steps; i++ {
		next, err := st.Step(b, cur, cfg.Dt)
		if err != nil {
			return &dynamo.SimulationError{Step: i, Time: cur.T, Sample: cur, Wrapped: err}
		}
		cur = next
		if !fn(cur) {
			return nil
		}
	}
	return nil
}

// IntegrateWith runs st to completion and returns the whole trajectory.
func IntegrateWith(st Stepper, shape physics.Shape, fluid physics.Fluid, cfg dynamo.StepConfig) (dynamo.Trajectory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b, err := NewBody(shape, fluid)
	if err != nil {
		return nil, err
	}

	tr := make(dynamo.Trajectory, 0, cfg.StepCount())
	err = Run(st, b, cfg, func(s dynamo.Sample) bool {
		tr = append(tr, s)
		return true
	})
	if err != nil {
		return tr, err
	}
	return tr, nil
}

// Integrate runs the Leapfrog scheme.
func Integrate(shape physics.Shape, fluid physics.Fluid, cfg dynamo.StepConfig) (dynamo.Trajectory, error) {
	return IntegrateWith(NewLeapfrog(), shape, fluid, cfg)
}

// Registry maps stepper names to constructors.
var Registry = map[string]func() Stepper{
	"leapfrog": func() Stepper { return NewLeapfrog() },
	"verlet":   func() Stepper { return NewVerlet() },
}

func Get(name string) (Stepper, error) {
	fn, ok := Registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}
