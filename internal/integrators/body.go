package integrators

import (
	"math"

	"github.com/san-kum/eggdive/internal/dynamo"
	"github.com/san-kum/eggdive/internal/physics"
)

// Body is an egg of fixed mass diving into a fluid.
type Body struct {
	Shape physics.Shape
	Fluid physics.Fluid
	Mass  float64
}

// NewBody coerces the groove count to a positive integer and computes the
// mass once for the whole run.
func NewBody(shape physics.Shape, fluid physics.Fluid) (*Body, error) {
	shape = shape.Normalized()
	mass := shape.Mass()
	if !(mass > 0) || math.IsInf(mass, 0) {
		return nil, &dynamo.BoundsError{Name: "mass", Value: mass, Min: 0, Max: math.Inf(1)}
	}
	return &Body{Shape: shape, Fluid: fluid, Mass: mass}, nil
}

// Initial is the state every run starts from: at rest, submerged to the
// widest cross-section.
func (b *Body) Initial() dynamo.Sample {
	return dynamo.Sample{T: 0, Y: dynamo.MaxSubmersionY(b.Shape.Height), V: 0}
}

func (b *Body) Accel(y, v float64) (float64, error) {
	return physics.NetAcceleration(b.Shape, b.Fluid, b.Mass, y, v)
}

// Stepper advances a body by one timestep.
type Stepper interface {
	Step(b *Body, cur dynamo.Sample, dt float64) (dynamo.Sample, error)
}
