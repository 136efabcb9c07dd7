package dive

import (
	"math"

	"github.com/san-kum/eggdive/internal/dynamo"
)

// Bound is a closed interval check on one named parameter.
type Bound struct {
	Name     string
	Value    float64
	Min, Max float64
}

func (b Bound) OK() bool {
	return b.Value >= b.Min && b.Value <= b.Max
}

// Bounds lists the closed-interval checks applied to p in a fixed order.
// The groove-depth limit is half the groove depth itself, which only
// admits zero; it is kept as is until a real limit is specified.
// fluid_density never fails first: egg_density already requires a fluid
// density of at least 160.
func Bounds(p Params, env Environment) []Bound {
	n := math.Trunc(p.GrooveCount)

	angleMax := 0.0
	if n > 1 {
		angleMax = dynamo.Tau / n
	}
	depthMax := 0.0
	if p.GrooveAngle > 0 {
		depthMax = p.GrooveDepth / 2
	}

	inf := math.Inf(1)
	f := env.Fluid
	return []Bound{
		{"height", p.Height, 0.05, 0.6},
		{"width", p.Width, 0.05, 0.6},
		{"groove_angle", p.GrooveAngle, 0, angleMax},
		{"groove_count", n, 0, 20},
		{"egg_density", p.EggDensity, 160, f.Density},
		{"groove_depth", p.GrooveDepth, 0, depthMax},
		{"drag", f.Drag, 0, 1},
		{"fluid_density", f.Density, 0, inf},
		{"surface_tension", f.SurfaceTension, 0, inf},
		{"contact_angle", f.ContactAngle, 0, dynamo.Tau / 2},
	}
}

// CheckBounds returns the first violated bound as a *dynamo.BoundsError.
// dt and total time must be strictly positive.
func CheckBounds(p Params, env Environment) error {
	for _, b := range Bounds(p, env) {
		if !b.OK() {
			return &dynamo.BoundsError{Name: b.Name, Value: b.Value, Min: b.Min, Max: b.Max}
		}
	}
	return env.Step.Validate()
}
