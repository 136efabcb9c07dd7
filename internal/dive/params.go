package dive

import (
	"fmt"
	"math"

	"github.com/san-kum/eggdive/internal/dynamo"
	"github.com/san-kum/eggdive/internal/physics"
)

// VectorLen is the length of a flat parameter vector.
const VectorLen = 6

// Scale is the per-component size of a parameter vector; initial guesses
// and optimizer coordinates are expressed as fractions of it.
var Scale = [VectorLen]float64{0.6, 0.6, dynamo.Tau / 2, 20, 1000, 0.3}

// Params is the part of a design an optimizer is free to vary. GrooveCount
// is kept as a float so that any optimizer coordinate is representable; it
// is truncated before use.
type Params struct {
	Height      float64
	Width       float64
	GrooveAngle float64
	GrooveCount float64
	EggDensity  float64
	GrooveDepth float64
}

// Environment is everything held fixed across an optimization.
type Environment struct {
	Fluid physics.Fluid
	Step  dynamo.StepConfig
}

func DefaultEnvironment() Environment {
	return Environment{
		Fluid: physics.NewWater(),
		Step:  dynamo.DefaultStepConfig(),
	}
}

func ParamsFromVector(vec []float64) (Params, error) {
	if len(vec) != VectorLen {
		return Params{}, fmt.Errorf("%w: expected %d parameters, got %d", dynamo.ErrConfigInvalid, VectorLen, len(vec))
	}
	return Params{
		Height:      vec[0],
		Width:       vec[1],
		GrooveAngle: vec[2],
		GrooveCount: vec[3],
		EggDensity:  vec[4],
		GrooveDepth: vec[5],
	}, nil
}

func (p Params) Vector() []float64 {
	return []float64{p.Height, p.Width, p.GrooveAngle, p.GrooveCount, p.EggDensity, p.GrooveDepth}
}

// Shape converts to the geometry model, truncating the groove count.
func (p Params) Shape() physics.Shape {
	return physics.NewShape(p.Height, p.Width, p.GrooveAngle, int(math.Trunc(p.GrooveCount)), p.GrooveDepth, p.EggDensity)
}

// Scaled multiplies a normalized vector by Scale.
func Scaled(norm []float64) []float64 {
	out := make([]float64, len(norm))
	for i, v := range norm {
		if i < VectorLen {
			v *= Scale[i]
		}
		out[i] = v
	}
	return out
}

// Normalized divides a physical vector by Scale.
func Normalized(vec []float64) []float64 {
	out := make([]float64, len(vec))
	for i, v := range vec {
		if i < VectorLen {
			v /= Scale[i]
		}
		out[i] = v
	}
	return out
}
