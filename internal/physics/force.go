package physics

import (
	"math"

	"github.com/san-kum/eggdive/internal/dynamo"
)

// Fluid holds the properties of the liquid the egg dives into.
type Fluid struct {
	Drag           float64 // drag coefficient Cd
	Density        float64 // kg/m³
	SurfaceTension float64 // N/m
	ContactAngle   float64 // rad
}

// NewWater returns clean water at room temperature with a 0.5 drag
// coefficient.
func NewWater() Fluid {
	return Fluid{
		Drag:           0.5,
		Density:        1000,
		SurfaceTension: 0.0728,
		ContactAngle:   dynamo.Tau / 20,
	}
}

// DragForce is the magnitude of the quadratic drag at velocity v.
func DragForce(s Shape, f Fluid, v float64) float64 {
	return 0.5 * f.Drag * s.FrontalArea() * f.Density * v * v
}

// CapillaryForce is the surface tension pull along the meniscus at y. It
// vanishes once the egg is past its top, y > Height.
func CapillaryForce(s Shape, f Fluid, y float64) (float64, error) {
	if y > s.Height {
		return 0, nil
	}
	slope, err := s.Slope(y)
	if err != nil {
		return 0, err
	}
	p, err := s.Perimeter(y)
	if err != nil {
		return 0, err
	}
	return p * math.Cos(f.ContactAngle+math.Atan(slope)) * f.SurfaceTension, nil
}

// NetAcceleration returns dv/dt at position y and velocity v. Drag always
// enters with a negative sign.
func NetAcceleration(s Shape, f Fluid, mass, y, v float64) (float64, error) {
	if !(mass > 0) || math.IsInf(mass, 0) {
		return 0, &dynamo.BoundsError{Name: "mass", Value: mass, Min: 0, Max: math.Inf(1)}
	}
	capillary, err := CapillaryForce(s, f, y)
	if err != nil {
		return 0, err
	}
	return (-DragForce(s, f, v) + capillary) / mass, nil
}
