package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/eggdive/internal/dynamo"
)

// A0 normalizes the cubic profile s(1-s)(1-s/2) so that the half-width at
// the widest point is exactly half the egg width.
const A0 = 1 / (4 * dynamo.WidestRatio * (1 - dynamo.WidestRatio) * (1 - dynamo.WidestRatio/2))

// DefaultSlices is the quadrature resolution used for the egg volume.
const DefaultSlices = 100

// Shape describes a grooved egg. Lengths are in meters, angles in radians
// and density in kg/m³.
type Shape struct {
	Height      float64
	Width       float64
	GrooveAngle float64
	GrooveCount int
	GrooveDepth float64
	Density     float64
}

func NewShape(height, width, grooveAngle float64, grooveCount int, grooveDepth, density float64) Shape {
	return Shape{
		Height:      height,
		Width:       width,
		GrooveAngle: grooveAngle,
		GrooveCount: grooveCount,
		GrooveDepth: grooveDepth,
		Density:     density,
	}
}

// Normalized returns a copy with at least one groove.
func (s Shape) Normalized() Shape {
	if s.GrooveCount < 1 {
		s.GrooveCount = 1
	}
	return s
}

// Contains reports whether y lies in the geometry domain [MaxSubmersionY, Height].
func (s Shape) Contains(y float64) bool {
	return y >= dynamo.MaxSubmersionY(s.Height) && y <= s.Height
}

func (s Shape) checkDomain(op string, y float64) error {
	if !s.Contains(y) {
		return &dynamo.DomainError{Op: op, Y: y, Min: dynamo.MaxSubmersionY(s.Height), Max: s.Height}
	}
	return nil
}

// profile evaluates the unnormalized cubic s(1-s)(1-s/2) at s = y/h.
func (s Shape) profile(y float64) float64 {
	r := y / s.Height
	return r * (1 - r) * (1 - r/2)
}

func (s Shape) halfWidth(y float64) float64 {
	return s.Width * math.Sqrt(math.Max(0, A0*s.profile(y)))
}

// HalfWidth returns the radius of the egg cross-section at height y.
func (s Shape) HalfWidth(y float64) (float64, error) {
	if err := s.checkDomain("half-width", y); err != nil {
		return 0, err
	}
	return s.halfWidth(y), nil
}

// GrooveProfile returns the radius at the groove bottom. A groove deeper
// than the shell is floored at the axis.
func (s Shape) GrooveProfile(y float64) (float64, error) {
	hw, err := s.HalfWidth(y)
	if err != nil {
		return 0, err
	}
	return math.Max(0, hw-s.GrooveDepth), nil
}

// Slope returns d(HalfWidth)/dy. It is zero at the widest point and
// diverges at the top of the egg.
func (s Shape) Slope(y float64) (float64, error) {
	hw, err := s.HalfWidth(y)
	if err != nil {
		return 0, err
	}
	r := y / s.Height
	return s.Width * s.Width * A0 / (2 * s.Height * hw) * (1.5*r*r - 3*r + 1), nil
}

// CrossSectionArea is the area of the horizontal slice at y. It is defined
// over the whole egg, [0, Height].
func (s Shape) CrossSectionArea(y float64) float64 {
	w2 := s.Width * s.Width
	if y < dynamo.MaxSubmersionY(s.Height) {
		return dynamo.Tau / 8 * w2
	}

	area := w2 / 8 * (dynamo.Tau - float64(s.GrooveCount)*s.GrooveAngle)
	if s.GrooveDepth > 0 {
		chord := math.Sqrt(w2 / 8 * (1 - math.Cos(s.GrooveAngle)))
		area += chord * (s.Width/2 - s.GrooveDepth)
	}
	return area
}

// Volume integrates CrossSectionArea over [0, Height] with the rectangle
// rule on the given number of slices.
func (s Shape) Volume(slices int) float64 {
	if slices < 1 {
		slices = DefaultSlices
	}
	dy := s.Height / float64(slices)
	vol := 0.0
	for i := 0; i < slices; i++ {
		vol += s.CrossSectionArea(float64(i)*dy) * dy
	}
	return vol
}

// FrontalArea is the area of the widest cross-section, used for drag.
func (s Shape) FrontalArea() float64 {
	hw := s.halfWidth(dynamo.MaxSubmersionY(s.Height))
	return dynamo.Tau / 2 * hw * hw
}

// Perimeter returns the wetted perimeter at y: n arcs between grooves plus
// the 2n groove walls.
func (s Shape) Perimeter(y float64) (float64, error) {
	hw, err := s.HalfWidth(y)
	if err != nil {
		return 0, err
	}
	gp, err := s.GrooveProfile(y)
	if err != nil {
		return 0, err
	}

	n := float64(s.GrooveCount)
	w := 2 * hw
	d := w/2 - gp
	arcs := n * (w / 2) * (dynamo.Tau/n - s.GrooveAngle)
	walls := 2 * n * math.Sqrt(d*d+w*w/8*(1-math.Cos(s.GrooveAngle)))
	return arcs + walls, nil
}

// Mass is Density times the volume at DefaultSlices resolution.
func (s Shape) Mass() float64 {
	return s.Density * s.Volume(DefaultSlices)
}

func (s Shape) GetParams() map[string]float64 {
	return map[string]float64{
		"height":       s.Height,
		"width":        s.Width,
		"groove_angle": s.GrooveAngle,
		"groove_count": float64(s.GrooveCount),
		"groove_depth": s.GrooveDepth,
		"density":      s.Density,
	}
}

func (s *Shape) SetParam(name string, value float64) error {
	switch name {
	case "height":
		s.Height = value
	case "width":
		s.Width = value
	case "groove_angle":
		s.GrooveAngle = value
	case "groove_count":
		s.GrooveCount = int(value)
	case "groove_depth":
		s.GrooveDepth = value
	case "density":
		s.Density = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
