package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/eggdive/internal/dynamo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grooved() Shape {
	return NewShape(0.05, 0.05, dynamo.Tau/16, 8, 0.001, 300)
}

func smooth(h, w float64) Shape {
	return NewShape(h, w, 0, 1, 0, 300)
}

// span returns the i-th of n+1 evenly spaced positions over the domain,
// hitting both ends exactly.
func span(s Shape, i, n int) float64 {
	if i == n {
		return s.Height
	}
	lo := dynamo.MaxSubmersionY(s.Height)
	return lo + (s.Height-lo)*float64(i)/float64(n)
}

func TestHalfWidth_WidestPoint(t *testing.T) {
	for _, h := range []float64{0.05, 0.2, 0.6} {
		for _, w := range []float64{0.05, 0.3, 0.6} {
			s := smooth(h, w)
			hw, err := s.HalfWidth(dynamo.MaxSubmersionY(h))
			require.NoError(t, err)

			k := dynamo.WidestRatio
			assert.InDelta(t, w/2, hw, 1e-12, "h=%v w=%v", h, w)
			assert.InDelta(t, w*math.Sqrt(A0*k*(1-k)*(1-k/2)), hw, 1e-12)
		}
	}
}

func TestHalfWidth_Monotone(t *testing.T) {
	s := smooth(0.1, 0.08)
	prev := math.Inf(1)
	for i := 0; i <= 50; i++ {
		y := span(s, i, 50)
		hw, err := s.HalfWidth(y)
		require.NoError(t, err)
		assert.LessOrEqual(t, hw, prev)
		prev = hw
	}
	assert.Equal(t, 0.0, prev, "egg closes at its top")
}

func TestGeometry_DomainViolation(t *testing.T) {
	s := grooved()
	below := dynamo.MaxSubmersionY(s.Height) - 1e-6
	above := s.Height + 1e-6

	calls := map[string]func(y float64) error{
		"half-width": func(y float64) error { _, err := s.HalfWidth(y); return err },
		"groove":     func(y float64) error { _, err := s.GrooveProfile(y); return err },
		"slope":      func(y float64) error { _, err := s.Slope(y); return err },
		"perimeter":  func(y float64) error { _, err := s.Perimeter(y); return err },
	}

	for name, call := range calls {
		for _, y := range []float64{below, above, math.NaN()} {
			err := call(y)
			assert.True(t, errors.Is(err, dynamo.ErrDomain), "%s(%v) = %v", name, y, err)

			var de *dynamo.DomainError
			if assert.True(t, errors.As(err, &de)) && !math.IsNaN(y) {
				assert.Equal(t, y, de.Y)
			}
		}
	}
}

func TestGrooveProfile(t *testing.T) {
	s := grooved()
	y := dynamo.MaxSubmersionY(s.Height)
	gp, err := s.GrooveProfile(y)
	require.NoError(t, err)
	assert.InDelta(t, s.Width/2-s.GrooveDepth, gp, 1e-12)

	s.GrooveDepth = 1
	gp, err = s.GrooveProfile(y)
	require.NoError(t, err)
	assert.Equal(t, 0.0, gp, "groove cannot invert the surface")
}

func TestSlope(t *testing.T) {
	s := smooth(0.1, 0.07)
	lo := dynamo.MaxSubmersionY(s.Height)

	slope, err := s.Slope(lo)
	require.NoError(t, err)
	assert.InDelta(t, 0, slope, 1e-12, "flat at the widest point")

	const h = 1e-7
	for _, frac := range []float64{0.1, 0.4, 0.8} {
		y := lo + (s.Height-lo)*frac
		got, err := s.Slope(y)
		require.NoError(t, err)
		hi, _ := s.HalfWidth(y + h)
		lw, _ := s.HalfWidth(y - h)
		assert.InDelta(t, (hi-lw)/(2*h), got, 1e-5, "y=%v", y)
		assert.Less(t, got, 0.0, "egg narrows above its widest point")
	}
}

func TestCrossSectionArea_ContinuousAtWidest(t *testing.T) {
	s := smooth(0.2, 0.1)
	y := dynamo.MaxSubmersionY(s.Height)
	below := s.CrossSectionArea(math.Nextafter(y, 0))
	at := s.CrossSectionArea(y)
	assert.InEpsilon(t, below, at, 1e-14)
	assert.InEpsilon(t, dynamo.Tau/8*s.Width*s.Width, at, 1e-14)
}

func TestCrossSectionArea_Grooved(t *testing.T) {
	s := grooved()
	y := dynamo.MaxSubmersionY(s.Height)
	w2 := s.Width * s.Width
	want := w2/8*(dynamo.Tau-8*s.GrooveAngle) +
		math.Sqrt(w2/8*(1-math.Cos(s.GrooveAngle)))*(s.Width/2-s.GrooveDepth)
	assert.InDelta(t, want, s.CrossSectionArea(s.Height), 1e-15)
	assert.InDelta(t, want, s.CrossSectionArea(y), 1e-15)
	assert.Equal(t, dynamo.Tau/8*w2, s.CrossSectionArea(0))
}

func TestVolume_Monotonic(t *testing.T) {
	base := grooved()

	prev := 0.0
	for _, h := range []float64{0.05, 0.1, 0.2, 0.4, 0.6} {
		s := base
		s.Height = h
		v := s.Volume(DefaultSlices)
		assert.Greater(t, v, prev, "height %v", h)
		prev = v
	}

	prev = 0
	for _, w := range []float64{0.05, 0.1, 0.2, 0.4, 0.6} {
		s := base
		s.Width = w
		v := s.Volume(DefaultSlices)
		assert.Greater(t, v, prev, "width %v", w)
		prev = v
	}
}

func TestVolume_Cylinder(t *testing.T) {
	s := smooth(0.3, 0.1)
	want := dynamo.Tau / 8 * s.Width * s.Width * s.Height
	assert.InEpsilon(t, want, s.Volume(DefaultSlices), 1e-12)
	assert.InEpsilon(t, want, s.Volume(0), 1e-12)
	assert.InEpsilon(t, s.Density*want, s.Mass(), 1e-12)
}

func TestFrontalArea(t *testing.T) {
	s := smooth(0.1, 0.08)
	assert.InEpsilon(t, math.Pi*0.04*0.04, s.FrontalArea(), 1e-12)
}

func TestPerimeter(t *testing.T) {
	for _, s := range []Shape{grooved(), smooth(0.1, 0.1), NewShape(0.3, 0.2, 0.2, 12, 0.05, 500)} {
		for i := 0; i <= 20; i++ {
			y := span(s, i, 20)
			p, err := s.Perimeter(y)
			require.NoError(t, err)
			hw, _ := s.HalfWidth(y)
			n := float64(s.GrooveCount)
			assert.GreaterOrEqual(t, p, n*hw*(dynamo.Tau/n-s.GrooveAngle))
		}
	}
}

func TestPerimeter_SmoothIsCircumference(t *testing.T) {
	s := smooth(0.1, 0.1)
	y := dynamo.MaxSubmersionY(s.Height)
	p, err := s.Perimeter(y)
	require.NoError(t, err)
	assert.InEpsilon(t, dynamo.Tau*s.Width/2, p, 1e-12)
}

func TestPerimeter_ClosedForm(t *testing.T) {
	s := grooved()
	y := 0.8 * s.Height
	hw, _ := s.HalfWidth(y)
	gp, _ := s.GrooveProfile(y)
	w := 2 * hw
	d := w/2 - gp
	n := 8.0
	want := n*(w/2)*(dynamo.Tau/n-s.GrooveAngle) + 2*n*math.Sqrt(d*d+w*w/8*(1-math.Cos(s.GrooveAngle)))

	got, err := s.Perimeter(y)
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-15)
}

func TestShape_Params(t *testing.T) {
	s := grooved()
	params := s.GetParams()
	assert.Equal(t, 8.0, params["groove_count"])
	assert.Equal(t, 0.05, params["height"])

	require.NoError(t, s.SetParam("groove_count", 12.7))
	assert.Equal(t, 12, s.GrooveCount)
	require.NoError(t, s.SetParam("width", 0.2))
	assert.Equal(t, 0.2, s.Width)
	assert.Error(t, s.SetParam("colour", 1))
}

func TestShape_Normalized(t *testing.T) {
	s := NewShape(0.1, 0.1, 0, 0, 0, 300)
	assert.Equal(t, 1, s.Normalized().GrooveCount)
	assert.Equal(t, 0, s.GrooveCount, "receiver unchanged")
	assert.Equal(t, 8, grooved().Normalized().GrooveCount)
}
