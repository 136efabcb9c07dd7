package metrics

import (
	"testing"

	"github.com/san-kum/eggdive/internal/dynamo"
	"github.com/stretchr/testify/assert"
)

func TestStandardMetrics(t *testing.T) {
	tr := dynamo.Trajectory{
		{T: 0, Y: 0.02, V: 0},
		{T: 0.1, Y: 0.04, V: 0.3},
		{T: 0.2, Y: 0.06, V: 0.2},
		{T: 0.3, Y: 0.08, V: 0.1},
	}
	ms := Standard(0.05)
	Observe(tr, ms...)

	got := map[string]float64{}
	for _, m := range ms {
		got[m.Name()] = m.Value()
	}
	assert.InDelta(t, 0.03, got["depth"], 1e-12)
	assert.InDelta(t, 0.3, got["peak_velocity"], 1e-12)
	assert.InDelta(t, 0.2, got["submerged_time"], 1e-12)

	for _, m := range ms {
		m.Reset()
		assert.Zero(t, m.Value(), m.Name())
	}
}

func TestDepthNegative(t *testing.T) {
	d := NewDepth(0.05)
	assert.Zero(t, d.Value())
	d.Observe(dynamo.Sample{Y: 0.02})
	assert.InDelta(t, -0.03, d.Value(), 1e-12)
}

func TestDepthMatchesTrajectory(t *testing.T) {
	tr := dynamo.Trajectory{{T: 0, Y: 0.3}, {T: 1, Y: 0.9}, {T: 2, Y: 0.7}}
	d := NewDepth(0.5)
	Observe(tr, d)
	assert.Equal(t, tr.MaxY()-0.5, d.Value())
}
