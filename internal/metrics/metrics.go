// Package metrics summarizes a dive from its samples.
package metrics

import (
	"math"

	"github.com/san-kum/eggdive/internal/dynamo"
)

// Metric accumulates one number over a stream of samples.
type Metric interface {
	Name() string
	Observe(s dynamo.Sample)
	Value() float64
	Reset()
}

// Observe feeds every sample of tr to each metric.
func Observe(tr dynamo.Trajectory, ms ...Metric) {
	for _, s := range tr {
		for _, m := range ms {
			m.Observe(s)
		}
	}
}

// Standard returns the metrics reported for a dive of an egg of the given
// height.
func Standard(height float64) []Metric {
	return []Metric{NewDepth(height), NewPeakVelocity(), NewSubmergedTime(height)}
}

// Depth is max(y) - height, the score of a dive.
type Depth struct {
	height float64
	maxY   float64
	seen   bool
}

func NewDepth(height float64) *Depth {
	return &Depth{height: height}
}

func (d *Depth) Name() string { return "depth" }

func (d *Depth) Observe(s dynamo.Sample) {
	if !d.seen || s.Y > d.maxY {
		d.maxY = s.Y
	}
	d.seen = true
}

func (d *Depth) Value() float64 {
	if !d.seen {
		return 0
	}
	return d.maxY - d.height
}

func (d *Depth) Reset() {
	d.maxY = 0
	d.seen = false
}

type PeakVelocity struct {
	peak float64
}

func NewPeakVelocity() *PeakVelocity {
	return &PeakVelocity{}
}

func (p *PeakVelocity) Name() string { return "peak_velocity" }

func (p *PeakVelocity) Observe(s dynamo.Sample) {
	p.peak = math.Max(p.peak, math.Abs(s.V))
}

func (p *PeakVelocity) Value() float64 { return p.peak }

func (p *PeakVelocity) Reset() { p.peak = 0 }

// SubmergedTime is the time spent with the whole egg under the surface,
// y >= height. Each sample counts for the gap to the previous one.
type SubmergedTime struct {
	height float64
	last   float64
	total  float64
	seen   bool
}

func NewSubmergedTime(height float64) *SubmergedTime {
	return &SubmergedTime{height: height}
}

func (m *SubmergedTime) Name() string { return "submerged_time" }

func (m *SubmergedTime) Observe(s dynamo.Sample) {
	if m.seen && s.Y >= m.height {
		m.total += s.T - m.last
	}
	m.last = s.T
	m.seen = true
}

func (m *SubmergedTime) Value() float64 { return m.total }

func (m *SubmergedTime) Reset() {
	m.last, m.total, m.seen = 0, 0, false
}
