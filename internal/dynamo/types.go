package dynamo

import (
	"math"
)

// Tau is the full turn, 2π.
const Tau = 2 * math.Pi

// WidestRatio is the fraction of the egg height at which the cross-section
// is widest, 1 - 1/√3.
const WidestRatio = 1 - 0.57735026918962576450914878050195745564760175127013

// MaxSteps bounds the number of samples a single run may produce.
const MaxSteps = 5_000_000

// MaxSubmersionY is the height of the widest cross-section of an egg of
// height h. It is the initial position of every run.
func MaxSubmersionY(h float64) float64 {
	return WidestRatio * h
}

type Sample struct {
	T float64 // time, s
	Y float64 // position, m
	V float64 // velocity, m/s
}

func (s Sample) IsValid() bool {
	for _, v := range [...]float64{s.T, s.Y, s.V} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

type Trajectory []Sample

// MaxY returns the deepest position reached. It returns NaN for an empty
// trajectory.
func (tr Trajectory) MaxY() float64 {
	if len(tr) == 0 {
		return math.NaN()
	}
	m := tr[0].Y
	for _, s := range tr[1:] {
		if s.Y > m {
			m = s.Y
		}
	}
	return m
}

func (tr Trajectory) Times() []float64 {
	out := make([]float64, len(tr))
	for i, s := range tr {
		out[i] = s.T
	}
	return out
}

func (tr Trajectory) Positions() []float64 {
	out := make([]float64, len(tr))
	for i, s := range tr {
		out[i] = s.Y
	}
	return out
}

func (tr Trajectory) Velocities() []float64 {
	out := make([]float64, len(tr))
	for i, s := range tr {
		out[i] = s.V
	}
	return out
}

type StepConfig struct {
	Dt    float64
	Total float64
}

func DefaultStepConfig() StepConfig {
	return StepConfig{
		Dt:    0.001,
		Total: 2.2,
	}
}

// StepCount is floor(Total/Dt), never less than one so that a run always
// holds its initial sample.
func (c StepConfig) StepCount() int {
	n := math.Floor(c.Total / c.Dt)
	if n < 1 || math.IsNaN(n) {
		return 1
	}
	if n > MaxSteps {
		return MaxSteps + 1
	}
	return int(n)
}

func (c StepConfig) Validate() error {
	if !(c.Dt > 0) || math.IsInf(c.Dt, 0) {
		return &BoundsError{Name: "dt", Value: c.Dt, Min: 0, Max: math.Inf(1)}
	}
	if !(c.Total > 0) || math.IsInf(c.Total, 0) {
		return &BoundsError{Name: "total_time", Value: c.Total, Min: 0, Max: math.Inf(1)}
	}
	if c.StepCount() > MaxSteps {
		return ErrTooManySteps
	}
	return nil
}
