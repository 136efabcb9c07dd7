package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrDomain indicates a geometry or force evaluation outside
	// [MaxSubmersionY(h), h].
	ErrDomain = errors.New("dynamo: position outside egg geometry domain")

	// ErrDegenerate indicates the implicit velocity solve has no real root
	// or a vanishing leading coefficient.
	ErrDegenerate = errors.New("dynamo: numerically degenerate step")

	// ErrConfigInvalid indicates a parameter set that cannot be simulated.
	ErrConfigInvalid = errors.New("dynamo: invalid configuration")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = fmt.Errorf("%w: parameter out of valid bounds", ErrConfigInvalid)

	// ErrTooManySteps indicates a step count above MaxSteps.
	ErrTooManySteps = fmt.Errorf("%w: step count exceeds limit", ErrConfigInvalid)
)

// DomainError reports the offending position of a domain-restricted call.
type DomainError struct {
	Op  string
	Y   float64
	Min float64
	Max float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: y=%g outside [%g, %g]", e.Op, e.Y, e.Min, e.Max)
}

func (e *DomainError) Unwrap() error {
	return ErrDomain
}

// BoundsError names the first parameter that failed validation.
type BoundsError struct {
	Name  string
	Value float64
	Min   float64
	Max   float64
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s=%g outside [%g, %g]", e.Name, e.Value, e.Min, e.Max)
}

func (e *BoundsError) Unwrap() error {
	return ErrParameterBounds
}

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	Sample  Sample
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f, y=%g, v=%g): %v", e.Step, e.Time, e.Sample.Y, e.Sample.V, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
