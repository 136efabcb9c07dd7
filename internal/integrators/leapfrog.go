package integrators

import (
	"fmt"
	"math"

	"github.com/san-kum/eggdive/internal/dynamo"
	"github.com/san-kum/eggdive/internal/physics"
)

// Leapfrog is the semi-implicit scheme used for dive evaluation. Position
// is advanced explicitly; the new velocity solves
//
//	v' = v + a·dt/2 + dt/(2m)·(z(y') - ½·Cd·A·ρ·v'²)
//
// with the capillary term z taken at the new position and drag held
// implicit in v'.
type Leapfrog struct{}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Step(b *Body, cur dynamo.Sample, dt float64) (dynamo.Sample, error) {
	a, err := b.Accel(cur.Y, cur.V)
	if err != nil {
		return cur, err
	}

	y := cur.Y + cur.V*dt + 0.5*a*dt*dt
	u := cur.V + a*dt/2

	z, err := physics.CapillaryForce(b.Shape, b.Fluid, y)
	if err != nil {
		return cur, err
	}

	qa := -dt * b.Fluid.Drag * b.Shape.FrontalArea() * b.Fluid.Density / (4 * b.Mass)
	qb := -1.0
	qc := u + dt/(2*b.Mass)*z

	v, err := solveDamped(qa, qb, qc)
	if err != nil {
		return cur, err
	}

	next := dynamo.Sample{T: cur.T + dt, Y: y, V: v}
	if !next.IsValid() {
		return cur, fmt.Errorf("%w: non-finite state", dynamo.ErrDegenerate)
	}
	return next, nil
}

// solveDamped returns the root (-b - sqrt(b²-4ac)) / 2a, the branch that
// tends to the undamped velocity as drag vanishes.
func solveDamped(a, b, c float64) (float64, error) {
	if a == 0 {
		return 0, fmt.Errorf("%w: zero leading coefficient", dynamo.ErrDegenerate)
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, fmt.Errorf("%w: negative discriminant %g", dynamo.ErrDegenerate, disc)
	}
	return (-b - math.Sqrt(disc)) / (2 * a), nil
}
