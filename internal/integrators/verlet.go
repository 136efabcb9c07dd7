package integrators

import (
	"fmt"

	"github.com/san-kum/eggdive/internal/dynamo"
)

// Verlet is a fully explicit velocity Verlet step. The drag in the second
// force evaluation uses a predicted velocity. It is kept as a reference
// for comparing against Leapfrog.
type Verlet struct{}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Step(b *Body, cur dynamo.Sample, dt float64) (dynamo.Sample, error) {
	a, err := b.Accel(cur.Y, cur.V)
	if err != nil {
		return cur, err
	}

	y := cur.Y + cur.V*dt + 0.5*a*dt*dt
	aNew, err := b.Accel(y, cur.V+a*dt)
	if err != nil {
		return cur, err
	}

	next := dynamo.Sample{T: cur.T + dt, Y: y, V: cur.V + (a+aNew)*dt/2}
	if !next.IsValid() {
		return cur, fmt.Errorf("%w: non-finite state", dynamo.ErrDegenerate)
	}
	return next, nil
}
