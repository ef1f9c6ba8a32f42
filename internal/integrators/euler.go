package integrators

import "github.com/san-kum/edyn/internal/physics"

// Euler is the first-order explicit stepper. It exists for comparison runs;
// under rotational forces it spirals outward and leaks energy, which is why
// the engine defaults to RK4.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(s physics.State, dt float64, accel physics.AccelFunc) physics.State {
	a := accel(s.Time, s.Position, s.Velocity)
	return physics.State{
		Time:     s.Time + dt,
		Position: s.Position.Add(s.Velocity.Scale(dt)),
		Velocity: s.Velocity.Add(a.Scale(dt)),
	}
}
