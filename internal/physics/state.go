package physics

// State is an immutable snapshot of one particle at a given time. A
// trajectory is an ordered []State for one particle, non-decreasing in time.
type State struct {
	Time     float64
	Position Vector2
	Velocity Vector2
}

// AccelFunc supplies acceleration a(t, x, v) in m/s^2. The engine builds one
// per particle, closing over its charge, mass, and the shared fields.
type AccelFunc func(t float64, pos, vel Vector2) Vector2

// Stepper advances the coupled system x' = v, v' = a(t, x, v) by one step of
// size dt. Implementations must be stateless: identical inputs yield
// identical outputs.
type Stepper interface {
	Step(s State, dt float64, accel AccelFunc) State
}
