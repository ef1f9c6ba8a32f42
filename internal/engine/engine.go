package engine

import (
	"fmt"

	"github.com/san-kum/edyn/internal/integrators"
	"github.com/san-kum/edyn/internal/physics"
)

// Config carries the timing parameters for one run.
type Config struct {
	Dt               float64 // seconds per step, > 0
	Duration         float64 // total simulated seconds, > 0
	RecordTrajectory bool
	Workers          int // > 1 fans particle updates out per step
}

// Steps returns the number of integration steps: floor(Duration/Dt). A
// duration of 10 with step 3 yields exactly 3 steps, consuming 9 of the 10
// time units.
func (c Config) Steps() int {
	return int(c.Duration / c.Dt)
}

// Result holds final states and, when recorded, per-particle trajectories,
// both index-aligned with the particle list passed to Run. Trajectories is
// nil when recording was off.
type Result struct {
	FinalStates  []physics.State
	Trajectories [][]physics.State
}

// Engine advances particles under one electric and one magnetic field. The
// field references are read fresh on every step, never snapshotted, so a
// caller may retune a field's stored value between runs.
type Engine struct {
	electric physics.ElectricField
	magnetic physics.MagneticField
	stepper  physics.Stepper
}

// New returns an engine stepping with classical RK4.
func New(e physics.ElectricField, b physics.MagneticField) *Engine {
	return NewWithStepper(e, b, integrators.NewRK4())
}

// NewWithStepper returns an engine using a caller-chosen integrator.
func NewWithStepper(e physics.ElectricField, b physics.MagneticField, st physics.Stepper) *Engine {
	return &Engine{electric: e, magnetic: b, stepper: st}
}

// accelFor builds the acceleration closure for one particle: Lorentz force
// over the shared fields, converted to acceleration by the particle's mass.
func (en *Engine) accelFor(p *physics.Particle) physics.AccelFunc {
	charge, invMass := p.Charge, 1.0/p.Mass
	return func(t float64, pos, vel physics.Vector2) physics.Vector2 {
		return physics.Lorentz(charge, vel, en.electric, en.magnetic, t, pos).Scale(invMass)
	}
}

// Run advances every particle in lockstep for Steps() fixed steps starting
// at startTime, then commits final position and velocity back into the
// caller's particle objects. Validation happens before any stepping; on
// error no particle is touched and no partial result is produced.
//
// When recording, each trajectory starts with the pre-step state at
// startTime and gains one sample per step, so it holds Steps()+1 states
// ending at startTime + Steps()*Dt.
func (en *Engine) Run(particles []*physics.Particle, cfg Config, startTime float64) (*Result, error) {
	if err := validate(particles, cfg); err != nil {
		return nil, err
	}

	n := len(particles)
	states := make([]physics.State, n)
	accels := make([]physics.AccelFunc, n)
	for i, p := range particles {
		states[i] = physics.State{Time: startTime, Position: p.Position, Velocity: p.Velocity}
		accels[i] = en.accelFor(p)
	}

	steps := cfg.Steps()
	var trajectories [][]physics.State
	if cfg.RecordTrajectory {
		trajectories = make([][]physics.State, n)
		for i := range trajectories {
			trajectories[i] = make([]physics.State, 0, steps+1)
			trajectories[i] = append(trajectories[i], states[i])
		}
	}

	// Each particle's update depends only on its own prior state and the
	// shared field values, which stay stable for the whole run, so per-step
	// fan-out reproduces the sequential results exactly.
	advance := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			states[i] = en.stepper.Step(states[i], cfg.Dt, accels[i])
		}
	}

	for step := 0; step < steps; step++ {
		if cfg.Workers > 1 {
			parallelFor(n, cfg.Workers, advance)
		} else {
			advance(0, n)
		}
		if cfg.RecordTrajectory {
			for i := range trajectories {
				trajectories[i] = append(trajectories[i], states[i])
			}
		}
	}

	for i, p := range particles {
		p.Position = states[i].Position
		p.Velocity = states[i].Velocity
	}

	return &Result{FinalStates: states, Trajectories: trajectories}, nil
}

func validate(particles []*physics.Particle, cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrInvalidConfig, cfg.Duration)
	}
	for i, p := range particles {
		if p.Mass <= 0 {
			return fmt.Errorf("%w: particle %d has mass %g", ErrNonPositiveMass, i, p.Mass)
		}
	}
	return nil
}
