package physics

// Particle stores kinematics only; forces are applied by the integrator and
// engine. A particle is owned by the caller, outlives runs, and is mutated
// in place by the engine after each run completes.
type Particle struct {
	Position Vector2
	Velocity Vector2
	Mass     float64 // kg, must be positive
	Charge   float64 // C
}

// NewElectron returns an electron with standard mass and charge.
func NewElectron(pos, vel Vector2) *Particle {
	return &Particle{Position: pos, Velocity: vel, Mass: ElectronMass, Charge: ElectronCharge}
}

// Translate shifts position by a caller-provided displacement. No forces are
// applied; interactive layers use this between runs.
func (p *Particle) Translate(delta Vector2) {
	p.Position = p.Position.Add(delta)
}

// AdjustVelocity increments velocity by a caller-provided change.
func (p *Particle) AdjustVelocity(delta Vector2) {
	p.Velocity = p.Velocity.Add(delta)
}
