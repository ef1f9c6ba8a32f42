package physics

import "math"

// crossVB computes v x B with v = (vx, vy, 0).
func crossVB(v Vector2, b Vector3) Vector3 {
	return Vector3{v.Y * b.Z, -v.X * b.Z, v.X*b.Y - v.Y*b.X}
}

// Lorentz computes the in-plane force F = q(E + v x B) on a particle at a
// given time and position. Motion is restricted to the plane, so the
// out-of-plane component of v x B is discarded.
func Lorentz(charge float64, vel Vector2, e ElectricField, b MagneticField, t float64, pos Vector2) Vector2 {
	ev := e.FieldAt(t, pos)
	bv := b.FieldAt(t, pos)
	vb := crossVB(vel, bv)
	return Vector2{charge * (ev.X + vb.X), charge * (ev.Y + vb.Y)}
}

// CyclotronPeriod returns the orbital period 2*pi*m/(|q*Bz|) of a charged
// particle circling in a uniform out-of-plane magnetic field.
func CyclotronPeriod(mass, charge, bz float64) float64 {
	return 2 * math.Pi * mass / math.Abs(charge*bz)
}
