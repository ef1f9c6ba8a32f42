package physics

// ElectricField yields the in-plane electric field (V/m) at a time and
// position.
type ElectricField interface {
	FieldAt(t float64, pos Vector2) Vector2
}

// MagneticField yields the magnetic field (T) at a time and position. The
// result keeps a z component so out-of-plane fields can act on in-plane
// velocity.
type MagneticField interface {
	FieldAt(t float64, pos Vector2) Vector3
}

// UniformElectricField returns a stored constant regardless of time or
// position. Assigning Field between runs retunes every subsequent force
// evaluation, since the engine holds the field by reference.
type UniformElectricField struct {
	Field Vector2
}

func (f *UniformElectricField) FieldAt(_ float64, _ Vector2) Vector2 {
	return f.Field
}

// UniformMagneticField is the magnetic counterpart of
// [UniformElectricField].
type UniformMagneticField struct {
	Field Vector3
}

func (f *UniformMagneticField) FieldAt(_ float64, _ Vector2) Vector3 {
	return f.Field
}
