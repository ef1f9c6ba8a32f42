package physics

// Physical constants for the electron.
const (
	ElectronMass   = 9.109e-31  // kg
	ElectronCharge = -1.602e-19 // C
)
