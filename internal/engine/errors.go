package engine

import "errors"

// Domain errors for simulation runs.
var (
	// ErrInvalidConfig indicates a non-positive time step or duration.
	ErrInvalidConfig = errors.New("engine: invalid configuration")

	// ErrNonPositiveMass indicates a particle whose mass is zero or
	// negative. Dividing force by such a mass would poison every later
	// sample with Inf or NaN, so runs reject it before stepping.
	ErrNonPositiveMass = errors.New("engine: particle mass must be positive")
)
