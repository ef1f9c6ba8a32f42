// Package engine drives multi-particle Lorentz-force simulations.
//
// An [Engine] holds one electric and one magnetic field by reference and
// advances a caller-owned particle list in lockstep over fixed time steps:
//
//	e := &physics.UniformElectricField{}
//	b := &physics.UniformMagneticField{Field: physics.Vector3{Z: 0.1}}
//	eng := engine.New(e, b)
//	res, err := eng.Run(particles, engine.Config{Dt: 5e-12, Duration: 1e-9}, 0)
//
// A run is synchronous and deterministic: it either completes its fixed step
// count or fails fast on invalid input before any stepping. Engines are not
// thread-safe across concurrent Run calls on the same particles; within one
// run, Config.Workers > 1 fans independent particle updates out per step.
package engine
