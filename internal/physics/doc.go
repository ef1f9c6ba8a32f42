// Package physics provides the core types for charged-particle motion in a
// plane: vector algebra, electric and magnetic field models, particle
// kinematics, and the Lorentz force law.
//
// Field implementations are mutable handles shared by reference across all
// particles in a run. The engine reads them fresh on every step rather than
// snapshotting them, so assigning a field's stored value between runs changes
// subsequent force evaluations.
package physics
