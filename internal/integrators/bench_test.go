package integrators

import (
	"testing"

	"github.com/san-kum/edyn/internal/physics"
)

func BenchmarkRK4Step(b *testing.B) {
	integ := NewRK4()
	s := physics.State{Velocity: physics.Vector2{X: 1e5}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s = integ.Step(s, 5e-12, rotationAccel)
	}
	_ = s
}

func BenchmarkEulerStep(b *testing.B) {
	integ := NewEuler()
	s := physics.State{Velocity: physics.Vector2{X: 1e5}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s = integ.Step(s, 5e-12, rotationAccel)
	}
	_ = s
}
