package physics

import (
	"math"
	"math/rand"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestMagnitude(t *testing.T) {
	v := Vector2{3, 4}
	if v.Magnitude() != 5 {
		t.Errorf("expected magnitude 5, got %f", v.Magnitude())
	}

	if Zero2().Magnitude() != 0 {
		t.Error("zero vector should have zero magnitude")
	}

	v3 := Vector3{1, 2, 2}
	if v3.Magnitude() != 3 {
		t.Errorf("expected magnitude 3, got %f", v3.Magnitude())
	}
}

func TestFromPair(t *testing.T) {
	v := FromPair(1.5, -2.5)
	if v.X != 1.5 || v.Y != -2.5 {
		t.Errorf("unexpected components: %+v", v)
	}
}

func TestAlgebraLaws(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	randVec := func() Vector2 {
		return Vector2{rng.Float64()*200 - 100, rng.Float64()*200 - 100}
	}

	for i := 0; i < 100; i++ {
		a, b, c := randVec(), randVec(), randVec()
		s := rng.Float64()*20 - 10

		ab := a.Add(b)
		ba := b.Add(a)
		if ab != ba {
			t.Fatalf("addition not commutative: %+v != %+v", ab, ba)
		}

		left := a.Add(b).Add(c)
		right := a.Add(b.Add(c))
		if !almostEqual(left.X, right.X, 1e-12) || !almostEqual(left.Y, right.Y, 1e-12) {
			t.Fatalf("addition not associative: %+v != %+v", left, right)
		}

		dist := a.Add(b).Scale(s)
		sum := a.Scale(s).Add(b.Scale(s))
		if !almostEqual(dist.X, sum.X, 1e-12) || !almostEqual(dist.Y, sum.Y, 1e-12) {
			t.Fatalf("scalar multiplication does not distribute: %+v != %+v", dist, sum)
		}

		if a.Sub(a) != Zero2() {
			t.Fatalf("a - a should be zero, got %+v", a.Sub(a))
		}
	}
}

func TestOperationsReturnNewValues(t *testing.T) {
	a := Vector2{1, 2}
	_ = a.Add(Vector2{3, 4})
	_ = a.Scale(10)
	if a != (Vector2{1, 2}) {
		t.Errorf("operations mutated the receiver: %+v", a)
	}
}
