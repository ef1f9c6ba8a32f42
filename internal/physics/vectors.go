package physics

import "math"

// Vector2 is an immutable 2D vector used for positions, velocities, and
// in-plane fields and forces. All operations return new values.
type Vector2 struct {
	X, Y float64
}

func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{v.X + o.X, v.Y + o.Y}
}

func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{v.X - o.X, v.Y - o.Y}
}

func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{v.X * s, v.Y * s}
}

func (v Vector2) Magnitude() float64 {
	return math.Hypot(v.X, v.Y)
}

// Zero2 returns the 2D zero vector.
func Zero2() Vector2 { return Vector2{} }

// FromPair builds a Vector2 from an ordered (x, y) pair.
func FromPair(x, y float64) Vector2 { return Vector2{x, y} }

// Vector3 is an immutable 3D vector. Only magnetic field values are 3D: the
// z component carries out-of-plane field strength acting on in-plane
// velocity.
type Vector3 struct {
	X, Y, Z float64
}

func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vector3) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}
