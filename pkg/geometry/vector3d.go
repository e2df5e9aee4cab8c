package geometry

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the tolerance used by Eq when comparing float64 components.
const (
	Epsilon = 1e-9
)

// Up is the rest orientation of an agent mesh: a cone pointing along +Y.
var Up = Vector3D{X: 0, Y: 1, Z: 0}

// Vector3D represents a 3D vector or point in cartesian space.
// Fields are public so literals stay short: v := Vector3D{X: 1, Y: 2, Z: 3}
type Vector3D struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
	Z float64 `json:"z" toml:"z"`
}

// FromVec3 converts a mathgl vector.
func FromVec3(v mgl64.Vec3) Vector3D {
	return Vector3D{X: v[0], Y: v[1], Z: v[2]}
}

// Vec3 converts the vector to its mathgl counterpart.
func (v Vector3D) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// String implements the fmt.Stringer interface.
func (v Vector3D) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}

// ---------------------------------------------------------------------
// Arithmetic Operations
// Value receivers, new values returned.
// ---------------------------------------------------------------------

// Add adds two vectors and returns the result.
func (v Vector3D) Add(other Vector3D) Vector3D {
	return Vector3D{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub subtracts the other vector from the current vector.
func (v Vector3D) Sub(other Vector3D) Vector3D {
	return Vector3D{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Mul scales the vector by a scalar value.
func (v Vector3D) Mul(scalar float64) Vector3D {
	return Vector3D{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// ---------------------------------------------------------------------
// Magnitude and Normalization
// ---------------------------------------------------------------------

// LenSqr calculates the squared magnitude of the vector.
func (v Vector3D) LenSqr() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Len calculates the magnitude (length) of the vector.
func (v Vector3D) Len() float64 {
	return math.Sqrt(v.LenSqr())
}

// IsZero reports whether every component is exactly zero.
func (v Vector3D) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Normalize returns a unit vector in the same direction.
// The zero vector has no direction and is returned unchanged.
func (v Vector3D) Normalize() Vector3D {
	l := v.Len()
	if l == 0 {
		return Vector3D{}
	}
	return v.Mul(1 / l)
}

// ClampLength rescales v so its magnitude lies within [min, max],
// preserving direction. The zero vector stays zero.
func (v Vector3D) ClampLength(min, max float64) Vector3D {
	l := v.Len()
	switch {
	case l == 0:
		return Vector3D{}
	case l > max:
		return v.Mul(max / l)
	case l < min:
		return v.Mul(min / l)
	}
	return v
}

// Orientation returns the rotation taking Up onto the direction of v,
// which is how a renderer turns a cone mesh to face its heading.
// The zero vector maps to the identity rotation.
func (v Vector3D) Orientation() mgl64.Quat {
	if v.IsZero() {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatBetweenVectors(Up.Vec3(), v.Normalize().Vec3())
}

// Eq checks if two vectors are approximately equal using the Epsilon constant.
func (v Vector3D) Eq(other Vector3D) bool {
	return math.Abs(v.X-other.X) <= Epsilon &&
		math.Abs(v.Y-other.Y) <= Epsilon &&
		math.Abs(v.Z-other.Z) <= Epsilon
}
