// Package grid provides axis-aligned integer vectors and quarter-turn rotations.
//
// Rotations are left-handed: a positive quarter turn is clockwise when viewed
// from the positive end of the axis (forward turns to right about Y, up turns
// to forward about X, right turns to up about Z).
package grid

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3i is an integer grid vector.
type Vec3i struct {
	X, Y, Z int
}

// Unit vectors.
var (
	Zero    = Vec3i{}
	Right   = Vec3i{X: 1}
	Up      = Vec3i{Y: 1}
	Forward = Vec3i{Z: 1}
)

// Add returns v+o.
func (v Vec3i) Add(o Vec3i) Vec3i {
	return Vec3i{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Scale returns v multiplied by k.
func (v Vec3i) Scale(k int) Vec3i {
	return Vec3i{v.X * k, v.Y * k, v.Z * k}
}

// Neg returns -v.
func (v Vec3i) Neg() Vec3i {
	return v.Scale(-1)
}

// ToVec converts to a float vector.
func (v Vec3i) ToVec() r3.Vec {
	return r3.Vec{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

func (v Vec3i) String() string {
	return fmt.Sprintf("(%d, %d, %d)", v.X, v.Y, v.Z)
}

// Rotate rotates v by x, y and z quarter turns about the respective axes.
// Turns are applied about Z first, then X, then Y. Negative counts rotate
// counter-clockwise.
func (v Vec3i) Rotate(x, y, z int) Vec3i {
	for i := quarters(z); i > 0; i-- {
		v = Vec3i{-v.Y, v.X, v.Z}
	}
	for i := quarters(x); i > 0; i-- {
		v = Vec3i{v.X, -v.Z, v.Y}
	}
	for i := quarters(y); i > 0; i-- {
		v = Vec3i{v.Z, v.Y, -v.X}
	}
	return v
}

// quarters reduces a turn count into [0, 4).
func quarters(n int) int {
	n %= 4
	if n < 0 {
		n += 4
	}
	return n
}
