// Package orient models discrete clockwise rotations about a single axis.
//
// A Rotation is an element of the cyclic group of order Max. One turn is
// 360/Max degrees, so even turns land on the four cardinal directions and
// odd turns on the diagonals between them.
package orient

import (
	"errors"
	"fmt"
	"math"

	"github.com/andtech/swinglab/grid"
)

const (
	// Max is the number of distinct rotations.
	Max = 8
	// HalfRevolution is the number of turns in 180 degrees.
	HalfRevolution = Max / 2
	// QuarterRevolution is the number of turns in 90 degrees.
	QuarterRevolution = Max / 4

	// TurnsToDegrees converts turns to degrees.
	TurnsToDegrees = 360.0 / Max
	// TurnsToRadians converts turns to radians.
	TurnsToRadians = 2 * math.Pi / Max
)

// ErrInvalidAxis is returned when an axis outside X, Y and Z is requested.
var ErrInvalidAxis = errors.New("orient: invalid axis")

// Axis selects the axis a direction is taken around.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Rotation is a discrete clockwise rotation. The zero value is no rotation.
// Rotations are comparable with == since turns are always normalized.
type Rotation struct {
	turns int
}

// FromTurns returns the rotation for n clockwise turns, wrapping n into [0, Max).
func FromTurns(n int) Rotation {
	return Rotation{turns: Wrap(n, 0, Max-1)}
}

// Nearest returns the rotation closest to the given heading in degrees.
// Non-finite headings map to the zero rotation.
func Nearest(degrees float64) Rotation {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return Rotation{}
	}
	turns := math.Round(math.Mod(degrees, 360) / TurnsToDegrees)
	return FromTurns(int(turns))
}

// Turns returns the normalized turn count in [0, Max).
func (r Rotation) Turns() int {
	return r.turns
}

// Quadrant returns the 90 degree sector the rotation lies in, in [0, 4).
func (r Rotation) Quadrant() int {
	return 4 * r.turns / Max
}

// EulerAngle returns the rotation in degrees.
func (r Rotation) EulerAngle() float64 {
	return TurnsToDegrees * float64(r.turns)
}

// Radians returns the rotation in radians.
func (r Rotation) Radians() float64 {
	return TurnsToRadians * float64(r.turns)
}

// Add composes two rotations.
func (r Rotation) Add(o Rotation) Rotation {
	return FromTurns(r.turns + o.turns)
}

// AddTurns rotates n turns further clockwise.
func (r Rotation) AddTurns(n int) Rotation {
	return FromTurns(r.turns + n)
}

// SubtractTurns rotates n turns counter-clockwise.
func (r Rotation) SubtractTurns(n int) Rotation {
	return r.AddTurns(-n)
}

// NextQuadrant rotates 90 degrees clockwise.
func (r Rotation) NextQuadrant() Rotation {
	return r.AddTurns(QuarterRevolution)
}

// PreviousQuadrant rotates 90 degrees counter-clockwise.
func (r Rotation) PreviousQuadrant() Rotation {
	return r.SubtractTurns(QuarterRevolution)
}

// Complement reverses the direction of the rotation (adds 180 degrees).
func (r Rotation) Complement() Rotation {
	return r.AddTurns(HalfRevolution)
}

// Equal reports whether both rotations have the same normalized turns.
func (r Rotation) Equal(o Rotation) bool {
	return r.turns == o.turns
}

func (r Rotation) String() string {
	return fmt.Sprintf("%g (%d / %d)", r.EulerAngle(), r.turns, Max)
}

// Direction returns the grid direction the rotation points to around axis.
// The base direction is up for X and Z and forward for Y.
func (r Rotation) Direction(axis Axis) (grid.Vec3i, error) {
	var base grid.Vec3i
	var x, y, z int
	switch axis {
	case AxisX:
		base, x = grid.Up, 1
	case AxisY:
		base, y = grid.Forward, 1
	case AxisZ:
		base, z = grid.Up, 1
	default:
		return grid.Zero, fmt.Errorf("axis %d: %w", int(axis), ErrInvalidAxis)
	}

	// Odd turns sit halfway between two cardinals.
	if r.turns%2 != 0 {
		base = base.Add(base.Rotate(x, y, z))
	}

	q := r.Quadrant()
	return base.Rotate(x*q, y*q, z*q), nil
}

// DirectionX returns the direction around the X axis. The base direction is up.
func (r Rotation) DirectionX() grid.Vec3i {
	d, _ := r.Direction(AxisX)
	return d
}

// DirectionY returns the direction around the Y axis. The base direction is forward.
func (r Rotation) DirectionY() grid.Vec3i {
	d, _ := r.Direction(AxisY)
	return d
}

// DirectionZ returns the direction around the Z axis. The base direction is up.
func (r Rotation) DirectionZ() grid.Vec3i {
	d, _ := r.Direction(AxisZ)
	return d
}
