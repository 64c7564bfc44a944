// Package components defines ECS components for the replay.
package components

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/andtech/swinglab/filter"
	"github.com/andtech/swinglab/grid"
	"github.com/andtech/swinglab/orient"
)

// Track holds the recorded trace an entity is replayed from.
type Track struct {
	Name   string
	Times  []float64
	Points []r3.Vec
	Cursor int     // Index found by the last lookup, used as the next search pivot
	Time   float64 // Tick time clamped to the recorded range
	Final  bool    // The last sample has been handed out
	Ended  bool    // The last sample was handed out on an earlier tick
}

// Position is the entity's world position at the current tick.
type Position struct {
	r3.Vec
}

// Velocity is the finite-difference velocity between the last two ticks.
type Velocity struct {
	r3.Vec
	Prev     r3.Vec  // Position at the previous tick
	PrevTime float64 // Track time of Prev
	Valid    bool    // False until two positions have been seen
}

// Speed holds the raw and smoothed speed.
type Speed struct {
	Raw    float64
	Filter *filter.Exponential
}

// Heading is the horizontal velocity snapped to the 8-way rotation group.
type Heading struct {
	Rotation  orient.Rotation
	Direction grid.Vec3i
}

// Local is the position in tee coordinates.
type Local struct {
	r3.Vec
}

// Landing tracks ground contact.
type Landing struct {
	Landed bool
	Tick   int
	Time   float64
	Point  r3.Vec
}
