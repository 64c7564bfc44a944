package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/andtech/swinglab/components"
	"github.com/andtech/swinglab/orient"
)

// minHeadingSpeed is the horizontal speed below which the heading is held.
const minHeadingSpeed = 1e-6

// HeadingSystem snaps horizontal velocity to one of 8 compass turns about
// the up axis.
type HeadingSystem struct {
	filter ecs.Filter2[components.Velocity, components.Heading]
	offset int
}

// NewHeadingSystem creates a heading system. offsetTurns is added to every
// snapped heading.
func NewHeadingSystem(w *ecs.World, offsetTurns int) *HeadingSystem {
	return &HeadingSystem{
		filter: *ecs.NewFilter2[components.Velocity, components.Heading](w),
		offset: offsetTurns,
	}
}

// Update refreshes the heading of every moving entity.
func (s *HeadingSystem) Update() {
	query := s.filter.Query()
	for query.Next() {
		vel, heading := query.Get()
		UpdateHeading(vel, heading, s.offset)
	}
}

// UpdateHeading snaps vel to the nearest turn. Yaw is measured from +Z
// towards +X. Entities moving slower than minHeadingSpeed keep their
// previous heading.
func UpdateHeading(vel *components.Velocity, heading *components.Heading, offsetTurns int) {
	if !vel.Valid || math.Hypot(vel.X, vel.Z) <= minHeadingSpeed {
		return
	}
	deg := math.Atan2(vel.X, vel.Z) * 180 / math.Pi
	heading.Rotation = orient.Nearest(deg).AddTurns(offsetTurns)
	heading.Direction = heading.Rotation.DirectionY()
}
