package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/andtech/swinglab/components"
)

// KinematicsSystem derives finite-difference velocity and smoothed speed.
type KinematicsSystem struct {
	filter ecs.Filter4[components.Track, components.Position, components.Velocity, components.Speed]
}

// NewKinematicsSystem creates a new kinematics system.
func NewKinematicsSystem(w *ecs.World) *KinematicsSystem {
	return &KinematicsSystem{
		filter: *ecs.NewFilter4[components.Track, components.Position, components.Velocity, components.Speed](w),
	}
}

// Update advances velocity and speed for every live track.
func (s *KinematicsSystem) Update() {
	query := s.filter.Query()
	for query.Next() {
		track, pos, vel, speed := query.Get()
		UpdateKinematics(track, pos, vel, speed)
	}
}

// UpdateKinematics applies one tick to a single entity. Velocity is taken
// over the track time elapsed since the previous position, so a shortened
// final segment is not under-counted. The first tick only records the
// position; ticks where track time does not advance and ended tracks are
// left untouched.
func UpdateKinematics(
	track *components.Track,
	pos *components.Position,
	vel *components.Velocity,
	speed *components.Speed,
) {
	if track.Ended {
		return
	}
	if !vel.Valid {
		vel.Prev, vel.PrevTime = pos.Vec, track.Time
		vel.Valid = true
		return
	}
	dt := track.Time - vel.PrevTime
	if dt <= 0 {
		return
	}
	vel.Vec = r3.Scale(1/dt, r3.Sub(pos.Vec, vel.Prev))
	vel.Prev, vel.PrevTime = pos.Vec, track.Time

	speed.Raw = r3.Norm(vel.Vec)
	speed.Filter.Add(speed.Raw)
}
