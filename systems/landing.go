package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/andtech/swinglab/components"
	"github.com/andtech/swinglab/frame"
)

// LandingEvent is emitted the first tick a track crosses the ground plane.
type LandingEvent struct {
	Entity ecs.Entity
	Track  string
	Tick   int
	Time   float64
	Point  r3.Vec // Ground crossing in world space
	Local  r3.Vec // Ground crossing in tee space
	Carry  float64
	Speed  float64 // Smoothed speed at the tick of landing
}

// LandingSystem detects the first downward ground crossing of each track.
// It runs before kinematics so Velocity.Prev still holds the last tick.
type LandingSystem struct {
	filter ecs.Filter5[components.Track, components.Position, components.Velocity, components.Speed, components.Landing]
	ground float64
	tee    *frame.Basis

	events []LandingEvent
}

// NewLandingSystem creates a landing system for a horizontal ground at
// height ground. Carry is measured from the tee origin.
func NewLandingSystem(w *ecs.World, ground float64, tee *frame.Basis) *LandingSystem {
	if tee == nil {
		tee = frame.Identity()
	}
	return &LandingSystem{
		filter: *ecs.NewFilter5[components.Track, components.Position, components.Velocity, components.Speed, components.Landing](w),
		ground: ground,
		tee:    tee,
	}
}

// Update checks every track and returns the landings found this tick.
// The returned slice is reused by the next call.
func (s *LandingSystem) Update(clock Clock) []LandingEvent {
	s.events = s.events[:0]

	query := s.filter.Query()
	for query.Next() {
		track, pos, vel, speed, landing := query.Get()
		if landing.Landed || !vel.Valid || track.Ended {
			continue
		}
		if vel.Prev.Y <= s.ground || pos.Y > s.ground {
			continue
		}

		point, frac := s.crossing(vel.Prev, pos.Vec)
		landing.Landed = true
		landing.Tick = clock.Tick
		landing.Time = vel.PrevTime + frac*(track.Time-vel.PrevTime)
		landing.Point = point

		s.events = append(s.events, LandingEvent{
			Entity: query.Entity(),
			Track:  track.Name,
			Tick:   clock.Tick,
			Time:   landing.Time,
			Point:  point,
			Local:  s.tee.Localize(point),
			Carry:  r3.Norm(frame.ProjectOnPlaneY(r3.Sub(point, s.tee.Origin()))),
			Speed:  speed.Filter.Value(),
		})
	}
	return s.events
}

// crossing returns where the segment from prev to cur meets the ground and
// the fraction of the segment travelled before it does.
func (s *LandingSystem) crossing(prev, cur r3.Vec) (r3.Vec, float64) {
	dir := r3.Sub(cur, prev)
	point, ok := frame.PlaneIntersection(prev, dir, r3.Vec{Y: s.ground}, r3.Vec{Y: 1})
	if !ok {
		return cur, 1
	}
	frac := (prev.Y - s.ground) / (prev.Y - cur.Y)
	return point, frac
}
