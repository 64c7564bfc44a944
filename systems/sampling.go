// Package systems contains ECS systems for the replay.
package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/andtech/swinglab/components"
	"github.com/andtech/swinglab/search"
)

// Clock is the replay time at the current tick.
type Clock struct {
	Tick int
	Time float64 // Seconds of trace time
	DT   float64 // Seconds per tick
}

// SamplingSystem moves entities along their recorded tracks.
type SamplingSystem struct {
	filter ecs.Filter2[components.Track, components.Position]
}

// NewSamplingSystem creates a new sampling system.
func NewSamplingSystem(w *ecs.World) *SamplingSystem {
	return &SamplingSystem{
		filter: *ecs.NewFilter2[components.Track, components.Position](w),
	}
}

// Update samples every track at the clock time. It returns the number of
// tracks that have not ended.
func (s *SamplingSystem) Update(clock Clock) int {
	active := 0
	query := s.filter.Query()
	for query.Next() {
		track, pos := query.Get()
		pos.Vec = SampleTrack(track, clock.Time)
		if !track.Ended {
			active++
		}
	}
	return active
}

// SampleTrack returns the linearly interpolated track position at time t
// and updates the track cursor. Times before the first sample clamp to the
// first point and times after the last sample clamp to the last point. The
// first tick at or past the last sample still hands out the last point so
// the final segment is replayed; the track ends on the tick after that.
func SampleTrack(track *components.Track, t float64) r3.Vec {
	i, err := search.FindNearestFrom(track.Times, t, track.Cursor)
	if err != nil {
		track.Ended = true
		return r3.Vec{}
	}
	track.Cursor = i

	last := len(track.Times) - 1
	if t >= track.Times[last] {
		track.Ended = track.Final && t > track.Times[last]
		track.Final = true
		track.Time = track.Times[last]
		return track.Points[last]
	}
	if t <= track.Times[0] {
		track.Time = track.Times[0]
		return track.Points[0]
	}
	track.Time = t

	t0, t1 := track.Times[i], track.Times[i+1]
	if t1 <= t0 {
		return track.Points[i]
	}
	frac := (t - t0) / (t1 - t0)
	p0, p1 := track.Points[i], track.Points[i+1]
	return r3.Add(p0, r3.Scale(frac, r3.Sub(p1, p0)))
}
