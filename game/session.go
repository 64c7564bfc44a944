// Package game runs a headless replay of recorded swing traces.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/andtech/swinglab/components"
	"github.com/andtech/swinglab/config"
	"github.com/andtech/swinglab/filter"
	"github.com/andtech/swinglab/orient"
	"github.com/andtech/swinglab/systems"
	"github.com/andtech/swinglab/telemetry"
)

// ErrNoTracks is returned when a session is created without any samples.
var ErrNoTracks = errors.New("game: trace has no tracks")

// perfWeight smooths per-system timings across ticks.
const perfWeight = 0.1

// Options tweak a session beyond the loaded config.
type Options struct {
	OutputDir string // Overrides cfg.Output.Dir when set
	PerfEvery int    // Log perf stats every N ticks (0 = never)
}

// Session holds the complete replay state.
type Session struct {
	cfg *config.Config

	// ECS
	world  *ecs.World
	mapper *ecs.Map7[
		components.Track,
		components.Position,
		components.Velocity,
		components.Speed,
		components.Heading,
		components.Local,
		components.Landing,
	]
	filter *ecs.Filter7[
		components.Track,
		components.Position,
		components.Velocity,
		components.Speed,
		components.Heading,
		components.Local,
		components.Landing,
	]

	// Systems
	registry *systems.SystemRegistry
	sampling *systems.SamplingSystem
	landing  *systems.LandingSystem
	kin      *systems.KinematicsSystem
	heading  *systems.HeadingSystem
	frame    *systems.FrameSystem

	// Telemetry
	output    *telemetry.OutputManager
	perf      *telemetry.PerfCollector
	perfEvery int
	records   []telemetry.SampleRecord

	// Per-track accumulators, keyed by track name
	names    []string
	raw      map[string][]float64
	speeds   map[string][]float64
	landings map[string]int

	// State
	start float64
	tick  int
	done  bool
}

// NewSession creates a session replaying tracks with cfg. A nil cfg uses
// the global configuration.
func NewSession(cfg *config.Config, tracks []telemetry.Track, opts Options) (*Session, error) {
	if cfg == nil {
		cfg = config.Cfg()
	}
	if len(tracks) == 0 {
		return nil, ErrNoTracks
	}

	world := ecs.NewWorld()
	s := &Session{
		cfg:   cfg,
		world: world,
		mapper: ecs.NewMap7[
			components.Track,
			components.Position,
			components.Velocity,
			components.Speed,
			components.Heading,
			components.Local,
			components.Landing,
		](world),
		filter: ecs.NewFilter7[
			components.Track,
			components.Position,
			components.Velocity,
			components.Speed,
			components.Heading,
			components.Local,
			components.Landing,
		](world),
		registry:  systems.NewSystemRegistry(),
		sampling:  systems.NewSamplingSystem(world),
		landing:   systems.NewLandingSystem(world, cfg.Landing.GroundHeight, cfg.Derived.Tee),
		kin:       systems.NewKinematicsSystem(world),
		heading:   systems.NewHeadingSystem(world, cfg.Heading.OffsetTurns),
		frame:     systems.NewFrameSystem(world, cfg.Derived.Tee),
		perf:      telemetry.NewPerfCollector(perfWeight),
		perfEvery: opts.PerfEvery,
		raw:       make(map[string][]float64),
		speeds:    make(map[string][]float64),
		landings:  make(map[string]int),
		start:     math.Inf(1),
	}

	for _, tr := range tracks {
		if len(tr.Times) == 0 {
			continue
		}
		if _, dup := s.speeds[tr.Name]; dup {
			return nil, fmt.Errorf("duplicate track %q", tr.Name)
		}
		s.spawnTrack(tr)
		s.start = min(s.start, tr.Start())
	}
	if len(s.names) == 0 {
		return nil, ErrNoTracks
	}

	dir := cfg.Output.Dir
	if opts.OutputDir != "" {
		dir = opts.OutputDir
	}
	output, err := telemetry.NewOutputManager(dir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, err
	}
	s.output = output

	slog.Info("session started",
		"tracks", len(s.names),
		"tick_rate", cfg.Replay.TickRate,
		"start", s.start,
		"output", output.Dir(),
	)
	return s, nil
}

// spawnTrack creates the entity replaying one track.
func (s *Session) spawnTrack(tr telemetry.Track) ecs.Entity {
	facing := orient.FromTurns(s.cfg.Heading.OffsetTurns)

	track := components.Track{
		Name:   tr.Name,
		Times:  slices.Clone(tr.Times),
		Points: slices.Clone(tr.Points),
	}
	pos := components.Position{Vec: tr.Points[0]}
	vel := components.Velocity{}
	speed := components.Speed{Filter: filter.NewExponential(s.cfg.Filter.SpeedWeight)}
	heading := components.Heading{Rotation: facing, Direction: facing.DirectionY()}
	local := components.Local{Vec: s.cfg.Derived.Tee.Localize(pos.Vec)}
	landing := components.Landing{}

	s.names = append(s.names, tr.Name)
	s.speeds[tr.Name] = nil
	return s.mapper.NewEntity(&track, &pos, &vel, &speed, &heading, &local, &landing)
}

// Tick returns the number of ticks stepped so far.
func (s *Session) Tick() int {
	return s.tick
}

// Done reports whether every track has ended or the tick limit was hit.
func (s *Session) Done() bool {
	return s.done
}

// Clock returns the clock for the next tick.
func (s *Session) Clock() systems.Clock {
	dt := s.cfg.Derived.DT
	return systems.Clock{Tick: s.tick, Time: s.start + float64(s.tick)*dt, DT: dt}
}

// Step advances the replay by one tick. It returns false once the session
// is done.
func (s *Session) Step() (bool, error) {
	if s.done {
		return false, nil
	}
	clock := s.Clock()

	s.perf.StartTick()

	s.perf.StartPhase(systems.IDSampling)
	active := s.sampling.Update(clock)

	s.perf.StartPhase(systems.IDLanding)
	for _, ev := range s.landing.Update(clock) {
		if err := s.recordLanding(ev); err != nil {
			return false, err
		}
	}

	s.perf.StartPhase(systems.IDKinematics)
	s.kin.Update()

	s.perf.StartPhase(systems.IDHeading)
	s.heading.Update()

	s.perf.StartPhase(systems.IDFrame)
	s.frame.Update()

	s.perf.EndTick()

	if err := s.recordSamples(clock); err != nil {
		return false, err
	}

	s.tick++
	if s.perfEvery > 0 && s.tick%s.perfEvery == 0 {
		s.logPerf()
	}

	maxTicks := s.cfg.Replay.MaxTicks
	if active == 0 || (maxTicks > 0 && s.tick >= maxTicks) {
		s.done = true
	}
	return !s.done, nil
}

// Run steps until the session is done or maxTicks ticks were stepped by
// this call. maxTicks <= 0 means no extra limit.
func (s *Session) Run(maxTicks int) error {
	for n := 0; maxTicks <= 0 || n < maxTicks; n++ {
		more, err := s.Step()
		if err != nil {
			return fmt.Errorf("tick %d: %w", s.tick, err)
		}
		if !more {
			break
		}
	}
	return nil
}

// recordLanding logs and writes a landing event.
func (s *Session) recordLanding(ev systems.LandingEvent) error {
	s.landings[ev.Track]++
	rec := telemetry.LandingRecord{
		Track:  ev.Track,
		Tick:   ev.Tick,
		Time:   ev.Time,
		X:      ev.Point.X,
		Y:      ev.Point.Y,
		Z:      ev.Point.Z,
		LocalX: ev.Local.X,
		LocalY: ev.Local.Y,
		LocalZ: ev.Local.Z,
		Carry:  ev.Carry,
		Speed:  ev.Speed,
	}
	rec.LogLanding()
	return s.output.WriteLanding(rec)
}

// recordSamples collects one record per live track.
func (s *Session) recordSamples(clock systems.Clock) error {
	s.records = s.records[:0]

	query := s.filter.Query()
	for query.Next() {
		track, pos, _, speed, heading, local, _ := query.Get()
		if track.Ended {
			continue
		}
		if speed.Filter.Count() > 0 {
			s.raw[track.Name] = append(s.raw[track.Name], speed.Raw)
			s.speeds[track.Name] = append(s.speeds[track.Name], speed.Filter.Value())
		}
		s.records = append(s.records, telemetry.SampleRecord{
			Tick:          clock.Tick,
			Time:          clock.Time,
			Track:         track.Name,
			X:             pos.X,
			Y:             pos.Y,
			Z:             pos.Z,
			LocalX:        local.X,
			LocalY:        local.Y,
			LocalZ:        local.Z,
			Speed:         speed.Raw,
			SpeedFiltered: speed.Filter.Value(),
			HeadingTurns:  heading.Rotation.Turns(),
			HeadingDeg:    heading.Rotation.EulerAngle(),
			DirX:          heading.Direction.X,
			DirY:          heading.Direction.Y,
			DirZ:          heading.Direction.Z,
		})
	}
	return s.output.WriteSamples(s.records)
}

// Summaries returns per-track speed statistics in track order.
func (s *Session) Summaries() []telemetry.Summary {
	out := make([]telemetry.Summary, 0, len(s.names))
	for _, name := range s.names {
		sum := telemetry.Summarize(name, s.speeds[name])
		sum.Landings = s.landings[name]
		out = append(out, sum)
	}
	return out
}

// Tracks returns the replayed track names in input order.
func (s *Session) Tracks() []string {
	return slices.Clone(s.names)
}

// Speeds returns the raw and smoothed speed series recorded for track.
// Both slices have one entry per tick with a valid velocity.
func (s *Session) Speeds(track string) (raw, filtered []float64) {
	return s.raw[track], s.speeds[track]
}

// PerfStats returns the smoothed per-system timings.
func (s *Session) PerfStats() telemetry.PerfStats {
	return s.perf.Stats()
}

// logPerf logs timings using registry display names.
func (s *Session) logPerf() {
	slog.Info("perf", s.perfAttrs()...)
}

// perfAttrs returns the tick average followed by one average per system,
// keyed by display name in run order.
func (s *Session) perfAttrs() []any {
	stats := s.perf.Stats()
	attrs := []any{"tick", s.tick, "avg_tick_us", stats.AvgTickDuration.Microseconds()}
	for _, info := range s.registry.All() {
		attrs = append(attrs, info.Name, stats.PhaseAvg[info.ID].Microseconds())
	}
	return attrs
}

// Close writes summaries and releases output files.
func (s *Session) Close() error {
	summaries := s.Summaries()
	for _, sum := range summaries {
		sum.LogStats()
	}
	if s.perfEvery > 0 {
		s.perf.Stats().LogStats()
	}

	writeErr := s.output.WriteSummaries(summaries)
	closeErr := s.output.Close()
	slog.Info("session finished", "ticks", s.tick, "output", s.output.Dir())
	return errors.Join(writeErr, closeErr)
}
