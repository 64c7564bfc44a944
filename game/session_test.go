package game

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andtech/swinglab/config"
	"github.com/andtech/swinglab/systems"
	"github.com/andtech/swinglab/telemetry"
)

const dropTrace = `track,t,x,y,z
ball,0,0,1,0
ball,0.1,1,0.5,0
ball,0.2,2,-0.5,0
ball,0.3,3,-1.5,0
`

func testConfig(t *testing.T, overlay string) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte("replay:\n  tick_rate: 10\n" + overlay))
	require.NoError(t, err)
	return cfg
}

func testTracks(t *testing.T, trace string) []telemetry.Track {
	t.Helper()
	tracks, err := telemetry.ReadTrace(strings.NewReader(trace))
	require.NoError(t, err)
	return tracks
}

func TestSession_RunsUntilTracksEnd(t *testing.T) {
	dir := t.TempDir()
	s, err := NewSession(testConfig(t, ""), testTracks(t, dropTrace), Options{OutputDir: dir})
	require.NoError(t, err)

	require.NoError(t, s.Run(0))
	assert.True(t, s.Done())
	assert.Equal(t, 5, s.Tick(), "the second tick past the last sample ends the run")

	more, err := s.Step()
	require.NoError(t, err)
	assert.False(t, more)
	assert.Equal(t, 5, s.Tick())

	summaries := s.Summaries()
	require.Len(t, summaries, 1)
	sum := summaries[0]
	assert.Equal(t, "ball", sum.Track)
	assert.Equal(t, 3, sum.Samples)
	assert.Equal(t, 1, sum.Landings)
	assert.InDelta(t, 0.25*math.Sqrt(125)+0.75*math.Sqrt(200), sum.Max, 1e-9)

	assert.Equal(t, []string{"ball"}, s.Tracks())
	raw, filtered := s.Speeds("ball")
	require.Len(t, raw, 3)
	require.Len(t, filtered, 3)
	assert.InDelta(t, math.Sqrt(200), raw[1], 1e-9)
	assert.InDelta(t, math.Sqrt(200), raw[2], 1e-9, "final segment is measured")
	assert.Equal(t, raw[0], filtered[0], "first sample bootstraps the filter")

	require.NoError(t, s.Close())

	samples, err := telemetry.ReadSamples(filepath.Join(dir, telemetry.SamplesFile))
	require.NoError(t, err)
	require.Len(t, samples, 4)
	assert.InDelta(t, 3, samples[3].X, 1e-12, "last point is replayed")
	assert.Equal(t, 2, samples[2].Tick)
	assert.InDelta(t, 2, samples[2].X, 1e-12)
	assert.Equal(t, 2, samples[2].HeadingTurns, "moving towards +X")
	assert.Equal(t, 1, samples[2].DirX)

	landings, err := os.ReadFile(filepath.Join(dir, telemetry.LandingsFile))
	require.NoError(t, err)
	assert.Contains(t, string(landings), "ball")

	for _, name := range []string{telemetry.SummaryFile, telemetry.ConfigFile} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestSession_LandsBetweenLastTickAndTraceEnd(t *testing.T) {
	trace := "track,t,x,y,z\nball,0,0,3,0\nball,0.1,0,2,1\nball,0.2,0,1,2\nball,0.25,0,-1,3\n"
	dir := t.TempDir()
	s, err := NewSession(testConfig(t, ""), testTracks(t, trace), Options{OutputDir: dir})
	require.NoError(t, err)

	require.NoError(t, s.Run(0))
	summaries := s.Summaries()
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].Landings)

	raw, _ := s.Speeds("ball")
	require.Len(t, raw, 3)
	assert.InDelta(t, math.Sqrt(5)/0.05, raw[2], 1e-6)

	require.NoError(t, s.Close())
	data, err := os.ReadFile(filepath.Join(dir, telemetry.LandingsFile))
	require.NoError(t, err)
	var landings []telemetry.LandingRecord
	require.NoError(t, gocsv.UnmarshalBytes(data, &landings))
	require.Len(t, landings, 1)
	assert.Equal(t, 3, landings[0].Tick)
	assert.InDelta(t, 0.225, landings[0].Time, 1e-9)
	assert.InDelta(t, 2.5, landings[0].Carry, 1e-9)
}

func TestSession_MaxTicks(t *testing.T) {
	s, err := NewSession(testConfig(t, "  max_ticks: 2\n"), testTracks(t, dropTrace), Options{})
	require.NoError(t, err)

	require.NoError(t, s.Run(1))
	assert.Equal(t, 1, s.Tick())
	assert.False(t, s.Done())

	require.NoError(t, s.Run(0))
	assert.Equal(t, 2, s.Tick())
	assert.True(t, s.Done())
	assert.NoError(t, s.Close())
}

func TestSession_PerfAttrsUseDisplayNames(t *testing.T) {
	s, err := NewSession(testConfig(t, ""), testTracks(t, dropTrace), Options{PerfEvery: 1})
	require.NoError(t, err)
	require.NoError(t, s.Run(2))

	attrs := s.perfAttrs()
	require.Len(t, attrs, 4+2*len(systems.NewSystemRegistry().All()))
	assert.Equal(t, []any{"tick", 2}, attrs[:2])
	var keys []any
	for i := 4; i < len(attrs); i += 2 {
		keys = append(keys, attrs[i])
	}
	assert.Equal(t, []any{"Sampling", "Landing", "Kinematics", "Heading", "Frame"}, keys)
	assert.NoError(t, s.Close())
}

func TestSession_ClockStartsAtEarliestTrack(t *testing.T) {
	trace := "track,t,x,y,z\nlate,5,0,0,0\nlate,6,0,0,0\nearly,4.5,0,0,0\nearly,7,0,0,0\n"
	s, err := NewSession(testConfig(t, ""), testTracks(t, trace), Options{})
	require.NoError(t, err)

	assert.Equal(t, systems.Clock{Tick: 0, Time: 4.5, DT: 0.1}, s.Clock())
	_, err = s.Step()
	require.NoError(t, err)
	assert.InDelta(t, 4.6, s.Clock().Time, 1e-12)
}

func TestSession_NoTracks(t *testing.T) {
	_, err := NewSession(testConfig(t, ""), nil, Options{})
	assert.ErrorIs(t, err, ErrNoTracks)

	_, err = NewSession(testConfig(t, ""), []telemetry.Track{{Name: "empty"}}, Options{})
	assert.ErrorIs(t, err, ErrNoTracks)
}

func TestSession_DuplicateTrack(t *testing.T) {
	tracks := testTracks(t, dropTrace)
	_, err := NewSession(testConfig(t, ""), append(tracks, tracks[0]), Options{})
	assert.Error(t, err)
}
