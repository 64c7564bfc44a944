package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(0.5)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase("sampling")
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase("kinematics")
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	assert.Equal(t, 5, stats.Ticks)
	assert.Positive(t, stats.AvgTickDuration)
	assert.Positive(t, stats.TicksPerSecond)
	assert.LessOrEqual(t, stats.MinTickDuration, stats.MaxTickDuration)
	assert.Equal(t, []string{"sampling", "kinematics"}, stats.Phases)

	require.Contains(t, stats.PhaseAvg, "sampling")
	require.Contains(t, stats.PhaseAvg, "kinematics")
	assert.GreaterOrEqual(t, stats.PhaseAvg["kinematics"], 200*time.Microsecond)
}

func TestPerfCollector_Empty(t *testing.T) {
	stats := NewPerfCollector(0).Stats()
	assert.Zero(t, stats.Ticks)
	assert.Zero(t, stats.AvgTickDuration)
	assert.Empty(t, stats.PhaseAvg)
	assert.NotPanics(t, func() { _ = stats.LogValue() })
}

func TestPerfCollector_PhaseNotRepeatedInOrder(t *testing.T) {
	pc := NewPerfCollector(1)
	for i := 0; i < 3; i++ {
		pc.StartTick()
		pc.StartPhase("a")
		pc.StartPhase("b")
		pc.EndTick()
	}
	assert.Equal(t, []string{"a", "b"}, pc.Stats().Phases)
}
