package main

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andtech/swinglab/config"
	"github.com/andtech/swinglab/telemetry"
)

func TestParamVector_RoundTrip(t *testing.T) {
	pv := NewParamVector()
	require.Equal(t, 1, pv.Dim())

	norm := pv.Normalize([]float64{pv.Specs[0].Min})
	assert.Equal(t, []float64{0}, norm)
	assert.InDelta(t, 0.5, pv.Denormalize(pv.Normalize([]float64{0.5}))[0], 1e-12)
	assert.Equal(t, []float64{pv.Specs[0].Max}, pv.Clamp([]float64{3}))

	cfg, err := config.Load("")
	require.NoError(t, err)
	pv.ApplyToConfig(cfg, []float64{-1})
	assert.Equal(t, []float64{pv.Specs[0].Min}, pv.ExtractFromConfig(cfg))
}

func TestSmoothingCost(t *testing.T) {
	lag, rough := smoothingCost([]float64{1, 3, 5}, []float64{1, 2, 4})
	assert.InDelta(t, 2.0/3, lag, 1e-12)
	assert.InDelta(t, 2.5, rough, 1e-12)

	lag, rough = smoothingCost(nil, nil)
	assert.Zero(t, lag)
	assert.Zero(t, rough)
}

func TestFitnessEvaluator_TradesLagForRoughness(t *testing.T) {
	cfg, err := config.Parse([]byte("replay:\n  tick_rate: 10\n"))
	require.NoError(t, err)
	tracks, err := telemetry.ReadTrace(strings.NewReader(zigzagTrace(40)))
	require.NoError(t, err)

	fe := NewFitnessEvaluator(NewParamVector(), tracks, cfg, 0)
	noSmoothing, err := fe.Evaluate([]float64{1})
	require.NoError(t, err)
	assert.InDelta(t, 0, noSmoothing, 1e-9, "weight 1 follows raw speed exactly")

	heavy, err := fe.Evaluate([]float64{0.1})
	require.NoError(t, err)
	assert.Greater(t, heavy, noSmoothing)
	assert.Equal(t, heavy, fe.LastLag())
}

// zigzagTrace writes n samples 0.1s apart whose step alternates between 1
// and 3 so smoothing has something to remove.
func zigzagTrace(n int) string {
	var b strings.Builder
	b.WriteString("track,t,x,y,z\n")
	x := 0.0
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			x++
		} else {
			x += 3
		}
		t := strconv.FormatFloat(float64(i)/10, 'g', -1, 64)
		b.WriteString("ball," + t + "," + strconv.FormatFloat(x, 'g', -1, 64) + ",0,0\n")
	}
	return b.String()
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1m05s", formatDuration(65*time.Second))
	assert.Equal(t, "2h00m01s", formatDuration(2*time.Hour+time.Second))
}
