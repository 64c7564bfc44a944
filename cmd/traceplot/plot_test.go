package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/andtech/swinglab/telemetry"
)

func TestGroupSpeeds(t *testing.T) {
	records := []telemetry.SampleRecord{
		{Track: "ball", Time: 0, Speed: 1, SpeedFiltered: 1},
		{Track: "bat", Time: 0, Speed: 5, SpeedFiltered: 5},
		{Track: "ball", Time: 0.1, Speed: 3, SpeedFiltered: 2},
	}

	order, series := groupSpeeds(records)
	assert.Equal(t, []string{"ball", "bat"}, order)
	assert.Equal(t, plotter.XYs{{X: 0, Y: 1}, {X: 0.1, Y: 3}}, series["ball"].Raw)
	assert.Equal(t, plotter.XYs{{X: 0, Y: 1}, {X: 0.1, Y: 2}}, series["ball"].Filtered)
	assert.Len(t, series["bat"].Raw, 1)
}

func TestSpeedPlot(t *testing.T) {
	_, err := speedPlot("empty", nil)
	assert.ErrorIs(t, err, errNoSamples)

	p, err := speedPlot("drive", []telemetry.SampleRecord{
		{Track: "ball", Time: 0, Speed: 1, SpeedFiltered: 1},
		{Track: "ball", Time: 0.1, Speed: 3, SpeedFiltered: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, "drive", p.Title.Text)

	out := filepath.Join(t.TempDir(), "speed.png")
	require.NoError(t, p.Save(4*vg.Inch, 3*vg.Inch, out))
	assert.FileExists(t, out)
}
