package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

const sampleTrace = `track,t,x,y,z
ball,0.02,0,1,2
bat,0,5,5,5
ball,0,0,1,0
ball,0.01,0,1,1
bat,0.01,6,5,5
`

func TestReadTrace(t *testing.T) {
	tracks, err := ReadTrace(strings.NewReader(sampleTrace))
	require.NoError(t, err)
	require.Len(t, tracks, 2)

	ball := tracks[0]
	assert.Equal(t, "ball", ball.Name)
	assert.Equal(t, []float64{0, 0.01, 0.02}, ball.Times)
	assert.Equal(t, []r3.Vec{{Y: 1}, {Y: 1, Z: 1}, {Y: 1, Z: 2}}, ball.Points)
	assert.Equal(t, 0.0, ball.Start())
	assert.Equal(t, 0.02, ball.End())

	assert.Equal(t, "bat", tracks[1].Name)
	assert.Len(t, tracks[1].Times, 2)
}

func TestLoadTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleTrace), 0644))

	tracks, err := LoadTrace(path)
	require.NoError(t, err)
	assert.Len(t, tracks, 2)

	_, err = LoadTrace(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestGroupTraceRejectsBadRows(t *testing.T) {
	_, err := GroupTrace([]TracePoint{{Track: "", Time: 0}})
	assert.Error(t, err)

	_, err = ReadTrace(strings.NewReader("track,t,x,y,z\nball,notanumber,0,0,0\n"))
	assert.Error(t, err)
}

func TestGroupTraceStableOnEqualTimes(t *testing.T) {
	tracks, err := GroupTrace([]TracePoint{
		{Track: "a", Time: 1, X: 1},
		{Track: "a", Time: 1, X: 2},
		{Track: "a", Time: 0, X: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, []float64{tracks[0].Points[0].X, tracks[0].Points[1].X, tracks[0].Points[2].X})
}
