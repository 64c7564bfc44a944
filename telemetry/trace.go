package telemetry

import (
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"sort"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/spatial/r3"
)

// TracePoint is one recorded position of a tracked object.
type TracePoint struct {
	Track string  `csv:"track"`
	Time  float64 `csv:"t"`
	X     float64 `csv:"x"`
	Y     float64 `csv:"y"`
	Z     float64 `csv:"z"`
}

// Pos returns the point position.
func (p TracePoint) Pos() r3.Vec {
	return r3.Vec{X: p.X, Y: p.Y, Z: p.Z}
}

// Track is the time ordered trace of one object.
type Track struct {
	Name   string
	Times  []float64
	Points []r3.Vec
}

// Start returns the first sample time.
func (t Track) Start() float64 { return t.Times[0] }

// End returns the last sample time.
func (t Track) End() float64 { return t.Times[len(t.Times)-1] }

// ReadTrace parses a trace CSV and groups it into tracks ordered by name.
// Points within a track are sorted by time; points with equal times keep
// their file order.
func ReadTrace(r io.Reader) ([]Track, error) {
	var points []TracePoint
	if err := gocsv.Unmarshal(r, &points); err != nil {
		return nil, fmt.Errorf("parsing trace: %w", err)
	}
	return GroupTrace(points)
}

// LoadTrace reads a trace CSV file.
func LoadTrace(path string) ([]Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace: %w", err)
	}
	defer f.Close()
	return ReadTrace(f)
}

// GroupTrace groups points into tracks.
func GroupTrace(points []TracePoint) ([]Track, error) {
	byName := make(map[string][]TracePoint)
	for i, p := range points {
		if p.Track == "" {
			return nil, fmt.Errorf("trace row %d: missing track name", i+1)
		}
		if math.IsNaN(p.Time) || math.IsInf(p.Time, 0) {
			return nil, fmt.Errorf("trace row %d: invalid time %v", i+1, p.Time)
		}
		byName[p.Track] = append(byName[p.Track], p)
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	slices.Sort(names)

	tracks := make([]Track, 0, len(names))
	for _, name := range names {
		pts := byName[name]
		sort.SliceStable(pts, func(a, b int) bool { return pts[a].Time < pts[b].Time })

		tr := Track{
			Name:   name,
			Times:  make([]float64, len(pts)),
			Points: make([]r3.Vec, len(pts)),
		}
		for i, p := range pts {
			tr.Times[i] = p.Time
			tr.Points[i] = p.Pos()
		}
		tracks = append(tracks, tr)
	}
	return tracks, nil
}
