package main

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/andtech/swinglab/telemetry"
)

var errNoSamples = errors.New("traceplot: no samples")

// speedSeries holds the raw and filtered speed of one track over time.
type speedSeries struct {
	Raw      plotter.XYs
	Filtered plotter.XYs
}

// groupSpeeds splits records by track, keeping first-seen track order.
func groupSpeeds(records []telemetry.SampleRecord) ([]string, map[string]*speedSeries) {
	var order []string
	series := make(map[string]*speedSeries)
	for _, r := range records {
		s, ok := series[r.Track]
		if !ok {
			s = &speedSeries{}
			series[r.Track] = s
			order = append(order, r.Track)
		}
		s.Raw = append(s.Raw, plotter.XY{X: r.Time, Y: r.Speed})
		s.Filtered = append(s.Filtered, plotter.XY{X: r.Time, Y: r.SpeedFiltered})
	}
	return order, series
}

// speedPlot draws one solid raw line and one dashed filtered line per track.
func speedPlot(title string, records []telemetry.SampleRecord) (*plot.Plot, error) {
	if len(records) == 0 {
		return nil, errNoSamples
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Speed (m/s)"

	order, series := groupSpeeds(records)
	for i, name := range order {
		s := series[name]

		raw, err := plotter.NewLine(s.Raw)
		if err != nil {
			return nil, fmt.Errorf("raw line for %s: %w", name, err)
		}
		raw.Color = plotutil.Color(i)
		raw.Width = vg.Points(1)

		filtered, err := plotter.NewLine(s.Filtered)
		if err != nil {
			return nil, fmt.Errorf("filtered line for %s: %w", name, err)
		}
		filtered.Color = plotutil.Color(i)
		filtered.Width = vg.Points(2)
		filtered.Dashes = plotutil.Dashes(1)

		p.Add(raw, filtered)
		p.Legend.Add(name+" raw", raw)
		p.Legend.Add(name+" filtered", filtered)
	}
	return p, nil
}
