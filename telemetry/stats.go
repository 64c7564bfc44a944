package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds aggregated speed statistics for one track.
type Summary struct {
	Track    string  `csv:"track"`
	Samples  int     `csv:"samples"`
	Mean     float64 `csv:"speed_mean"`
	StdDev   float64 `csv:"speed_std"`
	P50      float64 `csv:"speed_p50"`
	P90      float64 `csv:"speed_p90"`
	Max      float64 `csv:"speed_max"`
	Landings int     `csv:"landings"`
}

// Summarize computes speed statistics. Empty input yields a zero summary.
func Summarize(track string, speeds []float64) Summary {
	s := Summary{Track: track, Samples: len(speeds)}
	if len(speeds) == 0 {
		return s
	}

	sorted := slices.Clone(speeds)
	slices.Sort(sorted)

	s.Mean = stat.Mean(sorted, nil)
	if len(sorted) > 1 {
		s.StdDev = stat.StdDev(sorted, nil)
	}
	s.P50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	s.P90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	s.Max = floats.Max(sorted)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("track", s.Track),
		slog.Int("samples", s.Samples),
		slog.Float64("speed_mean", s.Mean),
		slog.Float64("speed_std", s.StdDev),
		slog.Float64("speed_p50", s.P50),
		slog.Float64("speed_p90", s.P90),
		slog.Float64("speed_max", s.Max),
		slog.Int("landings", s.Landings),
	)
}

// LogStats logs the summary using slog.
func (s Summary) LogStats() {
	slog.Info("summary", "track", s.Track, "stats", s)
}
