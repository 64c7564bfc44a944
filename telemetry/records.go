package telemetry

import "log/slog"

// SampleRecord is one resampled track position at a tick.
type SampleRecord struct {
	Tick  int     `csv:"tick"`
	Time  float64 `csv:"time"`
	Track string  `csv:"track"`

	// World position
	X float64 `csv:"x"`
	Y float64 `csv:"y"`
	Z float64 `csv:"z"`

	// Position in tee coordinates
	LocalX float64 `csv:"local_x"`
	LocalY float64 `csv:"local_y"`
	LocalZ float64 `csv:"local_z"`

	Speed         float64 `csv:"speed"`
	SpeedFiltered float64 `csv:"speed_filtered"`

	// Snapped horizontal heading
	HeadingTurns int     `csv:"heading_turns"`
	HeadingDeg   float64 `csv:"heading_deg"`
	DirX         int     `csv:"dir_x"`
	DirY         int     `csv:"dir_y"`
	DirZ         int     `csv:"dir_z"`
}

// LandingRecord marks where a track first crossed the ground plane.
type LandingRecord struct {
	Track string  `csv:"track"`
	Tick  int     `csv:"tick"`
	Time  float64 `csv:"time"`

	X float64 `csv:"x"`
	Y float64 `csv:"y"`
	Z float64 `csv:"z"`

	LocalX float64 `csv:"local_x"`
	LocalY float64 `csv:"local_y"`
	LocalZ float64 `csv:"local_z"`

	// Distance from the tee origin along the ground
	Carry float64 `csv:"carry"`
	Speed float64 `csv:"speed_filtered"`
}

// LogLanding logs the landing using slog.
func (l LandingRecord) LogLanding() {
	slog.Info("landing",
		"track", l.Track,
		"tick", l.Tick,
		"time", l.Time,
		"carry", l.Carry,
		"speed", l.Speed,
	)
}
