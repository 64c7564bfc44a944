package telemetry

import (
	"log/slog"
	"time"

	"github.com/andtech/swinglab/filter"
)

// PerfCollector tracks per-phase tick timing. Durations are smoothed with
// an exponential filter instead of a fixed window.
type PerfCollector struct {
	weight     float64
	tick       *filter.Exponential
	phases     map[string]*filter.Exponential
	order      []string
	current    map[string]time.Duration
	tickStart  time.Time
	phaseStart time.Time
	lastPhase  string
	minTick    time.Duration
	maxTick    time.Duration
}

// NewPerfCollector creates a new performance collector. weight is the
// smoothing weight given to each new tick; values outside (0, 1] fall back
// to filter.DefaultWeight.
func NewPerfCollector(weight float64) *PerfCollector {
	if weight <= 0 || weight > 1 {
		weight = filter.DefaultWeight
	}
	return &PerfCollector{
		weight:  weight,
		tick:    filter.NewExponential(weight),
		phases:  make(map[string]*filter.Exponential),
		current: make(map[string]time.Duration),
	}
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	clear(p.current)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase, ending the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.current[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndTick finishes timing the current tick and folds it into the averages.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	if p.lastPhase != "" {
		p.current[p.lastPhase] += now.Sub(p.phaseStart)
	}

	d := now.Sub(p.tickStart)
	if p.tick.Count() == 0 || d < p.minTick {
		p.minTick = d
	}
	if d > p.maxTick {
		p.maxTick = d
	}
	p.tick.Add(float64(d))

	for phase, dur := range p.current {
		f, ok := p.phases[phase]
		if !ok {
			f = filter.NewExponential(p.weight)
			p.phases[phase] = f
			p.order = append(p.order, phase)
		}
		f.Add(float64(dur))
	}
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	Ticks           int
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Phase breakdown in first-seen order
	Phases   []string
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	TicksPerSecond float64
}

// Stats returns the current smoothed statistics.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{
		Ticks:    p.tick.Count(),
		Phases:   append([]string(nil), p.order...),
		PhaseAvg: make(map[string]time.Duration, len(p.phases)),
		PhasePct: make(map[string]float64, len(p.phases)),
	}
	if stats.Ticks == 0 {
		return stats
	}

	avg := time.Duration(p.tick.Value())
	stats.AvgTickDuration = avg
	stats.MinTickDuration = p.minTick
	stats.MaxTickDuration = p.maxTick
	for phase, f := range p.phases {
		stats.PhaseAvg[phase] = time.Duration(f.Value())
		if avg > 0 {
			stats.PhasePct[phase] = f.Value() / float64(avg) * 100
		}
	}
	if avg > 0 {
		stats.TicksPerSecond = float64(time.Second) / float64(avg)
	}
	return stats
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	slog.Info("perf", "stats", s)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("ticks", s.Ticks),
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	for _, phase := range s.Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}
