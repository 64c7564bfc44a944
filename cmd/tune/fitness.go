package main

import (
	"errors"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/andtech/swinglab/config"
	"github.com/andtech/swinglab/game"
	"github.com/andtech/swinglab/telemetry"
)

var errNoSpeeds = errors.New("tune: replay produced no speed samples")

// FitnessEvaluator replays the trace headlessly and scores the smoothed
// speed. Lower is better.
type FitnessEvaluator struct {
	params     *ParamVector
	tracks     []telemetry.Track
	baseConfig *config.Config
	lambda     float64

	bestFitness float64
	lastLag     float64 // lag term from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator. lambda weighs roughness
// against lag.
func NewFitnessEvaluator(params *ParamVector, tracks []telemetry.Track, baseCfg *config.Config, lambda float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		tracks:      tracks,
		baseConfig:  baseCfg,
		lambda:      lambda,
		bestFitness: math.Inf(1),
	}
}

// LastLag returns the lag term from the most recent evaluation.
func (fe *FitnessEvaluator) LastLag() float64 {
	return fe.lastLag
}

// Evaluate runs one replay with the given raw parameter values.
func (fe *FitnessEvaluator) Evaluate(raw []float64) (float64, error) {
	cfg := *fe.baseConfig
	cfg.Output.Dir = ""
	fe.params.ApplyToConfig(&cfg, raw)

	s, err := game.NewSession(&cfg, fe.tracks, game.Options{})
	if err != nil {
		return 0, err
	}
	if err := s.Run(0); err != nil {
		return 0, err
	}

	var lag, rough float64
	var n int
	for _, name := range s.Tracks() {
		rawSpeed, filtered := s.Speeds(name)
		l, r := smoothingCost(rawSpeed, filtered)
		lag += l * float64(len(rawSpeed))
		rough += r * float64(len(rawSpeed))
		n += len(rawSpeed)
	}
	if n == 0 {
		return 0, errNoSpeeds
	}
	lag /= float64(n)
	rough /= float64(n)

	fitness := lag + fe.lambda*rough
	fe.lastLag = lag
	if fitness < fe.bestFitness {
		fe.bestFitness = fitness
		slog.Debug("new best", "fitness", fitness, "params", raw)
	}
	return fitness, nil
}

// smoothingCost returns the mean squared distance between raw and filtered
// (lag) and the mean squared step of filtered (roughness).
func smoothingCost(raw, filtered []float64) (lag, rough float64) {
	if len(raw) == 0 || len(raw) != len(filtered) {
		return 0, 0
	}
	d := floats.Distance(raw, filtered, 2)
	lag = d * d / float64(len(raw))

	if len(filtered) > 1 {
		steps := make([]float64, len(filtered)-1)
		floats.SubTo(steps, filtered[1:], filtered[:len(filtered)-1])
		rough = floats.Dot(steps, steps) / float64(len(steps))
	}
	return lag, rough
}
