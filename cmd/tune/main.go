// Package main searches for the speed filter weight that best trades lag
// against roughness on a recorded trace.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/andtech/swinglab/config"
	"github.com/andtech/swinglab/telemetry"
)

// evalRow is one line of tune_log.csv.
type evalRow struct {
	Eval        int     `csv:"eval"`
	Fitness     float64 `csv:"fitness"`
	Lag         float64 `csv:"lag"`
	SpeedWeight float64 `csv:"speed_weight"`
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	tracePath := flag.String("trace", "", "Path to the recorded trace CSV")
	maxEvals := flag.Int("max-evals", 60, "Maximum number of evaluations")
	lambda := flag.Float64("lambda", 1, "Weight of roughness against lag")
	outputDir := flag.String("output", "", "Output directory for results")
	verbose := flag.Bool("v", false, "Log every replay")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *outputDir == "" || *tracePath == "" {
		fmt.Fprintln(os.Stderr, "--output and --trace are required")
		os.Exit(2)
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	baseCfg := config.Cfg()

	tracks, err := telemetry.LoadTrace(*tracePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load trace: %v\n", err)
		os.Exit(1)
	}

	params := NewParamVector()
	evaluator := NewFitnessEvaluator(params, tracks, baseCfg, *lambda)

	var rows []evalRow
	var evalErr error
	bestFitness := math.Inf(1)
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			clamped := params.Clamp(params.Denormalize(x))
			fitness, err := evaluator.Evaluate(clamped)
			if err != nil {
				evalErr = err
				return math.Inf(1)
			}
			// Penalize leaving the box so the simplex walks back in.
			for i, v := range params.Normalize(clamped) {
				fitness += (x[i] - v) * (x[i] - v)
			}

			rows = append(rows, evalRow{
				Eval:        len(rows) + 1,
				Fitness:     fitness,
				Lag:         evaluator.LastLag(),
				SpeedWeight: clamped[0],
			})
			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = clamped
			}

			elapsed := time.Since(startTime)
			fmt.Printf("Eval %d/%d: weight=%.4f fitness=%.6f (best=%.6f) | elapsed: %s\n",
				len(rows), *maxEvals, clamped[0], fitness, bestFitness, formatDuration(elapsed))
			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
	}

	fmt.Printf("Starting Nelder-Mead with %d parameters, max_evals=%d, lambda=%g\n",
		params.Dim(), *maxEvals, *lambda)

	initX := params.Normalize(params.ExtractFromConfig(baseCfg))
	if _, err := optimize.Minimize(problem, initX, settings, &optimize.NelderMead{}); err != nil {
		slog.Warn("optimization ended", "error", err)
	}
	if evalErr != nil {
		fmt.Fprintf(os.Stderr, "replay failed: %v\n", evalErr)
		os.Exit(1)
	}
	if bestParams == nil {
		bestParams = params.DefaultVector()
	}

	logPath := filepath.Join(*outputDir, "tune_log.csv")
	f, err := os.Create(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write log file: %v\n", err)
	}

	fmt.Printf("\nTuning complete after %d evaluations in %s\n", len(rows), formatDuration(time.Since(startTime)))
	fmt.Printf("Best fitness: %.6f\n", bestFitness)
	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Name, bestParams[i])
	}

	bestCfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to reload config: %v\n", err)
		os.Exit(1)
	}
	params.ApplyToConfig(bestCfg, bestParams)
	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write best config: %v\n", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}
