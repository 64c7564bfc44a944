package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/andtech/swinglab/config"
	"github.com/andtech/swinglab/game"
	"github.com/andtech/swinglab/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	tracePath := flag.String("trace", "", "Path to the recorded trace CSV (track,t,x,y,z)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = until every track ends)")
	logStats := flag.Bool("log-stats", false, "Log per-system timings via slog")
	statsEvery := flag.Int("stats-every", 90, "Ticks between timing logs when -log-stats is set")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if *tracePath == "" {
		slog.Error("missing -trace")
		flag.Usage()
		os.Exit(2)
	}

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	tracks, err := telemetry.LoadTrace(*tracePath)
	if err != nil {
		slog.Error("failed to load trace", "path", *tracePath, "error", err)
		os.Exit(1)
	}

	opts := game.Options{OutputDir: *outputDir}
	if *logStats {
		opts.PerfEvery = max(*statsEvery, 1)
	}

	s, err := game.NewSession(nil, tracks, opts)
	if err != nil {
		slog.Error("failed to start session", "error", err)
		os.Exit(1)
	}

	slog.Info("starting replay",
		"trace", *tracePath,
		"tracks", len(tracks),
		"max_ticks", *maxTicks,
	)

	runErr := s.Run(*maxTicks)
	if runErr != nil {
		slog.Error("replay failed", "tick", s.Tick(), "error", runErr)
	}
	if err := s.Close(); err != nil {
		slog.Error("failed to write output", "error", err)
		os.Exit(1)
	}
	if runErr != nil {
		os.Exit(1)
	}
}
