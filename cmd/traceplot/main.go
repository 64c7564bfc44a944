// Command traceplot renders raw and smoothed speed per track from a replay's
// samples.csv.
package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"gonum.org/v1/plot/vg"

	"github.com/andtech/swinglab/telemetry"
)

func main() {
	samplesPath := flag.String("samples", "", "Path to samples.csv written by a replay run")
	outPath := flag.String("out", "", "Output PNG (default: speed.png next to samples)")
	title := flag.String("title", "Speed", "Plot title")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if *samplesPath == "" {
		slog.Error("missing -samples")
		flag.Usage()
		os.Exit(2)
	}
	out := *outPath
	if out == "" {
		out = filepath.Join(filepath.Dir(*samplesPath), "speed.png")
	}

	records, err := telemetry.ReadSamples(*samplesPath)
	if err != nil {
		slog.Error("failed to read samples", "path", *samplesPath, "error", err)
		os.Exit(1)
	}

	p, err := speedPlot(*title, records)
	if err != nil {
		slog.Error("failed to build plot", "error", err)
		os.Exit(1)
	}
	if err := p.Save(14*vg.Inch, 6*vg.Inch, out); err != nil {
		slog.Error("failed to save plot", "path", out, "error", err)
		os.Exit(1)
	}
	slog.Info("wrote plot", "path", out, "samples", len(records))
}
