package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/andtech/swinglab/config"
)

// Output file names inside the output directory.
const (
	SamplesFile  = "samples.csv"
	LandingsFile = "landings.csv"
	SummaryFile  = "summary.csv"
	ConfigFile   = "config.yaml"
)

// csvStream appends records to a CSV file, writing the header once.
type csvStream struct {
	file          *os.File
	headerWritten bool
}

func (s *csvStream) write(records any) error {
	if !s.headerWritten {
		if err := gocsv.Marshal(records, s.file); err != nil {
			return err
		}
		s.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, s.file)
}

// OutputManager handles run output with CSV logging.
// A nil *OutputManager is valid and discards everything.
type OutputManager struct {
	dir      string
	samples  csvStream
	landings csvStream
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, SamplesFile))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", SamplesFile, err)
	}
	om.samples.file = f

	f, err = os.Create(filepath.Join(dir, LandingsFile))
	if err != nil {
		om.samples.file.Close()
		return nil, fmt.Errorf("creating %s: %w", LandingsFile, err)
	}
	om.landings.file = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, ConfigFile))
}

// WriteSamples appends sample records to samples.csv.
func (om *OutputManager) WriteSamples(records []SampleRecord) error {
	if om == nil || len(records) == 0 {
		return nil
	}
	if err := om.samples.write(records); err != nil {
		return fmt.Errorf("writing samples: %w", err)
	}
	return nil
}

// WriteLanding appends a landing record to landings.csv.
func (om *OutputManager) WriteLanding(l LandingRecord) error {
	if om == nil {
		return nil
	}
	if err := om.landings.write([]LandingRecord{l}); err != nil {
		return fmt.Errorf("writing landing: %w", err)
	}
	return nil
}

// WriteSummaries writes per-track summaries to summary.csv.
func (om *OutputManager) WriteSummaries(summaries []Summary) error {
	if om == nil {
		return nil
	}
	f, err := os.Create(filepath.Join(om.dir, SummaryFile))
	if err != nil {
		return fmt.Errorf("creating %s: %w", SummaryFile, err)
	}
	defer f.Close()
	if err := gocsv.Marshal(summaries, f); err != nil {
		return fmt.Errorf("writing summaries: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{om.samples.file, om.landings.file} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ReadSamples loads a samples.csv written by an OutputManager.
func ReadSamples(path string) ([]SampleRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening samples: %w", err)
	}
	defer f.Close()

	var records []SampleRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("parsing samples: %w", err)
	}
	return records, nil
}
