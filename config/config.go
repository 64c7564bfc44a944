// Package config provides configuration loading and access for the replay.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"github.com/andtech/swinglab/frame"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all replay configuration parameters.
type Config struct {
	Replay  ReplayConfig  `yaml:"replay"`
	Filter  FilterConfig  `yaml:"filter"`
	Tee     TeeConfig     `yaml:"tee"`
	Heading HeadingConfig `yaml:"heading"`
	Landing LandingConfig `yaml:"landing"`
	Output  OutputConfig  `yaml:"output"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ReplayConfig holds tick timing.
type ReplayConfig struct {
	TickRate float64 `yaml:"tick_rate"` // Ticks per second of trace time
	MaxTicks int     `yaml:"max_ticks"` // Stop after this many ticks (0 = until every track ends)
}

// FilterConfig holds smoothing parameters.
type FilterConfig struct {
	SpeedWeight float64 `yaml:"speed_weight"` // Exponential weight for speed smoothing
}

// TeeConfig describes the tee transform that positions are localized into.
type TeeConfig struct {
	Right    Vec3 `yaml:"right"`
	Up       Vec3 `yaml:"up"`
	Forward  Vec3 `yaml:"forward"`
	Scale    Vec3 `yaml:"scale"`
	Position Vec3 `yaml:"position"`
}

// HeadingConfig holds heading quantization parameters.
type HeadingConfig struct {
	OffsetTurns int `yaml:"offset_turns"` // Turns added to every snapped heading (tee facing)
}

// LandingConfig holds landing detection parameters.
type LandingConfig struct {
	GroundHeight float64 `yaml:"ground_height"`
}

// OutputConfig holds run artifact settings.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Empty disables CSV output
}

// Vec3 is a YAML friendly [x, y, z] triple.
type Vec3 [3]float64

// R3 converts to a gonum vector.
func (v Vec3) R3() r3.Vec {
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT  float64      // 1 / Replay.TickRate
	Tee *frame.Basis // Tee frame built from TeeConfig
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse is like Load but reads the user overlay from memory.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid value")

// computeDerived validates the config and calculates derived values.
func (c *Config) computeDerived() error {
	if c.Replay.TickRate <= 0 {
		return fmt.Errorf("replay.tick_rate must be positive, got %g: %w", c.Replay.TickRate, ErrInvalid)
	}
	if c.Replay.MaxTicks < 0 {
		return fmt.Errorf("replay.max_ticks must not be negative, got %d: %w", c.Replay.MaxTicks, ErrInvalid)
	}
	c.Derived.DT = 1 / c.Replay.TickRate

	tee := &frame.Basis{}
	t := c.Tee
	if err := tee.SetupFromFrame(t.Right.R3(), t.Up.R3(), t.Forward.R3(), t.Scale.R3(), t.Position.R3()); err != nil {
		return fmt.Errorf("building tee frame: %w", err)
	}
	c.Derived.Tee = tee
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
