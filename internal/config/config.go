// Package config loads and validates simulation configuration from YAML,
// with built-in presets for the standard scenarios. Constants that were
// once process-wide (gravitational constant, frame rate, softening floor)
// live here and are threaded into the driver and force-law constructors,
// so multiple simulations can run with different values in one process.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS           = 60
	DefaultStepsPerFrame = 8
	DefaultDuration      = 10.0
	DefaultG             = 1000.0
	DefaultSoftening     = 1.0
)

type Config struct {
	Scenario      string  `yaml:"scenario"`
	Mode          string  `yaml:"mode"` // verlet (default) or basic
	FPS           int     `yaml:"fps"`
	StepsPerFrame int     `yaml:"steps_per_frame"`
	Duration      float64 `yaml:"duration"`
	Workers       int     `yaml:"workers"`
	Snapshot      bool    `yaml:"snapshot"` // double-buffer peer positions each sub-step

	G         float64 `yaml:"g"`
	Softening float64 `yaml:"softening"`

	Center         CenterConfig `yaml:"center"`
	ForceMagnitude float64      `yaml:"force_magnitude"` // orbital k
	SpringK        float64      `yaml:"spring_k"`
	Drag           float64      `yaml:"drag"`

	Bodies []BodyConfig `yaml:"bodies"`
}

type CenterConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// BodyConfig describes one body's initial conditions. Velocity is given in
// polar form: a speed and a heading in degrees.
type BodyConfig struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Radius  float64 `yaml:"radius"`
	Mass    float64 `yaml:"mass"`
	Speed   float64 `yaml:"speed"`
	Heading float64 `yaml:"heading"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:      "orbit",
		Mode:          "verlet",
		FPS:           DefaultFPS,
		StepsPerFrame: DefaultStepsPerFrame,
		Duration:      DefaultDuration,
		G:             DefaultG,
		Softening:     DefaultSoftening,
	}
}

// Load reads a YAML config file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML, for seeding editable scenario files.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("config: fps must be positive, got %d", c.FPS)
	}
	if c.StepsPerFrame <= 0 {
		return fmt.Errorf("config: steps_per_frame must be positive, got %d", c.StepsPerFrame)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("config: duration must be positive, got %g", c.Duration)
	}
	if c.Softening <= 0 {
		return fmt.Errorf("config: softening must be positive, got %g", c.Softening)
	}
	for i, b := range c.Bodies {
		if b.Mass <= 0 {
			return fmt.Errorf("config: body %d mass must be positive, got %g", i, b.Mass)
		}
	}
	return nil
}
