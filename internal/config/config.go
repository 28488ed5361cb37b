// Package config loads run and problem configuration from yaml and
// provides per-domain presets.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt        = 0.01
	DefaultSteps     = 1000
	DefaultSubsteps  = 4
	DefaultTolerance = 1e-9
)

// Config is the full yaml surface of the CLI.
type Config struct {
	Run     RunConfig     `yaml:"run"`
	Problem ProblemConfig `yaml:"problem"`
}

// RunConfig drives a simulation.
type RunConfig struct {
	Dt        float64 `yaml:"dt"`
	Steps     int     `yaml:"steps"`
	Substeps  int     `yaml:"substeps"`
	GeoWeight float64 `yaml:"geo_weight"`
	Tolerance float64 `yaml:"tolerance"` // MBOTS pairing tolerance

	// Excite lists initial excitations as node -> amplitude magnitude.
	Excite map[int]float64 `yaml:"excite"`

	// Drive selects the energy pathway: constant, sinusoid or pulse.
	Drive DriveConfig `yaml:"drive"`
}

// DriveConfig shapes the energy pathway.
type DriveConfig struct {
	Kind  string  `yaml:"kind"` // "", "constant", "sinusoid", "pulse"
	Level float64 `yaml:"level"`
	Freq  float64 `yaml:"freq"`
	From  float64 `yaml:"from"`
	To    float64 `yaml:"to"`
}

// ProblemConfig feeds the Hamiltonian compiler.
type ProblemConfig struct {
	Geometric       float64     `yaml:"geometric"`
	ExclusionWeight float64     `yaml:"exclusion_weight"`
	ExclusionTarget int         `yaml:"exclusion_target"`
	Alpha           []float64   `yaml:"alpha"`
	Beta            [][]float64 `yaml:"beta"`
	BiasWeight      float64     `yaml:"bias_weight"`
	BiasVector      []float64   `yaml:"bias_vector"`
}

// DefaultConfig returns the neutral configuration: central-node unit
// excitation, geometric coupling only.
func DefaultConfig() *Config {
	return &Config{
		Run: RunConfig{
			Dt:        DefaultDt,
			Steps:     DefaultSteps,
			Substeps:  DefaultSubsteps,
			GeoWeight: 1.0,
			Tolerance: DefaultTolerance,
			Excite:    map[int]float64{33: 1},
		},
		Problem: ProblemConfig{
			Geometric:       1.0,
			ExclusionWeight: 25.0,
			ExclusionTarget: 1,
		},
	}
}

// Load reads a yaml config file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
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

// Save writes the configuration as yaml.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the engine or compiler would refuse anyway, so
// mistakes surface at load time.
func (c *Config) Validate() error {
	if c.Run.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %f", c.Run.Dt)
	}
	if c.Run.Steps <= 0 {
		return fmt.Errorf("config: steps must be positive, got %d", c.Run.Steps)
	}
	if c.Run.Substeps < 0 {
		return fmt.Errorf("config: substeps must not be negative, got %d", c.Run.Substeps)
	}
	for node := range c.Run.Excite {
		if node < 1 || node > 33 {
			return fmt.Errorf("config: excite node %d out of range", node)
		}
	}
	switch c.Run.Drive.Kind {
	case "", "constant", "sinusoid", "pulse":
	default:
		return fmt.Errorf("config: unknown drive kind %q", c.Run.Drive.Kind)
	}
	return nil
}
