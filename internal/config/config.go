// Package config defines the yaml run configuration and named presets for
// the rpmd CLI. A Config is pure data; the experiment package turns it into
// wired components.
package config

import (
	"fmt"
	"os"

	"github.com/san-kum/rpmd/internal/ringpoly"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt          = 0.01
	DefaultBeta        = 8.0
	DefaultBeads       = 16
	DefaultSteps       = 5000
	DefaultSampleEvery = 10
)

type Config struct {
	Atoms       int       `yaml:"atoms"`
	Beads       int       `yaml:"beads"`
	Masses      []float64 `yaml:"masses"`
	Dt          float64   `yaml:"dt"`
	Beta        float64   `yaml:"beta"`
	Steps       int       `yaml:"steps"`
	SampleEvery int       `yaml:"sample_every"`

	Mode string  `yaml:"mode"`
	Xi   float64 `yaml:"xi"`

	Potential  PotentialConfig `yaml:"potential"`
	Reactant   SurfaceConfig   `yaml:"reactant"`
	Transition SurfaceConfig   `yaml:"transition"`

	// Centroid-level initial conditions, axis-major [3*Atoms]; every bead
	// of an atom starts at its centroid value.
	InitPosition []float64 `yaml:"init_position"`
	InitMomentum []float64 `yaml:"init_momentum"`
}

type PotentialConfig struct {
	Name   string             `yaml:"name"`
	Params map[string]float64 `yaml:"params"`
}

type SurfaceConfig struct {
	Type   string    `yaml:"type"` // plane | bond
	Normal []float64 `yaml:"normal,omitempty"`
	Point  []float64 `yaml:"point,omitempty"`
	I      int       `yaml:"i,omitempty"`
	J      int       `yaml:"j,omitempty"`
	R0     float64   `yaml:"r0,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Atoms:       1,
		Beads:       DefaultBeads,
		Masses:      []float64{1.0},
		Dt:          DefaultDt,
		Beta:        DefaultBeta,
		Steps:       DefaultSteps,
		SampleEvery: DefaultSampleEvery,
		Mode:        string(ringpoly.ModeUmbrella),
		Potential: PotentialConfig{
			Name:   "eckart",
			Params: map[string]float64{"v0": 0.425, "w": 0.734},
		},
		Reactant: SurfaceConfig{
			Type:   "plane",
			Normal: []float64{1, 0, 0},
			Point:  []float64{-2, 0, 0},
		},
		Transition: SurfaceConfig{
			Type:   "plane",
			Normal: []float64{1, 0, 0},
			Point:  []float64{0, 0, 0},
		},
		InitPosition: []float64{-2, 0, 0},
		InitMomentum: []float64{0, 0, 0},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Dims returns the system dimensions.
func (c *Config) Dims() ringpoly.Dims {
	return ringpoly.Dims{Atoms: c.Atoms, Beads: c.Beads}
}

// Params assembles the run parameters; Validate reports configuration
// errors before any component is built.
func (c *Config) Params() *ringpoly.Params {
	return &ringpoly.Params{
		Dt:     c.Dt,
		Beta:   c.Beta,
		Masses: c.Masses,
		Mode:   ringpoly.Mode(c.Mode),
	}
}

// Validate checks the config beyond what ringpoly.Params covers.
func (c *Config) Validate() error {
	if err := c.Params().Validate(c.Dims()); err != nil {
		return err
	}
	if c.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", c.Steps)
	}
	if c.SampleEvery <= 0 {
		return fmt.Errorf("sample_every must be positive, got %d", c.SampleEvery)
	}
	n := 3 * c.Atoms
	if len(c.InitPosition) != n || len(c.InitMomentum) != n {
		return fmt.Errorf("init_position and init_momentum must have length %d", n)
	}
	return nil
}
