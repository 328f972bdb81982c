package config

import "github.com/san-kum/rpmd/internal/ringpoly"

// Presets are ready-to-run configurations for the bundled potentials.
var Presets = map[string]func() *Config{
	// Symmetric Eckart barrier, umbrella sampling from the reactant side.
	"eckart": DefaultConfig,

	// Quartic double well with minima at x = +-1, reactant well to barrier top.
	"doublewell": func() *Config {
		cfg := DefaultConfig()
		cfg.Potential = PotentialConfig{
			Name:   "doublewell",
			Params: map[string]float64{"a": 0.25, "b": 1.0},
		}
		cfg.Reactant.Point = []float64{-1, 0, 0}
		cfg.InitPosition = []float64{-1, 0, 0}
		return cfg
	},

	// Free ring polymer in recrossing-factor mode, surfaces at the origin
	// and one length unit out.
	"free": func() *Config {
		cfg := DefaultConfig()
		cfg.Potential = PotentialConfig{Name: "free"}
		cfg.Mode = string(ringpoly.ModeRecrossing)
		cfg.Xi = 0.5
		cfg.Reactant.Point = []float64{0, 0, 0}
		cfg.Transition.Point = []float64{1, 0, 0}
		cfg.InitPosition = []float64{0, 0, 0}
		cfg.InitMomentum = []float64{1, 0, 0}
		return cfg
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

// ListPresets returns the preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
