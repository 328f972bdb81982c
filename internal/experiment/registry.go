// Package experiment turns a config.Config into a wired, runnable
// trajectory: potential, dividing surfaces, reaction-coordinate evaluator,
// stepper, metrics and initial state.
package experiment

import (
	"fmt"

	"github.com/san-kum/rpmd/internal/config"
	"github.com/san-kum/rpmd/internal/potentials"
	"github.com/san-kum/rpmd/internal/ringpoly"
	"github.com/san-kum/rpmd/internal/surfaces"
)

// BuildPotential maps a potential config onto one of the bundled
// potentials. Missing parameters fall back to zero; an unknown name is an
// error, never a default.
func BuildPotential(pc config.PotentialConfig) (ringpoly.Potential, error) {
	p := pc.Params
	switch pc.Name {
	case "free":
		return potentials.NewFree(), nil
	case "harmonic":
		return potentials.NewHarmonic(p["k"]), nil
	case "doublewell":
		return potentials.NewDoubleWell(p["a"], p["b"]), nil
	case "eckart":
		return potentials.NewEckart(p["v0"], p["w"]), nil
	}
	return nil, fmt.Errorf("unknown potential: %s", pc.Name)
}

// BuildSurface maps a surface config onto a dividing surface for a system
// of natoms atoms.
func BuildSurface(sc config.SurfaceConfig, natoms int) (ringpoly.Surface, error) {
	switch sc.Type {
	case "plane":
		n := 3 * natoms
		if len(sc.Normal) != n || len(sc.Point) != n {
			return nil, ringpoly.ErrShapeMismatch
		}
		return surfaces.NewPlane(sc.Normal, sc.Point), nil
	case "bond":
		if sc.I < 0 || sc.I >= natoms || sc.J < 0 || sc.J >= natoms || sc.I == sc.J {
			return nil, fmt.Errorf("bond surface: bad atom pair (%d,%d)", sc.I, sc.J)
		}
		return surfaces.NewBond(sc.I, sc.J, natoms, sc.R0), nil
	}
	return nil, fmt.Errorf("unknown surface type: %s", sc.Type)
}
