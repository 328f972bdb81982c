// Package metrics provides per-step statistics collected over a trajectory:
// conservation of the ring-polymer Hamiltonian, umbrella-window reaction
// coordinate moments, and structural averages.
package metrics

import (
	"math"

	"github.com/san-kum/rpmd/internal/geometry"
	"github.com/san-kum/rpmd/internal/ringpoly"
)

// EnergyDrift tracks the maximum relative drift of the full ring-polymer
// Hamiltonian (kinetic + ring springs + external potential) since the first
// observation.
type EnergyDrift struct {
	dims   ringpoly.Dims
	masses []float64
	beta   float64

	initial  float64
	maxDrift float64
	samples  int
	err      error
}

func NewEnergyDrift(d ringpoly.Dims, masses []float64, beta float64) *EnergyDrift {
	return &EnergyDrift{dims: d, masses: masses, beta: beta}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(s *ringpoly.State) {
	if e.err != nil {
		return
	}
	ke, err := geometry.KineticEnergy(e.dims, s.Momentum, e.masses)
	if err != nil {
		e.err = err
		return
	}
	re, err := geometry.RingEnergy(e.dims, s.Position, e.masses, e.beta)
	if err != nil {
		e.err = err
		return
	}
	pe := 0.0
	for _, v := range s.PotentialEnergy {
		pe += v
	}
	h := ke + re + pe

	if e.samples == 0 {
		e.initial = h
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(h-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

// Value reports NaN once an observation has failed, so a broken metric
// cannot pass for a clean run.
func (e *EnergyDrift) Value() float64 {
	if e.err != nil {
		return math.NaN()
	}
	return e.maxDrift
}

// Err returns the first observation error, if any.
func (e *EnergyDrift) Err() error { return e.err }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
	e.err = nil
}
