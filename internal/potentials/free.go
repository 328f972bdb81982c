// Package potentials provides external potential collaborators for the RPMD
// stepper. Each evaluates a per-bead potential energy and the
// corresponding forces in place; the stepper consumes them only through the
// ringpoly.Potential interface.
package potentials

import "github.com/san-kum/rpmd/internal/ringpoly"

// Free is the zero potential: no external forces act on the beads.
type Free struct{}

func NewFree() *Free { return &Free{} }

func (Free) Evaluate(d ringpoly.Dims, q ringpoly.Vec, energy []float64, force ringpoly.Vec) error {
	if len(q) != d.Size() || len(force) != d.Size() || len(energy) != d.Beads {
		return ringpoly.ErrShapeMismatch
	}
	for i := range energy {
		energy[i] = 0
	}
	for i := range force {
		force[i] = 0
	}
	return nil
}
