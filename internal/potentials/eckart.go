package potentials

import (
	"math"

	"github.com/san-kum/rpmd/internal/ringpoly"
)

// Eckart is the symmetric Eckart barrier V = V0/cosh^2(x/W) along the x axis
// of each atom, the standard analytic benchmark for quantum rate theory.
type Eckart struct {
	V0 float64 // barrier height
	W  float64 // barrier width
}

func NewEckart(v0, w float64) *Eckart {
	return &Eckart{V0: v0, W: w}
}

func (e *Eckart) Evaluate(d ringpoly.Dims, q ringpoly.Vec, energy []float64, force ringpoly.Vec) error {
	if len(q) != d.Size() || len(force) != d.Size() || len(energy) != d.Beads {
		return ringpoly.ErrShapeMismatch
	}
	for i := range energy {
		energy[i] = 0
	}
	for i := range force {
		force[i] = 0
	}
	for atom := 0; atom < d.Atoms; atom++ {
		qs := d.BeadSlice(q, 0, atom)
		fs := d.BeadSlice(force, 0, atom)
		for bead, x := range qs {
			z := x / e.W
			sech := 1 / math.Cosh(z)
			energy[bead] += e.V0 * sech * sech
			fs[bead] = 2 * e.V0 * sech * sech * math.Tanh(z) / e.W
		}
	}
	return nil
}
