package potentials

import "github.com/san-kum/rpmd/internal/ringpoly"

// DoubleWell is a bistable quartic along the x axis of each atom,
// V = A*(x^2 - B)^2, with minima at x = +-sqrt(B). The y and z axes are
// free. A standard toy model for a thermally activated barrier crossing.
type DoubleWell struct {
	A, B float64
}

func NewDoubleWell(a, b float64) *DoubleWell {
	return &DoubleWell{A: a, B: b}
}

func (dw *DoubleWell) Evaluate(d ringpoly.Dims, q ringpoly.Vec, energy []float64, force ringpoly.Vec) error {
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
			w := x*x - dw.B
			energy[bead] += dw.A * w * w
			fs[bead] = -4 * dw.A * x * w
		}
	}
	return nil
}
