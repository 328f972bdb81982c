package potentials

import "github.com/san-kum/rpmd/internal/ringpoly"

// Harmonic is an isotropic well centered at the origin, applied to every
// atom independently: V = 0.5*k*|q|^2 per bead.
type Harmonic struct {
	K float64
}

func NewHarmonic(k float64) *Harmonic {
	return &Harmonic{K: k}
}

func (h *Harmonic) Evaluate(d ringpoly.Dims, q ringpoly.Vec, energy []float64, force ringpoly.Vec) error {
	if len(q) != d.Size() || len(force) != d.Size() || len(energy) != d.Beads {
		return ringpoly.ErrShapeMismatch
	}
	for i := range energy {
		energy[i] = 0
	}
	for atom := 0; atom < d.Atoms; atom++ {
		for ax := 0; ax < 3; ax++ {
			qs := d.BeadSlice(q, ax, atom)
			fs := d.BeadSlice(force, ax, atom)
			for bead, x := range qs {
				energy[bead] += 0.5 * h.K * x * x
				fs[bead] = -h.K * x
			}
		}
	}
	return nil
}
