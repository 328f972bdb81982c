// Package geometry provides pure reducers over bead-resolved position and
// momentum arrays: centroid, center of mass, radius of gyration, and the
// kinetic and ring-polymer energy terms of the RPMD Hamiltonian.
package geometry

import (
	"math"

	"github.com/san-kum/rpmd/internal/ringpoly"
)

// Centroid fills dst (centroid-level, 3*Atoms) with the per-atom mean
// position over beads.
func Centroid(d ringpoly.Dims, q ringpoly.Vec, dst []float64) error {
	if len(q) != d.Size() || len(dst) != d.CentroidSize() {
		return ringpoly.ErrShapeMismatch
	}
	inv := 1 / float64(d.Beads)
	for ax := 0; ax < 3; ax++ {
		for atom := 0; atom < d.Atoms; atom++ {
			beads := d.BeadSlice(q, ax, atom)
			sum := 0.0
			for _, v := range beads {
				sum += v
			}
			dst[d.CIndex(ax, atom)] = sum * inv
		}
	}
	return nil
}

// CenterOfMass returns the mass-weighted mean position over all atoms and
// beads. Mass is per atom, shared by all beads of that atom.
func CenterOfMass(d ringpoly.Dims, q ringpoly.Vec, masses []float64) ([3]float64, error) {
	var com [3]float64
	if len(q) != d.Size() || len(masses) != d.Atoms {
		return com, ringpoly.ErrShapeMismatch
	}
	total := 0.0
	for _, m := range masses {
		total += m
	}
	for ax := 0; ax < 3; ax++ {
		sum := 0.0
		for atom := 0; atom < d.Atoms; atom++ {
			beads := d.BeadSlice(q, ax, atom)
			s := 0.0
			for _, v := range beads {
				s += v
			}
			sum += masses[atom] * s
		}
		com[ax] = sum / (total * float64(d.Beads))
	}
	return com, nil
}

// RadiusOfGyration fills dst (length Atoms) with each atom's root-mean-square
// bead deviation from its centroid.
func RadiusOfGyration(d ringpoly.Dims, q ringpoly.Vec, dst []float64) error {
	if len(q) != d.Size() || len(dst) != d.Atoms {
		return ringpoly.ErrShapeMismatch
	}
	inv := 1 / float64(d.Beads)
	for atom := 0; atom < d.Atoms; atom++ {
		sum := 0.0
		for ax := 0; ax < 3; ax++ {
			beads := d.BeadSlice(q, ax, atom)
			c := 0.0
			for _, v := range beads {
				c += v
			}
			c *= inv
			for _, v := range beads {
				dv := v - c
				sum += dv * dv
			}
		}
		dst[atom] = math.Sqrt(sum * inv)
	}
	return nil
}

// RingEnergy returns the harmonic spring energy of the bead rings,
// sum over atoms of 0.5*m*wn^2*|q_k - q_{k-1}|^2 with wn = Nbeads/beta and
// cyclic neighbor indexing (bead 0 pairs with bead Nbeads-1).
func RingEnergy(d ringpoly.Dims, q ringpoly.Vec, masses []float64, beta float64) (float64, error) {
	if len(q) != d.Size() || len(masses) != d.Atoms {
		return 0, ringpoly.ErrShapeMismatch
	}
	wn := float64(d.Beads) / beta
	wn2 := wn * wn
	energy := 0.0
	for atom := 0; atom < d.Atoms; atom++ {
		sum := 0.0
		for ax := 0; ax < 3; ax++ {
			beads := d.BeadSlice(q, ax, atom)
			prev := beads[d.Beads-1]
			for _, v := range beads {
				dv := v - prev
				sum += dv * dv
				prev = v
			}
		}
		energy += 0.5 * masses[atom] * wn2 * sum
	}
	return energy, nil
}

// KineticEnergy returns sum of 0.5*p^2/m over all axes, atoms and beads.
func KineticEnergy(d ringpoly.Dims, p ringpoly.Vec, masses []float64) (float64, error) {
	if len(p) != d.Size() || len(masses) != d.Atoms {
		return 0, ringpoly.ErrShapeMismatch
	}
	energy := 0.0
	for atom := 0; atom < d.Atoms; atom++ {
		inv2m := 0.5 / masses[atom]
		for ax := 0; ax < 3; ax++ {
			beads := d.BeadSlice(p, ax, atom)
			for _, v := range beads {
				energy += inv2m * v * v
			}
		}
	}
	return energy, nil
}
