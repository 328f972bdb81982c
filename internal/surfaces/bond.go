package surfaces

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Bond is the bond-length surface s(c) = |c_i - c_j| - r0 between the
// centroids of atoms i and j. Its zero level set is the sphere where the
// bond reaches length r0, the usual choice for a reactant dividing surface
// in bimolecular rate calculations.
type Bond struct {
	i, j   int
	r0     float64
	natoms int
}

// NewBond builds a bond surface between atoms i and j with reference
// length r0, for a system of natoms atoms.
func NewBond(i, j, natoms int, r0 float64) *Bond {
	return &Bond{i: i, j: j, r0: r0, natoms: natoms}
}

// vector returns the i->j separation and its length.
func (b *Bond) vector(centroid []float64) (r [3]float64, dist float64) {
	for ax := 0; ax < 3; ax++ {
		r[ax] = centroid[ax*b.natoms+b.i] - centroid[ax*b.natoms+b.j]
	}
	dist = math.Sqrt(r[0]*r[0] + r[1]*r[1] + r[2]*r[2])
	return r, dist
}

func (b *Bond) Value(centroid []float64) float64 {
	_, dist := b.vector(centroid)
	return dist - b.r0
}

func (b *Bond) Gradient(dst []float64, centroid []float64) {
	r, dist := b.vector(centroid)
	for k := range dst {
		dst[k] = 0
	}
	for ax := 0; ax < 3; ax++ {
		u := r[ax] / dist
		dst[ax*b.natoms+b.i] = u
		dst[ax*b.natoms+b.j] = -u
	}
}

func (b *Bond) Hessian(dst *mat.Dense, centroid []float64) {
	r, dist := b.vector(centroid)
	dst.Zero()

	// Block M_ab = (delta_ab - u_a u_b)/dist enters with +M on the (i,i)
	// and (j,j) blocks and -M on the cross blocks.
	for ax := 0; ax < 3; ax++ {
		for bx := 0; bx < 3; bx++ {
			m := -r[ax] * r[bx] / (dist * dist)
			if ax == bx {
				m += 1
			}
			m /= dist

			ii := ax*b.natoms + b.i
			jj := bx*b.natoms + b.j
			ij := bx*b.natoms + b.i
			ji := ax*b.natoms + b.j

			dst.Set(ii, ij, m)
			dst.Set(ji, jj, m)
			dst.Set(ii, jj, -m)
			dst.Set(ji, ij, -m)
		}
	}
}
