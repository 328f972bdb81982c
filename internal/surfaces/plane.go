// Package surfaces provides concrete dividing surfaces over centroid
// positions: a linear plane and an interatomic bond-length surface. Both
// satisfy the ringpoly.Surface contract with analytic gradients and Hessians.
package surfaces

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Plane is the linear surface s(c) = n . (c - p) for a fixed normal n and
// anchor point p in centroid space. Its Hessian is identically zero.
type Plane struct {
	normal []float64
	offset float64 // n . p, folded in at construction
}

// NewPlane builds a plane from its normal and a point on the surface. Both
// are copied; len(point) must equal len(normal).
func NewPlane(normal, point []float64) *Plane {
	n := append([]float64(nil), normal...)
	return &Plane{normal: n, offset: floats.Dot(n, point)}
}

func (p *Plane) Value(centroid []float64) float64 {
	return floats.Dot(p.normal, centroid) - p.offset
}

func (p *Plane) Gradient(dst []float64, centroid []float64) {
	copy(dst, p.normal)
}

func (p *Plane) Hessian(dst *mat.Dense, centroid []float64) {
	dst.Zero()
}
