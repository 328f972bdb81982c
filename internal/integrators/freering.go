// Package integrators implements the RPMD time step: a velocity Verlet
// scheme whose drift sub-step propagates the stiff internal ring-polymer
// springs exactly in normal-mode space.
package integrators

import (
	"math"

	"github.com/san-kum/rpmd/internal/normalmode"
	"github.com/san-kum/rpmd/internal/ringpoly"
)

// FreeRing propagates the free ring-polymer Hamiltonian exactly over one
// time step, per atom and Cartesian axis. The ring term is quadratic, so
// each normal mode evolves under an analytic 2x2 rotation; that is what
// keeps the scheme stable however stiff the springs get at large bead
// counts. It owns scratch buffers and is not safe for concurrent use.
type FreeRing struct {
	dims   ringpoly.Dims
	masses []float64
	dt     float64

	// Per-mode quantities for k = 0..Beads/2, in half-complex order.
	// omega[0] = 0; the centroid mode drifts as a free particle.
	omega []float64
	cosdt []float64
	sindt []float64

	tr     *normalmode.Transform
	pc, qc []complex128
}

// NewFreeRing builds a propagator for time step dt at inverse temperature
// beta. dt may be negative, which runs the exact dynamics backwards; dt == 0,
// non-positive beta or any non-positive mass is a configuration error.
func NewFreeRing(d ringpoly.Dims, dt, beta float64, masses []float64) (*FreeRing, error) {
	if d.Atoms <= 0 || d.Beads <= 0 || dt == 0 || beta <= 0 {
		return nil, ringpoly.ErrParameterBounds
	}
	if len(masses) != d.Atoms {
		return nil, ringpoly.ErrShapeMismatch
	}
	for _, m := range masses {
		if m <= 0 {
			return nil, ringpoly.ErrParameterBounds
		}
	}

	f := &FreeRing{dims: d, masses: masses, dt: dt}
	if d.Beads == 1 {
		return f, nil
	}

	n := d.Beads
	betaN := beta / float64(n)
	half := n / 2

	f.tr = normalmode.New(n)
	f.pc = make([]complex128, f.tr.CoeffLen())
	f.qc = make([]complex128, f.tr.CoeffLen())
	f.omega = make([]float64, half+1)
	f.cosdt = make([]float64, half+1)
	f.sindt = make([]float64, half+1)
	f.cosdt[0] = 1
	for k := 1; k <= half; k++ {
		w := (2 / betaN) * math.Sin(float64(k)*math.Pi/float64(n))
		f.omega[k] = w
		f.cosdt[k] = math.Cos(w * dt)
		f.sindt[k] = math.Sin(w * dt)
	}
	return f, nil
}

// Step drifts momentum and position in place by one full time step under the
// free ring-polymer Hamiltonian, holding the external potential fixed.
func (f *FreeRing) Step(p, q ringpoly.Vec) error {
	if len(p) != f.dims.Size() || len(q) != f.dims.Size() {
		return ringpoly.ErrShapeMismatch
	}

	// A single bead has no internal ring structure: plain free drift.
	if f.dims.Beads == 1 {
		for atom := 0; atom < f.dims.Atoms; atom++ {
			r := f.dt / f.masses[atom]
			for ax := 0; ax < 3; ax++ {
				i := f.dims.Index(ax, atom, 0)
				q[i] += p[i] * r
			}
		}
		return nil
	}

	half := f.dims.Beads / 2
	for atom := 0; atom < f.dims.Atoms; atom++ {
		m := f.masses[atom]
		for ax := 0; ax < 3; ax++ {
			ps := f.dims.BeadSlice(p, ax, atom)
			qs := f.dims.BeadSlice(q, ax, atom)

			if _, err := f.tr.Forward(f.pc, ps); err != nil {
				return err
			}
			if _, err := f.tr.Forward(f.qc, qs); err != nil {
				return err
			}

			// Centroid mode: free-particle drift.
			f.qc[0] += f.pc[0] * complex(f.dt/m, 0)

			// Internal modes: exact harmonic rotation. The half-complex
			// layout carries each conjugate pair (k, n-k) in one
			// coefficient, and the rotation acts identically on the real
			// and imaginary parts; the Nyquist coefficient (even n) is
			// purely real and needs no special case.
			for k := 1; k <= half; k++ {
				c := complex(f.cosdt[k], 0)
				mws := complex(m*f.omega[k]*f.sindt[k], 0)
				swm := complex(f.sindt[k]/(m*f.omega[k]), 0)

				pk, qk := f.pc[k], f.qc[k]
				f.pc[k] = pk*c - qk*mws
				f.qc[k] = pk*swm + qk*c
			}

			if _, err := f.tr.Inverse(ps, f.pc); err != nil {
				return err
			}
			if _, err := f.tr.Inverse(qs, f.qc); err != nil {
				return err
			}
		}
	}
	return nil
}
