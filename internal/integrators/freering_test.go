package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/rpmd/internal/geometry"
	"github.com/san-kum/rpmd/internal/ringpoly"
)

func TestFreeRingSingleBeadDrift(t *testing.T) {
	d := ringpoly.Dims{Atoms: 2, Beads: 1}
	masses := []float64{2.0, 4.0}

	f, err := NewFreeRing(d, 0.5, 1.0, masses)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	p := make(ringpoly.Vec, d.Size())
	q := make(ringpoly.Vec, d.Size())
	p[d.Index(0, 0, 0)] = 3.0
	p[d.Index(2, 1, 0)] = -1.0
	q[d.Index(0, 0, 0)] = 1.0

	if err := f.Step(p, q); err != nil {
		t.Fatalf("step: %v", err)
	}

	// q += p*dt/m, p unchanged.
	if got := q[d.Index(0, 0, 0)]; math.Abs(got-1.75) > 1e-15 {
		t.Errorf("atom 0 x: got %.15f, want 1.75", got)
	}
	if got := q[d.Index(2, 1, 0)]; math.Abs(got-(-0.125)) > 1e-15 {
		t.Errorf("atom 1 z: got %.15f, want -0.125", got)
	}
	if got := p[d.Index(0, 0, 0)]; got != 3.0 {
		t.Errorf("momentum changed: got %g", got)
	}
}

func TestFreeRingTimeReversal(t *testing.T) {
	d := ringpoly.Dims{Atoms: 1, Beads: 4}
	masses := []float64{1.5}
	const dt, beta = 0.05, 2.0

	forward, err := NewFreeRing(d, dt, beta, masses)
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	backward, err := NewFreeRing(d, -dt, beta, masses)
	if err != nil {
		t.Fatalf("backward: %v", err)
	}

	p := ringpoly.Vec{0.3, -0.7, 1.1, 0.2, 0, 0, 0, 0, 0, 0, 0, 0}
	q := ringpoly.Vec{1.0, 1.2, 0.8, 0.9, 0, 0, 0, 0, 0, 0, 0, 0}
	p0 := p.Clone()
	q0 := q.Clone()

	if err := forward.Step(p, q); err != nil {
		t.Fatalf("forward step: %v", err)
	}
	if err := backward.Step(p, q); err != nil {
		t.Fatalf("backward step: %v", err)
	}

	for i := range p0 {
		if math.Abs(p[i]-p0[i]) > 1e-12 {
			t.Errorf("momentum[%d]: got %.15f, want %.15f", i, p[i], p0[i])
		}
		if math.Abs(q[i]-q0[i]) > 1e-12 {
			t.Errorf("position[%d]: got %.15f, want %.15f", i, q[i], q0[i])
		}
	}
}

func TestFreeRingConservesRingHamiltonian(t *testing.T) {
	// The drift is the exact solution of the free ring-polymer Hamiltonian,
	// so KE + ring energy must be conserved to roundoff over many steps,
	// for both even and odd bead counts.
	for _, nbeads := range []int{2, 3, 4, 7, 8} {
		d := ringpoly.Dims{Atoms: 2, Beads: nbeads}
		masses := []float64{1.0, 12.0}
		const dt, beta = 0.02, 4.0

		f, err := NewFreeRing(d, dt, beta, masses)
		if err != nil {
			t.Fatalf("nbeads=%d: new: %v", nbeads, err)
		}

		p := make(ringpoly.Vec, d.Size())
		q := make(ringpoly.Vec, d.Size())
		for i := range p {
			p[i] = math.Sin(1.3 * float64(i+1))
			q[i] = math.Cos(0.7 * float64(i+1))
		}

		ke0, _ := geometry.KineticEnergy(d, p, masses)
		re0, _ := geometry.RingEnergy(d, q, masses, beta)
		h0 := ke0 + re0

		for step := 0; step < 200; step++ {
			if err := f.Step(p, q); err != nil {
				t.Fatalf("nbeads=%d: step %d: %v", nbeads, step, err)
			}
		}

		ke, _ := geometry.KineticEnergy(d, p, masses)
		re, _ := geometry.RingEnergy(d, q, masses, beta)
		h := ke + re

		if math.Abs(h-h0) > 1e-9*math.Abs(h0) {
			t.Errorf("nbeads=%d: ring hamiltonian drifted: %.12f -> %.12f", nbeads, h0, h)
		}
	}
}

func TestFreeRingConservesCentroidMomentum(t *testing.T) {
	d := ringpoly.Dims{Atoms: 1, Beads: 8}
	masses := []float64{2.0}

	f, err := NewFreeRing(d, 0.1, 1.0, masses)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	p := make(ringpoly.Vec, d.Size())
	q := make(ringpoly.Vec, d.Size())
	for i := range p {
		p[i] = float64(i%3) - 1.0
		q[i] = 0.1 * float64(i)
	}

	sumBefore := 0.0
	for _, v := range d.BeadSlice(p, 0, 0) {
		sumBefore += v
	}

	for step := 0; step < 50; step++ {
		if err := f.Step(p, q); err != nil {
			t.Fatalf("step: %v", err)
		}
	}

	sumAfter := 0.0
	for _, v := range d.BeadSlice(p, 0, 0) {
		sumAfter += v
	}

	if math.Abs(sumAfter-sumBefore) > 1e-11 {
		t.Errorf("centroid momentum drifted: %.15f -> %.15f", sumBefore, sumAfter)
	}
}

func TestFreeRingConfigErrors(t *testing.T) {
	d := ringpoly.Dims{Atoms: 1, Beads: 4}

	if _, err := NewFreeRing(d, 0, 1.0, []float64{1}); !errors.Is(err, ringpoly.ErrParameterBounds) {
		t.Errorf("zero dt: got %v", err)
	}
	if _, err := NewFreeRing(d, 0.1, -1.0, []float64{1}); !errors.Is(err, ringpoly.ErrParameterBounds) {
		t.Errorf("negative beta: got %v", err)
	}
	if _, err := NewFreeRing(d, 0.1, 1.0, []float64{-2}); !errors.Is(err, ringpoly.ErrParameterBounds) {
		t.Errorf("negative mass: got %v", err)
	}
	if _, err := NewFreeRing(d, 0.1, 1.0, []float64{1, 1}); !errors.Is(err, ringpoly.ErrShapeMismatch) {
		t.Errorf("mass count: got %v", err)
	}

	f, err := NewFreeRing(d, 0.1, 1.0, []float64{1})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := f.Step(make(ringpoly.Vec, 3), make(ringpoly.Vec, d.Size())); !errors.Is(err, ringpoly.ErrShapeMismatch) {
		t.Errorf("short momentum: got %v", err)
	}
}
