package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/rpmd/internal/ringpoly"
)

func TestWindowMoments(t *testing.T) {
	w := NewWindow()
	d := ringpoly.Dims{Atoms: 1, Beads: 1}

	for _, xi := range []float64{0.2, 0.4, 0.6, 0.8} {
		s := ringpoly.NewState(d)
		s.Xi = xi
		w.Observe(s)
	}

	if got := w.Value(); math.Abs(got-0.5) > 1e-15 {
		t.Errorf("mean: got %.15f, want 0.5", got)
	}
	// Unbiased variance of {0.2,0.4,0.6,0.8} is 0.2/3.
	if got := w.Variance(); math.Abs(got-0.2/3) > 1e-14 {
		t.Errorf("variance: got %.15f, want %.15f", got, 0.2/3)
	}
	if w.Count() != 4 {
		t.Errorf("count: got %d, want 4", w.Count())
	}

	w.Reset()
	if w.Count() != 0 || w.Value() != 0 {
		t.Error("reset did not clear samples")
	}
}

func TestEnergyDriftConstantState(t *testing.T) {
	d := ringpoly.Dims{Atoms: 1, Beads: 2}
	masses := []float64{1.0}
	m := NewEnergyDrift(d, masses, 1.0)

	s := ringpoly.NewState(d)
	s.Momentum[0] = 1.0
	s.PotentialEnergy[0] = 0.5

	m.Observe(s)
	m.Observe(s)
	m.Observe(s)

	if got := m.Value(); got != 0 {
		t.Errorf("drift of constant state: got %g, want 0", got)
	}
}

func TestEnergyDriftDetectsChange(t *testing.T) {
	d := ringpoly.Dims{Atoms: 1, Beads: 1}
	masses := []float64{2.0}
	m := NewEnergyDrift(d, masses, 1.0)

	s := ringpoly.NewState(d)
	s.Momentum[0] = 2.0 // KE = 1
	m.Observe(s)

	s.Momentum[0] = 2.0 * math.Sqrt2 // KE = 2
	m.Observe(s)

	if got := m.Value(); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("relative drift: got %.15f, want 1", got)
	}
}

func TestMetricsStickOnShapeMismatch(t *testing.T) {
	d := ringpoly.Dims{Atoms: 1, Beads: 2}
	bad := ringpoly.NewState(ringpoly.Dims{Atoms: 2, Beads: 2})
	good := ringpoly.NewState(d)

	e := NewEnergyDrift(d, []float64{1.0}, 1.0)
	e.Observe(bad)
	if e.Err() == nil {
		t.Fatal("energy drift: expected a recorded error")
	}
	e.Observe(good) // too late: the error sticks
	if e.Err() == nil || !math.IsNaN(e.Value()) {
		t.Errorf("energy drift after failure: err=%v value=%g, want sticky error and NaN", e.Err(), e.Value())
	}

	g := NewGyration(d)
	g.Observe(bad)
	g.Observe(good)
	if g.Err() == nil || !math.IsNaN(g.Value()) {
		t.Errorf("gyration after failure: err=%v value=%g, want sticky error and NaN", g.Err(), g.Value())
	}

	e.Reset()
	g.Reset()
	if e.Err() != nil || g.Err() != nil {
		t.Error("reset did not clear recorded errors")
	}
	e.Observe(good)
	g.Observe(good)
	if math.IsNaN(e.Value()) || math.IsNaN(g.Value()) {
		t.Error("metrics did not recover after reset")
	}
}

func TestGyrationCollapsedRing(t *testing.T) {
	d := ringpoly.Dims{Atoms: 2, Beads: 4}
	g := NewGyration(d)

	s := ringpoly.NewState(d) // all beads at the origin
	g.Observe(s)

	if got := g.Value(); got != 0 {
		t.Errorf("gyration of collapsed rings: got %g, want 0", got)
	}
}
