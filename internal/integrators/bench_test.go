package integrators

import (
	"testing"

	"github.com/san-kum/rpmd/internal/potentials"
	"github.com/san-kum/rpmd/internal/reaction"
	"github.com/san-kum/rpmd/internal/ringpoly"
	"github.com/san-kum/rpmd/internal/surfaces"
)

func benchState(d ringpoly.Dims) *ringpoly.State {
	s := ringpoly.NewState(d)
	for i := range s.Position {
		s.Position[i] = 0.1 * float64(i%7)
		s.Momentum[i] = 0.05 * float64(i%5)
	}
	return s
}

func benchMasses(natoms int) []float64 {
	m := make([]float64, natoms)
	for i := range m {
		m[i] = 1.0 + 0.5*float64(i)
	}
	return m
}

func BenchmarkFreeRing(b *testing.B) {
	d := ringpoly.Dims{Atoms: 2, Beads: 32}
	ring, err := NewFreeRing(d, 0.01, 8.0, benchMasses(d.Atoms))
	if err != nil {
		b.Fatal(err)
	}
	s := benchState(d)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := ring.Step(s.Momentum, s.Position); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFreeRing_64Beads(b *testing.B) {
	d := ringpoly.Dims{Atoms: 2, Beads: 64}
	ring, err := NewFreeRing(d, 0.01, 8.0, benchMasses(d.Atoms))
	if err != nil {
		b.Fatal(err)
	}
	s := benchState(d)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := ring.Step(s.Momentum, s.Position); err != nil {
			b.Fatal(err)
		}
	}
}

func benchVerlet(b *testing.B, d ringpoly.Dims) {
	prm := &ringpoly.Params{
		Dt:     0.01,
		Beta:   8.0,
		Masses: benchMasses(d.Atoms),
		Mode:   ringpoly.ModeUmbrella,
	}
	rc, err := reaction.New(prm.Mode,
		surfaces.NewPlane([]float64{1, 0, 0}, []float64{-2, 0, 0}),
		surfaces.NewPlane([]float64{1, 0, 0}, []float64{0, 0, 0}),
		d.Atoms)
	if err != nil {
		b.Fatal(err)
	}
	v, err := NewVerlet(d, prm, potentials.NewHarmonic(0.5), rc)
	if err != nil {
		b.Fatal(err)
	}
	s := benchState(d)
	if err := v.Prime(s); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := v.Step(s); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkVerlet(b *testing.B) {
	benchVerlet(b, ringpoly.Dims{Atoms: 2, Beads: 32})
}

func BenchmarkVerlet_5Atoms(b *testing.B) {
	benchVerlet(b, ringpoly.Dims{Atoms: 5, Beads: 32})
}
