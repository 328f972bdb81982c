package metrics

import (
	"math"

	"github.com/san-kum/rpmd/internal/geometry"
	"github.com/san-kum/rpmd/internal/ringpoly"
)

// Gyration averages the system-wide mean radius of gyration of the bead
// rings over the trajectory. It measures how spread out the quantum
// delocalization is at the sampled temperature.
type Gyration struct {
	dims    ringpoly.Dims
	scratch []float64
	total   float64
	samples int
	err     error
}

func NewGyration(d ringpoly.Dims) *Gyration {
	return &Gyration{dims: d, scratch: make([]float64, d.Atoms)}
}

func (g *Gyration) Name() string { return "radius_of_gyration" }

func (g *Gyration) Observe(s *ringpoly.State) {
	if g.err != nil {
		return
	}
	if err := geometry.RadiusOfGyration(g.dims, s.Position, g.scratch); err != nil {
		g.err = err
		return
	}
	sum := 0.0
	for _, r := range g.scratch {
		sum += r
	}
	g.total += sum / float64(g.dims.Atoms)
	g.samples++
}

func (g *Gyration) Value() float64 {
	if g.err != nil {
		return math.NaN()
	}
	if g.samples == 0 {
		return 0
	}
	return g.total / float64(g.samples)
}

// Err returns the first observation error, if any.
func (g *Gyration) Err() error { return g.err }

func (g *Gyration) Reset() {
	g.total = 0
	g.samples = 0
	g.err = nil
}
