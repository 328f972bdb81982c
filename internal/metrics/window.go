package metrics

import (
	"github.com/san-kum/rpmd/internal/ringpoly"
	"gonum.org/v1/gonum/stat"
)

// Window collects the reaction-coordinate samples of one umbrella window.
// Umbrella integration needs the per-window mean and variance of xi to
// reconstruct the free-energy derivative.
type Window struct {
	samples []float64
}

func NewWindow() *Window {
	return &Window{samples: make([]float64, 0, 1024)}
}

func (w *Window) Name() string { return "xi_mean" }

func (w *Window) Observe(s *ringpoly.State) {
	w.samples = append(w.samples, s.Xi)
}

// Value returns the window mean of xi.
func (w *Window) Value() float64 {
	if len(w.samples) == 0 {
		return 0
	}
	return stat.Mean(w.samples, nil)
}

// Variance returns the unbiased sample variance of xi.
func (w *Window) Variance() float64 {
	if len(w.samples) < 2 {
		return 0
	}
	return stat.Variance(w.samples, nil)
}

// Count returns the number of samples collected.
func (w *Window) Count() int { return len(w.samples) }

func (w *Window) Reset() {
	w.samples = w.samples[:0]
}
