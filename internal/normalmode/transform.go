// Package normalmode wraps the real discrete Fourier transform over the bead
// ring. The free ring-polymer Hamiltonian is diagonal in this basis.
//
// The transform uses gonum's half-complex convention: a real sequence of
// length n maps to n/2+1 complex coefficients, with the conjugate-symmetric
// upper half implicit. The forward transform is unnormalized and the inverse
// carries the 1/n factor, so Inverse(Forward(x)) == x to floating-point
// precision. The normal-mode frequencies used by the free ring-polymer
// propagator are derived for exactly this convention.
package normalmode

import (
	"github.com/san-kum/rpmd/internal/ringpoly"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Transform performs forward and inverse real DFTs of a fixed length.
// It is not safe for concurrent use; each trajectory owns its own.
type Transform struct {
	n   int
	fft *fourier.FFT
}

// New returns a transform for real sequences of length n.
func New(n int) *Transform {
	return &Transform{n: n, fft: fourier.NewFFT(n)}
}

// Len returns the sequence length the transform operates on.
func (t *Transform) Len() int { return t.n }

// CoeffLen returns the number of half-complex coefficients, n/2+1.
func (t *Transform) CoeffLen() int { return t.n/2 + 1 }

// Forward computes the unnormalized Fourier coefficients of seq into dst.
// dst may be nil, in which case a new slice is allocated.
func (t *Transform) Forward(dst []complex128, seq []float64) ([]complex128, error) {
	if len(seq) != t.n {
		return nil, ringpoly.ErrShapeMismatch
	}
	if dst == nil {
		dst = make([]complex128, t.CoeffLen())
	} else if len(dst) != t.CoeffLen() {
		return nil, ringpoly.ErrShapeMismatch
	}
	return t.fft.Coefficients(dst, seq), nil
}

// Inverse reconstructs the real sequence from its coefficients into dst,
// applying the 1/n normalization. dst may be nil.
func (t *Transform) Inverse(dst []float64, coeff []complex128) ([]float64, error) {
	if len(coeff) != t.CoeffLen() {
		return nil, ringpoly.ErrShapeMismatch
	}
	if dst == nil {
		dst = make([]float64, t.n)
	} else if len(dst) != t.n {
		return nil, ringpoly.ErrShapeMismatch
	}
	dst = t.fft.Sequence(dst, coeff)
	scale := 1 / float64(t.n)
	for i := range dst {
		dst[i] *= scale
	}
	return dst, nil
}
