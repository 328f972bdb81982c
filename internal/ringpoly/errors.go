package ringpoly

import (
	"errors"
	"fmt"
)

// Domain errors for RPMD operations.
var (
	// ErrParameterBounds indicates a run parameter outside its valid range
	// (non-positive dt, beta, mass, or atom/bead count).
	ErrParameterBounds = errors.New("ringpoly: parameter out of valid bounds")

	// ErrInvalidState indicates NaN or Inf in a phase-space array.
	ErrInvalidState = errors.New("ringpoly: invalid state (NaN or Inf detected)")

	// ErrUnknownMode indicates an unrecognized reaction-coordinate mode.
	ErrUnknownMode = errors.New("ringpoly: unknown reaction coordinate mode")

	// ErrShapeMismatch indicates array dimensions inconsistent with the
	// system's atom/bead counts.
	ErrShapeMismatch = errors.New("ringpoly: array shape mismatch")

	// ErrSurfacesCoincide indicates the two dividing surfaces take the same
	// value at the centroid, where the umbrella-integration reaction
	// coordinate is singular.
	ErrSurfacesCoincide = errors.New("ringpoly: dividing surfaces coincide at the centroid")
)

// StepError wraps a failure from one sub-step of the integrator with the
// simulation time at which it occurred.
type StepError struct {
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step at t=%.6f: %v", e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
