// Package sim drives an RPMD trajectory: it owns the step loop, fans out to
// metrics and observers, and collects the sampled reaction-coordinate trace.
// The numerical work happens in the stepper; this package only orchestrates.
package sim

import (
	"fmt"

	"github.com/san-kum/rpmd/internal/ringpoly"
)

// Stepper advances a trajectory by one time step per call. Prime seeds the
// force and reaction coordinate before the first step.
type Stepper interface {
	Prime(s *ringpoly.State) error
	Step(s *ringpoly.State) error
}

// Config controls one trajectory run.
type Config struct {
	Steps         int
	SampleEvery   int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Steps:         1000,
		SampleEvery:   10,
		ValidateState: true,
	}
}

// Result accumulates the sampled trace and final metric values of one run.
type Result struct {
	Times      []float64
	Xi         []float64
	Metrics    map[string]float64
	StepsTaken int
}

// RunError marks a failure at a specific step of the loop.
type RunError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("run failed at step %d (t=%.6f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *RunError) Unwrap() error { return e.Wrapped }
