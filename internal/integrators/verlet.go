package integrators

import (
	"github.com/san-kum/rpmd/internal/geometry"
	"github.com/san-kum/rpmd/internal/reaction"
	"github.com/san-kum/rpmd/internal/ringpoly"
)

// Verlet advances a trajectory by one velocity Verlet step per call:
// half-kick, exact free-ring drift, reaction-coordinate refresh, force
// recomputation, half-kick, time advance. All state lives in the
// caller-owned ringpoly.State; the stepper itself only holds scratch.
type Verlet struct {
	dims ringpoly.Dims
	prm  *ringpoly.Params

	ring *FreeRing
	pot  ringpoly.Potential
	rc   *reaction.Evaluator

	centroid []float64
}

// NewVerlet validates the run parameters and wires the stepper to its
// collaborators. All configuration errors surface here, before any state
// is mutated.
func NewVerlet(d ringpoly.Dims, prm *ringpoly.Params, pot ringpoly.Potential, rc *reaction.Evaluator) (*Verlet, error) {
	if err := prm.Validate(d); err != nil {
		return nil, err
	}
	ring, err := NewFreeRing(d, prm.Dt, prm.Beta, prm.Masses)
	if err != nil {
		return nil, err
	}
	return &Verlet{
		dims:     d,
		prm:      prm,
		ring:     ring,
		pot:      pot,
		rc:       rc,
		centroid: make([]float64, d.CentroidSize()),
	}, nil
}

// Coordinate returns the reaction-coordinate evaluator, so the driving loop
// can adjust the recrossing-factor interpolation parameter between steps.
func (v *Verlet) Coordinate() *reaction.Evaluator { return v.rc }

// Prime evaluates the reaction coordinate and the potential at the current
// positions, seeding s.Force for the first half-kick. Call it once before
// the first Step.
func (v *Verlet) Prime(s *ringpoly.State) error {
	if err := s.CheckShape(v.dims); err != nil {
		return err
	}
	if err := geometry.Centroid(v.dims, s.Position, v.centroid); err != nil {
		return err
	}
	if err := v.rc.Evaluate(v.centroid, &s.Xi, s.XiGradient, s.XiHessian); err != nil {
		return err
	}
	return v.pot.Evaluate(v.dims, s.Position, s.PotentialEnergy, s.Force)
}

// Step performs one full time step, mutating s in place. The first half-kick
// uses the force stored from the previous step; Prime seeds it before the
// first call.
//
// On error the state reflects the sub-steps already completed. There is no
// rollback; retry from a snapshot taken before the call.
func (v *Verlet) Step(s *ringpoly.State) error {
	if err := s.CheckShape(v.dims); err != nil {
		return err
	}
	halfDt := 0.5 * v.prm.Dt

	// s.Force holds the physical force -dV/dq, so the kick adds it.
	for i := range s.Momentum {
		s.Momentum[i] += halfDt * s.Force[i]
	}

	if err := v.ring.Step(s.Momentum, s.Position); err != nil {
		return &ringpoly.StepError{Time: s.Time, Wrapped: err}
	}

	if err := geometry.Centroid(v.dims, s.Position, v.centroid); err != nil {
		return &ringpoly.StepError{Time: s.Time, Wrapped: err}
	}
	if err := v.rc.Evaluate(v.centroid, &s.Xi, s.XiGradient, s.XiHessian); err != nil {
		return &ringpoly.StepError{Time: s.Time, Wrapped: err}
	}

	if err := v.pot.Evaluate(v.dims, s.Position, s.PotentialEnergy, s.Force); err != nil {
		return &ringpoly.StepError{Time: s.Time, Wrapped: err}
	}

	for i := range s.Momentum {
		s.Momentum[i] += halfDt * s.Force[i]
	}

	s.Time += v.prm.Dt
	return nil
}
