package ringpoly

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Dims fixes the atom and bead counts for the lifetime of a run. Every array
// passed into a component must match these dimensions.
type Dims struct {
	Atoms int
	Beads int
}

// Size is the length of a bead-resolved array: 3*Atoms*Beads.
func (d Dims) Size() int { return 3 * d.Atoms * d.Beads }

// CentroidSize is the length of a centroid-level array: 3*Atoms.
func (d Dims) CentroidSize() int { return 3 * d.Atoms }

// Index returns the flat index of (axis, atom, bead) in a bead-resolved array.
func (d Dims) Index(ax, atom, bead int) int {
	return (ax*d.Atoms+atom)*d.Beads + bead
}

// CIndex returns the flat index of (axis, atom) in a centroid-level array.
func (d Dims) CIndex(ax, atom int) int { return ax*d.Atoms + atom }

// BeadSlice returns the contiguous bead sequence of one atom along one axis.
// The returned slice aliases v.
func (d Dims) BeadSlice(v Vec, ax, atom int) []float64 {
	base := (ax*d.Atoms + atom) * d.Beads
	return v[base : base+d.Beads]
}

// Vec is a flat bead-resolved array laid out as documented on [Dims].
type Vec []float64

func (v Vec) Clone() Vec {
	c := make(Vec, len(v))
	copy(c, v)
	return c
}

func (v Vec) IsValid() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Mode selects the reaction-coordinate blending formula.
type Mode string

const (
	// ModeUmbrella computes xi = s0/(s0-s1) for umbrella-integration
	// free-energy sampling.
	ModeUmbrella Mode = "umbrella-integration"

	// ModeRecrossing computes the linear blend xi_cur*s1 + (1-xi_cur)*s0
	// used in recrossing-factor dynamics.
	ModeRecrossing Mode = "recrossing-factor"
)

// Params holds the run-wide configuration, fixed before the first step.
type Params struct {
	Dt     float64
	Beta   float64
	Masses []float64 // per atom
	Mode   Mode
}

// Validate checks the parameters against the system dimensions. It reports
// ErrParameterBounds, ErrShapeMismatch or ErrUnknownMode on the first
// violation found.
func (p *Params) Validate(d Dims) error {
	if d.Atoms <= 0 || d.Beads <= 0 {
		return ErrParameterBounds
	}
	if p.Dt <= 0 || p.Beta <= 0 {
		return ErrParameterBounds
	}
	if len(p.Masses) != d.Atoms {
		return ErrShapeMismatch
	}
	for _, m := range p.Masses {
		if m <= 0 {
			return ErrParameterBounds
		}
	}
	switch p.Mode {
	case ModeUmbrella, ModeRecrossing:
	default:
		return ErrUnknownMode
	}
	return nil
}

// State is the full mutable simulation state of one trajectory. It is owned
// by the caller; the stepper mutates it in place. On a failed step the state
// may reflect the sub-steps completed before the failure; the caller retries
// from a restored snapshot if it wants to continue.
type State struct {
	Time float64

	Momentum Vec
	Position Vec

	PotentialEnergy []float64 // per bead
	Force           Vec

	Xi         float64
	XiGradient []float64 // centroid-level, 3*Atoms
	XiHessian  *mat.Dense
}

// NewState allocates a zeroed state matching d.
func NewState(d Dims) *State {
	n := d.CentroidSize()
	return &State{
		Momentum:        make(Vec, d.Size()),
		Position:        make(Vec, d.Size()),
		PotentialEnergy: make([]float64, d.Beads),
		Force:           make(Vec, d.Size()),
		XiGradient:      make([]float64, n),
		XiHessian:       mat.NewDense(n, n, nil),
	}
}

// CheckShape verifies that every array in s matches d.
func (s *State) CheckShape(d Dims) error {
	if len(s.Momentum) != d.Size() || len(s.Position) != d.Size() || len(s.Force) != d.Size() {
		return ErrShapeMismatch
	}
	if len(s.PotentialEnergy) != d.Beads || len(s.XiGradient) != d.CentroidSize() {
		return ErrShapeMismatch
	}
	if s.XiHessian == nil {
		return ErrShapeMismatch
	}
	if r, c := s.XiHessian.Dims(); r != d.CentroidSize() || c != d.CentroidSize() {
		return ErrShapeMismatch
	}
	return nil
}

// Snapshot returns a deep copy of s, for retrying a failed step.
func (s *State) Snapshot() *State {
	c := &State{
		Time:            s.Time,
		Momentum:        s.Momentum.Clone(),
		Position:        s.Position.Clone(),
		PotentialEnergy: append([]float64(nil), s.PotentialEnergy...),
		Force:           s.Force.Clone(),
		Xi:              s.Xi,
		XiGradient:      append([]float64(nil), s.XiGradient...),
	}
	if s.XiHessian != nil {
		c.XiHessian = mat.DenseCopyOf(s.XiHessian)
	}
	return c
}

// Potential evaluates the external potential at the given bead-resolved
// positions, filling energy (per bead) and force in place. Force is the
// physical force -dV/dq, not the bare gradient. It must be callable
// repeatedly with no hidden state.
type Potential interface {
	Evaluate(d Dims, q Vec, energy []float64, force Vec) error
}

// Surface is a dividing surface over centroid positions. Gradient and
// Hessian fill caller-provided buffers.
type Surface interface {
	Value(centroid []float64) float64
	Gradient(dst []float64, centroid []float64)
	Hessian(dst *mat.Dense, centroid []float64)
}

// Metric accumulates a scalar statistic over the trajectory.
type Metric interface {
	Name() string
	Observe(s *State)
	Value() float64
	Reset()
}

// Observer is notified after every accepted step.
type Observer interface {
	OnStep(s *State)
}
