package experiment

import (
	"context"

	"github.com/san-kum/rpmd/internal/config"
	"github.com/san-kum/rpmd/internal/integrators"
	"github.com/san-kum/rpmd/internal/metrics"
	"github.com/san-kum/rpmd/internal/reaction"
	"github.com/san-kum/rpmd/internal/ringpoly"
	"github.com/san-kum/rpmd/internal/sim"
)

// Experiment is one fully wired trajectory run.
type Experiment struct {
	cfg       *config.Config
	stepper   *integrators.Verlet
	simulator *sim.Simulator
	state     *ringpoly.State
	window    *metrics.Window
}

// New validates cfg and builds every component. All configuration errors
// surface here, before any dynamics run.
func New(cfg *config.Config) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d := cfg.Dims()
	prm := cfg.Params()

	pot, err := BuildPotential(cfg.Potential)
	if err != nil {
		return nil, err
	}
	reactant, err := BuildSurface(cfg.Reactant, d.Atoms)
	if err != nil {
		return nil, err
	}
	transition, err := BuildSurface(cfg.Transition, d.Atoms)
	if err != nil {
		return nil, err
	}

	rc, err := reaction.New(prm.Mode, reactant, transition, d.Atoms)
	if err != nil {
		return nil, err
	}
	rc.SetXi(cfg.Xi)

	stepper, err := integrators.NewVerlet(d, prm, pot, rc)
	if err != nil {
		return nil, err
	}

	e := &Experiment{
		cfg:       cfg,
		stepper:   stepper,
		simulator: sim.New(stepper),
		state:     initialState(d, cfg),
		window:    metrics.NewWindow(),
	}
	e.simulator.AddMetric(metrics.NewEnergyDrift(d, prm.Masses, prm.Beta))
	e.simulator.AddMetric(metrics.NewGyration(d))
	e.simulator.AddMetric(e.window)
	return e, nil
}

// initialState places every bead of an atom at the configured centroid
// position, with the configured centroid momentum split evenly over beads.
func initialState(d ringpoly.Dims, cfg *config.Config) *ringpoly.State {
	s := ringpoly.NewState(d)
	for ax := 0; ax < 3; ax++ {
		for atom := 0; atom < d.Atoms; atom++ {
			ci := d.CIndex(ax, atom)
			qs := d.BeadSlice(s.Position, ax, atom)
			ps := d.BeadSlice(s.Momentum, ax, atom)
			for bead := range qs {
				qs[bead] = cfg.InitPosition[ci]
				ps[bead] = cfg.InitMomentum[ci] / float64(d.Beads)
			}
		}
	}
	return s
}

// Run executes the configured number of steps.
func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	return e.simulator.Run(ctx, e.state, sim.Config{
		Steps:         e.cfg.Steps,
		SampleEvery:   e.cfg.SampleEvery,
		ValidateState: true,
	})
}

// Stepper exposes the integrator for step-by-step drivers like the live view.
func (e *Experiment) Stepper() *integrators.Verlet { return e.stepper }

// Simulator exposes the underlying loop for adding observers.
func (e *Experiment) Simulator() *sim.Simulator { return e.simulator }

// State returns the trajectory state, live during a run.
func (e *Experiment) State() *ringpoly.State { return e.state }

// Window returns the umbrella-window statistics collected by the run.
func (e *Experiment) Window() *metrics.Window { return e.window }
