package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/rpmd/internal/ringpoly"
)

// Simulator runs one trajectory at a time. It is not safe for concurrent
// use; independent trajectories get independent Simulators, sharing only
// the read-only run parameters.
type Simulator struct {
	stepper   Stepper
	metrics   []ringpoly.Metric
	observers []ringpoly.Observer
}

func New(stepper Stepper) *Simulator {
	return &Simulator{
		stepper:   stepper,
		metrics:   make([]ringpoly.Metric, 0),
		observers: make([]ringpoly.Observer, 0),
	}
}

func (s *Simulator) AddMetric(m ringpoly.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o ringpoly.Observer) { s.observers = append(s.observers, o) }

// Run advances the state by cfg.Steps steps, sampling the trace every
// cfg.SampleEvery steps. The state is mutated in place; on error it reflects
// the sub-steps completed before the failure and the partial Result is
// returned alongside the error.
func (s *Simulator) Run(ctx context.Context, state *ringpoly.State, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	samples := cfg.Steps/cfg.SampleEvery + 1
	result := &Result{
		Times:   make([]float64, 0, samples),
		Xi:      make([]float64, 0, samples),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	if err := s.stepper.Prime(state); err != nil {
		return result, &RunError{Step: 0, Time: state.Time, Wrapped: err}
	}

	result.Times = append(result.Times, state.Time)
	result.Xi = append(result.Xi, state.Xi)

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			s.finish(result)
			return result, ctx.Err()
		default:
		}

		if err := s.stepper.Step(state); err != nil {
			s.finish(result)
			return result, &RunError{Step: i, Time: state.Time, Wrapped: err}
		}

		if cfg.ValidateState && (!state.Momentum.IsValid() || !state.Position.IsValid()) {
			s.finish(result)
			return result, &RunError{Step: i, Time: state.Time, Wrapped: ringpoly.ErrInvalidState}
		}

		for _, m := range s.metrics {
			m.Observe(state)
		}
		for _, o := range s.observers {
			o.OnStep(state)
		}

		result.StepsTaken++
		if (i+1)%cfg.SampleEvery == 0 {
			result.Times = append(result.Times, state.Time)
			result.Xi = append(result.Xi, state.Xi)
		}
	}

	s.finish(result)
	return result, nil
}

func (s *Simulator) finish(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func validateConfig(cfg Config) error {
	if cfg.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", cfg.Steps)
	}
	if cfg.SampleEvery <= 0 {
		return fmt.Errorf("sample interval must be positive, got %d", cfg.SampleEvery)
	}
	return nil
}
