package sim_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rpmd/internal/ringpoly"
	"github.com/san-kum/rpmd/internal/sim"
)

// fakeStepper advances time by dt and sets xi = time, failing on demand.
type fakeStepper struct {
	dt      float64
	primed  int
	steps   int
	failAt  int // fail on this step number, -1 to never fail
	corrupt bool
}

func (f *fakeStepper) Prime(s *ringpoly.State) error {
	f.primed++
	s.Xi = s.Time
	return nil
}

func (f *fakeStepper) Step(s *ringpoly.State) error {
	if f.failAt >= 0 && f.steps == f.failAt {
		return ringpoly.ErrSurfacesCoincide
	}
	f.steps++
	s.Time += f.dt
	s.Xi = s.Time
	if f.corrupt {
		s.Momentum[0] = math.NaN()
	}
	return nil
}

var _ = Describe("Simulator", func() {
	var (
		stepper *fakeStepper
		state   *ringpoly.State
		cfg     sim.Config
	)

	BeforeEach(func() {
		stepper = &fakeStepper{dt: 0.5, failAt: -1}
		state = ringpoly.NewState(ringpoly.Dims{Atoms: 1, Beads: 1})
		cfg = sim.Config{Steps: 10, SampleEvery: 2, ValidateState: true}
	})

	It("primes once and samples the trace", func() {
		result, err := sim.New(stepper).Run(context.Background(), state, cfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(stepper.primed).To(Equal(1))
		Expect(result.StepsTaken).To(Equal(10))
		// Initial sample plus one every 2 steps.
		Expect(result.Times).To(HaveLen(6))
		Expect(result.Times[0]).To(Equal(0.0))
		Expect(result.Times[5]).To(BeNumerically("~", 5.0, 1e-12))
		Expect(result.Xi[5]).To(BeNumerically("~", 5.0, 1e-12))
	})

	It("collects metric values into the result", func() {
		s := sim.New(stepper)
		m := &countingMetric{}
		s.AddMetric(m)

		result, err := s.Run(context.Background(), state, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.resets).To(Equal(1))
		Expect(result.Metrics).To(HaveKeyWithValue("count", 10.0))
	})

	It("notifies observers on every step", func() {
		s := sim.New(stepper)
		o := &countingObserver{}
		s.AddObserver(o)

		_, err := s.Run(context.Background(), state, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(o.calls).To(Equal(10))
	})

	It("propagates step failures with step context", func() {
		stepper.failAt = 3
		result, err := sim.New(stepper).Run(context.Background(), state, cfg)

		Expect(err).To(MatchError(ringpoly.ErrSurfacesCoincide))
		var runErr *sim.RunError
		Expect(errors.As(err, &runErr)).To(BeTrue())
		Expect(runErr.Step).To(Equal(3))
		Expect(result.StepsTaken).To(Equal(3))
	})

	It("stops when the context is canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := sim.New(stepper).Run(ctx, state, cfg)
		Expect(err).To(MatchError(context.Canceled))
	})

	It("detects NaN state when validation is on", func() {
		stepper.corrupt = true
		_, err := sim.New(stepper).Run(context.Background(), state, cfg)
		Expect(err).To(MatchError(ringpoly.ErrInvalidState))
	})

	It("rejects invalid configs", func() {
		_, err := sim.New(stepper).Run(context.Background(), state, sim.Config{Steps: 0, SampleEvery: 1})
		Expect(err).To(HaveOccurred())

		_, err = sim.New(stepper).Run(context.Background(), state, sim.Config{Steps: 10, SampleEvery: 0})
		Expect(err).To(HaveOccurred())
	})
})

type countingMetric struct {
	count  int
	resets int
}

func (m *countingMetric) Name() string              { return "count" }
func (m *countingMetric) Observe(s *ringpoly.State) { m.count++ }
func (m *countingMetric) Value() float64            { return float64(m.count) }
func (m *countingMetric) Reset()                    { m.resets++; m.count = 0 }

type countingObserver struct {
	calls int
}

func (o *countingObserver) OnStep(s *ringpoly.State) { o.calls++ }
