// Package ringpoly provides the core primitives for ring-polymer molecular
// dynamics (RPMD): the bead-resolved phase-space arrays, the run parameters,
// and the interfaces through which the stepper talks to its collaborators.
//
// A system of Natoms atoms is represented by Nbeads imaginary-time replicas
// ("beads") per atom. Per-bead quantities are stored flat, axis-major and
// bead-contiguous, so the bead sequence of one atom along one Cartesian axis
// is a contiguous slice that can be handed to a Fourier transform without
// copying:
//
//	index(ax, atom, bead) = (ax*Natoms + atom)*Nbeads + bead
//
// Centroid-level quantities drop the bead index:
//
//	index(ax, atom) = ax*Natoms + atom
//
// The interfaces defined here are satisfied structurally:
//
//   - [Potential]: the external potential-energy/force evaluator
//   - [Surface]: a dividing surface with value, gradient and Hessian
//   - [Metric], [Observer]: per-step instrumentation hooks
//
// State is owned by the caller driving the simulation loop and mutated in
// place by the stepper; Params is read-only after construction and can be
// shared across independent trajectories.
package ringpoly
