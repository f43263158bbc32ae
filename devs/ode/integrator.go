// Package ode implements the ODE Integrator contract of spec §4.7: given a
// continuous system with n state variables and a proposed step, advance
// state by some h <= h_propose while keeping per-step local error within a
// configured tolerance. Two implementations are provided, mirroring the
// two named in the spec: a corrected (predictor-corrector) Euler method and
// an embedded Runge-Kutta-Fehlberg 4(5) pair.
package ode

import (
	"errors"
	"math"
)

// ErrStepTolUnmet is returned when an integrator cannot meet its configured
// stepTol within its minimum allowed step (spec §7 "Integration failure").
// A Hybrid Adapter surfaces this as a simulator-level failure rather than
// silently accepting the resulting loss of accuracy.
var ErrStepTolUnmet = errors.New("ode: step tolerance not met within minimum step")

// minStepFraction bounds how far a step-halving integrator will shrink h
// before giving up, expressed as a fraction of the originally proposed
// step rather than an absolute floor.
const minStepFraction = 1.0 / 1024

// DerivFunc evaluates the system's derivative dq/dt at state q, writing the
// result into deriv. Both slices have length n; DerivFunc must not retain
// either slice beyond the call.
type DerivFunc func(q []float64, deriv []float64)

// Integrator advances a continuous system's state vector by some actual
// step h_actual <= h_propose, keeping per-step local error within the
// tolerance fixed at construction. Implementations are side-effect-free on
// the model beyond calling der: the state vector passed in is mutated in
// place to hold the new state, and nothing else is touched.
type Integrator interface {
	// Integrate advances state in place over an actual step <= hPropose,
	// returning the step actually taken. der is called one or more times
	// depending on the method's order.
	Integrate(der DerivFunc, state []float64, hPropose float64) (hActual float64, err error)

	// StepTol returns the per-step local error tolerance fixed at
	// construction.
	StepTol() float64

	// MaxStep returns the upper bound on a single integration attempt
	// fixed at construction.
	MaxStep() float64
}

// norm2 computes the Euclidean norm of a vector, used by both
// implementations to turn a per-component error estimate into a scalar
// accept/reject decision.
func norm2(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
