// Package hybrid implements the Hybrid Adapter of spec §4.9: it wraps a
// continuous system (derivative function, state- and time-event functions,
// and the four continuous-domain event callbacks) into the atomic DEVS
// contract, so a continuous sub-model can be scheduled by the same
// discrete scheduler as any other atomic.
//
// The adapter fixes its time domain to float64 (devs.DoubleDomain): the ODE
// integrator and event locator both operate on float64 state vectors, and
// nothing in spec §4.7-§4.9 asks for a hybrid sub-system over a different
// time domain, so this is the Open Question resolution recorded in
// DESIGN.md rather than a generalized Domain[T] parameter threaded through
// three packages for no exercised benefit.
package hybrid

import "github.com/dshills/devs-go/devs"

// System is the continuous-system contract a host model implements: the
// der_func/state_event_func/time_event_func/init/int_event/ext_event/
// conf_event/output_func bundle of spec §4.9, generalized over the pin
// value type V carried by external input/output bags.
type System[V any] interface {
	// Init returns the initial continuous state q0.
	Init() []float64

	// Deriv evaluates dq/dt at q, writing into out. Called one or more
	// times per integration attempt by the configured Integrator.
	Deriv(q []float64, out []float64)

	// StateEvents evaluates the zero-crossing vector z(q), writing one
	// component per watched condition into out. len(out) is fixed for the
	// system's lifetime.
	StateEvents(q []float64, out []float64)

	// TimeEvent returns the time until the next scheduled time event (the
	// domain's Inf-equivalent, math.Inf(1), if none is pending). It must be
	// a pure query, re-callable between transitions without side effects.
	TimeEvent(q []float64) float64

	// InternalEvent applies an internal transition at the located event,
	// given the current state and which conditions triggered (stateEvents
	// parallels StateEvents' output; timeEvent reports whether the time
	// event function's bound was reached), returning the new state.
	InternalEvent(q []float64, stateEvents []bool, timeEvent bool) []float64

	// ExternalEvent applies an external transition: q has already been
	// integrated forward by elapsed e; xb carries the delivered input.
	// Returns the new state.
	ExternalEvent(q []float64, e float64, xb *devs.Bag[V]) []float64

	// ConfluentEvent applies a confluent transition: internal followed by
	// external with elapsed forced to zero, mirroring
	// model.DefaultConfluent's discrete-domain policy. Returns the new
	// state.
	ConfluentEvent(q []float64, xb *devs.Bag[V]) []float64

	// Output computes this step's output bag from the state and triggered
	// event flags at the located event, mirroring Atomic.Lambda.
	Output(q []float64, stateEvents []bool, timeEvent bool, yb *devs.Bag[V])
}
