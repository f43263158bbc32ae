package hybrid

import (
	"fmt"

	"github.com/dshills/devs-go/devs"
	"github.com/dshills/devs-go/devs/eventloc"
	"github.com/dshills/devs-go/devs/ode"
)

// Adapter wraps a System into the atomic DEVS contract (spec §4.9),
// implementing model.Atomic[V, float64]. Construction runs the same state
// machine as every subsequent DeltaInt/DeltaExt/DeltaConf: integrate toward
// the next candidate event, locate the earliest zero-crossing if any, and
// cache the resulting time advance.
//
// Invariants maintained: TA never reports a value greater than the true
// time to the nearest event this adapter can detect; location error is
// bounded by the configured Locator's EventTol; per-step integration error
// is bounded by the configured Integrator's StepTol. A failure to maintain
// either bound is a contract violation (spec §7) and panics, in every
// build, rather than silently producing an inaccurate result.
type Adapter[V any] struct {
	id         string
	sys        System[V]
	integrator ode.Integrator
	locator    eventloc.Locator
	maxStep    float64

	q       []float64 // state as of the last committed transition
	ta      float64
	pending []float64 // state at q + ta, computed by recompute
	stateEv []bool
	timeEv  bool
}

// NewAdapter constructs a Hybrid Adapter. integrator and locator are
// expected to have been constructed with their own step_tol/event_tol
// (spec §6 "Recognized constructor options"); maxStep bounds a single
// integration attempt independent of any scheduled time event.
func NewAdapter[V any](id string, sys System[V], integrator ode.Integrator, locator eventloc.Locator, maxStep float64) *Adapter[V] {
	a := &Adapter[V]{
		id:         id,
		sys:        sys,
		integrator: integrator,
		locator:    locator,
		maxStep:    maxStep,
	}
	a.q = sys.Init()
	a.recompute()
	return a
}

func (a *Adapter[V]) ID() string  { return a.id }
func (a *Adapter[V]) TA() float64 { return a.ta }

// recompute runs the construction-time state machine of spec §4.9: attempt
// integration toward min(maxStep, time_event_func(q)), then bisect for the
// earliest state-event crossing if z(q) changed sign over that interval.
func (a *Adapter[V]) recompute() {
	timeEvent := a.sys.TimeEvent(a.q)
	h := a.maxStep
	reachedTimeBound := false
	if timeEvent <= h {
		h = timeEvent
		reachedTimeBound = true
	}

	candidate := append([]float64(nil), a.q...)
	hActual, err := a.integrator.Integrate(a.sys.Deriv, candidate, h)
	if err != nil {
		panic(fmt.Errorf("hybrid: model %q: %w", a.id, err))
	}
	if hActual < h {
		// The integrator could not sustain the full proposed step within
		// its error tolerance; the reliable horizon shrinks to match.
		reachedTimeBound = false
	}

	n := len(a.q)
	crossings, err := a.locator.Locate(a.sys.StateEvents, a.q, candidate)
	if err != nil {
		panic(fmt.Errorf("hybrid: model %q: %w", a.id, err))
	}

	if len(crossings) == 0 {
		a.ta = hActual
		a.pending = candidate
		a.timeEv = reachedTimeBound
		a.stateEv = make([]bool, n)
		return
	}

	earliest := crossings[0].Fraction
	flags := make([]bool, n)
	for _, c := range crossings {
		if c.Fraction <= earliest+a.locator.EventTol() {
			flags[c.Index] = true
		}
	}

	a.ta = earliest * hActual
	a.pending = make([]float64, n)
	for i := range a.pending {
		a.pending[i] = a.q[i] + earliest*(candidate[i]-a.q[i])
	}
	a.stateEv = flags
	a.timeEv = reachedTimeBound && earliest >= 1-a.locator.EventTol()
}

// Lambda computes output at the located event point (spec §4.9 λ(yb)).
func (a *Adapter[V]) Lambda(yb *devs.Bag[V]) {
	a.sys.Output(a.pending, a.stateEv, a.timeEv, yb)
}

// DeltaInt advances to the located event and applies the internal
// transition.
func (a *Adapter[V]) DeltaInt() {
	a.q = a.sys.InternalEvent(a.pending, a.stateEv, a.timeEv)
	a.recompute()
}

// DeltaExt integrates for the elapsed time e, then applies the external
// transition with the delivered input.
func (a *Adapter[V]) DeltaExt(e float64, xb *devs.Bag[V]) {
	q := append([]float64(nil), a.q...)
	a.integrateBy(q, e)
	a.q = a.sys.ExternalEvent(q, e, xb)
	a.recompute()
}

// DeltaConf applies the confluent transition directly from the located
// event state, the hybrid analogue of model.DefaultConfluent.
func (a *Adapter[V]) DeltaConf(xb *devs.Bag[V]) {
	a.q = a.sys.ConfluentEvent(a.pending, xb)
	a.recompute()
}

// integrateBy advances state in place by the total elapsed time, looping
// over Integrate calls in case the integrator's adaptive step control
// cannot cover the whole interval in one attempt. It stops once less than
// the locator's EventTol remains, leaving that remainder unintegrated.
func (a *Adapter[V]) integrateBy(state []float64, total float64) {
	remaining := total
	for remaining > a.locator.EventTol() {
		hActual, err := a.integrator.Integrate(a.sys.Deriv, state, remaining)
		if err != nil {
			panic(fmt.Errorf("hybrid: model %q: %w", a.id, err))
		}
		if hActual <= 0 {
			break
		}
		remaining -= hActual
	}
}
