// Package model defines the atomic and coupled model contracts (spec §4.1,
// §4.2): the capability set the scheduler dispatches through, and the two
// shapes a composite model can take (flat digraph, or dynamically routed
// network).
package model

import "github.com/dshills/devs-go/devs"

// Atomic is the capability set of a leaf DEVS model. Dispatch is through a
// small, stable interface rather than a tagged enum (spec §9 "Dynamic
// dispatch") so new atomic models never require scheduler changes.
//
// Type parameter V is the value type carried on pins; T is the time domain.
type Atomic[V any, T any] interface {
	// ID returns a name stable for the model's lifetime, used for event
	// queue keying, tie-breaking, and observability.
	ID() string

	// TA returns the time advance: strictly positive, zero (on a transient),
	// or the domain's Inf value to mean "passive until input arrives". TA
	// must be a pure query — it must not mutate model state and must be
	// idempotently re-callable between transitions.
	TA() T

	// DeltaInt fires when elapsed since the last transition equals TA() and
	// no external input targets this model this step.
	DeltaInt()

	// DeltaExt fires when input arrives strictly before TA() elapses.
	// e is the elapsed time since the last transition (0 <= e < TA()).
	// xb is guaranteed non-empty.
	DeltaExt(e T, xb *devs.Bag[V])

	// DeltaConf fires when input arrives exactly as TA() elapses. The
	// default contract behavior (model.DefaultConfluent) is
	// DeltaInt(); DeltaExt(zero, xb) — but a model may implement its own
	// ordering by providing DeltaConf directly.
	DeltaConf(xb *devs.Bag[V])

	// Lambda is the output function: it appends this model's output for the
	// current step to yb. Lambda must not mutate state. The scheduler calls
	// it once per internal/confluent firing, always before the
	// corresponding DeltaInt/DeltaConf; each Simulator.ComputeNextOutput
	// preview calls it one more time.
	Lambda(yb *devs.Bag[V])
}

// DefaultConfluent implements the canonical DEVS confluent policy — internal
// transition followed by external transition with elapsed time forced to
// zero — for atomic models that don't need a custom ordering. Per spec §9's
// resolved Open Question, the elapsed argument passed to DeltaExt at
// confluence is always zero, not the (already fully elapsed) ta value.
func DefaultConfluent[V any, T any](a Atomic[V, T], zero T, xb *devs.Bag[V]) {
	a.DeltaInt()
	a.DeltaExt(zero, xb)
}
