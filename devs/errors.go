package devs

import "errors"

// ErrNegativeTimeAdvance indicates an atomic model's ta() returned a negative
// value. Per spec §4.1 this is a programming error. The scheduler does not
// check ta() for negative values, in any build, and does not return this
// error.
var ErrNegativeTimeAdvance = errors.New("devs: time advance (ta) is negative")

// ErrUnknownPin indicates routing addressed a pin that no coupling or child
// input declares.
var ErrUnknownPin = errors.New("devs: routing to unknown pin")

// ErrMutationInQuery indicates a model mutated its own state from within ta()
// or λ(), both of which the contract requires to be pure queries.
var ErrMutationInQuery = errors.New("devs: state mutated inside a pure query (ta or lambda)")

// ErrCascadeLimitExceeded indicates more than the configured number of
// zero-duration re-steps occurred at a single simulated time value. Per spec
// §4.4 an infinite same-time loop is a model bug, not a scheduler bug. The
// scheduler's own backstop against such a loop (sim.Simulator.ExecUntil)
// reports the separate sentinel sim.ErrCascadeLimitExceeded, not this one.
var ErrCascadeLimitExceeded = errors.New("devs: zero-duration cascade limit exceeded at one simulated instant")
