package devs

import "sync/atomic"

// Pin is an opaque identifier for a communication channel owned by a coupled
// model. Pin identity is stable for a model's lifetime (spec §3 invariant).
type Pin uint64

// pinCounter is process-wide only in the sense that it hands out unique Pin
// values; it carries no simulation state, so multiple independent
// simulators may run concurrently in one process without interfering with
// each other (spec §9 "Global state").
var pinCounter uint64

// NewPin allocates a fresh, process-unique Pin. Coupled models call this when
// declaring their own inward/outward ports; atomic models typically receive
// their pins from the parent that wires them up.
func NewPin() Pin {
	return Pin(atomic.AddUint64(&pinCounter, 1))
}

// PinValue pairs a value with the pin it was produced on or is destined for.
type PinValue[V any] struct {
	Pin   Pin
	Value V
}
