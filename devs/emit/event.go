// Package emit is the Listener Surface (spec §4.10): three observable event
// kinds — output produced, input delivered, state changed — each carrying
// (model, value-or-pin, time). It mirrors the teacher's graph/emit package
// in shape (an Emitter-style interface plus Buffered/Log/Null/OTel
// implementations) but is named for what a DEVS observer watches, the way
// adevs's own EventListener<V,T> names its three callbacks
// outputEvent/inputEvent/stateChange.
package emit

import "github.com/dshills/devs-go/devs"

// Kind discriminates the three observable moments in a scheduler step.
type Kind int

const (
	// Output fires once per value a λ() call appends to its output bag,
	// timestamped at the step's simulated time.
	Output Kind = iota
	// Input fires once per delivery into a receiver's input bag, alongside
	// the delivery that caused it.
	Input
	// StateChange fires once per transition (internal, external, or
	// confluent) that actually ran.
	StateChange
)

func (k Kind) String() string {
	switch k {
	case Output:
		return "output"
	case Input:
		return "input"
	case StateChange:
		return "state_change"
	default:
		return "unknown"
	}
}

// Event is one observable moment from a scheduler step. Fields not relevant
// to Kind are left at their zero value: StateChange events carry no Pin or
// Value; Output and Input events always carry both.
type Event[V any, T any] struct {
	Kind    Kind
	ModelID string
	Pin     devs.Pin
	Value   V
	Time    T
	// RunID identifies the simulation run this event belongs to, used as a
	// label on Prometheus metrics and OpenTelemetry spans.
	RunID string
	// Step is the monotonically increasing step counter within the run.
	Step int
}
