package emit

import "context"

// Listener receives observability events from a simulation run (spec
// §4.10). Implementations enable pluggable observability backends:
// buffered in-memory capture for tests, structured text/JSON logging,
// OpenTelemetry tracing, or a no-op for production runs that don't want the
// overhead.
//
// Per spec §5 ("Shared resource policy"), a Listener may read model state
// passed to it but must not mutate it, and must not call back into the
// Simulator — listener invocation happens synchronously within the step,
// after all transitions for that step's observable subset have completed.
//
// Implementations should be non-blocking and should not panic.
type Listener[V any, T any] interface {
	// Notify delivers a single observable event.
	Notify(Event[V, T])

	// NotifyBatch delivers multiple events from one step in order
	// (outputs, then state changes; inputs alongside the delivery that
	// caused them — spec §5 "Ordering guarantees").
	NotifyBatch(ctx context.Context, events []Event[V, T]) error

	// Flush ensures all buffered events have been delivered to the backend.
	Flush(ctx context.Context) error
}
