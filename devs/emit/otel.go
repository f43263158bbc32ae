package emit

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// OTelListener turns every Event into a short-lived span, one per event,
// the way the teacher's emit.OTelEmitter traces workflow node execution.
// Spans are named after the event Kind and carry model/pin/run attributes,
// letting a trace backend reconstruct a run's causal shape without the
// simulator itself depending on any tracing library beyond otel's API
// surface.
type OTelListener[V any, T any] struct {
	tracer trace.Tracer
}

// NewOTelListener constructs an OTelListener from a tracer. Pass
// otel.Tracer("devs") (or a scoped equivalent) from the caller's chosen
// TracerProvider.
func NewOTelListener[V any, T any](tracer trace.Tracer) *OTelListener[V, T] {
	return &OTelListener[V, T]{tracer: tracer}
}

func (o *OTelListener[V, T]) Notify(e Event[V, T]) {
	_, span := o.tracer.Start(context.Background(), e.Kind.String(), trace.WithAttributes(
		attribute.String("devs.model_id", e.ModelID),
		attribute.Int64("devs.pin", int64(e.Pin)),
		attribute.String("devs.run_id", e.RunID),
		attribute.Int("devs.step", e.Step),
		attribute.String("devs.time", fmt.Sprintf("%v", e.Time)),
	))
	if e.Kind != StateChange {
		span.SetAttributes(attribute.String("devs.value", fmt.Sprintf("%v", e.Value)))
	}
	span.End()
}

func (o *OTelListener[V, T]) NotifyBatch(ctx context.Context, events []Event[V, T]) error {
	for _, e := range events {
		o.Notify(e)
	}
	return nil
}

func (o *OTelListener[V, T]) Flush(context.Context) error { return nil }
