package emit

import "context"

// NullListener discards every event. It is the zero-overhead default for
// production runs that don't want observability cost.
type NullListener[V any, T any] struct{}

// NewNullListener constructs a NullListener.
func NewNullListener[V any, T any]() *NullListener[V, T] { return &NullListener[V, T]{} }

func (NullListener[V, T]) Notify(Event[V, T]) {}

func (NullListener[V, T]) NotifyBatch(context.Context, []Event[V, T]) error { return nil }

func (NullListener[V, T]) Flush(context.Context) error { return nil }
