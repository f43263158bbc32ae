package model

import "github.com/dshills/devs-go/devs"

// Component is the common identity shared by atomic and coupled models: a
// stable name used for queue keying, tie-breaking, and routing.
type Component[V any, T any] interface {
	ID() string
}

// Coupled is the "Digraph" shape of spec §4.2: a flat set of children plus a
// static map from source pin to the set of destination pins reachable in one
// coupling hop. Coupled models nest freely — a child may itself be a
// Coupled, and the route computer flattens through those boundaries (spec
// §4.5) by walking the coupling closure recursively.
type Coupled[V any, T any] interface {
	Component[V, T]

	// Children returns this model's direct sub-models, in the stable order
	// they were added (structural mutation appends/removes from this list;
	// see Mutator).
	Children() []Component[V, T]

	// Couplings returns this model's declared source-pin -> destination-pins
	// edges. The returned map must not be mutated by the caller; use a
	// Mutator to change couplings between steps.
	Couplings() map[devs.Pin][]devs.Pin
}

// RoutingContext gives a Network's Route function read-only visibility into
// sibling state for deterministic, computed routing decisions (e.g.
// load-balancing to the least-loaded child). Per spec §4.2's contract,
// routing must be a deterministic function of (src, value, current child
// states read only) — Route must not mutate anything reachable from the
// context.
type RoutingContext[V any, T any] interface {
	// Children returns the Network's current children, in stable order.
	Children() []Component[V, T]
}

// Delivery is one routed output produced by a Network's Route function: a
// value destined for a specific child's input pin.
type Delivery[V any, T any] struct {
	Child Component[V, T]
	Value devs.PinValue[V]
}

// Network is the "Network"/hierarchical shape of spec §4.2: a coupled model
// that computes its own routing at runtime instead of declaring a static
// coupling map. This enables dynamic deliveries (e.g. routing a job to the
// least-loaded machine). The scheduler treats Route as an opaque routing
// function and never attempts to precompute a fanout closure through it.
//
// A Network's children are restricted to Atomic models: a Network is meant
// to express a dynamic dispatch policy over a pool of interchangeable
// workers, not to re-host an arbitrarily nested sub-graph. Nest a Coupled
// inside a Network's parent Coupled (or vice versa) for mixed hierarchies.
type Network[V any, T any] interface {
	Component[V, T]

	// EntryPins returns the pins at which this Network accepts input from
	// its enclosing coupled model. A delivery to one of these pins is
	// resolved by calling Route rather than by static coupling closure.
	EntryPins() []devs.Pin

	// Children returns the Network's current atomic children, in stable
	// order.
	Children() []Component[V, T]

	// Route computes the deliveries for a value arriving at one of this
	// Network's entry pins. Implementations must be deterministic given
	// (src, value, the read-only state exposed through r).
	Route(value V, src devs.Pin, r RoutingContext[V, T]) []Delivery[V, T]
}

// Mutator is the structural-mutation surface a Coupled model exposes so the
// scheduler can apply buffered add/remove operations in the quiescent phase
// between steps (spec §4.6). A model that never mutates its children does
// not need to implement Mutator.
type Mutator[V any, T any] interface {
	// AddAtomic admits a new atomic child, effective at the next structural
	// mutation phase. The child's t_last is set to the mutation time and it
	// is enqueued at t_last + TA().
	AddAtomic(child Atomic[V, T])

	// AddCoupled admits a new coupled (or network) child, effective at the
	// next structural mutation phase.
	AddCoupled(child Component[V, T])

	// RemoveChild removes a child by ID, effective at the next structural
	// mutation phase. Its imminent queue entry is purged; any output it
	// produced in the step that triggered its removal has already been
	// delivered.
	RemoveChild(id string)

	// Connect adds a coupling edge, effective at the next structural
	// mutation phase.
	Connect(src, dst devs.Pin)

	// Disconnect removes a coupling edge, effective at the next structural
	// mutation phase.
	Disconnect(src, dst devs.Pin)
}

// MutableComponent is what the scheduler's structural-mutation phase (spec
// §4.6 step 8) actually needs from a component that buffers mutations:
// enough to walk its children and apply whatever is pending between steps.
// *Digraph satisfies this directly. A Network that wants to grow or shrink
// its own worker pool (e.g. a load-balancing factory adding machines under
// load) can satisfy it too, by buffering its own AddAtomic/RemoveChild
// calls and applying them the same way Digraph.ApplyMutations does — the
// scheduler does not care which shape of Coupled a mutation came from.
type MutableComponent[V any, T any] interface {
	Component[V, T]
	Children() []Component[V, T]

	// ApplyMutations applies every buffered mutation, returning the
	// children added and removed so the caller can enqueue or purge them.
	ApplyMutations() (added []Component[V, T], removed []Component[V, T])

	// HasPendingMutations reports whether ApplyMutations would do any work.
	HasPendingMutations() bool
}
