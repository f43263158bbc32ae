// Package route implements the Route Computer (spec §4.5): given a
// coupling map and a model's output pin, it produces the transitive closure
// of receivers, flattening through nested coupled-model boundaries and
// terminating at atomic inputs or a Network's entry pins.
//
// The closure of each source pin is computed on its first Fanout call and
// memoized until the next Rebuild, which runs once per structural-mutation
// epoch (spec §4.5 "Implementation guidance"), so repeated routing from the
// same pin within an epoch does not recompute it.
package route

import (
	"github.com/dshills/devs-go/devs"
	"github.com/dshills/devs-go/devs/model"
)

// Target is one terminal receiver of a routed value: either an atomic leaf's
// input pin, or a Network's entry pin (whose actual child is resolved at
// delivery time by calling Network.Route, since that routing is dynamic and
// deliberately not part of the precomputed closure).
type Target[V any, T any] struct {
	Pin   devs.Pin
	Owner model.Component[V, T]
	// IsNetwork is true when Owner is a model.Network and the delivery must
	// be resolved by calling Route rather than delivered directly.
	IsNetwork bool
}

// Router precomputes and caches the coupling closure for a model tree rooted
// at a Coupled model.
type Router[V any, T any] struct {
	root model.Coupled[V, T]

	// adjacency is the union, across every Coupled descendant, of
	// source-pin -> destination-pins edges.
	adjacency map[devs.Pin][]devs.Pin

	// owners maps a pin to the component that owns it as an input, gathered
	// from every Digraph's Owner lookups and every Network's EntryPins.
	owners map[devs.Pin]model.Component[V, T]

	// networkPins records which owner pins belong to a Network (vs. a plain
	// atomic leaf or nested Coupled), so closure expansion knows to stop
	// there rather than recurse into the Network's internal routing.
	networkPins map[devs.Pin]bool

	// fanout is the memoized closure: source output pin -> terminal targets.
	fanout map[devs.Pin][]Target[V, T]
}

// NewRouter builds a Router for the given root model, building its adjacency
// and owner index immediately; per-pin closures are computed lazily by
// Fanout.
func NewRouter[V any, T any](root model.Coupled[V, T]) *Router[V, T] {
	r := &Router[V, T]{root: root}
	r.Rebuild()
	return r
}

// Rebuild recomputes the adjacency/owner index and clears the memoized
// fanout cache. Call this once per structural-mutation epoch (spec §4.5);
// it must never be called mid-step.
func (r *Router[V, T]) Rebuild() {
	r.adjacency = make(map[devs.Pin][]devs.Pin)
	r.owners = make(map[devs.Pin]model.Component[V, T])
	r.networkPins = make(map[devs.Pin]bool)
	r.fanout = make(map[devs.Pin][]Target[V, T])
	r.walk(r.root)
}

func (r *Router[V, T]) walk(c model.Component[V, T]) {
	switch n := c.(type) {
	case *model.Digraph[V, T]:
		for src, dsts := range n.Couplings() {
			r.adjacency[src] = append(r.adjacency[src], dsts...)
		}
		for owner, comp := range n.AllOwners() {
			r.owners[owner] = comp
			if _, isNet := comp.(model.Network[V, T]); isNet {
				r.networkPins[owner] = true
			}
		}
		for _, child := range n.Children() {
			r.walk(child)
		}
	case model.Network[V, T]:
		for _, p := range n.EntryPins() {
			r.owners[p] = n
			r.networkPins[p] = true
		}
		// A Network's children are atomic leaves reachable only through
		// Route, not through static couplings, so there is nothing further
		// to walk statically.
	default:
		// Atomic leaf: ownership is registered by the parent Digraph above;
		// nothing further to recurse into.
	}
}

// Fanout returns the memoized transitive closure of receivers for a source
// pin, computing and caching it on first use within the current epoch.
func (r *Router[V, T]) Fanout(src devs.Pin) []Target[V, T] {
	if cached, ok := r.fanout[src]; ok {
		return cached
	}
	targets := r.closure(src)
	r.fanout[src] = targets
	return targets
}

// closure performs the BFS over the flattened adjacency graph, starting at
// src itself (so a pin that is directly owned resolves to its owner),
// stopping at any pin that is a registered owner (an atomic input or a
// Network entry pin) and continuing through any other pin that merely
// forwards.
func (r *Router[V, T]) closure(src devs.Pin) []Target[V, T] {
	visited := make(map[devs.Pin]bool)
	queue := []devs.Pin{src}
	var out []Target[V, T]
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if visited[p] {
			continue
		}
		visited[p] = true
		if owner, ok := r.owners[p]; ok {
			if r.networkPins[p] {
				out = append(out, Target[V, T]{Pin: p, Owner: owner, IsNetwork: true})
				// A Network entry always terminates the static closure;
				// delivery beyond this point is resolved dynamically by
				// Network.Route, never by further coupling-map expansion.
				continue
			}
			if _, isAtomic := owner.(model.Atomic[V, T]); isAtomic {
				out = append(out, Target[V, T]{Pin: p, Owner: owner})
				continue
			}
			// Otherwise the owner is a nested Coupled model and p is merely
			// its inward-facing pin; fall through to keep expanding via its
			// own (already-flattened) internal couplings.
		}
		queue = append(queue, r.adjacency[p]...)
	}
	return out
}
