package model

import "github.com/dshills/devs-go/devs"

// Digraph is the reference implementation of Coupled: a flat set of
// children plus a coupling map, with buffered structural mutation (spec
// §4.6) applied between steps by whatever owns the queue (devs/sim).
//
// Type parameter V is the pin value type; T is the time domain.
type Digraph[V any, T any] struct {
	id        string
	children  []Component[V, T]
	childByID map[string]Component[V, T]
	couplings map[devs.Pin][]devs.Pin

	// owner maps an input pin to the child that receives deliveries on it.
	// A pin absent from this map that is also absent from couplings as a
	// destination is unroutable (devs.ErrUnknownPin).
	owner map[devs.Pin]Component[V, T]

	// pending holds buffered mutations (spec §4.6: "All mutation is
	// buffered until step 8; applied in a single quiescent phase").
	pending []mutation[V, T]
}

type mutationKind int

const (
	mutAddAtomic mutationKind = iota
	mutAddCoupled
	mutRemoveChild
	mutConnect
	mutDisconnect
)

type mutation[V any, T any] struct {
	kind  mutationKind
	child Component[V, T]
	atom  Atomic[V, T]
	id    string
	inputs []devs.Pin
	src, dst devs.Pin
}

// NewDigraph constructs an empty coupled model with the given stable ID.
func NewDigraph[V any, T any](id string) *Digraph[V, T] {
	return &Digraph[V, T]{
		id:        id,
		childByID: make(map[string]Component[V, T]),
		couplings: make(map[devs.Pin][]devs.Pin),
		owner:     make(map[devs.Pin]Component[V, T]),
	}
}

// ID implements Component.
func (g *Digraph[V, T]) ID() string { return g.id }

// Children implements Coupled.
func (g *Digraph[V, T]) Children() []Component[V, T] { return g.children }

// Couplings implements Coupled.
func (g *Digraph[V, T]) Couplings() map[devs.Pin][]devs.Pin { return g.couplings }

// Owner returns the child that owns the given input pin, if any. The route
// computer uses this to resolve a destination pin to the atomic (or nested
// coupled/network) model that should actually receive the delivery.
func (g *Digraph[V, T]) Owner(pin devs.Pin) (Component[V, T], bool) {
	c, ok := g.owner[pin]
	return c, ok
}

// AllOwners returns a snapshot copy of this Digraph's pin-ownership table,
// used by the route computer to build its global owner index without
// depending on pins also appearing as coupling destinations (external
// injection targets a pin directly and never needs to appear in a
// coupling).
func (g *Digraph[V, T]) AllOwners() map[devs.Pin]Component[V, T] {
	out := make(map[devs.Pin]Component[V, T], len(g.owner))
	for p, c := range g.owner {
		out[p] = c
	}
	return out
}

// AddAtomicNow admits an atomic child immediately (construction time, before
// any simulation has started — not to be confused with the buffered
// AddAtomic mutation used mid-simulation). inputs declares which pins, when
// a delivery targets them, are routed to this child.
func (g *Digraph[V, T]) AddAtomicNow(child Atomic[V, T], inputs ...devs.Pin) {
	g.children = append(g.children, child)
	g.childByID[child.ID()] = child
	for _, p := range inputs {
		g.owner[p] = child
	}
}

// AddCoupledNow admits a coupled or network child immediately. inputs
// declares the child's own exposed input pins (for a Network this should
// equal its EntryPins(); for a nested Coupled, the pins it exposes inward).
func (g *Digraph[V, T]) AddCoupledNow(child Component[V, T], inputs ...devs.Pin) {
	g.children = append(g.children, child)
	g.childByID[child.ID()] = child
	for _, p := range inputs {
		g.owner[p] = child
	}
}

// ConnectNow adds a coupling edge immediately (construction time).
func (g *Digraph[V, T]) ConnectNow(src, dst devs.Pin) {
	g.couplings[src] = append(g.couplings[src], dst)
}

// AddAtomic buffers admission of an atomic child for the next structural
// mutation phase (spec §4.6). Implements Mutator.
func (g *Digraph[V, T]) AddAtomic(child Atomic[V, T]) {
	g.pending = append(g.pending, mutation[V, T]{kind: mutAddAtomic, atom: child})
}

// AddCoupled buffers admission of a coupled/network child. Implements
// Mutator.
func (g *Digraph[V, T]) AddCoupled(child Component[V, T]) {
	g.pending = append(g.pending, mutation[V, T]{kind: mutAddCoupled, child: child})
}

// RemoveChild buffers removal of a child by ID. Implements Mutator.
func (g *Digraph[V, T]) RemoveChild(id string) {
	g.pending = append(g.pending, mutation[V, T]{kind: mutRemoveChild, id: id})
}

// Connect buffers a new coupling edge. Implements Mutator.
func (g *Digraph[V, T]) Connect(src, dst devs.Pin) {
	g.pending = append(g.pending, mutation[V, T]{kind: mutConnect, src: src, dst: dst})
}

// Disconnect buffers removal of a coupling edge. Implements Mutator.
func (g *Digraph[V, T]) Disconnect(src, dst devs.Pin) {
	g.pending = append(g.pending, mutation[V, T]{kind: mutDisconnect, src: src, dst: dst})
}

// DeclareInput registers ownership of an input pin for a child added via the
// buffered AddAtomic/AddCoupled path. Call it in the same quiescent phase
// (i.e. before the next ApplyMutations) that adds the child.
func (g *Digraph[V, T]) DeclareInput(pin devs.Pin, owner Component[V, T]) {
	g.pending = append(g.pending, mutation[V, T]{kind: mutConnect, src: pin, dst: pin, child: owner})
}

// ApplyMutations applies every buffered mutation in order and returns the
// children it added and removed, so the caller (the simulator) can enqueue
// the added ones, purge the removed ones' queue entries, and hand them back
// to whatever constructed them for disposal (spec §9 "Model ownership").
// Implements MutableComponent.
func (g *Digraph[V, T]) ApplyMutations() (added []Component[V, T], removed []Component[V, T]) {
	for _, m := range g.pending {
		switch m.kind {
		case mutAddAtomic:
			g.children = append(g.children, m.atom)
			g.childByID[m.atom.ID()] = m.atom
			added = append(added, m.atom)
		case mutAddCoupled:
			g.children = append(g.children, m.child)
			g.childByID[m.child.ID()] = m.child
			added = append(added, m.child)
		case mutRemoveChild:
			if c, ok := g.childByID[m.id]; ok {
				delete(g.childByID, m.id)
				for i, ch := range g.children {
					if ch.ID() == m.id {
						g.children = append(g.children[:i], g.children[i+1:]...)
						break
					}
				}
				for pin, owner := range g.owner {
					if owner.ID() == m.id {
						delete(g.owner, pin)
					}
				}
				removed = append(removed, c)
			}
		case mutConnect:
			if m.child != nil {
				g.owner[m.src] = m.child
			} else {
				g.couplings[m.src] = append(g.couplings[m.src], m.dst)
			}
		case mutDisconnect:
			dsts := g.couplings[m.src]
			for i, d := range dsts {
				if d == m.dst {
					g.couplings[m.src] = append(dsts[:i], dsts[i+1:]...)
					break
				}
			}
		}
	}
	g.pending = g.pending[:0]
	return added, removed
}

// HasPendingMutations reports whether ApplyMutations would do any work.
func (g *Digraph[V, T]) HasPendingMutations() bool {
	return len(g.pending) > 0
}
