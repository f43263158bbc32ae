package model

import (
	"testing"

	"github.com/dshills/devs-go/devs"
)

// stubLeaf is a minimal Atomic used only to exercise Digraph's bookkeeping;
// its transition methods are never invoked by these tests.
type stubLeaf struct{ id string }

func (s *stubLeaf) ID() string                               { return s.id }
func (s *stubLeaf) TA() float64                              { return 0 }
func (s *stubLeaf) DeltaInt()                                {}
func (s *stubLeaf) DeltaExt(e float64, xb *devs.Bag[string]) {}
func (s *stubLeaf) DeltaConf(xb *devs.Bag[string])           {}
func (s *stubLeaf) Lambda(yb *devs.Bag[string])              {}

func TestDigraphAddAtomicNowRegistersOwnerAndChild(t *testing.T) {
	g := NewDigraph[string, float64]("g")
	a := &stubLeaf{id: "A"}
	in := devs.NewPin()
	g.AddAtomicNow(a, in)

	if len(g.Children()) != 1 {
		t.Fatalf("Children() len = %d, want 1", len(g.Children()))
	}
	owner, ok := g.Owner(in)
	if !ok || owner.ID() != "A" {
		t.Fatalf("Owner(in) = %v, %v, want A, true", owner, ok)
	}
}

func TestDigraphConnectNowAccumulatesMultipleDestinations(t *testing.T) {
	g := NewDigraph[string, float64]("g")
	src := devs.NewPin()
	d1, d2 := devs.NewPin(), devs.NewPin()
	g.ConnectNow(src, d1)
	g.ConnectNow(src, d2)

	dsts := g.Couplings()[src]
	if len(dsts) != 2 {
		t.Fatalf("Couplings()[src] len = %d, want 2", len(dsts))
	}
}

func TestDigraphBufferedMutationsApplyAtomically(t *testing.T) {
	g := NewDigraph[string, float64]("g")
	a := &stubLeaf{id: "A"}
	g.AddAtomicNow(a)

	if g.HasPendingMutations() {
		t.Fatal("HasPendingMutations() true before any buffered mutation")
	}

	b := &stubLeaf{id: "B"}
	g.AddAtomic(b)
	g.RemoveChild("A")

	if !g.HasPendingMutations() {
		t.Fatal("HasPendingMutations() false with a buffered add and remove")
	}
	// Children() must not reflect buffered mutations until ApplyMutations.
	if len(g.Children()) != 1 {
		t.Fatalf("Children() len = %d before ApplyMutations, want 1 (unchanged)", len(g.Children()))
	}

	added, removed := g.ApplyMutations()
	if len(added) != 1 || added[0].ID() != "B" {
		t.Fatalf("added = %v, want [B]", added)
	}
	if len(removed) != 1 || removed[0].ID() != "A" {
		t.Fatalf("removed = %v, want [A]", removed)
	}
	if g.HasPendingMutations() {
		t.Fatal("HasPendingMutations() true after ApplyMutations drained the buffer")
	}
	if len(g.Children()) != 1 || g.Children()[0].ID() != "B" {
		t.Fatalf("Children() after ApplyMutations = %v, want [B]", g.Children())
	}
}

// TestDigraphApplyMutationsPurgesOwnerEntriesForRemovedChild locks in the
// invariant that a removed child's pin ownership is purged along with its
// children-list entry: a structurally removed model must not remain
// resolvable as a routing target (spec's "removed sub-trees are purged from
// the flat index" intent extends to pin ownership, not just the child
// list).
func TestDigraphApplyMutationsPurgesOwnerEntriesForRemovedChild(t *testing.T) {
	g := NewDigraph[string, float64]("g")
	a := &stubLeaf{id: "A"}
	in := devs.NewPin()
	g.AddAtomicNow(a, in)

	g.RemoveChild("A")
	g.ApplyMutations()

	if _, ok := g.Owner(in); ok {
		t.Fatal("Owner(in) still resolves after the owning child was removed")
	}
	if owners := g.AllOwners(); len(owners) != 0 {
		t.Fatalf("AllOwners() = %v after removal, want empty", owners)
	}
}

func TestDigraphConnectAndDisconnectBuffered(t *testing.T) {
	g := NewDigraph[string, float64]("g")
	src, dst := devs.NewPin(), devs.NewPin()

	g.Connect(src, dst)
	g.ApplyMutations()
	if dsts := g.Couplings()[src]; len(dsts) != 1 || dsts[0] != dst {
		t.Fatalf("Couplings()[src] = %v after Connect, want [dst]", dsts)
	}

	g.Disconnect(src, dst)
	g.ApplyMutations()
	if dsts := g.Couplings()[src]; len(dsts) != 0 {
		t.Fatalf("Couplings()[src] = %v after Disconnect, want empty", dsts)
	}
}

func TestDigraphDeclareInputRegistersOwnerViaMutation(t *testing.T) {
	g := NewDigraph[string, float64]("g")
	a := &stubLeaf{id: "A"}
	g.AddAtomic(a)
	in := devs.NewPin()
	g.DeclareInput(in, a)
	g.ApplyMutations()

	owner, ok := g.Owner(in)
	if !ok || owner.ID() != "A" {
		t.Fatalf("Owner(in) = %v, %v, want A, true", owner, ok)
	}
}

func TestDigraphAllOwnersReturnsIndependentSnapshot(t *testing.T) {
	g := NewDigraph[string, float64]("g")
	a := &stubLeaf{id: "A"}
	in := devs.NewPin()
	g.AddAtomicNow(a, in)

	snap := g.AllOwners()
	delete(snap, in)
	if _, ok := g.Owner(in); !ok {
		t.Fatal("mutating the AllOwners() snapshot affected the Digraph's internal map")
	}
}
