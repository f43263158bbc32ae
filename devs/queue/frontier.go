// Package queue implements the imminent-event priority queue (spec §3
// "Event Queue Entry", §4 Event Queue component): an ordered set of
// (model, time-of-next-event) pairs with heap-ordered insert/update/remove
// (each an O(log N) heap step followed by an O(N) rebuild of the ID index)
// and stable ties, built the same way the teacher's scheduler.go builds its
// Frontier — a container/heap priority queue — generalized here to any
// Domain[T] instead of a fixed uint64 OrderKey, and to support update-in-
// place re-keying rather than a one-shot enqueue/dequeue.
package queue

import (
	"container/heap"

	"github.com/dshills/devs-go/devs"
)

// Entry is one (model, t_next) pair tracked by the Frontier.
type Entry[T any] struct {
	ID   string
	Next T
}

// entryHeap implements heap.Interface, ordered by Next with ID as a stable
// tie-breaker so that two models imminent at the same time always compare
// the same way across runs (spec §4.4 "Tie-breaking").
type entryHeap[T any] struct {
	items  []Entry[T]
	domain devs.Domain[T]
}

func (h *entryHeap[T]) Len() int { return len(h.items) }

func (h *entryHeap[T]) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if h.domain.Equal(a.Next, b.Next) {
		return a.ID < b.ID
	}
	return h.domain.Less(a.Next, b.Next)
}

func (h *entryHeap[T]) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
}

func (h *entryHeap[T]) Push(x interface{}) {
	h.items = append(h.items, x.(Entry[T]))
}

func (h *entryHeap[T]) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}

// Frontier is the imminent-event queue: every live atomic leaf has exactly
// one Entry, keyed by model ID, re-keyed in place whenever its ta changes.
// Frontier is not safe for concurrent use — per spec §5, the model tree and
// event queue are exclusively owned by the simulator for the duration of a
// call, and there is no internal parallelism in the core.
type Frontier[T any] struct {
	h     entryHeap[T]
	index map[string]int // model ID -> index in h.items, maintained by heap fixups
}

// New constructs an empty Frontier over the given time domain.
func New[T any](domain devs.Domain[T]) *Frontier[T] {
	f := &Frontier[T]{
		h:     entryHeap[T]{domain: domain},
		index: make(map[string]int),
	}
	return f
}

// reindex rebuilds the model-ID -> heap-position map from the current heap
// layout. entryHeap.Swap does not maintain the map, so Upsert and Remove
// call this after every heap.Fix/heap.Push/heap.Remove; it costs O(N).
func (f *Frontier[T]) reindex() {
	for i, e := range f.h.items {
		f.index[e.ID] = i
	}
}

// Upsert inserts a new entry or re-keys an existing one. The heap step is
// O(log N); the index rebuild that follows it is O(N).
func (f *Frontier[T]) Upsert(id string, next T) {
	if i, ok := f.index[id]; ok {
		f.h.items[i].Next = next
		heap.Fix(&f.h, i)
		f.reindex()
		return
	}
	heap.Push(&f.h, Entry[T]{ID: id, Next: next})
	f.reindex()
}

// Remove deletes an entry by model ID, purging a structurally-removed
// child's imminent slot (spec §4.6).
func (f *Frontier[T]) Remove(id string) {
	i, ok := f.index[id]
	if !ok {
		return
	}
	heap.Remove(&f.h, i)
	delete(f.index, id)
	f.reindex()
}

// Min returns the entry with the smallest t_next, and whether the queue is
// non-empty. It does not remove the entry.
func (f *Frontier[T]) Min() (Entry[T], bool) {
	if f.h.Len() == 0 {
		var zero Entry[T]
		return zero, false
	}
	return f.h.items[0], true
}

// NextEventTime returns the minimum t_next across all alive atomic leaves,
// or the domain's Inf value if the queue is empty (spec §4.3
// next_event_time).
func (f *Frontier[T]) NextEventTime(domain devs.Domain[T]) T {
	e, ok := f.Min()
	if !ok {
		return domain.Inf()
	}
	return e.Next
}

// Imminent returns every entry whose Next equals t, in ID order (stable tie-
// break). This is the I = {m : t_next(m) == t} set of spec §4.4 step 1.
func (f *Frontier[T]) Imminent(t T, domain devs.Domain[T]) []string {
	var out []string
	for _, e := range f.h.items {
		if domain.Equal(e.Next, t) {
			out = append(out, e.ID)
		}
	}
	// Stable, deterministic order regardless of heap internal layout.
	sortStrings(out)
	return out
}

// Len returns the number of entries currently tracked.
func (f *Frontier[T]) Len() int { return f.h.Len() }

// Has reports whether the given model ID currently has an entry.
func (f *Frontier[T]) Has(id string) bool {
	_, ok := f.index[id]
	return ok
}

func sortStrings(s []string) {
	// Small, allocation-free insertion sort: imminent sets are typically
	// tiny (a handful of models firing at the same instant), so this beats
	// pulling in sort.Strings's overhead.
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
