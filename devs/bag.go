package devs

// Bag is an ordered, duplicate-permitting sequence of PinValues. Per spec
// §9 ("Message bags"), iteration order is not part of the external
// contract — any container supporting append, clear, and iteration would
// satisfy it — but a slice-backed ordered sequence is the simplest one that
// lets callers reuse the same Bag across steps: Clear truncates without
// releasing the backing array, so steady-state simulation does no bag
// allocation after warm-up.
type Bag[V any] struct {
	items []PinValue[V]
}

// NewBag returns an empty Bag with room for cap items before it must grow.
func NewBag[V any](cap int) *Bag[V] {
	return &Bag[V]{items: make([]PinValue[V], 0, cap)}
}

// Append adds a (pin, value) pair to the end of the bag.
func (b *Bag[V]) Append(pv PinValue[V]) {
	b.items = append(b.items, pv)
}

// Clear empties the bag while retaining its backing array.
func (b *Bag[V]) Clear() {
	b.items = b.items[:0]
}

// Len returns the number of items currently in the bag.
func (b *Bag[V]) Len() int {
	return len(b.items)
}

// Values returns the bag's contents. The returned slice aliases the bag's
// backing array and is only valid until the next Append or Clear.
func (b *Bag[V]) Values() []PinValue[V] {
	return b.items
}

// Each calls fn for every item in the bag in insertion order.
func (b *Bag[V]) Each(fn func(PinValue[V])) {
	for _, pv := range b.items {
		fn(pv)
	}
}
