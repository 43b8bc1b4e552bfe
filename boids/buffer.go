package boids

// doubleBuffer holds two generation stores and the role flag saying which
// one is authoritative for reads this tick. Within a tick the current
// store is read-only and the next store write-only; Swap is an O(1) role
// flip, never a copy. Disjointness is structural: Current and Next always
// return distinct allocations, so no locking is needed as long as Swap is
// only called after all writers for the tick have joined.
type doubleBuffer[S any] struct {
	stores  [2]S
	current int
}

func newDoubleBuffer[S any](a, b S) *doubleBuffer[S] {
	return &doubleBuffer[S]{stores: [2]S{a, b}}
}

// Current returns the store holding the last completed generation.
func (d *doubleBuffer[S]) Current() S {
	return d.stores[d.current]
}

// Next returns the store the in-progress generation is written into.
func (d *doubleBuffer[S]) Next() S {
	return d.stores[d.current^1]
}

// Swap flips the current/next roles. What was next becomes the new
// current; the old current becomes the writable next for the following
// tick. Its stale contents are fully overwritten before being read again.
func (d *doubleBuffer[S]) Swap() {
	d.current ^= 1
}

// Both returns both stores regardless of role, for structural operations
// (grow/shrink) that must keep the two generations the same length.
func (d *doubleBuffer[S]) Both() [2]S {
	return d.stores
}
