// Package container provides the concurrency-safe containers used internally
// by the simtemp SDK.
package container

import "sync"

// Ring is a concurrency-safe fixed-capacity FIFO ring buffer. When full, a
// push overwrites the oldest element rather than blocking or failing.
type Ring[T any] struct {
	mu      sync.Mutex
	items   []T
	head    int // Points to the next position for entering
	tail    int // Points to the next item that is leaving
	count   int
	dropped uint64
}

// NewRing creates a new Ring with the given capacity.
func NewRing[T any](capacity int) *Ring[T] {
	return &Ring[T]{items: make([]T, capacity)}
}

// Push adds an item to the end of the ring. If the ring is full, the oldest
// item is silently discarded. It never blocks beyond its own short critical
// section.
func (r *Ring[T]) Push(value T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[r.head] = value
	r.head = r.move(r.head)

	if r.count < len(r.items) {
		r.count++
	} else {
		// Full; the slot just written replaced the oldest item.
		r.tail = r.move(r.tail)
		r.dropped++
	}
}

// Pop removes and returns the oldest item. The second return value is false
// if the ring is empty.
func (r *Ring[T]) Pop() (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.count == 0 {
		var zero T
		return zero, false
	}

	item := r.items[r.tail]
	var zero T
	r.items[r.tail] = zero
	r.tail = r.move(r.tail)
	r.count--
	return item, true
}

// Len returns the number of items in the ring.
func (r *Ring[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Cap returns the fixed capacity of the ring.
func (r *Ring[T]) Cap() int {
	return len(r.items)
}

// Dropped returns the number of items discarded by overflowing pushes.
func (r *Ring[T]) Dropped() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

func (r *Ring[T]) move(i int) int {
	return (i + 1) % len(r.items)
}
