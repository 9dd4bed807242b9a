package history

import "sync"

// Handoff passes complete values from one producer to one consumer without
// either side ever seeing a value the other is writing.
//
// The producer fills the building slot and publishes it as pending. The
// consumer swaps pending into current and returns its old current slot to
// the producer as the new building slot. While a value is pending the
// producer has no slot to write into.
type Handoff[T any] struct {
	mu       sync.Mutex
	building *T
	pending  *T
	current  *T
}

// NewHandoff allocates the slots.
func NewHandoff[T any]() *Handoff[T] {
	return &Handoff[T]{
		building: new(T),
		current:  new(T),
	}
}

// Acquire returns the slot the producer may write, or nil while a published
// value still waits for the consumer.
func (h *Handoff[T]) Acquire() *T {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pending != nil {
		return nil
	}
	return h.building
}

// Publish moves the building slot to pending. It returns false, and changes
// nothing, if there is nothing to publish or a value is already pending.
func (h *Handoff[T]) Publish() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.building == nil || h.pending != nil {
		return false
	}
	h.pending = h.building
	h.building = nil
	return true
}

// TryConsume takes the pending value if one is ready and the lock is free.
// It never blocks. The returned copy stays valid after later swaps; ok is
// false when nothing new was taken.
func (h *Handoff[T]) TryConsume() (v T, ok bool) {
	if !h.mu.TryLock() {
		return v, false
	}
	defer h.mu.Unlock()

	if h.pending == nil || h.building != nil {
		return v, false
	}
	h.building = h.current
	h.current = h.pending
	h.pending = nil
	return *h.current, true
}

// Current returns a copy of the last consumed value.
func (h *Handoff[T]) Current() T {
	h.mu.Lock()
	defer h.mu.Unlock()
	return *h.current
}
