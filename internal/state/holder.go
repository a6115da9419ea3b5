package state

import "sync"

// Holder guards the current [State].
//
// Readers never block each other. [Holder.Swap] takes the write lock only
// for the pointer assignment; the new State must be fully loaded before it
// is passed in.
type Holder struct {
	mu      sync.RWMutex
	current *State
}

// NewHolder returns a Holder serving s.
func NewHolder(s *State) *Holder {
	return &Holder{current: s}
}

// Current returns the State to use for one request. The lock is released
// before returning, so callers may do I/O with the result.
func (h *Holder) Current() *State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Swap replaces the current State and returns the previous one.
func (h *Holder) Swap(s *State) *State {
	h.mu.Lock()
	defer h.mu.Unlock()

	prev := h.current
	h.current = s
	return prev
}
