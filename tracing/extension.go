package tracing

import "sync"

// Extension is a span's slot for one opaque auxiliary value. Layers use it
// to attach per-span state they own; the framework never inspects the
// value.
//
// All three operations are atomic with respect to each other. Ownership
// follows the operation: Insert transfers the value to the slot, Get
// borrows it, Remove takes it back out. The slot holds at most one value;
// Insert replaces any previous one.
type Extension struct {
	value any
	mu    sync.Mutex
	set   bool
}

// Get borrows the stored value. The second return is false if the slot is
// empty.
func (e *Extension) Get() (any, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.value, e.set
}

// Insert stores a value, replacing any previous one.
func (e *Extension) Insert(v any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.value = v
	e.set = true
}

// Remove takes the stored value out of the slot, leaving it empty. The
// second return is false if the slot was already empty. At most one
// caller observes any given value.
func (e *Extension) Remove() (any, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.set {
		return nil, false
	}
	v := e.value
	e.value = nil
	e.set = false
	return v, true
}
