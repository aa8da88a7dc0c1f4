package foreign

import "sync"

// Func is one bound foreign method. Implementations return the foreign
// call's result, or an error if the foreign side failed. A Func must
// only be invoked while its object's Runtime lock is held.
type Func func(args ...any) (any, error)

// Runtime is the execution domain of a foreign object. The lock is
// global to the runtime: at most one foreign call may be in flight at a
// time, regardless of which object or method.
type Runtime interface {
	Lock()
	Unlock()
}

// Object is a handle to a foreign callback object. Method resolution is
// by name; a missing method is not an error.
type Object interface {
	// Runtime returns the execution domain the object lives in.
	Runtime() Runtime

	// Method resolves a method by name. The returned Func remains
	// valid for the object's lifetime.
	Method(name string) (Func, bool)
}

// SerialRuntime is a mutex-backed Runtime for in-process objects.
type SerialRuntime struct {
	mu sync.Mutex
}

// NewSerialRuntime creates a Runtime that serializes calls with a
// process-local mutex.
func NewSerialRuntime() *SerialRuntime {
	return &SerialRuntime{}
}

func (r *SerialRuntime) Lock()   { r.mu.Lock() }
func (r *SerialRuntime) Unlock() { r.mu.Unlock() }
