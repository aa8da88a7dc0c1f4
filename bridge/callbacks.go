package bridge

import "github.com/wippyai/trace-bridge/foreign"

// Names of the methods resolved on the foreign object.
const (
	hookOnEvent   = "on_event"
	hookOnNewSpan = "on_new_span"
	hookOnClose   = "on_close"
	hookOnRecord  = "on_record"
)

// callbackSet holds the four optional foreign method handles. Resolution
// happens exactly once, at bridge construction, and is infallible:
// partial resolution is a normal configuration. A nil handle permanently
// disables the hook; it is never re-resolved or probed per call.
type callbackSet struct {
	onEvent   foreign.Func
	onNewSpan foreign.Func
	onClose   foreign.Func
	onRecord  foreign.Func
}

func resolveCallbacks(obj foreign.Object) callbackSet {
	var cs callbackSet
	if fn, ok := obj.Method(hookOnEvent); ok {
		cs.onEvent = fn
	}
	if fn, ok := obj.Method(hookOnClose); ok {
		cs.onClose = fn
	}
	if fn, ok := obj.Method(hookOnNewSpan); ok {
		cs.onNewSpan = fn
	}
	if fn, ok := obj.Method(hookOnRecord); ok {
		cs.onRecord = fn
	}
	return cs
}
