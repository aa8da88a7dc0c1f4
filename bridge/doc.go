// Package bridge lets a foreign callback object participate in the span
// lifecycle of the tracing framework without the framework knowing
// anything about the foreign runtime.
//
// Bridge implements tracing.Layer. Each hook's payload is serialized as
// a JSON string and passed to the correspondingly named method on the
// foreign object, if the object has one. The interface expected of the
// foreign object differs from tracing.Layer in one way: its on_new_span
// may return a value, and the bridge stores that value in the new span's
// extension slot. Later hooks for the same span pass the stored value
// back to the foreign object as an additional argument.
//
// The state is opaque to the bridge. A layer for a foreign tracing
// system could, for example, create a foreign span for each native span
// and use a reference to the foreign span as the state.
//
// The four bridged methods:
//
//	on_event(event: string, state)                    <- tracing.Layer.OnEvent
//	on_new_span(span_attrs: string, span_id: string)  <- tracing.Layer.OnNewSpan
//	on_close(span_id: string, state)                  <- tracing.Layer.OnClose
//	on_record(span_id: string, values: string, state) <- tracing.Layer.OnRecord
//
// Any subset may be omitted; a missing method permanently disables that
// hook for the bridge instance. Methods are resolved exactly once, at
// construction.
//
// Every foreign call happens under the foreign runtime's global lock,
// acquired immediately before the call and released immediately after.
// Serialization and span-store access never hold the lock. Errors from
// foreign handlers are swallowed: telemetry delivery is best-effort and
// the native instrumentation path must never be destabilized by the
// foreign side.
package bridge
