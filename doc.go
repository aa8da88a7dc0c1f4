// Package tracebridge documents the architecture of the trace-bridge module,
// a library that forwards native span and event telemetry to foreign
// callback objects living behind a global lock.
//
// # Architecture Overview
//
// The module is organized into several packages with distinct responsibilities:
//
//	trace-bridge/        Root package with the architecture overview
//	├── tracing/         Native span framework: tracer, registry, layers
//	├── bridge/          The callback bridge layer and its JSON payloads
//	├── foreign/         Runtime and object abstractions over foreign code
//	├── wasm/            wazero-backed foreign runtime for guest modules
//	├── errors/          Structured error types for debugging
//	└── cmd/run/         Demo binary with an optional interactive TUI
//
// # Quick Start
//
// Bind a Go observer and trace through it:
//
//	obj := foreign.Bind(foreign.NewSerialRuntime(), observer)
//	tracer := tracing.New(tracing.WithLayer(bridge.New(obj)))
//	defer tracer.Close()
//
//	ctx, span := tracer.StartSpan(context.Background(), "work",
//	    tracing.WithFields(tracing.Int("attempt", 1)))
//	tracer.Event(ctx, tracing.LevelInfo, "started")
//	span.End()
//
// # Callback Contract
//
// A foreign object may export any subset of four hooks, resolved once when
// the bridge is constructed:
//
//	on_new_span(attrs, id)       -> state
//	on_event(event, state)
//	on_record(id, values, state)
//	on_close(id, state)
//
// The state returned by on_new_span is held against the span for its
// lifetime, lent to on_event and on_record, and handed back exactly once
// to on_close. A hook the object does not export is simply skipped.
//
// # Thread Safety
//
// Tracer and Registry are safe for concurrent use. Foreign objects are not
// assumed to be: every hook invocation happens under the runtime's global
// lock, which is held only for the duration of the call itself, never
// while payloads are serialized or the span store is consulted.
//
// # Error Model
//
// Errors raised by foreign hooks are swallowed and counted; telemetry must
// not take down the instrumented program. Failure to serialize a payload
// is different: it means the native side produced a value that cannot
// cross the boundary, and the bridge panics with a structured error.
package tracebridge
