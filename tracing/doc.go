// Package tracing provides a minimal structured-instrumentation framework:
// named, nestable spans with declared fields, point-in-time events, and a
// pluggable Layer abstraction observing the span lifecycle.
//
// # Quick Start
//
//	tracer := tracing.New(tracing.WithLayer(myLayer))
//	defer tracer.Close()
//
//	ctx, span := tracer.StartSpan(ctx, "handle-request",
//	    tracing.WithFields(tracing.Str("method", "GET")),
//	    tracing.WithDeclared("status"))
//	defer span.End()
//
//	tracer.Event(ctx, tracing.LevelInfo, "request accepted")
//	span.Record(tracing.Int("status", 200))
//
// # Layers
//
// A Layer receives four lifecycle hooks: OnNewSpan, OnRecord, OnEvent and
// OnClose. Hooks are dispatched synchronously at the instrumentation point,
// in layer registration order. OnNewSpan for a span always completes before
// StartSpan returns, so no later hook can reference a span whose creation
// is still in flight.
//
// Each live span carries one Extension slot: synchronized storage for a
// single opaque value that layers may attach. The slot is created with the
// span and destroyed when the span is removed from the registry after
// OnClose.
//
// # Concurrency
//
// Tracer, Registry and Extension are safe for concurrent use. A *Span
// handle may be shared across goroutines; End is idempotent.
package tracing
