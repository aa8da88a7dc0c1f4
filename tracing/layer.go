package tracing

// Layer observes the span lifecycle. Implementations are notified
// synchronously at each instrumentation point and must not block longer
// than they can afford to stall the instrumented code path.
//
// Hooks may be called concurrently from multiple goroutines, including
// for the same span id. The framework guarantees only that OnNewSpan for
// a span completes before any other hook references that span's id.
type Layer interface {
	// OnNewSpan is called when a span is created, before StartSpan
	// returns. attrs carries the span's metadata and creation-time
	// field values.
	OnNewSpan(attrs *Attributes, id SpanID, ctx Context)

	// OnRecord is called when field values are recorded on a live span.
	OnRecord(id SpanID, values *Record, ctx Context)

	// OnEvent is called for each point-in-time event.
	OnEvent(ev *Event, ctx Context)

	// OnClose is called when a span's lifetime ends, while the span is
	// still resolvable through ctx. The span leaves the registry when
	// all layers have returned.
	OnClose(id SpanID, ctx Context)
}

// Context gives a Layer access to the span registry at one hook
// invocation: lookup by id, and the span contextually active at the
// instrumentation point.
type Context struct {
	registry *Registry
	current  SpanID
}

// Span looks up a live span by id.
func (c Context) Span(id SpanID) (*SpanRef, bool) {
	if c.registry == nil {
		return nil, false
	}
	return c.registry.Span(id)
}

// Current returns the span contextually active at the call site, if any.
func (c Context) Current() (*SpanRef, bool) {
	if c.current == "" {
		return nil, false
	}
	return c.Span(c.current)
}
