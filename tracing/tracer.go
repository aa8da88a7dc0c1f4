package tracing

import (
	"context"
	"sync"

	"github.com/zoobzio/clockz"
)

// ctxKeyType is a private type for context keys to avoid collisions.
type ctxKeyType string

const spanKey ctxKeyType = "tracing"

// Tracer creates spans and events and fans lifecycle hooks out to its
// layers. Safe for concurrent use by multiple goroutines.
type Tracer struct {
	registry *Registry
	ids      *IDPool
	clock    clockz.Clock
	layers   []Layer
}

// Option configures a Tracer.
type Option func(*Tracer)

// WithLayer appends a layer. Hooks are dispatched in registration order.
func WithLayer(l Layer) Option {
	return func(t *Tracer) {
		t.layers = append(t.layers, l)
	}
}

// WithClock overrides the clock used for span timestamps.
func WithClock(c clockz.Clock) Option {
	return func(t *Tracer) {
		t.clock = c
	}
}

// WithIDFactory overrides span id generation.
func WithIDFactory(factory func() string) Option {
	return func(t *Tracer) {
		t.ids.Close()
		t.ids = NewIDPool(idPoolCapacity, factory)
	}
}

const idPoolCapacity = 64

// New creates a Tracer. Call Close when done to release the id pool.
func New(opts ...Option) *Tracer {
	t := &Tracer{
		registry: NewRegistry(),
		ids:      NewIDPool(idPoolCapacity, nil),
		clock:    clockz.RealClock,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Close releases the tracer's background resources. Live spans remain
// usable; their hooks still fire.
func (t *Tracer) Close() {
	t.ids.Close()
}

// Registry exposes the tracer's live-span table.
func (t *Tracer) Registry() *Registry {
	return t.registry
}

func (t *Tracer) layerContext(current SpanID) Context {
	return Context{registry: t.registry, current: current}
}

// SpanOption configures a span at creation.
type SpanOption func(*spanConfig)

type spanConfig struct {
	fields   []Field
	declared []string
	level    Level
}

// WithLevel sets the span's severity. Default is LevelInfo.
func WithLevel(l Level) SpanOption {
	return func(c *spanConfig) {
		c.level = l
	}
}

// WithFields declares fields valued at creation.
func WithFields(fields ...Field) SpanOption {
	return func(c *spanConfig) {
		c.fields = append(c.fields, fields...)
	}
}

// WithDeclared declares field names without values. Values may be
// supplied later with Span.Record.
func WithDeclared(names ...string) SpanOption {
	return func(c *spanConfig) {
		c.declared = append(c.declared, names...)
	}
}

// StartSpan creates a span, dispatches OnNewSpan to every layer, and
// returns a context carrying the new span plus a handle for recording
// and ending it. OnNewSpan has completed for all layers by the time
// StartSpan returns.
func (t *Tracer) StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, *Span) {
	cfg := spanConfig{level: LevelInfo}
	for _, opt := range opts {
		opt(&cfg)
	}

	var parent SpanID
	if cur, ok := SpanFromContext(ctx); ok {
		parent = cur.id
	}

	md := &Metadata{
		Level:  cfg.level,
		Name:   name,
		Fields: append(fieldNames(cfg.fields), cfg.declared...),
	}

	id := t.ids.Get()
	t.registry.insert(&spanData{
		id:       id,
		metadata: md,
		parent:   parent,
		started:  t.clock.Now(),
	})

	attrs := &Attributes{Metadata: md, Values: cfg.fields, Parent: parent}
	lctx := t.layerContext(parent)
	for _, l := range t.layers {
		l.OnNewSpan(attrs, id, lctx)
	}

	span := &Span{tracer: t, id: id}
	return context.WithValue(ctx, spanKey, span), span
}

// Event emits a point-in-time event associated with the span active in
// ctx, if any.
func (t *Tracer) Event(ctx context.Context, level Level, msg string, fields ...Field) {
	var current SpanID
	if cur, ok := SpanFromContext(ctx); ok {
		current = cur.id
	}
	t.dispatchEvent(&Event{
		Message:  msg,
		Metadata: &Metadata{Level: level, Name: "event", Fields: fieldNames(fields)},
		Values:   fields,
	}, current)
}

// EventFor emits an event explicitly parented to the given span id,
// regardless of what is contextually active.
func (t *Tracer) EventFor(parent SpanID, level Level, msg string, fields ...Field) {
	t.dispatchEvent(&Event{
		Message:  msg,
		Metadata: &Metadata{Level: level, Name: "event", Fields: fieldNames(fields)},
		Values:   fields,
		Parent:   parent,
	}, "")
}

func (t *Tracer) dispatchEvent(ev *Event, current SpanID) {
	lctx := t.layerContext(current)
	for _, l := range t.layers {
		l.OnEvent(ev, lctx)
	}
}

// Span is a handle to a live span. Safe for concurrent use; End is
// idempotent.
type Span struct {
	tracer *Tracer
	id     SpanID
	mu     sync.Mutex
	ended  bool
}

// ID returns the span's identifier.
func (s *Span) ID() SpanID {
	return s.id
}

// Record dispatches additional field values to every layer. No-op after
// End.
func (s *Span) Record(fields ...Field) {
	s.mu.Lock()
	ended := s.ended
	s.mu.Unlock()
	if ended {
		return
	}

	rec := &Record{Values: fields}
	lctx := s.tracer.layerContext(s.id)
	for _, l := range s.tracer.layers {
		l.OnRecord(s.id, rec, lctx)
	}
}

// End closes the span: OnClose is dispatched to every layer while the
// span is still resolvable, then the span leaves the registry. Safe to
// call multiple times; only the first call has effect.
func (s *Span) End() {
	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return
	}
	s.ended = true
	s.mu.Unlock()

	lctx := s.tracer.layerContext(s.id)
	for _, l := range s.tracer.layers {
		l.OnClose(s.id, lctx)
	}
	s.tracer.registry.remove(s.id)
}

// SpanFromContext extracts the span carried by ctx, if any.
func SpanFromContext(ctx context.Context) (*Span, bool) {
	if ctx == nil {
		return nil, false
	}
	span, ok := ctx.Value(spanKey).(*Span)
	return span, ok
}

// ContextWithSpan returns a context carrying the given span.
func ContextWithSpan(ctx context.Context, span *Span) context.Context {
	return context.WithValue(ctx, spanKey, span)
}
