package tracing

import (
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// Registry is the table of live spans. Spans enter the table before
// OnNewSpan is dispatched and leave it after OnClose; a lookup for an id
// that was never created or has already closed finds nothing.
type Registry struct {
	spans cmap.ConcurrentMap[string, *spanData]
}

type spanData struct {
	started  time.Time
	metadata *Metadata
	id       SpanID
	parent   SpanID
	ext      Extension
}

// NewRegistry creates an empty span registry.
func NewRegistry() *Registry {
	return &Registry{spans: cmap.New[*spanData]()}
}

// Span looks up a live span by id.
func (r *Registry) Span(id SpanID) (*SpanRef, bool) {
	if id == "" {
		return nil, false
	}
	d, ok := r.spans.Get(string(id))
	if !ok {
		return nil, false
	}
	return &SpanRef{d: d}, true
}

// Len reports the number of live spans.
func (r *Registry) Len() int {
	return r.spans.Count()
}

func (r *Registry) insert(d *spanData) {
	r.spans.Set(string(d.id), d)
}

// remove drops the span from the table. The span's extension slot dies
// with it.
func (r *Registry) remove(id SpanID) {
	r.spans.Pop(string(id))
}

// SpanRef is a borrowed reference to a live span's registry entry.
type SpanRef struct {
	d *spanData
}

// ID returns the span's identifier.
func (s *SpanRef) ID() SpanID {
	return s.d.id
}

// Metadata returns the span's static metadata.
func (s *SpanRef) Metadata() *Metadata {
	return s.d.metadata
}

// Parent returns the id of the span's parent, if it has one.
func (s *SpanRef) Parent() (SpanID, bool) {
	return s.d.parent, s.d.parent != ""
}

// StartTime returns the instant the span was created.
func (s *SpanRef) StartTime() time.Time {
	return s.d.started
}

// Extension returns the span's opaque-value slot.
func (s *SpanRef) Extension() *Extension {
	return &s.d.ext
}
