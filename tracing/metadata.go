package tracing

// SpanID identifies one live span. IDs are opaque strings, stable for the
// span's lifetime and never reused while the span is live. The zero value
// means "no span".
type SpanID string

// Metadata describes the static shape of a span or event: its severity,
// its name, and the names of all declared fields (valued or not).
type Metadata struct {
	Name   string
	Fields []string
	Level  Level
}

// Attributes is the payload delivered to Layer.OnNewSpan: the span's
// metadata plus the field values present at creation. Fields declared but
// not yet valued appear in Metadata.Fields only.
type Attributes struct {
	Metadata *Metadata
	Values   []Field
	Parent   SpanID
}

// Record is the payload delivered to Layer.OnRecord: only the field
// values updated in this call.
type Record struct {
	Values []Field
}

// Event is a point-in-time instrumentation record. Parent, when set,
// explicitly names the span the event belongs to; when zero the event is
// associated with whatever span is contextually active at the call site.
type Event struct {
	Message  string
	Metadata *Metadata
	Values   []Field
	Parent   SpanID
}
