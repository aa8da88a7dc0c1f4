package bridge

import (
	"encoding/json"

	"github.com/valyala/bytebufferpool"

	"github.com/wippyai/trace-bridge/errors"
	"github.com/wippyai/trace-bridge/tracing"
)

// Payload serialization. Pure functions, no lock held. The framework
// controls the shape of everything serialized here, so a failure is a
// programming-invariant violation: it panics with a structured error
// instead of being swallowed like foreign-call failures.

// encodeAttributes renders a span's creation payload:
//
//	{"metadata": {"level": .., "name": .., "fields": [..]}, <field>: <value>, ...}
//
// Only fields valued at creation appear at the top level.
func encodeAttributes(attrs *tracing.Attributes) string {
	payload := make(map[string]any, len(attrs.Values)+1)
	payload["metadata"] = metadataPayload(attrs.Metadata)
	for _, f := range attrs.Values {
		payload[f.Name] = f.Value
	}
	return marshalPayload(hookOnNewSpan, payload)
}

// encodeEvent renders an event payload:
//
//	{"message": .., "metadata": {..}, <field>: <value>, ...}
func encodeEvent(ev *tracing.Event) string {
	payload := make(map[string]any, len(ev.Values)+2)
	payload["message"] = ev.Message
	payload["metadata"] = metadataPayload(ev.Metadata)
	for _, f := range ev.Values {
		payload[f.Name] = f.Value
	}
	return marshalPayload(hookOnEvent, payload)
}

// encodeRecord renders only the fields updated in this call:
//
//	{<field>: <value>, ...}
func encodeRecord(rec *tracing.Record) string {
	payload := make(map[string]any, len(rec.Values))
	for _, f := range rec.Values {
		payload[f.Name] = f.Value
	}
	return marshalPayload(hookOnRecord, payload)
}

// encodeSpanID renders the span id as a JSON string.
func encodeSpanID(id tracing.SpanID) string {
	return marshalPayload("span_id", string(id))
}

func metadataPayload(md *tracing.Metadata) map[string]any {
	fields := md.Fields
	if fields == nil {
		fields = []string{}
	}
	return map[string]any{
		"level":  md.Level.String(),
		"name":   md.Name,
		"fields": fields,
	}
}

func marshalPayload(hook string, payload any) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	enc := json.NewEncoder(buf)
	if err := enc.Encode(payload); err != nil {
		panic(errors.New(errors.PhaseSerialize, errors.KindInvalidInput).
			Hook(hook).
			Cause(err).
			Detail("payload not JSON-encodable").
			Build())
	}

	b := buf.Bytes()
	// Encoder appends a newline.
	if n := len(b); n > 0 && b[n-1] == '\n' {
		b = b[:n-1]
	}
	return string(b)
}
