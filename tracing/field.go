package tracing

import (
	"fmt"
	"strconv"
)

// Field is one named value recorded on a span or event. Value holds a
// JSON-encodable primitive: int64, uint64, float64, bool or string.
type Field struct {
	Value any
	Name  string
}

// Int records a signed integer field.
func Int(name string, v int64) Field {
	return Field{Name: name, Value: v}
}

// Uint records an unsigned integer field.
func Uint(name string, v uint64) Field {
	return Field{Name: name, Value: v}
}

// Float records a floating-point field.
func Float(name string, v float64) Field {
	return Field{Name: name, Value: v}
}

// Bool records a boolean field.
func Bool(name string, v bool) Field {
	return Field{Name: name, Value: v}
}

// Str records a string field verbatim.
func Str(name string, v string) Field {
	return Field{Name: name, Value: v}
}

// Debug records the debug representation of an arbitrary value as a
// string. Strings are quoted ("foo" becomes the five characters "foo"
// including the quotes), matching debug-format capture at
// instrumentation points.
func Debug(name string, v any) Field {
	if s, ok := v.(string); ok {
		return Field{Name: name, Value: strconv.Quote(s)}
	}
	return Field{Name: name, Value: fmt.Sprintf("%v", v)}
}

func fieldNames(fields []Field) []string {
	if len(fields) == 0 {
		return nil
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}
