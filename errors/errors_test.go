package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseInvoke,
				Kind:   KindHandlerFailed,
				Hook:   "on_new_span",
				Path:   []string{"metadata", "fields"},
				Detail: "handler panicked",
			},
			contains: []string{"[invoke]", "handler_failed", "on_new_span", "metadata.fields", "handler panicked"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseSerialize,
				Kind:  KindInvalidInput,
			},
			contains: []string{"[serialize]", "invalid_input"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindNotFound,
				Detail: "no such export",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[load]", "not_found", "no such export", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := HandlerFailed("on_event", cause)

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is did not find the cause through Unwrap")
	}
	if err.Unwrap() != cause {
		t.Errorf("Unwrap returned %v, want %v", err.Unwrap(), cause)
	}
}

func TestError_Is(t *testing.T) {
	err := New(PhaseResolve, KindBadSignature).Hook("on_close").Build()

	if !errors.Is(err, &Error{Phase: PhaseResolve, Kind: KindBadSignature}) {
		t.Error("expected match on phase and kind")
	}
	if errors.Is(err, &Error{Phase: PhaseInvoke, Kind: KindBadSignature}) {
		t.Error("unexpected match with different phase")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("boom")
	err := New(PhaseState, KindTypeMismatch).
		Hook("on_record").
		Path("state").
		Value(42).
		Cause(cause).
		Detail("stored %T", 42).
		Build()

	if err.Phase != PhaseState || err.Kind != KindTypeMismatch {
		t.Fatalf("wrong phase/kind: %s/%s", err.Phase, err.Kind)
	}
	if err.Hook != "on_record" {
		t.Errorf("hook = %q", err.Hook)
	}
	if err.Value != 42 {
		t.Errorf("value = %v", err.Value)
	}
	if err.Cause != cause {
		t.Errorf("cause = %v", err.Cause)
	}
	if err.Detail != "stored int" {
		t.Errorf("detail = %q", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		phase    Phase
		kind     Kind
		contains string
	}{
		{"not found", NotFound(PhaseRuntime, "span gone"), PhaseRuntime, KindNotFound, "span gone"},
		{"type mismatch", TypeMismatch(PhaseState, "on_close", "int64", "string"), PhaseState, KindTypeMismatch, "want int64, got string"},
		{"invalid input", InvalidInput(PhaseLoad, "empty module"), PhaseLoad, KindInvalidInput, "empty module"},
		{"bad signature", BadSignature("on_event", "variadic params"), PhaseResolve, KindBadSignature, "variadic params"},
		{"allocation", AllocationFailed(PhaseInvoke, 128), PhaseInvoke, KindAllocation, "128 bytes"},
		{"closed", Closed(PhaseRuntime, "runtime closed"), PhaseRuntime, KindClosed, "runtime closed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Phase != tt.phase {
				t.Errorf("phase = %s, want %s", tt.err.Phase, tt.phase)
			}
			if tt.err.Kind != tt.kind {
				t.Errorf("kind = %s, want %s", tt.err.Kind, tt.kind)
			}
			if !strings.Contains(tt.err.Error(), tt.contains) {
				t.Errorf("message %q does not contain %q", tt.err.Error(), tt.contains)
			}
		})
	}
}
