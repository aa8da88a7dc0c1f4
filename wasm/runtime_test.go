package wasm

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/wippyai/trace-bridge/bridge"
	"github.com/wippyai/trace-bridge/tracing"
)

func TestOpen_InvalidInput(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		bytes []byte
	}{
		{"empty", nil},
		{"garbage", []byte("not a wasm module")},
		{"truncated magic", []byte{0x00, 0x61, 0x73}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := Open(ctx, tt.bytes, nil)
			if err == nil {
				rt.Close(ctx)
				t.Fatal("expected error")
			}
		})
	}
}

// loadGuest loads the compiled observer guest, skipping the test when
// the artifact has not been built (see testdata/observer.wat).
func loadGuest(t *testing.T) *Runtime {
	t.Helper()

	wasmBytes, err := os.ReadFile(filepath.Join("testdata", "observer.wasm"))
	if err != nil {
		t.Skipf("observer.wasm not found: %v", err)
	}

	ctx := context.Background()
	rt, err := Open(ctx, wasmBytes, &Config{Name: "observer"})
	if err != nil {
		t.Fatalf("open guest: %v", err)
	}
	t.Cleanup(func() { rt.Close(ctx) })
	return rt
}

func guestCalls(t *testing.T, rt *Runtime) int64 {
	t.Helper()
	fn, ok := rt.Object().Method("calls")
	if !ok {
		t.Fatal("guest exports no calls counter")
	}
	rt.Lock()
	defer rt.Unlock()
	n, err := fn()
	if err != nil {
		t.Fatalf("calls: %v", err)
	}
	if n == nil { // zero lowers to absent
		return 0
	}
	return n.(int64)
}

func TestGuest_MethodResolution(t *testing.T) {
	rt := loadGuest(t)
	obj := rt.Object()

	for _, name := range []string{"on_new_span", "on_event", "on_record", "on_close"} {
		if _, ok := obj.Method(name); !ok {
			t.Errorf("export %q not resolved", name)
		}
	}
	if _, ok := obj.Method("on_flush"); ok {
		t.Error("nonexistent export resolved")
	}
}

func TestGuest_StateRoundTrip(t *testing.T) {
	rt := loadGuest(t)
	obj := rt.Object()

	newSpan, _ := obj.Method("on_new_span")
	onClose, _ := obj.Method("on_close")

	rt.Lock()
	state, err := newSpan(`{"metadata":{"level":"INFO","name":"a","fields":[]}}`, `"id-1"`)
	rt.Unlock()
	if err != nil {
		t.Fatalf("on_new_span: %v", err)
	}
	if state == nil {
		t.Fatal("guest returned absent state for first span")
	}

	rt.Lock()
	_, err = onClose(`"id-1"`, state)
	rt.Unlock()
	if err != nil {
		t.Fatalf("on_close: %v", err)
	}
}

func TestGuest_StateTypeMismatch(t *testing.T) {
	rt := loadGuest(t)
	onClose, _ := rt.Object().Method("on_close")

	rt.Lock()
	_, err := onClose(`"id-1"`, "not an i64 state")
	rt.Unlock()
	// A string state lowers to a (ptr,len) pair and no longer matches
	// the export's arity; either way it must surface as an error.
	if err == nil {
		t.Fatal("expected error for mismatched state type")
	}
}

func TestGuest_ThroughBridge(t *testing.T) {
	rt := loadGuest(t)

	b := bridge.New(rt.Object())
	tracer := tracing.New(tracing.WithLayer(b))
	defer tracer.Close()

	before := guestCalls(t, rt)

	ctx, outer := tracer.StartSpan(context.Background(), "outer",
		tracing.WithLevel(tracing.LevelWarn))
	innerCtx, inner := tracer.StartSpan(ctx, "inner",
		tracing.WithFields(tracing.Int("arg1", 1337)))
	tracer.Event(innerCtx, tracing.LevelInfo, "About to record something")
	inner.Record(tracing.Str("data", "some data"))
	inner.End()
	outer.End()

	// 2 creates + 1 event + 1 record + 2 closes
	if got := guestCalls(t, rt) - before; got != 6 {
		t.Fatalf("guest observed %d calls, want 6", got)
	}
	if tracer.Registry().Len() != 0 {
		t.Fatal("registry not empty")
	}
}

func TestRuntime_CloseIdempotent(t *testing.T) {
	rt := loadGuest(t)
	ctx := context.Background()

	if err := rt.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := rt.Close(ctx); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
