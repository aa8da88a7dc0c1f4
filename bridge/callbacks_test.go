package bridge

import (
	"context"
	"sync"
	"testing"

	"github.com/wippyai/trace-bridge/foreign"
	"github.com/wippyai/trace-bridge/tracing"
)

// countingObject counts method resolutions to prove the bridge never
// re-resolves after construction.
type countingObject struct {
	mu      sync.Mutex
	lookups map[string]int
	rt      foreign.Runtime
}

func newCountingObject() *countingObject {
	return &countingObject{
		lookups: make(map[string]int),
		rt:      foreign.NewSerialRuntime(),
	}
}

func (o *countingObject) Runtime() foreign.Runtime { return o.rt }

func (o *countingObject) Method(name string) (foreign.Func, bool) {
	o.mu.Lock()
	o.lookups[name]++
	o.mu.Unlock()

	switch name {
	case hookOnNewSpan:
		return func(args ...any) (any, error) { return "s", nil }, true
	case hookOnClose:
		return func(args ...any) (any, error) { return nil, nil }, true
	}
	return nil, false
}

func TestResolveCallbacks_Once(t *testing.T) {
	obj := newCountingObject()
	b := New(obj)

	tracer := tracing.New(tracing.WithLayer(b))
	defer tracer.Close()

	for i := 0; i < 5; i++ {
		ctx, span := tracer.StartSpan(context.Background(), "loop")
		tracer.Event(ctx, tracing.LevelInfo, "tick")
		span.Record(tracing.Int("i", int64(i)))
		span.End()
	}

	obj.mu.Lock()
	defer obj.mu.Unlock()
	for _, name := range []string{hookOnEvent, hookOnNewSpan, hookOnClose, hookOnRecord} {
		if n := obj.lookups[name]; n != 1 {
			t.Errorf("%s resolved %d times, want exactly 1", name, n)
		}
	}
}

func TestResolveCallbacks_PartialSet(t *testing.T) {
	obj := newCountingObject()
	cs := resolveCallbacks(obj)

	if cs.onNewSpan == nil || cs.onClose == nil {
		t.Error("present methods not resolved")
	}
	if cs.onEvent != nil || cs.onRecord != nil {
		t.Error("absent methods resolved to non-nil")
	}
}
