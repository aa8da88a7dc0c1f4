package bridge

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/wippyai/trace-bridge/foreign"
	"github.com/wippyai/trace-bridge/tracing"
)

// Bridge adapts a foreign callback object into a tracing.Layer. See the
// package documentation for the bridged method signatures and the state
// threading contract.
type Bridge struct {
	rt        foreign.Runtime
	metrics   *metrics
	callbacks callbackSet
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithMetrics exports the bridge's per-hook counters through reg.
// Registration failures are reported through the package logger.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(b *Bridge) {
		if err := b.metrics.register(reg); err != nil {
			Logger().Warn("metrics registration failed", zap.Error(err))
		}
	}
}

// New builds a Bridge around obj. The four callback methods are resolved
// here, once; whatever subset obj provides is what this bridge delivers
// for its lifetime.
func New(obj foreign.Object, opts ...Option) *Bridge {
	b := &Bridge{
		rt:        obj.Runtime(),
		metrics:   newMetrics(),
		callbacks: resolveCallbacks(obj),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// OnNewSpan serializes the span's attributes and id, invokes the foreign
// on_new_span, and stores its return value as the span's state. A
// handler error means no state is stored.
func (b *Bridge) OnNewSpan(attrs *tracing.Attributes, id tracing.SpanID, ctx tracing.Context) {
	if b.callbacks.onNewSpan == nil {
		b.skip(hookOnNewSpan)
		return
	}
	span, ok := ctx.Span(id)
	if !ok {
		b.skip(hookOnNewSpan)
		return
	}

	jsonAttrs := encodeAttributes(attrs)
	jsonID := encodeSpanID(id)

	state, ok := b.invoke(hookOnNewSpan, b.callbacks.onNewSpan, jsonAttrs, jsonID)
	if !ok || state == nil {
		return
	}
	span.Extension().Insert(state)
}

// OnRecord serializes the span id and the recorded deltas and invokes
// the foreign on_record with the span's current state. The stored state
// is never changed by this hook.
func (b *Bridge) OnRecord(id tracing.SpanID, values *tracing.Record, ctx tracing.Context) {
	if b.callbacks.onRecord == nil {
		b.skip(hookOnRecord)
		return
	}
	span, ok := ctx.Span(id)
	if !ok {
		b.skip(hookOnRecord)
		return
	}

	jsonID := encodeSpanID(id)
	jsonValues := encodeRecord(values)
	state, _ := span.Extension().Get()

	b.invoke(hookOnRecord, b.callbacks.onRecord, jsonID, jsonValues, state)
}

// OnEvent serializes the event and invokes the foreign on_event with the
// state of the event's span: the explicitly declared parent when it
// resolves, otherwise the contextually active span, otherwise no state.
func (b *Bridge) OnEvent(ev *tracing.Event, ctx tracing.Context) {
	if b.callbacks.onEvent == nil {
		b.skip(hookOnEvent)
		return
	}

	var span *tracing.SpanRef
	var ok bool
	if ev.Parent != "" {
		span, ok = ctx.Span(ev.Parent)
	}
	if !ok {
		span, ok = ctx.Current()
	}

	var state any
	if ok {
		state, _ = span.Extension().Get()
	}
	jsonEvent := encodeEvent(ev)

	b.invoke(hookOnEvent, b.callbacks.onEvent, jsonEvent, state)
}

// OnClose removes the span's state from its slot and invokes the foreign
// on_close with it. The removal is the single point of state
// destruction: at most one close delivers the state, and nothing leaks
// past the span's lifetime.
func (b *Bridge) OnClose(id tracing.SpanID, ctx tracing.Context) {
	if b.callbacks.onClose == nil {
		b.skip(hookOnClose)
		return
	}
	span, ok := ctx.Span(id)
	if !ok {
		b.skip(hookOnClose)
		return
	}

	jsonID := encodeSpanID(id)
	state, _ := span.Extension().Remove()

	b.invoke(hookOnClose, b.callbacks.onClose, jsonID, state)
}

// invoke runs one foreign call under the runtime's global lock. The lock
// covers exactly the call: serialization and span-store access stay
// outside it. A handler error is swallowed here, uniformly for all four
// hooks; the instrumentation path continues regardless of what the
// foreign side does.
func (b *Bridge) invoke(hook string, fn foreign.Func, args ...any) (any, bool) {
	b.rt.Lock()
	state, err := fn(args...)
	b.rt.Unlock()

	if err != nil {
		b.metrics.swallowed.WithLabelValues(hook).Inc()
		Logger().Debug("foreign handler error swallowed",
			zap.String("hook", hook),
			zap.Error(err))
		return nil, false
	}
	b.metrics.invoked.WithLabelValues(hook).Inc()
	return state, true
}

func (b *Bridge) skip(hook string) {
	b.metrics.skipped.WithLabelValues(hook).Inc()
}
