package bridge

import "github.com/prometheus/client_golang/prometheus"

// metrics counts per-hook outcomes. Collectors are created with the
// bridge and only exported when a Registerer is supplied via
// WithMetrics.
type metrics struct {
	invoked   *prometheus.CounterVec
	skipped   *prometheus.CounterVec
	swallowed *prometheus.CounterVec
}

func newMetrics() *metrics {
	return &metrics{
		invoked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trace_bridge",
			Name:      "hook_invocations_total",
			Help:      "Foreign handler invocations that returned without error.",
		}, []string{"hook"}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trace_bridge",
			Name:      "hook_skips_total",
			Help:      "Hook deliveries skipped because the handler is absent or the span is unresolvable.",
		}, []string{"hook"}),
		swallowed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trace_bridge",
			Name:      "hook_errors_swallowed_total",
			Help:      "Foreign handler errors caught and discarded at the call boundary.",
		}, []string{"hook"}),
	}
}

func (m *metrics) register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.invoked, m.skipped, m.swallowed} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
