// Package metrics provides Prometheus metrics for the bridge.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Default histogram buckets for exchange latency.
var defaultBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// Exchange outcome label values.
const (
	OutcomeHandled     = "handled"
	OutcomePassthrough = "passthrough"
	OutcomeError       = "error"
)

// Metrics holds all Prometheus metric collectors for the bridge.
type Metrics struct {
	Registry *prometheus.Registry

	ExchangesTotal    *prometheus.CounterVec
	ExchangeDuration  *prometheus.HistogramVec
	ExchangesInFlight prometheus.Gauge

	AdaptationFailures *prometheus.CounterVec
}

// New creates a Metrics instance with a custom registry and all collectors registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		Registry: reg,

		ExchangesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "httpbridge_exchanges_total",
			Help: "Total exchanges processed by the bridge, by outcome.",
		}, []string{"method", "outcome"}),

		ExchangeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "httpbridge_exchange_duration_seconds",
			Help:    "Bridge exchange latency in seconds.",
			Buckets: defaultBuckets,
		}, []string{"method", "outcome"}),

		ExchangesInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "httpbridge_exchanges_in_flight",
			Help: "Number of exchanges currently inside the bridge.",
		}),

		AdaptationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "httpbridge_adaptation_failures_total",
			Help: "Total adaptation failures by pipeline phase.",
		}, []string{"phase"}),
	}

	reg.MustRegister(
		m.ExchangesTotal,
		m.ExchangeDuration,
		m.ExchangesInFlight,
		m.AdaptationFailures,
	)

	return m
}

// knownMethods lists the allowed HTTP method label values (bounded cardinality).
var knownMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "DELETE": true,
	"PATCH": true, "HEAD": true, "OPTIONS": true,
}

// NormalizeMethod returns a bounded HTTP method label for Prometheus metrics.
// Non-standard methods are mapped to "other" to prevent cardinality explosion.
func NormalizeMethod(method string) string {
	if knownMethods[method] {
		return method
	}
	return "other"
}
