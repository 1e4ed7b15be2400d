package metrics

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlightGauge   prometheus.Gauge

	MutationsTotal      *prometheus.CounterVec
	Records             *prometheus.GaugeVec
	SweepTransitions    *prometheus.CounterVec
	SweepRuns           prometheus.Counter
	LowStockAlertsTotal prometheus.Counter
	LoginAttemptsTotal  *prometheus.CounterVec

	AuditEntriesTotal  prometheus.Counter
	AuditBufferDropped prometheus.Counter
}

// NewCollector registers every metric on a fresh registry, so tests can build
// as many collectors as they like.
func NewCollector(serviceName string) *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	ns := strings.ReplaceAll(serviceName, "-", "_")
	f := promauto.With(reg)

	return &Collector{
		registry: reg,

		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code.",
		}, []string{"method", "path", "status"}),

		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency distribution.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}, []string{"method", "path", "status"}),

		InFlightGauge: f.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),

		MutationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "store",
			Name:      "mutations_total",
			Help:      "Create, update and delete operations by resource and outcome.",
		}, []string{"resource", "action", "outcome"}),

		Records: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns,
			Subsystem: "store",
			Name:      "records",
			Help:      "Current number of records held per resource.",
		}, []string{"resource"}),

		SweepTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "sweep",
			Name:      "overdue_transitions_total",
			Help:      "Invoices flipped to overdue by the sweeper.",
		}, []string{"kind"}),

		SweepRuns: f.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "sweep",
			Name:      "runs_total",
			Help:      "Completed overdue sweeps.",
		}),

		LowStockAlertsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "inventory",
			Name:      "low_stock_alerts_total",
			Help:      "Notifications raised for products falling to low or out of stock.",
		}),

		LoginAttemptsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "auth",
			Name:      "login_attempts_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),

		AuditEntriesTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "audit",
			Name:      "entries_total",
			Help:      "Total audit log entries written.",
		}),

		AuditBufferDropped: f.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "audit",
			Name:      "buffer_dropped_total",
			Help:      "Audit entries dropped due to full buffer. Alert if non-zero.",
		}),
	}
}

// ObserveRecords publishes per-resource record counts.
func (c *Collector) ObserveRecords(counts map[string]int) {
	for resource, n := range counts {
		c.Records.WithLabelValues(resource).Set(float64(n))
	}
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func (c *Collector) Registry() *prometheus.Registry { return c.registry }
