package pkg

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricNamePrefix = "mala_"

// Metrics process-wide collectors. A nil *Metrics records nothing.
type Metrics struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	transitions  *prometheus.CounterVec
	blobOps      *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricNamePrefix + "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricNamePrefix + "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricNamePrefix + "workflow_transitions_total",
				Help: "Total number of workflow transitions by outcome",
			},
			[]string{"family", "transition", "result"},
		),
		blobOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricNamePrefix + "blob_operations_total",
				Help: "Total number of blob store operations by outcome",
			},
			[]string{"op", "result"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.httpRequests, m.httpDuration, m.transitions, m.blobOps)
	}
	return m
}

func (m *Metrics) ObserveHTTP(method, route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveTransition(family, transition, result string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(family, transition, result).Inc()
}

func (m *Metrics) ObserveBlob(op string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.blobOps.WithLabelValues(op, result).Inc()
}
