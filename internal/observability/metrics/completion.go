package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CompletionMetrics contains Prometheus metrics for text-completion calls
type CompletionMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration prometheus.Histogram
}

// NewCompletionMetrics creates and registers new completion metrics
func NewCompletionMetrics(registry *prometheus.Registry) (*CompletionMetrics, error) {
	m := &CompletionMetrics{}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *CompletionMetrics) initMetrics() {
	m.requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "completion_requests_total",
			Help: "Total number of text-completion service requests",
		},
		[]string{"outcome"}, // outcome: success, error, transport_error
	)

	m.requestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "completion_request_duration_seconds",
			Help:    "Duration of text-completion service requests",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)
}

// RecordRequest records one completion call with its outcome and duration.
func (m *CompletionMetrics) RecordRequest(outcome string, duration time.Duration) {
	m.requestsTotal.WithLabelValues(outcome).Inc()
	m.requestDuration.Observe(duration.Seconds())
}

// Describe implements prometheus.Collector
func (m *CompletionMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.requestsTotal.Describe(ch)
	ch <- m.requestDuration.Desc()
}

// Collect implements prometheus.Collector
func (m *CompletionMetrics) Collect(ch chan<- prometheus.Metric) {
	m.requestsTotal.Collect(ch)
	ch <- m.requestDuration
}
