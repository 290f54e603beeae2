// Package metrics provides Prometheus metric collectors for the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TableStoreMetrics contains Prometheus metrics for table storage operations
type TableStoreMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewTableStoreMetrics creates and registers new table storage metrics
func NewTableStoreMetrics(registry *prometheus.Registry) (*TableStoreMetrics, error) {
	m := &TableStoreMetrics{}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *TableStoreMetrics) initMetrics() {
	m.requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tablestore_requests_total",
			Help: "Total number of table storage requests",
		},
		[]string{"table", "method", "outcome"}, // outcome: success, error, transport_error, read_error
	)

	m.requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tablestore_request_duration_seconds",
			Help:    "Duration of table storage requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"table", "method"},
	)
}

// RecordRequest records one storage request with its outcome and duration.
func (m *TableStoreMetrics) RecordRequest(table, method, outcome string, duration time.Duration) {
	m.requestsTotal.WithLabelValues(table, method, outcome).Inc()
	m.requestDuration.WithLabelValues(table, method).Observe(duration.Seconds())
}

// Describe implements prometheus.Collector
func (m *TableStoreMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.requestsTotal.Describe(ch)
	m.requestDuration.Describe(ch)
}

// Collect implements prometheus.Collector
func (m *TableStoreMetrics) Collect(ch chan<- prometheus.Metric) {
	m.requestsTotal.Collect(ch)
	m.requestDuration.Collect(ch)
}
