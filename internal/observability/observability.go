// Package observability provides metrics collection for the health diary service.
package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tphakala/healthdiary-go/internal/observability/metrics"
)

// Metrics holds all the metric collectors for the application.
type Metrics struct {
	registry   *prometheus.Registry
	TableStore *metrics.TableStoreMetrics
	Completion *metrics.CompletionMetrics
}

// NewMetrics creates a new instance of Metrics, initializing all metric collectors.
// It returns an error if any metric collector fails to initialize.
func NewMetrics() (*Metrics, error) {
	registry := prometheus.NewRegistry()

	tableStoreMetrics, err := metrics.NewTableStoreMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create table storage metrics: %w", err)
	}

	completionMetrics, err := metrics.NewCompletionMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create completion metrics: %w", err)
	}

	return &Metrics{
		registry:   registry,
		TableStore: tableStoreMetrics,
		Completion: completionMetrics,
	}, nil
}

// Handler returns an HTTP handler serving the metrics registry in
// Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
