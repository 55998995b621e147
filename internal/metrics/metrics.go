// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sushihentaime/bloggraph/internal/graph"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bloggraph_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bloggraph_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	// GraphErrorsTotal counts errors reported on graph responses, one per error entry.
	GraphErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bloggraph_graph_errors_total",
			Help: "Total number of errors reported on graph responses",
		},
		[]string{"kind"},
	)
)

// RecordGraphError is meant to be passed to graph.WithErrorHook.
func RecordGraphError(e *graph.Error) {
	GraphErrorsTotal.WithLabelValues(string(e.Kind)).Inc()
}
