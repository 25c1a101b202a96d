// Package metrics defines Prometheus metrics for the navigation service.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	PathQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nav_path_queries_total",
			Help: "Path queries by strategy and result (found, unreachable, invalid)",
		},
		[]string{"strategy", "result"},
	)

	PathQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nav_path_query_duration_seconds",
			Help:    "Time spent inside a search engine",
			Buckets: prometheus.ExponentialBuckets(0.00005, 4, 10),
		},
		[]string{"strategy"},
	)

	PathExpandedNodes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nav_path_expanded_nodes",
			Help:    "Nodes expanded per path query",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
		[]string{"strategy"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nav_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	GridsLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "nav_grids_loaded",
			Help: "Grids currently held by the registry",
		},
	)
)

func init() {
	prometheus.MustRegister(
		PathQueries, PathQueryDuration, PathExpandedNodes,
		RequestsTotal, GridsLoaded,
	)
}

// Query results.
const (
	ResultFound       = "found"
	ResultUnreachable = "unreachable"
	ResultInvalid     = "invalid"
)
