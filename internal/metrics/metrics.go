// Package metrics defines the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestTotal counts HTTP requests by method, route and status.
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salesadmin_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	// RequestDuration is the latency of HTTP requests.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "salesadmin_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// QueryDuration is the latency of store operations (count, select, insert, ...).
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "salesadmin_query_duration_seconds",
			Help:    "Store operation latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)
	// QueryErrors counts failed store operations.
	QueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salesadmin_query_errors_total",
			Help: "Total number of failed store operations",
		},
		[]string{"operation", "table"},
	)

	// ExportsTotal counts rendered exports by format and outcome.
	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salesadmin_exports_total",
			Help: "Total number of export requests",
		},
		[]string{"format", "status"},
	)
	// ExportsActive is the number of exports currently rendering.
	ExportsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "salesadmin_exports_active",
			Help: "Number of exports currently rendering",
		},
	)

	// RateLimited counts requests rejected by the rate limiter.
	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "salesadmin_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)
