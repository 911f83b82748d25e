// Package metrics exposes the service's Prometheus collectors.
//
// Collectors are package-level and registered once via promauto on the
// default registry — a deliberate process-wide singleton, the standard
// shape for Prometheus instrumentation. Everything here is observational:
// no business decision reads a metric.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "goober"

var (
	// CheckIns counts every recorded check-in row.
	CheckIns = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkins_total",
		Help:      "Total check-ins recorded.",
	})

	// HistoryAppends counts events appended to goober histories.
	HistoryAppends = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "history_appends_total",
		Help:      "Total history events appended across all goobers.",
	})

	// GoobersRegistered counts successful goober registrations.
	GoobersRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "goobers_registered_total",
		Help:      "Total goobers registered.",
	})

	// HTTPRequests counts requests by method, route pattern, and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route, and status code.",
	}, []string{"method", "route", "status"})

	// HTTPDuration observes request latency by method and route pattern.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// Handler returns the /metrics endpoint handler for the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
