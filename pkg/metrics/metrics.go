// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trailguard_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trailguard_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	sosTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trailguard_sos_transitions_total",
			Help: "SOS state transitions by kind",
		},
		[]string{"type"},
	)

	cacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trailguard_cache_lookups_total",
			Help: "Cache lookups by backend and result",
		},
		[]string{"backend", "result"},
	)

	rateLimitDeniedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trailguard_rate_limit_denied_total",
			Help: "Requests rejected by the rate limiter",
		},
	)
)

// ObserveRequest records one finished HTTP request.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// SOSTransition counts an activated, updated or cancelled transition.
func SOSTransition(kind string) {
	sosTransitionsTotal.WithLabelValues(kind).Inc()
}

// SOSTransitionCounter exposes the counter for kind.
func SOSTransitionCounter(kind string) prometheus.Counter {
	return sosTransitionsTotal.WithLabelValues(kind)
}

// CacheLookup counts a hit or miss against backend.
func CacheLookup(backend string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookupsTotal.WithLabelValues(backend, result).Inc()
}

// RateLimitDenied counts one rejected request.
func RateLimitDenied() {
	rateLimitDeniedTotal.Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
