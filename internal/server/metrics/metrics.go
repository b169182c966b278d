// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeError   = "error"
)

// HTTPRequests counts served requests by route template and status code.
var HTTPRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "loveletters_http_requests_total",
		Help: "Total number of HTTP requests served",
	},
	[]string{"method", "route", "status"},
)

// HTTPDuration tracks request latency by route template.
var HTTPDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "loveletters_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// AuthEvents counts register, login and token authentication attempts.
var AuthEvents = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "loveletters_auth_events_total",
		Help: "Total number of authentication events",
	},
	[]string{"event", "outcome"},
)

// MessageOperations counts message access operations.
var MessageOperations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "loveletters_message_operations_total",
		Help: "Total number of message operations",
	},
	[]string{"operation", "outcome"},
)

// RegisterMetrics registers the collectors with reg. Panics on duplicate
// registration, like prometheus.MustRegister.
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(HTTPRequests, HTTPDuration, AuthEvents, MessageOperations)
}

func RecordHTTPRequest(method, route, status string, d time.Duration) {
	HTTPRequests.WithLabelValues(method, route, status).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func RecordAuthEvent(event, outcome string) {
	AuthEvents.WithLabelValues(event, outcome).Inc()
}

func RecordMessageOperation(operation, outcome string) {
	MessageOperations.WithLabelValues(operation, outcome).Inc()
}
