package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total number of request errors by domain code",
		},
		[]string{"method", "path", "code"},
	)

	leadsCaptured = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_captured_total",
			Help: "Total number of leads captured",
		},
		[]string{"source"},
	)

	leadStatusChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_status_changes_total",
			Help: "Total number of lead status transitions applied",
		},
		[]string{"status"},
	)

	advisorFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_fallbacks_total",
			Help: "Total number of AI advisor calls served by a static fallback",
		},
		[]string{"operation"},
	)

	integrationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integration_errors_total",
			Help: "Total number of integration errors",
		},
		[]string{"service"},
	)
)

// RecordRequest tracks one completed HTTP request.
func RecordRequest(method, path string, status int, seconds float64) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// RecordError tracks one request that ended in a domain error.
func RecordError(method, path, code string) {
	httpErrorsTotal.WithLabelValues(method, path, code).Inc()
}

// RecordLeadCaptured tracks a new lead by source (form, valuation, chat).
func RecordLeadCaptured(source string) {
	leadsCaptured.WithLabelValues(source).Inc()
}

// RecordStatusChange tracks an applied lead status transition.
func RecordStatusChange(status string) {
	leadStatusChanges.WithLabelValues(status).Inc()
}

// RecordAdvisorFallback tracks an AI call that fell back to static text.
func RecordAdvisorFallback(operation string) {
	advisorFallbacks.WithLabelValues(operation).Inc()
}

// RecordIntegrationError tracks a failed call to an external collaborator.
func RecordIntegrationError(service string) {
	integrationErrors.WithLabelValues(service).Inc()
}
