/*-------------------------------------------------------------------------
 *
 * prometheus.go
 *    Prometheus metrics for the CodeScore server
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 * IDENTIFICATION
 *    codeScore/internal/metrics/prometheus.go
 *
 *-------------------------------------------------------------------------
 */

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	/* Request metrics */
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codescore_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "codescore_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	/* Provider metrics */
	providerCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codescore_provider_calls_total",
			Help: "Total number of review provider calls",
		},
		[]string{"model", "status"},
	)

	providerCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "codescore_provider_call_duration_seconds",
			Help:    "Review provider call duration in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"model"},
	)

	providerTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codescore_provider_tokens_total",
			Help: "Total number of provider tokens",
		},
		[]string{"model", "type"},
	)

	/* Approval metrics */
	approvalRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codescore_approval_requests_total",
			Help: "Total number of access requests received",
		},
		[]string{"status"},
	)

	approvalDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codescore_approval_decisions_total",
			Help: "Total number of approval decisions",
		},
		[]string{"action", "status"},
	)

	/* Notification metrics */
	notificationsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codescore_notifications_sent_total",
			Help: "Total number of notification emails attempted",
		},
		[]string{"kind", "status"},
	)

	/* Retention sweep metrics */
	reviewsSweptTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "codescore_reviews_swept_total",
			Help: "Total number of expired reviews deleted by the sweep",
		},
	)

	sweepRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codescore_sweep_runs_total",
			Help: "Total number of retention sweep executions",
		},
		[]string{"status"},
	)

	/* Database connection pool metrics */
	dbPoolOpenConns = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "codescore_db_pool_open_connections",
			Help: "Number of open database connections",
		},
		[]string{"database"},
	)

	dbPoolIdleConns = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "codescore_db_pool_idle_connections",
			Help: "Number of idle database connections",
		},
		[]string{"database"},
	)

	dbPoolInUseConns = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "codescore_db_pool_in_use_connections",
			Help: "Number of database connections in use",
		},
		[]string{"database"},
	)
)

/* RecordHTTPRequest records an HTTP request */
func RecordHTTPRequest(method, endpoint string, status int, duration time.Duration) {
	/* Convert status code to status class for better PromQL queries */
	statusClass := "unknown"
	if status >= 200 && status < 300 {
		statusClass = "2xx"
	} else if status >= 300 && status < 400 {
		statusClass = "3xx"
	} else if status >= 400 && status < 500 {
		statusClass = "4xx"
	} else if status >= 500 {
		statusClass = "5xx"
	}

	httpRequestsTotal.WithLabelValues(method, endpoint, statusClass).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

/* RecordProviderCall records a review provider call */
func RecordProviderCall(model, status string, duration time.Duration) {
	providerCallsTotal.WithLabelValues(model, status).Inc()
	providerCallDuration.WithLabelValues(model).Observe(duration.Seconds())
}

/* RecordProviderTokens records provider token usage */
func RecordProviderTokens(model string, promptTokens, completionTokens int) {
	providerTokensTotal.WithLabelValues(model, "prompt").Add(float64(promptTokens))
	providerTokensTotal.WithLabelValues(model, "completion").Add(float64(completionTokens))
}

/* RecordApprovalRequest records an access request being received */
func RecordApprovalRequest(status string) {
	approvalRequestsTotal.WithLabelValues(status).Inc()
}

/* RecordApprovalDecision records an approval decision */
func RecordApprovalDecision(action, status string) {
	approvalDecisionsTotal.WithLabelValues(action, status).Inc()
}

/* RecordNotificationSent records a notification email attempt */
func RecordNotificationSent(kind, status string) {
	notificationsSentTotal.WithLabelValues(kind, status).Inc()
}

/* RecordReviewsSwept records expired reviews deleted by the sweep */
func RecordReviewsSwept(count int64) {
	reviewsSweptTotal.Add(float64(count))
}

/* RecordSweepRun records a retention sweep execution */
func RecordSweepRun(status string) {
	sweepRunsTotal.WithLabelValues(status).Inc()
}

/* RecordDBPoolStats records database connection pool statistics */
func RecordDBPoolStats(database string, openConns, idleConns, inUse int) {
	dbPoolOpenConns.WithLabelValues(database).Set(float64(openConns))
	dbPoolIdleConns.WithLabelValues(database).Set(float64(idleConns))
	dbPoolInUseConns.WithLabelValues(database).Set(float64(inUse))
}

/* Handler returns the Prometheus metrics handler */
func Handler() http.Handler {
	return promhttp.Handler()
}
