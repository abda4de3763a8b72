package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	LoginSucceeded = "success"
	LoginFailed    = "failure"
)

var (
	// API Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sincvideos_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sincvideos_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Auth Metrics
	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sincvideos_login_attempts_total",
			Help: "Total number of login attempts by result",
		},
		[]string{"result"},
	)

	PasswordMigrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sincvideos_password_migrations_total",
			Help: "Total number of plaintext passwords rewritten as digests on login",
		},
	)

	// Video Metrics
	VideosSoftDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sincvideos_videos_soft_deleted_total",
			Help: "Total number of videos marked as deleted",
		},
	)

	// Audit Metrics
	AuditEntriesDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sincvideos_audit_entries_dropped_total",
			Help: "Audit entries dropped because the queue was full",
		},
	)
)

func RecordHTTPRequest(method, endpoint, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration)
}

func RecordLogin(result string) {
	LoginAttemptsTotal.WithLabelValues(result).Inc()
}

func RecordPasswordMigration() {
	PasswordMigrationsTotal.Inc()
}

func RecordVideoSoftDeleted() {
	VideosSoftDeletedTotal.Inc()
}

func RecordAuditDropped() {
	AuditEntriesDroppedTotal.Inc()
}
