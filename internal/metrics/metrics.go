package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status_code"},
	)

	// Business metrics
	submissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_submissions_total",
			Help: "Total number of form submissions by kind and outcome",
		},
		[]string{"kind", "outcome"}, // contact|quote; accepted, invalid, failed
	)

	emailsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emails_dispatched_total",
			Help: "Total number of outbound emails by type and status",
		},
		[]string{"email_type", "status"},
	)

	emailDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "email_dispatch_duration_seconds",
			Help:    "Time spent delivering one email",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15, 30},
		},
		[]string{"email_type"},
	)

	storageWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_writes_total",
			Help: "Best-effort storage writes by table and status",
		},
		[]string{"table", "status"}, // success, error, skipped
	)
)

const (
	OutcomeAccepted = "accepted"
	OutcomeInvalid  = "invalid"
	OutcomeFailed   = "failed"
)

// GinMiddleware records request count and latency per route template.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(c.Request.Method, endpoint, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, endpoint, status).Observe(time.Since(start).Seconds())
	}
}

// RecordSubmission records the final outcome of one form submission.
func RecordSubmission(kind, outcome string) {
	submissionsTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordEmail records one dispatch attempt.
func RecordEmail(emailType string, sent bool, took time.Duration) {
	status := "failed"
	if sent {
		status = "sent"
	}
	emailsTotal.WithLabelValues(emailType, status).Inc()
	emailDuration.WithLabelValues(emailType).Observe(took.Seconds())
}

// RecordStorageWrite records a best-effort write. A nil err with skipped
// set means no storage was configured.
func RecordStorageWrite(table string, skipped bool, err error) {
	status := "success"
	switch {
	case skipped:
		status = "skipped"
	case err != nil:
		status = "error"
	}
	storageWritesTotal.WithLabelValues(table, status).Inc()
}
