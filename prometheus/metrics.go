package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/maynoewai/ABC-car-sale-BE/pkg/config"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	RegisterCounter   prometheus.Counter
	LoginCounter      prometheus.Counter
	AuthErrorsCounter prometheus.CounterVec
	ActiveTokensGauge prometheus.Gauge

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Domain metrics
	CarOperationsCounter       prometheus.CounterVec
	BidOperationsCounter       prometheus.CounterVec
	TestDriveOperationsCounter prometheus.CounterVec
	BidRejectedCounter         prometheus.CounterVec

	// Image hosting metrics
	ImageUploadsCounter       prometheus.Counter
	ImageCleanupFailedCounter prometheus.Counter
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	// HTTP request metrics
	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Authentication metrics
	RegisterCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_registrations_total",
			Help: "Total number of registration attempts",
		},
	)

	LoginCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_logins_total",
			Help: "Total number of login attempts",
		},
	)

	AuthErrorsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"reason"},
	)

	ActiveTokensGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: prefix + "_active_tokens",
			Help: "Number of issued tokens assumed active",
		},
	)

	// Database operation metrics
	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	// Domain metrics
	CarOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_car_operations_total",
			Help: "Total number of car listing operations",
		},
		[]string{"operation"},
	)

	BidOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_bid_operations_total",
			Help: "Total number of bid operations",
		},
		[]string{"operation"},
	)

	TestDriveOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_test_drive_operations_total",
			Help: "Total number of test drive operations",
		},
		[]string{"operation"},
	)

	BidRejectedCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_bids_rejected_total",
			Help: "Total number of rejected bid placements",
		},
		[]string{"reason"},
	)

	// Image hosting metrics
	ImageUploadsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_image_uploads_total",
			Help: "Total number of listing images uploaded",
		},
	)

	ImageCleanupFailedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_image_cleanup_failures_total",
			Help: "Total number of external images left behind by cleanup",
		},
	)
}

// RecordAuthError increments the auth error counter for a reason label
func RecordAuthError(reason string) {
	AuthErrorsCounter.WithLabelValues(reason).Inc()
}

// TrackDBOperation returns a function that records the duration of a
// database operation when called. Use with defer:
//
//	defer prometheus.TrackDBOperation("query")(time.Now())
func TrackDBOperation(operationType string) func(time.Time) {
	return func(start time.Time) {
		DbOperationDuration.WithLabelValues(operationType).Observe(time.Since(start).Seconds())
	}
}
