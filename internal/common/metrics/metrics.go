// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DocumentsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minutes_documents_generated_total",
			Help: "Total number of meeting documents generated by type",
		},
		[]string{"document_type"},
	)

	RecordsSaved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "minutes_records_saved_total",
			Help: "Total number of form snapshots persisted",
		},
	)

	RecordsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "minutes_records_deleted_total",
			Help: "Total number of records deleted",
		},
	)

	ExportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "minutes_export_duration_seconds",
			Help: "Duration of export builds in seconds",
		},
		[]string{"format"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "minutes_http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"method", "route", "status"},
	)

	DirectoryCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minutes_directory_cache_requests_total",
			Help: "Directory lookups by cache outcome",
		},
		[]string{"outcome"},
	)
)
