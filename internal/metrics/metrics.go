// Package metrics provides the centralized Prometheus metrics registry for the sync pipelines.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics, labelled by entity (season, driver, result, ...)
var (
	RecordsFetchedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "f1sync",
		Name:      "records_fetched_total",
		Help:      "Total number of records fetched from the upstream API",
	}, []string{"entity"})
	RecordsInsertedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "f1sync",
		Name:      "records_inserted_total",
		Help:      "Total number of records inserted into the store",
	}, []string{"entity"})
	RecordsSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "f1sync",
		Name:      "records_skipped_total",
		Help:      "Total number of records skipped because they already exist",
	}, []string{"entity"})
	MissingDependenciesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "f1sync",
		Name:      "missing_dependencies_total",
		Help:      "Total number of records skipped because a parent entity was absent",
	}, []string{"entity"})
	RecordsFailedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "f1sync",
		Name:      "records_failed_total",
		Help:      "Total number of records that failed to persist",
	}, []string{"entity"})
	DocumentsIndexedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "f1sync",
		Name:      "documents_indexed_total",
		Help:      "Total number of documents written to the search index",
	}, []string{"entity"})
	UpstreamRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "f1sync",
		Name:      "upstream_requests_total",
		Help:      "Total number of HTTP requests issued to the upstream API",
	})
)

// Histogram metrics
var (
	SyncDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "f1sync",
		Name:      "sync_duration_seconds",
		Help:      "Duration of a full pipeline run per entity in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 300, 600, 1800},
	}, []string{"entity"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(RecordsFetchedTotal)
		registry.MustRegister(RecordsInsertedTotal)
		registry.MustRegister(RecordsSkippedTotal)
		registry.MustRegister(MissingDependenciesTotal)
		registry.MustRegister(RecordsFailedTotal)
		registry.MustRegister(DocumentsIndexedTotal)
		registry.MustRegister(UpstreamRequestsTotal)
		registry.MustRegister(SyncDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordFetched records records fetched from upstream for an entity.
func RecordFetched(entity string, count int) {
	RecordsFetchedTotal.WithLabelValues(entity).Add(float64(count))
}

// RecordInserted records a successful insert for an entity.
func RecordInserted(entity string) {
	RecordsInsertedTotal.WithLabelValues(entity).Inc()
}

// RecordSkipped records an already-present record for an entity.
func RecordSkipped(entity string) {
	RecordsSkippedTotal.WithLabelValues(entity).Inc()
}

// RecordMissingDependency records a record dropped for a missing parent.
func RecordMissingDependency(entity string) {
	MissingDependenciesTotal.WithLabelValues(entity).Inc()
}

// RecordFailed records a record that could not be persisted.
func RecordFailed(entity string) {
	RecordsFailedTotal.WithLabelValues(entity).Inc()
}

// RecordDocumentIndexed records a document written to the search index.
func RecordDocumentIndexed(entity string) {
	DocumentsIndexedTotal.WithLabelValues(entity).Inc()
}

// RecordUpstreamRequest records an HTTP request to the upstream API.
func RecordUpstreamRequest() {
	UpstreamRequestsTotal.Inc()
}

// RecordSyncDuration records the duration of a pipeline run.
func RecordSyncDuration(entity string, durationSeconds float64) {
	SyncDuration.WithLabelValues(entity).Observe(durationSeconds)
}
