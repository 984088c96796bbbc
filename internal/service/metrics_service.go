package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the API.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	storeDuration   *prometheus.HistogramVec
	fanoutQueries   prometheus.Counter
	readFailures    prometheus.Counter
	uploadsTotal    prometheus.Counter
}

// NewMetricsService registers the service's Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	storeDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "store_query_duration_seconds",
		Help:    "Duration of document store operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	fanoutQueries := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "search_fanout_partition_queries_total",
		Help: "Partition queries issued by cross-semester search",
	})

	readFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "content_read_failures_total",
		Help: "Read-path store failures swallowed by the fail-open policy",
	})

	uploadsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "asset_uploads_total",
		Help: "Asset host uploads performed during approval",
	})

	registry.MustRegister(requestDuration, requestTotal, storeDuration, fanoutQueries, readFailures, uploadsTotal)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		storeDuration:   storeDuration,
		fanoutQueries:   fanoutQueries,
		readFailures:    readFailures,
		uploadsTotal:    uploadsTotal,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records one served request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if s == nil {
		return
	}
	labels := prometheus.Labels{
		"method": method,
		"path":   path,
		"status": strconv.Itoa(status),
	}
	s.requestDuration.With(labels).Observe(duration.Seconds())
	s.requestTotal.With(labels).Inc()
}

// ObserveStoreQuery records one document store round trip.
func (s *MetricsService) ObserveStoreQuery(operation string, duration time.Duration) {
	if s == nil {
		return
	}
	s.storeDuration.With(prometheus.Labels{"operation": operation}).Observe(duration.Seconds())
}

// RecordFanoutQuery counts a partition query within a cross-semester search.
func (s *MetricsService) RecordFanoutQuery() {
	if s == nil {
		return
	}
	s.fanoutQueries.Inc()
}

// RecordReadFailure counts a store failure collapsed to an empty result.
func (s *MetricsService) RecordReadFailure() {
	if s == nil {
		return
	}
	s.readFailures.Inc()
}

// RecordUpload counts an asset host upload.
func (s *MetricsService) RecordUpload() {
	if s == nil {
		return
	}
	s.uploadsTotal.Inc()
}
