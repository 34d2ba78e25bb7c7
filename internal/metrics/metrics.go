// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemood_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinemood_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinemood_api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)

	// Catalog (TMDB) Metrics
	CatalogRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemood_catalog_requests_total",
			Help: "Total number of catalog requests by operation and outcome",
		},
		[]string{"operation", "outcome"}, // outcome: ok, timeout, http, parse, unavailable
	)

	CatalogRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinemood_catalog_request_duration_seconds",
			Help:    "Duration of catalog requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"operation"},
	)

	CatalogFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemood_catalog_fallbacks_total",
			Help: "Times a recommendation path fell back after a catalog failure",
		},
		[]string{"path", "reason"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemood_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "catalog", "query_vector", "curated"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemood_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cinemood_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemood_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cinemood_circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemood_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Embedding Index Metrics
	IndexRebuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemood_index_rebuilds_total",
			Help: "Embedding index rebuilds by reason and result",
		},
		[]string{"reason", "result"}, // reason: missing, row_mismatch, dim_mismatch, forced
	)

	IndexRebuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cinemood_index_rebuild_duration_seconds",
			Help:    "Wall time of embedding index rebuilds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	IndexRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinemood_index_rows",
			Help: "Rows in the currently published embedding matrix",
		},
	)

	IndexLastRefresh = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinemood_index_last_refresh_timestamp",
			Help: "Unix time of the last successful freshness check",
		},
	)

	EncoderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemood_encoder_requests_total",
			Help: "Text encoder batch requests by result",
		},
		[]string{"result"},
	)

	// Retrieval Metrics
	RetrievalDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cinemood_retrieval_duration_seconds",
			Help:    "Duration of semantic retrieval including query encoding",
			Buckets: prometheus.DefBuckets,
		},
	)

	RetrievalResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cinemood_retrieval_results",
			Help:    "Number of records returned per semantic retrieval",
			Buckets: []float64{0, 1, 2, 4, 6, 8, 12, 16},
		},
	)

	// Recommendation Flow Metrics
	RecommendPaths = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemood_recommend_paths_total",
			Help: "Recommendation requests by entry point and resolved path",
		},
		[]string{"entry", "path"},
	)

	FilterMatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemood_filter_matches_total",
			Help: "Filter keys set by the free-text extractor",
		},
		[]string{"key"},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCatalogRequest records one catalog call with its classified outcome.
func RecordCatalogRequest(operation, outcome string, duration time.Duration) {
	CatalogRequests.WithLabelValues(operation, outcome).Inc()
	CatalogRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCatalogFallback counts a degraded response path.
func RecordCatalogFallback(path, reason string) {
	CatalogFallbacks.WithLabelValues(path, reason).Inc()
}

// RecordCacheLookup records a hit or miss for cacheType.
func RecordCacheLookup(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
		return
	}
	CacheMisses.WithLabelValues(cacheType).Inc()
}

// RecordIndexRebuild records a rebuild attempt. Successful rebuilds also
// update the published row gauge.
func RecordIndexRebuild(reason string, rows int, duration time.Duration, err error) {
	if err != nil {
		IndexRebuilds.WithLabelValues(reason, "error").Inc()
		return
	}
	IndexRebuilds.WithLabelValues(reason, "success").Inc()
	IndexRebuildDuration.Observe(duration.Seconds())
	IndexRows.Set(float64(rows))
}

// RecordIndexRefresh marks a successful freshness check.
func RecordIndexRefresh(rows int) {
	IndexRows.Set(float64(rows))
	IndexLastRefresh.Set(float64(time.Now().Unix()))
}

// RecordEncoderRequest records one encoder batch call.
func RecordEncoderRequest(err error) {
	if err != nil {
		EncoderRequests.WithLabelValues("error").Inc()
		return
	}
	EncoderRequests.WithLabelValues("success").Inc()
}

// RecordRetrieval records one semantic search.
func RecordRetrieval(results int, duration time.Duration) {
	RetrievalResults.Observe(float64(results))
	RetrievalDuration.Observe(duration.Seconds())
}

// RecordRecommendPath records which branch served a recommendation request.
func RecordRecommendPath(entry, path string) {
	RecommendPaths.WithLabelValues(entry, path).Inc()
}

// RecordFilterMatch counts a filter key set by the extractor.
func RecordFilterMatch(key string) {
	FilterMatches.WithLabelValues(key).Inc()
}
