// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

/*
Package metrics provides Prometheus metrics for the CineMood server.

All collectors are registered with the default registry through promauto
and exposed at /metrics.

# Available Metrics

API:
  - cinemood_api_requests_total{method,endpoint,status}
  - cinemood_api_request_duration_seconds{method,endpoint}
  - cinemood_api_active_requests

Catalog (TMDB):
  - cinemood_catalog_requests_total{operation,outcome}
  - cinemood_catalog_request_duration_seconds{operation}
  - cinemood_catalog_fallbacks_total{path,reason}
  - cinemood_circuit_breaker_*{name}

Index and retrieval:
  - cinemood_index_rebuilds_total{reason,result}
  - cinemood_index_rebuild_duration_seconds
  - cinemood_index_rows
  - cinemood_encoder_requests_total{result}
  - cinemood_retrieval_duration_seconds
  - cinemood_retrieval_results

Recommendation flow:
  - cinemood_recommend_paths_total{entry,path}
  - cinemood_filter_matches_total{key}
  - cinemood_cache_hits_total{cache_type}, cinemood_cache_misses_total{cache_type}

# Usage

	start := time.Now()
	res, err := client.Discover(ctx, params)
	metrics.RecordCatalogRequest("discover", catalog.Outcome(err), time.Since(start))
*/
package metrics
