// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

/*
Package middleware provides HTTP middleware shared by the CineMood API.

Key Components:

  - RequestID: X-Request-ID propagation with request and correlation ids
    placed in the logging context
  - PrometheusMetrics: request count, duration and in-flight gauge, labelled
    by the matched chi route pattern so /movies/{id} stays one series
  - Compression: gzip for clients that accept it
  - PerformanceMonitor: sliding window of request latencies with per-route
    percentiles and slow request logging

All middleware use the http.HandlerFunc form except PerformanceMonitor,
which is a func(http.Handler) http.Handler. The api package adapts the
former to chi with a small wrapper:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))
	r.Use(perfMon.Middleware)

Thread Safety:

All middleware are safe for concurrent use. PerformanceMonitor guards its
window with a RWMutex.
*/
package middleware
