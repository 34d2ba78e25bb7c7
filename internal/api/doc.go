// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

/*
Package api provides the HTTP REST API layer for CineMood.

Routes:

	POST /api/v1/chat                   free-text chat recommendations
	POST /api/v1/recommend              mood recommendations
	POST /api/v1/story                  plot description search
	GET  /api/v1/movies/{id}            movie detail
	GET  /api/v1/movies/top-rated       top rated list
	GET  /api/v1/movies/popular         curated box office list
	GET  /api/v1/movies/editors-choice  curated editors' picks
	GET  /api/v1/index/status           embedding index state and rebuild history
	GET  /api/v1/stats/performance      per-route latency percentiles
	GET  /api/v1/health/live            liveness probe
	GET  /api/v1/health/ready           readiness probe (503 until the index is built)
	GET  /health                        service health
	GET  /metrics                       Prometheus metrics

Every JSON endpoint answers with the models.APIResponse envelope. Errors carry
a stable code (see errors.go) and a Turkish message meant for the end user.

Middleware:

Global: request id with logging context, real IP, panic recovery, CORS
(go-chi/cors) and the latency monitor. The /api/v1 group adds per-IP rate
limiting (go-chi/httprate), security headers, Prometheus instrumentation,
gzip and a per-request timeout.

Usage Example:

	handler := api.NewHandler(orchestrator, indexHandle, api.HandlerConfig{Version: version}, logger)
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(cfg.Security), cfg.Server.Timeout)
	srv := &http.Server{Addr: ":5000", Handler: router.SetupChi()}

The handler depends on the Recommender and IndexInspector interfaces, so
tests substitute fakes for the orchestrator and the index.
*/
package api
