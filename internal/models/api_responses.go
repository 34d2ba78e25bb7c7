// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package models

import (
	"time"
)

// APIResponse is the envelope returned by every JSON endpoint.
//
// Status is "success" or "error". Exactly one of Data and Error is
// meaningful for a given status.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"movies": [...], "response_message": "..."},
//	  "metadata": {"timestamp": "2026-01-10T12:00:00Z", "query_time_ms": 41}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {"code": "TEXT_TOO_SHORT", "message": "Metin çok kısa."},
//	  "metadata": {"timestamp": "2026-01-10T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries timing and cache information for a response.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError is the structured error body.
//
// Common error codes:
//   - VALIDATION_ERROR: request body failed validation
//   - INVALID_JSON: request body could not be decoded
//   - TEXT_TOO_SHORT: story text under three characters
//   - NOT_FOUND: movie not in the catalog or the local corpus
//   - INDEX_NOT_READY: the embedding index has not been built yet
//   - RATE_LIMIT_EXCEEDED: too many requests
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is returned by GET /health.
type HealthStatus struct {
	Status     string            `json:"status"` // "healthy" or "degraded"
	Version    string            `json:"version"`
	Uptime     float64           `json:"uptime_seconds"`
	IndexReady bool              `json:"index_ready"`
	Components map[string]string `json:"components,omitempty"`
}
