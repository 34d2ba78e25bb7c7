// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cinemood/internal/index"
	"github.com/tomtom215/cinemood/internal/logging"
	"github.com/tomtom215/cinemood/internal/middleware"
	"github.com/tomtom215/cinemood/internal/models"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

// IndexStatus describes the published embedding index and its rebuilds.
type IndexStatus struct {
	Ready       bool                `json:"ready"`
	Rows        int                 `json:"rows"`
	Dim         int                 `json:"dim"`
	Model       string              `json:"model,omitempty"`
	LoadedAt    *time.Time          `json:"loaded_at,omitempty"`
	LastRebuild *index.BuildRecord  `json:"last_rebuild,omitempty"`
	History     []index.BuildRecord `json:"history"`
}

// Health handles GET /health.
//
// @Summary Service health
// @Description Reports uptime, index readiness and catalog state. Always 200; see /api/v1/health/ready for probes.
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus}
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ready := h.indexReady()

	components := map[string]string{"index": "not_ready"}
	if ready {
		components["index"] = "ready"
	}
	if h.catalogStatus != nil {
		components["catalog"] = h.catalogStatus()
	}

	status := "healthy"
	if !ready {
		status = "degraded"
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.HealthStatus{
			Status:     status,
			Version:    h.version,
			Uptime:     time.Since(h.startTime).Seconds(),
			IndexReady: ready,
			Components: components,
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthLive handles GET /api/v1/health/live. The process answering is
// enough.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]string{"status": "alive"},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthReady handles GET /api/v1/health/ready. It answers 503 until the
// first index snapshot is published.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if !h.indexReady() {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeIndexNotReady, msgNotReady, nil)
		return
	}
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]string{"status": "ready"},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// IndexStatusHandler handles GET /api/v1/index/status.
//
// @Summary Embedding index status
// @Description Published snapshot, last rebuild and recent rebuild history
// @Tags Core
// @Produce json
// @Param limit query int false "History entries (default 10, max 100)"
// @Success 200 {object} models.APIResponse{data=IndexStatus}
// @Router /api/v1/index/status [get]
func (h *Handler) IndexStatusHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := IndexStatus{History: []index.BuildRecord{}}

	if h.index == nil {
		respondSuccess(w, status, start)
		return
	}

	if snap := h.index.Snapshot(); snap != nil {
		loadedAt := snap.LoadedAt
		status.Ready = true
		status.Rows = snap.Matrix.Rows
		status.Dim = snap.Matrix.Dim
		status.Model = snap.Model
		status.LoadedAt = &loadedAt
	}

	if rec, ok := h.index.LastRebuild(); ok {
		status.LastRebuild = &rec
	}

	if buildLog := h.index.BuildLog(); buildLog != nil {
		limit := getIntParam(r, "limit", defaultHistoryLimit)
		if limit < 1 {
			limit = defaultHistoryLimit
		}
		if limit > maxHistoryLimit {
			limit = maxHistoryLimit
		}
		history, err := buildLog.Recent(limit)
		if err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Failed to read index build log")
		} else if len(history) > 0 {
			status.History = history
			if status.LastRebuild == nil {
				last := history[0]
				status.LastRebuild = &last
			}
		}
	}

	respondSuccess(w, status, start)
}

// PerformanceStats handles GET /api/v1/stats/performance.
func (h *Handler) PerformanceStats(w http.ResponseWriter, r *http.Request) {
	stats := h.GetPerformanceStats()
	if stats == nil {
		stats = []middleware.EndpointStats{}
	}
	respondSuccess(w, stats, time.Now())
}
