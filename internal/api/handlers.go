// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package api

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemood/internal/index"
	"github.com/tomtom215/cinemood/internal/middleware"
	"github.com/tomtom215/cinemood/internal/models"
	"github.com/tomtom215/cinemood/internal/recommend"
)

// Recommender is the recommendation surface served over HTTP.
// *recommend.Orchestrator implements it.
type Recommender interface {
	RecommendByChat(ctx context.Context, text, mood string, exclude map[int]struct{}) (recommend.Result, error)
	RecommendByMood(ctx context.Context, mood string) ([]models.MovieRecord, error)
	RecommendByStory(ctx context.Context, text string, exclude map[int]struct{}) (recommend.StoryResult, error)
	MovieDetail(ctx context.Context, id int) (*models.MovieDetail, error)
	TopRated(ctx context.Context) []models.MovieRecord
	Popular(ctx context.Context) []models.MovieRecord
	EditorsChoice(ctx context.Context) []models.MovieRecord
}

// IndexInspector exposes the embedding index state. *index.Handle
// implements it.
type IndexInspector interface {
	Snapshot() *index.Snapshot
	LastRebuild() (index.BuildRecord, bool)
	BuildLog() *index.BuildLog
}

// HandlerConfig holds optional handler settings.
type HandlerConfig struct {
	// Version is reported by /health.
	Version string

	// CatalogStatus, when set, reports the upstream catalog state for
	// /health, e.g. the circuit breaker state.
	CatalogStatus func() string

	// PerfWindow is the number of recent requests kept by the performance
	// monitor. Zero uses 1000.
	PerfWindow int

	// SlowRequestThreshold is the latency above which requests are logged.
	SlowRequestThreshold time.Duration
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: response envelope, body decoding, params
//   - handlers_recommend.go: chat, mood and story endpoints
//   - handlers_movies.go: detail and list endpoints
//   - handlers_health.go: health, index status and performance endpoints
type Handler struct {
	recommender   Recommender
	index         IndexInspector
	catalogStatus func() string
	version       string
	startTime     time.Time
	perfMon       *middleware.PerformanceMonitor
	logger        zerolog.Logger
}

// NewHandler creates the API handler. idx may be nil, in which case the
// index is always reported as not ready.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHandler(rec Recommender, idx IndexInspector, cfg HandlerConfig, logger zerolog.Logger) *Handler {
	if cfg.PerfWindow <= 0 {
		cfg.PerfWindow = 1000
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	logger = logger.With().Str("component", "api").Logger()
	return &Handler{
		recommender:   rec,
		index:         idx,
		catalogStatus: cfg.CatalogStatus,
		version:       cfg.Version,
		startTime:     time.Now(),
		perfMon:       middleware.NewPerformanceMonitor(cfg.PerfWindow, cfg.SlowRequestThreshold, logger),
		logger:        logger,
	}
}

// indexReady reports whether a snapshot has been published.
func (h *Handler) indexReady() bool {
	return h.index != nil && h.index.Snapshot() != nil
}

// GetPerformanceStats returns per-endpoint latency statistics.
func (h *Handler) GetPerformanceStats() []middleware.EndpointStats {
	return h.perfMon.GetStats()
}
