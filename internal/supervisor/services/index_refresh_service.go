// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemood/internal/index"
)

// defaultRefreshTimeout bounds one freshness check. A full rebuild of a
// few thousand records through a remote encoder fits comfortably.
const defaultRefreshTimeout = 30 * time.Minute

// IndexRefresher is the part of *index.Handle the service drives.
type IndexRefresher interface {
	EnsureFresh(ctx context.Context) (*index.Snapshot, error)
}

// IndexRefreshConfig holds configuration for the refresh service.
type IndexRefreshConfig struct {
	// Interval is how often staleness is re-checked. Zero checks only at
	// startup.
	Interval time.Duration

	// Timeout bounds each check. Zero uses 30 minutes.
	Timeout time.Duration

	// OnRefresh, when set, runs after every successful check, e.g. to warm
	// caches that depend on the corpus.
	OnRefresh func(ctx context.Context, snap *index.Snapshot)
}

// IndexRefreshService keeps the embedding index aligned with the corpus.
//
// It runs EnsureFresh once at startup and then on every tick. Failures are
// logged and retried on the next tick; they never return from Serve, so an
// unreachable encoder cannot exhaust the supervisor's restart budget.
type IndexRefreshService struct {
	index  IndexRefresher
	config IndexRefreshConfig
	logger zerolog.Logger
	name   string
}

// NewIndexRefreshService creates the refresh service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewIndexRefreshService(idx IndexRefresher, cfg IndexRefreshConfig, logger zerolog.Logger) *IndexRefreshService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultRefreshTimeout
	}
	return &IndexRefreshService{
		index:  idx,
		config: cfg,
		logger: logger.With().Str("service", "index-refresh").Logger(),
		name:   "index-refresh",
	}
}

// Serve implements suture.Service.
func (s *IndexRefreshService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.config.Interval).
		Msg("Index refresh service starting")

	s.refresh(ctx)

	if s.config.Interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Index refresh service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

// refresh runs one bounded freshness check.
func (s *IndexRefreshService) refresh(ctx context.Context) {
	checkCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	snap, err := s.index.EnsureFresh(checkCtx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Error().Err(err).Msg("Index freshness check failed, serving previous snapshot")
		return
	}

	s.logger.Debug().
		Int("rows", snap.Matrix.Rows).
		Dur("duration", time.Since(start)).
		Msg("Index is fresh")

	if s.config.OnRefresh != nil {
		s.config.OnRefresh(ctx, snap)
	}
}

// String returns the service name for logging.
func (s *IndexRefreshService) String() string {
	return s.name
}
