// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package main

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemood/internal/catalog"
	"github.com/tomtom215/cinemood/internal/config"
	"github.com/tomtom215/cinemood/internal/corpus"
	"github.com/tomtom215/cinemood/internal/embedding"
	"github.com/tomtom215/cinemood/internal/index"
	"github.com/tomtom215/cinemood/internal/recommend"
)

// application holds the long-lived components shared by the server.
type application struct {
	index        *index.Handle
	buildLog     *index.BuildLog
	cache        *catalog.CachingClient
	breaker      *catalog.CircuitBreakerClient
	orchestrator *recommend.Orchestrator
	logger       zerolog.Logger

	closeOnce sync.Once
}

// newApp wires encoder, catalog, index and orchestrator from cfg. Nothing
// here performs network I/O.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func newApp(cfg *config.Config, logger zerolog.Logger) (*application, error) {
	enc, err := newEncoder(cfg.Encoder)
	if err != nil {
		return nil, err
	}

	app := &application{logger: logger}

	var svc catalog.Service = catalog.NewClient(catalog.Config{
		BaseURL:   cfg.Catalog.BaseURL,
		APIKey:    cfg.Catalog.APIKey,
		Language:  cfg.Catalog.Language,
		Timeout:   cfg.Catalog.Timeout,
		RateLimit: cfg.Catalog.RateLimit,
		RateBurst: cfg.Catalog.RateBurst,
	}, logger)
	if cfg.Catalog.BreakerEnabled {
		app.breaker = catalog.NewCircuitBreakerClient(svc, catalog.DefaultBreakerSettings(), logger)
		svc = app.breaker
	}
	if cfg.Catalog.CacheTTL > 0 {
		app.cache = catalog.NewCachingClient(svc, cfg.Catalog.CacheTTL)
		svc = app.cache
	}

	buildLog, err := index.OpenBuildLog(cfg.Index.BuildLogPath)
	if err != nil {
		_ = enc.Close()
		return nil, fmt.Errorf("open index build log: %w", err)
	}
	app.buildLog = buildLog

	src := corpus.FileSource{Path: cfg.Corpus.Path}
	app.index = index.New(enc, src, index.Options{
		ArtifactPath: cfg.Index.ArtifactPath,
		BatchSize:    cfg.Encoder.BatchSize,
		Concurrency:  cfg.Index.RebuildConcurrency,
		BuildLog:     buildLog,
		ReuseWindow:  cfg.Index.ReuseWindow,
	}, logger)

	orch, err := recommend.NewOrchestrator(recommendConfig(cfg), recommend.Deps{
		Catalog: svc,
		Index:   app.index,
		Corpus:  src,
	}, logger)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.orchestrator = orch

	return app, nil
}

// newEncoder builds the configured text encoder.
func newEncoder(cfg config.EncoderConfig) (embedding.Encoder, error) {
	enc, err := embedding.New(cfg.Provider, embedding.HTTPConfig{
		URL:        cfg.URL,
		Model:      cfg.Model,
		Dimensions: cfg.Dimensions,
		BatchSize:  cfg.BatchSize,
		Timeout:    cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create encoder: %w", err)
	}
	return enc, nil
}

// recommendConfig maps the loaded configuration onto the orchestrator's.
func recommendConfig(cfg *config.Config) recommend.Config {
	rc := recommend.DefaultConfig()
	rc.AcceptanceThreshold = cfg.Recommend.AcceptanceThreshold
	rc.CandidatePool = cfg.Recommend.CandidatePool
	rc.ChatLimit = cfg.Recommend.ResultLimit
	rc.StoryTopK = cfg.Recommend.StoryTopK
	rc.StoryLimit = cfg.Recommend.StoryLimit
	rc.DiversityLambda = cfg.Recommend.DiversityLambda
	rc.QueryCacheSize = cfg.Recommend.QueryCacheSize
	if cfg.Recommend.CuratedCacheTTL > 0 {
		rc.CuratedCacheTTL = cfg.Recommend.CuratedCacheTTL
	}
	if cfg.Catalog.ImageBaseURL != "" {
		rc.ImageBaseURL = cfg.Catalog.ImageBaseURL
	}
	return rc
}

// catalogStatus reports the catalog breaker state for /health.
func (a *application) catalogStatus() string {
	if a.breaker == nil {
		return "unguarded"
	}
	return a.breaker.State().String()
}

// Close releases everything newApp created. Safe to call more than once.
func (a *application) Close() {
	a.closeOnce.Do(func() {
		if a.cache != nil {
			a.cache.Close()
		}
		if a.orchestrator != nil {
			a.orchestrator.Close()
		}
		if a.index != nil {
			if err := a.index.Close(); err != nil {
				a.logger.Error().Err(err).Msg("Error closing embedding index")
			}
		}
		if a.buildLog != nil {
			if err := a.buildLog.Close(); err != nil {
				a.logger.Error().Err(err).Msg("Error closing index build log")
			}
		}
	})
}
