// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/tomtom215/cinemood/internal/api"
	"github.com/tomtom215/cinemood/internal/config"
	"github.com/tomtom215/cinemood/internal/index"
	"github.com/tomtom215/cinemood/internal/logging"
	"github.com/tomtom215/cinemood/internal/supervisor"
	"github.com/tomtom215/cinemood/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// startupOpenTimeout bounds the first index open before the server listens.
const startupOpenTimeout = 5 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Service:   "cinemood",
		Version:   version,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("encoder", cfg.Encoder.Provider).
		Str("corpus", cfg.Corpus.Path).
		Msg("Starting CineMood")

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	if cfg.Catalog.APIKey == "" {
		logging.Warn().Msg("TMDB_API_KEY is empty, catalog requests will fail and fall back to the local corpus")
	}

	app, err := newApp(cfg, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	openCtx, cancelOpen := context.WithTimeout(ctx, startupOpenTimeout)
	if err := app.index.Open(openCtx); err != nil {
		// Not fatal: the refresh service keeps trying and readiness stays 503.
		logging.Warn().Err(err).Msg("Embedding index not ready at startup")
	}
	cancelOpen()

	if err := run(ctx, cfg, app); err != nil {
		logging.Error().Err(err).Msg("Server stopped with error")
		app.Close()
		os.Exit(1)
	}
	logging.Info().Msg("Application stopped gracefully")
}

// run serves the API under the supervisor tree until ctx is canceled.
func run(ctx context.Context, cfg *config.Config, app *application) error {
	handler := api.NewHandler(app.orchestrator, app.index, api.HandlerConfig{
		Version:       version,
		CatalogStatus: app.catalogStatus,
	}, logging.Logger())

	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(cfg.Security), cfg.Server.Timeout)

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	server := &http.Server{
		Addr:              addr,
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Leaves room for the per-request timeout plus response write.
		WriteTimeout: cfg.Server.Timeout + 10*time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout + 5*time.Second,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	tree.AddDataService(services.NewIndexRefreshService(app.index, services.IndexRefreshConfig{
		Interval: cfg.Index.RefreshInterval,
		OnRefresh: func(ctx context.Context, snap *index.Snapshot) {
			// Warm the curated lists so the first visitor does not pay
			// for dozens of title searches.
			n := len(app.orchestrator.EditorsChoice(ctx))
			logging.Debug().Int("rows", snap.Matrix.Rows).Int("editors_choice", n).Msg("Index refreshed")
		},
	}, logging.Logger()))
	tree.AddAPIService(services.NewHTTPServerService(server, addr, cfg.Server.ShutdownTimeout, logging.Logger()))

	serveErr := tree.Serve(ctx)
	logging.Info().Msg("Supervisor tree stopped")

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		return serveErr
	}
	return nil
}
