// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemood/internal/config"
	"github.com/tomtom215/cinemood/internal/embedding"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv(config.ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	cfg, err := config.LoadWithKoanf("")
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}
	dir := t.TempDir()
	cfg.Encoder.Provider = "hash"
	cfg.Encoder.Dimensions = 16
	cfg.Corpus.Path = filepath.Join(dir, "corpus.json")
	cfg.Index.ArtifactPath = filepath.Join(dir, "emb.bin")
	cfg.Index.BuildLogPath = ""
	return cfg
}

func TestNewEncoder(t *testing.T) {
	enc, err := newEncoder(config.EncoderConfig{Provider: "hash", Dimensions: 32})
	if err != nil {
		t.Fatalf("newEncoder(hash): %v", err)
	}
	if _, ok := enc.(*embedding.HashEncoder); !ok {
		t.Errorf("hash provider built %T", enc)
	}
	if enc.Dimensions() != 32 {
		t.Errorf("Dimensions() = %d, want 32", enc.Dimensions())
	}

	enc, err = newEncoder(config.EncoderConfig{
		Provider:   "http",
		URL:        "http://localhost:8080",
		Model:      "test-model",
		Dimensions: 384,
		BatchSize:  8,
		Timeout:    time.Second,
	})
	if err != nil {
		t.Fatalf("newEncoder(http): %v", err)
	}
	if _, ok := enc.(*embedding.HTTPEncoder); !ok {
		t.Errorf("http provider built %T", enc)
	}
}

func TestRecommendConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Recommend.ResultLimit = 12
	cfg.Recommend.DiversityLambda = 0.7
	cfg.Recommend.CuratedCacheTTL = 0
	cfg.Catalog.ImageBaseURL = "https://img.example/w300"

	rc := recommendConfig(cfg)
	if rc.ChatLimit != 12 {
		t.Errorf("ChatLimit = %d, want 12", rc.ChatLimit)
	}
	if rc.DiversityLambda != 0.7 {
		t.Errorf("DiversityLambda = %v, want 0.7", rc.DiversityLambda)
	}
	if rc.CuratedCacheTTL != 24*time.Hour {
		t.Errorf("CuratedCacheTTL = %v, zero should keep the default", rc.CuratedCacheTTL)
	}
	if rc.ImageBaseURL != "https://img.example/w300" {
		t.Errorf("ImageBaseURL = %q", rc.ImageBaseURL)
	}
	if err := rc.Validate(); err != nil {
		t.Errorf("mapped config should validate: %v", err)
	}
}

func TestNewApp_WiresComponents(t *testing.T) {
	cfg := testConfig(t)
	cfg.Catalog.BreakerEnabled = true
	cfg.Catalog.CacheTTL = time.Minute

	app, err := newApp(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	defer app.Close()

	if app.index == nil || app.orchestrator == nil {
		t.Fatal("index and orchestrator must be wired")
	}
	if app.cache == nil || app.breaker == nil {
		t.Error("cache and breaker should be enabled")
	}
	if got := app.catalogStatus(); got != "closed" {
		t.Errorf("catalogStatus() = %q, want closed", got)
	}
	if app.index.Snapshot() != nil {
		t.Error("newApp must not load the index")
	}

	app.Close()
	app.Close()
}

func TestNewApp_WithoutBreaker(t *testing.T) {
	cfg := testConfig(t)
	cfg.Catalog.BreakerEnabled = false
	cfg.Catalog.CacheTTL = 0

	app, err := newApp(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	defer app.Close()

	if app.cache != nil || app.breaker != nil {
		t.Error("cache and breaker should be disabled")
	}
	if got := app.catalogStatus(); got != "unguarded" {
		t.Errorf("catalogStatus() = %q, want unguarded", got)
	}
}
