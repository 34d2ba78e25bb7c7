// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package config

import (
	"time"
)

// Config is the root configuration for the CineMood server and indexer.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Encoder   EncoderConfig   `koanf:"encoder"`
	Corpus    CorpusConfig    `koanf:"corpus"`
	Index     IndexConfig     `koanf:"index"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`          // per-request handler timeout
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"` // graceful shutdown budget
	Environment     string        `koanf:"environment"`      // development, staging, production
}

// CatalogConfig holds TMDB client settings.
//
// Environment Variables:
//   - TMDB_API_KEY (or API_KEY): TMDB v3 API key
//   - TMDB_BASE_URL: API root (default: https://api.themoviedb.org/3)
//   - TMDB_LANGUAGE: response language (default: tr-TR)
//   - TMDB_TIMEOUT: per-request timeout (default: 5s)
//   - TMDB_RATE_LIMIT: outbound requests per second (default: 4)
type CatalogConfig struct {
	BaseURL        string        `koanf:"base_url"`
	APIKey         string        `koanf:"api_key"`
	Language       string        `koanf:"language"`
	ImageBaseURL   string        `koanf:"image_base_url"`
	Timeout        time.Duration `koanf:"timeout"`
	RateLimit      float64       `koanf:"rate_limit"`
	RateBurst      int           `koanf:"rate_burst"`
	CacheTTL       time.Duration `koanf:"cache_ttl"`
	BreakerEnabled bool          `koanf:"breaker_enabled"`
}

// EncoderConfig selects the text encoder.
//
// Provider "http" talks to a sentence-embedding inference server at URL.
// Provider "hash" uses the built-in hashing encoder, which needs no server
// and suits local development and tests.
type EncoderConfig struct {
	Provider   string        `koanf:"provider"`
	URL        string        `koanf:"url"`
	Model      string        `koanf:"model"`
	Dimensions int           `koanf:"dimensions"`
	BatchSize  int           `koanf:"batch_size"`
	Timeout    time.Duration `koanf:"timeout"`
}

// CorpusConfig locates the curated movie dataset.
type CorpusConfig struct {
	Path string `koanf:"path"`
}

// IndexConfig controls the embedding artifact and its refresh schedule.
type IndexConfig struct {
	// ArtifactPath is the binary embedding matrix written next to the corpus.
	ArtifactPath string `koanf:"artifact_path"`

	// BuildLogPath is a BadgerDB directory recording every rebuild.
	// Empty disables the build log.
	BuildLogPath string `koanf:"build_log_path"`

	// RefreshInterval is how often the supervisor re-checks staleness.
	// Zero only checks at startup.
	RefreshInterval time.Duration `koanf:"refresh_interval"`

	// RebuildConcurrency bounds in-flight encoder batches during a rebuild.
	RebuildConcurrency int `koanf:"rebuild_concurrency"`

	// ReuseWindow lets concurrent requests share one corpus reload.
	// Zero reloads films.json on every request.
	ReuseWindow time.Duration `koanf:"reuse_window"`
}

// RecommendConfig holds tunables of the recommendation flow.
type RecommendConfig struct {
	AcceptanceThreshold float64       `koanf:"acceptance_threshold"`
	CandidatePool       int           `koanf:"candidate_pool"`
	ResultLimit         int           `koanf:"result_limit"`
	StoryTopK           int           `koanf:"story_top_k"`
	StoryLimit          int           `koanf:"story_limit"`
	DiversityLambda     float64       `koanf:"diversity_lambda"`
	QueryCacheSize      int           `koanf:"query_cache_size"`
	CuratedCacheTTL     time.Duration `koanf:"curated_cache_ttl"`
}

// SecurityConfig holds HTTP edge protections.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Load reads configuration with the following precedence, lowest first:
//
//  1. Built-in defaults
//  2. Config file (CONFIG_PATH, or config.yaml in the working directory)
//  3. Environment variables
func Load() (*Config, error) {
	return LoadWithKoanf("")
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
