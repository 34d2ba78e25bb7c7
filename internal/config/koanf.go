// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a config file, first hit wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cinemood/config.yaml",
	"/etc/cinemood/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the built-in defaults. File and env layers override these.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            5000,
			Host:            "0.0.0.0",
			Timeout:         15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Catalog: CatalogConfig{
			BaseURL:        "https://api.themoviedb.org/3",
			Language:       "tr-TR",
			ImageBaseURL:   "https://image.tmdb.org/t/p/w500",
			Timeout:        5 * time.Second,
			RateLimit:      4,
			RateBurst:      8,
			CacheTTL:       10 * time.Minute,
			BreakerEnabled: true,
		},
		Encoder: EncoderConfig{
			Provider:   "http",
			URL:        "http://127.0.0.1:8080",
			Model:      "sentence-transformers/paraphrase-multilingual-MiniLM-L12-v2",
			Dimensions: 384,
			BatchSize:  32,
			Timeout:    30 * time.Second,
		},
		Corpus: CorpusConfig{
			Path: "films.json",
		},
		Index: IndexConfig{
			ArtifactPath:       "film_embeddings_v3.bin",
			BuildLogPath:       "data/index-log",
			RefreshInterval:    15 * time.Minute,
			RebuildConcurrency: 4,
			ReuseWindow:        5 * time.Second,
		},
		Recommend: RecommendConfig{
			AcceptanceThreshold: 0.35,
			CandidatePool:       50,
			ResultLimit:         8,
			StoryTopK:           15,
			StoryLimit:          6,
			DiversityLambda:     1.0,
			QueryCacheSize:      512,
			CuratedCacheTTL:     24 * time.Hour,
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{},
			RateLimitReqs:   60,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2. An empty path falls back
// to CONFIG_PATH and DefaultConfigPaths.
func LoadWithKoanf(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// sliceConfigPaths are keys that may arrive from env as comma-separated strings.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps flat environment variable names onto koanf keys.
// Unmapped variables are ignored so unrelated env vars never leak into config.
var envMappings = map[string]string{
	"http_port":        "server.port",
	"http_host":        "server.host",
	"server_timeout":   "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	"api_key":            "catalog.api_key",
	"tmdb_api_key":       "catalog.api_key",
	"tmdb_base_url":      "catalog.base_url",
	"tmdb_language":      "catalog.language",
	"tmdb_image_base":    "catalog.image_base_url",
	"tmdb_timeout":       "catalog.timeout",
	"tmdb_rate_limit":    "catalog.rate_limit",
	"tmdb_rate_burst":    "catalog.rate_burst",
	"tmdb_cache_ttl":     "catalog.cache_ttl",
	"tmdb_breaker":       "catalog.breaker_enabled",
	"encoder_provider":   "encoder.provider",
	"encoder_url":        "encoder.url",
	"encoder_model":      "encoder.model",
	"encoder_dimensions": "encoder.dimensions",
	"encoder_batch_size": "encoder.batch_size",
	"encoder_timeout":    "encoder.timeout",

	"corpus_path":               "corpus.path",
	"index_artifact_path":       "index.artifact_path",
	"index_build_log_path":      "index.build_log_path",
	"index_refresh_interval":    "index.refresh_interval",
	"index_rebuild_concurrency": "index.rebuild_concurrency",
	"index_reuse_window":        "index.reuse_window",

	"recommend_acceptance_threshold": "recommend.acceptance_threshold",
	"recommend_candidate_pool":       "recommend.candidate_pool",
	"recommend_result_limit":         "recommend.result_limit",
	"recommend_diversity_lambda":     "recommend.diversity_lambda",
	"recommend_query_cache_size":     "recommend.query_cache_size",
	"recommend_curated_cache_ttl":    "recommend.curated_cache_ttl",

	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
