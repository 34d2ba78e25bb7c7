// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateCatalog,
		c.validateEncoder,
		c.validateIndex,
		c.validateRecommend,
		c.validateSecurity,
		c.validateLogging,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("SERVER_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("ENVIRONMENT must be development, staging or production, got %q", c.Server.Environment)
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if err := validateHTTPURL("TMDB_BASE_URL", c.Catalog.BaseURL); err != nil {
		return err
	}
	if c.IsProduction() && c.Catalog.APIKey == "" {
		return fmt.Errorf("TMDB_API_KEY is required in production")
	}
	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("TMDB_TIMEOUT must be positive, got %v", c.Catalog.Timeout)
	}
	if c.Catalog.RateLimit < 0 {
		return fmt.Errorf("TMDB_RATE_LIMIT must be non-negative, got %v", c.Catalog.RateLimit)
	}
	if c.Catalog.RateLimit > 0 && c.Catalog.RateBurst < 1 {
		return fmt.Errorf("TMDB_RATE_BURST must be at least 1 when rate limiting is on")
	}
	return nil
}

func (c *Config) validateEncoder() error {
	switch c.Encoder.Provider {
	case "http":
		if err := validateHTTPURL("ENCODER_URL", c.Encoder.URL); err != nil {
			return err
		}
	case "hash":
	default:
		return fmt.Errorf("ENCODER_PROVIDER must be http or hash, got %q", c.Encoder.Provider)
	}
	if c.Encoder.Dimensions < 1 {
		return fmt.Errorf("ENCODER_DIMENSIONS must be positive, got %d", c.Encoder.Dimensions)
	}
	if c.Encoder.BatchSize < 1 {
		return fmt.Errorf("ENCODER_BATCH_SIZE must be positive, got %d", c.Encoder.BatchSize)
	}
	return nil
}

func (c *Config) validateIndex() error {
	if c.Corpus.Path == "" {
		return fmt.Errorf("CORPUS_PATH is required")
	}
	if c.Index.ArtifactPath == "" {
		return fmt.Errorf("INDEX_ARTIFACT_PATH is required")
	}
	if c.Index.RefreshInterval < 0 {
		return fmt.Errorf("INDEX_REFRESH_INTERVAL must be non-negative, got %v", c.Index.RefreshInterval)
	}
	if c.Index.ReuseWindow < 0 {
		return fmt.Errorf("INDEX_REUSE_WINDOW must be non-negative, got %v", c.Index.ReuseWindow)
	}
	if c.Index.RebuildConcurrency < 1 {
		return fmt.Errorf("INDEX_REBUILD_CONCURRENCY must be positive, got %d", c.Index.RebuildConcurrency)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.AcceptanceThreshold < -1 || r.AcceptanceThreshold > 1 {
		return fmt.Errorf("recommend.acceptance_threshold must be in [-1, 1], got %f", r.AcceptanceThreshold)
	}
	if r.CandidatePool < 1 {
		return fmt.Errorf("recommend.candidate_pool must be positive, got %d", r.CandidatePool)
	}
	if r.ResultLimit < 1 || r.StoryTopK < 1 || r.StoryLimit < 1 {
		return fmt.Errorf("recommend result limits must be positive")
	}
	if r.DiversityLambda < 0 || r.DiversityLambda > 1 {
		return fmt.Errorf("recommend.diversity_lambda must be in [0, 1], got %f", r.DiversityLambda)
	}
	if r.QueryCacheSize < 0 {
		return fmt.Errorf("recommend.query_cache_size must be non-negative, got %d", r.QueryCacheSize)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive")
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
		}
	}
	if c.IsProduction() {
		for _, o := range c.Security.CORSOrigins {
			if o == "*" {
				return fmt.Errorf("CORS_ORIGINS must not contain * in production")
			}
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error; got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func validateHTTPURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", name, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s must include a host, got %q", name, raw)
	}
	return nil
}
