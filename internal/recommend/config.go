// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/cinemood/internal/models"
)

// Config contains the tunables of the recommendation flow.
type Config struct {
	// AcceptanceThreshold is the minimum cosine similarity of a semantic hit.
	AcceptanceThreshold float64

	// CandidatePool is how many top-scoring rows the retriever walks.
	CandidatePool int

	// ChatLimit caps chat results (semantic and discover paths).
	ChatLimit int

	// ChatStoryLimit caps semantic results when chat arrives without a mood.
	ChatStoryLimit int

	// StoryTopK and StoryLimit: the story endpoint over-fetches StoryTopK
	// hits, drops ids missing from the corpus, then keeps StoryLimit.
	StoryTopK  int
	StoryLimit int

	// TopRatedLimit caps the top-rated list, from either tier.
	TopRatedLimit int

	// DiversityLambda is the MMR relevance weight; 1.0 disables reranking.
	DiversityLambda float64

	// QueryCacheSize bounds the query embedding LRU. Zero disables it.
	QueryCacheSize int

	// CuratedCacheTTL is how long a resolved curated list is served from memory.
	CuratedCacheTTL time.Duration

	// CuratedConcurrency bounds parallel title searches per curated list.
	CuratedConcurrency int

	// ImageBaseURL prefixes poster paths in story results.
	ImageBaseURL string

	// Seed seeds the random page picker. Zero seeds from the clock.
	Seed int64
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		AcceptanceThreshold: 0.35,
		CandidatePool:       50,
		ChatLimit:           8,
		ChatStoryLimit:      5,
		StoryTopK:           15,
		StoryLimit:          6,
		TopRatedLimit:       40,
		DiversityLambda:     1.0,
		QueryCacheSize:      512,
		CuratedCacheTTL:     24 * time.Hour,
		CuratedConcurrency:  4,
		ImageBaseURL:        models.DefaultImageBase,
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocritic // value receiver matches how Config is passed around
func (c Config) Validate() error {
	if c.AcceptanceThreshold < -1 || c.AcceptanceThreshold > 1 {
		return fmt.Errorf("acceptance_threshold must be in [-1, 1], got %f", c.AcceptanceThreshold)
	}
	if c.CandidatePool < 1 {
		return fmt.Errorf("candidate_pool must be positive, got %d", c.CandidatePool)
	}
	if c.ChatLimit < 1 || c.ChatStoryLimit < 1 {
		return fmt.Errorf("chat limits must be positive")
	}
	if c.StoryTopK < 1 || c.StoryLimit < 1 {
		return fmt.Errorf("story limits must be positive")
	}
	if c.TopRatedLimit < 1 {
		return fmt.Errorf("top_rated_limit must be positive, got %d", c.TopRatedLimit)
	}
	if c.DiversityLambda < 0 || c.DiversityLambda > 1 {
		return fmt.Errorf("diversity_lambda must be in [0, 1], got %f", c.DiversityLambda)
	}
	if c.QueryCacheSize < 0 {
		return fmt.Errorf("query_cache_size must be non-negative, got %d", c.QueryCacheSize)
	}
	if c.CuratedConcurrency < 1 {
		return fmt.Errorf("curated_concurrency must be positive, got %d", c.CuratedConcurrency)
	}
	return nil
}
