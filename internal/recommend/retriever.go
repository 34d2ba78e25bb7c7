// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package recommend

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/tomtom215/cinemood/internal/cache"
	"github.com/tomtom215/cinemood/internal/embedding"
	"github.com/tomtom215/cinemood/internal/index"
	"github.com/tomtom215/cinemood/internal/metrics"
	"github.com/tomtom215/cinemood/internal/models"
	"github.com/tomtom215/cinemood/internal/recommend/reranking"
)

// minQueryRunes is the shortest query worth encoding.
const minQueryRunes = 3

// IndexSource is the part of index.Handle the retriever needs.
type IndexSource interface {
	EnsureFresh(ctx context.Context) (*index.Snapshot, error)
	Encoder() embedding.Encoder
}

// Retriever runs semantic search over the embedding index.
type Retriever struct {
	index     IndexSource
	threshold float32
	pool      int
	mmr       *reranking.MMR
	queries   *cache.LRU[[]float32]
}

// NewRetriever creates a retriever. A zero QueryCacheSize disables the
// query embedding cache.
//
//nolint:gocritic // value receiver matches how Config is passed around
func NewRetriever(idx IndexSource, cfg Config) *Retriever {
	r := &Retriever{
		index:     idx,
		threshold: float32(cfg.AcceptanceThreshold),
		pool:      cfg.CandidatePool,
		mmr:       reranking.NewMMR(cfg.DiversityLambda),
	}
	if cfg.QueryCacheSize > 0 {
		r.queries = cache.NewLRU[[]float32]("query_vector", cfg.QueryCacheSize, 0)
	}
	return r
}

// Search returns up to k corpus records most similar to query.
//
// The index is brought up to date first. Hits are walked in descending
// score order and the walk stops at the first score below the acceptance
// threshold. Ids in exclude are skipped, as are animation records when
// excludeAnimation is set. Queries shorter than three characters return
// nothing.
func (r *Retriever) Search(ctx context.Context, query string, k int, exclude map[int]struct{}, excludeAnimation bool) ([]models.MovieRecord, error) {
	query = strings.TrimSpace(query)
	if k <= 0 || utf8.RuneCountInString(query) < minQueryRunes {
		return nil, nil
	}

	start := time.Now()
	snap, err := r.index.EnsureFresh(ctx)
	if err != nil {
		return nil, err
	}

	q, err := r.encode(ctx, query)
	if err != nil {
		return nil, err
	}
	scores, err := snap.Matrix.Scores(q)
	if err != nil {
		return nil, fmt.Errorf("score query: %w", err)
	}

	// With reranking on, collect the whole accepted pool for MMR to choose from.
	limit := k
	if r.mmr.Lambda() < 1 {
		limit = r.pool
	}

	var hits []reranking.Candidate
	for _, c := range index.TopK(scores, r.pool) {
		if c.Score < r.threshold {
			break
		}
		rec := snap.Corpus.At(c.Index)
		if _, skip := exclude[rec.ID]; skip {
			continue
		}
		if excludeAnimation && isAnimation(rec) {
			continue
		}
		hits = append(hits, reranking.Candidate{
			ID:     c.Index,
			Score:  float64(c.Score),
			Vector: snap.Matrix.Row(c.Index),
		})
		if len(hits) >= limit {
			break
		}
	}

	hits = r.mmr.Rerank(hits, k)
	out := make([]models.MovieRecord, 0, len(hits))
	for _, h := range hits {
		out = append(out, *snap.Corpus.At(h.ID))
	}

	metrics.RecordRetrieval(len(out), time.Since(start))
	return out, nil
}

func (r *Retriever) encode(ctx context.Context, query string) ([]float32, error) {
	enc := r.index.Encoder()
	key := enc.ModelName() + "\x00" + query
	if r.queries != nil {
		if v, ok := r.queries.Get(key); ok {
			return v, nil
		}
	}

	v, err := embedding.EncodeOne(ctx, enc, query)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	v = embedding.Normalize(v)
	if r.queries != nil {
		r.queries.Add(key, v)
	}
	return v, nil
}

// isAnimation reports whether a record looks animated, by genre id when
// present and otherwise by whole words of its keywords.
func isAnimation(m *models.MovieRecord) bool {
	for _, g := range m.GenreIDs {
		if g == animationGenreID {
			return true
		}
	}
	for _, kw := range m.Keywords {
		if animatedKeyword(Lower(kw)) {
			return true
		}
	}
	return false
}

func animatedKeyword(kw string) bool {
	if containsAny(kw, animationPhrases) {
		return true
	}
	for _, w := range strings.FieldsFunc(kw, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if _, ok := animationWords[w]; ok {
			return true
		}
	}
	return false
}
