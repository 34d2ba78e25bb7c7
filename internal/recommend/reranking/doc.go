// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

// Package reranking reorders semantic retrieval hits for diversity.
//
// Semantic search over plot embeddings tends to return near-duplicates:
// three entries of the same franchise for a "space adventure" query.
// Maximal Marginal Relevance trades some relevance for variety by
// penalising candidates similar to those already picked:
//
//	MMR = argmax[lambda * score(i) - (1-lambda) * max_similarity(i, selected)]
//
// Lambda Guidelines:
//   - 1.0: pure relevance, the list is returned unchanged (default)
//   - 0.7-0.9: balanced
//   - below 0.5: diversity-focused, may surface weak matches early
//
// Similarity is the cosine of the two embeddings. Reranking only reorders
// hits that already passed the acceptance threshold, so it never admits a
// weaker match into the result.
//
// # Performance
//
//   - Time: O(k * n^2) where k = output size, n = input size
//   - Space: O(n^2) for the similarity matrix
//
// n is bounded by the retriever's candidate pool (50), so the matrix stays small.
//
// MMR is stateless and safe for concurrent use.
package reranking
