// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package reranking

// Candidate is one accepted retrieval hit: its relevance to the query and
// its unit-length embedding.
type Candidate struct {
	ID     int
	Score  float64
	Vector []float32
}

// MMR implements Maximal Marginal Relevance reranking.
//
//	MMR = argmax[lambda * score(i) - (1-lambda) * max(sim(i, s)) for s in selected]
//
// sim is the cosine similarity of the two embeddings, which for unit
// vectors is their dot product.
//
// Reference:
// Carbonell, J., & Goldstein, J. (1998). "The Use of MMR, Diversity-Based
// Reranking for Reordering Documents and Producing Summaries." SIGIR 1998.
type MMR struct {
	// Lambda balances relevance vs. diversity (0.0 to 1.0)
	lambda float64
}

// NewMMR creates a new MMR reranker. Lambda is clamped to [0, 1].
func NewMMR(lambda float64) *MMR {
	if lambda < 0 {
		lambda = 0
	}
	if lambda > 1 {
		lambda = 1
	}
	return &MMR{lambda: lambda}
}

// Name returns the reranker identifier.
func (m *MMR) Name() string {
	return "mmr"
}

// Lambda returns the relevance weight.
func (m *MMR) Lambda() float64 {
	return m.lambda
}

// Rerank selects up to k candidates greedily. Items must arrive in
// descending score order; with lambda 1.0 they are returned unchanged,
// truncated to k. Ties keep the earlier, more relevant item.
func (m *MMR) Rerank(items []Candidate, k int) []Candidate {
	if len(items) == 0 || k <= 0 {
		return items
	}
	k = min(k, len(items))
	if m.lambda >= 1.0 {
		return items[:k]
	}

	// redundancy[i] is the highest similarity of item i to anything picked
	// so far, floored at zero. It is updated once per pick, so each pair is
	// compared at most once.
	redundancy := make([]float64, len(items))
	picked := make([]bool, len(items))
	out := make([]Candidate, 0, k)

	for len(out) < k {
		best := -1
		var bestScore float64
		for i, c := range items {
			if picked[i] {
				continue
			}
			score := m.lambda*c.Score - (1-m.lambda)*redundancy[i]
			if best < 0 || score > bestScore {
				best, bestScore = i, score
			}
		}

		picked[best] = true
		chosen := items[best]
		out = append(out, chosen)

		for i := range items {
			if !picked[i] {
				redundancy[i] = max(redundancy[i], dot(items[i].Vector, chosen.Vector))
			}
		}
	}
	return out
}

// dot is the cosine similarity of two unit vectors, 0 when lengths differ.
func dot(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
