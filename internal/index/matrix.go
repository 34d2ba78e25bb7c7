// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package index

import (
	"fmt"
	"math"
	"sort"

	"github.com/tomtom215/cinemood/internal/embedding"
)

// Matrix is a dense row-major float32 matrix. Row i is the embedding of
// corpus record i.
type Matrix struct {
	Rows int
	Dim  int
	Data []float32
}

// NewMatrix allocates a zeroed rows x dim matrix.
func NewMatrix(rows, dim int) *Matrix {
	return &Matrix{Rows: rows, Dim: dim, Data: make([]float32, rows*dim)}
}

// Row returns row i as a sub-slice of Data.
func (m *Matrix) Row(i int) []float32 {
	return m.Data[i*m.Dim : (i+1)*m.Dim]
}

// SetRow copies v into row i.
func (m *Matrix) SetRow(i int, v []float32) error {
	if len(v) != m.Dim {
		return fmt.Errorf("row %d: %d dims, want %d: %w", i, len(v), m.Dim, embedding.ErrDimensionMismatch)
	}
	copy(m.Row(i), v)
	return nil
}

// Scores returns the dot product of q with every row. With unit rows and
// a unit query this is cosine similarity.
func (m *Matrix) Scores(q []float32) ([]float32, error) {
	if len(q) != m.Dim {
		return nil, fmt.Errorf("query has %d dims, index has %d: %w", len(q), m.Dim, embedding.ErrDimensionMismatch)
	}
	out := make([]float32, m.Rows)
	for i := 0; i < m.Rows; i++ {
		out[i] = embedding.Dot(m.Row(i), q)
	}
	return out, nil
}

// MaxNormError returns the largest |‖row‖ - 1| over all rows.
func (m *Matrix) MaxNormError() float64 {
	var worst float64
	for i := 0; i < m.Rows; i++ {
		if d := math.Abs(embedding.Norm(m.Row(i)) - 1); d > worst {
			worst = d
		}
	}
	return worst
}

// Candidate is a row position with its score.
type Candidate struct {
	Index int
	Score float32
}

// TopK returns the k highest scores in descending order. Equal scores keep
// the lower row first.
func TopK(scores []float32, k int) []Candidate {
	if k <= 0 || len(scores) == 0 {
		return nil
	}

	cands := make([]Candidate, len(scores))
	for i, s := range scores {
		cands[i] = Candidate{Index: i, Score: s}
	}
	sort.Slice(cands, func(a, b int) bool {
		if cands[a].Score != cands[b].Score {
			return cands[a].Score > cands[b].Score
		}
		return cands[a].Index < cands[b].Index
	})

	if k > len(cands) {
		k = len(cands)
	}
	return cands[:k]
}
