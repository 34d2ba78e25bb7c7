// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package reranking

import (
	"testing"
)

func TestNewMMR(t *testing.T) {
	tests := []struct {
		name       string
		lambda     float64
		wantLambda float64
	}{
		{"normal value", 0.7, 0.7},
		{"zero value", 0.0, 0.0},
		{"one value", 1.0, 1.0},
		{"negative clamped to zero", -0.5, 0.0},
		{"above one clamped to one", 1.5, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mmr := NewMMR(tt.lambda)
			if mmr.Lambda() != tt.wantLambda {
				t.Errorf("lambda = %f, want %f", mmr.Lambda(), tt.wantLambda)
			}
		})
	}
}

func TestMMR_Name(t *testing.T) {
	if NewMMR(0.7).Name() != "mmr" {
		t.Error("Name() should be mmr")
	}
}

// Items 1, 2 and 4 share a direction; 3 and 5 are orthogonal to them.
func testItems() []Candidate {
	return []Candidate{
		{ID: 1, Score: 0.90, Vector: []float32{1, 0, 0}},
		{ID: 2, Score: 0.85, Vector: []float32{1, 0, 0}},
		{ID: 3, Score: 0.80, Vector: []float32{0, 1, 0}},
		{ID: 4, Score: 0.75, Vector: []float32{1, 0, 0}},
		{ID: 5, Score: 0.70, Vector: []float32{0, 0, 1}},
	}
}

func ids(items []Candidate) []int {
	out := make([]int, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return out
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMMR_Rerank(t *testing.T) {
	tests := []struct {
		name   string
		lambda float64
		k      int
		want   []int
	}{
		{"lambda one keeps order", 1.0, 5, []int{1, 2, 3, 4, 5}},
		{"lambda one truncates", 1.0, 2, []int{1, 2}},
		{"balanced pushes duplicates down", 0.5, 3, []int{1, 3, 5}},
		{"k above len", 1.0, 10, []int{1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(NewMMR(tt.lambda).Rerank(testItems(), tt.k))
			if !equalIDs(got, tt.want) {
				t.Errorf("Rerank = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMMR_RerankIsPermutationOfInput(t *testing.T) {
	in := testItems()
	out := NewMMR(0.3).Rerank(in, len(in))

	seen := make(map[int]bool)
	for _, c := range out {
		if seen[c.ID] {
			t.Fatalf("duplicate id %d in %v", c.ID, ids(out))
		}
		seen[c.ID] = true
	}
	if len(out) != len(in) {
		t.Errorf("len = %d, want %d", len(out), len(in))
	}
	if out[0].ID != 1 {
		t.Errorf("first pick must be the most relevant, got %d", out[0].ID)
	}
}

func TestMMR_EmptyAndZeroK(t *testing.T) {
	m := NewMMR(0.5)
	if got := m.Rerank(nil, 5); len(got) != 0 {
		t.Errorf("nil input = %v", got)
	}
	if got := m.Rerank(testItems(), 0); len(got) != 5 {
		t.Errorf("k=0 should return input unchanged, got %d", len(got))
	}
}
