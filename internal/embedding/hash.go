// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package embedding

import (
	"context"
	"hash/fnv"
	"strings"
	"unicode"
)

// HashEncoder is a deterministic, dependency-free encoder that hashes
// lower-cased word tokens into a fixed number of buckets (the "hashing
// trick"). It has no semantic understanding beyond shared words; it exists
// for offline development and tests where no inference server is running.
type HashEncoder struct {
	dims int
}

// NewHashEncoder returns a HashEncoder producing dims-sized vectors.
func NewHashEncoder(dims int) *HashEncoder {
	if dims <= 0 {
		dims = DefaultDims
	}
	return &HashEncoder{dims: dims}
}

// Encode implements Encoder.
func (h *HashEncoder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = h.vector(t)
	}
	return out, nil
}

func (h *HashEncoder) vector(text string) []float32 {
	v := make([]float32, h.dims)
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, tok := range tokens {
		f := fnv.New64a()
		_, _ = f.Write([]byte(tok))
		sum := f.Sum64()
		idx := int(sum % uint64(h.dims))
		// The top bit picks the sign so unrelated tokens partly cancel.
		if sum>>63 == 1 {
			v[idx]--
		} else {
			v[idx]++
		}
	}
	return Normalize(v)
}

// Dimensions implements Encoder.
func (h *HashEncoder) Dimensions() int { return h.dims }

// ModelName implements Encoder.
func (h *HashEncoder) ModelName() string { return "hash-bow" }

// Ping implements Encoder.
func (h *HashEncoder) Ping(context.Context) error { return nil }

// Close implements Encoder.
func (h *HashEncoder) Close() error { return nil }
