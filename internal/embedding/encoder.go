// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package embedding

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// ErrDimensionMismatch is returned when a vector does not have the
// dimension the encoder or index expects.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// Encoder turns text into unit-length vectors.
//
// Implementations must return exactly one vector per input text, each of
// length Dimensions(), L2-normalised so that a dot product equals cosine
// similarity.
type Encoder interface {
	// Encode embeds texts in order.
	Encode(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the vector size (384 for MiniLM-L12).
	Dimensions() int

	// ModelName returns the model identifier, recorded in the index build log.
	ModelName() string

	// Ping checks the encoder is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// Encoder providers accepted by New.
const (
	ProviderHTTP = "http"
	ProviderHash = "hash"
)

// New builds the encoder for provider. The hash provider only uses
// cfg.Dimensions.
//
//nolint:gocritic // HTTPConfig is passed by value like the other constructors
func New(provider string, cfg HTTPConfig) (Encoder, error) {
	switch provider {
	case ProviderHash:
		return NewHashEncoder(cfg.Dimensions), nil
	case ProviderHTTP, "":
		enc, err := NewHTTPEncoder(cfg)
		if err != nil {
			return nil, err
		}
		return enc, nil
	default:
		return nil, fmt.Errorf("unknown encoder provider %q", provider)
	}
}

// EncodeOne embeds a single text.
func EncodeOne(ctx context.Context, enc Encoder, text string) ([]float32, error) {
	vecs, err := enc.Encode(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) != 1 {
		return nil, fmt.Errorf("encoder returned %d vectors for 1 text", len(vecs))
	}
	return vecs[0], nil
}

// Normalize scales v to unit L2 norm in place and returns it. The zero
// vector is returned unchanged.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	inv := float32(1 / math.Sqrt(sum))
	for i := range v {
		v[i] *= inv
	}
	return v
}

// Norm returns the L2 norm of v.
func Norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// Dot returns the dot product of a and b. It panics if the lengths differ.
func Dot(a, b []float32) float32 {
	if len(a) != len(b) {
		panic(fmt.Sprintf("embedding.Dot: length %d != %d", len(a), len(b)))
	}
	var s float32
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// checkVectors validates count and dimension of an encoder reply and
// normalises every vector.
func checkVectors(vecs [][]float32, want, dims int) error {
	if len(vecs) != want {
		return fmt.Errorf("encoder returned %d vectors for %d texts", len(vecs), want)
	}
	for i, v := range vecs {
		if len(v) != dims {
			return fmt.Errorf("vector %d has %d dims, want %d: %w", i, len(v), dims, ErrDimensionMismatch)
		}
		Normalize(v)
	}
	return nil
}
