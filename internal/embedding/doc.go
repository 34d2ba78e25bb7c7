// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

// Package embedding provides text encoders producing unit-length vectors.
//
// The production encoder is HTTPEncoder, a client for a sentence-transformers
// inference server running paraphrase-multilingual-MiniLM-L12-v2 (384
// dimensions). HashEncoder is a deterministic bag-of-words fallback for
// development and tests.
//
// All encoders normalise their output, so similarity between two vectors
// is their Dot product.
package embedding
