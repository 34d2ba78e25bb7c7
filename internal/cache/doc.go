// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

/*
Package cache provides the in-process caches used by CineMood.

Two generic structures are provided:

  - Cache[V]: a TTL map with a background cleanup goroutine. Used by the
    catalog client for movie detail and title-search responses, and by the
    recommender for the curated home-page lists.
  - LRU[V]: a capacity-bounded least-recently-used cache. Used by the
    semantic retriever to keep encoded query vectors.

Both report hits and misses to Prometheus under the cache_type label passed
at construction.

# Keys

GenerateKey hashes a method name and its parameters into a compact key:

	key := cache.GenerateKey("search", struct{ Q string; Y int }{"Titanic", 1997})
	// "search:3f6a..."

# Thread Safety

All exported methods are safe for concurrent use.
*/
package cache
