// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

/*
Package main is the entry point for the CineMood API server.

CineMood recommends movies from a Turkish chat message, a mood, or a
free-text story. Story and open-ended chat requests are answered by cosine
search over a sentence-embedding index of a local movie corpus; filtered
requests go to the TMDB discover API.

# Application Architecture

	RootSupervisor ("cinemood")
	├── DataSupervisor ("data-layer")
	│   └── IndexRefreshService (re-checks corpus/index alignment)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService (chi router)

Component initialization order:

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog with JSON or console output
 3. Encoder: HTTP sentence-transformers client, or the offline hash encoder
 4. Catalog: TMDB client, circuit breaker, response cache
 5. Index: corpus file, embedding artifact, build log
 6. Recommendation orchestrator
 7. HTTP handlers and router
 8. Supervisor tree

The index is opened before the server starts listening. When the encoder is
unreachable at startup the server still starts; /api/v1/health/ready stays
503 until the refresh service publishes a snapshot.

# Configuration

	HTTP_PORT=5000
	TMDB_API_KEY=...
	TMDB_LANGUAGE=tr-TR
	ENCODER_URL=http://embedder:8080
	CORPUS_PATH=/data/movies_corpus.json
	INDEX_ARTIFACT_PATH=/data/film_embeddings_v3.bin
	INDEX_REFRESH_INTERVAL=15m
	LOG_LEVEL=info
	LOG_FORMAT=json

See internal/config for the full list.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains
in-flight requests within SHUTDOWN_TIMEOUT, then the catalog cache,
orchestrator, index handle and build log are closed in that order.
*/
package main
