// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

// Package recommend turns Turkish free text and mood labels into movie
// recommendations.
//
// # Components
//
//   - Extractor: rule-based filter extraction (genres, rating, sort, dates,
//     vote count, origin country, streaming platform, runtime)
//   - Retriever: semantic search over the embedding index with an
//     acceptance threshold and optional MMR diversity reranking
//   - MoodProfile: curated genre include/exclude lists per mood
//   - ComposeResponse: the empathetic preamble for a message
//   - CuratedLists: hand-picked title lists resolved through catalog search
//   - Orchestrator: the chat, mood and story flows
//
// # Chat flow
//
//  1. Thanks ("teşekkür", "sağ ol", ...) end the conversation with a farewell.
//  2. Without a mood the message is answered semantically (top 5, animation
//     excluded). A retrieval failure falls through to step 3.
//  3. Filters are extracted. A mood's genre profile is merged only when
//     another filter matched or the user asked for something else
//     ("başka", "beğenmedim"), and never over an explicit genre.
//  4. No filter and no such request: semantic top 8, backed by a random
//     popular catalog page, sorted by rating.
//  5. Otherwise the filters go to catalog discover, defaulting to rating
//     order with a 300 vote floor.
//
// # Extraction precedence
//
// Rules run in a fixed order and are grouped; within a group a rule only
// applies when no lower-ranked rule of the group fired:
//
//	sort:  popularity > rating
//	era:   "son yıllar" > "eski filmler" > "en yeni"/"vizyon"
//	year:  "N sonrası", "N öncesi" > "N'ler" decade > bare year
//
// The year group runs after the era group, so "son yıllar 2015 sonrası"
// ends up with a 2015 floor.
//
// # Degradation
//
// No entry point returns an upstream error. Catalog failures shrink the
// result (possibly to empty); detail and top-rated fall back to the local
// corpus. Every fallback is counted in cinemood_catalog_fallbacks_total.
//
// # Usage
//
//	orch, err := recommend.NewOrchestrator(recommend.DefaultConfig(), recommend.Deps{
//	    Catalog: tmdb,
//	    Index:   handle,
//	    Corpus:  corpus.FileSource{Path: "films.json"},
//	}, logger)
//	res, err := orch.RecommendByChat(ctx, "90 dakikadan kısa komedi filmleri", "mutlu", nil)
package recommend
