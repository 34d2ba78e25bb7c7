// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

/*
Package models defines the data structures shared across CineMood.

Key Components:

  - MovieRecord: a catalog movie, in the shape of the local corpus file
  - MovieDetail: a single movie with credits
  - FilterSet: the transient set of catalog discover parameters built from
    free text and mood profiles
  - APIResponse, APIError, Metadata: the JSON envelope of every endpoint
  - ChatRequest, MoodRequest, StoryRequest: validated request bodies

JSON is encoded with goccy/go-json throughout.
*/
package models
