// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package models

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// ChatRequest is the body of POST /api/v1/chat.
type ChatRequest struct {
	Message string `json:"message" validate:"required,notblank,max=2000"`
	Mood    string `json:"mood" validate:"omitempty,max=32"`
	Exclude IDList `json:"exclude" validate:"max=1000"`
}

// MoodRequest is the body of POST /api/v1/recommend. An empty or unknown
// mood is accepted and resolves to no genre constraints.
type MoodRequest struct {
	Mood string `json:"mood" validate:"omitempty,max=32"`
}

// StoryRequest is the body of POST /api/v1/story. Length under three
// characters is reported by the recommender, not by validation.
type StoryRequest struct {
	Text    string `json:"text" validate:"max=4000"`
	Exclude IDList `json:"exclude" validate:"max=1000"`
}

// IDList is a list of movie ids decoded leniently: JSON numbers and numeric
// strings are accepted, anything else is dropped.
type IDList []int

// UnmarshalJSON implements json.Unmarshaler.
func (l *IDList) UnmarshalJSON(data []byte) error {
	var raw []interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	ids := make(IDList, 0, len(raw))
	for _, v := range raw {
		switch x := v.(type) {
		case float64:
			if x == float64(int(x)) {
				ids = append(ids, int(x))
			}
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(x)); err == nil {
				ids = append(ids, n)
			}
		}
	}
	*l = ids
	return nil
}

// Set returns the ids as a lookup set.
func (l IDList) Set() map[int]struct{} {
	s := make(map[int]struct{}, len(l))
	for _, id := range l {
		s[id] = struct{}{}
	}
	return s
}
