// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package recommend

import (
	"strings"

	"github.com/tomtom215/cinemood/internal/models"
)

// MoodProfile is the curated genre filter of a mood. "|" in WithGenres
// means any of; "," in WithoutGenres excludes each.
type MoodProfile struct {
	Mood          string `json:"mood"`
	WithGenres    string `json:"with_genres,omitempty"`
	WithoutGenres string `json:"without_genres,omitempty"`
}

// ApplyTo overwrites the genre keys of fs with the profile's non-empty values.
func (p MoodProfile) ApplyTo(fs *models.FilterSet) {
	if p.WithGenres != "" {
		fs.Set(models.FilterWithGenres, p.WithGenres)
	}
	if p.WithoutGenres != "" {
		fs.Set(models.FilterWithoutGenres, p.WithoutGenres)
	}
}

var moodProfiles = map[string]MoodProfile{
	"romantik":       {WithGenres: "10749", WithoutGenres: "28,12,27,53,80,878"},
	"heyecan":        {WithGenres: "28|12|53|878", WithoutGenres: "18,10751,10402"},
	"gurur":          {WithGenres: "36|10752", WithoutGenres: "10749,35,16,27,53"},
	"uzgun":          {WithGenres: "18", WithoutGenres: "28,12,35,16,10751,14,878"},
	"mutlu":          {WithGenres: "35", WithoutGenres: "27,53,80"},
	"ofkeli":         {WithGenres: "28", WithoutGenres: "10751,16,10402,35"},
	"sikilmis":       {WithGenres: "12|35|878|28", WithoutGenres: "18,99"},
	"yalnizlik":      {WithGenres: "18", WithoutGenres: "10749,28,12,35,16,10751,53"},
	"hayalkirikligi": {WithGenres: "18", WithoutGenres: "10749,35,16,28,12,878"},
	"stresli":        {WithGenres: "35|10751|16", WithoutGenres: "27,53,80,28,9648,18"},
}

// Moods lists the supported mood labels in a stable order.
var Moods = []string{
	"romantik", "heyecan", "gurur", "uzgun", "mutlu",
	"ofkeli", "sikilmis", "yalnizlik", "hayalkirikligi", "stresli",
}

// LookupMood resolves a mood label, case-insensitively.
func LookupMood(mood string) (MoodProfile, bool) {
	key := Lower(strings.TrimSpace(mood))
	p, ok := moodProfiles[key]
	if !ok {
		return MoodProfile{}, false
	}
	p.Mood = key
	return p, true
}

// ResolveMood returns the profile of mood, or an empty profile for unknown labels.
func ResolveMood(mood string) MoodProfile {
	p, _ := LookupMood(mood)
	return p
}
