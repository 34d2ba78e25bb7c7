// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package models

import (
	"strconv"
	"strings"
)

// DefaultImageBase is the TMDB poster CDN prefix used when no other is configured.
const DefaultImageBase = "https://image.tmdb.org/t/p/w500"

// MovieRecord is a catalog movie as stored in the local corpus and as
// returned by TMDB list endpoints.
//
// The first seven fields are the corpus record shape written by the dataset
// collector. The remaining fields are only present on live catalog results.
type MovieRecord struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	Keywords    []string `json:"keywords,omitempty"`
	PosterPath  *string  `json:"poster_path"`
	ReleaseDate *string  `json:"release_date"`
	VoteAverage *float64 `json:"vote_average"`

	OriginalTitle string  `json:"original_title,omitempty"`
	GenreIDs      []int   `json:"genre_ids,omitempty"`
	Popularity    float64 `json:"popularity,omitempty"`
	VoteCount     int     `json:"vote_count,omitempty"`
}

// Rating returns the average rating, or 0 when absent.
func (m *MovieRecord) Rating() float64 {
	if m.VoteAverage == nil {
		return 0
	}
	return *m.VoteAverage
}

// HasPoster reports whether the record carries a non-empty poster path.
func (m *MovieRecord) HasPoster() bool {
	return m.PosterPath != nil && *m.PosterPath != ""
}

// PosterURL joins the poster path onto imageBase. Paths that are already
// absolute URLs are returned unchanged; records without a poster yield "".
func (m *MovieRecord) PosterURL(imageBase string) string {
	if !m.HasPoster() {
		return ""
	}
	p := *m.PosterPath
	if strings.HasPrefix(p, "http") {
		return p
	}
	return imageBase + p
}

// Year returns the release year, or 0 when the date is absent or malformed.
func (m *MovieRecord) Year() int {
	if m.ReleaseDate == nil || len(*m.ReleaseDate) < 4 {
		return 0
	}
	y, err := strconv.Atoi((*m.ReleaseDate)[:4])
	if err != nil {
		return 0
	}
	return y
}

// EmbeddingText is the text encoded for this record in the embedding
// index: title, overview and at most maxKeywords keywords.
func (m *MovieRecord) EmbeddingText(maxKeywords int) string {
	kws := m.Keywords
	if maxKeywords >= 0 && len(kws) > maxKeywords {
		kws = kws[:maxKeywords]
	}
	s := m.Title + " " + m.Overview + " " + strings.Join(kws, " ")
	return strings.TrimSpace(s)
}

// Genre is a TMDB genre reference.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CastMember is one entry of a movie's cast.
type CastMember struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character,omitempty"`
	ProfilePath *string `json:"profile_path,omitempty"`
	Order       int     `json:"order"`
}

// CrewMember is one entry of a movie's crew.
type CrewMember struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Job        string `json:"job,omitempty"`
	Department string `json:"department,omitempty"`
}

// Credits holds cast and crew. Both slices are always non-nil in API
// output so clients can iterate without null checks.
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// EmptyCredits returns a Credits value with empty, non-nil slices.
func EmptyCredits() Credits {
	return Credits{Cast: []CastMember{}, Crew: []CrewMember{}}
}

// MovieDetail is the single-movie view: the record plus detail-only fields
// and credits (TMDB append_to_response=credits).
type MovieDetail struct {
	MovieRecord
	Runtime  int     `json:"runtime,omitempty"`
	Tagline  string  `json:"tagline,omitempty"`
	Genres   []Genre `json:"genres,omitempty"`
	Homepage string  `json:"homepage,omitempty"`
	IMDbID   string  `json:"imdb_id,omitempty"`
	Credits  Credits `json:"credits"`

	// Source is "catalog" or "corpus" depending on which tier answered.
	Source string `json:"source"`
}

// StoryItem is the compact shape returned by the story endpoint.
type StoryItem struct {
	TMDBID      int      `json:"tmdbId"`
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	ReleaseDate *string  `json:"release_date"`
	VoteAverage *float64 `json:"vote_average"`
	Poster      string   `json:"poster"`
}

// NewStoryItem projects a record onto the story shape.
func NewStoryItem(m *MovieRecord, imageBase string) StoryItem {
	poster := imageBase
	if m.PosterPath != nil {
		poster += *m.PosterPath
	}
	return StoryItem{
		TMDBID:      m.ID,
		Title:       m.Title,
		Overview:    m.Overview,
		ReleaseDate: m.ReleaseDate,
		VoteAverage: m.VoteAverage,
		Poster:      poster,
	}
}

// ChatResponse is returned by the chat and story endpoints.
type ChatResponse struct {
	Movies          []MovieRecord `json:"movies"`
	ResponseMessage string        `json:"response_message"`
}

// StoryResponse is returned by the story endpoint.
type StoryResponse struct {
	Results         []StoryItem `json:"results"`
	ResponseMessage string      `json:"response_message"`
}

// MovieListResponse is returned by the mood and list endpoints.
type MovieListResponse struct {
	Movies []MovieRecord `json:"movies"`
}
