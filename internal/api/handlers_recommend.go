// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/cinemood/internal/logging"
	"github.com/tomtom215/cinemood/internal/models"
	"github.com/tomtom215/cinemood/internal/recommend"
)

// Chat handles POST /api/v1/chat.
//
// @Summary Conversational recommendations
// @Description Reads a free-text message and an optional mood, returns up to eight movies and a reply
// @Tags Recommend
// @Accept json
// @Produce json
// @Param request body models.ChatRequest true "Chat message"
// @Success 200 {object} models.APIResponse{data=models.ChatResponse}
// @Failure 400 {object} models.APIResponse "Invalid body"
// @Router /api/v1/chat [post]
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.ChatRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	res, err := h.recommender.RecommendByChat(r.Context(), req.Message, req.Mood, req.Exclude.Set())
	if err != nil {
		h.respondRecommendError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Str("path", res.Path).
		Int("movies", len(res.Movies)).
		Msg("Chat answered")

	respondSuccess(w, models.ChatResponse{
		Movies:          nonNilMovies(res.Movies),
		ResponseMessage: res.Message,
	}, start)
}

// RecommendByMood handles POST /api/v1/recommend.
//
// @Summary Mood recommendations
// @Description Popular, well rated movies of the last ten years matching a mood
// @Tags Recommend
// @Accept json
// @Produce json
// @Param request body models.MoodRequest true "Mood"
// @Success 200 {object} models.APIResponse{data=models.MovieListResponse}
// @Router /api/v1/recommend [post]
func (h *Handler) RecommendByMood(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.MoodRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	movies, err := h.recommender.RecommendByMood(r.Context(), req.Mood)
	if err != nil {
		h.respondRecommendError(w, r, err)
		return
	}

	respondSuccess(w, models.MovieListResponse{Movies: nonNilMovies(movies)}, start)
}

// Story handles POST /api/v1/story.
//
// @Summary Story recommendations
// @Description Semantic search over the local corpus for a described plot
// @Tags Recommend
// @Accept json
// @Produce json
// @Param request body models.StoryRequest true "Story text"
// @Success 200 {object} models.APIResponse{data=models.StoryResponse}
// @Failure 400 {object} models.APIResponse "Text too short"
// @Router /api/v1/story [post]
func (h *Handler) Story(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.StoryRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	res, err := h.recommender.RecommendByStory(r.Context(), req.Text, req.Exclude.Set())
	if err != nil {
		h.respondRecommendError(w, r, err)
		return
	}

	items := res.Items
	if items == nil {
		items = []models.StoryItem{}
	}
	respondSuccess(w, models.StoryResponse{
		Results:         items,
		ResponseMessage: res.Message,
	}, start)
}

// respondRecommendError maps recommender errors onto HTTP responses.
func (h *Handler) respondRecommendError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, recommend.ErrTextTooShort):
		respondError(w, r, http.StatusBadRequest, ErrCodeTextTooShort, msgTextTooShort, nil)
	case errors.Is(err, recommend.ErrNotFound):
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, msgNotFound, nil)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		respondError(w, r, http.StatusGatewayTimeout, ErrCodeRequestTimeout, msgTimeout, err)
	default:
		respondError(w, r, http.StatusInternalServerError, ErrCodeRecommendFailed, msgFailed, err)
	}
}
