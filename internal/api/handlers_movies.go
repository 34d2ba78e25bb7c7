// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cinemood/internal/models"
)

// listCacheAge is how long browsers may reuse curated and top-rated lists.
const listCacheAge = 5 * time.Minute

// MovieDetail handles GET /api/v1/movies/{id}.
//
// @Summary Movie detail
// @Description Catalog detail with credits, or the corpus record when the catalog is unavailable
// @Tags Movies
// @Produce json
// @Param id path int true "TMDB movie id"
// @Success 200 {object} models.APIResponse{data=models.MovieDetail}
// @Failure 404 {object} models.APIResponse "Movie not found"
// @Router /api/v1/movies/{id} [get]
func (h *Handler) MovieDetail(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		respondError(w, r, http.StatusBadRequest, ErrCodeInvalidID, msgInvalidID, nil)
		return
	}

	detail, err := h.recommender.MovieDetail(r.Context(), id)
	if err != nil {
		h.respondRecommendError(w, r, err)
		return
	}

	respondSuccess(w, detail, start)
}

// TopRated handles GET /api/v1/movies/top-rated.
//
// @Summary Top rated movies
// @Tags Movies
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.MovieListResponse}
// @Router /api/v1/movies/top-rated [get]
func (h *Handler) TopRated(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, r, h.recommender.TopRated)
}

// Popular handles GET /api/v1/movies/popular.
//
// @Summary Curated box office list
// @Tags Movies
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.MovieListResponse}
// @Router /api/v1/movies/popular [get]
func (h *Handler) Popular(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, r, h.recommender.Popular)
}

// EditorsChoice handles GET /api/v1/movies/editors-choice.
//
// @Summary Curated editors' picks
// @Tags Movies
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.MovieListResponse}
// @Router /api/v1/movies/editors-choice [get]
func (h *Handler) EditorsChoice(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, r, h.recommender.EditorsChoice)
}

func (h *Handler) respondList(w http.ResponseWriter, r *http.Request, fetch func(context.Context) []models.MovieRecord) {
	start := time.Now()
	movies := fetch(r.Context())
	if len(movies) > 0 {
		cacheFor(w, listCacheAge)
	}
	respondSuccess(w, models.MovieListResponse{Movies: nonNilMovies(movies)}, start)
}
