// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package catalog

import (
	"context"
	"strconv"
	"time"

	"github.com/tomtom215/cinemood/internal/cache"
	"github.com/tomtom215/cinemood/internal/models"
)

var _ Service = (*CachingClient)(nil)

// CachingClient memoises successful search, detail and top-rated responses
// for a TTL. Discover passes straight through: its "en yeni" and "vizyon"
// queries must reflect the current catalog. Errors are never cached, so a
// recovering TMDB is picked up on the next call.
type CachingClient struct {
	next    Service
	lists   *cache.Cache[[]models.MovieRecord]
	details *cache.Cache[models.MovieDetail]
}

// NewCachingClient wraps next. Call Close to stop the cache janitors.
func NewCachingClient(next Service, ttl time.Duration) *CachingClient {
	return &CachingClient{
		next:    next,
		lists:   cache.New[[]models.MovieRecord]("catalog_list", ttl),
		details: cache.New[models.MovieDetail]("catalog_detail", ttl),
	}
}

// Discover implements Service without caching.
func (c *CachingClient) Discover(ctx context.Context, filters *models.FilterSet) ([]models.MovieRecord, error) {
	return c.next.Discover(ctx, filters)
}

// Search implements Service.
func (c *CachingClient) Search(ctx context.Context, query string, year int) ([]models.MovieRecord, error) {
	key := cache.GenerateKey(OpSearch, map[string]interface{}{"q": query, "y": year})
	return c.list(key, func() ([]models.MovieRecord, error) {
		return c.next.Search(ctx, query, year)
	})
}

// TopRated implements Service.
func (c *CachingClient) TopRated(ctx context.Context, page int) ([]models.MovieRecord, error) {
	return c.list("top_rated:"+strconv.Itoa(page), func() ([]models.MovieRecord, error) {
		return c.next.TopRated(ctx, page)
	})
}

// Detail implements Service.
func (c *CachingClient) Detail(ctx context.Context, id int) (*models.MovieDetail, error) {
	key := strconv.Itoa(id)
	if d, ok := c.details.Get(key); ok {
		return &d, nil
	}
	d, err := c.next.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	c.details.Set(key, *d)
	return d, nil
}

func (c *CachingClient) list(key string, fetch func() ([]models.MovieRecord, error)) ([]models.MovieRecord, error) {
	if v, ok := c.lists.Get(key); ok {
		return append([]models.MovieRecord(nil), v...), nil
	}
	v, err := fetch()
	if err != nil {
		return nil, err
	}
	c.lists.Set(key, v)
	return append([]models.MovieRecord(nil), v...), nil
}

// Close stops the background cleanup of both caches.
func (c *CachingClient) Close() {
	c.lists.Close()
	c.details.Close()
}
