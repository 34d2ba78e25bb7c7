// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/cinemood/internal/metrics"
	"github.com/tomtom215/cinemood/internal/models"
)

var _ Service = (*CircuitBreakerClient)(nil)

// BreakerName is the circuit breaker's metric label.
const BreakerName = "tmdb-api"

// BreakerSettings tunes the TMDB circuit breaker.
type BreakerSettings struct {
	MaxRequests  uint32        // probes allowed in half-open state
	Interval     time.Duration // closed-state count reset period
	Timeout      time.Duration // open -> half-open delay
	MinRequests  uint32        // requests needed before the ratio is considered
	FailureRatio float64
}

// DefaultBreakerSettings returns the production breaker settings:
// open after a 60% failure rate over at least 10 requests, probe again
// after 30 seconds.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// CircuitBreakerClient wraps a Service with a circuit breaker so a failing
// TMDB is not hammered by every chat request.
//
// Client-side HTTP errors (4xx other than 429) count as successes: a
// missing movie id says nothing about TMDB's health. Rejected calls return
// *Error with KindUnavailable.
type CircuitBreakerClient struct {
	next   Service
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
	logger zerolog.Logger
}

// NewCircuitBreakerClient wraps next.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCircuitBreakerClient(next Service, s BreakerSettings, logger zerolog.Logger) *CircuitBreakerClient {
	name := BreakerName
	logger = logger.With().Str("component", "catalog_breaker").Logger()

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			trip := ratio >= s.FailureRatio
			if trip {
				logger.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", ratio*100).
					Msg("[CIRCUIT BREAKER] Opening TMDB circuit")
			}
			return trip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			logger.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] TMDB state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},

		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var ce *Error
			if errors.As(err, &ce) && ce.Kind == KindHTTP {
				return ce.StatusCode < 500 && ce.StatusCode != http.StatusTooManyRequests
			}
			return false
		},
	})

	return &CircuitBreakerClient{next: next, cb: cb, name: name, logger: logger}
}

// State returns the current breaker state.
func (c *CircuitBreakerClient) State() gobreaker.State {
	return c.cb.State()
}

func (c *CircuitBreakerClient) execute(op string, fn func() (interface{}, error)) (interface{}, error) {
	result, err := c.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(c.name, "rejected").Inc()
			metrics.RecordCatalogRequest(op, KindUnavailable.String(), 0)
			c.logger.Debug().Err(err).Str("op", op).Msg("[CIRCUIT BREAKER] TMDB request rejected")
			return nil, &Error{Op: op, Kind: KindUnavailable, Err: err}
		}
		metrics.CircuitBreakerRequests.WithLabelValues(c.name, "failure").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(c.name).Set(float64(c.cb.Counts().ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(c.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(c.name).Set(0)
	return result, nil
}

// castResult type-asserts a breaker result.
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if result == nil {
		return zero, nil
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// Discover implements Service.
func (c *CircuitBreakerClient) Discover(ctx context.Context, filters *models.FilterSet) ([]models.MovieRecord, error) {
	return castResult[[]models.MovieRecord](c.execute(OpDiscover, func() (interface{}, error) {
		return c.next.Discover(ctx, filters)
	}))
}

// Search implements Service.
func (c *CircuitBreakerClient) Search(ctx context.Context, query string, year int) ([]models.MovieRecord, error) {
	return castResult[[]models.MovieRecord](c.execute(OpSearch, func() (interface{}, error) {
		return c.next.Search(ctx, query, year)
	}))
}

// Detail implements Service.
func (c *CircuitBreakerClient) Detail(ctx context.Context, id int) (*models.MovieDetail, error) {
	return castResult[*models.MovieDetail](c.execute(OpDetail, func() (interface{}, error) {
		return c.next.Detail(ctx, id)
	}))
}

// TopRated implements Service.
func (c *CircuitBreakerClient) TopRated(ctx context.Context, page int) ([]models.MovieRecord, error) {
	return castResult[[]models.MovieRecord](c.execute(OpTopRated, func() (interface{}, error) {
		return c.next.TopRated(ctx, page)
	}))
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
