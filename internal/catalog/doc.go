// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

/*
Package catalog is the TMDB v3 client behind every live recommendation.

Three Service implementations stack on top of each other:

	CachingClient -> CircuitBreakerClient -> Client

Client performs the HTTP calls with a token-bucket limiter
(golang.org/x/time/rate), CircuitBreakerClient (sony/gobreaker/v2) stops
calling a failing upstream, and CachingClient memoises successful responses.

Every failure is a *Error whose Kind tells the caller which fallback tier
to use: a timeout, a non-2xx status, an undecodable payload, or an
unreachable upstream. The recommend package never lets any of them reach
the user.

The API key travels in the query string, so URLs are logged only through
logging.RedactURL.
*/
package catalog
