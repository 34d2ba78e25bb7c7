// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package catalog

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind classifies a catalog failure so callers can pick a fallback tier.
type Kind int

const (
	// KindTimeout means the request exceeded its deadline.
	KindTimeout Kind = iota + 1
	// KindHTTP means TMDB answered with a non-2xx status.
	KindHTTP
	// KindParse means the response body could not be decoded.
	KindParse
	// KindUnavailable means TMDB could not be reached, or the circuit
	// breaker rejected the call.
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindHTTP:
		return "http"
	case KindParse:
		return "parse"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Error is returned by every Service method on failure.
type Error struct {
	Op         string // discover, search, detail, top_rated
	Kind       Kind
	StatusCode int // set for KindHTTP
	Err        error
}

func (e *Error) Error() string {
	if e.Kind == KindHTTP {
		return fmt.Sprintf("tmdb %s: status %d", e.Op, e.StatusCode)
	}
	if e.Err == nil {
		return fmt.Sprintf("tmdb %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("tmdb %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func isKind(err error, k Kind) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == k
}

// IsTimeout reports whether err is a catalog timeout.
func IsTimeout(err error) bool { return isKind(err, KindTimeout) }

// IsHTTP reports whether err is a non-2xx catalog response.
func IsHTTP(err error) bool { return isKind(err, KindHTTP) }

// IsParse reports whether err is a malformed catalog payload.
func IsParse(err error) bool { return isKind(err, KindParse) }

// IsUnavailable reports whether the catalog could not be reached.
func IsUnavailable(err error) bool { return isKind(err, KindUnavailable) }

// Outcome returns the metric label for err: "ok" for nil, otherwise the
// kind name.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind.String()
	}
	return "unknown"
}

// transportError classifies an error returned by http.Client.Do.
func transportError(op string, err error) *Error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return &Error{Op: op, Kind: KindTimeout, Err: err}
	}
	return &Error{Op: op, Kind: KindUnavailable, Err: err}
}
