// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/cinemood/internal/config"
	"github.com/tomtom215/cinemood/internal/middleware"
)

// CORSPolicy controls cross-origin access to the API. The API is
// credential-less, so cookies are never allowed.
type CORSPolicy struct {
	Origins []string // empty: no cross-origin access
	Methods []string
	Headers []string
	Exposed []string
	MaxAge  time.Duration
}

// RateLimitPolicy is a fixed per-client request budget.
type RateLimitPolicy struct {
	Requests int
	Window   time.Duration
	Disabled bool

	// KeyFunc identifies a client. Defaults to the remote IP.
	KeyFunc httprate.KeyFunc
}

// ChiMiddlewareConfig groups the policies applied by NewRouter.
type ChiMiddlewareConfig struct {
	CORS      CORSPolicy
	RateLimit RateLimitPolicy
}

// DefaultChiMiddlewareConfig allows no foreign origins and 60 requests per
// minute per client.
func DefaultChiMiddlewareConfig() *ChiMiddlewareConfig {
	return &ChiMiddlewareConfig{
		CORS: CORSPolicy{
			Origins: []string{},
			Methods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			Headers: []string{"Content-Type", middleware.RequestIDHeader},
			Exposed: []string{
				middleware.RequestIDHeader,
				"X-RateLimit-Limit",
				"X-RateLimit-Remaining",
				"X-RateLimit-Reset",
			},
			MaxAge: 24 * time.Hour,
		},
		RateLimit: RateLimitPolicy{Requests: 60, Window: time.Minute},
	}
}

// ChiMiddleware builds the CORS and rate-limit handlers once and hands them
// to the router.
type ChiMiddleware struct {
	config *ChiMiddlewareConfig
	cors   func(http.Handler) http.Handler
	limit  func(http.Handler) http.Handler
}

// NewChiMiddleware uses DefaultChiMiddlewareConfig when cfg is nil.
func NewChiMiddleware(cfg *ChiMiddlewareConfig) *ChiMiddleware {
	if cfg == nil {
		cfg = DefaultChiMiddlewareConfig()
	}
	return &ChiMiddleware{
		config: cfg,
		cors:   newCORS(cfg.CORS),
		limit:  newRateLimiter(cfg.RateLimit),
	}
}

// NewChiMiddlewareFromConfig maps the security section of the application
// config onto the defaults.
func NewChiMiddlewareFromConfig(sec config.SecurityConfig) *ChiMiddleware {
	cfg := DefaultChiMiddlewareConfig()
	cfg.CORS.Origins = sec.CORSOrigins
	cfg.RateLimit.Requests = sec.RateLimitReqs
	cfg.RateLimit.Window = sec.RateLimitWindow
	cfg.RateLimit.Disabled = sec.RateLimitDisabled
	return NewChiMiddleware(cfg)
}

func newCORS(p CORSPolicy) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: p.Origins,
		AllowedMethods: p.Methods,
		AllowedHeaders: p.Headers,
		ExposedHeaders: p.Exposed,
		MaxAge:         int(p.MaxAge / time.Second),
	})
}

func newRateLimiter(p RateLimitPolicy) func(http.Handler) http.Handler {
	if p.Disabled {
		return func(next http.Handler) http.Handler { return next }
	}
	key := p.KeyFunc
	if key == nil {
		key = httprate.KeyByIP
	}
	return httprate.Limit(p.Requests, p.Window,
		httprate.WithKeyFuncs(key),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			respondError(w, r, http.StatusTooManyRequests, ErrCodeRateLimited, msgRateLimited, nil)
		}),
	)
}

// CORS must be installed globally so preflights are answered before routing.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RateLimit is a no-op when disabled. Rejections use the JSON error envelope.
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	return m.limit
}

// APISecurityHeaders sets browser hardening headers on JSON responses.
// HSTS is sent only over TLS or behind a proxy reporting https.
func APISecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
				h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}
