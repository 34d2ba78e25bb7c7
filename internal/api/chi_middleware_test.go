// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/cinemood/internal/config"
)

func TestNewChiMiddleware_DefaultConfig(t *testing.T) {
	t.Parallel()

	m := NewChiMiddleware(nil)
	if m.config == nil {
		t.Fatal("config is nil")
	}
	if len(m.config.CORS.Origins) != 0 {
		t.Errorf("CORS.Origins = %v, want []", m.config.CORS.Origins)
	}
	if m.config.CORS.MaxAge != 24*time.Hour {
		t.Errorf("CORS.MaxAge = %v, want 24h", m.config.CORS.MaxAge)
	}
	if m.config.RateLimit.Requests != 60 || m.config.RateLimit.Window != time.Minute {
		t.Errorf("rate limit = %d per %v, want 60 per 1m", m.config.RateLimit.Requests, m.config.RateLimit.Window)
	}
}

func TestNewChiMiddlewareFromConfig(t *testing.T) {
	t.Parallel()

	m := NewChiMiddlewareFromConfig(config.SecurityConfig{
		CORSOrigins:     []string{"https://cinemood.example"},
		RateLimitReqs:   30,
		RateLimitWindow: 2 * time.Minute,
	})
	if len(m.config.CORS.Origins) != 1 || m.config.CORS.Origins[0] != "https://cinemood.example" {
		t.Errorf("CORS.Origins = %v", m.config.CORS.Origins)
	}
	if m.config.RateLimit.Requests != 30 || m.config.RateLimit.Window != 2*time.Minute {
		t.Errorf("rate limit = %d per %v", m.config.RateLimit.Requests, m.config.RateLimit.Window)
	}
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimit.Requests = 2
	cfg.RateLimit.Window = time.Minute
	srv := newTestServer(t, &fakeRecommender{}, readyIndex(), cfg, 0)

	for i := 0; i < 2; i++ {
		if resp, _ := do(t, srv, http.MethodGet, "/api/v1/movies/popular", ""); resp.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i+1, resp.Code)
		}
	}

	resp, env := do(t, srv, http.MethodGet, "/api/v1/movies/popular", "")
	assertError(t, resp, env, http.StatusTooManyRequests, ErrCodeRateLimited)

	// Health is outside the limited group.
	if resp, _ := do(t, srv, http.MethodGet, "/health", ""); resp.Code != http.StatusOK {
		t.Errorf("/health = %d after the limit, want 200", resp.Code)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimit.Requests = 1
	cfg.RateLimit.Disabled = true
	srv := newTestServer(t, &fakeRecommender{}, readyIndex(), cfg, 0)

	for i := 0; i < 5; i++ {
		if resp, _ := do(t, srv, http.MethodGet, "/api/v1/movies/popular", ""); resp.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i+1, resp.Code)
		}
	}
}

func TestCORS(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.CORS.Origins = []string{"https://cinemood.example"}
	cfg.RateLimit.Disabled = true
	srv := newTestServer(t, &fakeRecommender{}, readyIndex(), cfg, 0)

	tests := []struct {
		origin string
		allow  string
	}{
		{"https://cinemood.example", "https://cinemood.example"},
		{"https://evil.example", ""},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/v1/chat", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.allow {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.allow)
			}
		})
	}
}

func TestAPISecurityHeaders(t *testing.T) {
	t.Parallel()

	handler := APISecurityHeaders()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/movies/popular", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Error("HSTS missing behind a TLS proxy")
	}
}
