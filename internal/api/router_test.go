// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package api

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/cinemood/internal/middleware"
)

func TestRouter_RequestIDEchoed(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &fakeRecommender{}, readyIndex(), nil, 0)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "edge-1234")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if got := rec.Header().Get(middleware.RequestIDHeader); got != "edge-1234" {
		t.Errorf("X-Request-ID = %q, want edge-1234", got)
	}
}

func TestRouter_UnknownRouteAndMethod(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &fakeRecommender{}, readyIndex(), nil, 0)

	resp, env := do(t, srv, http.MethodGet, "/api/v1/nope", "")
	assertError(t, resp, env, http.StatusNotFound, ErrCodeNotFound)

	resp, env = do(t, srv, http.MethodGet, "/api/v1/chat", "")
	assertError(t, resp, env, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED")
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &fakeRecommender{}, readyIndex(), nil, 0)
	do(t, srv, http.MethodGet, "/api/v1/movies/top-rated", "")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "cinemood_api_requests_total") {
		t.Error("/metrics is missing cinemood_api_requests_total")
	}
}

func TestRouter_GzipOnAPI(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &fakeRecommender{}, readyIndex(), nil, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/movies/popular", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("Content-Encoding = %q, want gzip", rec.Header().Get("Content-Encoding"))
	}
	zr, err := gzip.NewReader(rec.Body)
	if err != nil {
		t.Fatalf("gzip.NewReader: %v", err)
	}
	body, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(body), `"status":"success"`) {
		t.Errorf("body = %s", body)
	}
}
