// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/tomtom215/cinemood/internal/index"
	"github.com/tomtom215/cinemood/internal/logging"
	"github.com/tomtom215/cinemood/internal/middleware"
	"github.com/tomtom215/cinemood/internal/models"
)

func TestHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		idx        IndexInspector
		wantStatus string
		wantReady  bool
	}{
		{"index ready", readyIndex(), "healthy", true},
		{"index not built", &fakeIndex{}, "degraded", false},
		{"no index", nil, "degraded", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := newTestServer(t, &fakeRecommender{}, tt.idx, nil, 0)

			resp, env := do(t, srv, http.MethodGet, "/health", "")
			if resp.Code != http.StatusOK {
				t.Fatalf("status = %d", resp.Code)
			}
			var health models.HealthStatus
			decodeData(t, env, &health)
			if health.Status != tt.wantStatus || health.IndexReady != tt.wantReady {
				t.Errorf("health = %+v", health)
			}
			if health.Version != "test" {
				t.Errorf("version = %q", health.Version)
			}
		})
	}
}

func TestHealth_CatalogStatus(t *testing.T) {
	t.Parallel()

	h := NewHandler(&fakeRecommender{}, readyIndex(), HandlerConfig{
		CatalogStatus: func() string { return "open" },
	}, logging.NewTestLogger(nil))
	srv := NewRouter(h, nil, 0).SetupChi()

	_, env := do(t, srv, http.MethodGet, "/health", "")
	var health models.HealthStatus
	decodeData(t, env, &health)
	if health.Components["catalog"] != "open" || health.Components["index"] != "ready" {
		t.Errorf("components = %v", health.Components)
	}
	if health.Version != "dev" {
		t.Errorf("default version = %q, want dev", health.Version)
	}
}

func TestHealthProbes(t *testing.T) {
	t.Parallel()

	ready := newTestServer(t, &fakeRecommender{}, readyIndex(), nil, 0)
	notReady := newTestServer(t, &fakeRecommender{}, &fakeIndex{}, nil, 0)

	if resp, _ := do(t, notReady, http.MethodGet, "/api/v1/health/live", ""); resp.Code != http.StatusOK {
		t.Errorf("live = %d, want 200 even before the index is built", resp.Code)
	}
	if resp, _ := do(t, ready, http.MethodGet, "/api/v1/health/ready", ""); resp.Code != http.StatusOK {
		t.Errorf("ready = %d, want 200", resp.Code)
	}
	resp, env := do(t, notReady, http.MethodGet, "/api/v1/health/ready", "")
	assertError(t, resp, env, http.StatusServiceUnavailable, ErrCodeIndexNotReady)
}

func TestIndexStatus(t *testing.T) {
	t.Parallel()

	buildLog, err := index.OpenBuildLog("")
	if err != nil {
		t.Fatalf("OpenBuildLog: %v", err)
	}
	t.Cleanup(func() { _ = buildLog.Close() })

	base := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	for i, reason := range []string{index.ReasonMissing, index.ReasonRowMismatch, index.ReasonForced} {
		rec := &index.BuildRecord{
			StartedAt: base.Add(time.Duration(i) * time.Hour),
			Reason:    reason,
			Rows:      3,
			Dim:       4,
		}
		if err := buildLog.Append(rec); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	idx := readyIndex()
	idx.log = buildLog
	srv := newTestServer(t, &fakeRecommender{}, idx, nil, 0)

	resp, env := do(t, srv, http.MethodGet, "/api/v1/index/status?limit=2", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}

	var status IndexStatus
	decodeData(t, env, &status)
	if !status.Ready || status.Rows != 3 || status.Dim != 4 || status.Model != "test-model" {
		t.Errorf("status = %+v", status)
	}
	if len(status.History) != 2 {
		t.Fatalf("history has %d entries, want 2", len(status.History))
	}
	if status.History[0].Reason != index.ReasonForced {
		t.Errorf("newest reason = %q, want forced", status.History[0].Reason)
	}
	if status.LastRebuild == nil || status.LastRebuild.Reason != index.ReasonForced {
		t.Errorf("last rebuild = %+v, want the newest log entry", status.LastRebuild)
	}
}

func TestIndexStatus_NotBuilt(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &fakeRecommender{}, &fakeIndex{
		last: &index.BuildRecord{Reason: index.ReasonMissing, Error: "encoder unreachable"},
	}, nil, 0)

	_, env := do(t, srv, http.MethodGet, "/api/v1/index/status", "")
	var status IndexStatus
	decodeData(t, env, &status)
	if status.Ready {
		t.Error("index reported ready without a snapshot")
	}
	if status.LastRebuild == nil || status.LastRebuild.Succeeded() {
		t.Errorf("last rebuild = %+v, want the failed attempt", status.LastRebuild)
	}
	if status.History == nil {
		t.Error("history decoded as null")
	}
}

func TestPerformanceStats(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &fakeRecommender{}, readyIndex(), nil, 0)
	for i := 0; i < 3; i++ {
		do(t, srv, http.MethodGet, "/api/v1/movies/popular", "")
	}

	_, env := do(t, srv, http.MethodGet, "/api/v1/stats/performance", "")
	var stats []middleware.EndpointStats
	decodeData(t, env, &stats)

	var found bool
	for _, s := range stats {
		if s.Endpoint == "GET /api/v1/movies/popular" {
			found = true
			if s.RequestCount != 3 {
				t.Errorf("request count = %d, want 3", s.RequestCount)
			}
		}
	}
	if !found {
		t.Errorf("popular route missing from stats %+v", stats)
	}
}
