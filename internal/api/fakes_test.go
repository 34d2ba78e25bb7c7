// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinemood/internal/index"
	"github.com/tomtom215/cinemood/internal/logging"
	"github.com/tomtom215/cinemood/internal/models"
	"github.com/tomtom215/cinemood/internal/recommend"
)

// fakeRecommender records calls and returns canned results.
type fakeRecommender struct {
	mu sync.Mutex

	chat      recommend.Result
	mood      []models.MovieRecord
	story     recommend.StoryResult
	detail    *models.MovieDetail
	lists     map[string][]models.MovieRecord
	err       error
	blockChat bool

	lastText    string
	lastMood    string
	lastExclude map[int]struct{}
	lastID      int
}

func (f *fakeRecommender) record(text, mood string, exclude map[int]struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastText, f.lastMood, f.lastExclude = text, mood, exclude
}

func (f *fakeRecommender) RecommendByChat(ctx context.Context, text, mood string, exclude map[int]struct{}) (recommend.Result, error) {
	f.record(text, mood, exclude)
	if f.blockChat {
		<-ctx.Done()
		return recommend.Result{}, ctx.Err()
	}
	return f.chat, f.err
}

func (f *fakeRecommender) RecommendByMood(_ context.Context, mood string) ([]models.MovieRecord, error) {
	f.record("", mood, nil)
	return f.mood, f.err
}

func (f *fakeRecommender) RecommendByStory(_ context.Context, text string, exclude map[int]struct{}) (recommend.StoryResult, error) {
	f.record(text, "", exclude)
	return f.story, f.err
}

func (f *fakeRecommender) MovieDetail(_ context.Context, id int) (*models.MovieDetail, error) {
	f.mu.Lock()
	f.lastID = id
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.detail, nil
}

func (f *fakeRecommender) TopRated(context.Context) []models.MovieRecord { return f.lists["top"] }
func (f *fakeRecommender) Popular(context.Context) []models.MovieRecord  { return f.lists["popular"] }
func (f *fakeRecommender) EditorsChoice(context.Context) []models.MovieRecord {
	return f.lists["editors"]
}

// fakeIndex is an IndexInspector with a fixed state.
type fakeIndex struct {
	snap *index.Snapshot
	last *index.BuildRecord
	log  *index.BuildLog
}

func (f *fakeIndex) Snapshot() *index.Snapshot { return f.snap }

func (f *fakeIndex) LastRebuild() (index.BuildRecord, bool) {
	if f.last == nil {
		return index.BuildRecord{}, false
	}
	return *f.last, true
}

func (f *fakeIndex) BuildLog() *index.BuildLog { return f.log }

func readyIndex() *fakeIndex {
	return &fakeIndex{snap: &index.Snapshot{
		Matrix:   index.NewMatrix(3, 4),
		Model:    "test-model",
		LoadedAt: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
	}}
}

func movie(id int, title string, rating float64) models.MovieRecord {
	return models.MovieRecord{ID: id, Title: title, VoteAverage: &rating}
}

// envelope mirrors models.APIResponse with raw data for per-test decoding.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func newTestServer(t *testing.T, rec Recommender, idx IndexInspector, mwCfg *ChiMiddlewareConfig, timeout time.Duration) http.Handler {
	t.Helper()
	if mwCfg == nil {
		mwCfg = DefaultChiMiddlewareConfig()
		mwCfg.RateLimit.Disabled = true
	}
	h := NewHandler(rec, idx, HandlerConfig{Version: "test"}, logging.NewTestLogger(nil))
	return NewRouter(h, NewChiMiddleware(mwCfg), timeout).SetupChi()
}

func do(t *testing.T, srv http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var env envelope
	if ct := rec.Header().Get("Content-Type"); len(ct) >= 16 && ct[:16] == "application/json" {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode envelope: %v; body = %s", err, rec.Body.String())
		}
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v; data = %s", err, env.Data)
	}
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, env envelope, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, status, rec.Body.String())
	}
	if env.Status != "error" || env.Error == nil {
		t.Fatalf("expected error envelope, got %+v", env)
	}
	if env.Error.Code != code {
		t.Errorf("error code = %q, want %q", env.Error.Code, code)
	}
}
