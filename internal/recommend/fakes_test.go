// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package recommend

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/cinemood/internal/corpus"
	"github.com/tomtom215/cinemood/internal/embedding"
	"github.com/tomtom215/cinemood/internal/index"
	"github.com/tomtom215/cinemood/internal/logging"
	"github.com/tomtom215/cinemood/internal/models"
)

const testDims = 3

func f64(v float64) *float64 { return &v }
func str(s string) *string   { return &s }

// ruleEncoder maps a text to the vector of the first rule whose substring
// it contains, and to the zero vector otherwise.
type ruleEncoder struct {
	rules []encoderRule
	calls atomic.Int64
	fail  atomic.Bool
}

type encoderRule struct {
	substr string
	vec    []float32
}

func (e *ruleEncoder) Encode(_ context.Context, texts []string) ([][]float32, error) {
	e.calls.Add(1)
	if e.fail.Load() {
		return nil, errors.New("inference server down")
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = make([]float32, testDims)
		for _, r := range e.rules {
			if strings.Contains(t, r.substr) {
				copy(out[i], r.vec)
				break
			}
		}
	}
	return out, nil
}

func (e *ruleEncoder) Dimensions() int            { return testDims }
func (e *ruleEncoder) ModelName() string          { return "rule" }
func (e *ruleEncoder) Ping(context.Context) error { return nil }
func (e *ruleEncoder) Close() error               { return nil }

// fakeIndex serves a fixed snapshot.
type fakeIndex struct {
	snap  *index.Snapshot
	enc   *ruleEncoder
	err   error
	calls atomic.Int64
}

func (f *fakeIndex) EnsureFresh(context.Context) (*index.Snapshot, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.snap, nil
}

func (f *fakeIndex) Encoder() embedding.Encoder { return f.enc }

type testFilm struct {
	id       int
	title    string
	rating   float64
	keywords []string
	vec      []float32
}

// spaceFilms score against the "uzay" query as 1 > 3 > 2 > 5 > 6 > 4, with
// 6 and 4 below the acceptance threshold. Film 3 is animated; film 5 only
// has an "animal" keyword and is not.
var spaceFilms = []testFilm{
	{1, "Yıldızlararası", 8.6, []string{"space travel"}, []float32{1, 0, 0}},
	{2, "Marslı", 8.9, []string{"mars"}, []float32{0.9, 0.1, 0}},
	{3, "Duvar-E", 8.3, []string{"robot", "animation"}, []float32{0.95, 0, 0.05}},
	{4, "Aşk Tesadüfleri Sever", 7.0, []string{"love"}, []float32{0, 1, 0}},
	{5, "Yerçekimi", 7.2, []string{"astronaut", "animal"}, []float32{0.5, 0, 0.866}},
	{6, "Solaris", 7.4, []string{"ocean"}, []float32{0.3, 0, 0.954}},
}

func newFakeIndex(t *testing.T, films []testFilm) (*fakeIndex, *corpus.Corpus) {
	t.Helper()
	recs := make([]models.MovieRecord, len(films))
	m := index.NewMatrix(len(films), testDims)
	for i, f := range films {
		recs[i] = models.MovieRecord{
			ID:          f.id,
			Title:       f.title,
			Overview:    f.title + " overview",
			Keywords:    f.keywords,
			PosterPath:  str("/p" + f.title + ".jpg"),
			ReleaseDate: str("2014-11-05"),
			VoteAverage: f64(f.rating),
		}
		v := append([]float32(nil), f.vec...)
		if err := m.SetRow(i, embedding.Normalize(v)); err != nil {
			t.Fatal(err)
		}
	}
	c := corpus.New(recs)
	enc := &ruleEncoder{rules: []encoderRule{{"uzay", []float32{1, 0, 0}}}}
	return &fakeIndex{
		snap: &index.Snapshot{Corpus: c, Matrix: m, Model: enc.ModelName(), LoadedAt: time.Now()},
		enc:  enc,
	}, c
}

// fakeCatalog records calls and answers through optional hooks.
type fakeCatalog struct {
	mu sync.Mutex

	discoverFn func(fs *models.FilterSet) ([]models.MovieRecord, error)
	searchFn   func(query string, year int) ([]models.MovieRecord, error)
	detailFn   func(id int) (*models.MovieDetail, error)
	topRatedFn func(page int) ([]models.MovieRecord, error)

	discovered []*models.FilterSet
	searches   int
	topRated   []int
}

func (f *fakeCatalog) Discover(_ context.Context, fs *models.FilterSet) ([]models.MovieRecord, error) {
	f.mu.Lock()
	f.discovered = append(f.discovered, fs.Clone())
	fn := f.discoverFn
	f.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(fs)
}

func (f *fakeCatalog) Search(_ context.Context, query string, year int) ([]models.MovieRecord, error) {
	f.mu.Lock()
	f.searches++
	fn := f.searchFn
	f.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(query, year)
}

func (f *fakeCatalog) Detail(_ context.Context, id int) (*models.MovieDetail, error) {
	if f.detailFn == nil {
		return nil, errors.New("no detail")
	}
	return f.detailFn(id)
}

func (f *fakeCatalog) TopRated(_ context.Context, page int) ([]models.MovieRecord, error) {
	f.mu.Lock()
	f.topRated = append(f.topRated, page)
	fn := f.topRatedFn
	f.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(page)
}

func (f *fakeCatalog) discoverCalls() []*models.FilterSet {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*models.FilterSet(nil), f.discovered...)
}

func (f *fakeCatalog) searchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.searches
}

// catalogPage returns n posters with ids from base and ratings 1..n.
func catalogPage(base, n int) []models.MovieRecord {
	out := make([]models.MovieRecord, n)
	for i := range out {
		out[i] = models.MovieRecord{
			ID:          base + i,
			Title:       "Film",
			PosterPath:  str("/x.jpg"),
			VoteAverage: f64(float64(i + 1)),
		}
	}
	return out
}

func newTestOrchestrator(t *testing.T, cat *fakeCatalog, idx IndexSource, src corpus.Source) *Orchestrator {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = 42
	o, err := NewOrchestrator(cfg, Deps{
		Catalog: cat,
		Index:   idx,
		Corpus:  src,
		Now:     func() time.Time { return fixedNow },
	}, logging.NewTestLogger(&bytes.Buffer{}))
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}
	t.Cleanup(o.Close)
	return o
}

func movieIDs(movies []models.MovieRecord) []int {
	out := make([]int, len(movies))
	for i, m := range movies {
		out[i] = m.ID
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
