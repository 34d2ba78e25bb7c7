// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package corpus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tomtom215/cinemood/internal/models"
)

const sampleCorpus = `[
  {"id": 1, "title": "Alpha", "overview": "first", "keywords": ["space"], "poster_path": "/a.jpg", "release_date": "2001-01-01", "vote_average": 6.5},
  {"id": 2, "title": "Beta", "overview": "second", "keywords": [], "poster_path": null, "release_date": null, "vote_average": 8.1},
  {"id": 3, "title": "Gamma", "overview": "third", "keywords": ["war", "history"], "poster_path": "/g.jpg", "release_date": "1999-05-05", "vote_average": null},
  {"id": 4, "title": "Delta", "overview": "fourth", "keywords": [], "poster_path": "/d.jpg", "release_date": "2020-02-02", "vote_average": 8.1}
]`

func writeCorpus(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "films.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	c, err := Load(writeCorpus(t, sampleCorpus))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if c.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", c.Len())
	}
	if c.At(2).Title != "Gamma" {
		t.Errorf("At(2) = %q, order must be preserved", c.At(2).Title)
	}
	if rec, ok := c.Lookup(2); !ok || rec.Title != "Beta" {
		t.Errorf("Lookup(2) = %+v, %v", rec, ok)
	}
	if _, ok := c.Lookup(99); ok {
		t.Error("Lookup(99) should miss")
	}
	if !c.Contains(4) || c.Contains(5) {
		t.Error("Contains mismatch")
	}
	ids := c.IDs()
	if _, ok := ids[3]; !ok || len(ids) != 4 {
		t.Errorf("IDs() = %v", ids)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		is   error
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.json") }, os.ErrNotExist},
		{"empty array", func(t *testing.T) string { return writeCorpus(t, "[]") }, ErrEmpty},
		{"bad json", func(t *testing.T) string { return writeCorpus(t, "{not json") }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path(t))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("error %v should wrap %v", err, tt.is)
			}
		})
	}
}

func TestTopRated(t *testing.T) {
	c, err := Load(writeCorpus(t, sampleCorpus))
	if err != nil {
		t.Fatal(err)
	}

	top := c.TopRated(3)
	got := []int{top[0].ID, top[1].ID, top[2].ID}
	want := []int{2, 4, 1} // 8.1 (corpus order), 8.1, 6.5
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("TopRated ids = %v, want %v", got, want)
		}
	}

	if all := c.TopRated(100); len(all) != 4 || all[3].ID != 3 {
		t.Errorf("unrated record should sort last, got %v", all)
	}
	if c.At(0).ID != 1 {
		t.Error("TopRated must not reorder the corpus")
	}
}

func TestTexts(t *testing.T) {
	c := New([]models.MovieRecord{
		{ID: 1, Title: "A", Overview: "o", Keywords: []string{"k1", "k2", "k3"}},
		{ID: 2, Title: "B"},
	})

	texts := c.Texts(2)
	if texts[0] != "A o k1 k2" {
		t.Errorf("texts[0] = %q", texts[0])
	}
	if texts[1] != "B" {
		t.Errorf("texts[1] = %q", texts[1])
	}
}

func TestSources(t *testing.T) {
	ctx := context.Background()

	fs := FileSource{Path: writeCorpus(t, sampleCorpus)}
	c, err := fs.Load(ctx)
	if err != nil || c.Len() != 4 {
		t.Fatalf("FileSource.Load = %v, %v", c, err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := fs.Load(cancelled); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled load err = %v", err)
	}

	if _, err := (StaticSource{}).Load(ctx); !errors.Is(err, ErrEmpty) {
		t.Errorf("empty StaticSource err = %v", err)
	}
	if got, _ := (StaticSource{Corpus: c}).Load(ctx); got != c {
		t.Error("StaticSource should return its corpus")
	}
}
