// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package models

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func strPtr(s string) *string { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestFilterSet_SetOverwriteAndAccessors(t *testing.T) {
	f := NewFilterSet()
	f.SetFloat(FilterRatingFloor, 7)
	f.SetInt(FilterVoteCountFloor, 300)
	f.SetInt(FilterVoteCountFloor, 1000)
	f.Set(FilterWithGenres, "28,35")

	if v, ok := f.Float(FilterRatingFloor); !ok || v != 7.0 {
		t.Errorf("Float(rating) = %v, %v; want 7, true", v, ok)
	}
	if v, ok := f.Int(FilterVoteCountFloor); !ok || v != 1000 {
		t.Errorf("later write should win, got %v", v)
	}
	if _, ok := f.Int(FilterWithGenres); ok {
		t.Error("Int on a non-numeric value should fail")
	}
	if f.Len() != 3 {
		t.Errorf("Len() = %d, want 3", f.Len())
	}

	f.Delete(FilterWithGenres)
	if f.Has(FilterWithGenres) {
		t.Error("Delete did not remove key")
	}
}

func TestFilterSet_ZeroValueUsable(t *testing.T) {
	var f FilterSet
	if f.Has(FilterPage) {
		t.Error("zero value should be empty")
	}
	f.SetInt(FilterPage, 2)
	if v, _ := f.Int(FilterPage); v != 2 {
		t.Errorf("page = %d, want 2", v)
	}
}

func TestFilterSet_CanonicalOrder(t *testing.T) {
	f := NewFilterSet()
	f.SetInt(FilterPage, 1)
	f.Set(FilterSortBy, SortRatingDesc)
	f.Set("zz_custom", "x")
	f.Set(FilterWithGenres, "18")
	f.Set(FilterDateFloor, "2015-01-01")

	want := "with_genres=18 primary_release_date.gte=2015-01-01 sort_by=vote_average.desc page=1 zz_custom=x"
	if got := f.String(); got != want {
		t.Errorf("String() =\n %s\nwant\n %s", got, want)
	}
}

func TestFilterSet_CloneMergeValues(t *testing.T) {
	base := NewFilterSet()
	base.Set(FilterWithGenres, "35")

	c := base.Clone()
	c.Set(FilterWithGenres, "18")
	if v, _ := base.Get(FilterWithGenres); v != "35" {
		t.Errorf("Clone is not independent, base = %s", v)
	}

	other := NewFilterSet()
	other.Set(FilterWithoutGenres, "27,53")
	other.Set(FilterWithGenres, "10749")
	base.Merge(other)
	base.Merge(nil)

	q := base.Values()
	if q.Get("with_genres") != "10749" || q.Get("without_genres") != "27,53" {
		t.Errorf("Values() = %v", q)
	}
	if m := base.Map(); len(m) != 2 {
		t.Errorf("Map() = %v", m)
	}
}

func TestMovieRecord_Helpers(t *testing.T) {
	m := MovieRecord{
		ID:          1,
		Title:       "Inception",
		Overview:    "A thief who steals secrets.",
		Keywords:    []string{"dream", "heist", "subconscious"},
		PosterPath:  strPtr("/p.jpg"),
		ReleaseDate: strPtr("2010-07-15"),
		VoteAverage: floatPtr(8.4),
	}

	if m.Rating() != 8.4 {
		t.Errorf("Rating() = %v", m.Rating())
	}
	if m.Year() != 2010 {
		t.Errorf("Year() = %d", m.Year())
	}
	if got := m.PosterURL(DefaultImageBase); got != DefaultImageBase+"/p.jpg" {
		t.Errorf("PosterURL() = %q", got)
	}
	if got := m.EmbeddingText(2); got != "Inception A thief who steals secrets. dream heist" {
		t.Errorf("EmbeddingText(2) = %q", got)
	}

	abs := MovieRecord{PosterPath: strPtr("https://cdn.example/p.jpg")}
	if abs.PosterURL(DefaultImageBase) != "https://cdn.example/p.jpg" {
		t.Error("absolute poster URL should be kept")
	}

	var empty MovieRecord
	if empty.Rating() != 0 || empty.Year() != 0 || empty.HasPoster() || empty.PosterURL("x") != "" {
		t.Error("empty record helpers should return zero values")
	}
	if empty.EmbeddingText(20) != "" {
		t.Errorf("EmbeddingText on empty record = %q", empty.EmbeddingText(20))
	}
}

func TestMovieRecord_DecodesCorpusShape(t *testing.T) {
	data := []byte(`{"id": 27205, "title": "Başlangıç", "overview": "", "keywords": [],
		"poster_path": null, "release_date": "2010-07-15", "vote_average": 8.369}`)

	var m MovieRecord
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if m.ID != 27205 || m.Title != "Başlangıç" || m.PosterPath != nil {
		t.Errorf("decoded %+v", m)
	}
	if m.VoteAverage == nil || *m.VoteAverage != 8.369 {
		t.Errorf("VoteAverage = %v", m.VoteAverage)
	}
}

func TestMovieDetail_EmptyCreditsEncodeAsArrays(t *testing.T) {
	d := MovieDetail{MovieRecord: MovieRecord{ID: 5, Title: "X"}, Credits: EmptyCredits(), Source: "corpus"}
	out, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	if !strings.Contains(s, `"credits":{"cast":[],"crew":[]}`) {
		t.Errorf("credits not encoded as empty arrays: %s", s)
	}
	if !strings.Contains(s, `"id":5`) {
		t.Errorf("embedded record fields should be flattened: %s", s)
	}
}

func TestNewStoryItem(t *testing.T) {
	m := MovieRecord{ID: 9, Title: "T", PosterPath: strPtr("/a.jpg"), VoteAverage: floatPtr(7)}
	item := NewStoryItem(&m, DefaultImageBase)
	if item.TMDBID != 9 || item.Poster != DefaultImageBase+"/a.jpg" {
		t.Errorf("NewStoryItem = %+v", item)
	}
}

func TestIDList_Lenient(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []int
	}{
		{"numbers", `[1, 2, 3]`, []int{1, 2, 3}},
		{"numeric strings", `["10", " 20 "]`, []int{10, 20}},
		{"junk dropped", `["abc", 1.5, null, true, 7]`, []int{7}},
		{"null", `null`, []int{}},
		{"empty", `[]`, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l IDList
			if err := json.Unmarshal([]byte(tt.in), &l); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if len(l) != len(tt.want) {
				t.Fatalf("got %v, want %v", l, tt.want)
			}
			for i := range l {
				if l[i] != tt.want[i] {
					t.Errorf("got %v, want %v", l, tt.want)
				}
			}
		})
	}
}

func TestIDList_RejectsNonArray(t *testing.T) {
	var l IDList
	if err := json.Unmarshal([]byte(`{"a":1}`), &l); err == nil {
		t.Error("expected error for object input")
	}
}

func TestChatRequest_Decode(t *testing.T) {
	var req ChatRequest
	body := `{"message": "Aksiyon filmi", "mood": "heyecan", "exclude": [1, "2"]}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatal(err)
	}
	if req.Message != "Aksiyon filmi" || req.Mood != "heyecan" {
		t.Errorf("decoded %+v", req)
	}
	set := req.Exclude.Set()
	if _, ok := set[2]; !ok || len(set) != 2 {
		t.Errorf("Exclude set = %v", set)
	}
}
