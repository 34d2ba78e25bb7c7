// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package models

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// FilterKey is one of the fixed catalog discover parameters.
type FilterKey string

// Filter keys, named after the TMDB discover parameters they map to.
const (
	FilterWithGenres     FilterKey = "with_genres"
	FilterWithoutGenres  FilterKey = "without_genres"
	FilterRatingFloor    FilterKey = "vote_average.gte"
	FilterVoteCountFloor FilterKey = "vote_count.gte"
	FilterDateFloor      FilterKey = "primary_release_date.gte"
	FilterDateCeiling    FilterKey = "primary_release_date.lte"
	FilterRuntimeFloor   FilterKey = "with_runtime.gte"
	FilterRuntimeCeiling FilterKey = "with_runtime.lte"
	FilterOriginCountry  FilterKey = "with_origin_country"
	FilterWatchProviders FilterKey = "with_watch_providers"
	FilterWatchRegion    FilterKey = "watch_region"
	FilterSortBy         FilterKey = "sort_by"
	FilterPage           FilterKey = "page"
)

// Sort orders understood by the catalog.
const (
	SortPopularityDesc  = "popularity.desc"
	SortRatingDesc      = "vote_average.desc"
	SortReleaseDateDesc = "primary_release_date.desc"
)

// filterKeyOrder is the canonical rendering order for String and Keys.
var filterKeyOrder = []FilterKey{
	FilterWithGenres,
	FilterWithoutGenres,
	FilterRatingFloor,
	FilterVoteCountFloor,
	FilterDateFloor,
	FilterDateCeiling,
	FilterRuntimeFloor,
	FilterRuntimeCeiling,
	FilterOriginCountry,
	FilterWatchProviders,
	FilterWatchRegion,
	FilterSortBy,
	FilterPage,
}

var filterKeyRank = func() map[FilterKey]int {
	m := make(map[FilterKey]int, len(filterKeyOrder))
	for i, k := range filterKeyOrder {
		m[k] = i
	}
	return m
}()

// IsKnownFilterKey reports whether k is part of the fixed vocabulary.
func IsKnownFilterKey(k FilterKey) bool {
	_, ok := filterKeyRank[k]
	return ok
}

// FilterSet is a transient set of catalog discover parameters.
//
// Writes are additive and a later write to the same key overwrites the
// earlier value. The zero value is ready to use.
type FilterSet struct {
	values map[FilterKey]string
}

// NewFilterSet returns an empty filter set.
func NewFilterSet() *FilterSet {
	return &FilterSet{values: make(map[FilterKey]string)}
}

// Set stores a raw string value.
func (f *FilterSet) Set(k FilterKey, v string) {
	if f.values == nil {
		f.values = make(map[FilterKey]string)
	}
	f.values[k] = v
}

// SetInt stores an integer value.
func (f *FilterSet) SetInt(k FilterKey, v int) {
	f.Set(k, strconv.Itoa(v))
}

// SetFloat stores a float value in its shortest decimal form.
func (f *FilterSet) SetFloat(k FilterKey, v float64) {
	f.Set(k, strconv.FormatFloat(v, 'f', -1, 64))
}

// Get returns the raw value of k.
func (f *FilterSet) Get(k FilterKey) (string, bool) {
	v, ok := f.values[k]
	return v, ok
}

// Int returns the value of k parsed as an integer.
func (f *FilterSet) Int(k FilterKey) (int, bool) {
	v, ok := f.values[k]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Float returns the value of k parsed as a float.
func (f *FilterSet) Float(k FilterKey) (float64, bool) {
	v, ok := f.values[k]
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Has reports whether k is set.
func (f *FilterSet) Has(k FilterKey) bool {
	_, ok := f.values[k]
	return ok
}

// Delete removes k.
func (f *FilterSet) Delete(k FilterKey) {
	delete(f.values, k)
}

// Len returns the number of keys set.
func (f *FilterSet) Len() int {
	return len(f.values)
}

// Keys returns the set keys in canonical order. Keys outside the
// vocabulary sort last, alphabetically.
func (f *FilterSet) Keys() []FilterKey {
	keys := make([]FilterKey, 0, len(f.values))
	for k := range f.values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, iok := filterKeyRank[keys[i]]
		rj, jok := filterKeyRank[keys[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}

// Clone returns an independent copy.
func (f *FilterSet) Clone() *FilterSet {
	c := NewFilterSet()
	for k, v := range f.values {
		c.values[k] = v
	}
	return c
}

// Merge copies every key of other into f, overwriting existing values.
func (f *FilterSet) Merge(other *FilterSet) {
	if other == nil {
		return
	}
	for k, v := range other.values {
		f.Set(k, v)
	}
}

// Values renders the set as URL query parameters.
func (f *FilterSet) Values() url.Values {
	q := make(url.Values, len(f.values))
	for k, v := range f.values {
		q.Set(string(k), v)
	}
	return q
}

// String renders "k=v" pairs in canonical order, for logs and tests.
func (f *FilterSet) String() string {
	var b strings.Builder
	for i, k := range f.Keys() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(string(k))
		b.WriteByte('=')
		b.WriteString(f.values[k])
	}
	return b.String()
}

// Map returns a copy of the set as a plain map, for JSON output.
func (f *FilterSet) Map() map[string]string {
	m := make(map[string]string, len(f.values))
	for k, v := range f.values {
		m[string(k)] = v
	}
	return m
}
