// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

// Package corpus loads the curated movie dataset that backs semantic search.
//
// The corpus file (films.json) is a JSON array of movie records written by
// the dataset collector. Record order is significant: position i matches
// row i of the embedding matrix.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinemood/internal/models"
)

// ErrEmpty is returned when the corpus file holds no records.
var ErrEmpty = errors.New("corpus is empty")

// Corpus is an immutable, ordered collection of movie records.
type Corpus struct {
	records []models.MovieRecord
	byID    map[int]int
}

// New builds a corpus from records, keeping their order. Duplicate ids keep
// the first position for Lookup.
func New(records []models.MovieRecord) *Corpus {
	c := &Corpus{
		records: records,
		byID:    make(map[int]int, len(records)),
	}
	for i := range records {
		if _, dup := c.byID[records[i].ID]; !dup {
			c.byID[records[i].ID] = i
		}
	}
	return c
}

// Load reads and parses the corpus file at path.
func Load(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", path, err)
	}

	var records []models.MovieRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse corpus %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}

	return New(records), nil
}

// Len returns the number of records.
func (c *Corpus) Len() int {
	return len(c.records)
}

// At returns the record at position i.
func (c *Corpus) At(i int) *models.MovieRecord {
	return &c.records[i]
}

// Records returns the records in corpus order. Callers must not modify
// the returned slice.
func (c *Corpus) Records() []models.MovieRecord {
	return c.records
}

// Lookup returns the record with the given id.
func (c *Corpus) Lookup(id int) (models.MovieRecord, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.MovieRecord{}, false
	}
	return c.records[i], true
}

// Contains reports whether id is part of the corpus.
func (c *Corpus) Contains(id int) bool {
	_, ok := c.byID[id]
	return ok
}

// IDs returns the set of record ids.
func (c *Corpus) IDs() map[int]struct{} {
	ids := make(map[int]struct{}, len(c.byID))
	for id := range c.byID {
		ids[id] = struct{}{}
	}
	return ids
}

// TopRated returns up to limit records sorted by average rating,
// highest first. Records without a rating sort as 0. Ties keep corpus order.
func (c *Corpus) TopRated(limit int) []models.MovieRecord {
	out := make([]models.MovieRecord, len(c.records))
	copy(out, c.records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rating() > out[j].Rating()
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Texts returns the embedding input text of every record, in corpus order.
func (c *Corpus) Texts(maxKeywords int) []string {
	texts := make([]string, len(c.records))
	for i := range c.records {
		texts[i] = c.records[i].EmbeddingText(maxKeywords)
	}
	return texts
}

// Source loads a fresh corpus. The index reloads through a Source on every
// freshness check so edits to the dataset are picked up without a restart.
type Source interface {
	Load(ctx context.Context) (*Corpus, error)
}

// FileSource reads the corpus from a JSON file on disk.
type FileSource struct {
	Path string
}

// Load implements Source.
func (s FileSource) Load(ctx context.Context) (*Corpus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Load(s.Path)
}

// StaticSource always returns the same corpus. Used by tests and by the
// indexer when the records are already in memory.
type StaticSource struct {
	Corpus *Corpus
}

// Load implements Source.
func (s StaticSource) Load(context.Context) (*Corpus, error) {
	if s.Corpus == nil || s.Corpus.Len() == 0 {
		return nil, ErrEmpty
	}
	return s.Corpus, nil
}
