// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package index

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const buildKeyPrefix = "build:"

// defaultBuildRetention bounds how long build records are kept.
const defaultBuildRetention = 90 * 24 * time.Hour

// BuildRecord describes one rebuild attempt.
type BuildRecord struct {
	ID         string        `json:"id"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration_ns"`
	Reason     string        `json:"reason"`
	Rows       int           `json:"rows"`
	Dim        int           `json:"dim"`
	Model      string        `json:"model"`
	Artifact   string        `json:"artifact"`
	Error      string        `json:"error,omitempty"`
	MaxNormErr float64       `json:"max_norm_error,omitempty"`
}

// Succeeded reports whether the rebuild completed.
func (r BuildRecord) Succeeded() bool {
	return r.Error == ""
}

// BuildLog is an append-only history of index rebuilds stored in BadgerDB.
// Keys sort by start time so the newest records are read with a reverse
// iterator.
type BuildLog struct {
	db        *badger.DB
	retention time.Duration
}

// OpenBuildLog opens (or creates) a build log at dir. An empty dir opens an
// in-memory log that is lost on Close.
func OpenBuildLog(dir string) (*BuildLog, error) {
	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(dir)
		opts.SyncWrites = true
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open build log: %w", err)
	}
	return &BuildLog{db: db, retention: defaultBuildRetention}, nil
}

func buildKey(startedAt time.Time, id string) []byte {
	key := make([]byte, 0, len(buildKeyPrefix)+8+len(id))
	key = append(key, buildKeyPrefix...)
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(startedAt.UnixNano()))
	key = append(key, ts[:]...)
	return append(key, id...)
}

// Append stores rec, assigning an ID when empty.
func (l *BuildLog) Append(rec *BuildRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal build record: %w", err)
	}

	return l.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(buildKey(rec.StartedAt, rec.ID), data)
		if l.retention > 0 {
			e = e.WithTTL(l.retention)
		}
		return txn.SetEntry(e)
	})
}

// Recent returns up to n records, newest first.
func (l *BuildLog) Recent(n int) ([]BuildRecord, error) {
	if n <= 0 {
		return nil, nil
	}

	var out []BuildRecord
	err := l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(buildKeyPrefix)
		// Reverse iteration must seek past the last key with the prefix.
		seek := append(append([]byte{}, prefix...), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(prefix) && len(out) < n; it.Next() {
			var rec BuildRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return fmt.Errorf("decode build record: %w", err)
			}
			out = append(out, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Last returns the newest record, or false if the log is empty.
func (l *BuildLog) Last() (BuildRecord, bool, error) {
	recs, err := l.Recent(1)
	if err != nil || len(recs) == 0 {
		return BuildRecord{}, false, err
	}
	return recs[0], true, nil
}

// Close closes the underlying database.
func (l *BuildLog) Close() error {
	return l.db.Close()
}
