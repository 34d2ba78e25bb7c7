// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package index

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/cinemood/internal/corpus"
	"github.com/tomtom215/cinemood/internal/embedding"
	"github.com/tomtom215/cinemood/internal/metrics"
)

// Staleness reasons, also used as metric and build-log labels.
const (
	ReasonMissing     = "missing"
	ReasonRowMismatch = "row_mismatch"
	ReasonDimMismatch = "dim_mismatch"
	ReasonCorrupt     = "corrupt"
	ReasonForced      = "forced"
)

// DefaultMaxKeywords bounds how many keywords of a record are encoded.
const DefaultMaxKeywords = 20

var (
	// ErrClosed is returned by operations on a closed handle.
	ErrClosed = errors.New("index handle is closed")

	// ErrNotReady is returned by Snapshot users before the first EnsureFresh.
	ErrNotReady = errors.New("embedding index is not ready")
)

// Snapshot is an immutable view of a corpus and its aligned embedding
// matrix. Row i of Matrix is the embedding of Corpus.At(i).
type Snapshot struct {
	Corpus   *corpus.Corpus
	Matrix   *Matrix
	Model    string
	LoadedAt time.Time
}

// Options configures a Handle.
type Options struct {
	// ArtifactPath is the binary embedding matrix on disk.
	ArtifactPath string

	// MaxKeywords bounds keywords per record in the encoded text.
	// Zero uses DefaultMaxKeywords.
	MaxKeywords int

	// BatchSize is the number of texts per encoder call during a rebuild.
	BatchSize int

	// Concurrency bounds in-flight encoder calls during a rebuild.
	Concurrency int

	// BuildLog, when set, records every rebuild attempt.
	BuildLog *BuildLog

	// ReuseWindow lets EnsureFresh return the published snapshot without
	// reloading the corpus when it was loaded less than this long ago.
	// Zero reloads on every call. Rebuild always reloads.
	ReuseWindow time.Duration
}

// Handle owns the encoder, the current corpus and the embedding matrix,
// and repairs the matrix when it no longer matches the corpus.
//
// Load, staleness check and rebuild run under a mutex so concurrent first
// callers never rebuild twice. Readers see snapshots through an atomic
// pointer; a new snapshot is published only once fully built.
type Handle struct {
	encoder embedding.Encoder
	source  corpus.Source
	opts    Options
	logger  zerolog.Logger

	mu      sync.Mutex
	current atomic.Pointer[Snapshot]
	closed  atomic.Bool

	lastRebuild atomic.Pointer[BuildRecord]
}

// New creates a handle. No I/O happens until Open or EnsureFresh.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(enc embedding.Encoder, src corpus.Source, opts Options, logger zerolog.Logger) *Handle {
	if opts.MaxKeywords <= 0 {
		opts.MaxKeywords = DefaultMaxKeywords
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = embedding.DefaultBatchSize
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	return &Handle{
		encoder: enc,
		source:  src,
		opts:    opts,
		logger:  logger.With().Str("component", "index").Logger(),
	}
}

// Open checks the encoder and brings the index up to date.
func (h *Handle) Open(ctx context.Context) error {
	if err := h.encoder.Ping(ctx); err != nil {
		return fmt.Errorf("encoder: %w", err)
	}
	_, err := h.EnsureFresh(ctx)
	return err
}

// Encoder returns the encoder shared with query-time retrieval.
func (h *Handle) Encoder() embedding.Encoder {
	return h.encoder
}

// Snapshot returns the last published snapshot, or nil before the first
// successful EnsureFresh.
func (h *Handle) Snapshot() *Snapshot {
	return h.current.Load()
}

// LastRebuild returns the most recent rebuild attempt by this handle.
func (h *Handle) LastRebuild() (BuildRecord, bool) {
	r := h.lastRebuild.Load()
	if r == nil {
		return BuildRecord{}, false
	}
	return *r, true
}

// BuildLog returns the configured build log, possibly nil.
func (h *Handle) BuildLog() *BuildLog {
	return h.opts.BuildLog
}

// EnsureFresh reloads the corpus and returns a snapshot whose matrix is
// aligned with it, rebuilding and persisting the matrix when stale.
//
// The matrix is stale when the artifact is missing or unreadable, when its
// row count differs from the corpus length, or when its dimension differs
// from the encoder's. A failed rebuild returns the error and leaves both
// the artifact and the published snapshot untouched.
func (h *Handle) EnsureFresh(ctx context.Context) (*Snapshot, error) {
	return h.refresh(ctx, false)
}

// Rebuild unconditionally re-encodes the corpus.
func (h *Handle) Rebuild(ctx context.Context) (*Snapshot, error) {
	return h.refresh(ctx, true)
}

func (h *Handle) refresh(ctx context.Context, force bool) (*Snapshot, error) {
	if h.closed.Load() {
		return nil, ErrClosed
	}
	if snap := h.recent(force); snap != nil {
		return snap, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed.Load() {
		return nil, ErrClosed
	}
	// Callers that queued behind a reload share its result.
	if snap := h.recent(force); snap != nil {
		return snap, nil
	}

	c, err := h.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	dims := h.encoder.Dimensions()

	if !force {
		// In-memory matrix still aligned: only swap in the reloaded corpus.
		if cur := h.current.Load(); cur != nil && cur.Matrix.Rows == c.Len() && cur.Matrix.Dim == dims {
			snap := &Snapshot{Corpus: c, Matrix: cur.Matrix, Model: cur.Model, LoadedAt: time.Now()}
			h.current.Store(snap)
			metrics.RecordIndexRefresh(c.Len())
			return snap, nil
		}

		reason, m := h.loadArtifact(c.Len(), dims)
		if reason == "" {
			snap := &Snapshot{Corpus: c, Matrix: m, Model: h.encoder.ModelName(), LoadedAt: time.Now()}
			h.current.Store(snap)
			metrics.RecordIndexRefresh(c.Len())
			h.logger.Info().
				Int("rows", m.Rows).
				Int("dim", m.Dim).
				Str("artifact", h.opts.ArtifactPath).
				Msg("Loaded embedding artifact")
			return snap, nil
		}
		return h.rebuild(ctx, c, reason)
	}

	return h.rebuild(ctx, c, ReasonForced)
}

// recent returns the published snapshot when it is inside ReuseWindow.
func (h *Handle) recent(force bool) *Snapshot {
	if force || h.opts.ReuseWindow <= 0 {
		return nil
	}
	if cur := h.current.Load(); cur != nil && time.Since(cur.LoadedAt) < h.opts.ReuseWindow {
		return cur
	}
	return nil
}

// loadArtifact returns ("", matrix) when the artifact on disk matches rows
// and dims, or the staleness reason otherwise.
func (h *Handle) loadArtifact(rows, dims int) (string, *Matrix) {
	hdr, err := ReadHeader(h.opts.ArtifactPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return ReasonMissing, nil
	case err != nil:
		h.logger.Warn().Err(err).Str("artifact", h.opts.ArtifactPath).Msg("Embedding artifact unreadable")
		return ReasonCorrupt, nil
	case hdr.Rows != rows:
		return ReasonRowMismatch, nil
	case hdr.Dim != dims:
		return ReasonDimMismatch, nil
	}

	m, err := ReadArtifact(h.opts.ArtifactPath)
	if err != nil {
		h.logger.Warn().Err(err).Str("artifact", h.opts.ArtifactPath).Msg("Embedding artifact unreadable")
		return ReasonCorrupt, nil
	}
	return "", m
}

func (h *Handle) rebuild(ctx context.Context, c *corpus.Corpus, reason string) (*Snapshot, error) {
	start := time.Now()
	dims := h.encoder.Dimensions()
	rec := &BuildRecord{
		StartedAt: start,
		Reason:    reason,
		Rows:      c.Len(),
		Dim:       dims,
		Model:     h.encoder.ModelName(),
		Artifact:  h.opts.ArtifactPath,
	}

	h.logger.Info().
		Str("reason", reason).
		Int("rows", c.Len()).
		Str("model", rec.Model).
		Msg("Rebuilding embedding index")

	m, err := h.encodeCorpus(ctx, c, dims)
	if err == nil {
		err = WriteArtifact(h.opts.ArtifactPath, m)
	}

	rec.Duration = time.Since(start)
	metrics.RecordIndexRebuild(reason, c.Len(), rec.Duration, err)

	if err != nil {
		rec.Error = err.Error()
		h.record(rec)
		h.logger.Error().Err(err).Str("reason", reason).Msg("Embedding index rebuild failed")
		return nil, fmt.Errorf("rebuild embedding index: %w", err)
	}

	rec.MaxNormErr = m.MaxNormError()
	h.record(rec)

	snap := &Snapshot{Corpus: c, Matrix: m, Model: rec.Model, LoadedAt: time.Now()}
	h.current.Store(snap)
	metrics.RecordIndexRefresh(c.Len())

	h.logger.Info().
		Int("rows", m.Rows).
		Dur("duration", rec.Duration).
		Str("artifact", h.opts.ArtifactPath).
		Msg("Embedding index rebuilt")
	return snap, nil
}

// encodeCorpus encodes every record in batches, at most Concurrency batches
// in flight. Any batch error cancels the rest.
func (h *Handle) encodeCorpus(ctx context.Context, c *corpus.Corpus, dims int) (*Matrix, error) {
	texts := c.Texts(h.opts.MaxKeywords)
	m := NewMatrix(len(texts), dims)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.opts.Concurrency)

	for start := 0; start < len(texts); start += h.opts.BatchSize {
		end := start + h.opts.BatchSize
		if end > len(texts) {
			end = len(texts)
		}
		g.Go(func() error {
			vecs, err := h.encoder.Encode(gctx, texts[start:end])
			if err != nil {
				return fmt.Errorf("encode rows %d-%d: %w", start, end-1, err)
			}
			if len(vecs) != end-start {
				return fmt.Errorf("encode rows %d-%d: got %d vectors", start, end-1, len(vecs))
			}
			for i, v := range vecs {
				if err := m.SetRow(start+i, embedding.Normalize(v)); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return m, nil
}

func (h *Handle) record(rec *BuildRecord) {
	h.lastRebuild.Store(rec)
	if h.opts.BuildLog == nil {
		return
	}
	if err := h.opts.BuildLog.Append(rec); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to append index build record")
	}
}

// Close releases the encoder. Later calls return ErrClosed.
func (h *Handle) Close() error {
	if !h.closed.CompareAndSwap(false, true) {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.encoder.Close()
}
