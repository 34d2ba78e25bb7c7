// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/cinemood/internal/config"
	"github.com/tomtom215/cinemood/internal/corpus"
	"github.com/tomtom215/cinemood/internal/embedding"
	"github.com/tomtom215/cinemood/internal/index"
	"github.com/tomtom215/cinemood/internal/logging"
)

// options holds the persistent flags.
type options struct {
	configPath string
	force      bool
	historyN   int
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "cinemood-indexer",
		Short: "Build or repair the CineMood embedding index",
		Long: `Loads the movie corpus and makes the embedding artifact match it.
The artifact is rebuilt when missing, unreadable, or sized for a different
corpus or encoder. --force rebuilds unconditionally.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd.Context(), out, opts)
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default: CONFIG_PATH or ./config.yaml)")
	root.Flags().BoolVarP(&opts.force, "force", "f", false, "re-encode even when the artifact is fresh")

	history := &cobra.Command{
		Use:   "history",
		Short: "Print recent index build records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(out, opts)
		},
	}
	history.Flags().IntVarP(&opts.historyN, "limit", "n", 10, "number of records to print")
	root.AddCommand(history)

	return root
}

func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.LoadWithKoanf(opts.configPath)
	if err != nil {
		return nil, err
	}
	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Service:   "cinemood-indexer",
	})
	return cfg, nil
}

func runBuild(ctx context.Context, out io.Writer, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	enc, err := embedding.New(cfg.Encoder.Provider, embedding.HTTPConfig{
		URL:        cfg.Encoder.URL,
		Model:      cfg.Encoder.Model,
		Dimensions: cfg.Encoder.Dimensions,
		BatchSize:  cfg.Encoder.BatchSize,
		Timeout:    cfg.Encoder.Timeout,
	})
	if err != nil {
		return fmt.Errorf("create encoder: %w", err)
	}

	buildLog, err := index.OpenBuildLog(cfg.Index.BuildLogPath)
	if err != nil {
		_ = enc.Close()
		return fmt.Errorf("open index build log: %w", err)
	}
	defer func() { _ = buildLog.Close() }()

	h := index.New(enc, corpus.FileSource{Path: cfg.Corpus.Path}, index.Options{
		ArtifactPath: cfg.Index.ArtifactPath,
		BatchSize:    cfg.Encoder.BatchSize,
		Concurrency:  cfg.Index.RebuildConcurrency,
		BuildLog:     buildLog,
	}, logging.WithComponent("indexer"))
	defer func() { _ = h.Close() }()

	if err := enc.Ping(ctx); err != nil {
		return fmt.Errorf("encoder unreachable: %w", err)
	}

	start := time.Now()
	var snap *index.Snapshot
	if opts.force {
		snap, err = h.Rebuild(ctx)
	} else {
		snap, err = h.EnsureFresh(ctx)
	}
	if err != nil {
		return err
	}

	status := "fresh"
	if rec, ok := h.LastRebuild(); ok {
		status = "rebuilt (" + rec.Reason + ")"
	}
	_, err = fmt.Fprintf(out, "%s: %d rows x %d dims, model %s, %s in %s\n",
		cfg.Index.ArtifactPath, snap.Matrix.Rows, snap.Matrix.Dim, snap.Model, status,
		time.Since(start).Round(time.Millisecond))
	return err
}

func runHistory(out io.Writer, opts *options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if cfg.Index.BuildLogPath == "" {
		return fmt.Errorf("INDEX_BUILD_LOG_PATH is not set, no build history is kept")
	}

	buildLog, err := index.OpenBuildLog(cfg.Index.BuildLogPath)
	if err != nil {
		return fmt.Errorf("open index build log: %w", err)
	}
	defer func() { _ = buildLog.Close() }()

	records, err := buildLog.Recent(opts.historyN)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		_, err = fmt.Fprintln(out, "no builds recorded")
		return err
	}
	for _, r := range records {
		result := "ok"
		if !r.Succeeded() {
			result = "failed: " + r.Error
		}
		if _, err := fmt.Fprintf(out, "%s  %-12s rows=%d dim=%d model=%s %s  %s\n",
			r.StartedAt.Format(time.RFC3339), r.Reason, r.Rows, r.Dim, r.Model,
			r.Duration.Round(time.Millisecond), result); err != nil {
			return err
		}
	}
	return nil
}
