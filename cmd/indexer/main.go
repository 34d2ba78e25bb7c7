// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

// Package main is the offline embedding index builder.
//
// It loads the corpus, checks the artifact against it and re-encodes the
// corpus when they no longer line up, exactly like the server does on
// startup. Run it after replacing the corpus file so the server starts with
// a fresh artifact:
//
//	cinemood-indexer --config /etc/cinemood/config.yaml
//	cinemood-indexer --force
//	cinemood-indexer history -n 5
//
// The build log is a Badger directory and cannot be shared with a running
// server; point INDEX_BUILD_LOG_PATH elsewhere or stop the server first.
package main

import (
	"os"

	"github.com/tomtom215/cinemood/internal/logging"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		logging.Error().Err(err).Msg("Indexer failed")
		os.Exit(1)
	}
}
