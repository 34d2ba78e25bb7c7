// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

/*
Package services provides suture.Service wrappers for CineMood components.

Each wrapper turns a component's lifecycle into suture's context-aware
Serve method and implements fmt.Stringer for supervisor logs.

# Available Services

HTTPServerService runs the API server. ListenAndServe runs in a goroutine;
cancellation triggers a graceful Shutdown bounded by a timeout, followed by
a forced Close when connections do not drain in time.

IndexRefreshService keeps the embedding index aligned with the corpus. It
calls EnsureFresh at startup and on a fixed interval. Failures are logged
and retried on the next tick rather than returned, so the last good
snapshot keeps serving while the encoder is unavailable.

# Usage

	tree.AddDataService(services.NewIndexRefreshService(handle, services.IndexRefreshConfig{
		Interval: cfg.Index.RefreshInterval,
	}, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, 10*time.Second, logger))
*/
package services
