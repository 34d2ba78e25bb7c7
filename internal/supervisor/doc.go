// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

/*
Package supervisor runs CineMood's long-lived services under suture v4.

# Tree

	RootSupervisor ("cinemood")
	├── DataSupervisor ("data-layer")
	│   └── IndexRefreshService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with backoff once FailureThreshold is
exceeded. Layers count failures independently, so a refresh loop that keeps
failing never takes the HTTP server down with it.

Supervisor events are logged through sutureslog. The server passes a
*slog.Logger backed by zerolog (logging.NewSlogLogger), so supervisor output
lands in the same JSON stream as everything else.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return err
	}
	tree.AddDataService(refresher)
	tree.AddAPIService(httpService)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

See the services subpackage for the service wrappers.
*/
package supervisor
