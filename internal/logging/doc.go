// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

// Package logging provides centralized zerolog-based structured logging for CineMood.
//
// The package owns one global zerolog logger configured at startup from the
// logging section of the configuration, plus helpers around it:
//
//   - Init/Logger/With/WithComponent for the global logger
//   - Ctx(ctx) to pick up request and correlation IDs set by the HTTP layer
//   - SlogHandler so the Suture supervisor logs through zerolog
//   - RedactURL and SanitizeText so upstream API keys and raw user messages
//     never reach the log stream verbatim
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Int("rows", n).Msg("embedding index ready")
//	logging.Ctx(ctx).Warn().Err(err).Msg("catalog discover failed")
//
// Always terminate event chains with Msg or Send, otherwise nothing is written.
package logging
