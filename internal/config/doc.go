// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

/*
Package config provides layered configuration for CineMood.

Configuration is assembled with Koanf v2 from three layers, each overriding
the previous one:

 1. Built-in defaults (defaultConfig)
 2. A YAML file, from CONFIG_PATH or config.yaml in the working directory
 3. Environment variables, through an explicit name mapping table

Example config.yaml:

	server:
	  port: 5000
	catalog:
	  api_key: "..."
	encoder:
	  url: http://embedder:8080
	index:
	  artifact_path: /data/film_embeddings_v3.bin
	  refresh_interval: 15m

Validate is run after loading and reports the first invalid setting.
*/
package config
