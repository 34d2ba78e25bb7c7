// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

/*
Package index maintains the embedding matrix aligned with the movie corpus.

Row i of the matrix is the unit-length embedding of corpus record i. The
matrix is persisted as a little-endian float32 artifact:

	offset  size  field
	0       8     magic "CMEMB001"
	8       4     rows (uint32)
	12      4     dim  (uint32)
	16      4*r*d row-major float32 data

Handle.EnsureFresh reloads the corpus and compares it with the artifact.
A missing or unreadable artifact, a row count that differs from the corpus,
or a dimension that differs from the encoder triggers a rebuild. Rebuilds
write to a temporary file and rename it into place, so readers of the
artifact never observe a partial matrix.

Every rebuild attempt can be recorded in a BadgerDB-backed BuildLog, which
the status endpoint and the indexer command read.
*/
package index
