// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

/*
Package validation validates API request bodies with go-playground/validator v10.

A single validator instance is shared process-wide; it caches struct
metadata, so the first validation of a type pays the reflection cost once.

Field names in errors are the JSON names ("message", not "Message"), and one
custom tag is registered:

	notblank  the string contains at least one non-whitespace character

Usage:

	var req models.ChatRequest
	if errs := validation.ValidateStruct(&req); errs != nil {
	    // errs.Message() and errs.Details() fill the VALIDATION_ERROR envelope
	    return
	}

Error messages:

	message is required
	message must not be blank
	message must be at most 2000 characters
	exclude must be at most 1000 items
*/
package validation
