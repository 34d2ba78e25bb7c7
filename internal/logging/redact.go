// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package logging

import (
	"net/url"
	"strings"
)

// maxLoggedText bounds how much user-typed text ends up in a log line.
const maxLoggedText = 120

var sensitiveParams = []string{"api_key", "apikey", "token", "access_token", "key"}

// SanitizeToken masks a secret, keeping only its first and last 4 characters.
//
//	SanitizeToken("0123456789abcdef") == "0123...cdef"
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// RedactURL returns u as a string with credential-like query parameters masked.
// The TMDB client carries its API key in the query string, so every logged
// upstream URL must pass through here.
func RedactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	q := u.Query()
	changed := false
	for _, p := range sensitiveParams {
		if v := q.Get(p); v != "" {
			q.Set(p, SanitizeToken(v))
			changed = true
		}
	}
	if !changed {
		return u.String()
	}
	clone := *u
	clone.RawQuery = q.Encode()
	return clone.String()
}

// SanitizeText prepares free text typed by a user for logging: control
// characters are escaped and the result is truncated on a rune boundary.
func SanitizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	n := 0
	for _, r := range s {
		if n >= maxLoggedText {
			b.WriteString("...")
			break
		}
		switch {
		case r < 0x20 || r == 0x7f:
			b.WriteString(`\x`)
			b.WriteByte("0123456789abcdef"[r>>4])
			b.WriteByte("0123456789abcdef"[r&0xf])
		default:
			b.WriteRune(r)
		}
		n++
	}
	return b.String()
}
