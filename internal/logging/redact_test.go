// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package logging

import (
	"net/url"
	"strings"
	"testing"
)

func TestSanitizeToken(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                 "",
		"short":            "***",
		"0123456789abcdef": "0123...cdef",
	}
	for in, want := range tests {
		if got := SanitizeToken(in); got != want {
			t.Errorf("SanitizeToken(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRedactURL(t *testing.T) {
	t.Parallel()

	u, err := url.Parse("https://api.themoviedb.org/3/discover/movie?api_key=0123456789abcdef&language=tr-TR")
	if err != nil {
		t.Fatal(err)
	}

	got := RedactURL(u)
	if strings.Contains(got, "0123456789abcdef") {
		t.Errorf("api key leaked: %s", got)
	}
	if !strings.Contains(got, "language=tr-TR") {
		t.Errorf("non-sensitive params dropped: %s", got)
	}
	if u.Query().Get("api_key") != "0123456789abcdef" {
		t.Error("RedactURL mutated its input")
	}

	plain, _ := url.Parse("http://localhost/embed")
	if RedactURL(plain) != "http://localhost/embed" {
		t.Errorf("RedactURL changed a URL without secrets: %s", RedactURL(plain))
	}
	if RedactURL(nil) != "" {
		t.Error("nil URL should redact to empty string")
	}
}

func TestSanitizeText(t *testing.T) {
	t.Parallel()

	if got := SanitizeText("iyi\nfilm"); got != `iyi\x0afilm` {
		t.Errorf("control chars not escaped: %q", got)
	}
	if got := SanitizeText("çok güzel"); got != "çok güzel" {
		t.Errorf("turkish letters mangled: %q", got)
	}

	long := strings.Repeat("ş", maxLoggedText+10)
	got := SanitizeText(long)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("long text not truncated: %q", got)
	}
	if n := len([]rune(strings.TrimSuffix(got, "..."))); n != maxLoggedText {
		t.Errorf("kept %d runes, want %d", n, maxLoggedText)
	}
}
