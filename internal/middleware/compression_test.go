// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const jsonBody = `{"status":"success","data":{"movies":[]}}`

func compressed(t *testing.T, acceptEncoding, method string) *httptest.ResponseRecorder {
	t.Helper()
	handler := Compression(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(jsonBody))
	})
	req := httptest.NewRequest(method, "/api/v1/movies/popular", nil)
	if acceptEncoding != "" {
		req.Header.Set("Accept-Encoding", acceptEncoding)
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestCompression_Gzip(t *testing.T) {
	t.Parallel()

	rec := compressed(t, "br, gzip", http.MethodGet)
	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("Content-Encoding = %q, want gzip", rec.Header().Get("Content-Encoding"))
	}
	if !strings.Contains(rec.Header().Get("Vary"), "Accept-Encoding") {
		t.Errorf("Vary = %q, want Accept-Encoding", rec.Header().Get("Vary"))
	}

	zr, err := gzip.NewReader(rec.Body)
	if err != nil {
		t.Fatalf("gzip.NewReader: %v", err)
	}
	body, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("read gzip body: %v", err)
	}
	if string(body) != jsonBody {
		t.Errorf("body = %q, want %q", body, jsonBody)
	}
}

func TestCompression_PassThrough(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		accept string
		method string
	}{
		{"no accept-encoding", "", http.MethodGet},
		{"identity only", "identity", http.MethodGet},
		{"gzip refused", "gzip;q=0", http.MethodGet},
		{"head request", "gzip", http.MethodHead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := compressed(t, tt.accept, tt.method)
			if enc := rec.Header().Get("Content-Encoding"); enc != "" {
				t.Errorf("Content-Encoding = %q, want none", enc)
			}
			if tt.method != http.MethodHead && rec.Body.String() != jsonBody {
				t.Errorf("body = %q, want plain JSON", rec.Body.String())
			}
		})
	}
}

func TestAcceptsGzip(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"gzip":              true,
		"GZIP":              true,
		"deflate, gzip;q=1": true,
		"gzip; q=0.5":       true,
		"gzip;q=0":          false,
		"gzip; q=0.000":     false,
		"deflate":           false,
		"":                  false,
	}
	for header, want := range tests {
		if got := acceptsGzip(header); got != want {
			t.Errorf("acceptsGzip(%q) = %v, want %v", header, got, want)
		}
	}
}

func TestCompression_NotModifiedHasNoEncoding(t *testing.T) {
	t.Parallel()

	handler := Compression(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotModified)
	})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/movies/top-rated", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusNotModified {
		t.Fatalf("status = %d, want 304", rec.Code)
	}
	if enc := rec.Header().Get("Content-Encoding"); enc != "" {
		t.Errorf("Content-Encoding = %q on 304", enc)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("304 body has %d bytes", rec.Body.Len())
	}
}
