// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package embedding

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinemood/internal/logging"
	"github.com/tomtom215/cinemood/internal/metrics"
)

// Defaults for HTTPConfig.
const (
	DefaultModel     = "sentence-transformers/paraphrase-multilingual-MiniLM-L12-v2"
	DefaultDims      = 384
	DefaultBatchSize = 32
	DefaultTimeout   = 30 * time.Second
)

// HTTPConfig configures an HTTPEncoder.
type HTTPConfig struct {
	// URL of the inference server. A bare host gets the /embed path.
	URL        string
	Model      string
	Dimensions int
	BatchSize  int
	Timeout    time.Duration

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// HTTPEncoder calls a sentence-transformers inference server:
//
//	POST /embed {"texts": [...], "model": "..."} -> {"embeddings": [[...], ...]}
//
// Inputs are split into batches of BatchSize. Every returned vector is
// checked against Dimensions and normalised.
type HTTPEncoder struct {
	endpoint   string
	model      string
	dims       int
	batchSize  int
	httpClient *http.Client
}

type embedRequest struct {
	Texts []string `json:"texts"`
	Model string   `json:"model"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// NewHTTPEncoder validates cfg and returns an encoder. No request is made;
// call Ping to check connectivity.
func NewHTTPEncoder(cfg HTTPConfig) (*HTTPEncoder, error) {
	endpoint := strings.TrimRight(cfg.URL, "/")
	if endpoint == "" {
		return nil, fmt.Errorf("embedding endpoint is empty")
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid embedding endpoint: %w", err)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/embed"
	}

	e := &HTTPEncoder{
		endpoint:   u.String(),
		model:      cfg.Model,
		dims:       cfg.Dimensions,
		batchSize:  cfg.BatchSize,
		httpClient: cfg.HTTPClient,
	}
	if e.model == "" {
		e.model = DefaultModel
	}
	if e.dims <= 0 {
		e.dims = DefaultDims
	}
	if e.batchSize <= 0 {
		e.batchSize = DefaultBatchSize
	}
	if e.httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		e.httpClient = &http.Client{Timeout: timeout}
	}
	return e, nil
}

// Encode implements Encoder.
func (e *HTTPEncoder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	all := make([][]float32, 0, len(texts))
	for i := 0; i < len(texts); i += e.batchSize {
		end := i + e.batchSize
		if end > len(texts) {
			end = len(texts)
		}

		vecs, err := e.doBatch(ctx, texts[i:end])
		metrics.RecordEncoderRequest(err)
		if err != nil {
			return nil, err
		}
		all = append(all, vecs...)
	}
	return all, nil
}

func (e *HTTPEncoder) doBatch(ctx context.Context, texts []string) ([][]float32, error) {
	body, err := json.Marshal(&embedRequest{Texts: texts, Model: e.model})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embed request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		logging.Warn().
			Int("status", resp.StatusCode).
			Str("body", logging.SanitizeText(string(snippet))).
			Msg("Embedding server returned non-2xx")
		return nil, fmt.Errorf("embedding request failed: status=%d", resp.StatusCode)
	}

	var out embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode embed response: %w", err)
	}
	if err := checkVectors(out.Embeddings, len(texts), e.dims); err != nil {
		return nil, err
	}
	return out.Embeddings, nil
}

// Dimensions implements Encoder.
func (e *HTTPEncoder) Dimensions() int { return e.dims }

// ModelName implements Encoder.
func (e *HTTPEncoder) ModelName() string { return e.model }

// Ping implements Encoder by encoding a one-word probe.
func (e *HTTPEncoder) Ping(ctx context.Context) error {
	_, err := EncodeOne(ctx, e, "ping")
	if err != nil {
		return fmt.Errorf("embedding server unreachable at %s: %w", e.endpoint, err)
	}
	return nil
}

// Close implements Encoder.
func (e *HTTPEncoder) Close() error {
	e.httpClient.CloseIdleConnections()
	return nil
}
