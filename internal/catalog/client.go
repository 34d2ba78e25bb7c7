// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/cinemood/internal/logging"
	"github.com/tomtom215/cinemood/internal/metrics"
	"github.com/tomtom215/cinemood/internal/models"
)

// Operation names, used in errors and metric labels.
const (
	OpDiscover = "discover"
	OpSearch   = "search"
	OpDetail   = "detail"
	OpTopRated = "top_rated"
)

const (
	// DefaultBaseURL is the TMDB v3 API root.
	DefaultBaseURL = "https://api.themoviedb.org/3"

	// DefaultLanguage is sent with every request unless overridden.
	DefaultLanguage = "tr-TR"

	// DefaultTimeout bounds a single catalog request.
	DefaultTimeout = 5 * time.Second

	maxResponseBytes = 8 << 20
)

// Service is the remote movie catalog.
//
// Client, CircuitBreakerClient and CachingClient all implement it, so they
// stack: cache -> breaker -> client.
type Service interface {
	// Discover ranks the catalog by a filter set. Posterless results are dropped.
	Discover(ctx context.Context, filters *models.FilterSet) ([]models.MovieRecord, error)

	// Search runs a free-text title search. A zero year is not sent.
	// Posterless results are dropped.
	Search(ctx context.Context, query string, year int) ([]models.MovieRecord, error)

	// Detail returns a single movie with credits.
	Detail(ctx context.Context, id int) (*models.MovieDetail, error)

	// TopRated returns one page of the catalog's top-rated list.
	TopRated(ctx context.Context, page int) ([]models.MovieRecord, error)
}

var _ Service = (*Client)(nil)

// Config configures a Client.
type Config struct {
	BaseURL  string
	APIKey   string
	Language string
	Timeout  time.Duration

	// RateLimit is the sustained outbound request rate per second.
	// Zero disables client-side throttling.
	RateLimit float64
	RateBurst int

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// Client talks to the TMDB v3 REST API.
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// listResponse is the envelope of discover, search and top_rated.
type listResponse struct {
	Page         int                  `json:"page"`
	Results      []models.MovieRecord `json:"results"`
	TotalPages   int                  `json:"total_pages"`
	TotalResults int                  `json:"total_results"`
}

// NewClient creates a TMDB client.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		language:   cfg.Language,
		httpClient: httpClient,
		limiter:    limiter,
		logger:     logger.With().Str("component", "catalog").Logger(),
	}
}

// Discover implements Service.
func (c *Client) Discover(ctx context.Context, filters *models.FilterSet) ([]models.MovieRecord, error) {
	var params url.Values
	if filters != nil {
		params = filters.Values()
	} else {
		params = url.Values{}
	}
	var resp listResponse
	if err := c.get(ctx, OpDiscover, "/discover/movie", params, &resp); err != nil {
		return nil, err
	}
	return withPosters(resp.Results), nil
}

// Search implements Service.
func (c *Client) Search(ctx context.Context, query string, year int) ([]models.MovieRecord, error) {
	params := url.Values{}
	params.Set("query", query)
	if year > 0 {
		params.Set("year", strconv.Itoa(year))
	}
	var resp listResponse
	if err := c.get(ctx, OpSearch, "/search/movie", params, &resp); err != nil {
		return nil, err
	}
	return withPosters(resp.Results), nil
}

// Detail implements Service.
func (c *Client) Detail(ctx context.Context, id int) (*models.MovieDetail, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits")

	var d models.MovieDetail
	if err := c.get(ctx, OpDetail, "/movie/"+strconv.Itoa(id), params, &d); err != nil {
		return nil, err
	}
	if d.Credits.Cast == nil {
		d.Credits.Cast = []models.CastMember{}
	}
	if d.Credits.Crew == nil {
		d.Credits.Crew = []models.CrewMember{}
	}
	d.Source = "catalog"
	return &d, nil
}

// TopRated implements Service.
func (c *Client) TopRated(ctx context.Context, page int) ([]models.MovieRecord, error) {
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	var resp listResponse
	if err := c.get(ctx, OpTopRated, "/movie/top_rated", params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// get performs one GET and decodes the JSON body into out. Every failure
// is returned as *Error.
func (c *Client) get(ctx context.Context, op, path string, params url.Values, out interface{}) (err error) {
	start := time.Now()
	defer func() {
		metrics.RecordCatalogRequest(op, Outcome(err), time.Since(start))
	}()

	if c.limiter != nil {
		if werr := c.limiter.Wait(ctx); werr != nil {
			return transportError(op, werr)
		}
	}

	u, perr := url.Parse(c.baseURL + path)
	if perr != nil {
		return &Error{Op: op, Kind: KindUnavailable, Err: perr}
	}
	if params.Get("language") == "" {
		params.Set("language", c.language)
	}
	params.Set("api_key", c.apiKey)
	u.RawQuery = params.Encode()

	req, rerr := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if rerr != nil {
		return &Error{Op: op, Kind: KindUnavailable, Err: rerr}
	}
	req.Header.Set("Accept", "application/json")

	resp, derr := c.httpClient.Do(req)
	if derr != nil {
		// *url.Error embeds the request URL, api_key included.
		var ue *url.Error
		if errors.As(derr, &ue) {
			ue.URL = logging.RedactURL(u)
		}
		c.logger.Warn().Err(derr).Str("op", op).Str("url", logging.RedactURL(u)).Msg("TMDB request failed")
		return transportError(op, derr)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn().
			Str("op", op).
			Int("status", resp.StatusCode).
			Str("url", logging.RedactURL(u)).
			Str("body", logging.SanitizeText(string(body))).
			Msg("TMDB returned non-success status")
		return &Error{Op: op, Kind: KindHTTP, StatusCode: resp.StatusCode}
	}

	if jerr := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); jerr != nil {
		return &Error{Op: op, Kind: KindParse, Err: fmt.Errorf("decode response: %w", jerr)}
	}
	return nil
}

// withPosters drops records without a poster path.
func withPosters(in []models.MovieRecord) []models.MovieRecord {
	out := make([]models.MovieRecord, 0, len(in))
	for i := range in {
		if in[i].HasPoster() {
			out = append(out, in[i])
		}
	}
	return out
}
