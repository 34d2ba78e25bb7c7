// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemood/internal/catalog"
	"github.com/tomtom215/cinemood/internal/corpus"
	"github.com/tomtom215/cinemood/internal/metrics"
	"github.com/tomtom215/cinemood/internal/models"
)

// Fixed chat messages.
const (
	MessageFarewell    = "Rica ederim, iyi seyirler! 🍿"
	MessageBasedOnText = "Söylediklerine dayanarak senin için bu filmleri seçtim:"
	MessageFiltered    = "İstediğin kriterlere göre bu filmleri buldum:"
	MessageDefault     = "Harika, işte senin için seçtiğim filmler:"
)

// Resolved paths, used as metric labels and returned in Result.Path.
const (
	PathFarewell = "farewell"
	PathStory    = "story"
	PathSemantic = "semantic"
	PathPopular  = "popular_fallback"
	PathDiscover = "discover"
)

const (
	defaultVoteFloor = 300
	moodVoteFloor    = 1000
	moodRatingFloor  = 6.5
	moodYearsBack    = 10
	moodMaxPage      = 10
	fallbackMaxPage  = 5
	topRatedPages    = 2
)

var (
	// ErrTextTooShort is returned by RecommendByStory for texts under three characters.
	ErrTextTooShort = errors.New("story text too short")

	// ErrNotFound is returned by MovieDetail when neither tier knows the id.
	ErrNotFound = errors.New("movie not found")
)

// Result is a chat recommendation.
type Result struct {
	Movies  []models.MovieRecord
	Message string
	Path    string
}

// StoryResult is a story-mode recommendation.
type StoryResult struct {
	Items   []models.StoryItem
	Message string
}

// Deps are the collaborators of an Orchestrator.
type Deps struct {
	Catalog catalog.Service
	Index   IndexSource
	Corpus  corpus.Source

	// Now overrides the clock, mainly for tests.
	Now func() time.Time
}

// Orchestrator routes chat, mood and story requests to the semantic
// retriever, the filter extractor and the catalog, and degrades to the
// local corpus when the catalog is unavailable.
type Orchestrator struct {
	cfg       Config
	catalog   catalog.Service
	corpus    corpus.Source
	retriever *Retriever
	extractor *Extractor
	curated   *CuratedLists
	now       func() time.Time
	logger    zerolog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewOrchestrator wires an orchestrator from cfg and deps.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewOrchestrator(cfg Config, deps Deps, logger zerolog.Logger) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recommend config: %w", err)
	}
	if deps.Catalog == nil || deps.Index == nil || deps.Corpus == nil {
		return nil, errors.New("catalog, index and corpus are required")
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger = logger.With().Str("component", "recommend").Logger()
	return &Orchestrator{
		cfg:       cfg,
		catalog:   deps.Catalog,
		corpus:    deps.Corpus,
		retriever: NewRetriever(deps.Index, cfg),
		extractor: NewExtractor(now),
		curated:   NewCuratedLists(deps.Catalog, cfg.CuratedCacheTTL, cfg.CuratedConcurrency, logger),
		now:       now,
		logger:    logger,
		rng:       rand.New(rand.NewSource(seed)), //nolint:gosec // page picking, not security
	}, nil
}

// Retriever exposes the semantic retriever.
func (o *Orchestrator) Retriever() *Retriever {
	return o.retriever
}

// Close releases the curated list cache.
func (o *Orchestrator) Close() {
	o.curated.Close()
}

// randomPage returns a page in [1, maxPage].
func (o *Orchestrator) randomPage(maxPage int) int {
	o.rngMu.Lock()
	defer o.rngMu.Unlock()
	return o.rng.Intn(maxPage) + 1
}

// RecommendByChat answers a free-text chat message.
//
// Thanks end the conversation. Without a mood the text is treated as a
// story and answered semantically. Otherwise extracted filters drive a
// catalog discover query; with no filters and no request for something
// else, semantic search is tried first and a random popular page backs it.
// Catalog failures degrade to fewer (possibly zero) movies, never an error.
func (o *Orchestrator) RecommendByChat(ctx context.Context, text, mood string, exclude map[int]struct{}) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	lower := Lower(text)

	if containsAny(lower, thanksTriggers) {
		return o.result("chat", PathFarewell, nil, MessageFarewell), nil
	}

	mood = Lower(strings.TrimSpace(mood))
	if mood == "" {
		movies, err := o.retriever.Search(ctx, lower, o.cfg.ChatStoryLimit, exclude, true)
		if err == nil {
			return o.result("chat", PathStory, movies, ComposeResponse(lower)), nil
		}
		o.logger.Warn().Err(err).Msg("Story retrieval failed, falling back to filters")
	}

	fs, matched := o.extractor.Extract(text, mood)
	normalized := Normalize(text)

	if !matched && !containsAny(normalized, somethingElseWords) {
		path := PathSemantic
		movies, err := o.retriever.Search(ctx, normalized, o.cfg.ChatLimit, exclude, false)
		if err != nil {
			o.logger.Warn().Err(err).Msg("Semantic retrieval failed")
			metrics.RecordCatalogFallback("chat_semantic", "retrieval_error")
		}
		if len(movies) == 0 {
			path = PathPopular
			movies = o.popularFallback(ctx, exclude)
		}
		sortByRating(movies)
		return o.result("chat", path, movies, MessageBasedOnText), nil
	}

	fs.SetInt(models.FilterPage, 1)
	// Without an explicit sort the rating order comes with its own floor,
	// replacing any floor the extractor set.
	if !fs.Has(models.FilterSortBy) {
		fs.Set(models.FilterSortBy, models.SortRatingDesc)
		fs.SetInt(models.FilterVoteCountFloor, defaultVoteFloor)
	}

	movies := o.discover(ctx, "chat", fs, exclude)
	movies = truncate(movies, o.cfg.ChatLimit)

	msg := MessageDefault
	if matched {
		msg = MessageFiltered
	}
	return o.result("chat", PathDiscover, movies, msg), nil
}

func (o *Orchestrator) popularFallback(ctx context.Context, exclude map[int]struct{}) []models.MovieRecord {
	fs := models.NewFilterSet()
	fs.Set(models.FilterSortBy, models.SortPopularityDesc)
	fs.SetInt(models.FilterPage, o.randomPage(fallbackMaxPage))
	return truncate(o.discover(ctx, "chat_popular", fs, exclude), o.cfg.ChatLimit)
}

// RecommendByMood returns recent, well-rated popular movies matching the
// genre profile of mood. Unknown moods get the unfiltered query.
func (o *Orchestrator) RecommendByMood(ctx context.Context, mood string) ([]models.MovieRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fs := models.NewFilterSet()
	fs.Set(models.FilterSortBy, models.SortPopularityDesc)
	fs.SetInt(models.FilterVoteCountFloor, moodVoteFloor)
	fs.SetFloat(models.FilterRatingFloor, moodRatingFloor)
	fs.Set(models.FilterDateFloor, fmt.Sprintf("%d-01-01", o.now().Year()-moodYearsBack))
	fs.SetInt(models.FilterPage, o.randomPage(moodMaxPage))
	ResolveMood(mood).ApplyTo(fs)

	movies := o.discover(ctx, "mood", fs, nil)
	metrics.RecordRecommendPath("mood", PathDiscover)
	return nonNil(movies), nil
}

// RecommendByStory answers a free-text story. Hits missing from the
// current corpus file are dropped before truncation.
func (o *Orchestrator) RecommendByStory(ctx context.Context, text string, exclude map[int]struct{}) (StoryResult, error) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < minQueryRunes {
		return StoryResult{}, ErrTextTooShort
	}
	lower := Lower(text)

	movies, err := o.retriever.Search(ctx, lower, o.cfg.StoryTopK, exclude, false)
	if err != nil {
		o.logger.Warn().Err(err).Msg("Story retrieval failed")
		metrics.RecordCatalogFallback("story", "retrieval_error")
		movies = nil
	}

	if c, err := o.corpus.Load(ctx); err == nil {
		ids := c.IDs()
		kept := movies[:0]
		for _, m := range movies {
			if _, ok := ids[m.ID]; ok {
				kept = append(kept, m)
			}
		}
		movies = kept
	} else {
		o.logger.Warn().Err(err).Msg("Corpus reload failed, story results unfiltered")
	}

	movies = truncate(movies, o.cfg.StoryLimit)
	items := make([]models.StoryItem, 0, len(movies))
	for i := range movies {
		items = append(items, models.NewStoryItem(&movies[i], o.cfg.ImageBaseURL))
	}
	metrics.RecordRecommendPath("story", PathStory)
	return StoryResult{Items: items, Message: ComposeResponse(lower)}, nil
}

// MovieDetail returns the catalog detail of id, or the corpus record with
// empty credits when the catalog cannot answer.
func (o *Orchestrator) MovieDetail(ctx context.Context, id int) (*models.MovieDetail, error) {
	d, err := o.catalog.Detail(ctx, id)
	if err == nil {
		return d, nil
	}
	o.logger.Debug().Err(err).Int("movie_id", id).Msg("Catalog detail failed, trying corpus")
	metrics.RecordCatalogFallback("detail", catalog.Outcome(err))

	c, lerr := o.corpus.Load(ctx)
	if lerr != nil {
		o.logger.Warn().Err(lerr).Msg("Corpus load failed")
		return nil, ErrNotFound
	}
	rec, ok := c.Lookup(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &models.MovieDetail{
		MovieRecord: rec,
		Credits:     models.EmptyCredits(),
		Source:      "corpus",
	}, nil
}

// TopRated returns the catalog's top-rated list. Pages answering with an
// HTTP error are skipped; any other failure switches to the corpus sorted
// by rating.
func (o *Orchestrator) TopRated(ctx context.Context) []models.MovieRecord {
	var movies []models.MovieRecord
	for page := 1; page <= topRatedPages; page++ {
		res, err := o.catalog.TopRated(ctx, page)
		if err == nil {
			movies = append(movies, res...)
			continue
		}
		if catalog.IsHTTP(err) {
			o.logger.Debug().Err(err).Int("page", page).Msg("Top rated page skipped")
			continue
		}

		o.logger.Warn().Err(err).Msg("Catalog top rated failed, using corpus")
		metrics.RecordCatalogFallback("top_rated", catalog.Outcome(err))
		c, lerr := o.corpus.Load(ctx)
		if lerr != nil {
			o.logger.Warn().Err(lerr).Msg("Corpus load failed")
			return []models.MovieRecord{}
		}
		return nonNil(c.TopRated(o.cfg.TopRatedLimit))
	}
	return nonNil(truncate(movies, o.cfg.TopRatedLimit))
}

// Popular returns the curated box office list.
func (o *Orchestrator) Popular(ctx context.Context) []models.MovieRecord {
	return o.curated.Get(ctx, ListPopular)
}

// EditorsChoice returns the curated editors' picks.
func (o *Orchestrator) EditorsChoice(ctx context.Context) []models.MovieRecord {
	return o.curated.Get(ctx, ListEditorsChoice)
}

// discover queries the catalog and drops excluded ids. Errors yield nil.
func (o *Orchestrator) discover(ctx context.Context, path string, fs *models.FilterSet, exclude map[int]struct{}) []models.MovieRecord {
	movies, err := o.catalog.Discover(ctx, fs)
	if err != nil {
		o.logger.Warn().
			Err(err).
			Str("path", path).
			Str("filters", fs.String()).
			Msg("Catalog discover failed")
		metrics.RecordCatalogFallback(path, catalog.Outcome(err))
		return nil
	}
	if len(exclude) == 0 {
		return movies
	}
	kept := movies[:0]
	for _, m := range movies {
		if _, skip := exclude[m.ID]; !skip {
			kept = append(kept, m)
		}
	}
	return kept
}

func (o *Orchestrator) result(entry, path string, movies []models.MovieRecord, msg string) Result {
	metrics.RecordRecommendPath(entry, path)
	return Result{Movies: nonNil(movies), Message: msg, Path: path}
}

// sortByRating orders movies by rating, highest first, keeping ties in place.
func sortByRating(movies []models.MovieRecord) {
	sort.SliceStable(movies, func(i, j int) bool {
		return movies[i].Rating() > movies[j].Rating()
	})
}

func truncate(movies []models.MovieRecord, n int) []models.MovieRecord {
	if len(movies) > n {
		return movies[:n]
	}
	return movies
}

func nonNil(movies []models.MovieRecord) []models.MovieRecord {
	if movies == nil {
		return []models.MovieRecord{}
	}
	return movies
}
