// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package recommend

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/cinemood/internal/metrics"
	"github.com/tomtom215/cinemood/internal/models"
)

// Go's \b is ASCII-only, so word edges around Turkish text are spelled out.
const (
	wordStart = `(?:^|[^\p{L}\p{N}_])`
	wordEnd   = `(?:[^\p{L}\p{N}_]|$)`
)

var (
	halfRe = regexp.MustCompile(`(\d+)\s*(?:buçuk|bucuk)`)

	ratingRe = regexp.MustCompile(
		`(?:en az|minimum)?\s*(\d+(?:[.,]\d+)?)\s*(?:puan|imdb)?\s*(?:ve)?\s*` +
			`(?:üzeri|uzeri|üstü|ustu|yukarı|yukari|fazla|den yüksek)`)
	ratingFallbackRe = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(?:puan|imdb)`)

	afterYearRe  = regexp.MustCompile(wordStart + `(19\d{2}|20\d{2})\s*sonrası` + wordEnd)
	beforeYearRe = regexp.MustCompile(wordStart + `(19\d{2}|20\d{2})\s*öncesi` + wordEnd)
	decadeRe     = regexp.MustCompile(wordStart + `(19\d0|20\d0)['’]?l[ae]r` + wordEnd)
	bareYearRe   = regexp.MustCompile(wordStart + `(19\d{2}|20\d{2})` + wordEnd)

	runtimeMaxRe = regexp.MustCompile(`(\d+)\s*dakika(?:dan)?\s*(?:kısa|az|altı|altında)`)
	runtimeMinRe = regexp.MustCompile(`(\d+)\s*dakika(?:dan)?\s*(?:uzun|fazla|üzeri|uzeri|üstü|ustu)`)
)

// numberWordMap is numberWords as a lookup table for replaceWords.
var numberWordMap = func() map[string]string {
	m := make(map[string]string, len(numberWords)+2)
	for _, t := range numberWords {
		m[t.key] = t.value
	}
	m["yarım"] = "0.5"
	m["yarim"] = "0.5"
	return m
}()

// Extractor turns free text into a TMDB discover filter set.
type Extractor struct {
	engine *RuleEngine
	now    func() time.Time
}

// NewExtractor creates an extractor with the default rule set. now may be
// nil, in which case time.Now is used.
func NewExtractor(now func() time.Time) *Extractor {
	if now == nil {
		now = time.Now
	}
	return &Extractor{engine: NewRuleEngine(DefaultRules()), now: now}
}

// Normalize lower-cases text and rewrites number words: whole-word "bir".."on"
// become digits, "N buçuk" becomes "N.5" and a standalone "yarım" becomes "0.5".
func Normalize(text string) string {
	s := replaceWords(Lower(text), numberWordMap)
	return halfRe.ReplaceAllString(s, "${1}.5")
}

// Extract returns the filters found in text and whether any rule matched.
//
// When mood is set, no genre was named and either another filter matched or
// the user asked for something else, the mood's genre profile is merged in.
// The mood merge never counts as a match on its own.
func (e *Extractor) Extract(text, mood string) (*models.FilterSet, bool) {
	in := &RuleInput{Text: Normalize(text), Now: e.now()}
	fs := models.NewFilterSet()

	fired := e.engine.Run(in, fs)
	matched := len(fired) > 0

	for _, k := range fs.Keys() {
		metrics.RecordFilterMatch(string(k))
	}

	if mood != "" && !fs.Has(models.FilterWithGenres) &&
		(matched || containsAny(in.Text, somethingElseWords)) {
		if p, ok := LookupMood(mood); ok {
			p.ApplyTo(fs)
		}
	}
	return fs, matched
}

// DefaultRules returns the extraction rules in evaluation order.
//
// The era group is a strict cascade. In the year group "sonrası" and
// "öncesi" share rank 0 and may both fire; a decade (rank 1) or a bare
// year (rank 2) only applies when no more specific year phrase matched.
// The year group runs after the era group, so explicit years override era
// phrases.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "genre", Group: "genre", Apply: applyGenres},
		{Name: "rating", Group: "rating", Apply: applyRating},
		{Name: "sort_popularity", Group: "sort", Rank: 0, Apply: applySortPopularity},
		{Name: "sort_rating", Group: "sort", Rank: 1, Apply: applySortRating},
		{Name: "recent_years", Group: "era", Rank: 0, Apply: applyRecentYears},
		{Name: "old_movies", Group: "era", Rank: 1, Apply: applyOldMovies},
		{Name: "newest", Group: "era", Rank: 2, Apply: applyNewest},
		{Name: "after_year", Group: "year", Rank: 0, Apply: applyAfterYear},
		{Name: "before_year", Group: "year", Rank: 0, Apply: applyBeforeYear},
		{Name: "decade", Group: "year", Rank: 1, Apply: applyDecade},
		{Name: "bare_year", Group: "year", Rank: 2, Apply: applyBareYear},
		{Name: "vote_count", Group: "votes", Apply: applyVoteCount},
		{Name: "country", Group: "country", Apply: applyCountries},
		{Name: "platform", Group: "platform", Apply: applyPlatforms},
		{Name: "runtime_max", Group: "runtime", Apply: applyRuntimeMax},
		{Name: "runtime_min", Group: "runtime", Apply: applyRuntimeMin},
	}
}

func applyGenres(in *RuleInput, fs *models.FilterSet) bool {
	ids := matchTerms(in.Text, genreTerms, true)
	if len(ids) == 0 {
		return false
	}
	fs.Set(models.FilterWithGenres, strings.Join(ids, ","))
	return true
}

// applyRating tries the qualified pattern first. The fallback is only
// consulted when the first pattern does not match at all; an out-of-range
// value from either is dropped silently.
func applyRating(in *RuleInput, fs *models.FilterSet) bool {
	m := ratingRe.FindStringSubmatch(in.Text)
	if m == nil {
		m = ratingFallbackRe.FindStringSubmatch(in.Text)
	}
	if m == nil {
		return false
	}
	v, err := strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64)
	if err != nil || v < 0 || v > 10 {
		return false
	}
	fs.SetFloat(models.FilterRatingFloor, v)
	return true
}

func applySortPopularity(in *RuleInput, fs *models.FilterSet) bool {
	if !containsAny(in.Text, popularityTriggers) {
		return false
	}
	fs.Set(models.FilterSortBy, models.SortPopularityDesc)
	return true
}

func applySortRating(in *RuleInput, fs *models.FilterSet) bool {
	if !containsAny(in.Text, topRatedTriggers) {
		return false
	}
	fs.Set(models.FilterSortBy, models.SortRatingDesc)
	fs.SetInt(models.FilterVoteCountFloor, 1000)
	return true
}

func applyRecentYears(in *RuleInput, fs *models.FilterSet) bool {
	if !strings.Contains(in.Text, "son yıllar") {
		return false
	}
	fs.Set(models.FilterDateFloor, "2020-01-01")
	return true
}

func applyOldMovies(in *RuleInput, fs *models.FilterSet) bool {
	if !strings.Contains(in.Text, "eski filmler") {
		return false
	}
	fs.Set(models.FilterDateCeiling, "2000-01-01")
	return true
}

func applyNewest(in *RuleInput, fs *models.FilterSet) bool {
	if !containsAny(in.Text, newestTriggers) {
		return false
	}
	fs.Set(models.FilterSortBy, models.SortReleaseDateDesc)
	fs.Set(models.FilterDateCeiling, in.Now.Format("2006-01-02"))
	return true
}

// yearFrom returns the first capture of re in text as an int.
func yearFrom(re *regexp.Regexp, text string) (int, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	y, err := strconv.Atoi(m[1])
	return y, err == nil
}

func applyAfterYear(in *RuleInput, fs *models.FilterSet) bool {
	y, ok := yearFrom(afterYearRe, in.Text)
	if !ok {
		return false
	}
	fs.Set(models.FilterDateFloor, strconv.Itoa(y)+"-01-01")
	return true
}

func applyBeforeYear(in *RuleInput, fs *models.FilterSet) bool {
	y, ok := yearFrom(beforeYearRe, in.Text)
	if !ok {
		return false
	}
	fs.Set(models.FilterDateCeiling, strconv.Itoa(y)+"-12-31")
	return true
}

func applyDecade(in *RuleInput, fs *models.FilterSet) bool {
	y, ok := yearFrom(decadeRe, in.Text)
	if !ok {
		return false
	}
	fs.Set(models.FilterDateFloor, strconv.Itoa(y)+"-01-01")
	fs.Set(models.FilterDateCeiling, strconv.Itoa(y+9)+"-12-31")
	return true
}

// applyBareYear also refuses when "sonrası" or "öncesi" appears anywhere,
// even if not attached to a year.
func applyBareYear(in *RuleInput, fs *models.FilterSet) bool {
	if strings.Contains(in.Text, "sonrası") || strings.Contains(in.Text, "öncesi") {
		return false
	}
	y, ok := yearFrom(bareYearRe, in.Text)
	if !ok {
		return false
	}
	fs.Set(models.FilterDateFloor, strconv.Itoa(y)+"-01-01")
	fs.Set(models.FilterDateCeiling, strconv.Itoa(y)+"-12-31")
	return true
}

func applyVoteCount(in *RuleInput, fs *models.FilterSet) bool {
	if !strings.Contains(in.Text, "çok oy alan") {
		return false
	}
	fs.SetInt(models.FilterVoteCountFloor, 1000)
	return true
}

func applyCountries(in *RuleInput, fs *models.FilterSet) bool {
	codes := matchTerms(in.Text, countryTerms, true)
	if len(codes) == 0 {
		return false
	}
	fs.Set(models.FilterOriginCountry, strings.Join(codes, "|"))
	return true
}

func applyPlatforms(in *RuleInput, fs *models.FilterSet) bool {
	ids := matchTerms(in.Text, platformTerms, true)
	if len(ids) == 0 {
		return false
	}
	fs.Set(models.FilterWatchProviders, strings.Join(ids, "|"))
	fs.Set(models.FilterWatchRegion, watchRegion)
	return true
}

func applyRuntimeMax(in *RuleInput, fs *models.FilterSet) bool {
	m := runtimeMaxRe.FindStringSubmatch(in.Text)
	if m == nil {
		return false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return false
	}
	fs.SetInt(models.FilterRuntimeCeiling, n)
	return true
}

func applyRuntimeMin(in *RuleInput, fs *models.FilterSet) bool {
	m := runtimeMinRe.FindStringSubmatch(in.Text)
	if m == nil {
		return false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return false
	}
	fs.SetInt(models.FilterRuntimeFloor, n)
	return true
}
