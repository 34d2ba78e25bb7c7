// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package recommend

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/cinemood/internal/cache"
	"github.com/tomtom215/cinemood/internal/catalog"
	"github.com/tomtom215/cinemood/internal/metrics"
	"github.com/tomtom215/cinemood/internal/models"
)

// Curated list names, also the cache keys.
const (
	ListPopular       = "popular"
	ListEditorsChoice = "editors_choice"
)

// CuratedTitle is one entry of a hand-picked list. A zero Year searches
// without a year filter.
type CuratedTitle struct {
	Title string
	Year  int
}

// popularTitles are the all-time box office leaders in Turkish cinemas.
var popularTitles = []CuratedTitle{
	{"Titanic", 1997},
	{"Hızlı ve Öfkeli 7", 2015},
	{"Örümcek-Adam: Eve Dönüş Yok", 2021},
	{"Avatar: Suyun Yolu", 2022},
	{"Hızlı ve Öfkeli 8", 2017},
	{"Avatar", 2009},
	{"Avengers: Endgame", 2019},
	{"Ters Yüz 2", 2024},
	{"Avengers: Sonsuzluk Savaşı", 2018},
	{"Joker", 2019},
	{"Buz Devri 4: Kıtalar Ayrılıyor", 2012},
	{"Yüzüklerin Efendisi: Yüzük Kardeşliği", 2001},
	{"Oppenheimer", 2023},
	{"Truva", 2004},
	{"Hobbit: Beş Ordunun Savaşı", 2014},
	{"Zootropolis 2", 2025},
	{"Hızlı ve Öfkeli 10", 2023},
	{"Doktor Strange Çoklu Evren Çılgınlığında", 2022},
	{"Karayip Korsanları: Salazar'ın İntikamı", 2017},
	{"Yüzüklerin Efendisi: İki Kule", 2002},
	{"2012", 2009},
	{"Matrix Reloaded", 2003},
	{"Batman v Superman: Adaletin Şafağı", 2016},
	{"Deadpool & Wolverine", 2024},
	{"Hızlı ve Öfkeli: Hobbs ve Shaw", 2019},
	{"Buz Devri 3: Dinozorların Şafağı", 2009},
	{"Alacakaranlık Efsanesi: Şafak Vakti Bölüm 2", 2012},
	{"Altıncı His", 2000},
	{"Barbie", 2023},
	{"Alacakaranlık Efsanesi: Şafak Vakti Bölüm 1", 2011},
	{"Avatar: Ateş ve Kül", 2025},
	{"Deadpool 2", 2018},
	{"Matrix", 1999},
	{"Moana", 2017},
	{"Buz Devri 5: Büyük Çarpışma", 2016},
	{"Yüzüklerin Efendisi: Kral'ın Dönüşü", 2003},
	{"Yenilmezler: Ultron Çağı", 2015},
	{"Karlar Ülkesi II", 2019},
	{"Son Umut", 2014},
	{"İnanılmaz Aile 2", 2018},
}

var editorsChoiceTitles = []CuratedTitle{
	{Title: "No Time to Die"},
	{Title: "Shoplifters"},
	{Title: "Manchester by the Sea"},
	{Title: "Extraction", Year: 2020},
	{Title: "Train to Busan"},
	{Title: "Kabin Bagajı"},
	{Title: "Red Notice"},
	{Title: "Sihirbazlar Çetesi"},
	{Title: "Knives Out"},
	{Title: "Run All Night"},
	{Title: "Kader Ajanları"},
	{Title: "Taken"},
	{Title: "Jack Reacher"},
	{Title: "The Avengers"},
	{Title: "I Believe in Santa"},
	{Title: "B&B Merry"},
	{Title: "The Amateur"},
	{Title: "Top Gun: Maverick"},
	{Title: "Elysium"},
}

// CuratedLists resolves hand-picked title lists against the catalog and
// keeps each resolved list in memory.
type CuratedLists struct {
	catalog     catalog.Service
	lists       map[string][]CuratedTitle
	cache       *cache.Cache[[]models.MovieRecord]
	concurrency int
	logger      zerolog.Logger
}

// NewCuratedLists creates the popular and editors' choice lists.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCuratedLists(svc catalog.Service, ttl time.Duration, concurrency int, logger zerolog.Logger) *CuratedLists {
	if concurrency < 1 {
		concurrency = 1
	}
	return &CuratedLists{
		catalog: svc,
		lists: map[string][]CuratedTitle{
			ListPopular:       popularTitles,
			ListEditorsChoice: editorsChoiceTitles,
		},
		cache:       cache.New[[]models.MovieRecord]("curated", ttl),
		concurrency: concurrency,
		logger:      logger.With().Str("component", "curated").Logger(),
	}
}

// Get returns the resolved list called name, in list order. Titles the
// catalog cannot find, or that fail to load, are skipped. Only non-empty
// results are cached. Unknown names return nil.
func (c *CuratedLists) Get(ctx context.Context, name string) []models.MovieRecord {
	titles, ok := c.lists[name]
	if !ok {
		return nil
	}
	if movies, ok := c.cache.Get(name); ok {
		return movies
	}

	slots := make([]*models.MovieRecord, len(titles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, t := range titles {
		g.Go(func() error {
			query := strings.ReplaceAll(t.Title, "–", "-")
			res, err := c.catalog.Search(gctx, query, t.Year)
			if err != nil {
				c.logger.Debug().Err(err).Str("title", t.Title).Msg("Curated title lookup failed")
				return nil
			}
			if len(res) > 0 {
				slots[i] = &res[0]
			}
			return nil
		})
	}
	_ = g.Wait()

	movies := make([]models.MovieRecord, 0, len(slots))
	for _, m := range slots {
		if m != nil {
			movies = append(movies, *m)
		}
	}

	if len(movies) == 0 {
		metrics.RecordCatalogFallback(name, "empty")
		c.logger.Warn().Str("list", name).Msg("Curated list resolved to no movies")
		return movies
	}
	c.cache.Set(name, movies)
	return movies
}

// Close stops the list cache.
func (c *CuratedLists) Close() {
	c.cache.Close()
}
