// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package recommend

// term maps a Turkish keyword onto a TMDB value. Vocabularies are ordered
// slices, not maps: match order decides the order of joined ids.
type term struct {
	key   string
	value string
}

// genreTerms are matched by substring containment, in this order.
var genreTerms = []term{
	{"aksiyon", "28"},
	{"komedi", "35"},
	{"romantik", "10749"},
	{"drama", "18"},
	{"dram", "18"},
	{"korku", "27"},
	{"bilim kurgu", "878"},
	{"macera", "12"},
	{"animasyon", "16"},
	{"aile", "10751"},
	{"gerilim", "53"},
	{"belgesel", "99"},
	{"suç", "80"},
	{"tarih", "36"},
	{"müzik", "10402"},
	{"gizem", "9648"},
	{"savaş", "10752"},
	{"fantastik", "14"},
}

// numberWords are rewritten to digits when they form a whole word.
var numberWords = []term{
	{"bir", "1"},
	{"iki", "2"},
	{"üç", "3"},
	{"dört", "4"},
	{"beş", "5"},
	{"altı", "6"},
	{"yedi", "7"},
	{"sekiz", "8"},
	{"dokuz", "9"},
	{"on", "10"},
}

// countryTerms map origin-country words onto ISO 3166-1 codes.
var countryTerms = []term{
	{"türkiye", "TR"},
	{"yerli", "TR"},
	{"türk", "TR"},
	{"abd", "US"},
	{"amerika", "US"},
	{"hollywood", "US"},
	{"ingiltere", "GB"},
	{"fransa", "FR"},
	{"almanya", "DE"},
	{"kore", "KR"},
	{"güney kore", "KR"},
	{"japonya", "JP"},
	{"hindistan", "IN"},
	{"hint", "IN"},
}

// platformTerms map streaming services onto TMDB watch provider ids.
var platformTerms = []term{
	{"netflix", "8"},
	{"disney", "337"},
	{"disney+", "337"},
	{"amazon", "119"},
	{"prime", "119"},
	{"amazon prime", "119"},
	{"apple", "350"},
	{"apple tv", "350"},
	{"mubi", "11"},
	{"blutv", "329"},
	{"exxen", "597"},
	{"tod", "1923"},
}

// watchRegion is sent whenever a platform filter is set.
const watchRegion = "TR"

var (
	thanksTriggers     = []string{"teşekkür", "tesekkur", "sağ ol", "sag ol", "sağol", "sagol"}
	somethingElseWords = []string{"başka", "beğenmedim"}
	popularityTriggers = []string{"en çok izlenen", "popüler"}
	topRatedTriggers   = []string{"yüksek puanlı", "en iyi", "çok beğenilen"}
	newestTriggers     = []string{"en yeni", "vizyon"}

	// animationWords mark a keyword as animated when one of them appears as
	// a whole word. "animal" must not match.
	animationWords = map[string]struct{}{
		"animation": {}, "animated": {}, "anime": {},
		"cartoon": {}, "cartoons": {}, "claymation": {},
	}
	animationPhrases = []string{"stop motion", "stop-motion"}
)

// animationGenreID is TMDB's Animation genre.
const animationGenreID = 16
