// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package recommend

import (
	"strings"
	"time"
	"unicode"

	"github.com/tomtom215/cinemood/internal/models"
)

// RuleInput is what every extraction rule sees: normalised text and the
// request time, for rules that resolve relative dates.
type RuleInput struct {
	Text string
	Now  time.Time
}

// Rule is one extraction step. Apply writes into the filter set and reports
// whether it fired.
//
// Rules sharing a Group form a precedence cascade: once a rule fires, rules
// of the same group with a higher Rank are skipped. Rules of equal rank
// never block each other.
type Rule struct {
	Name  string
	Group string
	Rank  int
	Apply func(in *RuleInput, fs *models.FilterSet) bool
}

// RuleEngine evaluates rules in slice order.
type RuleEngine struct {
	rules []Rule
}

// NewRuleEngine creates an engine over rules. Within a group, rules should
// appear in ascending rank.
func NewRuleEngine(rules []Rule) *RuleEngine {
	return &RuleEngine{rules: rules}
}

// Rules returns the rules in evaluation order.
func (e *RuleEngine) Rules() []Rule {
	return e.rules
}

// Run applies every rule not blocked by its group and returns the names of
// the rules that fired, in order.
func (e *RuleEngine) Run(in *RuleInput, fs *models.FilterSet) []string {
	blockedAbove := make(map[string]int)
	var fired []string

	for i := range e.rules {
		r := &e.rules[i]
		if limit, ok := blockedAbove[r.Group]; ok && r.Rank > limit {
			continue
		}
		if !r.Apply(in, fs) {
			continue
		}
		fired = append(fired, r.Name)
		if limit, ok := blockedAbove[r.Group]; !ok || r.Rank < limit {
			blockedAbove[r.Group] = r.Rank
		}
	}
	return fired
}

// Lower lower-cases s with the Turkish dotted capital I folded to a plain i,
// so "İzmir" and "izmir" match the same keywords.
func Lower(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "İ", "i"))
}

// containsAny reports whether s contains any of subs.
func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) || r == '_'
}

// replaceWords rewrites whole words of s found in repl. A word is a maximal
// run of letters, digits, marks and underscores.
func replaceWords(s string, repl map[string]string) string {
	var b strings.Builder
	b.Grow(len(s))

	start := -1
	flush := func(end int) {
		w := s[start:end]
		if r, ok := repl[w]; ok {
			b.WriteString(r)
		} else {
			b.WriteString(w)
		}
		start = -1
	}

	for i, r := range s {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			flush(i)
		}
		b.WriteRune(r)
	}
	if start >= 0 {
		flush(len(s))
	}
	return b.String()
}

// matchTerms returns the values of terms whose key is a substring of text,
// in vocabulary order. With dedupe, repeated values keep their first position.
func matchTerms(text string, terms []term, dedupe bool) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, t := range terms {
		if !strings.Contains(text, t.key) {
			continue
		}
		if dedupe {
			if _, ok := seen[t.value]; ok {
				continue
			}
			seen[t.value] = struct{}{}
		}
		out = append(out, t.value)
	}
	return out
}
