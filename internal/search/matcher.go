package search

import (
	"errors"
	"fmt"
	"math"

	"github.com/hbollon/go-edlib"
)

var ErrUnknownMatcher = errors.New("unknown term matcher")

const MatcherSubstring = "substring"

// TermMatcher scores a canonical candidate against a canonical query.
// 1 is a perfect match and 0 means nothing in common.
type TermMatcher interface {
	Score(query, candidate string) float64
}

// LevenshteinSubstringMatcher scores the query against the best aligned
// substring of the candidate, so "lul" matches "lulu" perfectly.
//
// An alignment with edit distance k scores (1 - k/len(query))^(1/w), where
// w = 1 + (BookendWeight-1) / (1+d)^BookendTaper and d is the number of
// candidate runes between the alignment and the nearest end of the candidate.
// A BookendWeight of 1 disables the bookend preference.
type LevenshteinSubstringMatcher struct {
	BookendWeight float64
	BookendTaper  float64
}

func NewLevenshteinSubstringMatcher(weight, taper float64) *LevenshteinSubstringMatcher {
	if weight < 1 || math.IsNaN(weight) {
		weight = 1
	}
	if taper < 0 || math.IsNaN(taper) {
		taper = 0
	}
	return &LevenshteinSubstringMatcher{BookendWeight: weight, BookendTaper: taper}
}

func (m *LevenshteinSubstringMatcher) Score(query, candidate string) float64 {
	q := []rune(query)
	c := []rune(candidate)
	if len(q) == 0 {
		if len(c) == 0 {
			return 1
		}
		return 0
	}

	n := len(c)
	// prev/cur hold distances for the query prefix ending at each candidate
	// position; starts track where that alignment began.
	prev := make([]int, n+1)
	prevStart := make([]int, n+1)
	cur := make([]int, n+1)
	curStart := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prevStart[j] = j
	}

	for i := 1; i <= len(q); i++ {
		cur[0] = i
		curStart[0] = 0
		for j := 1; j <= n; j++ {
			cost := 1
			if q[i-1] == c[j-1] {
				cost = 0
			}
			// Equal distances keep the start nearest an end of the candidate.
			nearer := func(a, b int) bool { return min(a, n-j) < min(b, n-j) }
			best, start := prev[j-1]+cost, prevStart[j-1]
			if d := prev[j] + 1; d < best || (d == best && nearer(prevStart[j], start)) {
				best, start = d, prevStart[j]
			}
			if d := cur[j-1] + 1; d < best || (d == best && nearer(curStart[j-1], start)) {
				best, start = d, curStart[j-1]
			}
			cur[j], curStart[j] = best, start
		}
		prev, cur = cur, prev
		prevStart, curStart = curStart, prevStart
	}

	score := 0.0
	for end := 0; end <= n; end++ {
		edge := min(prevStart[end], n-end)
		weight := 1 + (m.BookendWeight-1)/math.Pow(float64(1+edge), m.BookendTaper)
		base := 1 - float64(prev[end])/float64(len(q))
		if base <= 0 {
			continue
		}
		s := math.Pow(base, 1/weight)
		if s > score {
			score = s
		}
	}
	return clamp01(score)
}

// EditSimilarityMatcher compares whole strings with one of go-edlib's
// similarity algorithms.
type EditSimilarityMatcher struct {
	algorithm edlib.Algorithm
}

func (m *EditSimilarityMatcher) Score(query, candidate string) float64 {
	if query == "" {
		if candidate == "" {
			return 1
		}
		return 0
	}
	sim, err := edlib.StringsSimilarity(query, candidate, m.algorithm)
	if err != nil {
		return 0
	}
	return clamp01(float64(sim))
}

var edlibAlgorithms = map[string]edlib.Algorithm{
	"levenshtein":             edlib.Levenshtein,
	"damerau-levenshtein":     edlib.DamerauLevenshtein,
	"osa-damerau-levenshtein": edlib.OSADamerauLevenshtein,
	"jaro":                    edlib.Jaro,
	"jaro-winkler":            edlib.JaroWinkler,
	"lcs":                     edlib.Lcs,
}

// MatcherNames lists every accepted term_matcher setting.
func MatcherNames() []string {
	return []string{
		MatcherSubstring, "levenshtein", "damerau-levenshtein",
		"osa-damerau-levenshtein", "jaro", "jaro-winkler", "lcs",
	}
}

// NewTermMatcher builds the matcher named by cfg.Matcher. An empty name
// selects the substring matcher.
func NewTermMatcher(cfg Config) (TermMatcher, error) {
	switch cfg.Matcher {
	case "", MatcherSubstring:
		return NewLevenshteinSubstringMatcher(cfg.BookendWeight, cfg.BookendTaper), nil
	}
	algo, ok := edlibAlgorithms[cfg.Matcher]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMatcher, cfg.Matcher)
	}
	return &EditSimilarityMatcher{algorithm: algo}, nil
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
