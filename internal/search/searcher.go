// Package search ranks catalog items against free-text queries.
//
// A CatalogItemSearcher canonicalizes the query, scores every candidate name
// with a TermMatcher, applies downscalers, drops matches under the threshold,
// keeps the strongest item of each name group and sorts what is left.
package search

import (
	"sort"
	"unicode/utf8"

	"github.com/codyseavey/lookout/internal/models"
)

// CatalogItemSearcher searches one catalog for one item kind. It is cheap to
// build and is meant to be created per request.
type CatalogItemSearcher[T any] struct {
	catalog       *models.Catalog
	grouper       NameGrouper[T]
	canonicalizer Canonicalizer
	matcher       TermMatcher
	downscalers   []Downscaler[T]
	cfg           Config
}

func NewCatalogItemSearcher[T any](catalog *models.Catalog, grouper NameGrouper[T], cfg Config, downscalers ...Downscaler[T]) (*CatalogItemSearcher[T], error) {
	matcher, err := NewTermMatcher(cfg)
	if err != nil {
		return nil, err
	}
	return &CatalogItemSearcher[T]{
		catalog:       catalog,
		grouper:       grouper,
		canonicalizer: NewCanonicalizer(cfg.FoldAccents),
		matcher:       matcher,
		downscalers:   downscalers,
		cfg:           cfg,
	}, nil
}

type scoredCandidate[T any] struct {
	candidate Candidate[T]
	name      string
	strength  float64
}

// before orders by strength, then shorter name, then key.
func (a scoredCandidate[T]) before(b scoredCandidate[T]) bool {
	if a.strength != b.strength {
		return a.strength > b.strength
	}
	la, lb := utf8.RuneCountInString(a.name), utf8.RuneCountInString(b.name)
	if la != lb {
		return la < lb
	}
	return a.candidate.Key < b.candidate.Key
}

func (s *CatalogItemSearcher[T]) downscale(item T, raw float64) float64 {
	if s.cfg.PreserveStrongMatches && raw > s.cfg.StrongMatchCutoff {
		return raw
	}
	strength := raw
	for _, d := range s.downscalers {
		strength *= d.Multiplier(item)
	}
	return strength
}

func (s *CatalogItemSearcher[T]) Search(term string) SearchResult[T] {
	result := SearchResult[T]{SearchTerm: term, Matches: []ItemMatch[T]{}}
	if s.catalog == nil {
		return result
	}
	result.Locale = s.catalog.Locale
	result.Version = s.catalog.Version

	query := s.canonicalizer.Canonicalize(term)
	rawScores := make(map[string]float64)
	groups := make(map[string]scoredCandidate[T])

	for _, cand := range s.grouper.Candidates(s.catalog) {
		name := s.canonicalizer.Canonicalize(cand.Name)
		if name == "" {
			continue
		}

		raw, ok := rawScores[name]
		if !ok {
			raw = s.matcher.Score(query, name)
			rawScores[name] = raw
		}

		strength := s.downscale(cand.Item, raw)
		if strength < s.cfg.MatchThreshold {
			continue
		}

		sc := scoredCandidate[T]{candidate: cand, name: name, strength: strength}
		if cur, ok := groups[name]; !ok || sc.before(cur) {
			groups[name] = sc
		}
	}

	ranked := make([]scoredCandidate[T], 0, len(groups))
	for _, sc := range groups {
		ranked = append(ranked, sc)
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].before(ranked[j]) })

	for _, sc := range ranked {
		result.Matches = append(result.Matches, ItemMatch[T]{Item: sc.candidate.Item, Strength: sc.strength})
	}
	return result
}
