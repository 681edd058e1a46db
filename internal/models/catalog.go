package models

import (
	"fmt"
	"sort"
)

type Keyword struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// Vocab marks keywords built from a vocabulary term.
	Vocab bool `json:"vocab,omitempty"`
}

func (k *Keyword) String() string {
	return fmt.Sprintf("keyword %s (%s)", k.Key, k.Name)
}

type VocabTerm struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type SetInfo struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	IconURL string `json:"icon_url,omitempty"`
}

// Catalog is an immutable snapshot of everything Data Dragon publishes for one
// locale and version. Callers must not mutate it once built.
type Catalog struct {
	Locale     Locale
	Version    Version
	Cards      map[string]*Card
	Keywords   map[string]*Keyword
	VocabTerms map[string]*VocabTerm
	Regions    map[string]*Region
	Sets       map[string]*SetInfo
}

func NewCatalog(locale Locale, version Version) *Catalog {
	return &Catalog{
		Locale:     locale,
		Version:    version,
		Cards:      make(map[string]*Card),
		Keywords:   make(map[string]*Keyword),
		VocabTerms: make(map[string]*VocabTerm),
		Regions:    make(map[string]*Region),
		Sets:       make(map[string]*SetInfo),
	}
}

// SortedCards returns the cards ordered by code.
func (c *Catalog) SortedCards() []*Card {
	cards := make([]*Card, 0, len(c.Cards))
	for _, card := range c.Cards {
		cards = append(cards, card)
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].Code < cards[j].Code })
	return cards
}

func (c *Catalog) SortedKeywords() []*Keyword {
	kws := make([]*Keyword, 0, len(c.Keywords))
	for _, kw := range c.Keywords {
		kws = append(kws, kw)
	}
	sort.Slice(kws, func(i, j int) bool { return kws[i].Key < kws[j].Key })
	return kws
}

func (c *Catalog) SortedVocabTerms() []*VocabTerm {
	terms := make([]*VocabTerm, 0, len(c.VocabTerms))
	for _, vt := range c.VocabTerms {
		terms = append(terms, vt)
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i].Key < terms[j].Key })
	return terms
}

func (c *Catalog) SortedRegions() []*Region {
	regions := make([]*Region, 0, len(c.Regions))
	for _, r := range c.Regions {
		regions = append(regions, r)
	}
	sort.Slice(regions, func(i, j int) bool { return regions[i].Key < regions[j].Key })
	return regions
}

// RegionByAbbreviation finds a region by its two-letter deck code faction.
func (c *Catalog) RegionByAbbreviation(abbr string) (*Region, bool) {
	for _, r := range c.Regions {
		if r.Abbreviation == abbr {
			return r, true
		}
	}
	return nil, false
}
