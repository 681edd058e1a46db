package search

import (
	"sort"

	"github.com/codyseavey/lookout/internal/models"
)

type ItemKind string

const (
	KindCard    ItemKind = "card"
	KindKeyword ItemKind = "keyword"
	KindDeck    ItemKind = "deck"
)

// ItemUnion holds exactly one of a card, keyword or deck.
type ItemUnion struct {
	Kind    ItemKind
	Card    *models.Card
	Keyword *models.Keyword
	Deck    *models.Deck
}

func CardItem(c *models.Card) ItemUnion {
	return ItemUnion{Kind: KindCard, Card: c}
}

func KeywordItem(k *models.Keyword) ItemUnion {
	return ItemUnion{Kind: KindKeyword, Keyword: k}
}

func DeckItem(d *models.Deck) ItemUnion {
	return ItemUnion{Kind: KindDeck, Deck: d}
}

// Name is the plain display name of the wrapped item.
func (u ItemUnion) Name() string {
	switch u.Kind {
	case KindCard:
		return u.Card.DisplayName()
	case KindKeyword:
		return u.Keyword.Name
	case KindDeck:
		return u.Deck.Code
	}
	return ""
}

// Key is the catalog identifier of the wrapped item.
func (u ItemUnion) Key() string {
	switch u.Kind {
	case KindCard:
		return u.Card.Code
	case KindKeyword:
		return u.Keyword.Key
	case KindDeck:
		return u.Deck.Code
	}
	return ""
}

func (u ItemUnion) String() string {
	return string(u.Kind) + " " + u.Key()
}

func lift[T comparable](src TranslatedSearchResult[T], wrap func(T) ItemUnion, matches *[]ItemMatch[ItemUnion], translations map[ItemUnion]ItemUnion) {
	for _, m := range src.Matches {
		item := wrap(m.Item)
		*matches = append(*matches, ItemMatch[ItemUnion]{Item: item, Strength: m.Strength})
		if t, ok := src.Translations[m.Item]; ok {
			translations[item] = wrap(t)
		}
	}
}

// MergeResults combines per-kind results into one list ordered by descending
// strength. Equal strengths keep card, keyword, deck order.
func MergeResults(
	cards TranslatedSearchResult[*models.Card],
	keywords TranslatedSearchResult[*models.Keyword],
	decks TranslatedSearchResult[*models.Deck],
) TranslatedSearchResult[ItemUnion] {
	var matches []ItemMatch[ItemUnion]
	translations := map[ItemUnion]ItemUnion{}

	lift(cards, CardItem, &matches, translations)
	lift(keywords, KeywordItem, &matches, translations)
	lift(decks, DeckItem, &matches, translations)

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Strength > matches[j].Strength
	})

	merged := TranslatedSearchResult[ItemUnion]{
		SearchResult: SearchResult[ItemUnion]{
			SearchTerm: cards.SearchTerm,
			Locale:     cards.Locale,
			Version:    cards.Version,
			Matches:    matches,
		},
		Translations: translations,
	}
	for _, loc := range []*models.Locale{cards.TranslationLocale, keywords.TranslationLocale, decks.TranslationLocale} {
		if loc != nil {
			merged.TranslationLocale = loc
			break
		}
	}
	return merged
}
