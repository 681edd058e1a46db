package views

import (
	"context"
	"errors"
	"fmt"

	"github.com/codyseavey/lookout/internal/models"
	"github.com/codyseavey/lookout/internal/search"
	"github.com/codyseavey/lookout/internal/services"
)

// Search view kinds accepted by Lookup.Search.
const (
	ViewAnything  = "anything"
	ViewCardboard = "cardboard"
	ViewFlavor    = "flavor"
	ViewRelated   = "related"
	ViewKeyword   = "keyword"
	ViewDeck      = "deck"
)

var ErrUnknownView = errors.New("unknown view")

// MatchSummary describes one match in the display locale.
type MatchSummary struct {
	Kind     search.ItemKind `json:"kind"`
	Key      string          `json:"key"`
	Name     string          `json:"name"`
	Strength float64         `json:"strength"`
}

// SearchOutput is a rendered search plus the matches it was built from.
type SearchOutput struct {
	SearchTerm        string             `json:"search_term"`
	Locale            models.Locale      `json:"locale"`
	TranslationLocale *models.Locale     `json:"translation_locale,omitempty"`
	Matches           []MatchSummary     `json:"matches"`
	View              models.MessageView `json:"view"`
}

// Lookup runs a search and renders it with the builder for the requested
// view. The HTTP handlers, the CLI and the MCP tools all go through it.
type Lookup struct {
	searches  *services.SearchService
	cardboard *CardboardViewBuilder
	flavor    *FlavorViewBuilder
	related   *RelatedViewBuilder
	keywords  KeywordViewBuilder
	decks     *DeckViewBuilder
	anything  *AnythingViewBuilder
}

func NewLookup(emotes Emotes, searches *services.SearchService, expander CardExpander, catalogs services.CatalogProvider) *Lookup {
	cardboard := NewCardboardViewBuilder(emotes, expander)
	decks := NewDeckViewBuilder(emotes)
	return &Lookup{
		searches:  searches,
		cardboard: cardboard,
		flavor:    NewFlavorViewBuilder(emotes, expander),
		related:   NewRelatedViewBuilder(emotes, catalogs),
		decks:     decks,
		anything:  NewAnythingViewBuilder(cardboard, decks),
	}
}

func render[T comparable](ctx context.Context, b ItemViewBuilder[T], result search.TranslatedSearchResult[T], describe func(T) MatchSummary) (*SearchOutput, error) {
	view, err := BuildView(ctx, b, result)
	if err != nil {
		return nil, err
	}
	matches := make([]MatchSummary, len(result.Matches))
	for i, m := range result.Matches {
		matches[i] = describe(result.Resolve(m.Item))
		matches[i].Strength = m.Strength
	}
	return &SearchOutput{
		SearchTerm:        result.SearchTerm,
		Locale:            result.Locale,
		TranslationLocale: result.TranslationLocale,
		Matches:           matches,
		View:              view,
	}, nil
}

func describeCard(c *models.Card) MatchSummary {
	return MatchSummary{Kind: search.KindCard, Key: c.Code, Name: c.DisplayName()}
}

func describeKeyword(k *models.Keyword) MatchSummary {
	return MatchSummary{Kind: search.KindKeyword, Key: k.Key, Name: k.Name}
}

func describeDeck(d *models.Deck) MatchSummary {
	return MatchSummary{Kind: search.KindDeck, Key: d.Code, Name: d.Code}
}

func describeUnion(u search.ItemUnion) MatchSummary {
	return MatchSummary{Kind: u.Kind, Key: u.Key(), Name: u.Name()}
}

// Search runs the search behind view and renders the result.
func (l *Lookup) Search(ctx context.Context, view string, p services.SearchParameters) (*SearchOutput, error) {
	switch view {
	case ViewAnything, "":
		result, err := l.searches.FindAnything(ctx, p)
		if err != nil {
			return nil, err
		}
		return render[search.ItemUnion](ctx, l.anything, result, describeUnion)
	case ViewCardboard, ViewFlavor, ViewRelated:
		result, err := l.searches.FindCard(ctx, p)
		if err != nil {
			return nil, err
		}
		switch view {
		case ViewFlavor:
			return render[*models.Card](ctx, l.flavor, result, describeCard)
		case ViewRelated:
			return render[*models.Card](ctx, l.related, result, describeCard)
		}
		return render[*models.Card](ctx, l.cardboard, result, describeCard)
	case ViewKeyword:
		result, err := l.searches.FindKeyword(ctx, p)
		if err != nil {
			return nil, err
		}
		return render[*models.Keyword](ctx, l.keywords, result, describeKeyword)
	case ViewDeck:
		result, err := l.searches.FindDeck(ctx, p)
		if err != nil {
			return nil, err
		}
		return render[*models.Deck](ctx, l.decks, result, describeDeck)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownView, view)
}
