package views

import (
	"context"

	"github.com/codyseavey/lookout/internal/models"
	"github.com/codyseavey/lookout/internal/search"
)

// AnythingViewBuilder dispatches merged results to the builder for each kind.
type AnythingViewBuilder struct {
	cards    *CardboardViewBuilder
	keywords KeywordViewBuilder
	decks    *DeckViewBuilder
}

func NewAnythingViewBuilder(cards *CardboardViewBuilder, decks *DeckViewBuilder) *AnythingViewBuilder {
	return &AnythingViewBuilder{cards: cards, decks: decks}
}

func (b *AnythingViewBuilder) ItemName(item search.ItemUnion) string {
	switch item.Kind {
	case search.KindCard:
		return b.cards.ItemName(item.Card)
	case search.KindKeyword:
		return b.keywords.ItemName(item.Keyword)
	case search.KindDeck:
		return b.decks.ItemName(item.Deck)
	}
	return ""
}

func (b *AnythingViewBuilder) ExpandItem(ctx context.Context, item search.ItemUnion) ([]search.ItemUnion, error) {
	if item.Kind != search.KindCard {
		return []search.ItemUnion{item}, nil
	}
	cards, err := b.cards.ExpandItem(ctx, item.Card)
	if err != nil {
		return nil, err
	}
	out := make([]search.ItemUnion, len(cards))
	for i, c := range cards {
		out[i] = search.CardItem(c)
	}
	return out, nil
}

func (b *AnythingViewBuilder) BuildItemView(ctx context.Context, item search.ItemUnion) (models.MessageView, error) {
	switch item.Kind {
	case search.KindCard:
		return b.cards.BuildItemView(ctx, item.Card)
	case search.KindKeyword:
		return b.keywords.BuildItemView(ctx, item.Keyword)
	case search.KindDeck:
		return b.decks.BuildItemView(ctx, item.Deck)
	}
	return models.MessageView{}, nil
}
