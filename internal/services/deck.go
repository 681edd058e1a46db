package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/codyseavey/lookout/internal/deckcode"
	"github.com/codyseavey/lookout/internal/models"
)

var ErrInvalidDeck = errors.New("invalid deck")

// DeckFromCode decodes a deck code and resolves every card in catalog. A code
// naming a card the catalog does not have is rejected.
func DeckFromCode(code string, catalog *models.Catalog) (*models.Deck, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	entries, err := deckcode.Decode(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDeck, err)
	}

	deck := &models.Deck{
		Code:    code,
		Locale:  catalog.Locale,
		Version: catalog.Version,
		Cards:   make([]models.CardAndCount, 0, len(entries)),
	}
	for _, e := range entries {
		card, ok := catalog.Cards[e.Code()]
		if !ok {
			return nil, fmt.Errorf("%w: unknown card %s", ErrInvalidDeck, e.Code())
		}
		deck.Cards = append(deck.Cards, models.CardAndCount{Card: card, Count: e.Count})
	}
	return deck, nil
}

// EncodeDeck builds the deck code for a list of cards.
func EncodeDeck(cards []models.CardAndCount) (string, error) {
	entries := make([]deckcode.CardCount, 0, len(cards))
	for _, cc := range cards {
		code := cc.Card.CardCode
		entries = append(entries, deckcode.CardCount{
			Set:     code.Set,
			Faction: code.Faction,
			Number:  code.Number,
			Count:   cc.Count,
		})
	}
	code, err := deckcode.Encode(entries)
	if err != nil {
		return "", fmt.Errorf("failed to encode deck: %w", err)
	}
	return code, nil
}
