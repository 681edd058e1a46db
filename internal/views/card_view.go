package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/codyseavey/lookout/internal/models"
	"github.com/codyseavey/lookout/internal/services"
)

// CardExpander adds related printings after a card. *services.ChampionExpander
// satisfies it.
type CardExpander interface {
	Expand(ctx context.Context, card *models.Card) ([]*models.Card, error)
}

// CardName decorates collectible card names with their region emote.
func CardName(emotes Emotes, card *models.Card) string {
	name := card.Name
	if name == "" {
		name = "Unknown Card"
	}
	if !card.Collectible {
		return name
	}
	if card.Region == nil {
		return emotes.Decorate(regionlessKey, regionlessAbbr, name)
	}
	return emotes.Decorate(card.Region.Key, card.Region.Abbreviation, name)
}

func regionName(emotes Emotes, region *models.Region) string {
	return emotes.Decorate(region.Key, region.Abbreviation, region.Name)
}

func cardFooter(card *models.Card) string {
	parts := []string{card.Code}
	if card.Set != "" {
		parts = append(parts, card.Set)
	}
	if card.RarityRef != "" && card.RarityRef != "None" {
		parts = append(parts, card.RarityRef)
	}
	return strings.Join(parts, " · ")
}

func cardStats(card *models.Card) string {
	parts := []string{fmt.Sprintf("**%d** mana", card.Cost)}
	if card.Type == models.TypeUnit {
		parts = append(parts, fmt.Sprintf("**%d|%d**", card.Attack, card.Health))
	}
	kind := card.Type
	if card.Supertype != "" {
		kind = card.Supertype + " " + kind
	}
	if kind != "" {
		parts = append(parts, kind)
	}
	if card.SpellSpeed != "" {
		parts = append(parts, card.SpellSpeed)
	}
	if len(card.Subtypes) > 0 {
		parts = append(parts, strings.Join(card.Subtypes, ", "))
	}
	return strings.Join(parts, " · ")
}

// CardboardView shows everything printed on a card.
func CardboardView(emotes Emotes, card *models.Card) models.MessageView {
	var sb strings.Builder
	sb.WriteString(cardStats(card))
	if len(card.Keywords) > 0 {
		sb.WriteString("\n\n" + bullet + strings.Join(card.Keywords, " "+bullet))
	}
	if card.Description != "" {
		sb.WriteString("\n\n" + card.Description)
	}
	if card.HasLevelup() {
		sb.WriteString("\n\n**Level up:** " + card.LevelupDescription)
	}

	return models.EmbedView(&models.Embed{
		Title:       CardName(emotes, card),
		Description: sb.String(),
		Color:       embedColor,
		ImageURL:    card.ImageURL,
		Footer:      cardFooter(card),
	})
}

// FlavorView shows a card's full art and flavor text.
func FlavorView(card *models.Card) models.MessageView {
	var desc string
	if card.FlavorText != "" {
		desc = "*" + card.FlavorText + "*"
	}
	var footer string
	if card.ArtistName != "" {
		footer = "Art by " + card.ArtistName
	}
	return models.EmbedView(&models.Embed{
		Title:       card.DisplayName(),
		Description: desc,
		Color:       embedColor,
		ImageURL:    card.FullArtURL,
		Footer:      footer,
	})
}

// RelatedView lists the cards associated with card, resolved in its catalog.
func RelatedView(emotes Emotes, card *models.Card, catalog *models.Catalog) models.MessageView {
	var lines []string
	for _, code := range card.AssociatedCodes {
		name := code
		if related, ok := catalog.Cards[code]; ok {
			name = CardName(emotes, related)
		}
		lines = append(lines, fmt.Sprintf("%s`%s` %s", bullet, code, name))
	}
	desc := "No related cards."
	if len(lines) > 0 {
		desc = strings.Join(lines, "\n")
	}
	return models.EmbedView(&models.Embed{
		Title:        "Related to " + card.DisplayName(),
		Description:  desc,
		Color:        embedColor,
		ThumbnailURL: card.ImageURL,
		Footer:       card.Code,
	})
}

type cardNames struct {
	emotes Emotes
}

func (n cardNames) ItemName(card *models.Card) string {
	return CardName(n.emotes, card)
}

// CardboardViewBuilder renders the printed card and expands champions into
// their level up forms.
type CardboardViewBuilder struct {
	cardNames
	expander CardExpander
}

func NewCardboardViewBuilder(emotes Emotes, expander CardExpander) *CardboardViewBuilder {
	return &CardboardViewBuilder{cardNames: cardNames{emotes}, expander: expander}
}

func (b *CardboardViewBuilder) ExpandItem(ctx context.Context, card *models.Card) ([]*models.Card, error) {
	return b.expander.Expand(ctx, card)
}

func (b *CardboardViewBuilder) BuildItemView(_ context.Context, card *models.Card) (models.MessageView, error) {
	return CardboardView(b.emotes, card), nil
}

// FlavorViewBuilder renders full art and flavor text, expanding champions.
type FlavorViewBuilder struct {
	cardNames
	expander CardExpander
}

func NewFlavorViewBuilder(emotes Emotes, expander CardExpander) *FlavorViewBuilder {
	return &FlavorViewBuilder{cardNames: cardNames{emotes}, expander: expander}
}

func (b *FlavorViewBuilder) ExpandItem(ctx context.Context, card *models.Card) ([]*models.Card, error) {
	return b.expander.Expand(ctx, card)
}

func (b *FlavorViewBuilder) BuildItemView(_ context.Context, card *models.Card) (models.MessageView, error) {
	return FlavorView(card), nil
}

// RelatedViewBuilder lists associated cards. It never expands.
type RelatedViewBuilder struct {
	cardNames
	catalogs services.CatalogProvider
}

func NewRelatedViewBuilder(emotes Emotes, catalogs services.CatalogProvider) *RelatedViewBuilder {
	return &RelatedViewBuilder{cardNames: cardNames{emotes}, catalogs: catalogs}
}

func (b *RelatedViewBuilder) ExpandItem(_ context.Context, card *models.Card) ([]*models.Card, error) {
	return []*models.Card{card}, nil
}

func (b *RelatedViewBuilder) BuildItemView(ctx context.Context, card *models.Card) (models.MessageView, error) {
	catalog, err := b.catalogs.GetCatalog(ctx, card.Locale, card.Version)
	if err != nil {
		return models.MessageView{}, err
	}
	return RelatedView(b.emotes, card, catalog), nil
}
