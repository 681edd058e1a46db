package services

import (
	"context"

	"github.com/codyseavey/lookout/internal/metrics"
	"github.com/codyseavey/lookout/internal/models"
)

// ChampionExpander adds the level 2 and level 3 forms of a champion after
// its base card. Classification uses the home catalog so it does not depend
// on the display locale.
type ChampionExpander struct {
	catalogs CatalogProvider
}

func NewChampionExpander(catalogs CatalogProvider) *ChampionExpander {
	return &ChampionExpander{catalogs: catalogs}
}

// Expand returns card followed by its higher tiers. Any card that is not a
// collectible base champion, or whose tiers cannot be told apart, expands to
// itself.
func (e *ChampionExpander) Expand(ctx context.Context, card *models.Card) ([]*models.Card, error) {
	if !card.Collectible || card.CardCode.TNumber != 0 {
		return []*models.Card{card}, nil
	}

	home, err := e.catalogs.GetHomeCatalog(ctx, card.Version)
	if err != nil {
		return nil, err
	}
	homeCard, ok := home.Cards[card.Code]
	if !ok || !homeCard.IsChampion() {
		return []*models.Card{card}, nil
	}

	tiers := championTiers(homeCard, home)
	if len(tiers) == 0 {
		return []*models.Card{card}, nil
	}

	display, err := e.catalogs.GetCatalog(ctx, card.Locale, card.Version)
	if err != nil {
		return nil, err
	}

	expansion := []*models.Card{card}
	for _, code := range tiers {
		if c, ok := display.Cards[code]; ok {
			expansion = append(expansion, c)
		}
	}
	return expansion, nil
}

// championTiers returns the codes of the tier 2 and, if present, tier 3
// forms of base, in tier order. It returns nil when the tiers are ambiguous.
func championTiers(base *models.Card, home *models.Catalog) []string {
	groups := make(map[string][]*models.Card)
	var names []string
	for _, c := range home.SortedCards() {
		if c.CardCode.TNumber == 0 || !c.CardCode.SameBase(base.CardCode) {
			continue
		}
		if !c.IsChampion() || c.Type != models.TypeUnit {
			continue
		}
		if _, seen := groups[c.Name]; !seen {
			names = append(names, c.Name)
		}
		groups[c.Name] = append(groups[c.Name], c)
	}

	// A tier 1 variant with its own name shares the regular tier line.
	group := groups[base.Name]
	if len(names) == 1 {
		group = groups[names[0]]
	}

	switch len(group) {
	case 0:
		metrics.ChampionExpansionsTotal.WithLabelValues("none").Inc()
		return nil
	case 1:
		metrics.ChampionExpansionsTotal.WithLabelValues("tier2").Inc()
		return []string{group[0].Code}
	case 2:
		a, b := group[0], group[1]
		if a.HasLevelup() == b.HasLevelup() {
			metrics.ChampionExpansionsTotal.WithLabelValues("ambiguous").Inc()
			return nil
		}
		if b.HasLevelup() {
			a, b = b, a
		}
		metrics.ChampionExpansionsTotal.WithLabelValues("tier3").Inc()
		return []string{a.Code, b.Code}
	default:
		metrics.ChampionExpansionsTotal.WithLabelValues("ambiguous").Inc()
		return nil
	}
}
