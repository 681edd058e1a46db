package views

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/codyseavey/lookout/internal/models"
)

const championGroup = "Champions"

// groupName files champions together and everything else under its type.
func groupName(card *models.Card) string {
	if card.RarityRef == models.RarityChampion {
		return championGroup
	}
	if card.Type == "" {
		return "Other"
	}
	return card.Type
}

// DeckView lists a deck's cards grouped by type and sorted by cost, with a
// tally of copies per region.
func DeckView(emotes Emotes, deck *models.Deck) models.MessageView {
	groups := make(map[string][]models.CardAndCount)
	var order []string
	tally := make(map[*models.Region]int)
	var regions []*models.Region

	for _, cc := range deck.Cards {
		name := groupName(cc.Card)
		if _, ok := groups[name]; !ok {
			order = append(order, name)
		}
		groups[name] = append(groups[name], cc)

		if r := cc.Card.Region; r != nil {
			if _, ok := tally[r]; !ok {
				regions = append(regions, r)
			}
			tally[r] += cc.Count
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		if (order[i] == championGroup) != (order[j] == championGroup) {
			return order[i] == championGroup
		}
		return order[i] < order[j]
	})
	sort.SliceStable(regions, func(i, j int) bool {
		if tally[regions[i]] != tally[regions[j]] {
			return tally[regions[i]] > tally[regions[j]]
		}
		return regions[i].Name < regions[j].Name
	})

	var desc []string
	for _, r := range regions {
		desc = append(desc, fmt.Sprintf("%s: **%d**", regionName(emotes, r), tally[r]))
	}

	embed := &models.Embed{
		Title:       fmt.Sprintf("Deck (%d cards)", deck.CardCount()),
		Description: strings.Join(desc, "\n"),
		Color:       embedColor,
		Footer:      deck.Code,
	}
	for _, name := range order {
		cards := groups[name]
		sort.SliceStable(cards, func(i, j int) bool {
			if cards[i].Card.Cost != cards[j].Card.Cost {
				return cards[i].Card.Cost < cards[j].Card.Cost
			}
			return cards[i].Card.DisplayName() < cards[j].Card.DisplayName()
		})

		count := 0
		lines := make([]string, 0, len(cards))
		for _, cc := range cards {
			count += cc.Count
			lines = append(lines, fmt.Sprintf("`%d×` %s *(%d)*", cc.Count, CardName(emotes, cc.Card), cc.Card.Cost))
		}
		embed.Fields = append(embed.Fields, models.EmbedField{
			Name:   fmt.Sprintf("%s %s (%d)", titleBullet, name, count),
			Value:  strings.Join(lines, "\n"),
			Inline: true,
		})
	}
	return models.EmbedView(embed)
}

type DeckViewBuilder struct {
	emotes Emotes
}

func NewDeckViewBuilder(emotes Emotes) *DeckViewBuilder {
	return &DeckViewBuilder{emotes: emotes}
}

func (b *DeckViewBuilder) ItemName(deck *models.Deck) string {
	return deck.Code
}

func (b *DeckViewBuilder) ExpandItem(_ context.Context, deck *models.Deck) ([]*models.Deck, error) {
	return []*models.Deck{deck}, nil
}

func (b *DeckViewBuilder) BuildItemView(_ context.Context, deck *models.Deck) (models.MessageView, error) {
	return DeckView(b.emotes, deck), nil
}
