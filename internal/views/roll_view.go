package views

import (
	"fmt"

	"github.com/codyseavey/lookout/internal/models"
	"github.com/codyseavey/lookout/internal/services"
)

func champString(emotes Emotes, champ *models.Card) string {
	if champ.Region == nil {
		return champ.DisplayName()
	}
	return emotes.Decorate(champ.Region.Key, champ.Region.Abbreviation, champ.DisplayName())
}

// ChampionRollView announces a rolled champion pair.
func ChampionRollView(emotes Emotes, roll *services.ChampionRoll) models.MessageView {
	var extra string
	switch {
	case roll.MonoRegion:
		extra = " *(mono-region!!)*"
	case roll.ExtraRegion != nil:
		extra = fmt.Sprintf(" **+ %s**", regionName(emotes, roll.ExtraRegion))
	}
	msg := fmt.Sprintf("%s\n\n**%s × %s**%s\n", roll.Reply, champString(emotes, roll.First), champString(emotes, roll.Second), extra)
	return models.TextView(msg)
}

// DeckRollView sends the deck code as text, then the deck itself.
func DeckRollView(emotes Emotes, roll *services.DeckRoll) models.MessageView {
	view := models.TextView(roll.Reply + "\n" + roll.Deck.Code)
	view.Messages = append(view.Messages, DeckView(emotes, roll.Deck).Messages...)
	return view
}
