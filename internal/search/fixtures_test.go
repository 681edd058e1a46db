package search

import "github.com/codyseavey/lookout/internal/models"

func testCard(code, name string, collectible bool) *models.Card {
	cc, _ := models.ParseCardCode(code)
	return &models.Card{
		Code:        code,
		CardCode:    cc,
		Name:        name,
		Locale:      models.LocaleEnglishUS,
		Collectible: collectible,
	}
}

func newTestCatalog() *models.Catalog {
	cat := models.NewCatalog(models.LocaleEnglishUS, models.Version{Major: 4, Minor: 3})
	for _, c := range []*models.Card{
		testCard("01PZ045", "Lulu", true),
		testCard("01PZ045T1", "Lulu", false),
		testCard("01PZ045T2", "Wallop!", false),
		testCard("01FR024", "Daring Poro", true),
		testCard("01FR036", "Poro Cannon", true),
		testCard("01NX055T3", "Poro", false),
		testCard("01SI001", "Pore Hound", true),
		testCard("03MT034", "Solari Soldier", true),
		testCard("01DE999T9", "", false),
	} {
		cat.Cards[c.Code] = c
	}

	for _, kw := range []*models.Keyword{
		{Key: "Frostbite", Name: "Frostbite", Description: "Set a unit's Power to 0 this round."},
		{Key: "Fleeting", Name: "Fleeting", Description: "Fleeting cards discard from hand when the round ends."},
		{Key: "Attune", Name: "Attune", Description: "When I'm summoned, refill 1 spell mana."},
		{Key: "Skill", Name: "Skill"},
	} {
		cat.Keywords[kw.Key] = kw
	}

	for _, vt := range []*models.VocabTerm{
		{Key: "Allegiance", Name: "Allegiance", Description: "When you summon this, if the top card of your deck matches its region, do the effect."},
		{Key: "AttuneVocab", Name: "Attune", Description: "Vocabulary entry."},
	} {
		cat.VocabTerms[vt.Key] = vt
	}
	return cat
}
