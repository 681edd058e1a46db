package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/codyseavey/lookout/internal/models"
)

const localeFrench models.Locale = "fr_fr"

type cardSpec struct {
	code        string
	name        string
	region      string
	supertype   string
	cardType    string
	rarity      string
	collectible bool
	levelup     string
}

func buildCatalog(locale models.Locale, regions map[string]string, specs []cardSpec) *models.Catalog {
	cat := models.NewCatalog(locale, models.Version{})
	for key, abbr := range regions {
		cat.Regions[key] = &models.Region{Key: key, Name: key, Abbreviation: abbr}
	}
	for _, s := range specs {
		code, err := models.ParseCardCode(s.code)
		if err != nil {
			panic(err)
		}
		card := &models.Card{
			Code:               code.String(),
			CardCode:           code,
			Name:               s.name,
			Locale:             locale,
			Collectible:        s.collectible,
			Supertype:          s.supertype,
			Type:               s.cardType,
			RarityRef:          s.rarity,
			LevelupDescription: s.levelup,
		}
		if s.region != "" {
			card.Region = cat.Regions[s.region]
			card.RegionRefs = []string{s.region}
		}
		cat.Cards[card.Code] = card
	}
	return cat
}

var testRegions = map[string]string{
	"PiltoverZaun": "PZ",
	"Freljord":     "FR",
	"Ionia":        "IO",
	"Targon":       "MT",
	"Runeterra":    "RU",
}

func englishSpecs() []cardSpec {
	return []cardSpec{
		{"01PZ045", "Lulu", "PiltoverZaun", "Champion", "Unit", "Champion", true, "I've seen 5+ allies..."},
		{"01PZ045T1", "Wallop!", "PiltoverZaun", "", "Spell", "None", false, ""},
		{"01PZ045T2", "Lulu", "PiltoverZaun", "Champion", "Unit", "None", false, ""},
		{"06RU002", "Jhin", "Runeterra", "Champion", "Unit", "Champion", true, "Attack 4 times"},
		{"06RU002T3", "Jhin", "Runeterra", "Champion", "Unit", "None", false, "Attack 4 more times"},
		{"06RU002T4", "Jhin", "Runeterra", "Champion", "Unit", "None", false, ""},
		{"01IO041", "Yasuo", "Ionia", "Champion", "Unit", "Champion", true, "I've seen 5 enemies stunned"},
		{"01IO041T1", "Yasuo", "Ionia", "Champion", "Unit", "None", false, ""},
		{"01IO041T2", "Yasuo", "Ionia", "Champion", "Unit", "None", false, ""},
		{"01FR024", "Daring Poro", "Freljord", "", "Unit", "Common", true, ""},
		{"01FR009", "Braum", "Freljord", "Champion", "Unit", "Champion", true, "I've survived damage 3 times"},
		{"03MT034", "Solari Soldier", "Targon", "", "Unit", "Common", true, ""},
	}
}

// frenchSpecs renames Daring Poro and drops Solari Soldier.
func frenchSpecs() []cardSpec {
	var out []cardSpec
	for _, s := range englishSpecs() {
		switch s.code {
		case "03MT034":
			continue
		case "01FR024":
			s.name = "Poro téméraire"
		}
		out = append(out, s)
	}
	return out
}

func newEnglishCatalog() *models.Catalog {
	cat := buildCatalog(models.LocaleEnglishUS, testRegions, englishSpecs())
	cat.Keywords["Frostbite"] = &models.Keyword{Key: "Frostbite", Name: "Frostbite", Description: "Set a unit's Power to 0 this round."}
	cat.Keywords["Elusive"] = &models.Keyword{Key: "Elusive", Name: "Elusive", Description: "Can only be blocked by an Elusive unit."}
	cat.VocabTerms["Allegiance"] = &models.VocabTerm{Key: "Allegiance", Name: "Allegiance", Description: "When you summon this, if the top card of your deck matches its region, do the effect."}
	return cat
}

func newFrenchCatalog() *models.Catalog {
	cat := buildCatalog(localeFrench, testRegions, frenchSpecs())
	cat.Keywords["Frostbite"] = &models.Keyword{Key: "Frostbite", Name: "Gel", Description: "Réduit la puissance d'une unité à 0 pendant ce round."}
	cat.VocabTerms["Allegiance"] = &models.VocabTerm{Key: "Allegiance", Name: "Allégeance", Description: "Lorsque vous invoquez cette carte..."}
	return cat
}

// fakeCatalogs serves fixed catalogs keyed by locale.
type fakeCatalogs struct {
	mu       sync.Mutex
	catalogs map[models.Locale]*models.Catalog
	requests []models.Locale
}

func newFakeCatalogs(cats ...*models.Catalog) *fakeCatalogs {
	f := &fakeCatalogs{catalogs: map[models.Locale]*models.Catalog{}}
	for _, c := range cats {
		f.catalogs[c.Locale] = c
	}
	return f
}

func (f *fakeCatalogs) GetCatalog(_ context.Context, locale models.Locale, version models.Version) (*models.Catalog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, locale)
	cat, ok := f.catalogs[locale]
	if !ok {
		return nil, fmt.Errorf("%w: %s %s: no fixture", ErrCatalogUnavailable, locale, version)
	}
	return cat, nil
}

func (f *fakeCatalogs) GetHomeCatalog(ctx context.Context, version models.Version) (*models.Catalog, error) {
	return f.GetCatalog(ctx, models.LocaleEnglishUS, version)
}

// recordingLogger collects Printf calls.
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) Printf(format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func (l *recordingLogger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lines)
}
