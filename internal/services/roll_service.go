package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/codyseavey/lookout/internal/deckcode"
	"github.com/codyseavey/lookout/internal/metrics"
	"github.com/codyseavey/lookout/internal/models"
)

const (
	DefaultDeckRollSize = 40
	MaxDeckRollSize     = 120
)

var (
	ErrChampionNotFound   = errors.New("no champion matches the search")
	ErrNotEnoughChampions = errors.New("catalog has fewer than two champions")
	ErrNotEnoughRegions   = errors.New("catalog has fewer than two deck regions")
	ErrInvalidDeckSize    = errors.New("deck size must be non-zero")
)

var LookoutReplies = []string{
	"*What do these yordle eyes see?* :3",
	"*What have we here~?* :3",
	"*There, through the trees!* :o",
	"*They're here. Sound the alarm!* :o",
	"*I see you there!* >:o",
	"*They're coming...* :x",
}

// ChampionRoll is a random pair of champions. When both share a region,
// ExtraRegion holds a random region to add; MonoRegion is set when that
// region is the one they already share.
type ChampionRoll struct {
	Reply       string
	First       *models.Card
	Second      *models.Card
	ExtraRegion *models.Region
	MonoRegion  bool
}

type DeckRoll struct {
	Reply   string
	Deck    *models.Deck
	Regions [2]*models.Region
}

// RollService builds random champion pairs and decks. The random source is
// shared and guarded by a mutex.
type RollService struct {
	catalogs CatalogProvider
	searches *SearchService

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRollService uses rng for every roll. A nil rng is seeded from the clock.
func NewRollService(catalogs CatalogProvider, searches *SearchService, rng *rand.Rand) *RollService {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>32))
	}
	return &RollService{catalogs: catalogs, searches: searches, rng: rng}
}

func (s *RollService) intN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

func (s *RollService) roll() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *RollService) reply() string {
	return LookoutReplies[s.intN(len(LookoutReplies))]
}

func isValidChampion(card *models.Card, home *models.Catalog) bool {
	homeCard, ok := home.Cards[card.Code]
	return ok && homeCard.Collectible && homeCard.IsChampion()
}

// RollChampions picks two different champions. A non-empty champTerm picks
// the first champion by search instead.
func (s *RollService) RollChampions(ctx context.Context, locale models.Locale, version models.Version, champTerm string) (*ChampionRoll, error) {
	catalog, err := s.catalogs.GetCatalog(ctx, locale, version)
	if err != nil {
		return nil, err
	}
	home, err := s.catalogs.GetHomeCatalog(ctx, version)
	if err != nil {
		return nil, err
	}

	var first *models.Card
	if champTerm != "" {
		result, err := s.searches.FindCard(ctx, SearchParameters{SearchTerm: champTerm, SearchLocale: locale, Version: version})
		if err != nil {
			return nil, err
		}
		for _, m := range result.Matches {
			if isValidChampion(m.Item, home) {
				first = m.Item
				break
			}
		}
		if first == nil {
			return nil, fmt.Errorf("%w: %q", ErrChampionNotFound, champTerm)
		}
	}

	var champs []*models.Card
	for _, c := range catalog.SortedCards() {
		if isValidChampion(c, home) && (first == nil || c.Code != first.Code) {
			champs = append(champs, c)
		}
	}

	roll := &ChampionRoll{Reply: s.reply()}
	if first == nil {
		if len(champs) < 2 {
			return nil, ErrNotEnoughChampions
		}
		a := s.intN(len(champs))
		b := s.intN(len(champs) - 1)
		if b >= a {
			b++
		}
		roll.First, roll.Second = champs[a], champs[b]
	} else {
		if len(champs) == 0 {
			return nil, ErrNotEnoughChampions
		}
		roll.First, roll.Second = first, champs[s.intN(len(champs))]
	}

	if roll.First.Region == roll.Second.Region {
		regions := catalog.SortedRegions()
		if len(regions) > 0 {
			region := regions[s.intN(len(regions))]
			roll.ExtraRegion = region
			roll.MonoRegion = region == roll.First.Region
		}
	}

	metrics.RollsTotal.WithLabelValues("champions").Inc()
	return roll, nil
}

// RollDeck builds a random two-region deck of |count| cards, capped at
// MaxDeckRollSize. Six in every forty cards are champions.
func (s *RollService) RollDeck(ctx context.Context, locale models.Locale, version models.Version, count int) (*DeckRoll, error) {
	if count < 0 {
		count = -count
	}
	count = min(MaxDeckRollSize, count)
	if count == 0 {
		return nil, ErrInvalidDeckSize
	}

	catalog, err := s.catalogs.GetCatalog(ctx, locale, version)
	if err != nil {
		return nil, err
	}

	var regions []*models.Region
	for _, r := range catalog.SortedRegions() {
		if deckcode.IsDeckFaction(r.Abbreviation) {
			regions = append(regions, r)
		}
	}
	if len(regions) < 2 {
		return nil, ErrNotEnoughRegions
	}
	ra := s.intN(len(regions))
	regionA := regions[ra]
	regions = append(regions[:ra:ra], regions[ra+1:]...)
	regionB := regions[s.intN(len(regions))]

	var champs, followers []*models.Card
	for _, c := range catalog.SortedCards() {
		if !c.Collectible || c.Region == nil || !deckcode.IsDeckFaction(c.CardCode.Faction) {
			continue
		}
		if c.Region.Key != regionA.Key && c.Region.Key != regionB.Key {
			continue
		}
		if c.RarityRef == models.RarityChampion {
			champs = append(champs, c)
		} else {
			followers = append(followers, c)
		}
	}

	var cards []models.CardAndCount
	addCards := func(copies int, source []*models.Card) {
		n := 0
		for n < copies && len(source) > 0 {
			var c int
			switch r := s.roll(); {
			case r < 0.75:
				c = 3
			case r < 0.90:
				c = 2
			default:
				c = 1
			}
			c = min(copies-n, c)
			n += c

			i := s.intN(len(source))
			cards = append(cards, models.CardAndCount{Card: source[i], Count: c})
			source = append(source[:i:i], source[i+1:]...)
		}
	}

	champCount := count * 6 / 40
	addCards(champCount, champs)
	addCards(count-champCount, followers)

	code, err := EncodeDeck(cards)
	if err != nil {
		return nil, err
	}

	metrics.RollsTotal.WithLabelValues("deck").Inc()
	return &DeckRoll{
		Reply:   s.reply(),
		Deck:    &models.Deck{Code: code, Locale: catalog.Locale, Version: catalog.Version, Cards: cards},
		Regions: [2]*models.Region{regionA, regionB},
	}, nil
}
