package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/codyseavey/lookout/internal/config"
	"github.com/codyseavey/lookout/internal/metrics"
	"github.com/codyseavey/lookout/internal/models"
	"github.com/codyseavey/lookout/internal/search"
)

// Logger receives translation warnings. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, v ...any)
}

// SearchParameters describe one user query. TranslationLocale is nil when the
// results should stay in SearchLocale.
type SearchParameters struct {
	SearchTerm        string
	SearchLocale      models.Locale
	TranslationLocale *models.Locale
	Version           models.Version
}

// SearchService finds cards, keywords and decks in the catalog and translates
// the matches into the requested display locale.
type SearchService struct {
	catalogs       CatalogProvider
	cfg            search.Config
	cardScalers    []search.Downscaler[*models.Card]
	keywordScalers []search.Downscaler[*models.Keyword]
	logger         Logger
}

// NewSearchService validates the search settings up front so a bad downscale
// factor fails before any query runs.
func NewSearchService(catalogs CatalogProvider, settings config.SearchSettings, logger Logger) (*SearchService, error) {
	cfg := settings.SearchConfig()
	if _, err := search.NewTermMatcher(cfg); err != nil {
		return nil, err
	}

	uncollectible, err := search.NewUncollectibleCardDownscaler(settings.UncollectibleCardDownscaleFactor)
	if err != nil {
		return nil, fmt.Errorf("failed to create card downscaler: %w", err)
	}
	keyword, err := search.NewGlobalDownscaler[*models.Keyword](settings.GlobalKeywordDownscaleFactor)
	if err != nil {
		return nil, fmt.Errorf("failed to create keyword downscaler: %w", err)
	}

	if logger == nil {
		logger = log.Default()
	}
	return &SearchService{
		catalogs:       catalogs,
		cfg:            cfg,
		cardScalers:    []search.Downscaler[*models.Card]{uncollectible},
		keywordScalers: []search.Downscaler[*models.Keyword]{keyword},
		logger:         logger,
	}, nil
}

// fetchCatalogs gets the search catalog and, when requested, the translation
// catalog concurrently. target is nil without a translation locale.
func (s *SearchService) fetchCatalogs(ctx context.Context, p SearchParameters) (source, target *models.Catalog, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		source, err = s.catalogs.GetCatalog(gctx, p.SearchLocale, p.Version)
		return err
	})
	if p.TranslationLocale != nil {
		g.Go(func() error {
			var err error
			target, err = s.catalogs.GetCatalog(gctx, *p.TranslationLocale, p.Version)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return source, target, nil
}

func codeTerm(term string) string {
	return strings.ToUpper(strings.TrimSpace(term))
}

func (s *SearchService) warnUntranslated(item fmt.Stringer, source, target models.Locale, version models.Version, kind search.ItemKind) {
	metrics.TranslationMissesTotal.WithLabelValues(string(kind)).Inc()
	s.logger.Printf("Warning: couldn't translate %s from %s to %s, using version %s", item, source, target, version)
}

func observe(kind string, matches int) {
	metrics.SearchesTotal.WithLabelValues(kind).Inc()
	metrics.SearchMatches.WithLabelValues(kind).Observe(float64(matches))
}

// FindCard looks the term up as a card code first, then searches card names.
func (s *SearchService) FindCard(ctx context.Context, p SearchParameters) (search.TranslatedSearchResult[*models.Card], error) {
	source, target, err := s.fetchCatalogs(ctx, p)
	if err != nil {
		return search.TranslatedSearchResult[*models.Card]{}, err
	}

	lookup := source
	if target != nil {
		lookup = target
	}
	if card, ok := lookup.Cards[codeTerm(p.SearchTerm)]; ok {
		observe(string(search.KindCard), 1)
		return search.Untranslated(search.SingleItemResult(p.SearchTerm, lookup.Locale, lookup.Version, card)), nil
	}

	searcher, err := search.NewCatalogItemSearcher[*models.Card](source, search.CardNameGrouper{}, s.cfg, s.cardScalers...)
	if err != nil {
		return search.TranslatedSearchResult[*models.Card]{}, err
	}
	result := searcher.Search(p.SearchTerm)
	observe(string(search.KindCard), len(result.Matches))

	if target == nil {
		return search.Untranslated(result), nil
	}

	translations := make(map[*models.Card]*models.Card, len(result.Matches))
	for _, m := range result.Matches {
		if t, ok := target.Cards[m.Item.Code]; ok {
			translations[m.Item] = t
		} else {
			s.warnUntranslated(m.Item, source.Locale, target.Locale, p.Version, search.KindCard)
		}
	}
	return search.Translated(result, target.Locale, translations), nil
}

// FindKeyword searches keyword and vocabulary term names.
func (s *SearchService) FindKeyword(ctx context.Context, p SearchParameters) (search.TranslatedSearchResult[*models.Keyword], error) {
	source, target, err := s.fetchCatalogs(ctx, p)
	if err != nil {
		return search.TranslatedSearchResult[*models.Keyword]{}, err
	}

	grouper := search.KeywordNameGrouper{IncludeVocabTerms: true}
	searcher, err := search.NewCatalogItemSearcher[*models.Keyword](source, grouper, s.cfg, s.keywordScalers...)
	if err != nil {
		return search.TranslatedSearchResult[*models.Keyword]{}, err
	}
	result := searcher.Search(p.SearchTerm)
	observe(string(search.KindKeyword), len(result.Matches))

	if target == nil {
		return search.Untranslated(result), nil
	}

	translations := make(map[*models.Keyword]*models.Keyword, len(result.Matches))
	for _, m := range result.Matches {
		if kw, ok := target.Keywords[m.Item.Key]; ok {
			translations[m.Item] = kw
		} else if vt, ok := target.VocabTerms[m.Item.Key]; ok {
			translations[m.Item] = &models.Keyword{Key: m.Item.Key, Name: vt.Name, Description: vt.Description, Vocab: true}
		} else {
			s.warnUntranslated(m.Item, source.Locale, target.Locale, p.Version, search.KindKeyword)
		}
	}
	return search.Translated(result, target.Locale, translations), nil
}

// FindDeck decodes the term as a deck code against the display catalog. A
// term that is not a valid deck code yields an empty result.
func (s *SearchService) FindDeck(ctx context.Context, p SearchParameters) (search.TranslatedSearchResult[*models.Deck], error) {
	locale := p.SearchLocale
	if p.TranslationLocale != nil {
		locale = *p.TranslationLocale
	}
	catalog, err := s.catalogs.GetCatalog(ctx, locale, p.Version)
	if err != nil {
		return search.TranslatedSearchResult[*models.Deck]{}, err
	}

	deck, err := DeckFromCode(p.SearchTerm, catalog)
	if err != nil {
		observe(string(search.KindDeck), 0)
		return search.Untranslated(search.SearchResult[*models.Deck]{
			SearchTerm: p.SearchTerm,
			Locale:     locale,
			Version:    p.Version,
			Matches:    []search.ItemMatch[*models.Deck]{},
		}), nil
	}
	observe(string(search.KindDeck), 1)
	return search.Untranslated(search.SingleItemResult(p.SearchTerm, catalog.Locale, catalog.Version, deck)), nil
}

// FindAnything runs the card, keyword and deck searches and merges them.
func (s *SearchService) FindAnything(ctx context.Context, p SearchParameters) (search.TranslatedSearchResult[search.ItemUnion], error) {
	var (
		cards    search.TranslatedSearchResult[*models.Card]
		keywords search.TranslatedSearchResult[*models.Keyword]
		decks    search.TranslatedSearchResult[*models.Deck]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cards, err = s.FindCard(gctx, p)
		return err
	})
	g.Go(func() error {
		var err error
		keywords, err = s.FindKeyword(gctx, p)
		return err
	})
	g.Go(func() error {
		var err error
		decks, err = s.FindDeck(gctx, p)
		return err
	})
	if err := g.Wait(); err != nil {
		return search.TranslatedSearchResult[search.ItemUnion]{}, err
	}

	merged := search.MergeResults(cards, keywords, decks)
	metrics.SearchesTotal.WithLabelValues("anything").Inc()
	return merged, nil
}
