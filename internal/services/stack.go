package services

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/redis/go-redis/v9"

	"github.com/codyseavey/lookout/internal/config"
	"github.com/codyseavey/lookout/internal/models"
)

// Stack is the set of lookup services built from one configuration. The
// HTTP server and the CLI share it.
type Stack struct {
	Catalogs   *CatalogService
	Searches   *SearchService
	Expander   *ChampionExpander
	Rolls      *RollService
	Downloader *BundleDownloader

	redis *redis.Client
}

// NewStack chains the document sources (local bundles, then Redis, then the
// CDN) and builds the services on top of them. A Redis outage only disables
// the shared cache.
func NewStack(ctx context.Context, cfg *config.Config, settings config.Settings, rng *rand.Rand) (*Stack, error) {
	stack := &Stack{}

	var sources []DocumentSource
	if cfg.BundleDir != "" {
		sources = append(sources, NewBundleDocumentSource(cfg.BundleDir))
		stack.Downloader = NewBundleDownloader(cfg.DataDragonBaseURL, cfg.BundleDir)
	}
	if cfg.RedisURL != "" {
		client, err := NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: redis document cache disabled: %v", err)
		} else {
			stack.redis = client
			sources = append(sources, NewRedisDocumentCache(client, cfg.DocumentTTL))
		}
	}
	sources = append(sources, NewHTTPDocumentSource(cfg.DataDragonBaseURL, cfg.DataDragonRPS, cfg.DataDragonBurst, cfg.DataDragonTimeout))

	chain := NewChainSource(sources...)
	log.Printf("Reading Data Dragon documents from %s", chain.Name())

	catalogs, err := NewCatalogService(NewDataDragonFetcher(chain), settings.HomeLocale, cfg.CatalogCacheSize)
	if err != nil {
		stack.Close()
		return nil, err
	}
	searches, err := NewSearchService(catalogs, settings.Search, nil)
	if err != nil {
		stack.Close()
		return nil, fmt.Errorf("failed to create search service: %w", err)
	}

	stack.Catalogs = catalogs
	stack.Searches = searches
	stack.Expander = NewChampionExpander(catalogs)
	stack.Rolls = NewRollService(catalogs, searches, rng)
	return stack, nil
}

// Prefetch downloads the bundles of each locale into the bundle directory.
// It is a no-op without one.
func (s *Stack) Prefetch(ctx context.Context, version models.Version, locales ...models.Locale) error {
	if s.Downloader == nil {
		return nil
	}
	for _, loc := range locales {
		log.Printf("Downloading %s bundles for version %s", loc, version)
		if err := s.Downloader.Download(ctx, loc, version); err != nil {
			return fmt.Errorf("failed to prefetch %s: %w", loc, err)
		}
	}
	return nil
}

func (s *Stack) Close() {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Printf("Warning: failed to close redis client: %v", err)
		}
	}
}
