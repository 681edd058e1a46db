package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/codyseavey/lookout/internal/metrics"
	"github.com/codyseavey/lookout/internal/models"
)

// ErrCatalogUnavailable means a catalog snapshot could not be built. Callers
// show it to users as "Couldn't retrieve data."
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// CatalogProvider hands out immutable catalog snapshots.
type CatalogProvider interface {
	GetCatalog(ctx context.Context, locale models.Locale, version models.Version) (*models.Catalog, error)
	// GetHomeCatalog returns the reference-locale catalog used to classify cards.
	GetHomeCatalog(ctx context.Context, version models.Version) (*models.Catalog, error)
}

// CatalogFetcher builds a catalog snapshot from its upstream documents.
type CatalogFetcher interface {
	FetchCatalog(ctx context.Context, locale models.Locale, version models.Version) (*models.Catalog, error)
}

type catalogKey struct {
	locale  models.Locale
	version models.Version
}

func (k catalogKey) String() string {
	return string(k.locale) + "@" + k.version.String()
}

// CatalogService caches catalog snapshots in an LRU. Concurrent misses for
// the same locale and version share a single fetch.
type CatalogService struct {
	fetcher    CatalogFetcher
	homeLocale models.Locale
	cache      *lru.Cache[catalogKey, *models.Catalog]
	group      singleflight.Group
}

func NewCatalogService(fetcher CatalogFetcher, homeLocale models.Locale, cacheSize int) (*CatalogService, error) {
	cache, err := lru.New[catalogKey, *models.Catalog](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog cache: %w", err)
	}
	return &CatalogService{
		fetcher:    fetcher,
		homeLocale: homeLocale,
		cache:      cache,
	}, nil
}

func (s *CatalogService) HomeLocale() models.Locale {
	return s.homeLocale
}

func (s *CatalogService) GetCatalog(ctx context.Context, locale models.Locale, version models.Version) (*models.Catalog, error) {
	key := catalogKey{locale: locale, version: version}
	if cat, ok := s.cache.Get(key); ok {
		metrics.CatalogFetchesTotal.WithLabelValues("hit").Inc()
		return cat, nil
	}

	// The shared fetch is not tied to any one caller; each caller only stops
	// waiting when its own context is done.
	fetchCtx := context.WithoutCancel(ctx)
	cached := false
	ch := s.group.DoChan(key.String(), func() (any, error) {
		// Another caller may have filled the cache while we waited.
		if cat, ok := s.cache.Get(key); ok {
			cached = true
			return cat, nil
		}

		start := time.Now()
		cat, err := s.fetcher.FetchCatalog(fetchCtx, locale, version)
		metrics.CatalogFetchDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			return nil, err
		}

		s.cache.Add(key, cat)
		metrics.CatalogsCached.Set(float64(s.cache.Len()))
		return cat, nil
	})

	select {
	case <-ctx.Done():
		metrics.CatalogFetchesTotal.WithLabelValues("canceled").Inc()
		return nil, fmt.Errorf("%w: %s %s: %w", ErrCatalogUnavailable, locale, version, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			metrics.CatalogFetchesTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("%w: %s %s: %w", ErrCatalogUnavailable, locale, version, res.Err)
		}
		switch {
		case res.Shared:
			metrics.CatalogFetchesTotal.WithLabelValues("shared").Inc()
		case cached:
			metrics.CatalogFetchesTotal.WithLabelValues("hit").Inc()
		default:
			metrics.CatalogFetchesTotal.WithLabelValues("miss").Inc()
		}
		return res.Val.(*models.Catalog), nil
	}
}

func (s *CatalogService) GetHomeCatalog(ctx context.Context, version models.Version) (*models.Catalog, error) {
	return s.GetCatalog(ctx, s.homeLocale, version)
}

// Purge drops every cached snapshot so the next request refetches.
func (s *CatalogService) Purge() {
	s.cache.Purge()
	metrics.CatalogsCached.Set(0)
}

// PurgeLatest drops the snapshots fetched for the "latest" version. Pinned
// versions never change upstream and stay cached.
func (s *CatalogService) PurgeLatest() int {
	removed := 0
	for _, key := range s.cache.Keys() {
		if key.version.IsLatest() && s.cache.Remove(key) {
			removed++
		}
	}
	metrics.CatalogsCached.Set(float64(s.cache.Len()))
	return removed
}
