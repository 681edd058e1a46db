package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/codyseavey/lookout/internal/models"
)

// RefreshStatus reports what the refresh worker last did.
type RefreshStatus struct {
	LastRefreshTime time.Time `json:"last_refresh_time"`
	NextRefreshTime time.Time `json:"next_refresh_time"`
	Interval        string    `json:"interval"`
	Refreshes       int       `json:"refreshes"`
	LastEvicted     int       `json:"last_evicted"`
	LastError       string    `json:"last_error,omitempty"`
}

// RefreshWorker periodically evicts "latest" catalogs so a new Data Dragon
// release is picked up without a restart, then warms the given locales again.
type RefreshWorker struct {
	catalogs *CatalogService
	locales  []models.Locale
	interval time.Duration

	mu          sync.RWMutex
	lastRefresh time.Time
	refreshes   int
	lastEvicted int
	lastErr     error
}

func NewRefreshWorker(catalogs *CatalogService, interval time.Duration, locales ...models.Locale) *RefreshWorker {
	return &RefreshWorker{
		catalogs: catalogs,
		locales:  locales,
		interval: interval,
	}
}

// Start blocks until ctx is done.
func (w *RefreshWorker) Start(ctx context.Context) {
	log.Printf("Catalog refresh worker started: will refresh %v every %v", w.locales, w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Catalog refresh worker stopping...")
			return
		case <-ticker.C:
			if err := w.Refresh(ctx); err != nil {
				log.Printf("Catalog refresh worker: refresh failed: %v", err)
			}
		}
	}
}

// Refresh evicts the "latest" snapshots and refetches each configured locale.
// The first fetch error is returned; the remaining locales are still tried.
func (w *RefreshWorker) Refresh(ctx context.Context) error {
	evicted := w.catalogs.PurgeLatest()

	var firstErr error
	for _, loc := range w.locales {
		if _, err := w.catalogs.GetCatalog(ctx, loc, models.Version{}); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	w.mu.Lock()
	w.lastRefresh = time.Now()
	w.refreshes++
	w.lastEvicted = evicted
	w.lastErr = firstErr
	w.mu.Unlock()

	if firstErr == nil && evicted > 0 {
		log.Printf("Catalog refresh worker: evicted %d catalogs and warmed %d locales", evicted, len(w.locales))
	}
	return firstErr
}

func (w *RefreshWorker) GetStatus() RefreshStatus {
	w.mu.RLock()
	defer w.mu.RUnlock()

	status := RefreshStatus{
		LastRefreshTime: w.lastRefresh,
		Interval:        w.interval.String(),
		Refreshes:       w.refreshes,
		LastEvicted:     w.lastEvicted,
	}
	if !w.lastRefresh.IsZero() {
		status.NextRefreshTime = w.lastRefresh.Add(w.interval)
	}
	if w.lastErr != nil {
		status.LastError = w.lastErr.Error()
	}
	return status
}
