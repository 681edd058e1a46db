package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/codyseavey/lookout/internal/models"
)

func TestRefreshWorkerEvictsOnlyLatest(t *testing.T) {
	fetcher := &countingFetcher{}
	svc, err := NewCatalogService(fetcher, models.LocaleEnglishUS, 8)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	pinned := models.Version{Major: 4, Minor: 3}

	if _, err := svc.GetCatalog(ctx, localeFrench, models.Version{}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GetCatalog(ctx, localeFrench, pinned); err != nil {
		t.Fatal(err)
	}

	worker := NewRefreshWorker(svc, time.Hour, models.LocaleEnglishUS)
	if err := worker.Refresh(ctx); err != nil {
		t.Fatalf("Refresh error: %v", err)
	}

	status := worker.GetStatus()
	if status.Refreshes != 1 || status.LastEvicted != 1 {
		t.Errorf("status = %+v, want one refresh evicting one catalog", status)
	}
	if status.NextRefreshTime.Sub(status.LastRefreshTime) != time.Hour {
		t.Errorf("next refresh = %v, want an hour after %v", status.NextRefreshTime, status.LastRefreshTime)
	}

	// fr latest, fr 4.3.0 and the warmed en_us.
	if got := fetcher.calls.Load(); got != 3 {
		t.Errorf("fetcher called %d times, want 3", got)
	}
	if _, err := svc.GetCatalog(ctx, localeFrench, pinned); err != nil {
		t.Fatal(err)
	}
	if got := fetcher.calls.Load(); got != 3 {
		t.Errorf("pinned catalog was refetched (%d calls)", got)
	}
}

func TestRefreshWorkerRecordsErrors(t *testing.T) {
	svc, err := NewCatalogService(&countingFetcher{err: errors.New("cdn down")}, models.LocaleEnglishUS, 4)
	if err != nil {
		t.Fatal(err)
	}
	worker := NewRefreshWorker(svc, time.Minute, models.LocaleEnglishUS)

	if err := worker.Refresh(context.Background()); !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("Refresh error = %v, want ErrCatalogUnavailable", err)
	}
	if status := worker.GetStatus(); status.LastError == "" {
		t.Error("the failure should be reported in the status")
	}
}

func TestRefreshWorkerStopsWithContext(t *testing.T) {
	svc, err := NewCatalogService(&countingFetcher{}, models.LocaleEnglishUS, 4)
	if err != nil {
		t.Fatal(err)
	}
	worker := NewRefreshWorker(svc, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
