package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/codyseavey/lookout/internal/models"
)

const testGlobals = `{
	"keywords": [{"name": "Frostbite", "nameRef": "Frostbite", "description": "Set a unit's Power to 0 this round."}],
	"vocabTerms": [{"name": "Allegiance", "nameRef": "Allegiance", "description": "If the top card matches your region."}],
	"regions": [
		{"abbreviation": "FR", "iconAbsolutePath": "http://dd/fr.png", "name": "Freljord", "nameRef": "Freljord"},
		{"abbreviation": "PZ", "iconAbsolutePath": "http://dd/pz.png", "name": "Piltover & Zaun", "nameRef": "PiltoverZaun"}
	],
	"sets": [
		{"iconAbsolutePath": "http://dd/set1.png", "name": "Foundations", "nameRef": "Set1"},
		{"iconAbsolutePath": "http://dd/set2.png", "name": "Rising Tides", "nameRef": "Set2"}
	]
}`

const testSet1 = `[
	{
		"cardCode": "01FR024", "name": "Daring Poro", "regionRefs": ["Freljord"],
		"type": "Unit", "collectible": true, "rarityRef": "Common", "cost": 1, "attack": 1, "health": 1,
		"assets": [{"gameAbsolutePath": "http://dd/01FR024.png", "fullAbsolutePath": "http://dd/01FR024-full.png"}],
		"set": "Set1"
	},
	{
		"cardCode": "01PZ045", "name": "Lulu", "regionRefs": ["PiltoverZaun"], "supertype": "Champion",
		"type": "Unit", "collectible": true, "rarityRef": "Champion", "levelupDescriptionRaw": "I've seen 5+ allies", "set": "Set1"
	},
	{"cardCode": "bogus", "name": "Broken"}
]`

func newTestDataDragon(t *testing.T) (*httptest.Server, *sync.Map) {
	t.Helper()
	hits := &sync.Map{}
	docs := map[string]string{
		"/latest/core/en_us/data/globals-en_us.json": testGlobals,
		"/latest/set1/en_us/data/set1-en_us.json":    testSet1,
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n, _ := hits.LoadOrStore(r.URL.Path, new(int))
		*n.(*int)++
		body, ok := docs[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, hits
}

func TestDataDragonFetcherBuildsCatalog(t *testing.T) {
	server, _ := newTestDataDragon(t)
	source := NewHTTPDocumentSource(server.URL, 100, 10, 5*time.Second)
	fetcher := NewDataDragonFetcher(source)

	cat, err := fetcher.FetchCatalog(context.Background(), models.LocaleEnglishUS, models.Version{})
	if err != nil {
		t.Fatalf("FetchCatalog error: %v", err)
	}

	if len(cat.Cards) != 2 {
		t.Errorf("got %d cards, want 2 (the bad code is skipped)", len(cat.Cards))
	}
	poro := cat.Cards["01FR024"]
	if poro == nil {
		t.Fatal("Daring Poro missing")
	}
	if poro.Region == nil || poro.Region.Abbreviation != "FR" {
		t.Errorf("Daring Poro region = %+v, want Freljord", poro.Region)
	}
	if poro.ImageURL != "http://dd/01FR024.png" || poro.FullArtURL != "http://dd/01FR024-full.png" {
		t.Errorf("Daring Poro art = %q / %q", poro.ImageURL, poro.FullArtURL)
	}
	if poro.Locale != models.LocaleEnglishUS {
		t.Errorf("card locale = %s, want en_us", poro.Locale)
	}
	if lulu := cat.Cards["01PZ045"]; lulu == nil || !lulu.IsChampion() || !lulu.HasLevelup() {
		t.Errorf("Lulu = %+v, want a champion with level up text", lulu)
	}
	if cat.Keywords["Frostbite"] == nil || cat.VocabTerms["Allegiance"] == nil {
		t.Error("keywords or vocab terms missing")
	}
	if len(cat.Sets) != 2 {
		t.Errorf("got %d sets, want 2", len(cat.Sets))
	}
}

func TestDataDragonFetcherMissingGlobals(t *testing.T) {
	server, _ := newTestDataDragon(t)
	fetcher := NewDataDragonFetcher(NewHTTPDocumentSource(server.URL, 100, 10, 5*time.Second))

	_, err := fetcher.FetchCatalog(context.Background(), localeFrench, models.Version{})
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("error = %v, want ErrDocumentNotFound", err)
	}
}

func TestHTTPDocumentSourceServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewHTTPDocumentSource(server.URL, 100, 1, time.Second).Fetch(context.Background(), "latest/x.json")
	if err == nil || errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("error = %v, want a non-404 failure", err)
	}
}

func TestBundleDocumentSource(t *testing.T) {
	dir := t.TempDir()
	docPath := globalsPath(models.LocaleEnglishUS, models.Version{Major: 4, Minor: 3})
	full := filepath.Join(dir, filepath.FromSlash(docPath))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(testGlobals), 0644); err != nil {
		t.Fatal(err)
	}

	source := NewBundleDocumentSource(dir)
	data, err := source.Fetch(context.Background(), docPath)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if string(data) != testGlobals {
		t.Error("bundle source returned different bytes")
	}

	_, err = source.Fetch(context.Background(), "4_3_0/set9/en_us/data/set9-en_us.json")
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("error = %v, want ErrDocumentNotFound", err)
	}
}

// memoryCache is an in-process DocumentCache.
type memoryCache struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func (c *memoryCache) Name() string { return "memory" }

func (c *memoryCache) Fetch(_ context.Context, docPath string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if data, ok := c.docs[docPath]; ok {
		return data, nil
	}
	return nil, ErrDocumentNotFound
}

func (c *memoryCache) Store(_ context.Context, docPath string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs[docPath] = data
	return nil
}

func TestChainSourceStoresIntoEarlierCaches(t *testing.T) {
	server, hits := newTestDataDragon(t)
	cache := &memoryCache{docs: map[string][]byte{}}
	chain := NewChainSource(NewBundleDocumentSource(t.TempDir()), cache, NewHTTPDocumentSource(server.URL, 100, 10, 5*time.Second))

	if got := chain.Name(); got != "bundle,memory,http" {
		t.Errorf("Name() = %q", got)
	}

	docPath := globalsPath(models.LocaleEnglishUS, models.Version{})
	for range 3 {
		data, err := chain.Fetch(context.Background(), docPath)
		if err != nil {
			t.Fatalf("Fetch error: %v", err)
		}
		if string(data) != testGlobals {
			t.Fatal("chain returned different bytes")
		}
	}

	n, ok := hits.Load("/" + docPath)
	if !ok || *n.(*int) != 1 {
		t.Errorf("CDN was hit more than once for a cached document")
	}
	if _, ok := cache.docs[docPath]; !ok {
		t.Error("document was not stored in the cache")
	}

	_, err := chain.Fetch(context.Background(), "latest/set7/en_us/data/set7-en_us.json")
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("error = %v, want ErrDocumentNotFound", err)
	}
}
