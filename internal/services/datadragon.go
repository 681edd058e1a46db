package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/codyseavey/lookout/internal/metrics"
	"github.com/codyseavey/lookout/internal/models"
)

// ErrDocumentNotFound is returned by a DocumentSource that has no copy of a
// document. Chained sources move on to the next source on this error.
var ErrDocumentNotFound = errors.New("document not found")

// DocumentSource reads Data Dragon JSON documents by their URL path, e.g.
// "latest/core/en_us/data/globals-en_us.json".
type DocumentSource interface {
	Name() string
	Fetch(ctx context.Context, docPath string) ([]byte, error)
}

// DocumentCache is a DocumentSource that can also keep documents read from
// a later source in a chain.
type DocumentCache interface {
	DocumentSource
	Store(ctx context.Context, docPath string, data []byte) error
}

func globalsPath(locale models.Locale, version models.Version) string {
	return path.Join(version.Path(), "core", string(locale), "data", "globals-"+string(locale)+".json")
}

func setPath(setKey string, locale models.Locale, version models.Version) string {
	return path.Join(version.Path(), setKey, string(locale), "data", setKey+"-"+string(locale)+".json")
}

// HTTPDocumentSource reads documents from the Data Dragon CDN. Requests are
// throttled by a token bucket shared by every caller.
type HTTPDocumentSource struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

func NewHTTPDocumentSource(baseURL string, rps float64, burst int, timeout time.Duration) *HTTPDocumentSource {
	if burst < 1 {
		burst = 1
	}
	return &HTTPDocumentSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (s *HTTPDocumentSource) Name() string { return "http" }

func (s *HTTPDocumentSource) Fetch(ctx context.Context, docPath string) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for rate limiter: %w", err)
	}

	url := s.baseURL + "/" + docPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		metrics.DataDragonRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	metrics.DataDragonRequestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()
	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusForbidden:
		// The CDN answers 403 for keys that do not exist.
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, docPath)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("data dragon returned status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// BundleDocumentSource reads documents from bundles extracted by a
// BundleDownloader. The directory mirrors the CDN paths.
type BundleDocumentSource struct {
	dir string
}

func NewBundleDocumentSource(dir string) *BundleDocumentSource {
	return &BundleDocumentSource{dir: dir}
}

func (s *BundleDocumentSource) Name() string { return "bundle" }

func (s *BundleDocumentSource) Fetch(_ context.Context, docPath string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, filepath.FromSlash(docPath)))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, docPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle file: %w", err)
	}
	return data, nil
}

// ChainSource tries each source in order. A document found by a later source
// is stored in every earlier source that is a DocumentCache.
type ChainSource struct {
	sources []DocumentSource
}

func NewChainSource(sources ...DocumentSource) *ChainSource {
	return &ChainSource{sources: sources}
}

func (c *ChainSource) Name() string {
	names := make([]string, len(c.sources))
	for i, s := range c.sources {
		names[i] = s.Name()
	}
	return strings.Join(names, ",")
}

func (c *ChainSource) Fetch(ctx context.Context, docPath string) ([]byte, error) {
	lastErr := fmt.Errorf("%w: %s", ErrDocumentNotFound, docPath)
	for i, src := range c.sources {
		data, err := src.Fetch(ctx, docPath)
		if err != nil {
			if errors.Is(err, ErrDocumentNotFound) {
				metrics.DocumentFetchesTotal.WithLabelValues(src.Name(), "miss").Inc()
			} else {
				metrics.DocumentFetchesTotal.WithLabelValues(src.Name(), "error").Inc()
				log.Printf("Warning: %s source failed for %s: %v", src.Name(), docPath, err)
				lastErr = err
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}

		metrics.DocumentFetchesTotal.WithLabelValues(src.Name(), "hit").Inc()
		for _, earlier := range c.sources[:i] {
			if cache, ok := earlier.(DocumentCache); ok {
				if err := cache.Store(ctx, docPath, data); err != nil {
					log.Printf("Warning: failed to store %s in %s cache: %v", docPath, cache.Name(), err)
				}
			}
		}
		return data, nil
	}
	return nil, lastErr
}

type ddNamedRef struct {
	Name        string `json:"name"`
	NameRef     string `json:"nameRef"`
	Description string `json:"description"`
}

type ddRegion struct {
	Abbreviation     string `json:"abbreviation"`
	IconAbsolutePath string `json:"iconAbsolutePath"`
	Name             string `json:"name"`
	NameRef          string `json:"nameRef"`
}

type ddSet struct {
	IconAbsolutePath string `json:"iconAbsolutePath"`
	Name             string `json:"name"`
	NameRef          string `json:"nameRef"`
}

type ddGlobals struct {
	Keywords   []ddNamedRef `json:"keywords"`
	VocabTerms []ddNamedRef `json:"vocabTerms"`
	Regions    []ddRegion   `json:"regions"`
	Sets       []ddSet      `json:"sets"`
}

type ddAsset struct {
	GameAbsolutePath string `json:"gameAbsolutePath"`
	FullAbsolutePath string `json:"fullAbsolutePath"`
}

type ddCard struct {
	CardCode              string    `json:"cardCode"`
	Name                  string    `json:"name"`
	RegionRefs            []string  `json:"regionRefs"`
	Supertype             string    `json:"supertype"`
	Type                  string    `json:"type"`
	Subtypes              []string  `json:"subtypes"`
	Collectible           bool      `json:"collectible"`
	DescriptionRaw        string    `json:"descriptionRaw"`
	LevelupDescriptionRaw string    `json:"levelupDescriptionRaw"`
	FlavorText            string    `json:"flavorText"`
	ArtistName            string    `json:"artistName"`
	RarityRef             string    `json:"rarityRef"`
	Cost                  int       `json:"cost"`
	Attack                int       `json:"attack"`
	Health                int       `json:"health"`
	Keywords              []string  `json:"keywords"`
	SpellSpeed            string    `json:"spellSpeed"`
	AssociatedCardRefs    []string  `json:"associatedCardRefs"`
	Assets                []ddAsset `json:"assets"`
	Set                   string    `json:"set"`
}

// setKey turns a globals set reference such as "Set1" into the path segment "set1".
func setKey(nameRef string) string {
	return strings.ToLower(nameRef)
}

// DataDragonFetcher builds catalog snapshots from Data Dragon documents.
type DataDragonFetcher struct {
	source         DocumentSource
	setConcurrency int
}

func NewDataDragonFetcher(source DocumentSource) *DataDragonFetcher {
	return &DataDragonFetcher{source: source, setConcurrency: 4}
}

// FetchCatalog reads the globals document and every set it lists. A missing
// set document is skipped; a missing globals document fails the fetch.
func (f *DataDragonFetcher) FetchCatalog(ctx context.Context, locale models.Locale, version models.Version) (*models.Catalog, error) {
	data, err := f.source.Fetch(ctx, globalsPath(locale, version))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch globals: %w", err)
	}

	var globals ddGlobals
	if err := json.Unmarshal(data, &globals); err != nil {
		return nil, fmt.Errorf("failed to parse globals: %w", err)
	}

	catalog := models.NewCatalog(locale, version)
	for _, kw := range globals.Keywords {
		catalog.Keywords[kw.NameRef] = &models.Keyword{Key: kw.NameRef, Name: kw.Name, Description: kw.Description}
	}
	for _, vt := range globals.VocabTerms {
		catalog.VocabTerms[vt.NameRef] = &models.VocabTerm{Key: vt.NameRef, Name: vt.Name, Description: vt.Description}
	}
	for _, r := range globals.Regions {
		catalog.Regions[r.NameRef] = &models.Region{
			Key:          r.NameRef,
			Name:         r.Name,
			Abbreviation: r.Abbreviation,
			IconURL:      r.IconAbsolutePath,
		}
	}
	for _, s := range globals.Sets {
		catalog.Sets[s.NameRef] = &models.SetInfo{Key: s.NameRef, Name: s.Name, IconURL: s.IconAbsolutePath}
	}

	setCards := make([][]ddCard, len(globals.Sets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.setConcurrency)
	for i, s := range globals.Sets {
		g.Go(func() error {
			docPath := setPath(setKey(s.NameRef), locale, version)
			data, err := f.source.Fetch(gctx, docPath)
			if errors.Is(err, ErrDocumentNotFound) {
				log.Printf("Warning: no card data for %s in %s %s, skipping", s.NameRef, locale, version)
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to fetch %s: %w", s.NameRef, err)
			}

			var cards []ddCard
			if err := json.Unmarshal(data, &cards); err != nil {
				return fmt.Errorf("failed to parse %s: %w", s.NameRef, err)
			}
			setCards[i] = cards
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, cards := range setCards {
		for _, dc := range cards {
			card, err := convertCard(dc, catalog)
			if err != nil {
				log.Printf("Warning: skipping card %q: %v", dc.CardCode, err)
				continue
			}
			catalog.Cards[card.Code] = card
		}
	}

	log.Printf("Loaded catalog %s %s: %d cards, %d keywords, %d regions",
		locale, version, len(catalog.Cards), len(catalog.Keywords), len(catalog.Regions))
	return catalog, nil
}

func convertCard(dc ddCard, catalog *models.Catalog) (*models.Card, error) {
	code, err := models.ParseCardCode(dc.CardCode)
	if err != nil {
		return nil, err
	}

	card := &models.Card{
		Code:               code.String(),
		CardCode:           code,
		Name:               dc.Name,
		Locale:             catalog.Locale,
		Version:            catalog.Version,
		Collectible:        dc.Collectible,
		RegionRefs:         dc.RegionRefs,
		Set:                dc.Set,
		Supertype:          dc.Supertype,
		Type:               dc.Type,
		Subtypes:           dc.Subtypes,
		RarityRef:          dc.RarityRef,
		Cost:               dc.Cost,
		Attack:             dc.Attack,
		Health:             dc.Health,
		Description:        dc.DescriptionRaw,
		LevelupDescription: dc.LevelupDescriptionRaw,
		FlavorText:         dc.FlavorText,
		ArtistName:         dc.ArtistName,
		Keywords:           dc.Keywords,
		SpellSpeed:         dc.SpellSpeed,
		AssociatedCodes:    dc.AssociatedCardRefs,
	}
	if len(dc.RegionRefs) > 0 {
		card.Region = catalog.Regions[dc.RegionRefs[0]]
	}
	if len(dc.Assets) > 0 {
		card.ImageURL = dc.Assets[0].GameAbsolutePath
		card.FullArtURL = dc.Assets[0].FullAbsolutePath
	}
	return card, nil
}
