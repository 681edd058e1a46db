package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/lookout/internal/config"
	"github.com/codyseavey/lookout/internal/database"
	"github.com/codyseavey/lookout/internal/models"
	"github.com/codyseavey/lookout/internal/services"
	"github.com/codyseavey/lookout/internal/views"
)

const localeFrench models.Locale = "fr_fr"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// fixtureFetcher serves prebuilt catalogs and fails for any other locale.
type fixtureFetcher map[models.Locale]*models.Catalog

func (f fixtureFetcher) FetchCatalog(_ context.Context, locale models.Locale, version models.Version) (*models.Catalog, error) {
	cat, ok := f[locale]
	if !ok {
		return nil, fmt.Errorf("no fixture for %s %s", locale, version)
	}
	return cat, nil
}

func addCard(cat *models.Catalog, code, name, region string, champion bool) {
	cc, err := models.ParseCardCode(code)
	if err != nil {
		panic(err)
	}
	card := &models.Card{
		Code:        cc.String(),
		CardCode:    cc,
		Name:        name,
		Locale:      cat.Locale,
		Collectible: true,
		Region:      cat.Regions[region],
		RegionRefs:  []string{region},
		Type:        models.TypeUnit,
		RarityRef:   "Common",
		Set:         "Set1",
	}
	if champion {
		card.Supertype = models.SupertypeChampion
		card.RarityRef = models.RarityChampion
	}
	cat.Cards[card.Code] = card
}

func fixtureCatalog(locale models.Locale) *models.Catalog {
	cat := models.NewCatalog(locale, models.Version{})
	cat.Regions["Freljord"] = &models.Region{Key: "Freljord", Name: "Freljord", Abbreviation: "FR"}
	cat.Regions["Ionia"] = &models.Region{Key: "Ionia", Name: "Ionia", Abbreviation: "IO"}

	poro := "Daring Poro"
	frostbite := "Frostbite"
	if locale == localeFrench {
		poro = "Poro téméraire"
		frostbite = "Gel"
	}
	addCard(cat, "01FR009", "Braum", "Freljord", true)
	addCard(cat, "01FR024", poro, "Freljord", false)
	addCard(cat, "01IO041", "Yasuo", "Ionia", true)
	for i := range 4 {
		addCard(cat, fmt.Sprintf("01FR%03d", 50+i), fmt.Sprintf("Freljord Champion %d", i), "Freljord", true)
		addCard(cat, fmt.Sprintf("01IO%03d", 50+i), fmt.Sprintf("Ionia Champion %d", i), "Ionia", true)
	}
	for i := range 20 {
		addCard(cat, fmt.Sprintf("01FR%03d", 100+i), fmt.Sprintf("Freljord Follower %d", i), "Freljord", false)
		addCard(cat, fmt.Sprintf("01IO%03d", 100+i), fmt.Sprintf("Ionia Follower %d", i), "Ionia", false)
	}
	cat.Keywords["Frostbite"] = &models.Keyword{Key: "Frostbite", Name: frostbite, Description: "Set a unit's Power to 0 this round."}
	return cat
}

func newTestRouter(t *testing.T) (*gin.Engine, *models.Catalog) {
	t.Helper()

	english := fixtureCatalog(models.LocaleEnglishUS)
	fetcher := fixtureFetcher{
		models.LocaleEnglishUS: english,
		localeFrench:           fixtureCatalog(localeFrench),
	}

	settings := config.DefaultSettings()
	settings.Bot.InviteLink = "https://example.com/invite"

	catalogs, err := services.NewCatalogService(fetcher, settings.HomeLocale, 4)
	if err != nil {
		t.Fatal(err)
	}
	searches, err := services.NewSearchService(catalogs, settings.Search, nil)
	if err != nil {
		t.Fatal(err)
	}
	db, err := database.Open(filepath.Join(t.TempDir(), "lookout.db"))
	if err != nil {
		t.Fatal(err)
	}

	expander := services.NewChampionExpander(catalogs)
	deps := Dependencies{
		Lookup:   views.NewLookup(views.Emotes(settings.RegionEmotes), searches, expander, catalogs),
		Guilds:   services.NewGuildService(db, settings.GuildDefaults),
		Rolls:    services.NewRollService(catalogs, searches, rand.New(rand.NewPCG(1, 2))),
		Settings: settings,

		Refresher: services.NewRefreshWorker(catalogs, time.Hour, settings.HomeLocale),
	}
	cfg := &config.Config{CORSAllowedOrigins: []string{"http://localhost:5173"}}
	return SetupRouter(cfg, deps), english
}

func do(t *testing.T, router *gin.Engine, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to decode %q: %v", w.Body.String(), err)
	}
	return v
}

func errorText(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, w)["error"]
}

func TestHealthAndMetrics(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK || decode[map[string]string](t, w)["status"] != "ok" {
		t.Errorf("health = %d %s", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("response should carry a request id")
	}

	w = do(t, router, http.MethodGet, "/metrics", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "lookout_http_requests_total") {
		t.Errorf("metrics = %d, missing request counter", w.Code)
	}
}

func TestRequestIDIsReused(t *testing.T) {
	router, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want abc-123", got)
	}
}

func TestSearch(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name     string
		target   string
		wantKind string
		wantKey  string
		wantName string
	}{
		{"anything finds a card", "/api/search?q=braum", "card", "01FR009", "Braum"},
		{"anything finds a keyword", "/api/search?q=frostbite", "keyword", "Frostbite", "Frostbite"},
		{"card view", "/api/cards/search?q=yasuo&view=flavor", "card", "01IO041", "Yasuo"},
		{"card code", "/api/cards/search?q=01fr024", "card", "01FR024", "Daring Poro"},
		{"translated card", "/api/cards/search?q=daring+poro&translate=fr-FR", "card", "01FR024", "Poro téméraire"},
		{"keyword", "/api/keywords/search?q=frost", "keyword", "Frostbite", "Frostbite"},
		{"french keyword", "/api/keywords/search?q=gel&locale=fr-FR", "keyword", "Frostbite", "Gel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, http.MethodGet, tt.target, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
			}
			out := decode[views.SearchOutput](t, w)
			if len(out.Matches) == 0 {
				t.Fatal("no matches")
			}
			m := out.Matches[0]
			if string(m.Kind) != tt.wantKind || m.Key != tt.wantKey || m.Name != tt.wantName {
				t.Errorf("best match = %+v, want %s %s %s", m, tt.wantKind, tt.wantKey, tt.wantName)
			}
			if len(out.View.Messages) == 0 {
				t.Error("view has no messages")
			}
		})
	}
}

func TestSearchTranslationLocale(t *testing.T) {
	router, _ := newTestRouter(t)

	out := decode[views.SearchOutput](t, do(t, router, http.MethodGet, "/api/cards/search?q=poro&translate=fr_fr", nil))
	if out.TranslationLocale == nil || *out.TranslationLocale != localeFrench {
		t.Errorf("translation locale = %v, want fr_fr", out.TranslationLocale)
	}

	// Translating into the search locale is a plain search.
	out = decode[views.SearchOutput](t, do(t, router, http.MethodGet, "/api/cards/search?q=poro&translate=en-US", nil))
	if out.TranslationLocale != nil {
		t.Errorf("translation locale = %v, want none", *out.TranslationLocale)
	}
}

func TestSearchErrors(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name      string
		target    string
		wantCode  int
		wantError string
	}{
		{"missing term", "/api/search", http.StatusBadRequest, "query parameter 'q' is required"},
		{"blank term", "/api/search?q=++", http.StatusBadRequest, "query parameter 'q' is required"},
		{"bad card view", "/api/cards/search?q=braum&view=deck", http.StatusBadRequest, ""},
		{"unknown view", "/api/search?q=braum&view=nope", http.StatusBadRequest, ""},
		{"unknown locale", "/api/search?q=braum&locale=xx-XX", http.StatusBadRequest, ""},
		{"unknown translation", "/api/search?q=braum&translate=klingon", http.StatusBadRequest, ""},
		{"bad version", "/api/search?q=braum&version=four", http.StatusBadRequest, ""},
		{"bad guild", "/api/search?q=braum&guild=abc", http.StatusBadRequest, ""},
		{"catalog unavailable", "/api/search?q=braum&locale=de-DE", http.StatusServiceUnavailable, "Couldn't retrieve data."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, http.MethodGet, tt.target, nil)
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantCode, w.Body.String())
			}
			if tt.wantError != "" && errorText(t, w) != tt.wantError {
				t.Errorf("error = %q, want %q", errorText(t, w), tt.wantError)
			}
		})
	}
}

func TestGetDeck(t *testing.T) {
	router, english := newTestRouter(t)

	code, err := services.EncodeDeck([]models.CardAndCount{
		{Card: english.Cards["01FR009"], Count: 3},
		{Card: english.Cards["01FR024"], Count: 2},
	})
	if err != nil {
		t.Fatal(err)
	}

	out := decode[views.SearchOutput](t, do(t, router, http.MethodGet, "/api/decks/"+code+"?locale=fr-FR", nil))
	if len(out.Matches) != 1 || out.Matches[0].Kind != "deck" || out.Matches[0].Key != code {
		t.Fatalf("matches = %+v", out.Matches)
	}
	embed := out.View.Messages[0].Embed
	if embed == nil || embed.Title != "Deck (5 cards)" || !strings.Contains(embed.Fields[1].Value, "Poro téméraire") {
		t.Errorf("deck embed = %+v", embed)
	}

	out = decode[views.SearchOutput](t, do(t, router, http.MethodGet, "/api/decks/notadeck", nil))
	if len(out.Matches) != 0 || out.View.Messages[0].Text != "No results for `notadeck`." {
		t.Errorf("view = %+v, want no results", out.View)
	}
}

func TestGetLocales(t *testing.T) {
	router, _ := newTestRouter(t)
	var body struct {
		Locales []struct {
			ID      string `json:"id"`
			Display string `json:"display"`
		} `json:"locales"`
	}
	w := do(t, router, http.MethodGet, "/api/locales", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Locales) != len(models.RecognizedLocales()) || body.Locales[1].Display != "en-US" {
		t.Errorf("locales = %+v", body.Locales)
	}
}

func TestGuildSettings(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(t, router, http.MethodPut, "/api/guilds/42/prefix", map[string]string{"prefix": "?"})
	if w.Code != http.StatusOK || decode[map[string]any](t, w)["previous"] != "" {
		t.Fatalf("set prefix = %d %s", w.Code, w.Body.String())
	}

	w = do(t, router, http.MethodPut, "/api/guilds/42/prefix", map[string]string{"prefix": "?"})
	if w.Code != http.StatusConflict || errorText(t, w) != "Command prefix is already `?`" {
		t.Errorf("repeat prefix = %d %s", w.Code, w.Body.String())
	}

	w = do(t, router, http.MethodPut, "/api/guilds/42/prefix", map[string]string{"prefix": "a b"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("prefix with a space = %d, want 400", w.Code)
	}

	w = do(t, router, http.MethodPut, "/api/guilds/42/locale", map[string]string{"locale": "klingon"})
	if w.Code != http.StatusBadRequest || !strings.HasPrefix(errorText(t, w), "`klingon` isn't a valid locale name.") {
		t.Errorf("unknown locale = %d %s", w.Code, w.Body.String())
	}

	w = do(t, router, http.MethodPut, "/api/guilds/42/locale", map[string]string{"locale": "fr-FR"})
	if w.Code != http.StatusOK || decode[map[string]any](t, w)["locale"] != "fr_fr" {
		t.Fatalf("set locale = %d %s", w.Code, w.Body.String())
	}

	w = do(t, router, http.MethodPut, "/api/guilds/42/locale", map[string]string{"locale": "FR_fr"})
	if w.Code != http.StatusConflict || errorText(t, w) != "Locale is already `fr-FR`" {
		t.Errorf("repeat locale = %d %s", w.Code, w.Body.String())
	}

	w = do(t, router, http.MethodGet, "/api/guilds/42", nil)
	var guild struct {
		ID       uint64               `json:"id"`
		Settings models.GuildSettings `json:"settings"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &guild); err != nil {
		t.Fatal(err)
	}
	if guild.ID != 42 || guild.Settings.CommandPrefix != "?" || guild.Settings.Locale != localeFrench {
		t.Errorf("guild = %+v", guild)
	}

	// The guild locale becomes the search locale.
	out := decode[views.SearchOutput](t, do(t, router, http.MethodGet, "/api/cards/search?q=poro&guild=42", nil))
	if out.Locale != localeFrench || out.Matches[0].Name != "Poro téméraire" {
		t.Errorf("guild search = %s %+v", out.Locale, out.Matches)
	}

	help := decode[models.MessageView](t, do(t, router, http.MethodGet, "/api/meta/help?guild=42", nil))
	if !strings.Contains(help.Messages[0].Embed.Fields[0].Value, "`?about`") {
		t.Errorf("help should use the guild prefix, got %q", help.Messages[0].Embed.Fields[0].Value)
	}

	if w := do(t, router, http.MethodGet, "/api/guilds/abc", nil); w.Code != http.StatusBadRequest {
		t.Errorf("bad guild id = %d, want 400", w.Code)
	}
}

func TestExtractInline(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(t, router, http.MethodPost, "/api/guilds/7/inline", map[string]string{"text": "look at <<braum>> and << frostbite >>, not <<>>"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var body struct {
		Queries []string             `json:"queries"`
		Results []views.SearchOutput `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if strings.Join(body.Queries, ",") != "braum,frostbite" || len(body.Results) != 2 {
		t.Fatalf("body = %+v", body)
	}
	if body.Results[0].Matches[0].Key != "01FR009" || body.Results[1].Matches[0].Key != "Frostbite" {
		t.Errorf("results = %+v", body.Results)
	}

	if w := do(t, router, http.MethodPost, "/api/guilds/7/inline", map[string]string{}); w.Code != http.StatusBadRequest {
		t.Errorf("missing text = %d, want 400", w.Code)
	}
}

func TestRollChampions(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/api/rolls/champions", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	roll := decode[map[string]any](t, w)
	if roll["first"] == roll["second"] {
		t.Errorf("roll picked the same champion twice: %v", roll)
	}

	roll = decode[map[string]any](t, do(t, router, http.MethodGet, "/api/rolls/champions?q=yasuo", nil))
	if roll["first"] != "01IO041" {
		t.Errorf("first = %v, want Yasuo", roll["first"])
	}

	w = do(t, router, http.MethodGet, "/api/rolls/champions?q=qqqqqq", nil)
	if w.Code != http.StatusNotFound || errorText(t, w) != "Couldn't find a champ from `qqqqqq`." {
		t.Errorf("unknown champ = %d %s", w.Code, w.Body.String())
	}
}

func TestRollDeck(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/api/rolls/deck", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var roll struct {
		Code  string             `json:"code"`
		Cards int                `json:"cards"`
		View  models.MessageView `json:"view"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &roll); err != nil {
		t.Fatal(err)
	}
	if roll.Cards != 40 || roll.Code == "" || !strings.HasSuffix(roll.View.Messages[0].Text, roll.Code) {
		t.Errorf("roll = %+v", roll)
	}

	for _, count := range []string{"abc", "0"} {
		if w := do(t, router, http.MethodGet, "/api/rolls/deck?count="+count, nil); w.Code != http.StatusBadRequest {
			t.Errorf("count=%s status = %d, want 400", count, w.Code)
		}
	}
}

func TestMetaViews(t *testing.T) {
	router, _ := newTestRouter(t)
	for _, path := range []string{"about", "help", "invite", "config"} {
		w := do(t, router, http.MethodGet, "/api/meta/"+path, nil)
		if w.Code != http.StatusOK {
			t.Errorf("%s status = %d", path, w.Code)
			continue
		}
		if view := decode[models.MessageView](t, w); len(view.Messages) != 1 || view.Messages[0].Embed == nil {
			t.Errorf("%s view = %+v", path, view)
		}
	}
}

func TestUnknownRoute(t *testing.T) {
	router, _ := newTestRouter(t)
	w := do(t, router, http.MethodGet, "/api/nope", nil)
	if w.Code != http.StatusNotFound || errorText(t, w) != "not found" {
		t.Errorf("unknown route = %d %s", w.Code, w.Body.String())
	}
}

func TestCatalogRefresh(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/api/catalogs/refresh", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if status := decode[services.RefreshStatus](t, w); status.Refreshes != 0 || status.Interval != "1h0m0s" {
		t.Errorf("status before refresh = %+v", status)
	}

	// Warm a catalog so the refresh has something to evict.
	do(t, router, http.MethodGet, "/api/search?q=braum", nil)

	w = do(t, router, http.MethodPost, "/api/catalogs/refresh", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	status := decode[services.RefreshStatus](t, w)
	if status.Refreshes != 1 || status.LastEvicted != 1 || status.LastError != "" {
		t.Errorf("status after refresh = %+v", status)
	}
}
