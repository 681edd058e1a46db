package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/lookout/internal/models"
	"github.com/codyseavey/lookout/internal/services"
	"github.com/codyseavey/lookout/internal/views"
)

var errInvalidGuildID = errors.New("invalid guild id")

// requestLocales resolves the locale, translate, version and guild query
// parameters shared by the search and roll endpoints.
type requestLocales struct {
	guilds *services.GuildService
	latest models.Version
}

func parseGuildID(raw string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errInvalidGuildID, raw)
	}
	return id, nil
}

// guildSettings returns the settings of the guild named by the guild query
// parameter, or the defaults when none is given.
func (r requestLocales) guildSettings(c *gin.Context) (models.GuildSettings, error) {
	raw := c.Query("guild")
	if raw == "" {
		return r.guilds.Defaults(), nil
	}
	id, err := parseGuildID(raw)
	if err != nil {
		return models.GuildSettings{}, err
	}
	return r.guilds.GetSettings(c.Request.Context(), id)
}

// searchLocale is the explicit locale parameter, else the guild locale.
func (r requestLocales) searchLocale(c *gin.Context) (models.Locale, error) {
	if raw := c.Query("locale"); raw != "" {
		return models.ParseLocale(raw)
	}
	settings, err := r.guildSettings(c)
	if err != nil {
		return "", err
	}
	return settings.Locale, nil
}

func (r requestLocales) version(c *gin.Context) (models.Version, error) {
	if raw := c.Query("version"); raw != "" {
		return models.ParseVersion(raw)
	}
	return r.latest, nil
}

func (r requestLocales) searchParameters(c *gin.Context, term string) (services.SearchParameters, error) {
	locale, err := r.searchLocale(c)
	if err != nil {
		return services.SearchParameters{}, err
	}
	version, err := r.version(c)
	if err != nil {
		return services.SearchParameters{}, err
	}

	p := services.SearchParameters{SearchTerm: term, SearchLocale: locale, Version: version}
	if raw := c.Query("translate"); raw != "" {
		target, err := models.ParseLocale(raw)
		if err != nil {
			return services.SearchParameters{}, err
		}
		if target != locale {
			p.TranslationLocale = &target
		}
	}
	return p, nil
}

// writeError maps service errors onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCatalogUnavailable):
		log.Printf("Warning: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": views.CatalogUnavailableText})
	case errors.Is(err, services.ErrGuildSettingUnchanged):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrChampionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrUnknownLocale),
		errors.Is(err, models.ErrInvalidVersion),
		errors.Is(err, services.ErrInvalidPrefix),
		errors.Is(err, services.ErrInvalidDeckSize),
		errors.Is(err, views.ErrUnknownView),
		errors.Is(err, errInvalidGuildID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("Warning: request %s failed: %v", c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
