package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/lookout/internal/models"
	"github.com/codyseavey/lookout/internal/services"
	"github.com/codyseavey/lookout/internal/views"
)

type GuildHandler struct {
	guilds *services.GuildService
	lookup *views.Lookup
	latest models.Version
}

func NewGuildHandler(guilds *services.GuildService, lookup *views.Lookup, latest models.Version) *GuildHandler {
	return &GuildHandler{guilds: guilds, lookup: lookup, latest: latest}
}

// inlineViews maps the inline command alias onto a search view.
var inlineViews = map[string]string{
	"search":  views.ViewAnything,
	"card":    views.ViewCardboard,
	"flavor":  views.ViewFlavor,
	"related": views.ViewRelated,
	"keyword": views.ViewKeyword,
	"deck":    views.ViewDeck,
}

type guildResponse struct {
	ID       uint64               `json:"id"`
	Settings models.GuildSettings `json:"settings"`
}

type setPrefixRequest struct {
	Prefix string `json:"prefix" binding:"required"`
}

type setLocaleRequest struct {
	Locale string `json:"locale" binding:"required"`
}

type inlineRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *GuildHandler) guildID(c *gin.Context) (uint64, bool) {
	id, err := parseGuildID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return 0, false
	}
	return id, true
}

func (h *GuildHandler) GetGuild(c *gin.Context) {
	id, ok := h.guildID(c)
	if !ok {
		return
	}
	settings, err := h.guilds.GetSettings(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, guildResponse{ID: id, Settings: settings})
}

func (h *GuildHandler) SetPrefix(c *gin.Context) {
	id, ok := h.guildID(c)
	if !ok {
		return
	}
	var req setPrefixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	previous, err := h.guilds.SetPrefix(c.Request.Context(), id, req.Prefix)
	if errors.Is(err, services.ErrGuildSettingUnchanged) {
		c.JSON(http.StatusConflict, gin.H{"error": views.PrefixUnchangedText(req.Prefix)})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"previous": previous,
		"prefix":   req.Prefix,
		"view":     views.PrefixChangedView(previous, req.Prefix),
	})
}

func (h *GuildHandler) SetLocale(c *gin.Context) {
	id, ok := h.guildID(c)
	if !ok {
		return
	}
	var req setLocaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	previous, err := h.guilds.SetLocale(c.Request.Context(), id, req.Locale)
	switch {
	case errors.Is(err, models.ErrUnknownLocale):
		c.JSON(http.StatusBadRequest, gin.H{"error": views.UnknownLocaleText(req.Locale)})
		return
	case errors.Is(err, services.ErrGuildSettingUnchanged):
		c.JSON(http.StatusConflict, gin.H{"error": views.LocaleUnchangedText(previous)})
		return
	case err != nil:
		writeError(c, err)
		return
	}

	locale, _ := models.ParseLocale(req.Locale)
	c.JSON(http.StatusOK, gin.H{
		"previous": previous,
		"locale":   locale,
		"view":     views.LocaleChangedView(previous, locale),
	})
}

// ExtractInline finds the inline queries in a message and runs each one
// with the guild's inline command.
func (h *GuildHandler) ExtractInline(c *gin.Context) {
	id, ok := h.guildID(c)
	if !ok {
		return
	}
	var req inlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	settings, err := h.guilds.GetSettings(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}

	results := []*views.SearchOutput{}
	if !settings.AllowInlineCommands {
		c.JSON(http.StatusOK, gin.H{"queries": []string{}, "results": results})
		return
	}

	view, ok := inlineViews[settings.InlineCommandAlias]
	if !ok {
		view = views.ViewAnything
	}
	queries := services.ExtractInlineQueries(req.Text, settings.InlineCommandOpener, settings.InlineCommandCloser)
	for _, q := range queries {
		out, err := h.lookup.Search(ctx, view, services.SearchParameters{
			SearchTerm:   q,
			SearchLocale: settings.Locale,
			Version:      h.latest,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		results = append(results, out)
	}
	if queries == nil {
		queries = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"queries": queries, "results": results})
}
