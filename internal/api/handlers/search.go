package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/lookout/internal/models"
	"github.com/codyseavey/lookout/internal/services"
	"github.com/codyseavey/lookout/internal/views"
)

type SearchHandler struct {
	lookup  *views.Lookup
	locales requestLocales
}

func NewSearchHandler(lookup *views.Lookup, guilds *services.GuildService, latest models.Version) *SearchHandler {
	return &SearchHandler{
		lookup:  lookup,
		locales: requestLocales{guilds: guilds, latest: latest},
	}
}

func (h *SearchHandler) run(c *gin.Context, view, term string) {
	if strings.TrimSpace(term) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}

	params, err := h.locales.searchParameters(c, term)
	if err != nil {
		writeError(c, err)
		return
	}

	out, err := h.lookup.Search(c.Request.Context(), view, params)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Search matches cards, keywords and deck codes at once. The view parameter
// narrows it to one kind.
func (h *SearchHandler) Search(c *gin.Context) {
	h.run(c, c.DefaultQuery("view", views.ViewAnything), c.Query("q"))
}

func (h *SearchHandler) SearchCards(c *gin.Context) {
	view := c.DefaultQuery("view", views.ViewCardboard)
	switch view {
	case views.ViewCardboard, views.ViewFlavor, views.ViewRelated:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "view parameter must be 'cardboard', 'flavor' or 'related'"})
		return
	}
	h.run(c, view, c.Query("q"))
}

func (h *SearchHandler) SearchKeywords(c *gin.Context) {
	h.run(c, views.ViewKeyword, c.Query("q"))
}

func (h *SearchHandler) GetDeck(c *gin.Context) {
	h.run(c, views.ViewDeck, c.Param("code"))
}

type localeInfo struct {
	ID      models.Locale `json:"id"`
	Display string        `json:"display"`
}

func (h *SearchHandler) GetLocales(c *gin.Context) {
	var locales []localeInfo
	for _, loc := range models.RecognizedLocales() {
		locales = append(locales, localeInfo{ID: loc, Display: loc.Display()})
	}
	c.JSON(http.StatusOK, gin.H{
		"locales": locales,
		"view":    views.LocalesView(),
	})
}
