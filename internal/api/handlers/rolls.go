package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/lookout/internal/models"
	"github.com/codyseavey/lookout/internal/services"
	"github.com/codyseavey/lookout/internal/views"
)

type RollHandler struct {
	rolls   *services.RollService
	emotes  views.Emotes
	locales requestLocales
}

func NewRollHandler(rolls *services.RollService, guilds *services.GuildService, emotes views.Emotes, latest models.Version) *RollHandler {
	return &RollHandler{
		rolls:   rolls,
		emotes:  emotes,
		locales: requestLocales{guilds: guilds, latest: latest},
	}
}

type championRollResponse struct {
	First       string             `json:"first"`
	Second      string             `json:"second"`
	ExtraRegion string             `json:"extra_region,omitempty"`
	MonoRegion  bool               `json:"mono_region"`
	View        models.MessageView `json:"view"`
}

// RollChampions picks a random champion pair. The optional q parameter
// chooses the first champion.
func (h *RollHandler) RollChampions(c *gin.Context) {
	locale, err := h.locales.searchLocale(c)
	if err != nil {
		writeError(c, err)
		return
	}
	version, err := h.locales.version(c)
	if err != nil {
		writeError(c, err)
		return
	}

	term := c.Query("q")
	roll, err := h.rolls.RollChampions(c.Request.Context(), locale, version, term)
	if errors.Is(err, services.ErrChampionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": views.ChampionNotFoundText(term)})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	resp := championRollResponse{
		First:      roll.First.Code,
		Second:     roll.Second.Code,
		MonoRegion: roll.MonoRegion,
		View:       views.ChampionRollView(h.emotes, roll),
	}
	if roll.ExtraRegion != nil {
		resp.ExtraRegion = roll.ExtraRegion.Key
	}
	c.JSON(http.StatusOK, resp)
}

type deckRollResponse struct {
	Code    string             `json:"code"`
	Regions [2]string          `json:"regions"`
	Cards   int                `json:"cards"`
	View    models.MessageView `json:"view"`
}

// RollDeck builds a random deck of count cards, 40 by default.
func (h *RollHandler) RollDeck(c *gin.Context) {
	count := services.DefaultDeckRollSize
	if raw := c.Query("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "count parameter must be an integer"})
			return
		}
		count = n
	}

	locale, err := h.locales.searchLocale(c)
	if err != nil {
		writeError(c, err)
		return
	}
	version, err := h.locales.version(c)
	if err != nil {
		writeError(c, err)
		return
	}

	roll, err := h.rolls.RollDeck(c.Request.Context(), locale, version, count)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, deckRollResponse{
		Code:    roll.Deck.Code,
		Regions: [2]string{roll.Regions[0].Key, roll.Regions[1].Key},
		Cards:   roll.Deck.CardCount(),
		View:    views.DeckRollView(h.emotes, roll),
	})
}
