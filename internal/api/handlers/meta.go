package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/lookout/internal/config"
	"github.com/codyseavey/lookout/internal/models"
	"github.com/codyseavey/lookout/internal/services"
	"github.com/codyseavey/lookout/internal/views"
)

// MetaHandler serves the informational views. Each one honors the guild
// query parameter for the command prefix it shows.
type MetaHandler struct {
	bot     config.BotSettings
	locales requestLocales
}

func NewMetaHandler(bot config.BotSettings, guilds *services.GuildService) *MetaHandler {
	return &MetaHandler{bot: bot, locales: requestLocales{guilds: guilds}}
}

func (h *MetaHandler) withGuild(c *gin.Context, build func(models.GuildSettings) models.MessageView) {
	settings, err := h.locales.guildSettings(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, build(settings))
}

func (h *MetaHandler) About(c *gin.Context) {
	h.withGuild(c, func(g models.GuildSettings) models.MessageView { return views.AboutView(h.bot, g) })
}

func (h *MetaHandler) Help(c *gin.Context) {
	h.withGuild(c, func(g models.GuildSettings) models.MessageView { return views.HelpView(h.bot, g) })
}

func (h *MetaHandler) Config(c *gin.Context) {
	h.withGuild(c, views.ConfigView)
}

func (h *MetaHandler) Invite(c *gin.Context) {
	c.JSON(http.StatusOK, views.InviteView(h.bot))
}
