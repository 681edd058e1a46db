package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codyseavey/lookout/internal/api/handlers"
	"github.com/codyseavey/lookout/internal/config"
	"github.com/codyseavey/lookout/internal/services"
	"github.com/codyseavey/lookout/internal/views"
)

// Dependencies are the services behind the HTTP API.
type Dependencies struct {
	Lookup   *views.Lookup
	Guilds   *services.GuildService
	Rolls    *services.RollService
	Settings config.Settings

	// Refresher is optional; the catalog routes are only mounted with one.
	Refresher *services.RefreshWorker
}

func SetupRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	router := gin.Default()
	router.Use(RequestID(), Metrics())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader}
	corsConfig.ExposeHeaders = []string{requestIDHeader}
	corsConfig.AllowCredentials = false // Explicitly set
	router.Use(cors.New(corsConfig))

	// Initialize handlers
	latest := deps.Settings.LatestVersion
	emotes := views.Emotes(deps.Settings.RegionEmotes)
	searchHandler := handlers.NewSearchHandler(deps.Lookup, deps.Guilds, latest)
	rollHandler := handlers.NewRollHandler(deps.Rolls, deps.Guilds, emotes, latest)
	guildHandler := handlers.NewGuildHandler(deps.Guilds, deps.Lookup, latest)
	metaHandler := handlers.NewMetaHandler(deps.Settings.Bot, deps.Guilds)

	// API routes
	api := router.Group("/api")
	{
		api.GET("/locales", searchHandler.GetLocales)
		api.GET("/search", searchHandler.Search)

		api.GET("/cards/search", searchHandler.SearchCards)
		api.GET("/keywords/search", searchHandler.SearchKeywords)
		api.GET("/decks/:code", searchHandler.GetDeck)

		// Roll routes
		rolls := api.Group("/rolls")
		{
			rolls.GET("/champions", rollHandler.RollChampions)
			rolls.GET("/deck", rollHandler.RollDeck)
		}

		// Guild routes
		guilds := api.Group("/guilds")
		{
			guilds.GET("/:id", guildHandler.GetGuild)
			guilds.PUT("/:id/prefix", guildHandler.SetPrefix)
			guilds.PUT("/:id/locale", guildHandler.SetLocale)
			guilds.POST("/:id/inline", guildHandler.ExtractInline)
		}

		// Meta routes
		meta := api.Group("/meta")
		{
			meta.GET("/about", metaHandler.About)
			meta.GET("/help", metaHandler.Help)
			meta.GET("/invite", metaHandler.Invite)
			meta.GET("/config", metaHandler.Config)
		}

		// Catalog routes
		if deps.Refresher != nil {
			catalogHandler := handlers.NewCatalogHandler(deps.Refresher)
			catalogs := api.Group("/catalogs")
			{
				catalogs.GET("/refresh", catalogHandler.GetRefreshStatus)
				catalogs.POST("/refresh", catalogHandler.Refresh)
			}
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return router
}
