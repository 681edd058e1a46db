package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/codyseavey/lookout/internal/api"
	"github.com/codyseavey/lookout/internal/config"
	"github.com/codyseavey/lookout/internal/database"
	"github.com/codyseavey/lookout/internal/models"
	"github.com/codyseavey/lookout/internal/services"
	"github.com/codyseavey/lookout/internal/views"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	settings, err := config.LoadSettings(cfg.SettingsPath)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	// Initialize database
	if err := database.Initialize(cfg.DBPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Create a cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize services
	stack, err := services.NewStack(ctx, cfg, settings, nil)
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}
	defer stack.Close()

	guildService := services.NewGuildService(database.GetDB(), settings.GuildDefaults)
	lookup := views.NewLookup(views.Emotes(settings.RegionEmotes), stack.Searches, stack.Expander, stack.Catalogs)

	// Mirror the home and default guild locales in the background, with panic recovery
	if cfg.PrefetchBundles && cfg.BundleDir != "" {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("PANIC in bundle prefetch: %v", r)
				}
			}()
			locales := []models.Locale{settings.HomeLocale}
			if settings.GuildDefaults.Locale != settings.HomeLocale {
				locales = append(locales, settings.GuildDefaults.Locale)
			}
			if err := stack.Prefetch(ctx, settings.LatestVersion, locales...); err != nil {
				log.Printf("Bundle prefetch failed: %v", err)
				return
			}
			log.Println("Bundle prefetch completed")
		}()
	}

	// Warm the home catalog so the first search does not pay for it
	go func() {
		if _, err := stack.Catalogs.GetHomeCatalog(ctx, settings.LatestVersion); err != nil {
			log.Printf("Warning: failed to warm home catalog: %v", err)
			return
		}
		log.Printf("Loaded %s catalog for version %s", settings.HomeLocale, settings.LatestVersion)
	}()

	// Periodically pick up new Data Dragon releases
	var refresher *services.RefreshWorker
	if cfg.CatalogRefreshInterval > 0 {
		refresher = services.NewRefreshWorker(stack.Catalogs, cfg.CatalogRefreshInterval, settings.HomeLocale)
		go func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("PANIC in catalog refresh worker: %v", r)
				}
			}()
			refresher.Start(ctx)
		}()
	}

	// Setup router
	router := api.SetupRouter(cfg, api.Dependencies{
		Lookup:    lookup,
		Guilds:    guildService,
		Rolls:     stack.Rolls,
		Settings:  settings,
		Refresher: refresher,
	})

	// Create HTTP server for graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Cancel the context to stop background fetches
	cancel()

	// Give outstanding requests a deadline to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
