package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codyseavey/lookout/internal/config"
	"github.com/codyseavey/lookout/internal/models"
	"github.com/codyseavey/lookout/internal/services"
	"github.com/codyseavey/lookout/internal/views"
)

// env is the configuration and services every command runs against.
type env struct {
	cfg      *config.Config
	settings config.Settings
	stack    *services.Stack
	lookup   *views.Lookup
}

func loadEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	settings, err := config.LoadSettings(cfg.SettingsPath)
	if err != nil {
		return nil, err
	}
	stack, err := services.NewStack(ctx, cfg, settings, nil)
	if err != nil {
		return nil, err
	}
	return &env{
		cfg:      cfg,
		settings: settings,
		stack:    stack,
		lookup:   views.NewLookup(views.Emotes(settings.RegionEmotes), stack.Searches, stack.Expander, stack.Catalogs),
	}, nil
}

func (e *env) Close() {
	e.stack.Close()
}

func (e *env) emotes() views.Emotes {
	return views.Emotes(e.settings.RegionEmotes)
}

// localeFlags are the flags shared by commands that read a catalog.
type localeFlags struct {
	locale      string
	translate   string
	dataVersion string
	width       int
}

func (f *localeFlags) register(cmd *cobra.Command, translate bool) {
	cmd.Flags().StringVar(&f.locale, "locale", "", "Locale to search in, such as en-US or fr-FR")
	cmd.Flags().StringVar(&f.dataVersion, "data-version", "", "Data Dragon version such as 4.3.0 (latest by default)")
	cmd.Flags().IntVar(&f.width, "width", 80, "Wrap output at this many columns, 0 disables wrapping")
	if translate {
		cmd.Flags().StringVar(&f.translate, "translate", "", "Locale to translate the matches into")
	}
}

func (f *localeFlags) resolve(settings config.Settings) (models.Locale, models.Version, error) {
	locale := settings.GuildDefaults.Locale
	if f.locale != "" {
		parsed, err := models.ParseLocale(f.locale)
		if err != nil {
			return "", models.Version{}, err
		}
		locale = parsed
	}
	version := settings.LatestVersion
	if f.dataVersion != "" {
		parsed, err := models.ParseVersion(f.dataVersion)
		if err != nil {
			return "", models.Version{}, err
		}
		version = parsed
	}
	return locale, version, nil
}

func (f *localeFlags) searchParameters(settings config.Settings, term string) (services.SearchParameters, error) {
	locale, version, err := f.resolve(settings)
	if err != nil {
		return services.SearchParameters{}, err
	}
	p := services.SearchParameters{SearchTerm: term, SearchLocale: locale, Version: version}
	if f.translate != "" {
		target, err := models.ParseLocale(f.translate)
		if err != nil {
			return services.SearchParameters{}, fmt.Errorf("invalid --translate: %w", err)
		}
		if target != locale {
			p.TranslationLocale = &target
		}
	}
	return p, nil
}
