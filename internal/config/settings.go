package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/codyseavey/lookout/internal/models"
	"github.com/codyseavey/lookout/internal/search"
)

var ErrInvalidSettings = errors.New("invalid settings")

type SearchSettings struct {
	SubstringBookendWeight           float64 `yaml:"substring_bookend_weight"`
	SubstringBookendTaper            float64 `yaml:"substring_bookend_taper"`
	StringMatchThreshold             float64 `yaml:"string_match_threshold"`
	UncollectibleCardDownscaleFactor float64 `yaml:"uncollectible_card_downscale_factor"`
	GlobalKeywordDownscaleFactor     float64 `yaml:"global_keyword_downscale_factor"`
	PreserveStrongMatches            bool    `yaml:"preserve_strong_matches"`
	StrongMatchCutoff                float64 `yaml:"strong_match_cutoff"`
	TermMatcher                      string  `yaml:"term_matcher"`
	FoldAccents                      bool    `yaml:"fold_accents"`
}

// SearchConfig converts the settings into a per-search configuration value.
func (s SearchSettings) SearchConfig() search.Config {
	return search.Config{
		Matcher:               s.TermMatcher,
		BookendWeight:         s.SubstringBookendWeight,
		BookendTaper:          s.SubstringBookendTaper,
		MatchThreshold:        s.StringMatchThreshold,
		PreserveStrongMatches: s.PreserveStrongMatches,
		StrongMatchCutoff:     s.StrongMatchCutoff,
		FoldAccents:           s.FoldAccents,
	}
}

type BotSettings struct {
	Name           string `yaml:"name"`
	MaintainerName string `yaml:"maintainer_name"`
	InviteLink     string `yaml:"invite_link"`
	SourceLink     string `yaml:"source_link"`
	DonationLink   string `yaml:"donation_link"`
}

// Settings are the bot tunables. They are loaded once and passed by value.
type Settings struct {
	LatestVersion models.Version       `yaml:"latest_version"`
	HomeLocale    models.Locale        `yaml:"home_locale"`
	Search        SearchSettings       `yaml:"search"`
	Bot           BotSettings          `yaml:"bot"`
	RegionEmotes  map[string]uint64    `yaml:"region_emotes"`
	GuildDefaults models.GuildSettings `yaml:"guild_defaults"`
}

func DefaultSettings() Settings {
	return Settings{
		HomeLocale: models.LocaleEnglishUS,
		Search: SearchSettings{
			SubstringBookendWeight:           1,
			SubstringBookendTaper:            1,
			StringMatchThreshold:             search.DefaultMatchThreshold,
			UncollectibleCardDownscaleFactor: 1,
			GlobalKeywordDownscaleFactor:     1,
			PreserveStrongMatches:            true,
			StrongMatchCutoff:                search.DefaultStrongMatchCutoff,
			TermMatcher:                      search.MatcherSubstring,
		},
		Bot:          BotSettings{Name: "Lookout"},
		RegionEmotes: map[string]uint64{},
		GuildDefaults: models.GuildSettings{
			CommandPrefix:       ">",
			Locale:              models.LocaleEnglishUS,
			AllowInlineCommands: true,
			InlineCommandAlias:  "search",
			InlineCommandOpener: "<<",
			InlineCommandCloser: ">>",
		},
	}
}

// LoadSettings reads a YAML settings file over the defaults. An empty path
// returns the defaults.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings file: %w", err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings file: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func inUnitRange(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}

// Validate rejects settings that would fail at search time.
func (s Settings) Validate() error {
	sc := s.Search
	checks := []struct {
		name string
		ok   bool
	}{
		{"search.string_match_threshold", inUnitRange(sc.StringMatchThreshold)},
		{"search.strong_match_cutoff", inUnitRange(sc.StrongMatchCutoff)},
		{"search.uncollectible_card_downscale_factor", inUnitRange(sc.UncollectibleCardDownscaleFactor)},
		{"search.global_keyword_downscale_factor", inUnitRange(sc.GlobalKeywordDownscaleFactor)},
		{"search.substring_bookend_weight", sc.SubstringBookendWeight >= 1},
		{"search.substring_bookend_taper", sc.SubstringBookendTaper >= 0},
		{"search.term_matcher", sc.TermMatcher == "" || slices.Contains(search.MatcherNames(), sc.TermMatcher)},
		{"home_locale", s.HomeLocale.IsRecognized()},
		{"guild_defaults.locale", s.GuildDefaults.Locale.IsRecognized()},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("%w: %s", ErrInvalidSettings, c.name)
		}
	}
	return nil
}
