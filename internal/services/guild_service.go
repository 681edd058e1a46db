package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode"

	"gorm.io/gorm"

	"github.com/codyseavey/lookout/internal/metrics"
	"github.com/codyseavey/lookout/internal/models"
)

var (
	ErrGuildSettingUnchanged = errors.New("guild setting unchanged")
	ErrInvalidPrefix         = errors.New("command prefix must be non-empty and contain no spaces")
)

// GuildService reads and writes per-guild overrides.
type GuildService struct {
	db       *gorm.DB
	defaults models.GuildSettings
}

func NewGuildService(db *gorm.DB, defaults models.GuildSettings) *GuildService {
	return &GuildService{db: db, defaults: defaults}
}

func (s *GuildService) Defaults() models.GuildSettings {
	return s.defaults
}

// find returns the stored guild row, or nil when the guild has no overrides.
func (s *GuildService) find(ctx context.Context, guildID uint64) (*models.Guild, error) {
	var guild models.Guild
	err := s.db.WithContext(ctx).First(&guild, guildID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load guild %d: %w", guildID, err)
	}
	return &guild, nil
}

// GetSettings merges the stored overrides of a guild with the defaults.
func (s *GuildService) GetSettings(ctx context.Context, guildID uint64) (models.GuildSettings, error) {
	settings := s.defaults
	guild, err := s.find(ctx, guildID)
	if err != nil || guild == nil {
		return settings, err
	}

	if guild.CommandPrefix != nil {
		settings.CommandPrefix = *guild.CommandPrefix
	}
	if guild.Locale != nil {
		loc, err := models.ParseLocale(*guild.Locale)
		if err != nil {
			log.Printf("Warning: guild %d has unrecognized locale %q, using %s", guildID, *guild.Locale, settings.Locale)
		} else {
			settings.Locale = loc
		}
	}
	return settings, nil
}

// GuildLocale is the search locale of a guild.
func (s *GuildService) GuildLocale(ctx context.Context, guildID uint64) (models.Locale, error) {
	settings, err := s.GetSettings(ctx, guildID)
	if err != nil {
		return "", err
	}
	return settings.Locale, nil
}

// SetPrefix stores a new command prefix and returns the previous stored
// prefix, or "" when the guild used the default.
func (s *GuildService) SetPrefix(ctx context.Context, guildID uint64, prefix string) (string, error) {
	if prefix == "" || strings.IndexFunc(prefix, unicode.IsSpace) >= 0 {
		return "", ErrInvalidPrefix
	}

	guild, err := s.find(ctx, guildID)
	if err != nil {
		return "", err
	}

	var previous string
	if guild != nil && guild.CommandPrefix != nil {
		previous = *guild.CommandPrefix
		if previous == prefix {
			return previous, fmt.Errorf("%w: command prefix is already %q", ErrGuildSettingUnchanged, prefix)
		}
	}

	if err := s.save(ctx, guildID, guild, "command_prefix", prefix); err != nil {
		return "", err
	}
	metrics.GuildSettingUpdatesTotal.WithLabelValues("prefix").Inc()
	return previous, nil
}

// SetLocale stores a new search locale and returns the previous stored
// locale, or "" when the guild used the default.
func (s *GuildService) SetLocale(ctx context.Context, guildID uint64, raw string) (models.Locale, error) {
	loc, err := models.ParseLocale(raw)
	if err != nil {
		return "", err
	}

	guild, err := s.find(ctx, guildID)
	if err != nil {
		return "", err
	}

	var previous models.Locale
	if guild != nil && guild.Locale != nil {
		if old, err := models.ParseLocale(*guild.Locale); err == nil {
			previous = old
			if old == loc {
				return previous, fmt.Errorf("%w: locale is already %s", ErrGuildSettingUnchanged, loc.Display())
			}
		}
	}

	if err := s.save(ctx, guildID, guild, "locale", string(loc)); err != nil {
		return "", err
	}
	metrics.GuildSettingUpdatesTotal.WithLabelValues("locale").Inc()
	return previous, nil
}

func (s *GuildService) save(ctx context.Context, guildID uint64, guild *models.Guild, column, value string) error {
	db := s.db.WithContext(ctx)
	if guild == nil {
		guild = &models.Guild{ID: guildID}
		switch column {
		case "command_prefix":
			guild.CommandPrefix = &value
		case "locale":
			guild.Locale = &value
		}
		if err := db.Create(guild).Error; err != nil {
			return fmt.Errorf("failed to create guild %d: %w", guildID, err)
		}
		return nil
	}

	if err := db.Model(guild).Update(column, value).Error; err != nil {
		return fmt.Errorf("failed to update guild %d: %w", guildID, err)
	}
	return nil
}

// ExtractInlineQueries returns the trimmed, non-empty terms enclosed by
// opener and closer in text, in order of appearance.
func ExtractInlineQueries(text, opener, closer string) []string {
	var queries []string
	if opener == "" || closer == "" {
		return queries
	}

	rest := text
	for {
		start := strings.Index(rest, opener)
		if start < 0 {
			break
		}
		rest = rest[start+len(opener):]
		end := strings.Index(rest, closer)
		if end < 0 {
			break
		}
		if q := strings.TrimSpace(rest[:end]); q != "" {
			queries = append(queries, q)
		}
		rest = rest[end+len(closer):]
	}
	return queries
}
