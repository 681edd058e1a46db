package database

import (
	"log"
	"slices"

	"gorm.io/gorm"

	"github.com/codyseavey/lookout/internal/models"
)

const legacyGuildTable = "legacy_guilds"

// renameLegacyGuildTable detects the older guild table, which used PascalCase
// columns, and renames it so its rows can be copied after AutoMigrate.
// sqlite table names are case-insensitive, so "Guilds" and "guilds" collide.
// This runs BEFORE AutoMigrate.
func renameLegacyGuildTable(db *gorm.DB) error {
	var table string
	if err := db.Raw(`SELECT name FROM sqlite_master WHERE type = 'table' AND lower(name) = 'guilds'`).Scan(&table).Error; err != nil {
		return err
	}
	if table == "" {
		return nil
	}

	var columns []string
	if err := db.Raw(`SELECT name FROM pragma_table_info(?)`, table).Scan(&columns).Error; err != nil {
		return err
	}
	if !slices.Contains(columns, "CommandPrefix") {
		return nil
	}

	log.Printf("Renaming legacy guild table %s", table)
	return db.Migrator().RenameTable(table, legacyGuildTable)
}

// RunMigrations runs any custom data migrations after schema changes
func RunMigrations(db *gorm.DB) error {
	if err := importLegacyGuilds(db); err != nil {
		return err
	}
	if err := clearBlankOverrides(db); err != nil {
		return err
	}
	return normalizeGuildLocales(db)
}

func importLegacyGuilds(db *gorm.DB) error {
	if !db.Migrator().HasTable(legacyGuildTable) {
		return nil
	}

	result := db.Exec(`
		INSERT OR IGNORE INTO guilds (id, command_prefix, locale, created_at, updated_at)
		SELECT Id, CommandPrefix, Locale, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP
		FROM ` + legacyGuildTable)
	if result.Error != nil {
		return result.Error
	}
	log.Printf("Imported %d legacy guild rows", result.RowsAffected)

	if err := db.Migrator().DropTable(legacyGuildTable); err != nil {
		log.Printf("Warning: failed to drop %s: %v", legacyGuildTable, err)
	}
	return nil
}

// clearBlankOverrides turns empty overrides back into NULL so the defaults apply.
func clearBlankOverrides(db *gorm.DB) error {
	if err := db.Exec(`UPDATE guilds SET command_prefix = NULL WHERE TRIM(command_prefix) = ''`).Error; err != nil {
		return err
	}
	return db.Exec(`UPDATE guilds SET locale = NULL WHERE TRIM(locale) = ''`).Error
}

// normalizeGuildLocales rewrites locales stored as "en-US" or "EN_us" into
// their canonical form. Unrecognized locales are cleared.
// This is safe to run multiple times.
func normalizeGuildLocales(db *gorm.DB) error {
	var guilds []models.Guild
	if err := db.Where("locale IS NOT NULL").Find(&guilds).Error; err != nil {
		return err
	}

	updated := 0
	for _, g := range guilds {
		raw := *g.Locale
		var value any
		loc, err := models.ParseLocale(raw)
		if err != nil {
			log.Printf("Warning: clearing unrecognized locale %q for guild %d", raw, g.ID)
		} else if string(loc) == raw {
			continue
		} else {
			value = string(loc)
		}

		if err := db.Model(&models.Guild{}).Where("id = ?", g.ID).Update("locale", value).Error; err != nil {
			log.Printf("Warning: failed to normalize locale for guild %d: %v", g.ID, err)
			continue
		}
		updated++
	}

	if updated > 0 {
		log.Printf("Normalized locales for %d guilds", updated)
	}
	return nil
}
