package models

import "time"

// Guild stores per-server overrides. Nil fields fall back to the defaults.
type Guild struct {
	ID            uint64    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	CommandPrefix *string   `json:"command_prefix"`
	Locale        *string   `json:"locale"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// GuildSettings is the effective configuration for one guild.
type GuildSettings struct {
	CommandPrefix       string `json:"command_prefix" yaml:"command_prefix"`
	Locale              Locale `json:"locale" yaml:"locale"`
	AllowInlineCommands bool   `json:"allow_inline_commands" yaml:"allow_inline_commands"`
	InlineCommandAlias  string `json:"inline_command_alias" yaml:"inline_command_alias"`
	InlineCommandOpener string `json:"inline_command_opener" yaml:"inline_command_opener"`
	InlineCommandCloser string `json:"inline_command_closer" yaml:"inline_command_closer"`
}
