package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidCardCode = errors.New("invalid card code")

// CardCode is the structured form of a code like "01IO012T2".
type CardCode struct {
	Set     int
	Faction string
	Number  int
	// TNumber is the token/tier suffix; 0 for base printings.
	TNumber int
}

func ParseCardCode(s string) (CardCode, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 7 {
		return CardCode{}, fmt.Errorf("%w: %q", ErrInvalidCardCode, s)
	}

	set, err := strconv.Atoi(s[0:2])
	if err != nil {
		return CardCode{}, fmt.Errorf("%w: %q", ErrInvalidCardCode, s)
	}
	faction := s[2:4]
	if faction[0] < 'A' || faction[0] > 'Z' || faction[1] < 'A' || faction[1] > 'Z' {
		return CardCode{}, fmt.Errorf("%w: %q", ErrInvalidCardCode, s)
	}
	number, err := strconv.Atoi(s[4:7])
	if err != nil {
		return CardCode{}, fmt.Errorf("%w: %q", ErrInvalidCardCode, s)
	}

	code := CardCode{Set: set, Faction: faction, Number: number}
	if rest := s[7:]; rest != "" {
		if rest[0] != 'T' || len(rest) == 1 {
			return CardCode{}, fmt.Errorf("%w: %q", ErrInvalidCardCode, s)
		}
		t, err := strconv.Atoi(rest[1:])
		if err != nil || t <= 0 {
			return CardCode{}, fmt.Errorf("%w: %q", ErrInvalidCardCode, s)
		}
		code.TNumber = t
	}
	return code, nil
}

// SameBase reports whether both codes share set, faction and number.
func (c CardCode) SameBase(o CardCode) bool {
	return c.Set == o.Set && c.Faction == o.Faction && c.Number == o.Number
}

func (c CardCode) String() string {
	base := fmt.Sprintf("%02d%s%03d", c.Set, c.Faction, c.Number)
	if c.TNumber > 0 {
		return fmt.Sprintf("%sT%d", base, c.TNumber)
	}
	return base
}

const (
	SupertypeChampion = "Champion"
	TypeUnit          = "Unit"
	RarityChampion    = "Champion"
)

// Card is one printing in a localized catalog snapshot. Supertype and Type hold
// the localized display strings; classification goes through the home catalog.
type Card struct {
	Code               string   `json:"code"`
	CardCode           CardCode `json:"-"`
	Name               string   `json:"name,omitempty"`
	Locale             Locale   `json:"locale"`
	Version            Version  `json:"version"`
	Collectible        bool     `json:"collectible"`
	Region             *Region  `json:"region,omitempty"`
	RegionRefs         []string `json:"region_refs,omitempty"`
	Set                string   `json:"set,omitempty"`
	Supertype          string   `json:"supertype,omitempty"`
	Type               string   `json:"type,omitempty"`
	Subtypes           []string `json:"subtypes,omitempty"`
	RarityRef          string   `json:"rarity,omitempty"`
	Cost               int      `json:"cost"`
	Attack             int      `json:"attack"`
	Health             int      `json:"health"`
	Description        string   `json:"description,omitempty"`
	LevelupDescription string   `json:"levelup_description,omitempty"`
	FlavorText         string   `json:"flavor_text,omitempty"`
	ArtistName         string   `json:"artist_name,omitempty"`
	Keywords           []string `json:"keywords,omitempty"`
	SpellSpeed         string   `json:"spell_speed,omitempty"`
	AssociatedCodes    []string `json:"associated_codes,omitempty"`
	ImageURL           string   `json:"image_url,omitempty"`
	FullArtURL         string   `json:"full_art_url,omitempty"`
}

// DisplayName falls back to the code for nameless cards.
func (c *Card) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Code
}

func (c *Card) IsChampion() bool {
	return c.Supertype == SupertypeChampion
}

func (c *Card) HasLevelup() bool {
	return strings.TrimSpace(c.LevelupDescription) != ""
}

func (c *Card) String() string {
	return fmt.Sprintf("card %s (%s)", c.Code, c.DisplayName())
}

// Region is a card faction as listed in the globals file.
type Region struct {
	Key          string `json:"key"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	IconURL      string `json:"icon_url,omitempty"`
}
