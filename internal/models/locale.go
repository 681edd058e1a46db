package models

import (
	"errors"
	"fmt"
	"strings"
)

// Locale is a Data Dragon locale id such as "en_us".
type Locale string

const (
	LocaleEnglishUS Locale = "en_us"
)

var ErrUnknownLocale = errors.New("unknown locale")

var recognizedLocales = []Locale{
	"de_de", "en_us", "es_es", "es_mx", "fr_fr", "it_it", "ja_jp", "ko_kr",
	"pl_pl", "pt_br", "th_th", "tr_tr", "ru_ru", "zh_tw", "vi_vn",
}

// RecognizedLocales returns the locales Data Dragon publishes, in display order.
func RecognizedLocales() []Locale {
	out := make([]Locale, len(recognizedLocales))
	copy(out, recognizedLocales)
	return out
}

// ParseLocale accepts "en-US", "en_us" or any casing of either.
func ParseLocale(s string) (Locale, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	raw = strings.ReplaceAll(raw, "-", "_")
	parts := strings.Split(raw, "_")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return "", fmt.Errorf("%w: %q", ErrUnknownLocale, s)
	}
	loc := Locale(raw)
	if !loc.IsRecognized() {
		return "", fmt.Errorf("%w: %q", ErrUnknownLocale, s)
	}
	return loc, nil
}

func (l Locale) IsRecognized() bool {
	for _, r := range recognizedLocales {
		if r == l {
			return true
		}
	}
	return false
}

// Display renders the locale the way players type it, e.g. "en-US".
func (l Locale) Display() string {
	lang, region, ok := strings.Cut(string(l), "_")
	if !ok {
		return string(l)
	}
	return lang + "-" + strings.ToUpper(region)
}

func (l Locale) String() string {
	return string(l)
}

// UnmarshalText accepts the same spellings as ParseLocale.
func (l *Locale) UnmarshalText(text []byte) error {
	parsed, err := ParseLocale(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
