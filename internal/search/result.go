package search

import "github.com/codyseavey/lookout/internal/models"

type ItemMatch[T any] struct {
	Item     T       `json:"item"`
	Strength float64 `json:"strength"`
}

// SearchResult lists matches by descending strength, one per name group.
type SearchResult[T any] struct {
	SearchTerm string         `json:"search_term"`
	Locale     models.Locale  `json:"locale"`
	Version    models.Version `json:"version"`
	Matches    []ItemMatch[T] `json:"matches"`
}

// SingleItemResult is the result of a literal code lookup.
func SingleItemResult[T any](term string, locale models.Locale, version models.Version, item T) SearchResult[T] {
	return SearchResult[T]{
		SearchTerm: term,
		Locale:     locale,
		Version:    version,
		Matches:    []ItemMatch[T]{{Item: item, Strength: 1}},
	}
}

// TranslatedSearchResult pairs a result with a partial translation map. An
// item with no entry in Translations stays in its search locale.
type TranslatedSearchResult[T comparable] struct {
	SearchResult[T]
	TranslationLocale *models.Locale `json:"translation_locale,omitempty"`
	Translations      map[T]T        `json:"-"`
}

func Untranslated[T comparable](result SearchResult[T]) TranslatedSearchResult[T] {
	return TranslatedSearchResult[T]{SearchResult: result, Translations: map[T]T{}}
}

func Translated[T comparable](result SearchResult[T], locale models.Locale, translations map[T]T) TranslatedSearchResult[T] {
	if translations == nil {
		translations = map[T]T{}
	}
	return TranslatedSearchResult[T]{SearchResult: result, TranslationLocale: &locale, Translations: translations}
}

// Translation returns the translated form of item, if one was found.
func (r TranslatedSearchResult[T]) Translation(item T) (T, bool) {
	t, ok := r.Translations[item]
	return t, ok
}

// Resolve returns the translated form of item, or item itself.
func (r TranslatedSearchResult[T]) Resolve(item T) T {
	if t, ok := r.Translations[item]; ok {
		return t
	}
	return item
}
