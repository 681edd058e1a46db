package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Canonicalizer normalizes queries and candidate names before they are compared.
type Canonicalizer interface {
	Canonicalize(s string) string
}

// TrimFoldCanonicalizer trims whitespace and applies Unicode case folding,
// optionally stripping diacritics as well. It holds stateful transformers and
// must not be shared between goroutines.
type TrimFoldCanonicalizer struct {
	folder  cases.Caser
	accents transform.Transformer
}

func NewCanonicalizer(foldAccents bool) *TrimFoldCanonicalizer {
	c := &TrimFoldCanonicalizer{folder: cases.Fold()}
	if foldAccents {
		c.accents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	}
	return c
}

func (c *TrimFoldCanonicalizer) Canonicalize(s string) string {
	s = c.folder.String(strings.TrimSpace(s))
	if c.accents != nil {
		if folded, _, err := transform.String(c.accents, s); err == nil {
			s = folded
		}
	}
	return s
}
