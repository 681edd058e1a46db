package search

import "github.com/codyseavey/lookout/internal/models"

// Candidate is a catalog item offered to the searcher. Items whose canonical
// names are equal form one name-equivalence group. Key orders items that tie.
type Candidate[T any] struct {
	Item T
	Name string
	Key  string
}

// NameGrouper lists the searchable items of one kind in a catalog.
type NameGrouper[T any] interface {
	Candidates(catalog *models.Catalog) []Candidate[T]
}

// CardNameGrouper offers every named card. Printings sharing a name (a
// champion and its level-up forms) collapse into one group.
type CardNameGrouper struct{}

func (CardNameGrouper) Candidates(catalog *models.Catalog) []Candidate[*models.Card] {
	cards := catalog.SortedCards()
	out := make([]Candidate[*models.Card], 0, len(cards))
	for _, card := range cards {
		if card.Name == "" {
			continue
		}
		out = append(out, Candidate[*models.Card]{Item: card, Name: card.Name, Key: card.Code})
	}
	return out
}

// KeywordNameGrouper offers keywords and, optionally, vocabulary terms as
// keywords. Keywords sort ahead of vocab terms with the same name.
type KeywordNameGrouper struct {
	IncludeVocabTerms              bool
	IncludeDescriptionlessKeywords bool
}

func (g KeywordNameGrouper) Candidates(catalog *models.Catalog) []Candidate[*models.Keyword] {
	var out []Candidate[*models.Keyword]
	for _, kw := range catalog.SortedKeywords() {
		if kw.Name == "" {
			continue
		}
		if kw.Description == "" && !g.IncludeDescriptionlessKeywords {
			continue
		}
		out = append(out, Candidate[*models.Keyword]{Item: kw, Name: kw.Name, Key: "0:" + kw.Key})
	}

	if !g.IncludeVocabTerms {
		return out
	}
	for _, vt := range catalog.SortedVocabTerms() {
		if vt.Name == "" {
			continue
		}
		kw := &models.Keyword{Key: vt.Key, Name: vt.Name, Description: vt.Description, Vocab: true}
		out = append(out, Candidate[*models.Keyword]{Item: kw, Name: vt.Name, Key: "1:" + vt.Key})
	}
	return out
}
