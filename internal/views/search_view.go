// Package views turns search results and rolls into message views.
package views

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/codyseavey/lookout/internal/models"
	"github.com/codyseavey/lookout/internal/search"
)

// ItemViewBuilder renders one kind of search item.
type ItemViewBuilder[T any] interface {
	// ItemName is the name listed in "did you mean" suggestions.
	ItemName(item T) string
	// ExpandItem returns the items to render for the best match, in order.
	ExpandItem(ctx context.Context, item T) ([]T, error)
	BuildItemView(ctx context.Context, item T) (models.MessageView, error)
}

func noResults(term string) models.MessageView {
	return models.TextView(fmt.Sprintf("No results for `%s`.", term))
}

// didYouMean lists every match after the first. A list longer than the
// message limit collapses into a count.
func didYouMean[T any](b ItemViewBuilder[T], matches []search.ItemMatch[T]) string {
	names := make([]string, 0, len(matches)-1)
	for _, m := range matches[1:] {
		names = append(names, "**"+b.ItemName(m.Item)+"**")
	}
	text := "Did you mean: " + strings.Join(names, " | ")
	if utf8.RuneCountInString(text) <= models.MaxMessageTextLength {
		return text
	}

	others := len(matches) - 1
	if others == 1 {
		return "*1 other result*"
	}
	return fmt.Sprintf("*%d other results*", others)
}

// BuildView renders the best match of result, translated when possible, and
// suggests the other matches by name.
func BuildView[T comparable](ctx context.Context, b ItemViewBuilder[T], result search.TranslatedSearchResult[T]) (models.MessageView, error) {
	matches := result.Matches
	if len(matches) == 0 {
		return noResults(result.SearchTerm), nil
	}

	var suggestion string
	if len(matches) > 1 {
		suggestion = didYouMean(b, matches)
	}

	best := result.Resolve(matches[0].Item)
	expansion, err := b.ExpandItem(ctx, best)
	if err != nil {
		return models.MessageView{}, err
	}

	views := make([]models.MessageView, len(expansion))
	g, gctx := errgroup.WithContext(ctx)
	for i, item := range expansion {
		g.Go(func() error {
			v, err := b.BuildItemView(gctx, item)
			if err != nil {
				return err
			}
			views[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.MessageView{}, err
	}

	return mergeViews(suggestion, views), nil
}

func mergeViews(suggestion string, views []models.MessageView) models.MessageView {
	var messages []models.MessageInfo
	switch {
	case suggestion == "":
		for _, v := range views {
			messages = append(messages, v.Messages...)
		}
	case len(views) == 1 && len(views[0].Messages) == 1:
		item := views[0].Messages[0]
		if item.Text == "" {
			messages = append(messages, models.MessageInfo{Text: suggestion, Embed: item.Embed})
		} else {
			messages = append(messages, models.MessageInfo{Text: suggestion}, item)
		}
	default:
		messages = append(messages, models.MessageInfo{Text: suggestion})
		for _, v := range views {
			messages = append(messages, v.Messages...)
		}
	}
	return models.MessageView{Messages: messages}
}
