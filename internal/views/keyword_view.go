package views

import (
	"context"

	"github.com/codyseavey/lookout/internal/models"
)

func KeywordView(kw *models.Keyword) models.MessageView {
	desc := kw.Description
	if desc == "" {
		desc = "*No description.*"
	}
	return models.EmbedView(&models.Embed{
		Title:       kw.Name,
		Description: desc,
		Color:       embedColor,
	})
}

type KeywordViewBuilder struct{}

func (KeywordViewBuilder) ItemName(kw *models.Keyword) string {
	return kw.Name
}

func (KeywordViewBuilder) ExpandItem(_ context.Context, kw *models.Keyword) ([]*models.Keyword, error) {
	return []*models.Keyword{kw}, nil
}

func (KeywordViewBuilder) BuildItemView(_ context.Context, kw *models.Keyword) (models.MessageView, error) {
	return KeywordView(kw), nil
}
