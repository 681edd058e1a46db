package mcp

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/codyseavey/lookout/internal/models"
	"github.com/codyseavey/lookout/internal/services"
	"github.com/codyseavey/lookout/internal/views"
)

// localeArgs are the locale and version arguments shared by the search tools.
type localeArgs struct {
	locale    string
	translate string
	version   string
}

type SearchInput struct {
	Query     string `json:"query" jsonschema:"card name, keyword name or deck code"`
	Locale    string `json:"locale,omitempty" jsonschema:"search locale such as en-US or fr-FR"`
	Translate string `json:"translate,omitempty" jsonschema:"locale to translate the matches into"`
	Version   string `json:"version,omitempty" jsonschema:"Data Dragon version such as 4.3.0, latest by default"`
}

type FindCardInput struct {
	Query     string `json:"query" jsonschema:"card name or card code"`
	View      string `json:"view,omitempty" jsonschema:"cardboard, flavor or related"`
	Locale    string `json:"locale,omitempty" jsonschema:"search locale such as en-US or fr-FR"`
	Translate string `json:"translate,omitempty" jsonschema:"locale to translate the matches into"`
	Version   string `json:"version,omitempty" jsonschema:"Data Dragon version such as 4.3.0, latest by default"`
}

type FindKeywordInput struct {
	Query     string `json:"query" jsonschema:"keyword or game term name"`
	Locale    string `json:"locale,omitempty" jsonschema:"search locale such as en-US or fr-FR"`
	Translate string `json:"translate,omitempty" jsonschema:"locale to translate the matches into"`
	Version   string `json:"version,omitempty" jsonschema:"Data Dragon version such as 4.3.0, latest by default"`
}

type DecodeDeckInput struct {
	Code    string `json:"code" jsonschema:"deck code"`
	Locale  string `json:"locale,omitempty" jsonschema:"locale of the card names"`
	Version string `json:"version,omitempty" jsonschema:"Data Dragon version, latest by default"`
}

type RollChampionsInput struct {
	Champion string `json:"champion,omitempty" jsonschema:"name of the first champion, random when empty"`
	Locale   string `json:"locale,omitempty" jsonschema:"locale of the champion names"`
	Version  string `json:"version,omitempty" jsonschema:"Data Dragon version, latest by default"`
}

type RollDeckInput struct {
	Count   int    `json:"count,omitempty" jsonschema:"number of cards, 40 by default and at most 120"`
	Locale  string `json:"locale,omitempty" jsonschema:"locale of the card names"`
	Version string `json:"version,omitempty" jsonschema:"Data Dragon version, latest by default"`
}

type CardOutput struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Region string `json:"region,omitempty"`
}

type DeckCardOutput struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Region string `json:"region,omitempty"`
	Count  int    `json:"count"`
}

type ChampionRollOutput struct {
	First       CardOutput `json:"first"`
	Second      CardOutput `json:"second"`
	ExtraRegion string     `json:"extra_region,omitempty"`
	MonoRegion  bool       `json:"mono_region"`
}

type DeckRollOutput struct {
	Code    string           `json:"code"`
	Regions []string         `json:"regions"`
	Cards   []DeckCardOutput `json:"cards"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "search",
		Description: "Search cards, keywords and deck codes at once",
	}, s.handleSearch)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "find_card",
		Description: "Find a card by name or code and show it, its art or its related cards",
	}, s.handleFindCard)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "find_keyword",
		Description: "Find a keyword or game term and its description",
	}, s.handleFindKeyword)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "decode_deck",
		Description: "Decode a deck code into its cards",
	}, s.handleDecodeDeck)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "roll_champions",
		Description: "Pick a random pair of champions to build a deck around",
	}, s.handleRollChampions)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "roll_deck",
		Description: "Build a random two-region deck",
	}, s.handleRollDeck)
}

func (s *Server) locale(raw string) (models.Locale, error) {
	if raw == "" {
		return s.settings.GuildDefaults.Locale, nil
	}
	return models.ParseLocale(raw)
}

func (s *Server) version(raw string) (models.Version, error) {
	if raw == "" {
		return s.settings.LatestVersion, nil
	}
	return models.ParseVersion(raw)
}

func (s *Server) searchParameters(term string, in localeArgs) (services.SearchParameters, error) {
	if strings.TrimSpace(term) == "" {
		return services.SearchParameters{}, fmt.Errorf("query is required")
	}
	locale, err := s.locale(in.locale)
	if err != nil {
		return services.SearchParameters{}, err
	}
	version, err := s.version(in.version)
	if err != nil {
		return services.SearchParameters{}, err
	}

	p := services.SearchParameters{SearchTerm: term, SearchLocale: locale, Version: version}
	if in.translate != "" {
		target, err := models.ParseLocale(in.translate)
		if err != nil {
			return services.SearchParameters{}, err
		}
		if target != locale {
			p.TranslationLocale = &target
		}
	}
	return p, nil
}

func textResult(view models.MessageView) *sdk.CallToolResult {
	return &sdk.CallToolResult{
		Content: []sdk.Content{&sdk.TextContent{Text: views.RenderText(view, 0)}},
	}
}

func (s *Server) runSearch(ctx context.Context, view, term string, in localeArgs) (*sdk.CallToolResult, views.SearchOutput, error) {
	p, err := s.searchParameters(term, in)
	if err != nil {
		return nil, views.SearchOutput{}, err
	}
	out, err := s.lookup.Search(ctx, view, p)
	if err != nil {
		return nil, views.SearchOutput{}, err
	}
	return textResult(out.View), *out, nil
}

func (s *Server) handleSearch(ctx context.Context, req *sdk.CallToolRequest, input SearchInput) (*sdk.CallToolResult, views.SearchOutput, error) {
	return s.runSearch(ctx, views.ViewAnything, input.Query, localeArgs{input.Locale, input.Translate, input.Version})
}

func (s *Server) handleFindCard(ctx context.Context, req *sdk.CallToolRequest, input FindCardInput) (*sdk.CallToolResult, views.SearchOutput, error) {
	view := input.View
	switch view {
	case "":
		view = views.ViewCardboard
	case views.ViewCardboard, views.ViewFlavor, views.ViewRelated:
	default:
		return nil, views.SearchOutput{}, fmt.Errorf("view must be cardboard, flavor or related, got %q", view)
	}
	return s.runSearch(ctx, view, input.Query, localeArgs{input.Locale, input.Translate, input.Version})
}

func (s *Server) handleFindKeyword(ctx context.Context, req *sdk.CallToolRequest, input FindKeywordInput) (*sdk.CallToolResult, views.SearchOutput, error) {
	return s.runSearch(ctx, views.ViewKeyword, input.Query, localeArgs{input.Locale, input.Translate, input.Version})
}

func (s *Server) handleDecodeDeck(ctx context.Context, req *sdk.CallToolRequest, input DecodeDeckInput) (*sdk.CallToolResult, views.SearchOutput, error) {
	return s.runSearch(ctx, views.ViewDeck, input.Code, localeArgs{locale: input.Locale, version: input.Version})
}

func cardOutput(card *models.Card) CardOutput {
	out := CardOutput{Code: card.Code, Name: card.DisplayName()}
	if card.Region != nil {
		out.Region = card.Region.Key
	}
	return out
}

func (s *Server) handleRollChampions(ctx context.Context, req *sdk.CallToolRequest, input RollChampionsInput) (*sdk.CallToolResult, ChampionRollOutput, error) {
	locale, err := s.locale(input.Locale)
	if err != nil {
		return nil, ChampionRollOutput{}, err
	}
	version, err := s.version(input.Version)
	if err != nil {
		return nil, ChampionRollOutput{}, err
	}

	roll, err := s.rolls.RollChampions(ctx, locale, version, input.Champion)
	if err != nil {
		return nil, ChampionRollOutput{}, err
	}

	output := ChampionRollOutput{
		First:      cardOutput(roll.First),
		Second:     cardOutput(roll.Second),
		MonoRegion: roll.MonoRegion,
	}
	if roll.ExtraRegion != nil {
		output.ExtraRegion = roll.ExtraRegion.Key
	}
	return textResult(views.ChampionRollView(s.emotes, roll)), output, nil
}

func (s *Server) handleRollDeck(ctx context.Context, req *sdk.CallToolRequest, input RollDeckInput) (*sdk.CallToolResult, DeckRollOutput, error) {
	locale, err := s.locale(input.Locale)
	if err != nil {
		return nil, DeckRollOutput{}, err
	}
	version, err := s.version(input.Version)
	if err != nil {
		return nil, DeckRollOutput{}, err
	}
	count := input.Count
	if count == 0 {
		count = services.DefaultDeckRollSize
	}

	roll, err := s.rolls.RollDeck(ctx, locale, version, count)
	if err != nil {
		return nil, DeckRollOutput{}, err
	}

	output := DeckRollOutput{
		Code:    roll.Deck.Code,
		Regions: []string{roll.Regions[0].Key, roll.Regions[1].Key},
		Cards:   make([]DeckCardOutput, 0, len(roll.Deck.Cards)),
	}
	for _, cc := range roll.Deck.Cards {
		card := cardOutput(cc.Card)
		output.Cards = append(output.Cards, DeckCardOutput{Code: card.Code, Name: card.Name, Region: card.Region, Count: cc.Count})
	}
	return textResult(views.DeckRollView(s.emotes, roll)), output, nil
}
