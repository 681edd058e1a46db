package views

import (
	"fmt"
	"strings"

	"github.com/codyseavey/lookout/internal/config"
	"github.com/codyseavey/lookout/internal/models"
)

const exampleDeckCode = "CICQCAQBAIAQGAICAEBQIBICAEASAMQEAECAQGJUHICACAIBAQAQCBA3AEBACCQBAMCAWBABAEASUAIBAQNACAYBCYBAGBANCQ"

func botName(bot config.BotSettings) string {
	if bot.Name == "" {
		return "Lookout"
	}
	return bot.Name
}

func AboutView(bot config.BotSettings, guild models.GuildSettings) models.MessageView {
	name := botName(bot)
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s** is a lightweight Legends of Runeterra utility with a handful of commands for displaying decks, cards, and more.\n\n", name)
	fmt.Fprintf(&sb, "Use the `help` command for info on available commands:\n`%shelp`\n%s\n", guild.CommandPrefix, blankLine)

	embed := &models.Embed{Description: sb.String(), Color: embedColor}
	if bot.MaintainerName != "" {
		embed.Fields = append(embed.Fields, models.EmbedField{
			Name:  titleBullet + " Developer",
			Value: fmt.Sprintf("`%s`\n\nFeel free to message with questions, bug reports, and feature requests!\n%s", bot.MaintainerName, blankLine),
		})
	}
	if bot.InviteLink != "" {
		embed.Fields = append(embed.Fields, models.EmbedField{
			Name:  titleBullet + " Invite",
			Value: fmt.Sprintf("%s\n\nAny user with server permission to invite bots can also configure %s once invited. Use the `config` command in your server for options.\n%s", bot.InviteLink, name, blankLine),
		})
	}
	if bot.SourceLink != "" {
		embed.Fields = append(embed.Fields, models.EmbedField{Name: titleBullet + " Source", Value: bot.SourceLink})
	}
	if bot.DonationLink != "" {
		embed.Fields = append(embed.Fields, models.EmbedField{Name: titleBullet + " Donate", Value: bot.DonationLink})
	}
	return models.EmbedView(embed)
}

func HelpView(bot config.BotSettings, guild models.GuildSettings) models.MessageView {
	name := botName(bot)
	p := guild.CommandPrefix
	const example = "card daring poro"

	var desc strings.Builder
	fmt.Fprintf(&desc, "Hello! **%s** is a lightweight Legends of Runeterra utility with a handful of commands for displaying decks, cards, and more.\n\n", name)
	fmt.Fprintf(&desc, "Invoke any command using the prefix `%s`, e.g.:\n`%s%s`\n\n", p, p, example)
	fmt.Fprintf(&desc, "Phrases shown below in [brackets] are *required* parameters. Phrases shown below in {braces} are *optional* parameters.\n%s", blankLine)

	general := fmt.Sprintf("%s`%sabout`: Info about %s.\n\n%s`%sinvite`: Instructions for inviting %s to your server.\n%s",
		bullet, p, name, bullet, p, name, blankLine)

	searchLines := []string{
		fmt.Sprintf("%s`%sdeck [deck-code]`: Print all the cards in a deck and any related info.", bullet, p),
		fmt.Sprintf("%s`%scard [card-identifier]`: Print generic info on a card (everything printed on it in-game).", bullet, p),
		fmt.Sprintf("%s`%sflavor [card-identifier]`: Print a card's full art and flavor text.", bullet, p),
		fmt.Sprintf("%s`%srelated [card-identifier]`: Print a list of a card's related cards (e.g. champion spells and created cards).", bullet, p),
		fmt.Sprintf("%s`%skeyword [keyword-name]`: Print a keyword's description.", bullet, p),
		fmt.Sprintf("%s`%ssearch [item-identifier]`: The `deck`, `card`, and `keyword` commands merged into a single command.", bullet, p),
	}
	if ip, si := guild.InlineCommandOpener, guild.InlineCommandCloser; guild.AllowInlineCommands && ip != "" && si != "" {
		searchLines = append(searchLines, fmt.Sprintf(
			"You can also invoke the `%s` command inline using `%s` and `%s` (e.g. `take a look at %sCEAQCAYJEIAAA%s %slulu%s %sscout%s`).",
			guild.InlineCommandAlias, ip, si, ip, si, ip, si, ip, si))
	}

	other := fmt.Sprintf("%s`%schamproll {card-identifier}`: Roll a pair of random champions to build a deck with! Or, optionally, specify one champ and randomly roll the other.\n\n"+
		"%s`%sdeckroll {size}`: Roll a random two-region deck.\n%s", bullet, p, bullet, p, blankLine)

	params := strings.Join([]string{
		fmt.Sprintf("%s`deck-code`: An exported deck code (e.g. `%s`)", bullet, exampleDeckCode),
		fmt.Sprintf("%s`card-identifier`: Either a card name (e.g. `magician`) or a card code (e.g. `02BW006`)", bullet),
		fmt.Sprintf("%s`keyword-name`: A keyword or vocab term name (e.g. `frost` or `allegiance`)", bullet),
		fmt.Sprintf("%s`item-identifier`: Either a `deck-code`, a `card-identifier`, or a `keyword-name`", bullet),
		fmt.Sprintf("%s allows partial names and minor misspellings in name parameters. Name strings aren't case-sensitive.", name),
	}, "\n\n")

	return models.EmbedView(&models.Embed{
		Description: desc.String(),
		Color:       embedColor,
		Fields: []models.EmbedField{
			{Name: titleBullet + " General Commands", Value: general},
			{Name: titleBullet + " Search Commands", Value: strings.Join(searchLines, "\n\n") + "\n" + blankLine},
			{Name: titleBullet + " Other Commands", Value: other},
			{Name: titleBullet + " Command Parameters", Value: params},
		},
	})
}

func InviteView(bot config.BotSettings) models.MessageView {
	name := botName(bot)
	var desc string
	switch {
	case bot.InviteLink != "":
		desc = fmt.Sprintf("Invite %s to your server with this link:\n%s.\n\nTry the `config` command on your server for server-specific configuration options.", name, bot.InviteLink)
	case bot.MaintainerName != "":
		desc = fmt.Sprintf("The invite link for %s isn't known. Try contacting the maintainer `%s` for info.", name, bot.MaintainerName)
	default:
		desc = fmt.Sprintf("The invite link for %s isn't known.", name)
	}
	return models.EmbedView(&models.Embed{Description: desc, Color: embedColor})
}

func ConfigView(guild models.GuildSettings) models.MessageView {
	p := guild.CommandPrefix
	desc := strings.Join([]string{
		"Additional, server-specific commands for configuring the bot. Anyone with `Administrator` or `Manage Server` perms can invoke these.",
		fmt.Sprintf("%s`%sset prefix [prefix]`: Set the command prefix the bot listens for on this server. `>` by default.", bullet, p),
		fmt.Sprintf("%s`%sset locale [locale]`: Set the locale (language-country) the bot uses on this server for printing cards etc. `en-US` by default.", bullet, p),
		fmt.Sprintf("%s`%slocales`: List all available locale strings.", bullet, p),
	}, "\n\n")
	return models.EmbedView(&models.Embed{Description: desc, Color: embedColor})
}

// LocaleList is one bulleted line per recognized locale.
func LocaleList() string {
	var sb strings.Builder
	for _, loc := range models.RecognizedLocales() {
		fmt.Fprintf(&sb, "%s`%s`\n", bullet, loc.Display())
	}
	return sb.String()
}

func LocalesView() models.MessageView {
	return models.EmbedView(&models.Embed{Title: "Available Locales", Description: LocaleList(), Color: embedColor})
}

// PrefixChangedView confirms a prefix change. previous is empty when the
// guild was on the default prefix.
func PrefixChangedView(previous, prefix string) models.MessageView {
	if previous == "" {
		return models.EmbedView(&models.Embed{Description: fmt.Sprintf("Set command prefix to `%s`", prefix)})
	}
	return models.EmbedView(&models.Embed{Description: fmt.Sprintf("Changed command prefix from `%s` to `%s`", previous, prefix)})
}

func LocaleChangedView(previous, locale models.Locale) models.MessageView {
	if previous == "" {
		return models.EmbedView(&models.Embed{Description: fmt.Sprintf("Set locale to `%s`", locale.Display())})
	}
	return models.EmbedView(&models.Embed{Description: fmt.Sprintf("Changed locale from `%s` to `%s`", previous.Display(), locale.Display())})
}

func PrefixUnchangedText(prefix string) string {
	return fmt.Sprintf("Command prefix is already `%s`", prefix)
}

func LocaleUnchangedText(locale models.Locale) string {
	return fmt.Sprintf("Locale is already `%s`", locale.Display())
}

// UnknownLocaleText lists the recognized locales after rejecting raw.
func UnknownLocaleText(raw string) string {
	return fmt.Sprintf("`%s` isn't a valid locale name. These are the recognized locales:\n\n%s", raw, LocaleList())
}

func ChampionNotFoundText(term string) string {
	return fmt.Sprintf("Couldn't find a champ from `%s`.", term)
}

const CatalogUnavailableText = "Couldn't retrieve data."
