package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codyseavey/lookout/internal/services"
	"github.com/codyseavey/lookout/internal/views"
)

func champRollCmd() *cobra.Command {
	var flags localeFlags
	cmd := &cobra.Command{
		Use:   "champroll [champion]",
		Short: "Pick a random pair of champions to build a deck around",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChampRoll(cmd, strings.Join(args, " "), &flags)
		},
	}
	flags.register(cmd, false)
	return cmd
}

func runChampRoll(cmd *cobra.Command, term string, flags *localeFlags) error {
	ctx := context.Background()

	e, err := loadEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	locale, version, err := flags.resolve(e.settings)
	if err != nil {
		return err
	}
	roll, err := e.stack.Rolls.RollChampions(ctx, locale, version, term)
	if errors.Is(err, services.ErrChampionNotFound) {
		return errors.New(views.ChampionNotFoundText(term))
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), views.RenderText(views.ChampionRollView(e.emotes(), roll), flags.width))
	return nil
}

func deckRollCmd() *cobra.Command {
	var flags localeFlags
	var count int
	cmd := &cobra.Command{
		Use:   "deckroll",
		Short: "Build a random two-region deck",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeckRoll(cmd, count, &flags)
		},
	}
	flags.register(cmd, false)
	cmd.Flags().IntVar(&count, "count", services.DefaultDeckRollSize, fmt.Sprintf("Number of cards, at most %d", services.MaxDeckRollSize))
	return cmd
}

func runDeckRoll(cmd *cobra.Command, count int, flags *localeFlags) error {
	ctx := context.Background()

	e, err := loadEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	locale, version, err := flags.resolve(e.settings)
	if err != nil {
		return err
	}
	roll, err := e.stack.Rolls.RollDeck(ctx, locale, version, count)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), views.RenderText(views.DeckRollView(e.emotes(), roll), flags.width))
	return nil
}
