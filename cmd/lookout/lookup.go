package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codyseavey/lookout/internal/views"
)

func lookupCmd(use, short, view string) *cobra.Command {
	var flags localeFlags
	var asJSON bool
	cmd := &cobra.Command{
		Use:   use + " <query>",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, view, strings.Join(args, " "), &flags, asJSON)
		},
	}
	flags.register(cmd, view != views.ViewDeck)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the matches and view as JSON")
	return cmd
}

func runLookup(cmd *cobra.Command, view, term string, flags *localeFlags, asJSON bool) error {
	ctx := context.Background()

	e, err := loadEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	p, err := flags.searchParameters(e.settings, term)
	if err != nil {
		return err
	}
	out, err := e.lookup.Search(ctx, view, p)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	fmt.Fprintln(cmd.OutOrStdout(), views.RenderText(out.View, flags.width))
	return nil
}
