package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codyseavey/lookout/internal/models"
)

func localesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List the recognized locales",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, loc := range models.RecognizedLocales() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", loc, loc.Display())
			}
		},
	}
}
