package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/codyseavey/lookout/internal/views"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lookout",
		Short: "Look up Legends of Runeterra cards, keywords and decks",
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.AddCommand(lookupCmd("search", "Search cards, keywords and deck codes at once", views.ViewAnything))
	root.AddCommand(lookupCmd("card", "Show a card", views.ViewCardboard))
	root.AddCommand(lookupCmd("flavor", "Show a card's art and flavor text", views.ViewFlavor))
	root.AddCommand(lookupCmd("related", "Show the cards related to a card", views.ViewRelated))
	root.AddCommand(lookupCmd("keyword", "Show a keyword or game term", views.ViewKeyword))
	root.AddCommand(lookupCmd("deck", "Decode a deck code", views.ViewDeck))
	root.AddCommand(champRollCmd())
	root.AddCommand(deckRollCmd())
	root.AddCommand(localesCmd())
	root.AddCommand(fetchCmd())
	root.AddCommand(mcpCmd())
	root.AddCommand(versionCmd())
	return root
}
