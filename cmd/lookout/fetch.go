package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codyseavey/lookout/internal/models"
)

func fetchCmd() *cobra.Command {
	var dataVersion string
	cmd := &cobra.Command{
		Use:   "fetch [locale...]",
		Short: "Download Data Dragon bundles into LOOKOUT_BUNDLE_DIR",
		Long: "Download the Data Dragon bundles of each locale into LOOKOUT_BUNDLE_DIR so lookups\n" +
			"can run offline. Without arguments the home locale is fetched.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, args, dataVersion)
		},
	}
	cmd.Flags().StringVar(&dataVersion, "data-version", "", "Data Dragon version such as 4.3.0 (latest by default)")
	return cmd
}

func runFetch(cmd *cobra.Command, args []string, dataVersion string) error {
	ctx := context.Background()

	e, err := loadEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	if e.cfg.BundleDir == "" {
		return errors.New("LOOKOUT_BUNDLE_DIR is not set")
	}

	version := e.settings.LatestVersion
	if dataVersion != "" {
		if version, err = models.ParseVersion(dataVersion); err != nil {
			return err
		}
	}
	locales := []models.Locale{e.settings.HomeLocale}
	if len(args) > 0 {
		locales = locales[:0]
		for _, raw := range args {
			loc, err := models.ParseLocale(raw)
			if err != nil {
				return err
			}
			locales = append(locales, loc)
		}
	}

	if err := e.stack.Prefetch(ctx, version, locales...); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Fetched %d locale(s) into %s\n", len(locales), e.cfg.BundleDir)
	return nil
}
