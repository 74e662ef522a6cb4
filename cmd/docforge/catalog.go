package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/jonathan/docforge/internal/types"
)

func newCatalogCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the industries and themes in the content catalog",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			engine, err := a.engine()
			if err != nil {
				return err
			}
			cat := engine.Catalog()
			industries := cat.Industries(types.KindProposal)
			themes := cat.ThemeIDs()

			if asJSON {
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"industries":    industries,
					"themes":        themes,
					"default_theme": engine.DefaultThemeID(),
				})
			}

			a.printer().PrintCatalog(industries, themes, engine.DefaultThemeID())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the catalog as JSON")
	return cmd
}
