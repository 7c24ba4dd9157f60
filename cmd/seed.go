package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/moviecatalog/internal/catalog"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-categories",
		Short: "Inserts the default categories into an empty store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			seeded, err := appInstance.Categories().SeedIfEmpty(cmd.Context(), catalog.DefaultCategories)
			if err != nil {
				return fmt.Errorf("seed categories: %w", err)
			}
			names, err := appInstance.Categories().ListNames(cmd.Context())
			if err != nil {
				return fmt.Errorf("list categories: %w", err)
			}
			appInstance.Logger().Info("categories checked", zap.Bool("seeded", seeded), zap.Int("count", len(names)))
			status := "already present"
			if seeded {
				status = "seeded"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "categories %s: %s\n", status, strings.Join(names, ", "))
			return err
		},
	}
}
