package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/estimator/internal/service"
)

func newSeedCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the default module catalog and rates",
		Long: "Insert catalog modules whose code is not stored yet. Rates are only " +
			"seeded into an empty rate table. Running seed twice changes nothing.",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := runSeed(cmd.Context(), app, file)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d modules (%d already present), %d rates\n",
				res.ModulesCreated, res.ModulesSkipped, res.RatesCreated)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", app.CatalogFile, "YAML catalog to seed instead of the built-in one")
	return cmd
}

// runSeed seeds from file, or from the built-in catalog when file is empty.
func runSeed(ctx context.Context, app *App, file string) (*service.SeedResult, error) {
	var data *service.SeedData
	if file != "" {
		var err error
		if data, err = service.LoadSeedData(file); err != nil {
			return nil, err
		}
	}
	return app.Seed.Seed(ctx, data)
}
