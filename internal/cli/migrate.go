package cli

import (
	"fmt"

	"pet-cadastro/internal/adapters/storage"
	"pet-cadastro/internal/platform/config"

	"github.com/spf13/cobra"
)

var (
	loadConfig = config.Load
	runMigrate = storage.Migrate
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Crea las tablas donos y pets (goose, migraciones embebidas)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := runMigrate(cmd.Context(), cfg.DB); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrations applied (%s)\n", cfg.DB.Driver)
			return nil
		},
	}
}
