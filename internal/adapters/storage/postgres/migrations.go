package postgres

import (
	"context"
	"embed"

	"pet-cadastro/internal/platform/config"
	"pet-cadastro/internal/platform/migrate"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ApplyMigrations crea donos/pets si no existen.
func ApplyMigrations(ctx context.Context, cfg config.DB) error {
	db, err := Open(DSN(cfg))
	if err != nil {
		return err
	}
	defer db.Close()

	return migrate.Up(ctx, db, "postgres", migrationsFS, "migrations")
}
