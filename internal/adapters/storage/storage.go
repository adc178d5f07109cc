// Package storage elige el adapter según DB_DRIVER.
package storage

import (
	"context"
	"fmt"

	mem "pet-cadastro/internal/adapters/storage/memory"
	my "pet-cadastro/internal/adapters/storage/mysql"
	pg "pet-cadastro/internal/adapters/storage/postgres"
	"pet-cadastro/internal/domain/registration"
	"pet-cadastro/internal/platform/config"
)

// Open abre el pool del driver configurado. La func devuelta libera el pool al apagar.
func Open(ctx context.Context, cfg config.DB) (registration.Repository, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := pg.NewPool(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return pg.NewRegistrationRepo(pool), pool.Close, nil

	case config.DriverMySQL:
		db, err := my.Open(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return my.NewRegistrationRepo(db), func() { _ = db.Close() }, nil

	case config.DriverMemory:
		return mem.NewRegistrationRepo(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.Driver)
}

// Migrate aplica las migraciones embebidas del driver. memory no tiene schema.
func Migrate(ctx context.Context, cfg config.DB) error {
	switch cfg.Driver {
	case config.DriverPostgres:
		return pg.ApplyMigrations(ctx, cfg)
	case config.DriverMySQL:
		return my.ApplyMigrations(ctx, cfg)
	case config.DriverMemory:
		return nil
	}
	return fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.Driver)
}
