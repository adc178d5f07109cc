package mysql

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"net"
	"time"

	"pet-cadastro/internal/platform/config"
	"pet-cadastro/internal/platform/migrate"

	mysqldrv "github.com/go-sql-driver/mysql"
)

const pingTimeout = 3 * time.Second

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DSN arma el DSN de go-sql-driver. ParseTime para que DATE vuelva como time.Time.
func DSN(cfg config.DB) string {
	c := mysqldrv.NewConfig()
	c.User = cfg.User
	c.Passwd = cfg.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(cfg.Host, cfg.Port)
	c.DBName = cfg.Database
	c.ParseTime = true
	return c.FormatDSN()
}

// Open abre el pool database/sql con MaxConns conexiones. Error => arranque fatal.
func Open(ctx context.Context, cfg config.DB) (*sql.DB, error) {
	db, err := sql.Open("mysql", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("mysql: open: %w", err)
	}
	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.MaxConns)
		db.SetMaxIdleConns(cfg.MaxConns)
	}
	db.SetConnMaxLifetime(30 * time.Minute)

	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("mysql: ping: %w", err)
	}
	return db, nil
}

// ApplyMigrations crea donos/pets si no existen.
func ApplyMigrations(ctx context.Context, cfg config.DB) error {
	db, err := Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	return migrate.Up(ctx, db, "mysql", migrationsFS, "migrations")
}
