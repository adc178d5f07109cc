package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverMemory   = "memory"

	// El host de la base no se puede sobreescribir por env.
	DBHost = "localhost"

	DefaultHTTPPort   = "3000"
	DefaultMaxConns   = 10
	DefaultQueueLimit = 50
)

var (
	ErrUnknownDriver = errors.New("config: unknown DB_DRIVER")
	ErrMissingEnv    = errors.New("config: missing required env var")
)

type Config struct {
	HTTPPort string
	DB       DB
}

type DB struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Database string

	MaxConns int
	// QueueLimit: >0 cola acotada, 0 falla inmediato, <0 cola sin límite.
	QueueLimit int

	AutoMigrate bool
}

// Load lee .env (si existe) y luego el entorno. Las variables reales ganan sobre .env.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv arma la Config sin tocar .env (para tests).
func FromEnv() (Config, error) {
	cfg := Config{
		HTTPPort: envOr("PORT", DefaultHTTPPort),
		DB: DB{
			Driver:   strings.ToLower(envOr("DB_DRIVER", DriverPostgres)),
			Host:     DBHost,
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Database: os.Getenv("DB_DATABASE"),
			Port:     strings.TrimSpace(os.Getenv("DB_PORT")),
			MaxConns: DefaultMaxConns,
		},
	}

	switch cfg.DB.Driver {
	case DriverPostgres:
		if cfg.DB.Port == "" {
			cfg.DB.Port = "5432"
		}
	case DriverMySQL:
		if cfg.DB.Port == "" {
			cfg.DB.Port = "3306"
		}
	case DriverMemory:
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.DB.Driver)
	}

	if cfg.DB.Driver != DriverMemory {
		for _, kv := range [][2]string{{"DB_USER", cfg.DB.User}, {"DB_DATABASE", cfg.DB.Database}} {
			if strings.TrimSpace(kv[1]) == "" {
				return Config{}, fmt.Errorf("%w: %s", ErrMissingEnv, kv[0])
			}
		}
		if _, err := strconv.Atoi(cfg.DB.Port); err != nil {
			return Config{}, fmt.Errorf("config: DB_PORT must be numeric: %w", err)
		}
	}

	queue, err := envInt("DB_QUEUE_LIMIT", DefaultQueueLimit)
	if err != nil {
		return Config{}, err
	}
	cfg.DB.QueueLimit = queue

	cfg.DB.AutoMigrate, err = envBool("DB_AUTO_MIGRATE", false)
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer: %w", key, err)
	}
	return n, nil
}

func envBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s must be a boolean: %w", key, err)
	}
	return b, nil
}
