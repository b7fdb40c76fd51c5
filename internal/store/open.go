package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Drivers accepted by Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// Config selects and configures the backend.
type Config struct {
	Driver        string
	SQLitePath    string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Key           string
}

// Open connects the configured backend and wraps it in a PlanStore.
func Open(ctx context.Context, cfg Config, logger zerolog.Logger) (*PlanStore, error) {
	var (
		backend Backend
		err     error
	)

	switch cfg.Driver {
	case DriverSQLite, "":
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("sqlite store requires a database path")
		}
		backend, err = OpenSQLite(ctx, cfg.SQLitePath)
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("postgres store requires DATABASE_URL")
		}
		backend, err = ConnectPostgres(ctx, cfg.DatabaseURL)
	case DriverRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("redis store requires REDIS_ADDR")
		}
		backend, err = NewRedis(RedisConfig{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	case DriverMemory:
		backend = NewMemory()
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	driver := cfg.Driver
	if driver == "" {
		driver = DriverSQLite
	}
	logger.Debug().Str("driver", driver).Msg("opened plan store")
	return New(backend, cfg.Key, logger.With().Str("store", driver).Logger()), nil
}
