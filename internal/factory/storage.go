// Package factory wires configuration to concrete store implementations.
package factory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/DivyanshuSingh0/HabitSphere/internal/config"
	"github.com/DivyanshuSingh0/HabitSphere/internal/store"
	"github.com/DivyanshuSingh0/HabitSphere/internal/store/postgres"
	"github.com/DivyanshuSingh0/HabitSphere/internal/store/sqlite"
)

// NewStore returns the store implementation selected by cfg.DBDriver.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.Store, error) {
	switch cfg.DBDriver {
	case "postgres":
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("postgres unavailable: %w", err)
		}
		log.Info().Msg("Using postgres store")
		return postgres.NewWithDB(db), nil
	case "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("sqlite unavailable: %w", err)
		}
		st, err := sqlite.New(db)
		if err != nil {
			return nil, fmt.Errorf("sqlite schema: %w", err)
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("Using sqlite store")
		return st, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", cfg.DBDriver)
	}
}
