package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/justestif/soundwave/internal/config"
	"github.com/justestif/soundwave/internal/db"
	"github.com/justestif/soundwave/internal/web"
)

// openHistory opens the configured search history. PostgreSQL wins over the
// local SQLite file; with neither configured, history is nil.
func openHistory(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (web.SearchHistory, func(), error) {
	switch {
	case cfg.DatabaseURL != "":
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, nil, err
		}
		logger.Info().Msg("Search history stored in PostgreSQL")
		return database.Searches(), database.Close, nil

	case cfg.History.Local:
		path, err := cfg.HistoryFile()
		if err != nil {
			return nil, nil, fmt.Errorf("resolving history file: %w", err)
		}
		local, err := db.OpenLocal(path)
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Str("path", path).Msg("Search history stored locally")
		return local, func() { local.Close() }, nil

	default:
		return nil, func() {}, nil
	}
}
