// Package db stores SoundWave's search history in PostgreSQL or, for
// single-user setups, in a local SQLite file.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
	CREATE TABLE IF NOT EXISTS search_history (
		id UUID PRIMARY KEY,
		term TEXT NOT NULL UNIQUE,
		search_count INTEGER NOT NULL DEFAULT 1,
		first_searched_at TIMESTAMPTZ NOT NULL,
		last_searched_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS search_history_last_searched_at_idx
		ON search_history (last_searched_at DESC);
`

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// New creates a new database connection pool.
func New(ctx context.Context, databaseURL string) (*DB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// EnsureSchema creates the tables SoundWave needs if they are missing.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Close closes the database connection pool.
func (db *DB) Close() {
	db.pool.Close()
}

// Pool returns the underlying connection pool for advanced operations.
func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

// Searches returns a SearchRepository.
func (db *DB) Searches() *SearchRepository {
	return &SearchRepository{pool: db.pool}
}
