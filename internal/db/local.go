package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const localSchema = `
	CREATE TABLE IF NOT EXISTS search_history (
		id TEXT PRIMARY KEY,
		term TEXT NOT NULL UNIQUE,
		search_count INTEGER NOT NULL DEFAULT 1,
		first_searched_at INTEGER NOT NULL,
		last_searched_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_last_searched_at ON search_history(last_searched_at);
`

// LocalHistory keeps search history in a SQLite file. It is used when no
// PostgreSQL database is configured.
type LocalHistory struct {
	db  *sql.DB
	now func() time.Time
}

// OpenLocal opens or creates the SQLite history at path. ":memory:" gives a
// private in-memory history.
func OpenLocal(path string) (*LocalHistory, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}

	// A single connection keeps in-memory databases consistent.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma: %w", err)
		}
	}

	if _, err := db.Exec(localSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}

	return &LocalHistory{db: db, now: time.Now}, nil
}

// Close closes the database.
func (h *LocalHistory) Close() error {
	return h.db.Close()
}

// Record stores a search term, bumping its count and timestamp when the
// term was searched before.
func (h *LocalHistory) Record(ctx context.Context, term string) error {
	term = NormalizeTerm(term)
	if term == "" {
		return ErrEmptyTerm
	}

	query := `
		INSERT INTO search_history (id, term, search_count, first_searched_at, last_searched_at)
		VALUES (?, ?, 1, ?, ?)
		ON CONFLICT (term) DO UPDATE SET
			search_count = search_count + 1,
			last_searched_at = excluded.last_searched_at
	`
	ts := h.now().UnixNano()
	if _, err := h.db.ExecContext(ctx, query, uuid.NewString(), term, ts, ts); err != nil {
		return fmt.Errorf("recording search: %w", err)
	}
	return nil
}

// Recent returns the most recently searched terms, newest first.
func (h *LocalHistory) Recent(ctx context.Context, limit int) ([]SearchEntry, error) {
	query := `
		SELECT id, term, search_count, first_searched_at, last_searched_at
		FROM search_history
		ORDER BY last_searched_at DESC
		LIMIT ?
	`
	rows, err := h.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying searches: %w", err)
	}
	defer rows.Close()

	var entries []SearchEntry
	for rows.Next() {
		var (
			e           SearchEntry
			id          string
			first, last int64
		)
		if err := rows.Scan(&id, &e.Term, &e.Count, &first, &last); err != nil {
			return nil, fmt.Errorf("scanning search: %w", err)
		}
		if e.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parsing search id: %w", err)
		}
		e.FirstSearchedAt = time.Unix(0, first)
		e.LastSearchedAt = time.Unix(0, last)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// RecentTerms returns the terms of Recent.
func (h *LocalHistory) RecentTerms(ctx context.Context, limit int) ([]string, error) {
	entries, err := h.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return terms(entries), nil
}
