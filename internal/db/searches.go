package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrEmptyTerm is returned when recording a blank search term.
var ErrEmptyTerm = errors.New("empty search term")

// SearchRepository handles search history database operations.
type SearchRepository struct {
	pool *pgxpool.Pool
}

// Record stores a search term, bumping its count and timestamp when the
// term was searched before.
func (r *SearchRepository) Record(ctx context.Context, term string) error {
	term = NormalizeTerm(term)
	if term == "" {
		return ErrEmptyTerm
	}

	query := `
		INSERT INTO search_history (id, term, search_count, first_searched_at, last_searched_at)
		VALUES ($1, $2, 1, $3, $3)
		ON CONFLICT (term) DO UPDATE SET
			search_count = search_history.search_count + 1,
			last_searched_at = EXCLUDED.last_searched_at
	`
	_, err := r.pool.Exec(ctx, query, uuid.New(), term, time.Now())
	if err != nil {
		return fmt.Errorf("recording search: %w", err)
	}
	return nil
}

// Recent returns the most recently searched terms, newest first.
func (r *SearchRepository) Recent(ctx context.Context, limit int) ([]SearchEntry, error) {
	query := `
		SELECT id, term, search_count, first_searched_at, last_searched_at
		FROM search_history
		ORDER BY last_searched_at DESC
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying searches: %w", err)
	}
	defer rows.Close()

	var entries []SearchEntry
	for rows.Next() {
		var e SearchEntry
		if err := rows.Scan(
			&e.ID,
			&e.Term,
			&e.Count,
			&e.FirstSearchedAt,
			&e.LastSearchedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning search: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// RecentTerms returns the terms of Recent.
func (r *SearchRepository) RecentTerms(ctx context.Context, limit int) ([]string, error) {
	entries, err := r.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return terms(entries), nil
}

func terms(entries []SearchEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Term
	}
	return out
}

// NormalizeTerm trims a term, collapses inner whitespace and lowercases it
// so that repeated searches share one row.
func NormalizeTerm(term string) string {
	return strings.ToLower(strings.Join(strings.Fields(term), " "))
}
