package db

import (
	"time"

	"github.com/google/uuid"
)

// SearchEntry is a search term and how often it was used.
type SearchEntry struct {
	ID              uuid.UUID
	Term            string
	Count           int
	FirstSearchedAt time.Time
	LastSearchedAt  time.Time
}
