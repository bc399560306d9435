// Package lastfm provides a client for the Last.fm metadata API: charts,
// search and entity info lookups.
package lastfm

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned when no API key is configured.
var ErrMissingAPIKey = errors.New("missing Last.fm API key")

// Config holds Last.fm API configuration.
type Config struct {
	APIKey  string
	BaseURL string // defaults to DefaultBaseURL
	Lang    string // defaults to DefaultLang
}

// Validate reports whether the configuration can be used to build a client.
// Returns ErrMissingAPIKey if APIKey is empty.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// APIError is an error payload returned by the Last.fm API.
type APIError struct {
	Code    int
	Message string
}

// Error implements error.
func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Code, e.Message)
}
