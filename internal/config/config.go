// Package config loads SoundWave configuration from a YAML file and
// SOUNDWAVE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/justestif/soundwave/internal/lastfm"
	"github.com/justestif/soundwave/internal/view"
)

const (
	// EnvPrefix is the prefix of environment variable overrides.
	EnvPrefix = "SOUNDWAVE"

	appName         = "soundwave"
	historyFileName = "history.db"
)

// Config holds application configuration.
type Config struct {
	// Address the HTTP server listens on.
	Addr string

	LogLevel string
	LogFile  string

	// Optional PostgreSQL URL for search history. It takes precedence over
	// the local history.
	DatabaseURL string

	History HistoryConfig
	LastFM  LastFMConfig
	Charts  ChartsConfig
}

// HistoryConfig controls the local SQLite search history.
type HistoryConfig struct {
	Local bool
	// Empty means history.db in the XDG data directory.
	Path string
}

// LastFMConfig holds Last.fm API settings.
type LastFMConfig struct {
	APIKey  string
	BaseURL string
	Lang    string
	Timeout time.Duration
}

// ChartsConfig controls what the discovery sections show.
type ChartsConfig struct {
	Limit       int
	SearchLimit int
	Variant     string
	SeedTag     string
}

// Client returns the Last.fm client configuration.
func (c *Config) Client() lastfm.Config {
	return lastfm.Config{
		APIKey:  c.LastFM.APIKey,
		BaseURL: c.LastFM.BaseURL,
		Lang:    c.LastFM.Lang,
	}
}

// Loader returns the section loader configuration.
func (c *Config) Loader() (view.LoaderConfig, error) {
	variant, err := view.ParseVariant(c.Charts.Variant)
	if err != nil {
		return view.LoaderConfig{}, fmt.Errorf("charts.variant %q: %w", c.Charts.Variant, err)
	}
	return view.LoaderConfig{
		Variant:     variant,
		SeedTag:     c.Charts.SeedTag,
		ChartLimit:  c.Charts.Limit,
		SearchLimit: c.Charts.SearchLimit,
	}, nil
}

// HistoryFile returns the local history file, creating its directory when
// the default location is used.
func (c *Config) HistoryFile() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	return xdg.DataFile(filepath.Join(appName, historyFileName))
}

// Validate reports the first setting that prevents the server from starting.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if err := c.Client().Validate(); err != nil {
		return fmt.Errorf("lastfm.api_key: %w", err)
	}
	if _, err := c.Loader(); err != nil {
		return err
	}
	return nil
}

// Load reads configuration. When path is empty, config.yaml is looked up in
// the user config directory and the working directory, and a missing file is
// not an error. Environment variables override file values, with dots in
// keys replaced by underscores (SOUNDWAVE_LASTFM_API_KEY).
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(Dir())
		v.AddConfigPath(".")
	}

	v.SetDefault("addr", "127.0.0.1:8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("database_url", "")
	v.SetDefault("history.local", false)
	v.SetDefault("history.path", "")
	v.SetDefault("lastfm.api_key", "")
	v.SetDefault("lastfm.base_url", lastfm.DefaultBaseURL)
	v.SetDefault("lastfm.lang", lastfm.DefaultLang)
	v.SetDefault("lastfm.timeout", 10*time.Second)
	v.SetDefault("charts.limit", view.DefaultChartLimit)
	v.SetDefault("charts.search_limit", view.DefaultSearchLimit)
	v.SetDefault("charts.variant", string(view.VariantTags))
	v.SetDefault("charts.seed_tag", view.DefaultSeedTag)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Config{
		Addr:        v.GetString("addr"),
		LogLevel:    v.GetString("log_level"),
		LogFile:     v.GetString("log_file"),
		DatabaseURL: v.GetString("database_url"),
		History: HistoryConfig{
			Local: v.GetBool("history.local"),
			Path:  v.GetString("history.path"),
		},
		LastFM: LastFMConfig{
			APIKey:  v.GetString("lastfm.api_key"),
			BaseURL: v.GetString("lastfm.base_url"),
			Lang:    v.GetString("lastfm.lang"),
			Timeout: v.GetDuration("lastfm.timeout"),
		},
		Charts: ChartsConfig{
			Limit:       v.GetInt("charts.limit"),
			SearchLimit: v.GetInt("charts.search_limit"),
			Variant:     v.GetString("charts.variant"),
			SeedTag:     v.GetString("charts.seed_tag"),
		},
	}, nil
}

// Dir returns the SoundWave directory under the XDG config home.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, appName)
}
