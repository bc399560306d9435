package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/justestif/soundwave/internal/config"
	"github.com/justestif/soundwave/internal/lastfm"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"

	// defaultAPIKey is used when no Last.fm key is configured.
	defaultAPIKey = ""
)

var (
	configPath string
	logLevel   string
	logFile    string
)

var rootCmd = &cobra.Command{
	Use:   "soundwave",
	Short: "Music discovery front end for Last.fm",
	Long: `soundwave serves a music discovery page fed by the Last.fm API.

The home page shows the current top artists, tracks and tags. A search
refills the same sections with matching artists, albums and tracks, and
every card opens a short summary of what it shows.

Configuration is read from ~/.config/soundwave/config.yaml or ./config.yaml
and can be overridden with SOUNDWAVE_* environment variables, for example
SOUNDWAVE_LASTFM_API_KEY.`,
	Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.config/soundwave/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path (default: stderr)")
}

// loadConfig reads the configuration and applies the global flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if cfg.LastFM.APIKey == "" {
		cfg.LastFM.APIKey = defaultAPIKey
	}
	return cfg, nil
}

// newClient builds the Last.fm client described by cfg.
func newClient(cfg *config.Config, logger zerolog.Logger) *lastfm.Client {
	return lastfm.NewClient(cfg.Client(),
		lastfm.WithHTTPClient(&http.Client{Timeout: cfg.LastFM.Timeout}),
		lastfm.WithLogger(logger.With().Str("component", "lastfm").Logger()),
	)
}
