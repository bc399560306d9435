package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justestif/soundwave/internal/web"
	webfs "github.com/justestif/soundwave/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	Long: `Run the SoundWave web server.

The server renders the discovery page, the chart and search fragments, the
card summaries and the login page. When database_url is configured, search
terms are kept in PostgreSQL and offered as quick searches. With
history.local enabled they are kept in a local SQLite file instead.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: 127.0.0.1:8080)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.Addr = serveAddr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	loaderCfg, err := cfg.Loader()
	if err != nil {
		return err
	}

	logger, closer := setupLogger(cfg.LogFile, cfg.LogLevel)
	defer closer.Close()

	logger.Info().
		Str("version", version).
		Str("variant", string(loaderCfg.Variant)).
		Msg("Starting soundwave")

	history, closeHistory, err := openHistory(context.Background(), cfg, logger)
	if err != nil {
		return err
	}
	defer closeHistory()

	templates, err := webfs.Templates()
	if err != nil {
		return fmt.Errorf("creating templates filesystem: %w", err)
	}
	static, err := webfs.Static()
	if err != nil {
		return fmt.Errorf("creating static filesystem: %w", err)
	}

	server, err := web.NewServer(web.ServerConfig{
		Addr:        cfg.Addr,
		TemplatesFS: templates,
		StaticFS:    static,
		Catalog:     newClient(cfg, logger),
		Loader:      loaderCfg,
		History:     history,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return server.Run()
}
