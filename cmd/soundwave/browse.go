package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/justestif/soundwave/internal/lastfm"
	"github.com/justestif/soundwave/internal/termview"
	"github.com/justestif/soundwave/internal/view"
)

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Print the current Last.fm charts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return browse(cmd, func(ctx context.Context, l *view.Loader, b *view.Board) view.Result {
			return l.LoadCharts(ctx, b)
		}, "")
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search artists, albums and tracks",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		return browse(cmd, func(ctx context.Context, l *view.Loader, b *view.Board) view.Result {
			return l.LoadSearch(ctx, b, query)
		}, query)
	},
}

var aboutCmd = &cobra.Command{
	Use:   "about <artist|track|tag|album> <title> [artist]",
	Short: "Print the Last.fm summary of an artist, track, tag or album",
	Long: `Print the Last.fm summary of an entity.

Tracks and albums need the artist name as the third argument.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runAbout,
}

func init() {
	rootCmd.AddCommand(chartsCmd, searchCmd, aboutCmd)
}

type loadFunc func(ctx context.Context, l *view.Loader, b *view.Board) view.Result

// browse loads a board once and prints it. A non-empty term is recorded in
// the search history when one is configured.
func browse(cmd *cobra.Command, load loadFunc, term string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
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

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	loader := view.NewLoader(newClient(cfg, logger), loaderCfg, logger)
	board := view.NewBoard(view.DefaultLayout())

	result := load(ctx, loader, board)
	if len(result.Populated) == 0 {
		return errors.New("nothing could be loaded from Last.fm")
	}

	if term != "" {
		history, closeHistory, err := openHistory(ctx, cfg, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("Opening search history")
		} else {
			defer closeHistory()
			if history != nil {
				if err := history.Record(ctx, term); err != nil {
					logger.Warn().Err(err).Str("query", term).Msg("Recording search")
				}
			}
		}
	}
	return termview.NewPrinter(cmd.OutOrStdout()).Print(board.Sections())
}

func runAbout(cmd *cobra.Command, args []string) error {
	kind, ok := lastfm.ParseKind(args[0])
	if !ok {
		return fmt.Errorf("unknown kind %q", args[0])
	}
	req := view.DetailRequest{Kind: kind, Title: args[1]}
	if len(args) == 3 {
		req.Subtitle = args[2]
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Client().Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, closer := setupLogger(cfg.LogFile, cfg.LogLevel)
	defer closer.Close()

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	binder := view.NewBinder(newClient(cfg, logger), logger)
	outcome := binder.Detail(ctx, req, nil)

	out := cmd.OutOrStdout()
	switch outcome.Kind {
	case view.OutcomeModal:
		fmt.Fprintf(out, "%s [%s]\n\n%s\n", outcome.Modal.Title, outcome.Modal.Label, outcome.Modal.Summary)
	case view.OutcomeNotice:
		fmt.Fprintln(out, outcome.Notice.Message)
	default:
		return errors.New("nothing to look up")
	}
	return nil
}
