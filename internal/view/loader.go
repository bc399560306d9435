package view

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/justestif/soundwave/internal/cards"
	"github.com/justestif/soundwave/internal/lastfm"
)

// Variant selects what the third chart section shows.
type Variant string

// Chart variants.
const (
	VariantTags   Variant = "tags"
	VariantAlbums Variant = "albums"
)

// ErrInvalidVariant is returned by ParseVariant for unknown variants.
var ErrInvalidVariant = errors.New("invalid chart variant")

// ParseVariant converts a string to a Variant.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case VariantTags, VariantAlbums:
		return v, nil
	case "":
		return VariantTags, nil
	default:
		return "", ErrInvalidVariant
	}
}

// Default limits.
const (
	DefaultChartLimit  = lastfm.DefaultLimit
	DefaultSearchLimit = 6
	DefaultSeedTag     = "rock"
)

// Catalog is the chart and search surface of the Last.fm client.
type Catalog interface {
	TopArtists(ctx context.Context, limit int) *lastfm.ArtistsResponse
	TopTags(ctx context.Context, limit int) *lastfm.TagsResponse
	TopTracks(ctx context.Context, limit int) *lastfm.TracksResponse
	TopAlbumsForTag(ctx context.Context, tag string, limit int) *lastfm.AlbumsResponse
	SearchArtists(ctx context.Context, query string, limit int) *lastfm.ArtistSearchResponse
	SearchAlbums(ctx context.Context, query string, limit int) *lastfm.AlbumSearchResponse
	SearchTracks(ctx context.Context, query string, limit int) *lastfm.TrackSearchResponse
}

// LoaderConfig configures a Loader.
type LoaderConfig struct {
	Variant     Variant
	SeedTag     string
	ChartLimit  int
	SearchLimit int
}

// Loader fills the sections of a board from the catalog.
type Loader struct {
	catalog Catalog
	cfg     LoaderConfig
	logger  zerolog.Logger
}

// NewLoader creates a Loader. Zero config fields take their defaults.
func NewLoader(catalog Catalog, cfg LoaderConfig, logger zerolog.Logger) *Loader {
	if cfg.Variant == "" {
		cfg.Variant = VariantTags
	}
	if cfg.SeedTag == "" {
		cfg.SeedTag = DefaultSeedTag
	}
	if cfg.ChartLimit <= 0 {
		cfg.ChartLimit = DefaultChartLimit
	}
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = DefaultSearchLimit
	}
	return &Loader{catalog: catalog, cfg: cfg, logger: logger}
}

// fetch loads the cards of one section. ok is false when the call failed
// or the payload had no list for the section.
type fetch struct {
	section string
	heading string
	load    func(ctx context.Context) (items []cards.Card, ok bool)
}

// Result reports which sections a load cycle populated.
type Result struct {
	Populated []string
	Failed    []string
}

// LoadCharts fetches the three charts concurrently and renders each one
// that succeeds into its section.
func (l *Loader) LoadCharts(ctx context.Context, board *Board) Result {
	limit := l.cfg.ChartLimit

	third := fetch{
		section: SectionTrending,
		heading: "Gêneros em alta",
		load: func(ctx context.Context) ([]cards.Card, bool) {
			resp := l.catalog.TopTags(ctx, limit)
			if resp == nil || resp.Tags == nil {
				return nil, false
			}
			return cards.ProjectAll(lastfm.Entries(resp.Tags.Tag)), true
		},
	}
	if l.cfg.Variant == VariantAlbums {
		third = fetch{
			section: SectionTrending,
			heading: "Álbuns mais escutados",
			load: func(ctx context.Context) ([]cards.Card, bool) {
				resp := l.catalog.TopAlbumsForTag(ctx, l.cfg.SeedTag, limit)
				if resp == nil || resp.Albums == nil {
					return nil, false
				}
				return cards.ProjectAll(lastfm.Entries(resp.Albums.Album)), true
			},
		}
	}

	return l.run(ctx, board, []fetch{
		{
			section: SectionArtists,
			heading: "Artistas mais escutados",
			load: func(ctx context.Context) ([]cards.Card, bool) {
				resp := l.catalog.TopArtists(ctx, limit)
				if resp == nil || resp.Artists == nil {
					return nil, false
				}
				return cards.ProjectAll(lastfm.Entries(resp.Artists.Artist)), true
			},
		},
		{
			section: SectionMiddle,
			heading: "Músicas mais escutadas",
			load: func(ctx context.Context) ([]cards.Card, bool) {
				resp := l.catalog.TopTracks(ctx, limit)
				if resp == nil || resp.Tracks == nil {
					return nil, false
				}
				return cards.ProjectAll(lastfm.Entries(resp.Tracks.Track)), true
			},
		},
		third,
	})
}

// LoadSearch runs the three searches for query concurrently and renders
// each one that succeeds. A blank query does nothing.
func (l *Loader) LoadSearch(ctx context.Context, board *Board, query string) Result {
	query = strings.TrimSpace(query)
	if query == "" {
		return Result{}
	}
	limit := l.cfg.SearchLimit

	return l.run(ctx, board, []fetch{
		{
			section: SectionArtists,
			heading: "Artistas encontrados",
			load: func(ctx context.Context) ([]cards.Card, bool) {
				matches := l.catalog.SearchArtists(ctx, query, limit).Matches()
				if matches == nil {
					return nil, false
				}
				return cards.ProjectAll(lastfm.Entries(matches.Artist)), true
			},
		},
		{
			section: SectionMiddle,
			heading: "Álbuns encontrados",
			load: func(ctx context.Context) ([]cards.Card, bool) {
				matches := l.catalog.SearchAlbums(ctx, query, limit).Matches()
				if matches == nil {
					return nil, false
				}
				return cards.ProjectAll(lastfm.Entries(matches.Album)), true
			},
		},
		{
			section: SectionTrending,
			heading: "Músicas encontradas",
			load: func(ctx context.Context) ([]cards.Card, bool) {
				matches := l.catalog.SearchTracks(ctx, query, limit).Matches()
				if matches == nil {
					return nil, false
				}
				return cards.ProjectAll(lastfm.Entries(matches.Track)), true
			},
		},
	})
}

// run executes the fetches concurrently, waits for all of them, then
// renders each successful one. Sections whose fetch failed keep their
// previous content.
func (l *Loader) run(ctx context.Context, board *Board, fetches []fetch) Result {
	ids := make([]string, len(fetches))
	for i, f := range fetches {
		ids[i] = f.section
	}
	board.MarkLoading(ids...)
	defer board.Settle(ids...)

	type outcome struct {
		items []cards.Card
		ok    bool
	}
	outcomes := make([]outcome, len(fetches))

	var wg sync.WaitGroup
	for i, f := range fetches {
		wg.Add(1)
		go func() {
			defer wg.Done()
			items, ok := f.load(ctx)
			outcomes[i] = outcome{items: items, ok: ok}
		}()
	}
	wg.Wait()

	var result Result
	for i, f := range fetches {
		if !outcomes[i].ok {
			l.logger.Warn().Str("section", f.section).Msg("Section fetch returned no data")
			result.Failed = append(result.Failed, f.section)
			continue
		}
		if err := board.RenderTitled(f.section, f.heading, outcomes[i].items); err != nil {
			l.logger.Error().Err(err).Str("section", f.section).Msg("Rendering section")
			result.Failed = append(result.Failed, f.section)
			continue
		}
		result.Populated = append(result.Populated, f.section)
	}
	return result
}
