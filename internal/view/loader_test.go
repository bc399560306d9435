package view

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justestif/soundwave/internal/lastfm"
)

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in      string
		want    Variant
		wantErr error
	}{
		{in: "tags", want: VariantTags},
		{in: " Albums ", want: VariantAlbums},
		{in: "", want: VariantTags},
		{in: "playlists", wantErr: ErrInvalidVariant},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVariant(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadCharts_PopulatesAllSections(t *testing.T) {
	catalog := &fakeCatalog{
		topArtists: mustDecode[lastfm.ArtistsResponse](`{"artists":{"artist":[{"name":"A1"},{"name":"A2"}]}}`),
		topTracks:  mustDecode[lastfm.TracksResponse](`{"tracks":{"track":[{"name":"T1","artist":{"name":"X"}}]}}`),
		topTags:    mustDecode[lastfm.TagsResponse](`{"tags":{"tag":[{"name":"rock","taggings":"1000"}]}}`),
	}
	loader := NewLoader(catalog, LoaderConfig{}, zerolog.Nop())
	board := NewBoard(DefaultLayout())

	result := loader.LoadCharts(context.Background(), board)

	assert.ElementsMatch(t, []string{SectionArtists, SectionMiddle, SectionTrending}, result.Populated)
	assert.Empty(t, result.Failed)

	artists, _ := board.Section(SectionArtists)
	require.Len(t, artists.Nodes, 2)
	assert.Equal(t, "A1", artists.Nodes[0].Card.Title)

	tracks, _ := board.Section(SectionMiddle)
	require.Len(t, tracks.Nodes, 1)
	assert.Equal(t, "X", tracks.Nodes[0].Card.Subtitle)

	tags, _ := board.Section(SectionTrending)
	require.Len(t, tags.Nodes, 1)
	assert.Equal(t, "1.000", tags.Nodes[0].Card.Subtitle)
	assert.Equal(t, "Gêneros em alta", tags.Heading)
}

func TestLoadCharts_OneFailureLeavesPlaceholder(t *testing.T) {
	catalog := &fakeCatalog{
		topArtists: mustDecode[lastfm.ArtistsResponse](`{"artists":{"artist":[{"name":"A1"}]}}`),
		topTracks:  nil,
	}
	loader := NewLoader(catalog, LoaderConfig{}, zerolog.Nop())
	board := NewBoard(DefaultLayout())

	result := loader.LoadCharts(context.Background(), board)

	assert.Equal(t, []string{SectionArtists}, result.Populated)
	assert.ElementsMatch(t, []string{SectionMiddle, SectionTrending}, result.Failed)

	artists, _ := board.Section(SectionArtists)
	assert.Equal(t, StatePopulated, artists.State)
	assert.Len(t, artists.Nodes, 1)

	tracks, _ := board.Section(SectionMiddle)
	assert.Equal(t, StateEmpty, tracks.State)
	assert.Empty(t, tracks.Nodes)
	assert.Equal(t, LoadingPlaceholder, tracks.Placeholder)
}

func TestLoadCharts_MissingContainerCountsAsFailure(t *testing.T) {
	catalog := &fakeCatalog{
		topArtists: mustDecode[lastfm.ArtistsResponse](`{"error_page":true}`),
	}
	loader := NewLoader(catalog, LoaderConfig{}, zerolog.Nop())
	board := NewBoard(DefaultLayout())

	result := loader.LoadCharts(context.Background(), board)

	assert.Empty(t, result.Populated)
	s, _ := board.Section(SectionArtists)
	assert.Equal(t, StateEmpty, s.State)
}

func TestLoadCharts_AlbumsVariant(t *testing.T) {
	catalog := &fakeCatalog{
		tagAlbums: mustDecode[lastfm.AlbumsResponse](`{"albums":{"album":[{"name":"OK Computer","artist":{"name":"Radiohead"}}]}}`),
	}
	loader := NewLoader(catalog, LoaderConfig{Variant: VariantAlbums, SeedTag: "indie"}, zerolog.Nop())
	board := NewBoard(DefaultLayout())

	loader.LoadCharts(context.Background(), board)

	assert.Contains(t, catalog.calls, "TopAlbumsForTag:indie")
	assert.NotContains(t, catalog.calls, "TopTags")

	s, _ := board.Section(SectionTrending)
	require.Len(t, s.Nodes, 1)
	assert.Equal(t, "Radiohead", s.Nodes[0].Card.Subtitle)
	assert.Equal(t, "Álbuns mais escutados", s.Heading)
}

func TestLoadSearch(t *testing.T) {
	catalog := &fakeCatalog{
		searchArtists: mustDecode[lastfm.ArtistSearchResponse](`{"results":{"artistmatches":{"artist":[{"name":"Sigur Rós","listeners":"10"}]}}}`),
		searchAlbums:  mustDecode[lastfm.AlbumSearchResponse](`{"results":{"albummatches":{"album":[{"name":"Takk...","artist":"Sigur Rós"}]}}}`),
		searchTracks:  mustDecode[lastfm.TrackSearchResponse](`{"results":{"trackmatches":{"track":[{"name":"Hoppípolla","artist":"Sigur Rós"},{"name":"Glósóli","artist":"Sigur Rós"}]}}}`),
	}
	loader := NewLoader(catalog, LoaderConfig{}, zerolog.Nop())
	board := NewBoard(DefaultLayout())

	result := loader.LoadSearch(context.Background(), board, "  sigur  ")

	assert.Len(t, result.Populated, 3)
	assert.Contains(t, catalog.calls, "SearchArtists:sigur")

	albums, _ := board.Section(SectionMiddle)
	require.Len(t, albums.Nodes, 1)
	assert.Equal(t, "Sigur Rós", albums.Nodes[0].Card.Subtitle)

	tracks, _ := board.Section(SectionTrending)
	assert.Len(t, tracks.Nodes, 2)
	assert.Equal(t, "Músicas encontradas", tracks.Heading)
}

func TestLoadSearch_BlankQueryIsIgnored(t *testing.T) {
	catalog := &fakeCatalog{}
	loader := NewLoader(catalog, LoaderConfig{}, zerolog.Nop())
	board := NewBoard(DefaultLayout())

	result := loader.LoadSearch(context.Background(), board, "   ")

	assert.Empty(t, result.Populated)
	assert.Zero(t, catalog.count.Load())
}

func TestLoadSearch_FailureKeepsPreviousCards(t *testing.T) {
	catalog := &fakeCatalog{
		topArtists: mustDecode[lastfm.ArtistsResponse](`{"artists":{"artist":[{"name":"A1"},{"name":"A2"}]}}`),
	}
	loader := NewLoader(catalog, LoaderConfig{}, zerolog.Nop())
	board := NewBoard(DefaultLayout())
	loader.LoadCharts(context.Background(), board)

	loader.LoadSearch(context.Background(), board, "nothing")

	s, _ := board.Section(SectionArtists)
	assert.Equal(t, StatePopulated, s.State)
	assert.Len(t, s.Nodes, 2)
}
