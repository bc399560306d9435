package view

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/justestif/soundwave/internal/lastfm"
)

// fakeCatalog serves canned responses. A nil field makes the matching call
// fail the way the real client does: by returning nil.
type fakeCatalog struct {
	topArtists    *lastfm.ArtistsResponse
	topTags       *lastfm.TagsResponse
	topTracks     *lastfm.TracksResponse
	tagAlbums     *lastfm.AlbumsResponse
	searchArtists *lastfm.ArtistSearchResponse
	searchAlbums  *lastfm.AlbumSearchResponse
	searchTracks  *lastfm.TrackSearchResponse

	artistInfo *lastfm.ArtistInfo
	trackInfo  *lastfm.TrackInfo
	tagInfo    *lastfm.TagInfo
	albumInfo  *lastfm.AlbumInfo

	// onDetail runs inside every detail call, before it returns.
	onDetail func()

	mu    sync.Mutex
	calls []string
	count atomic.Int32
}

func (f *fakeCatalog) record(call string) {
	f.count.Add(1)
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeCatalog) TopArtists(context.Context, int) *lastfm.ArtistsResponse {
	f.record("TopArtists")
	return f.topArtists
}

func (f *fakeCatalog) TopTags(context.Context, int) *lastfm.TagsResponse {
	f.record("TopTags")
	return f.topTags
}

func (f *fakeCatalog) TopTracks(context.Context, int) *lastfm.TracksResponse {
	f.record("TopTracks")
	return f.topTracks
}

func (f *fakeCatalog) TopAlbumsForTag(_ context.Context, tag string, _ int) *lastfm.AlbumsResponse {
	f.record("TopAlbumsForTag:" + tag)
	return f.tagAlbums
}

func (f *fakeCatalog) SearchArtists(_ context.Context, q string, _ int) *lastfm.ArtistSearchResponse {
	f.record("SearchArtists:" + q)
	return f.searchArtists
}

func (f *fakeCatalog) SearchAlbums(_ context.Context, q string, _ int) *lastfm.AlbumSearchResponse {
	f.record("SearchAlbums:" + q)
	return f.searchAlbums
}

func (f *fakeCatalog) SearchTracks(_ context.Context, q string, _ int) *lastfm.TrackSearchResponse {
	f.record("SearchTracks:" + q)
	return f.searchTracks
}

func (f *fakeCatalog) detail() {
	if f.onDetail != nil {
		f.onDetail()
	}
}

func (f *fakeCatalog) ArtistInfo(_ context.Context, artist string) *lastfm.ArtistInfo {
	f.record("ArtistInfo:" + artist)
	f.detail()
	return f.artistInfo
}

func (f *fakeCatalog) TrackInfo(_ context.Context, track, artist string) *lastfm.TrackInfo {
	f.record("TrackInfo:" + track + "/" + artist)
	f.detail()
	return f.trackInfo
}

func (f *fakeCatalog) TagInfo(_ context.Context, tag string) *lastfm.TagInfo {
	f.record("TagInfo:" + tag)
	f.detail()
	return f.tagInfo
}

func (f *fakeCatalog) AlbumInfo(_ context.Context, artist, album string) *lastfm.AlbumInfo {
	f.record("AlbumInfo:" + artist + "/" + album)
	f.detail()
	return f.albumInfo
}

// mustDecode builds a typed response from a JSON literal.
func mustDecode[T any](s string) *T {
	var out T
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		panic(err)
	}
	return &out
}
