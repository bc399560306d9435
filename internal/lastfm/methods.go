package lastfm

import "context"

// limitOrDefault returns DefaultLimit for non-positive limits.
func limitOrDefault(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}

// TopArtists fetches the global top artists chart.
func (c *Client) TopArtists(ctx context.Context, limit int) *ArtistsResponse {
	return decode[ArtistsResponse](ctx, c, MethodTopArtists, Params{"limit": limitOrDefault(limit)})
}

// TopTags fetches the global top tags chart.
func (c *Client) TopTags(ctx context.Context, limit int) *TagsResponse {
	return decode[TagsResponse](ctx, c, MethodTopTags, Params{"limit": limitOrDefault(limit)})
}

// TopTracks fetches the global top tracks chart.
func (c *Client) TopTracks(ctx context.Context, limit int) *TracksResponse {
	return decode[TracksResponse](ctx, c, MethodTopTracks, Params{"limit": limitOrDefault(limit)})
}

// TopAlbumsForTag fetches the top albums of a tag.
func (c *Client) TopAlbumsForTag(ctx context.Context, tag string, limit int) *AlbumsResponse {
	return decode[AlbumsResponse](ctx, c, MethodTagTopAlbums, Params{
		"tag":   tag,
		"limit": limitOrDefault(limit),
	})
}

// ArtistInfo fetches an artist's profile, including the biography summary.
func (c *Client) ArtistInfo(ctx context.Context, artist string) *ArtistInfo {
	return decode[ArtistInfo](ctx, c, MethodArtistInfo, Params{
		"artist": artist,
		"lang":   c.lang,
	})
}

// ArtistAlbums fetches an artist's top albums.
func (c *Client) ArtistAlbums(ctx context.Context, artist string, limit int) *TopAlbumsResponse {
	return decode[TopAlbumsResponse](ctx, c, MethodArtistAlbums, Params{
		"artist": artist,
		"limit":  limitOrDefault(limit),
	})
}

// AlbumInfo fetches an album's details.
func (c *Client) AlbumInfo(ctx context.Context, artist, album string) *AlbumInfo {
	return decode[AlbumInfo](ctx, c, MethodAlbumInfo, Params{
		"artist": artist,
		"album":  album,
		"lang":   c.lang,
	})
}

// SimilarTracks fetches tracks similar to the given one.
func (c *Client) SimilarTracks(ctx context.Context, artist, track string, limit int) *SimilarTracksResponse {
	return decode[SimilarTracksResponse](ctx, c, MethodSimilarTracks, Params{
		"artist": artist,
		"track":  track,
		"limit":  limitOrDefault(limit),
	})
}

// TrackInfo fetches a track's details, including the wiki summary.
func (c *Client) TrackInfo(ctx context.Context, track, artist string) *TrackInfo {
	return decode[TrackInfo](ctx, c, MethodTrackInfo, Params{
		"track":  track,
		"artist": artist,
		"lang":   c.lang,
	})
}

// TagInfo fetches a tag's details, including the wiki summary.
func (c *Client) TagInfo(ctx context.Context, tag string) *TagInfo {
	return decode[TagInfo](ctx, c, MethodTagInfo, Params{
		"tag":  tag,
		"lang": c.lang,
	})
}

// SearchArtists searches artists by name.
func (c *Client) SearchArtists(ctx context.Context, query string, limit int) *ArtistSearchResponse {
	return decode[ArtistSearchResponse](ctx, c, MethodSearchArtists, Params{
		"artist": query,
		"limit":  limitOrDefault(limit),
	})
}

// SearchAlbums searches albums by name.
func (c *Client) SearchAlbums(ctx context.Context, query string, limit int) *AlbumSearchResponse {
	return decode[AlbumSearchResponse](ctx, c, MethodSearchAlbums, Params{
		"album": query,
		"limit": limitOrDefault(limit),
	})
}

// SearchTracks searches tracks by name.
func (c *Client) SearchTracks(ctx context.Context, query string, limit int) *TrackSearchResponse {
	return decode[TrackSearchResponse](ctx, c, MethodSearchTracks, Params{
		"track": query,
		"limit": limitOrDefault(limit),
	})
}
