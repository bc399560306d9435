package lastfm

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the entity an entry describes.
type Kind string

// Entity kinds.
const (
	KindArtist Kind = "artist"
	KindTag    Kind = "tag"
	KindTrack  Kind = "track"
	KindAlbum  Kind = "album"
)

// ParseKind converts a string to a Kind. It reports false for unknown kinds.
func ParseKind(s string) (Kind, bool) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindArtist, KindTag, KindTrack, KindAlbum:
		return k, true
	default:
		return "", false
	}
}

// Entry is a single chart or search entry. It is implemented only by
// Artist, Tag, Track and Album.
type Entry interface {
	Kind() Kind
	entry()
}

// Entries converts a typed entry slice to a slice of Entry, preserving order.
func Entries[T Entry](items []T) []Entry {
	out := make([]Entry, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

// Count is a numeric field that Last.fm encodes either as a JSON string or
// a JSON number. Valid is false when the field was absent, null or not numeric.
type Count struct {
	Value int64
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Count) UnmarshalJSON(data []byte) error {
	*c = Count{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	s := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*c = Count{Value: n, Valid: true}
		return nil
	}
	// NaN, infinities and values past int64 stay invalid.
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && math.Abs(f) < math.MaxInt64 {
		*c = Count{Value: int64(f), Valid: true}
	}
	return nil
}

// ArtistRef is the artist attached to a track or album. Chart endpoints send
// an object with a name, search endpoints send a bare string.
type ArtistRef struct {
	Name string
	MBID string
	URL  string
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *ArtistRef) UnmarshalJSON(data []byte) error {
	*a = ArtistRef{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var name string
		if err := json.Unmarshal(data, &name); err == nil {
			a.Name = name
		}
	case '{':
		var obj struct {
			Name string `json:"name"`
			Text string `json:"#text"`
			MBID string `json:"mbid"`
			URL  string `json:"url"`
		}
		if err := json.Unmarshal(data, &obj); err == nil {
			a.Name = obj.Name
			if a.Name == "" {
				a.Name = obj.Text
			}
			a.MBID = obj.MBID
			a.URL = obj.URL
		}
	}
	return nil
}

// Image is a size-tagged image descriptor.
type Image struct {
	Size string `json:"size"`
	URL  string `json:"#text"`
}

// Images is the image list attached to artists, tracks and albums.
type Images []Image

// Pick returns the URL of the first image with the given size, or "" when
// there is none.
func (imgs Images) Pick(size string) string {
	for _, img := range imgs {
		if img.Size == size {
			return img.URL
		}
	}
	return ""
}

// List is a JSON collection that Last.fm sends as an array, or as a single
// object when there is exactly one element.
type List[T any] []T

// UnmarshalJSON implements json.Unmarshaler.
func (l *List[T]) UnmarshalJSON(data []byte) error {
	*l = nil
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = items
	case '{':
		var item T
		if err := json.Unmarshal(data, &item); err != nil {
			return err
		}
		*l = List[T]{item}
	}
	return nil
}

// Artist is an artist entry from charts, search results or top lists.
type Artist struct {
	Name      string `json:"name"`
	MBID      string `json:"mbid"`
	URL       string `json:"url"`
	Playcount Count  `json:"playcount"`
	Listeners Count  `json:"listeners"`
	Image     Images `json:"image"`
}

// Kind implements Entry.
func (Artist) Kind() Kind { return KindArtist }
func (Artist) entry() {}

// Tag is a tag (genre) entry.
type Tag struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Reach    Count  `json:"reach"`
	Taggings Count  `json:"taggings"`
}

// Kind implements Entry.
func (Tag) Kind() Kind { return KindTag }
func (Tag) entry() {}

// Track is a track entry.
type Track struct {
	Name      string    `json:"name"`
	MBID      string    `json:"mbid"`
	URL       string    `json:"url"`
	Artist    ArtistRef `json:"artist"`
	Playcount Count     `json:"playcount"`
	Listeners Count     `json:"listeners"`
	Image     Images    `json:"image"`
}

// Kind implements Entry.
func (Track) Kind() Kind { return KindTrack }
func (Track) entry() {}

// Album is an album entry.
type Album struct {
	Name      string    `json:"name"`
	MBID      string    `json:"mbid"`
	URL       string    `json:"url"`
	Artist    ArtistRef `json:"artist"`
	Playcount Count     `json:"playcount"`
	Image     Images    `json:"image"`
}

// Kind implements Entry.
func (Album) Kind() Kind { return KindAlbum }
func (Album) entry() {}

// ArtistList is the "artists" object of chart.gettopartists.
type ArtistList struct {
	Artist List[Artist] `json:"artist"`
}

// TagList is the "tags" object of chart.gettoptags.
type TagList struct {
	Tag List[Tag] `json:"tag"`
}

// TrackList is the "tracks" object of chart.gettoptracks.
type TrackList struct {
	Track List[Track] `json:"track"`
}

// AlbumList is an album collection ("albums" or "topalbums").
type AlbumList struct {
	Album List[Album] `json:"album"`
}

// ArtistsResponse is the response of chart.gettopartists. Artists is nil
// when the payload has no "artists" object.
type ArtistsResponse struct {
	Artists *ArtistList `json:"artists"`
}

// TagsResponse is the response of chart.gettoptags.
type TagsResponse struct {
	Tags *TagList `json:"tags"`
}

// TracksResponse is the response of chart.gettoptracks.
type TracksResponse struct {
	Tracks *TrackList `json:"tracks"`
}

// AlbumsResponse is the response of tag.gettopalbums.
type AlbumsResponse struct {
	Albums *AlbumList `json:"albums"`
}

// TopAlbumsResponse is the response of artist.gettopalbums.
type TopAlbumsResponse struct {
	TopAlbums *AlbumList `json:"topalbums"`
}

// SimilarTracksResponse is the response of track.getsimilar.
type SimilarTracksResponse struct {
	SimilarTracks *TrackList `json:"similartracks"`
}

// ArtistSearchResponse is the response of artist.search.
type ArtistSearchResponse struct {
	Results *struct {
		Matches *ArtistList `json:"artistmatches"`
	} `json:"results"`
}

// AlbumSearchResponse is the response of album.search.
type AlbumSearchResponse struct {
	Results *struct {
		Matches *AlbumList `json:"albummatches"`
	} `json:"results"`
}

// TrackSearchResponse is the response of track.search.
type TrackSearchResponse struct {
	Results *struct {
		Matches *TrackList `json:"trackmatches"`
	} `json:"results"`
}

// Matches returns the matched artists, or nil when the payload has none.
func (r *ArtistSearchResponse) Matches() *ArtistList {
	if r == nil || r.Results == nil {
		return nil
	}
	return r.Results.Matches
}

// Matches returns the matched albums, or nil when the payload has none.
func (r *AlbumSearchResponse) Matches() *AlbumList {
	if r == nil || r.Results == nil {
		return nil
	}
	return r.Results.Matches
}

// Matches returns the matched tracks, or nil when the payload has none.
func (r *TrackSearchResponse) Matches() *TrackList {
	if r == nil || r.Results == nil {
		return nil
	}
	return r.Results.Matches
}

// Wiki is the long-form text block of tracks, tags and albums.
type Wiki struct {
	Published string `json:"published"`
	Summary   string `json:"summary"`
	Content   string `json:"content"`
}

// ArtistInfo is the response of artist.getinfo.
type ArtistInfo struct {
	Artist struct {
		Name string `json:"name"`
		URL  string `json:"url"`
		Bio  Wiki   `json:"bio"`
	} `json:"artist"`
}

// TrackInfo is the response of track.getInfo.
type TrackInfo struct {
	Track struct {
		Name   string    `json:"name"`
		URL    string    `json:"url"`
		Artist ArtistRef `json:"artist"`
		Wiki   Wiki      `json:"wiki"`
	} `json:"track"`
}

// TagInfo is the response of tag.getinfo.
type TagInfo struct {
	Tag struct {
		Name string `json:"name"`
		Wiki Wiki   `json:"wiki"`
	} `json:"tag"`
}

// AlbumInfo is the response of album.getinfo.
type AlbumInfo struct {
	Album struct {
		Name   string    `json:"name"`
		URL    string    `json:"url"`
		Artist ArtistRef `json:"artist"`
		Image  Images    `json:"image"`
		Wiki   Wiki      `json:"wiki"`
	} `json:"album"`
}

// apiError represents a Last.fm API error response.
type apiError struct {
	Error   int    `json:"error"`
	Message string `json:"message"`
}
