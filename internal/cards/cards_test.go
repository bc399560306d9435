package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/justestif/soundwave/internal/lastfm"
)

func TestProject(t *testing.T) {
	large := lastfm.Images{
		{Size: "small", URL: "small.png"},
		{Size: "large", URL: "large.png"},
	}

	tests := []struct {
		name  string
		entry lastfm.Entry
		want  Card
	}{
		{
			name:  "artist with name only",
			entry: lastfm.Artist{Name: "Sigur Rós"},
			want:  Card{Kind: lastfm.KindArtist, Title: "Sigur Rós", Subtitle: "N/A", ImageURL: ""},
		},
		{
			name: "artist with playcount and image",
			entry: lastfm.Artist{
				Name:      "Björk",
				Playcount: lastfm.Count{Value: 1234567, Valid: true},
				Image:     large,
			},
			want: Card{Kind: lastfm.KindArtist, Title: "Björk", Subtitle: "1.234.567", ImageURL: "large.png"},
		},
		{
			name:  "artist with zero playcount",
			entry: lastfm.Artist{Name: "Nobody", Playcount: lastfm.Count{Valid: true}},
			want:  Card{Kind: lastfm.KindArtist, Title: "Nobody", Subtitle: "0"},
		},
		{
			name:  "tag without taggings",
			entry: lastfm.Tag{Name: "rock"},
			want:  Card{Kind: lastfm.KindTag, Title: "rock", Subtitle: "Popular tag"},
		},
		{
			name:  "tag with taggings",
			entry: lastfm.Tag{Name: "indie", Taggings: lastfm.Count{Value: 98765, Valid: true}},
			want:  Card{Kind: lastfm.KindTag, Title: "indie", Subtitle: "98.765"},
		},
		{
			name:  "track with artist object",
			entry: lastfm.Track{Name: "Believe", Artist: lastfm.ArtistRef{Name: "Cher", MBID: "x"}, Image: large},
			want:  Card{Kind: lastfm.KindTrack, Title: "Believe", Subtitle: "Cher", ImageURL: "large.png"},
		},
		{
			name:  "track without artist",
			entry: lastfm.Track{Name: "Untitled"},
			want:  Card{Kind: lastfm.KindTrack, Title: "Untitled", Subtitle: "Artista desconhecido"},
		},
		{
			name:  "album with artist string",
			entry: lastfm.Album{Name: "Takk...", Artist: lastfm.ArtistRef{Name: "Sigur Rós"}},
			want:  Card{Kind: lastfm.KindAlbum, Title: "Takk...", Subtitle: "Sigur Rós"},
		},
		{
			name:  "album without artist",
			entry: lastfm.Album{Name: "Mystery"},
			want:  Card{Kind: lastfm.KindAlbum, Title: "Mystery", Subtitle: "Artista desconhecido"},
		},
		{
			name:  "missing name",
			entry: lastfm.Track{},
			want:  Card{Kind: lastfm.KindTrack, Title: "N/A", Subtitle: "Artista desconhecido"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Project(tt.entry))
		})
	}
}

func TestProject_ImageURL(t *testing.T) {
	tests := []struct {
		name   string
		images lastfm.Images
	}{
		{name: "absent", images: nil},
		{name: "empty", images: lastfm.Images{}},
		{name: "no large variant", images: lastfm.Images{{Size: "small", URL: "s.png"}, {Size: "extralarge", URL: "xl.png"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := []lastfm.Entry{
				lastfm.Artist{Name: "a", Image: tt.images},
				lastfm.Track{Name: "t", Image: tt.images},
				lastfm.Album{Name: "b", Image: tt.images},
			}
			for _, e := range entries {
				assert.NotPanics(t, func() {
					assert.Equal(t, "", Project(e).ImageURL)
				})
			}
		})
	}
}

func TestProject_Nil(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.Equal(t, Card{Title: "N/A"}, Project(nil))
	})
}

func TestProjectAll_PreservesOrder(t *testing.T) {
	got := ProjectAll(lastfm.Entries([]lastfm.Artist{{Name: "C"}, {Name: "A"}, {Name: "B"}}))

	titles := make([]string, len(got))
	for i, c := range got {
		titles[i] = c.Title
	}
	assert.Equal(t, []string{"C", "A", "B"}, titles)
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "1.234.567", FormatCount(1234567))
	assert.Equal(t, "999", FormatCount(999))
	assert.Equal(t, "1.000", FormatCount(1000))
}
