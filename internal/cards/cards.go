// Package cards projects Last.fm entries into the uniform card model shown
// on the discovery page.
package cards

import (
	"github.com/dustin/go-humanize"

	"github.com/justestif/soundwave/internal/lastfm"
)

// Placeholders used when an entry lacks the probed field.
const (
	PlaceholderCount  = "N/A"
	PlaceholderTag    = "Popular tag"
	PlaceholderArtist = "Artista desconhecido"
	PlaceholderTitle  = "N/A"
	imageSize         = "large"
	thousandsFormatBR = "#.###,"
)

// Card is the view-level projection of a single entry.
type Card struct {
	Kind     lastfm.Kind
	Title    string
	Subtitle string
	ImageURL string
}

// Project maps an entry to a Card. It never panics on missing fields: every
// absent value degrades to a placeholder or an empty image URL.
func Project(entry lastfm.Entry) Card {
	switch e := entry.(type) {
	case lastfm.Artist:
		return Card{
			Kind:     lastfm.KindArtist,
			Title:    title(e.Name),
			Subtitle: count(e.Playcount, PlaceholderCount),
			ImageURL: e.Image.Pick(imageSize),
		}
	case lastfm.Tag:
		return Card{
			Kind:     lastfm.KindTag,
			Title:    title(e.Name),
			Subtitle: count(e.Taggings, PlaceholderTag),
		}
	case lastfm.Track:
		return Card{
			Kind:     lastfm.KindTrack,
			Title:    title(e.Name),
			Subtitle: artist(e.Artist),
			ImageURL: e.Image.Pick(imageSize),
		}
	case lastfm.Album:
		return Card{
			Kind:     lastfm.KindAlbum,
			Title:    title(e.Name),
			Subtitle: artist(e.Artist),
			ImageURL: e.Image.Pick(imageSize),
		}
	default:
		return Card{Title: PlaceholderTitle}
	}
}

// ProjectAll projects entries in order.
func ProjectAll(entries []lastfm.Entry) []Card {
	out := make([]Card, len(entries))
	for i, e := range entries {
		out[i] = Project(e)
	}
	return out
}

// FormatCount renders n with pt-BR thousands grouping ("1.234.567").
func FormatCount(n int64) string {
	return humanize.FormatInteger(thousandsFormatBR, int(n))
}

func title(name string) string {
	if name == "" {
		return PlaceholderTitle
	}
	return name
}

func count(c lastfm.Count, placeholder string) string {
	if !c.Valid {
		return placeholder
	}
	return FormatCount(c.Value)
}

func artist(ref lastfm.ArtistRef) string {
	if ref.Name == "" {
		return PlaceholderArtist
	}
	return ref.Name
}
