package view

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/justestif/soundwave/internal/lastfm"
)

// DetailSource fetches the long-form summaries shown in the detail modal.
type DetailSource interface {
	ArtistInfo(ctx context.Context, artist string) *lastfm.ArtistInfo
	TrackInfo(ctx context.Context, track, artist string) *lastfm.TrackInfo
	TagInfo(ctx context.Context, tag string) *lastfm.TagInfo
	AlbumInfo(ctx context.Context, artist, album string) *lastfm.AlbumInfo
}

// TokenChecker reports whether a render token still belongs to a mounted card.
type TokenChecker interface {
	Live(token string) bool
}

// DetailRequest is a card interaction: the card's kind, its displayed title
// and subtitle, and the render token it was mounted with.
type DetailRequest struct {
	Kind     lastfm.Kind
	Title    string
	Subtitle string
	Token    string
}

// Modal is the content of the detail overlay.
type Modal struct {
	Kind    lastfm.Kind
	Title   string
	Label   string
	Summary string
}

// Notification is a transient inline message.
type Notification struct {
	Message string
}

// OutcomeKind tells which part of an Outcome is set.
type OutcomeKind int

// Outcome kinds.
const (
	// OutcomeNone means the interaction had nothing to look up.
	OutcomeNone OutcomeKind = iota
	// OutcomeStale means the card was replaced before the detail arrived.
	OutcomeStale
	OutcomeModal
	OutcomeNotice
)

// Outcome is the result of a card interaction.
type Outcome struct {
	Kind   OutcomeKind
	Modal  Modal
	Notice Notification
}

// Binder resolves card interactions into detail fetches.
type Binder struct {
	source DetailSource
	logger zerolog.Logger
}

// NewBinder creates a Binder backed by source.
func NewBinder(source DetailSource, logger zerolog.Logger) *Binder {
	return &Binder{source: source, logger: logger}
}

// Detail issues exactly one detail fetch for the card described by req and
// returns a modal on success or a notification when no summary exists.
// Results are never cached. When live is non-nil and the request token is no
// longer live, before or after the fetch, the outcome is OutcomeStale.
func (b *Binder) Detail(ctx context.Context, req DetailRequest, live TokenChecker) Outcome {
	title := strings.TrimSpace(req.Title)
	if title == "" || req.Kind == "" {
		return Outcome{Kind: OutcomeNone}
	}
	if live != nil && !live.Live(req.Token) {
		return Outcome{Kind: OutcomeStale}
	}

	var summary string
	switch req.Kind {
	case lastfm.KindArtist:
		if info := b.source.ArtistInfo(ctx, title); info != nil {
			summary = info.Artist.Bio.Summary
		}
	case lastfm.KindTrack:
		if info := b.source.TrackInfo(ctx, title, req.Subtitle); info != nil {
			summary = info.Track.Wiki.Summary
		}
	case lastfm.KindTag:
		if info := b.source.TagInfo(ctx, title); info != nil {
			summary = info.Tag.Wiki.Summary
		}
	case lastfm.KindAlbum:
		if info := b.source.AlbumInfo(ctx, req.Subtitle, title); info != nil {
			summary = info.Album.Wiki.Summary
		}
	default:
		return Outcome{Kind: OutcomeNone}
	}

	if live != nil && !live.Live(req.Token) {
		b.logger.Debug().
			Str("kind", string(req.Kind)).
			Str("title", title).
			Msg("Dropping detail for replaced card")
		return Outcome{Kind: OutcomeStale}
	}

	summary = plainText(summary)
	if summary == "" {
		return Outcome{
			Kind:   OutcomeNotice,
			Notice: Notification{Message: missingMessage(req.Kind, title)},
		}
	}

	return Outcome{
		Kind: OutcomeModal,
		Modal: Modal{
			Kind:    req.Kind,
			Title:   title,
			Label:   KindLabel(req.Kind),
			Summary: summary,
		},
	}
}

// KindLabel returns the badge text shown for a kind.
func KindLabel(k lastfm.Kind) string {
	switch k {
	case lastfm.KindTrack:
		return "Música"
	case lastfm.KindTag:
		return "Gênero"
	case lastfm.KindAlbum:
		return "Álbum"
	default:
		return "Artista"
	}
}

func missingMessage(k lastfm.Kind, title string) string {
	switch k {
	case lastfm.KindArtist:
		return fmt.Sprintf("Informações de \"%s\" não encontradas.", title)
	case lastfm.KindTrack:
		return fmt.Sprintf("Ops... Não há informações sobre a música \"%s\"", title)
	case lastfm.KindAlbum:
		return fmt.Sprintf("Ops... Não há informações sobre o álbum \"%s\"", title)
	default:
		return fmt.Sprintf("Ops... Não há informações sobre a tag \"%s\"", title)
	}
}

var stripMarkup = bluemonday.StrictPolicy()

// plainText strips markup from a Last.fm summary. Summaries end with a
// "Read more on Last.fm" anchor; only its text survives. The sanitizer
// escapes what it keeps, so the result is unescaped back to plain text.
func plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(stripMarkup.Sanitize(s)))
}
