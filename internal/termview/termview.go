// Package termview prints discovery sections to a terminal.
package termview

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/justestif/soundwave/internal/lastfm"
	"github.com/justestif/soundwave/internal/view"
)

// MaxTitleWidth is the display width after which card titles are cut.
const MaxTitleWidth = 40

// Styles holds the lipgloss styles used to print sections.
type Styles struct {
	Heading     lipgloss.Style
	Index       lipgloss.Style
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Badge       lipgloss.Style
	Placeholder lipgloss.Style
}

// NewStyles builds the SoundWave palette for renderer.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Heading: r.NewStyle().
			Foreground(lipgloss.Color("#1db954")).
			Bold(true).
			MarginTop(1),
		Index:       r.NewStyle().Foreground(lipgloss.Color("#535353")).Width(4).Align(lipgloss.Right),
		Title:       r.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true),
		Subtitle:    r.NewStyle().Foreground(lipgloss.Color("#b3b3b3")),
		Badge:       r.NewStyle().Foreground(lipgloss.Color("#1db954")),
		Placeholder: r.NewStyle().Foreground(lipgloss.Color("#b3b3b3")).Italic(true),
	}
}

// Printer writes sections to w.
type Printer struct {
	w      io.Writer
	styles Styles
}

// NewPrinter creates a Printer whose color profile follows w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, styles: NewStyles(lipgloss.NewRenderer(w))}
}

// Print writes every section: its heading, then one numbered line per card,
// or the placeholder when the section was never populated.
func (p *Printer) Print(sections []view.Section) error {
	var b strings.Builder
	for _, s := range sections {
		b.WriteString(p.styles.Heading.Render(s.Heading))
		b.WriteString("\n")

		if s.Token == "" {
			b.WriteString(p.styles.Placeholder.Render("    " + s.Placeholder))
			b.WriteString("\n")
			continue
		}
		for i, n := range s.Nodes {
			b.WriteString(p.line(i+1, n))
			b.WriteString("\n")
		}
	}
	_, err := io.WriteString(p.w, b.String())
	return err
}

func (p *Printer) line(index int, n view.Node) string {
	subtitle := n.Card.Subtitle
	if n.Card.Kind == lastfm.KindArtist {
		subtitle += " reproduções"
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		p.styles.Index.Render(fmt.Sprintf("%d.", index)),
		" ",
		p.styles.Title.Render(runewidth.Truncate(n.Card.Title, MaxTitleWidth, "…")),
		"  ",
		p.styles.Subtitle.Render(subtitle),
		"  ",
		p.styles.Badge.Render("["+view.KindLabel(n.Card.Kind)+"]"),
	)
}
