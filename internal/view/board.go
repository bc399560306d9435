// Package view holds the page model of the discovery page: named sections
// of mounted cards, the detail interaction bound to each card, and the
// loader that fills the sections from Last.fm.
package view

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/justestif/soundwave/internal/cards"
)

// Section identifiers used by the discovery page.
const (
	SectionArtists  = "recently-played"
	SectionMiddle   = "made-for-you"
	SectionTrending = "trending"
)

// LoadingPlaceholder is shown in a section that has no cards yet.
const LoadingPlaceholder = "Carregando músicas..."

// ErrUnknownSection is returned when rendering into a section the board
// does not have.
var ErrUnknownSection = errors.New("unknown section")

// State is the lifecycle state of a section.
type State int

// Section states.
const (
	StateEmpty State = iota
	StateLoading
	StatePopulated
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoading:
		return "loading"
	case StatePopulated:
		return "populated"
	default:
		return "unknown"
	}
}

// SectionSpec declares a section of the board.
type SectionSpec struct {
	ID      string
	Heading string
}

// DefaultLayout returns the three sections of the discovery page.
func DefaultLayout() []SectionSpec {
	return []SectionSpec{
		{ID: SectionArtists, Heading: "Artistas mais escutados"},
		{ID: SectionMiddle, Heading: "Músicas mais escutadas"},
		{ID: SectionTrending, Heading: "Gêneros em alta"},
	}
}

// Node is a card mounted in a section. Token is the render token of the
// section at mount time.
type Node struct {
	Card  cards.Card
	Token string
}

// Section is a snapshot of one section of the board.
type Section struct {
	ID          string
	Heading     string
	State       State
	Placeholder string
	Token       string
	Nodes       []Node
}

// Loading reports whether the section is waiting for a fetch.
func (s Section) Loading() bool {
	return s.State == StateLoading
}

type section struct {
	Section
	prior   State
	heading string // layout heading, restored by Reset
}

// Board is the set of sections on one page. Rendering a section replaces
// all of its nodes and mints a new render token, which invalidates the
// tokens carried by the nodes it replaced. A Board is safe for concurrent use.
type Board struct {
	mu       sync.Mutex
	order    []string
	sections map[string]*section
	newToken func() string
}

// NewBoard creates a board with the given sections, all empty.
func NewBoard(layout []SectionSpec) *Board {
	b := &Board{
		sections: make(map[string]*section, len(layout)),
		newToken: func() string { return uuid.NewString() },
	}
	for _, spec := range layout {
		b.order = append(b.order, spec.ID)
		b.sections[spec.ID] = &section{
			Section: Section{
				ID:          spec.ID,
				Heading:     spec.Heading,
				State:       StateEmpty,
				Placeholder: LoadingPlaceholder,
			},
			heading: spec.Heading,
		}
	}
	return b
}

// Render replaces every node of the section with one node per card, in
// order, and moves the section to StatePopulated. The heading is kept.
func (b *Board) Render(sectionID string, items []cards.Card) error {
	return b.RenderTitled(sectionID, "", items)
}

// RenderTitled is Render that also sets the section heading in the same
// step, so no snapshot pairs the new cards with the old heading. An empty
// heading keeps the current one.
func (b *Board) RenderTitled(sectionID, heading string, items []cards.Card) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.sections[sectionID]
	if !ok {
		return ErrUnknownSection
	}

	token := b.newToken()
	nodes := make([]Node, len(items))
	for i, item := range items {
		nodes[i] = Node{Card: item, Token: token}
	}

	if heading != "" {
		s.Heading = heading
	}
	s.Nodes = nodes
	s.Token = token
	s.State = StatePopulated
	s.prior = StatePopulated
	return nil
}

// MarkLoading moves the given sections to StateLoading. Their nodes stay
// mounted until the next Render.
func (b *Board) MarkLoading(ids ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, id := range ids {
		if s, ok := b.sections[id]; ok && s.State != StateLoading {
			s.prior = s.State
			s.State = StateLoading
		}
	}
}

// Settle returns sections still in StateLoading to the state they had
// before MarkLoading. It is called once a fetch cycle has finished, so a
// failed fetch leaves its section as it was.
func (b *Board) Settle(ids ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, id := range ids {
		if s, ok := b.sections[id]; ok && s.State == StateLoading {
			s.State = s.prior
		}
	}
}

// Reset empties every section, drops all render tokens and restores the
// layout headings.
func (b *Board) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, s := range b.sections {
		s.Heading = s.heading
		s.Nodes = nil
		s.Token = ""
		s.State = StateEmpty
		s.prior = StateEmpty
	}
}

// Live reports whether token is the current render token of any section.
func (b *Board) Live(token string) bool {
	if token == "" {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, s := range b.sections {
		if s.Token == token {
			return true
		}
	}
	return false
}

// Section returns a snapshot of one section.
func (b *Board) Section(id string) (Section, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.sections[id]
	if !ok {
		return Section{}, false
	}
	return s.snapshot(), true
}

// Sections returns snapshots of all sections in layout order.
func (b *Board) Sections() []Section {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Section, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.sections[id].snapshot())
	}
	return out
}

func (s *section) snapshot() Section {
	snap := s.Section
	snap.Nodes = append([]Node(nil), s.Nodes...)
	return snap
}
