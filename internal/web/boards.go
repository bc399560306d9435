package web

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/justestif/soundwave/internal/view"
)

const (
	boardTTL    = 24 * time.Hour
	pageIDBytes = 32
)

type pageBoard struct {
	board    *view.Board
	lastSeen time.Time
}

// BoardStore keeps one view.Board per rendered page, keyed by a page id
// minted when the home page is served. Every tab gets its own board, so
// loading one tab never invalidates the cards shown in another. Boards hold
// only rendered cards and their tokens and are lost on restart.
type BoardStore struct {
	mu     sync.RWMutex
	boards map[string]*pageBoard
	layout []view.SectionSpec
	ttl    time.Duration
	now    func() time.Time
}

// NewBoardStore creates an empty store whose boards use layout.
func NewBoardStore(layout []view.SectionSpec) *BoardStore {
	return &BoardStore{
		boards: make(map[string]*pageBoard),
		layout: layout,
		ttl:    boardTTL,
		now:    time.Now,
	}
}

// Create mints a page id with a fresh board.
func (s *BoardStore) Create() (string, *view.Board, error) {
	id, err := generatePageID()
	if err != nil {
		return "", nil, err
	}
	return id, s.put(id), nil
}

// Lookup returns the board of page id, or nil if it is unknown or expired.
func (s *BoardStore) Lookup(id string) *view.Board {
	if id == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pb, ok := s.boards[id]
	if !ok {
		return nil
	}
	now := s.now()
	if now.Sub(pb.lastSeen) > s.ttl {
		delete(s.boards, id)
		return nil
	}
	pb.lastSeen = now
	return pb.board
}

// Acquire returns the board of page id. A well-formed id the store does not
// know (expired, or issued before a restart) gets a fresh board under the
// same id so the page keeps working; any other id gets a new page.
func (s *BoardStore) Acquire(id string) (string, *view.Board, error) {
	if board := s.Lookup(id); board != nil {
		return id, board, nil
	}
	if validPageID(id) {
		return id, s.put(id), nil
	}
	return s.Create()
}

func (s *BoardStore) put(id string) *view.Board {
	board := view.NewBoard(s.layout)

	s.mu.Lock()
	defer s.mu.Unlock()

	// A concurrent Acquire for the same id may have won.
	if pb, ok := s.boards[id]; ok {
		return pb.board
	}
	s.boards[id] = &pageBoard{board: board, lastSeen: s.now()}
	return board
}

// Sweep removes boards idle for longer than the TTL and returns how many
// were removed.
func (s *BoardStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, pb := range s.boards {
		if now.Sub(pb.lastSeen) > s.ttl {
			delete(s.boards, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored boards.
func (s *BoardStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.boards)
}

// generatePageID creates a cryptographically random page ID.
func generatePageID() (string, error) {
	b := make([]byte, pageIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func validPageID(id string) bool {
	if len(id) != 2*pageIDBytes {
		return false
	}
	_, err := hex.DecodeString(id)
	return err == nil
}
