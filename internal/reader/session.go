package reader

import (
	"sync"

	"folio/internal/eventbus"
	"folio/internal/turn"
)

// Session owns the position of the currently open document. It applies
// page-turn intents from the controller, re-clamps when pagination
// reports the true page count, and resets to page 1 on document change.
type Session struct {
	mu   sync.Mutex
	bus  eventbus.EventBus
	path string
	pos  Position
}

// NewSession creates a session. bus may be nil in tests.
func NewSession(bus eventbus.EventBus) *Session {
	return &Session{bus: bus, pos: Position{Current: 1}}
}

// Open switches the session to a new document, starting at page 1 with
// an unknown total
func (s *Session) Open(path string) {
	s.mu.Lock()
	prev := s.path
	s.path = path
	s.pos = Position{Current: 1}
	bus := s.bus
	s.mu.Unlock()

	if bus == nil {
		return
	}
	if prev != "" {
		bus.Publish(eventbus.DocClosedEvent{Path: prev})
	}
	bus.Publish(eventbus.DocOpenedEvent{Path: path})
}

// Close clears the open document
func (s *Session) Close() {
	s.mu.Lock()
	prev := s.path
	s.path = ""
	s.pos = Position{Current: 1}
	bus := s.bus
	s.mu.Unlock()

	if bus != nil && prev != "" {
		bus.Publish(eventbus.DocClosedEvent{Path: prev})
	}
}

// Path returns the open document's path, empty when none is open
func (s *Session) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// Position returns the current position
func (s *Session) Position() Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

// Apply resolves a turn intent against the session and returns the new
// position. A clamped no-op intent leaves the position untouched and
// publishes nothing.
func (s *Session) Apply(intent turn.Intent) Position {
	s.mu.Lock()
	from := s.pos.Current
	s.pos = s.pos.Apply(intent)
	to := s.pos.Current
	path := s.path
	pos := s.pos
	bus := s.bus
	s.mu.Unlock()

	if bus != nil && to != from {
		bus.Publish(eventbus.PageTurnedEvent{Path: path, FromPage: from, ToPage: to})
	}
	return pos
}

// Reposition moves to a page without announcing a turn. Used when
// repagination remaps the reading position to a new page number.
func (s *Session) Reposition(page int) Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pos.Current = s.pos.Clamp(page)
	return s.pos
}

// SetTotal records the true page count once pagination finishes and
// re-clamps the current page against it. An optimistic forward turn past
// the real end is pulled back here.
func (s *Session) SetTotal(total int) Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	if total < 0 {
		total = 0
	}
	s.pos.Total = total
	s.pos.Current = s.pos.Clamp(s.pos.Current)
	return s.pos
}
