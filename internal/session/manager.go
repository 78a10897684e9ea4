package session

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/todolists/internal/log"
	"github.com/mesh-intelligence/todolists/pkg/types"
)

// Manager owns session lifetimes. Sessions are created on first use and
// live until Close.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager returns an empty session registry.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// NewID generates a UUID v7 session identifier.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

// Open returns the session with the given ID, creating a seeded one when it
// does not exist yet.
func (m *Manager) Open(id string) (*Session, error) {
	if id == "" {
		return nil, types.ErrSessionEmpty
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	s := newSeededSession(id)
	m.sessions[id] = s
	log.Debug().Str("session", id).Msg("session seeded")
	return s, nil
}

// Get returns the session with the given ID without creating it.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Close discards the session. Closing an unknown ID is a no-op.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Restore opens the session with the given ID from a snapshot file. A
// missing file yields a seeded session. An already live session is returned
// as is.
func (m *Manager) Restore(id, path string) (*Session, error) {
	if id == "" {
		return nil, types.ErrSessionEmpty
	}
	if s, ok := m.Get(id); ok {
		return s, nil
	}

	lists, err := loadSnapshot(path)
	if errors.Is(err, os.ErrNotExist) {
		return m.Open(id)
	}
	if err != nil {
		return nil, fmt.Errorf("restoring session %s: %w", id, err)
	}

	s := newSession(id, lists)
	m.mu.Lock()
	defer m.mu.Unlock()
	if live, ok := m.sessions[id]; ok {
		return live, nil
	}
	m.sessions[id] = s
	log.Debug().Str("session", id).Int("lists", len(lists)).Msg("session restored")
	return s, nil
}

// Save writes a snapshot of the session to path atomically.
func (m *Manager) Save(id, path string) error {
	s, ok := m.Get(id)
	if !ok {
		return fmt.Errorf("saving session %s: %w", id, types.ErrNotFound)
	}
	return saveSnapshot(path, s.Lists())
}
