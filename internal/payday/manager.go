package payday

import (
	"sync"

	"github.com/google/uuid"
)

// Manager keeps the active cockpit sessions for the HTTP layer.
// Sessions stay registered until they are discarded so a finished
// session's summary can still be fetched.
type Manager struct {
	mu       sync.Mutex
	catalogs Catalogs
	sessions map[uuid.UUID]*Session
}

// NewManager returns a manager backed by the given catalogs.
func NewManager(catalogs Catalogs) *Manager {
	return &Manager{
		catalogs: catalogs,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Start opens a new session and registers it.
func (m *Manager) Start() (*Session, error) {
	session, err := NewSession(m.catalogs)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID()] = session

	return session, nil
}

// Get returns the session with the given ID.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	return session, nil
}

// Cancel abandons a session before execution and removes it.
func (m *Manager) Cancel(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}

	switch session.Phase() {
	case PhaseInflowEntry, PhaseStrategyReview:
		if err := session.Cancel(); err != nil {
			return err
		}
	case PhaseSuccess, PhaseFailed:
		// Finished sessions have no ledger effect left to guard,
		// discarding them is always safe.
	default:
		return ErrWrongPhase
	}

	delete(m.sessions, id)
	return nil
}
