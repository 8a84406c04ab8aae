package configurator

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// session pairs a store with its per-session search debouncer.
type session struct {
	store    *Store
	search   *Debouncer
	lastSeen time.Time
}

// Manager owns all live configurator sessions. Stores themselves are
// single-writer; the manager only guards the session map.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*session
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*session)}
}

// NewSession creates a store for the given model and returns its session id.
func (m *Manager) NewSession(modelCode string) (string, *Store) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the process is in serious trouble;
		// fall back to a time-derived id rather than refusing sessions.
		for i := range buf {
			buf[i] = byte(time.Now().UnixNano() >> (uint(i%8) * 8))
		}
	}
	id := hex.EncodeToString(buf)

	store := NewStore(modelCode)
	m.mu.Lock()
	m.sessions[id] = &session{
		store:    store,
		search:   NewDebouncer(DefaultSearchDelay),
		lastSeen: time.Now(),
	}
	m.mu.Unlock()
	return id, store
}

// Get returns the store for a session id.
func (m *Manager) Get(id string) (*Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionGone
	}
	sess.lastSeen = time.Now()
	return sess.store, nil
}

// Search returns the session's debouncer.
func (m *Manager) Search(id string) (*Debouncer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionGone
	}
	return sess.search, nil
}

// Delete drops a session.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Sweep removes sessions idle longer than maxIdle and returns how many were
// dropped.
func (m *Manager) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	m.mu.Lock()
	defer m.mu.Unlock()
	dropped := 0
	for id, sess := range m.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			dropped++
		}
	}
	return dropped
}
