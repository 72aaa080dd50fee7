package chat

import "sync"

// Manager owns one Session per bearer token, created on first use. This
// is the server-side stand-in for per-tab component state: a visitor's
// transcript survives navigations but not a re-login.
type Manager struct {
	mu       sync.Mutex
	backend  Backend
	sessions map[string]*Session
}

func NewManager(backend Backend) *Manager {
	return &Manager{
		backend:  backend,
		sessions: make(map[string]*Session),
	}
}

// Session returns the chat session for the given token, creating it if
// needed.
func (m *Manager) Session(token string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[token]; ok {
		return s
	}
	s := NewSession(m.backend)
	m.sessions[token] = s
	return s
}

// Drop discards the session for a token, typically on logout.
func (m *Manager) Drop(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}
