package session

import "sync"

// Manager owns one Session per learner. Sessions are created lazily and
// live for the life of the process; Reset returns one to idle for reuse.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	gen  Generator
	rec  Recorder
	opts []Option
}

func NewManager(gen Generator, rec Recorder, opts ...Option) *Manager {
	return &Manager{
		sessions: map[string]*Session{},
		gen:      gen,
		rec:      rec,
		opts:     opts,
	}
}

// ForLearner returns the learner's session, creating it if needed.
func (m *Manager) ForLearner(learnerID string) *Session {
	m.mu.RLock()
	s, ok := m.sessions[learnerID]
	m.mu.RUnlock()
	if ok {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[learnerID]; ok {
		return s
	}
	s = New(learnerID, m.gen, m.rec, m.opts...)
	m.sessions[learnerID] = s
	return s
}
