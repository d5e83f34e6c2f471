package service

import (
	"sync"
	"time"

	"skillsage/internal/domain"
	"skillsage/internal/logger"

	"go.uber.org/zap"
)

// MemorySessionStore is the volatile, in-process session table. Sessions
// live until explicitly ended, swept as idle, or the process restarts.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

// NewMemorySessionStore creates an empty session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]*domain.Session)}
}

// Get implements domain.SessionStore.
func (m *MemorySessionStore) Get(userID string) (*domain.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[userID]
	return s, ok
}

// Put implements domain.SessionStore.
func (m *MemorySessionStore) Put(s *domain.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.UserID] = s
}

// Remove implements domain.SessionStore.
func (m *MemorySessionStore) Remove(userID string) (*domain.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if ok {
		delete(m.sessions, userID)
	}
	return s, ok
}

// Len returns the number of active sessions.
func (m *MemorySessionStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// SweepExpired removes sessions idle longer than maxIdle and returns how
// many were dropped. Run periodically so abandoned sessions don't pile up.
func (m *MemorySessionStore) SweepExpired(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for userID, s := range m.sessions {
		if s.UpdatedAt.Before(cutoff) {
			delete(m.sessions, userID)
			removed++
		}
	}
	if removed > 0 {
		logger.Get().Info("Swept idle sessions",
			zap.Int("removed", removed),
			zap.Int("remaining", len(m.sessions)))
	}
	return removed
}

var _ domain.SessionStore = (*MemorySessionStore)(nil)
