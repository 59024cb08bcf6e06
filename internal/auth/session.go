package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionStore maps opaque session tokens to user ids for the legacy API.
// It is an interface so the in-memory implementation can be swapped for an
// external store without touching handlers, and so tests can substitute
// their own.
type SessionStore interface {
	// Create registers a new session and returns its opaque token.
	Create(userID int, ttl time.Duration) (string, error)
	// Get resolves a token to a user id. ok is false for unknown or
	// expired tokens.
	Get(token string) (userID int, ok bool)
	// Delete removes a session. Deleting an unknown token is a no-op.
	Delete(token string)
}

type memorySession struct {
	userID    int
	expiresAt time.Time
}

// MemorySessionStore keeps sessions in a process-local map. Acceptable here
// because the legacy API has no durability or multi-instance requirement.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
}

func NewMemorySessionStore() *MemorySessionStore {
	s := &MemorySessionStore{sessions: make(map[string]memorySession)}
	go s.cleanup()
	return s
}

func (s *MemorySessionStore) Create(userID int, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = memorySession{userID: userID, expiresAt: time.Now().Add(ttl)}
	s.mu.Unlock()
	return token, nil
}

func (s *MemorySessionStore) Get(token string) (int, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok || time.Now().After(sess.expiresAt) {
		return 0, false
	}
	return sess.userID, true
}

func (s *MemorySessionStore) Delete(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// cleanup drops expired sessions hourly so the map does not grow unbounded.
func (s *MemorySessionStore) cleanup() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		s.mu.Lock()
		for token, sess := range s.sessions {
			if now.After(sess.expiresAt) {
				delete(s.sessions, token)
			}
		}
		s.mu.Unlock()
	}
}
