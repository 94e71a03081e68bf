package lock

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// epoch is the reference time before any successful unlock, so that a
// configured lock is always required at least once per process.
var epoch = time.Unix(0, 0).UTC()

// Session is the volatile record of the last successful authentication.
// It is never persisted: a restart always requires re-authentication.
type Session struct {
	mu       sync.RWMutex
	lastAuth time.Time
	id       string
}

func NewSession() *Session {
	return &Session{lastAuth: epoch}
}

// Mark records a successful authentication at t and returns the new session ID.
func (s *Session) Mark(t time.Time) string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAuth = t
	s.id = id
	return id
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAuth = epoch
	s.id = ""
}

func (s *Session) LastAuthTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastAuth
}

// ID is empty until the first successful authentication.
func (s *Session) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}
