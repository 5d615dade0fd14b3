package services

import "sync"

// SessionState tracks the lifecycle of the authentication session.
type SessionState int

const (
	SessionUninitialized SessionState = iota
	SessionActive
	SessionCleared
)

// Session is the explicit current-user handle. It replaces ambient global
// state: every store is scoped to the user it was opened for, and the session
// only records who that is.
type Session struct {
	mu    sync.RWMutex
	state SessionState
	email string
}

func NewSession() *Session {
	return &Session{state: SessionUninitialized}
}

// Activate binds the session to a user.
func (s *Session) Activate(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = SessionActive
	s.email = email
}

// Clear ends the session without touching any user data.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = SessionCleared
	s.email = ""
}

// Current returns the active user's email, if any.
func (s *Session) Current() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email, s.state == SessionActive
}

func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}
