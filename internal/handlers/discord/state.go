package discord

import (
	"sync"

	"github.com/KirkDiggler/mythweaver/internal/engine"
)

// Sessions tracks each user's active campaign. Actions for one user are
// serialized with a per-user lock; different users never block each other.
type Sessions struct {
	mu     sync.Mutex
	active map[string]*engine.Session
	locks  map[string]*sync.Mutex
}

// NewSessions creates an empty session table
func NewSessions() *Sessions {
	return &Sessions{
		active: make(map[string]*engine.Session),
		locks:  make(map[string]*sync.Mutex),
	}
}

// Lock acquires the user's lock and returns its release
func (s *Sessions) Lock(user string) func() {
	s.mu.Lock()
	l, ok := s.locks[user]
	if !ok {
		l = &sync.Mutex{}
		s.locks[user] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Get returns the user's active session, or nil
func (s *Sessions) Get(user string) *engine.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active[user]
}

// Set makes session the user's active one
func (s *Sessions) Set(user string, session *engine.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[user] = session
}

// Clear drops the user's active session if it is the given campaign
func (s *Sessions) Clear(user, campaignID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.active[user]; ok && cur.Campaign != nil && cur.Campaign.ID == campaignID {
		delete(s.active, user)
	}
}
