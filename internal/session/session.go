// Package session serializes access to one favorites.Service so concurrent
// HTTP requests behave like the single control flow the service expects.
package session

import (
	"sync"

	"ghfavorites/internal/favorites"
)

// Session owns a Service and the lock guarding it.
type Session struct {
	mu  sync.Mutex
	svc *favorites.Service
}

// New wraps svc. svc must not be used directly afterwards.
func New(svc *favorites.Service) *Session {
	return &Session{svc: svc}
}

// Do runs fn with exclusive access to the service. A resolve holds the lock
// for the whole upstream call, so a second request waits instead of racing.
func (s *Session) Do(fn func(svc *favorites.Service) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.svc)
}

// Run is Do for callers that cannot fail.
func (s *Session) Run(fn func(svc *favorites.Service)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.svc)
}

// Count returns the number of stored favorites. Safe for metrics scrapes.
func (s *Session) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.svc.Len()
}
