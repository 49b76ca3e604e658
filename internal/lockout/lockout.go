// Package lockout throttles repeated sign-in failures per identifier. Pure
// in-process state: counts reset on restart, which is acceptable for a
// best-effort brake on credential guessing.
package lockout

import (
	"sync"
	"time"
)

// Defaults chosen to slow guessing without locking out a fumbled password.
const (
	DefaultMaxFailures = 5
	DefaultWindow      = 15 * time.Minute
)

type record struct {
	failures    int
	firstFailed time.Time
}

// Service tracks failed sign-in attempts keyed by identifier (normalized
// email).
type Service struct {
	mu          sync.Mutex
	records     map[string]record
	maxFailures int
	window      time.Duration
	now         func() time.Time
}

type Option func(*Service)

// WithLimits overrides the failure threshold and window.
func WithLimits(maxFailures int, window time.Duration) Option {
	return func(s *Service) {
		s.maxFailures = maxFailures
		s.window = window
	}
}

// WithClock injects a time source for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(opts ...Option) *Service {
	s := &Service{
		records:     make(map[string]record),
		maxFailures: DefaultMaxFailures,
		window:      DefaultWindow,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsLocked reports whether the identifier has exceeded the allowed failures
// within the current window.
func (s *Service) IsLocked(identifier string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[identifier]
	if !ok {
		return false
	}
	if s.now().Sub(rec.firstFailed) > s.window {
		delete(s.records, identifier)
		return false
	}
	return rec.failures >= s.maxFailures
}

// RecordFailure counts one failed attempt.
func (s *Service) RecordFailure(identifier string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	rec, ok := s.records[identifier]
	if !ok || now.Sub(rec.firstFailed) > s.window {
		s.records[identifier] = record{failures: 1, firstFailed: now}
		return
	}
	rec.failures++
	s.records[identifier] = rec
}

// Clear forgets the identifier after a successful sign-in.
func (s *Service) Clear(identifier string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, identifier)
}
