// Package session holds the per-user dashboard state. A Session is created at
// session start, owns its asset registry, and is dropped when it expires.
package session

import (
	"sync"
	"time"

	"AssetWatch/internal/registry"
)

// FlashLevel classifies the inline message shown after an add attempt.
type FlashLevel string

const (
	FlashSuccess FlashLevel = "success"
	FlashWarning FlashLevel = "warning"
)

// Flash is a one-shot message displayed on the next render pass.
type Flash struct {
	Level   FlashLevel
	Message string
}

// Session is the explicit state of one interactive dashboard session.
type Session struct {
	ID        string
	Registry  *registry.Registry
	CreatedAt time.Time

	mu    sync.Mutex // serializes render passes
	flash *Flash

	seenMu   sync.Mutex
	lastSeen time.Time
}

// New returns an empty session created at now.
func New(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		Registry:  registry.New(),
		CreatedAt: now,
		lastSeen:  now,
	}
}

// Do runs fn as one render pass; passes of the same session never overlap.
func (s *Session) Do(fn func(s *Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s)
}

// SetFlash stores the message for the next render pass. Call it inside Do.
func (s *Session) SetFlash(level FlashLevel, msg string) {
	s.flash = &Flash{Level: level, Message: msg}
}

// TakeFlash returns and clears the pending message. Call it inside Do.
func (s *Session) TakeFlash() *Flash {
	f := s.flash
	s.flash = nil
	return f
}

func (s *Session) touch(now time.Time) {
	s.seenMu.Lock()
	s.lastSeen = now
	s.seenMu.Unlock()
}

// LastSeen returns the last time the session was looked up.
func (s *Session) LastSeen() time.Time {
	s.seenMu.Lock()
	defer s.seenMu.Unlock()
	return s.lastSeen
}
