package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/zeromicro/go-zero/core/logx"
)

// Manager owns the live sessions of the dashboard and expires idle ones.
type Manager struct {
	Cron    *cron.Cron
	IdleTTL time.Duration
	Now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a manager expiring sessions idle for longer than idleTTL.
func NewManager(idleTTL time.Duration) *Manager {
	return &Manager{
		Cron:     cron.New(cron.WithSeconds()),
		IdleTTL:  idleTTL,
		Now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Create starts a new empty session.
func (m *Manager) Create() *Session {
	s := New(uuid.NewString(), m.Now())
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	logx.Infof("session %s started", s.ID)
	return s
}

// Get returns the live session with id and marks it as seen.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if ok {
		s.touch(m.Now())
	}
	return s, ok
}

// GetOrCreate returns the session with id, or a new one when it is unknown or
// expired.
func (m *Manager) GetOrCreate(id string) *Session {
	if id != "" {
		if s, ok := m.Get(id); ok {
			return s
		}
	}
	return m.Create()
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep drops every session idle for longer than IdleTTL and returns how many
// were dropped.
func (m *Manager) Sweep() int {
	if m.IdleTTL <= 0 {
		return 0
	}
	deadline := m.Now().Add(-m.IdleTTL)

	m.mu.Lock()
	defer m.mu.Unlock()
	dropped := 0
	for id, s := range m.sessions {
		if s.LastSeen().Before(deadline) {
			delete(m.sessions, id)
			dropped++
		}
	}
	return dropped
}

// RegisterSweep schedules Sweep with a cron spec such as "@every 1m".
func (m *Manager) RegisterSweep(spec string) error {
	if _, err := m.Cron.AddFunc(spec, func() {
		if n := m.Sweep(); n > 0 {
			logx.Infof("expired %d idle sessions, %d live", n, m.Len())
		}
	}); err != nil {
		return fmt.Errorf("register session sweep: %w", err)
	}
	return nil
}

// Start runs the cron scheduler in the background.
func (m *Manager) Start() {
	m.Cron.Start()
	logx.Info("session sweeper started")
}

// Stop halts the cron scheduler and waits for a running sweep.
func (m *Manager) Stop() {
	ctx := m.Cron.Stop()
	<-ctx.Done()
	logx.Info("session sweeper stopped")
}
