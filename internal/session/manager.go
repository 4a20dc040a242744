package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skbags/storefront/internal/cart"
	"github.com/skbags/storefront/internal/checkout"
	"github.com/skbags/storefront/pkg/config"
	"github.com/skbags/storefront/pkg/logger"
)

// Session is one shopper's server-side state: their cart, their checkout form
// and their submission guard. Nothing in it survives the TTL.
type Session struct {
	ID        string
	Cart      *cart.Store
	Form      *checkout.Form
	Submitter *checkout.Submitter

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) expired(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen) > ttl
}

// SubmitterFactory builds the per-session submitter. Each session gets its
// own so the in-flight guard is scoped to one shopper.
type SubmitterFactory func() *checkout.Submitter

// Manager owns all live sessions and evicts idle ones.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	ttl       time.Duration
	sweep     time.Duration
	submitter SubmitterFactory
	logg      *logger.Logger
}

func NewManager(cfg config.SessionConfig, submitter SubmitterFactory, logg *logger.Logger) *Manager {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	sweep := cfg.SweepInterval
	if sweep <= 0 {
		sweep = 10 * time.Minute
	}
	return &Manager{
		sessions:  make(map[string]*Session),
		ttl:       ttl,
		sweep:     sweep,
		submitter: submitter,
		logg:      logg,
	}
}

// GetOrCreate returns the session for the given id, creating a fresh one when
// the id is empty, unknown or expired. The second return reports whether a
// new session was created (so the caller can set the cookie).
func (m *Manager) GetOrCreate(id string) (*Session, bool) {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if id != "" {
		if existing, ok := m.sessions[id]; ok && !existing.expired(now, m.ttl) {
			existing.touch(now)
			return existing, false
		}
	}

	created := &Session{
		ID:        uuid.NewString(),
		Cart:      cart.NewStore(),
		Form:      checkout.NewForm(),
		Submitter: m.submitter(),
		lastSeen:  now,
	}
	m.sessions[created.ID] = created
	return created, true
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Run sweeps expired sessions until the context is cancelled.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.sweep)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := m.evictExpired(time.Now())
			if removed > 0 && m.logg != nil {
				m.logg.Info(m.logg.WithField(ctx, "evicted", removed), "swept idle sessions")
			}
		}
	}
}

func (m *Manager) evictExpired(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, sess := range m.sessions {
		if sess.expired(now, m.ttl) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}
