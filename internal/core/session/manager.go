// Package session owns the lifecycle of signed-in sessions and fans session
// changes out to subscribers. The manager is created once at the application
// root and passed explicitly to whatever needs it.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
	"github.com/sitecrew/workforce-scheduler/internal/core/ports"
)

const defaultTTL = 24 * time.Hour

// EventType says what happened to a session.
type EventType string

const (
	SignedIn  EventType = "signed_in"
	SignedOut EventType = "signed_out"
	// Refreshed fires when the user behind a session changed (role,
	// presence, names) and the session was updated to match.
	Refreshed EventType = "refreshed"
)

// Event is delivered to every subscriber, synchronously and in subscription
// order. Listeners must not call back into Subscribe or the unsubscribe func.
type Event struct {
	Type    EventType
	Session domain.Session
	User    *domain.User
}

type Listener func(Event)

// Manager opens, looks up and closes sessions.
type Manager struct {
	store ports.SessionStore
	ttl   time.Duration
	now   func() time.Time
	log   zerolog.Logger

	mu        sync.RWMutex
	nextID    uint64
	listeners map[uint64]Listener
	order     []uint64
}

func NewManager(store ports.SessionStore, ttl time.Duration, log zerolog.Logger) *Manager {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Manager{
		store:     store,
		ttl:       ttl,
		now:       func() time.Time { return time.Now().UTC() },
		log:       log,
		listeners: make(map[uint64]Listener),
	}
}

// Subscribe registers l and returns the func that removes it. Calling the
// returned func more than once is harmless.
func (m *Manager) Subscribe(l Listener) (unsubscribe func()) {
	m.mu.Lock()
	m.nextID++
	id := m.nextID
	m.listeners[id] = l
	m.order = append(m.order, id)
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(m.listeners, id)
			for i, v := range m.order {
				if v == id {
					m.order = append(m.order[:i], m.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Subscribers returns the number of live subscriptions.
func (m *Manager) Subscribers() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.listeners)
}

// Open starts a session for user.
func (m *Manager) Open(ctx context.Context, user domain.User) (domain.Session, error) {
	now := m.now()
	s := domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Role:      user.Role,
		IssuedAt:  now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Save(ctx, s, m.ttl); err != nil {
		return domain.Session{}, fmt.Errorf("open session: %w", err)
	}

	m.publish(Event{Type: SignedIn, Session: s, User: &user})
	return s, nil
}

// Lookup returns the live session id, or domain.ErrSessionNotFound.
func (m *Manager) Lookup(ctx context.Context, id string) (*domain.Session, error) {
	s, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.ExpiresAt.IsZero() && !m.now().Before(s.ExpiresAt) {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

// Close ends the session id.
func (m *Manager) Close(ctx context.Context, id string) error {
	s, err := m.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := m.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("close session: %w", err)
	}

	m.publish(Event{Type: SignedOut, Session: *s})
	return nil
}

// Refresh rewrites every live session of user so they carry its current role.
func (m *Manager) Refresh(ctx context.Context, user domain.User) error {
	sessions, err := m.store.ListByUser(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("refresh sessions: %w", err)
	}

	now := m.now()
	for _, s := range sessions {
		remaining := s.ExpiresAt.Sub(now)
		if remaining <= 0 {
			continue
		}
		s.Role = user.Role
		if err := m.store.Save(ctx, s, remaining); err != nil {
			return fmt.Errorf("refresh session %s: %w", s.ID, err)
		}
		m.publish(Event{Type: Refreshed, Session: s, User: &user})
	}
	return nil
}

// Revoke closes every session of userID.
func (m *Manager) Revoke(ctx context.Context, userID string) error {
	sessions, err := m.store.ListByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	if err := m.store.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	for _, s := range sessions {
		m.publish(Event{Type: SignedOut, Session: s})
	}
	return nil
}

func (m *Manager) publish(ev Event) {
	m.mu.RLock()
	ls := make([]Listener, 0, len(m.order))
	for _, id := range m.order {
		ls = append(ls, m.listeners[id])
	}
	m.mu.RUnlock()

	for _, l := range ls {
		l(ev)
	}
	m.log.Debug().
		Str("event", string(ev.Type)).
		Str("session_id", ev.Session.ID).
		Str("user_id", ev.Session.UserID).
		Int("listeners", len(ls)).
		Msg("session event")
}
