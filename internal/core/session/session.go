// Package session holds the resolved identity and profile behind a
// login. A Manager is constructed once and injected; its snapshot starts
// in the loading state, is populated by Load, re-read by Refresh, and
// torn down by Clear. Consumers observe changes through Subscribe.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/Karthikeya277/robot-lab-pass/internal/core/domain"
	"github.com/Karthikeya277/robot-lab-pass/internal/core/guard"
	"github.com/Karthikeya277/robot-lab-pass/internal/core/ports"
)

// Snapshot is one consistent view of the session state.
type Snapshot struct {
	Identity *domain.Identity
	Profile  *domain.Profile
	Loading  bool
}

// Manager resolves and holds session state. Safe for concurrent use.
type Manager struct {
	identities ports.IdentityRepository
	profiles   ports.ProfileRepository

	mu        sync.RWMutex
	snap      Snapshot
	listeners map[int]func(Snapshot)
	nextID    int
}

func NewManager(identities ports.IdentityRepository, profiles ports.ProfileRepository) *Manager {
	return &Manager{
		identities: identities,
		profiles:   profiles,
		snap:       Snapshot{Loading: true},
		listeners:  make(map[int]func(Snapshot)),
	}
}

// Resolve looks up the identity and profile for a user id without
// touching the manager's own state. A missing profile is not an error:
// the snapshot simply has Profile nil, which the route guard turns into
// a complete-profile redirect.
func (m *Manager) Resolve(ctx context.Context, userID string) (Snapshot, error) {
	identity, err := m.identities.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return Snapshot{}, nil
		}
		return Snapshot{Loading: true}, err
	}

	snap := Snapshot{Identity: identity}
	profile, err := m.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return snap, nil
		}
		return Snapshot{Loading: true}, err
	}
	snap.Profile = profile
	return snap, nil
}

// Load resolves the user's session and stores it as the current state.
func (m *Manager) Load(ctx context.Context, userID string) (Snapshot, error) {
	snap, err := m.Resolve(ctx, userID)
	if err != nil {
		return snap, err
	}
	m.set(snap)
	return snap, nil
}

// Refresh re-resolves the currently loaded identity. No-op when nothing
// is loaded.
func (m *Manager) Refresh(ctx context.Context) (Snapshot, error) {
	m.mu.RLock()
	identity := m.snap.Identity
	m.mu.RUnlock()

	if identity == nil {
		return m.Current(), nil
	}
	return m.Load(ctx, identity.ID)
}

// Clear tears the session down, returning to the signed-out state.
func (m *Manager) Clear() {
	m.set(Snapshot{})
}

// Current returns the current snapshot.
func (m *Manager) Current() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap
}

// Subscribe registers a callback invoked on every state change. The
// returned function unsubscribes.
func (m *Manager) Subscribe(fn func(Snapshot)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

// GuardState converts a snapshot into the route guard's input.
func (s Snapshot) GuardState(allowed []domain.Role) guard.State {
	state := guard.State{
		Loading:      s.Loading,
		HasIdentity:  s.Identity != nil,
		HasProfile:   s.Profile != nil,
		AllowedRoles: allowed,
	}
	if s.Profile != nil {
		state.Role = s.Profile.Role
	}
	return state
}

func (m *Manager) set(snap Snapshot) {
	m.mu.Lock()
	m.snap = snap
	fns := make([]func(Snapshot), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
