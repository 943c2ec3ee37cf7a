// Package session holds the process-local viewer state: the active role and
// the busy/offline UI flags. Nothing here is persisted and nothing here is a
// security boundary; the role gate is advisory only.
package session

import (
	"errors"
	"sync"

	"github.com/EGUS74/SSS-Construction-Reports/internal/domain/entity"
)

// ErrUnauthorized is returned when the active role does not match a view's
// required role. Callers redirect to the neutral entry point rather than
// surfacing it to the user.
var ErrUnauthorized = errors.New("unauthorized for this view")

// ErrBusy is returned when a mutating action is requested while another is
// still in flight. There is no operation queue.
var ErrBusy = errors.New("another action is in flight")

// Manager owns the single process-wide session. Consumers receive it as an
// explicit dependency rather than reaching for ambient global state.
type Manager struct {
	mu      sync.RWMutex
	role    entity.Role
	busy    bool
	offline bool
}

// NewManager creates a session initialized to no role with both flags clear.
func NewManager() *Manager {
	return &Manager{role: entity.RoleNone}
}

// Login sets the active role. There is no credential check; the role is a
// client-side assertion.
func (m *Manager) Login(role entity.Role) error {
	if !role.IsValid() || role == entity.RoleNone {
		return errors.New("invalid role")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.role = role
	return nil
}

// Logout resets the session to no role.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.role = entity.RoleNone
}

// Role returns the active role.
func (m *Manager) Role() entity.Role {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.role
}

// RequireRole compares the active role against a view's required role.
// A mismatch, including "no role yet", yields ErrUnauthorized.
func (m *Manager) RequireRole(required entity.Role) error {
	if m.Role() != required {
		return ErrUnauthorized
	}
	return nil
}

// Busy reports whether a mutating action is in flight.
func (m *Manager) Busy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.busy
}

// WithBusy runs fn with the busy flag held. The flag is a scoped
// acquisition: it is reset on every exit path, including errors and panics.
// A second action while one is in flight fails with ErrBusy.
func (m *Manager) WithBusy(fn func() error) error {
	m.mu.Lock()
	if m.busy {
		m.mu.Unlock()
		return ErrBusy
	}
	m.busy = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.busy = false
		m.mu.Unlock()
	}()

	return fn()
}

// SetOffline sets the connectivity display flag. Cosmetic only.
func (m *Manager) SetOffline(offline bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offline = offline
}

// Offline returns the connectivity display flag.
func (m *Manager) Offline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.offline
}

// Snapshot returns a copy of the current session state.
func (m *Manager) Snapshot() entity.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return entity.Session{Role: m.role, Busy: m.busy, Offline: m.offline}
}
