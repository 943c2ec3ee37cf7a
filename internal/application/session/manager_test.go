package session

import (
	"errors"
	"testing"

	"github.com/EGUS74/SSS-Construction-Reports/internal/domain/entity"
)

func TestManager_LoginLogout(t *testing.T) {
	m := NewManager()

	if m.Role() != entity.RoleNone {
		t.Errorf("initial role = %s, want none", m.Role())
	}

	if err := m.Login(entity.RoleReviewer); err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if m.Role() != entity.RoleReviewer {
		t.Errorf("role after login = %s, want reviewer", m.Role())
	}

	m.Logout()
	if m.Role() != entity.RoleNone {
		t.Errorf("role after logout = %s, want none", m.Role())
	}
}

func TestManager_LoginRejectsInvalidRoles(t *testing.T) {
	m := NewManager()

	if err := m.Login(entity.RoleNone); err == nil {
		t.Error("Login(none) should fail")
	}
	if err := m.Login(entity.Role("superuser")); err == nil {
		t.Error("Login(superuser) should fail")
	}
}

func TestManager_RequireRole(t *testing.T) {
	m := NewManager()

	// No role yet is a mismatch too.
	if err := m.RequireRole(entity.RoleReviewer); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("RequireRole before login = %v, want ErrUnauthorized", err)
	}

	_ = m.Login(entity.RoleReporter)
	if err := m.RequireRole(entity.RoleReviewer); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("RequireRole(reviewer) as reporter = %v, want ErrUnauthorized", err)
	}
	if err := m.RequireRole(entity.RoleReporter); err != nil {
		t.Errorf("RequireRole(reporter) as reporter = %v, want nil", err)
	}
}

func TestManager_WithBusyResetsOnError(t *testing.T) {
	m := NewManager()
	wantErr := errors.New("save failed")

	var observed bool
	err := m.WithBusy(func() error {
		observed = m.Busy()
		return wantErr
	})

	if !errors.Is(err, wantErr) {
		t.Errorf("WithBusy returned %v, want the callback error", err)
	}
	if !observed {
		t.Error("busy flag should be true inside the action")
	}
	if m.Busy() {
		t.Error("busy flag should be reset after the action fails")
	}
}

func TestManager_WithBusyRejectsConcurrentAction(t *testing.T) {
	m := NewManager()

	err := m.WithBusy(func() error {
		return m.WithBusy(func() error { return nil })
	})

	if !errors.Is(err, ErrBusy) {
		t.Errorf("nested WithBusy = %v, want ErrBusy", err)
	}
	if m.Busy() {
		t.Error("busy flag should be reset after the outer action returns")
	}
}
