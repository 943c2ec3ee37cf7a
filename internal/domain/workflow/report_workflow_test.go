package workflow

import (
	"context"
	"errors"
	"testing"
)

func TestReportMachine_FromSubmitted(t *testing.T) {
	tests := []struct {
		trigger Trigger
		want    State
	}{
		{TriggerMarkReviewed, StateReviewed},
		{TriggerApprove, StateApproved},
		{TriggerReject, StateRejected},
	}

	for _, tt := range tests {
		t.Run(string(tt.trigger), func(t *testing.T) {
			m := NewReportMachine(StateSubmitted)
			if err := m.Fire(context.Background(), tt.trigger); err != nil {
				t.Fatalf("Fire(%s) error: %v", tt.trigger, err)
			}
			if m.State() != tt.want {
				t.Errorf("State() = %s, want %s", m.State(), tt.want)
			}
		})
	}
}

func TestReportMachine_FromReviewed(t *testing.T) {
	m := NewReportMachine(StateReviewed)

	if m.CanFire(TriggerMarkReviewed) {
		t.Error("CanFire(MARK_REVIEWED) should be false for an already reviewed report")
	}
	if !m.CanFire(TriggerApprove) || !m.CanFire(TriggerReject) {
		t.Error("Approve and Reject should be permitted from Reviewed")
	}

	if err := m.Fire(context.Background(), TriggerApprove); err != nil {
		t.Fatalf("Fire(APPROVE) error: %v", err)
	}
	if m.State() != StateApproved {
		t.Errorf("State() = %s, want %s", m.State(), StateApproved)
	}
}

func TestReportMachine_TerminalStatesRejectEverything(t *testing.T) {
	for _, terminal := range []State{StateApproved, StateRejected} {
		for _, trigger := range []Trigger{TriggerMarkReviewed, TriggerApprove, TriggerReject} {
			m := NewReportMachine(terminal)
			if m.CanFire(trigger) {
				t.Errorf("CanFire(%s) from %s should be false", trigger, terminal)
			}
			err := m.Fire(context.Background(), trigger)
			if !errors.Is(err, ErrTransitionRejected) {
				t.Errorf("Fire(%s) from %s = %v, want ErrTransitionRejected", trigger, terminal, err)
			}
			if m.State() != terminal {
				t.Errorf("terminal state mutated to %s", m.State())
			}
		}
	}
}

func TestReportMachine_PermittedTriggers(t *testing.T) {
	m := NewReportMachine(StateSubmitted)
	if got := len(m.PermittedTriggers()); got != 3 {
		t.Errorf("PermittedTriggers() from Submitted = %d triggers, want 3", got)
	}

	m = NewReportMachine(StateApproved)
	if got := len(m.PermittedTriggers()); got != 0 {
		t.Errorf("PermittedTriggers() from Approved = %d triggers, want 0", got)
	}
}
