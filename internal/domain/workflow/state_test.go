package workflow

import "testing"

func TestState_IsTerminal(t *testing.T) {
	tests := []struct {
		state    State
		expected bool
	}{
		{StateSubmitted, false},
		{StateReviewed, false},
		{StateApproved, true},
		{StateRejected, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			if got := tt.state.IsTerminal(); got != tt.expected {
				t.Errorf("State.IsTerminal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		expected bool
	}{
		{"valid state", StateSubmitted, true},
		{"valid state", StateRejected, true},
		{"invalid state", State("Archived"), false},
		{"empty state", State(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.expected {
				t.Errorf("State.IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTriggerFor(t *testing.T) {
	tests := []struct {
		target  State
		trigger Trigger
		ok      bool
	}{
		{StateReviewed, TriggerMarkReviewed, true},
		{StateApproved, TriggerApprove, true},
		{StateRejected, TriggerReject, true},
		{StateSubmitted, "", false},
		{State("Archived"), "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.target), func(t *testing.T) {
			trigger, ok := TriggerFor(tt.target)
			if ok != tt.ok || trigger != tt.trigger {
				t.Errorf("TriggerFor(%s) = (%s, %v), want (%s, %v)", tt.target, trigger, ok, tt.trigger, tt.ok)
			}
		})
	}
}
