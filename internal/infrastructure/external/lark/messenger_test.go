package lark

import "testing"

func TestReceiveIDType(t *testing.T) {
	tests := []struct {
		recipient string
		want      string
	}{
		{"ou_7d8a6e6df7621556ce0d21922b676706ccs", "open_id"},
		{"foreman@example.com", "email"},
		{"", "email"},
	}

	for _, tt := range tests {
		if got := receiveIDType(tt.recipient); got != tt.want {
			t.Errorf("receiveIDType(%q) = %q, want %q", tt.recipient, got, tt.want)
		}
	}
}
