package workflow

// Trigger represents a reviewer action that can cause a status transition.
type Trigger string

const (
	TriggerMarkReviewed Trigger = "MARK_REVIEWED"
	TriggerApprove      Trigger = "APPROVE"
	TriggerReject       Trigger = "REJECT"
)

// String returns the string representation of the trigger.
func (t Trigger) String() string {
	return string(t)
}

// TriggerFor maps a requested target status to the trigger that produces it.
// The second return value is false when no reviewer action leads to the
// requested status (e.g. Submitted is never a target).
func TriggerFor(target State) (Trigger, bool) {
	switch target {
	case StateReviewed:
		return TriggerMarkReviewed, true
	case StateApproved:
		return TriggerApprove, true
	case StateRejected:
		return TriggerReject, true
	default:
		return "", false
	}
}
