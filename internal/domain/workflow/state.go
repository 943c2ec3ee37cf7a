package workflow

// State represents a report's position in the review lifecycle. The string
// values are the wire format used by routes, storage and views.
type State string

const (
	StateSubmitted State = "Submitted"
	StateReviewed  State = "Reviewed"
	StateApproved  State = "Approved"
	StateRejected  State = "Rejected"
)

var validStates = map[State]bool{
	StateSubmitted: true,
	StateReviewed:  true,
	StateApproved:  true,
	StateRejected:  true,
}

var terminalStates = map[State]bool{
	StateApproved: true,
	StateRejected: true,
}

// IsTerminal returns true if the state admits no further status transition.
func (s State) IsTerminal() bool {
	return terminalStates[s]
}

// IsValid returns true if the state is a valid report status.
func (s State) IsValid() bool {
	return validStates[s]
}

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}
