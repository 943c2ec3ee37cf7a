package workflow

// NewReportMachine builds a state machine positioned at the report's current
// status. Approved and Rejected are terminal: neither state configures any
// outgoing transition, so every trigger fired from them fails with
// ErrTransitionRejected regardless of what the interaction layer allowed.
func NewReportMachine(current State) StateMachine {
	b := NewBuilder()

	b.Configure(StateSubmitted).
		Permit(TriggerMarkReviewed, StateReviewed).
		Permit(TriggerApprove, StateApproved).
		Permit(TriggerReject, StateRejected)

	b.Configure(StateReviewed).
		Permit(TriggerApprove, StateApproved).
		Permit(TriggerReject, StateRejected)

	return b.Build(current)
}
