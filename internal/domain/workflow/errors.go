package workflow

import "errors"

var (
	// ErrTransitionRejected is returned when a status change is not allowed
	// from the current state.
	ErrTransitionRejected = errors.New("status transition rejected")

	// ErrInvalidState is returned when a state is not a valid report status.
	ErrInvalidState = errors.New("invalid state")

	// ErrGuardFailed is returned when a guard condition blocks a transition.
	ErrGuardFailed = errors.New("guard condition failed")
)
