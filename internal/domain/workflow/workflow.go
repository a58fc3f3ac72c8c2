package workflow

import (
	"errors"
	"strings"
)

var (
	ErrGuardFailed       = errors.New("request does not satisfy the preconditions")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrReasonRequired    = errors.New("a reason is required")
	ErrForbidden         = errors.New("actor is not allowed to perform this action")
)

// GuardError lists every precondition a request failed. Nothing is saved when
// a guard fails.
type GuardError struct {
	Violations []string
}

func (e *GuardError) Error() string {
	return ErrGuardFailed.Error() + ": " + strings.Join(e.Violations, "; ")
}

func (e *GuardError) Unwrap() error { return ErrGuardFailed }

// Check returns a *GuardError when violations is non-empty, nil otherwise.
func Check(violations []string) error {
	if len(violations) == 0 {
		return nil
	}
	return &GuardError{Violations: violations}
}

// RequireReason trims reason and rejects it when empty.
func RequireReason(reason string) (string, error) {
	r := strings.TrimSpace(reason)
	if r == "" {
		return "", ErrReasonRequired
	}
	return r, nil
}

// Action names a user-triggered transition. They double as history actions
// and as keys of the reconciliation table.
type Action string

const (
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionSubmit   Action = "submit"
	ActionApprove  Action = "approve"
	ActionRevision Action = "request_revision"
	ActionReject   Action = "reject"
	ActionPay      Action = "pay"
	ActionCancel   Action = "cancel"
	ActionDelete   Action = "delete"
	ActionStage    Action = "update_stage"
)
