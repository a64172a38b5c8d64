package workflow

import (
	"errors"
	"fmt"
)

var (
	// ErrWorkflowNotFound means no approval chain exists for the document.
	ErrWorkflowNotFound = errors.New("workflow not available for this document")

	// ErrWorkflowExists means the document was already submitted for review.
	ErrWorkflowExists = errors.New("document already has an approval workflow")

	// ErrInvalidStep means the targeted step is not pending or in progress.
	// The caller must reload before retrying.
	ErrInvalidStep = errors.New("approval step is not awaiting action")

	// ErrNoPendingApproval means the acting user has no actionable step on the
	// document. This is an authorization state, not a transient fault.
	ErrNoPendingApproval = errors.New("no pending approval step found for this document")

	// ErrNotAssigned means the active step exists but is assigned to someone else.
	ErrNotAssigned = errors.New("approval step is not assigned to this user")
)

// TransportError wraps a backend/network failure. Callers decide whether to
// retry; nothing in this package retries automatically.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("workflow backend %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func transportErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &TransportError{Op: op, Err: err}
}
