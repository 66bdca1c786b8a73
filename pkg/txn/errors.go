package txn

import (
	"errors"
	"fmt"
)

// Standard staging errors. Callers should check for these with errors.Is;
// both are recoverable (pick another name, or stage a delete first).
var (
	// ErrAlreadyExists indicates a create was staged for a name that is
	// already durable in the backend.
	ErrAlreadyExists = errors.New("name already exists in backend")

	// ErrNotFound indicates a delete was staged for a name that neither
	// exists in the backend nor is pending-create.
	ErrNotFound = errors.New("name not found in backend")

	// ErrCommitInProgress indicates a staging or commit call overlapped a
	// running commit on the same unit of work. Staging and commit must be
	// serialized by the caller; this error surfaces a discipline violation
	// instead of corrupting the buffers.
	ErrCommitInProgress = errors.New("commit in progress")
)

// StageError wraps a staging failure with the operation and name involved.
//
// Unwrap returns the underlying cause, so errors.Is(err, ErrAlreadyExists)
// and errors.Is(err, ErrNotFound) match through the wrapper, as does any
// backend error surfaced by the existence or read check.
type StageError struct {
	// Op is "stage-create" or "stage-delete".
	Op string

	// Name is the entry name being staged.
	Name string

	// Err is the underlying cause.
	Err error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Op, e.Name, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// CommitError reports a failed commit. It identifies the phase and entry
// name where the first backend failure occurred, wraps that failure, and
// carries any compensation failures collected during rollback.
//
// Unwrap returns the triggering backend error, so the caller observes
// exactly the first failure encountered via errors.Is / errors.As.
type CommitError struct {
	// Phase is the commit phase that failed, "create" or "delete".
	Phase string

	// Name is the entry whose backend operation failed.
	Name string

	// Err is the backend failure that triggered rollback.
	Err error

	// Compensation holds rollback failures (*CompensationError values),
	// in the order they occurred. Empty when rollback fully succeeded.
	// Entries listed here remain unresolved in the backend and may need
	// manual repair.
	Compensation []error
}

func (e *CommitError) Error() string {
	if len(e.Compensation) == 0 {
		return fmt.Sprintf("commit failed in %s phase at %q: %s (rolled back)", e.Phase, e.Name, e.Err)
	}
	return fmt.Sprintf("commit failed in %s phase at %q: %s (%d compensation failures)",
		e.Phase, e.Name, e.Err, len(e.Compensation))
}

func (e *CommitError) Unwrap() error {
	return e.Err
}

// CompensationError reports a single failed compensating operation during
// rollback. It is never returned alone; it travels inside
// CommitError.Compensation.
type CompensationError struct {
	// Op is the compensating action that failed: "undo-create" (delete of
	// a written entry) or "undo-delete" (re-write of captured content).
	Op string

	// Name is the entry the compensation targeted.
	Name string

	// Err is the backend failure.
	Err error
}

func (e *CompensationError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Op, e.Name, e.Err)
}

func (e *CompensationError) Unwrap() error {
	return e.Err
}
