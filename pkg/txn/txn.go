// Package txn implements a transactional unit of work over a blob.Store.
//
// A UnitOfWork buffers create and delete operations in memory (staging) and
// applies them to the backend at a single commit point. If any backend call
// fails partway through a commit, the unit of work runs compensating inverse
// operations (deleting creates that reached the backend, re-writing deletes
// from content captured at staging time) and returns the original failure
// together with any compensation failures.
//
// A UnitOfWork is not safe for concurrent use. Staging and commit must be
// serialized by the caller; one instance serves one logical batch. The
// backend itself may be shared by unrelated units of work, with no
// cross-instance isolation: overlapping names interleave with no ordering
// guarantee, and rollback of one unit may undo work staged by another.
package txn

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/marmos91/txfs/internal/logger"
	"github.com/marmos91/txfs/pkg/blob"
)

// Metrics records commit and rollback outcomes. A nil Metrics disables
// recording with zero overhead.
type Metrics interface {
	// RecordCommit is called once per Commit with the staged operation
	// counts, the total duration, and the outcome (nil on success).
	RecordCommit(creates, deletes int, duration time.Duration, err error)

	// RecordRollback is called after compensation with the number of
	// entries successfully compensated and the number that failed.
	RecordRollback(compensated, failed int)
}

// UnitOfWork buffers pending creates and deletes against a single backend.
//
// The zero value is not usable; construct with New.
type UnitOfWork struct {
	id      string
	store   blob.Store
	metrics Metrics

	state   State
	creates *buffer // name → staged content
	deletes *buffer // name → content captured from the backend at staging time
}

// New creates a unit of work against the given backend. The backend is an
// injected, shared dependency; the unit of work never closes it.
func New(store blob.Store) *UnitOfWork {
	return NewWithMetrics(store, nil)
}

// NewWithMetrics creates a unit of work that reports commit and rollback
// outcomes to m. A nil m is equivalent to New.
func NewWithMetrics(store blob.Store, m Metrics) *UnitOfWork {
	return &UnitOfWork{
		id:      uuid.NewString(),
		store:   store,
		metrics: m,
		state:   StateEmpty,
		creates: newBuffer(),
		deletes: newBuffer(),
	}
}

// ID returns the correlation identifier of this unit of work.
func (u *UnitOfWork) ID() string {
	return u.id
}

// State returns the current lifecycle state.
func (u *UnitOfWork) State() State {
	return u.state
}

// PendingCreates returns the names staged for creation, in staging order.
func (u *UnitOfWork) PendingCreates() []string {
	return u.creates.names()
}

// PendingDeletes returns the names staged for deletion, in staging order.
func (u *UnitOfWork) PendingDeletes() []string {
	return u.deletes.names()
}

// StageCreate records an intended create. No backend mutation occurs.
//
// It fails with ErrAlreadyExists (wrapped in a StageError) when the backend
// already holds the name durably. A create already staged in the same batch
// is not a conflict: re-staging the same name overwrites the earlier pending
// content, keeping its original position in the apply order.
func (u *UnitOfWork) StageCreate(ctx context.Context, name string, content []byte) error {
	if u.state == StateCommitting {
		return &StageError{Op: "stage-create", Name: name, Err: ErrCommitInProgress}
	}

	exists, err := u.store.Exists(ctx, name)
	if err != nil {
		return &StageError{Op: "stage-create", Name: name, Err: err}
	}
	if exists {
		return &StageError{Op: "stage-create", Name: name, Err: ErrAlreadyExists}
	}

	u.creates.put(name, content)
	u.state = StateStaged

	logger.Debug("staged create",
		"txn_id", u.id, "name", name, "size", len(content),
		"pending_creates", u.creates.len())
	return nil
}

// StageDelete records an intended delete. No backend mutation occurs.
//
// If the name is currently pending-create, the staged create is cancelled
// with no backend interaction at all; the name is simply dropped from the
// batch. Otherwise the current content is read back and captured so rollback
// can restore it; an absent name fails with ErrNotFound.
func (u *UnitOfWork) StageDelete(ctx context.Context, name string) error {
	if u.state == StateCommitting {
		return &StageError{Op: "stage-delete", Name: name, Err: ErrCommitInProgress}
	}

	if u.creates.has(name) {
		u.creates.remove(name)
		u.state = StateStaged
		logger.Debug("cancelled pending create", "txn_id", u.id, "name", name)
		return nil
	}

	content, err := u.store.TryRead(ctx, name)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return &StageError{Op: "stage-delete", Name: name, Err: ErrNotFound}
		}
		return &StageError{Op: "stage-delete", Name: name, Err: err}
	}

	u.deletes.put(name, content)
	u.state = StateStaged

	logger.Debug("staged delete",
		"txn_id", u.id, "name", name, "captured_size", len(content),
		"pending_deletes", u.deletes.len())
	return nil
}

// Commit flushes the buffers to the backend: all pending creates first, then
// all pending deletes, each in staging order, stopping at the first failure.
//
// On success the buffers are replaced with fresh empty ones and the unit of
// work returns to the Empty state; committing with empty buffers is a no-op.
// On failure Commit runs rollback and returns a *CommitError identifying the
// failing phase and name, wrapping the backend error, and carrying any
// compensation failures. After a failed commit the buffers hold only entries
// whose compensation failed; see rollback for the policy.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.state == StateCommitting {
		return ErrCommitInProgress
	}

	start := time.Now()
	u.state = StateCommitting

	// Phase 1: apply creates.
	for _, name := range u.creates.names() {
		content, _ := u.creates.get(name)
		if err := u.store.Write(ctx, name, content); err != nil {
			return u.rollback(ctx, "create", name, err, nil, start)
		}
	}

	// Phase 2: apply deletes, tracking which ones reached the backend so
	// rollback restores exactly those. The delete that fails has not
	// mutated the backend and must not be resurrected.
	applied := make([]string, 0, u.deletes.len())
	for _, name := range u.deletes.names() {
		if err := u.store.Delete(ctx, name); err != nil {
			return u.rollback(ctx, "delete", name, err, applied, start)
		}
		applied = append(applied, name)
	}

	created, deleted := u.creates.len(), u.deletes.len()
	u.creates, u.deletes = newBuffer(), newBuffer()
	u.state = StateEmpty

	if u.metrics != nil {
		u.metrics.RecordCommit(created, deleted, time.Since(start), nil)
	}
	logger.Debug("commit applied",
		"txn_id", u.id, "creates", created, "deletes", deleted,
		"duration_ms", logger.Duration(start))
	return nil
}

// Reset discards all buffered state and returns the unit of work to Empty.
// Intended for reusing an instance after a failed commit left unresolved
// entries behind.
func (u *UnitOfWork) Reset() {
	u.creates = newBuffer()
	u.deletes = newBuffer()
	u.state = StateEmpty
}

// rollback restores the backend to its pre-commit state, best effort:
//
//   - every staged create still present in the backend is deleted (the
//     inverse of Write); creates that never reached the backend need nothing
//   - every applied delete is re-written from the content captured at
//     staging time (the inverse of Delete), unless something already exists
//     under that name again
//
// Compensation failures are collected on the returned CommitError, never
// swallowed. Buffers are replaced so that only entries whose compensation
// failed remain staged; those mark backend state needing manual repair.
// Entries fully compensated, and entries the failed commit never applied,
// are dropped: the batch is dead and the caller restages if it wants to
// retry. This resolves the reuse ambiguity in favor of a clean instance.
func (u *UnitOfWork) rollback(ctx context.Context, phase, failName string, cause error, appliedDeletes []string, start time.Time) error {
	commitErr := &CommitError{Phase: phase, Name: failName, Err: cause}
	stagedCreates, stagedDeletes := u.creates.len(), u.deletes.len()

	logger.Warn("commit failed, rolling back",
		"txn_id", u.id, "phase", phase, "name", failName, "error", cause)

	remainingCreates := newBuffer()
	remainingDeletes := newBuffer()
	compensated := 0

	for _, name := range u.creates.names() {
		exists, err := u.store.Exists(ctx, name)
		if err != nil {
			content, _ := u.creates.get(name)
			remainingCreates.put(name, content)
			commitErr.Compensation = append(commitErr.Compensation,
				&CompensationError{Op: "undo-create", Name: name, Err: err})
			continue
		}
		if !exists {
			// Never reached the backend; nothing to undo.
			continue
		}
		if err := u.store.Delete(ctx, name); err != nil {
			content, _ := u.creates.get(name)
			remainingCreates.put(name, content)
			commitErr.Compensation = append(commitErr.Compensation,
				&CompensationError{Op: "undo-create", Name: name, Err: err})
			logger.Error("compensation failed",
				"txn_id", u.id, "op", "undo-create", "name", name, "error", err)
			continue
		}
		compensated++
	}

	for _, name := range appliedDeletes {
		content, _ := u.deletes.get(name)

		exists, err := u.store.Exists(ctx, name)
		if err != nil {
			remainingDeletes.put(name, content)
			commitErr.Compensation = append(commitErr.Compensation,
				&CompensationError{Op: "undo-delete", Name: name, Err: err})
			continue
		}
		if exists {
			// Something re-appeared under this name; leave it alone.
			compensated++
			continue
		}
		if err := u.store.Write(ctx, name, content); err != nil {
			remainingDeletes.put(name, content)
			commitErr.Compensation = append(commitErr.Compensation,
				&CompensationError{Op: "undo-delete", Name: name, Err: err})
			logger.Error("compensation failed",
				"txn_id", u.id, "op", "undo-delete", "name", name, "error", err)
			continue
		}
		compensated++
	}

	u.creates = remainingCreates
	u.deletes = remainingDeletes
	u.state = StateRolledBack

	failed := len(commitErr.Compensation)
	if u.metrics != nil {
		u.metrics.RecordCommit(stagedCreates, stagedDeletes, time.Since(start), commitErr)
		u.metrics.RecordRollback(compensated, failed)
	}
	logger.Warn("rollback finished",
		"txn_id", u.id, "compensated", compensated, "failed", failed)

	return commitErr
}
