package txn

// State describes where a unit of work is in its lifecycle. Transitions:
//
//	Empty → Staged       (first successful StageCreate/StageDelete)
//	Staged → Committing  (Commit invoked)
//	Committing → Empty   (commit succeeded, buffers replaced)
//	Committing → RolledBack (commit failed, compensation ran)
//	RolledBack → Staged  (further staging on the same instance)
type State int

const (
	// StateEmpty is the initial state: nothing staged.
	StateEmpty State = iota

	// StateStaged means at least one create or delete is buffered.
	StateStaged

	// StateCommitting means Commit is flushing the buffers to the backend.
	StateCommitting

	// StateRolledBack means the last commit failed and compensation ran.
	// The instance remains usable for staging; entries whose compensation
	// failed are still buffered.
	StateRolledBack
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "Empty"
	case StateStaged:
		return "Staged"
	case StateCommitting:
		return "Committing"
	case StateRolledBack:
		return "RolledBack"
	default:
		return "Unknown"
	}
}
