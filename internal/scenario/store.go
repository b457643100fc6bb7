package scenario

import "context"

// Store is the durable backend for scenario state and history.
//
// CompareAndSwap is the only write. It must apply the state change and the
// history append atomically and only if the stored (version, state) still
// equals (expectedVersion, from). Implementations never retry.
type Store interface {
	// Load returns the stored snapshot, or ErrScenarioNotFound.
	Load(ctx context.Context, name string) (Snapshot, error)

	// CompareAndSwap commits rec as version expectedVersion+1. rec.Scenario,
	// rec.From and rec.To must be set. A lost race returns a Conflict result
	// and a nil error. A transition id already recorded for the scenario
	// returns ErrDuplicateTransition.
	CompareAndSwap(ctx context.Context, expectedVersion int64, from State, rec TransitionRecord) (CommitResult, error)

	// History returns committed records in commit order. A positive limit
	// keeps only the most recent limit entries.
	History(ctx context.Context, name string, limit int) ([]TransitionRecord, error)

	// FindTransition returns one record by id, or ErrTransitionNotFound.
	FindTransition(ctx context.Context, name, transitionID string) (TransitionRecord, error)

	// List returns the snapshots of every stored scenario, sorted by name.
	List(ctx context.Context, filter ListFilter) ([]Snapshot, error)
}

// tail keeps the last limit records when limit is positive.
func tail(records []TransitionRecord, limit int) []TransitionRecord {
	if limit > 0 && len(records) > limit {
		return records[len(records)-limit:]
	}
	return records
}
