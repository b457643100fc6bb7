package scenario

import "time"

// State is a position in the scenario lifecycle.
type State string

// Scenario states.
const (
	StateIdle      State = "idle"
	StateWaiting   State = "waiting"
	StateSatisfied State = "satisfied"
	StateAllowed   State = "allowed"
	StateDenied    State = "denied"
	StateCompleted State = "completed"
)

// AllStates lists every state in lifecycle order.
var AllStates = []State{
	StateIdle,
	StateWaiting,
	StateSatisfied,
	StateAllowed,
	StateDenied,
	StateCompleted,
}

// Valid reports whether s is one of the known states.
func (s State) Valid() bool {
	for _, known := range AllStates {
		if s == known {
			return true
		}
	}
	return false
}

func (s State) String() string {
	return string(s)
}

// Snapshot is the current (state, version) of one scenario.
//
// A scenario that has never committed a transition is reported as
// StateIdle at version 0 and has no store entry.
type Snapshot struct {
	Name      string    `json:"name"`
	State     State     `json:"state"`
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Scenario is a snapshot together with its transition history.
// History is in commit order; its last entry's To equals State.
type Scenario struct {
	Snapshot
	History []TransitionRecord `json:"history"`
}

// TransitionRecord is one committed transition. Records are immutable once written.
type TransitionRecord struct {
	TransitionID    string    `json:"transition_id"`
	Scenario        string    `json:"scenario"`
	SourceComponent string    `json:"source_component"`
	From            State     `json:"from_state"`
	To              State     `json:"to_state"`
	Reason          string    `json:"reason,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
	Version         int64     `json:"committed_version"`
}

// Proposal is a request from a collaborator to move a scenario to TargetState.
type Proposal struct {
	// ResourceName is the scenario name.
	ResourceName string `json:"resource_name"`

	// CurrentState is the proposer's belief about the current state.
	// Empty means "not supplied" and skips the stale-view check.
	CurrentState State `json:"current_state,omitempty"`

	TargetState     State  `json:"target_state"`
	SourceComponent string `json:"source_component"`
	Reason          string `json:"reason,omitempty"`

	// TransitionID, when supplied, makes the proposal idempotent: replaying
	// an id that is already in the history returns the original result.
	TransitionID string `json:"transition_id,omitempty"`
}

// TransitionResult is the durable acknowledgment of an accepted proposal.
type TransitionResult struct {
	Scenario     string    `json:"scenario"`
	From         State     `json:"from_state"`
	State        State     `json:"new_state"`
	Version      int64     `json:"version"`
	TransitionID string    `json:"transition_id"`
	CommittedAt  time.Time `json:"committed_at"`

	// Replayed is true when the transition id had already been committed
	// and nothing new was written.
	Replayed bool `json:"replayed,omitempty"`

	// Attempts is the number of compare-and-swap rounds used.
	Attempts int `json:"attempts,omitempty"`
}

// CommitResult is the outcome of a single conditional write.
type CommitResult struct {
	Committed bool

	// Version is the new version when Committed, otherwise the version
	// actually found in the store.
	Version int64

	// State is the new state when Committed, otherwise the state actually
	// found in the store.
	State State
}

// Committed builds the result of a successful conditional write.
func Committed(version int64, state State) CommitResult {
	return CommitResult{Committed: true, Version: version, State: state}
}

// Conflict builds the result of a conditional write that lost to another commit.
func Conflict(actual State, actualVersion int64) CommitResult {
	return CommitResult{Version: actualVersion, State: actual}
}

// ListFilter narrows List results. Zero values match everything.
type ListFilter struct {
	State State
}

// Matches reports whether snap passes the filter.
func (f ListFilter) Matches(snap Snapshot) bool {
	return f.State == "" || snap.State == f.State
}
