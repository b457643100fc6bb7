package scenario

import (
	"context"
	"errors"
	"fmt"
)

// Domain errors for the scenario package.
//
// Check them with errors.Is:
//
//	if errors.Is(err, scenario.ErrInvalidTransition) {
//	    // permanent, do not retry
//	}
var (
	// ErrInvalidTransition is returned when the target is not reachable from
	// the current state. Permanent.
	ErrInvalidTransition = errors.New("scenario: invalid transition")

	// ErrStaleProposal is returned when the proposer's current_state does not
	// match the stored state. Retry after refreshing.
	ErrStaleProposal = errors.New("scenario: stale proposal")

	// ErrContention is returned after the coordinator lost every
	// compare-and-swap round it was allowed.
	ErrContention = errors.New("scenario: contention")

	// ErrStoreUnavailable wraps any backend failure. The transition was not committed.
	ErrStoreUnavailable = errors.New("scenario: store unavailable")

	// ErrInvalidProposal is returned when a proposal is malformed.
	ErrInvalidProposal = errors.New("scenario: invalid proposal")

	// ErrScenarioNotFound is returned by lookups for a scenario with no commits.
	ErrScenarioNotFound = errors.New("scenario: not found")

	// ErrTransitionNotFound is returned when a transition id is not in the history.
	ErrTransitionNotFound = errors.New("scenario: transition not found")

	// ErrDuplicateTransition is returned by a store when the transition id is
	// already recorded for the scenario.
	ErrDuplicateTransition = errors.New("scenario: duplicate transition id")
)

// TransitionError carries the rejected (from, to) pair.
type TransitionError struct {
	From State
	To   State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// StaleError reports the proposer's belief against the stored state.
type StaleError struct {
	Scenario string
	Believed State
	Actual   State
	Version  int64
}

func (e *StaleError) Error() string {
	return fmt.Sprintf("%s: %s believed %s, store has %s at version %d",
		ErrStaleProposal, e.Scenario, e.Believed, e.Actual, e.Version)
}

func (e *StaleError) Unwrap() error { return ErrStaleProposal }

// ContentionError reports how many rounds were lost and the last state seen.
type ContentionError struct {
	Scenario string
	Attempts int
	State    State
	Version  int64
}

func (e *ContentionError) Error() string {
	return fmt.Sprintf("%s: %s lost %d commit attempts (last seen %s at version %d)",
		ErrContention, e.Scenario, e.Attempts, e.State, e.Version)
}

func (e *ContentionError) Unwrap() error { return ErrContention }

// ErrorKind classifies errors for metrics labels and transport error codes.
type ErrorKind string

// Error kinds.
const (
	KindNone              ErrorKind = "ok"
	KindInvalidRequest    ErrorKind = "invalid_request"
	KindInvalidTransition ErrorKind = "invalid_transition"
	KindStaleProposal     ErrorKind = "stale_proposal"
	KindContention        ErrorKind = "contention"
	KindStoreUnavailable  ErrorKind = "store_unavailable"
	KindNotFound          ErrorKind = "not_found"
	KindCancelled         ErrorKind = "cancelled"
	KindInternal          ErrorKind = "internal"
)

// KindOf maps err onto an ErrorKind. Context errors win over store errors
// so a cancelled proposal is not reported as a backend outage.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCancelled
	case errors.Is(err, ErrInvalidProposal), errors.Is(err, ErrDuplicateTransition):
		return KindInvalidRequest
	case errors.Is(err, ErrInvalidTransition):
		return KindInvalidTransition
	case errors.Is(err, ErrStaleProposal):
		return KindStaleProposal
	case errors.Is(err, ErrContention):
		return KindContention
	case errors.Is(err, ErrStoreUnavailable):
		return KindStoreUnavailable
	case errors.Is(err, ErrScenarioNotFound), errors.Is(err, ErrTransitionNotFound):
		return KindNotFound
	default:
		return KindInternal
	}
}

// storeError wraps a backend failure as ErrStoreUnavailable.
func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}
