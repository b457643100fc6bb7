package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nerrad567/scenario-state-core/internal/notifier"
	"github.com/nerrad567/scenario-state-core/internal/scenario"
)

var _ notifier.FailureRecorder = (*Recorder)(nil)

// memoryRepo is an in-memory Repository.
type memoryRepo struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (m *memoryRepo) Append(_ context.Context, e *Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, *e)
	return nil
}

func (m *memoryRepo) Query(context.Context, Filter) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &Page{Events: append([]Event(nil), m.events...), Total: len(m.events)}, nil
}

type warnLogger struct {
	mu    sync.Mutex
	warns int
}

func (l *warnLogger) Warn(string, ...any) {
	l.mu.Lock()
	l.warns++
	l.mu.Unlock()
}

func TestRecorder_RecordTriggerFailure(t *testing.T) {
	repo := &memoryRepo{}
	r := NewRecorder(repo, nil)
	at := time.Date(2026, 3, 1, 9, 0, 5, 0, time.UTC)

	r.RecordTriggerFailure(context.Background(), notifier.Failure{
		Scenario:     "temp-alert",
		TransitionID: "cond-satisfied-1772355600",
		State:        scenario.StateSatisfied,
		Component:    notifier.ComponentPolicyManager,
		Entry:        notifier.EntryCheckPolicy,
		Attempts:     3,
		Err:          errors.New("deadline exceeded"),
		At:           at,
	})

	if len(repo.events) != 1 {
		t.Fatalf("wrote %d events, want 1", len(repo.events))
	}
	e := repo.events[0]
	if e.Action != ActionDownstreamTriggerFailed || e.Scenario != "temp-alert" || e.Component != "policymanager" {
		t.Errorf("event = %+v", e)
	}
	if e.TransitionID != "cond-satisfied-1772355600" || e.Kind != "" {
		t.Errorf("TransitionID = %q Kind = %q", e.TransitionID, e.Kind)
	}
	if !e.CreatedAt.Equal(at) {
		t.Errorf("CreatedAt = %v, want %v", e.CreatedAt, at)
	}
	if e.Details["entry"] != "CheckPolicy" || e.Details["error"] != "deadline exceeded" {
		t.Errorf("Details = %v", e.Details)
	}
}

func TestRecorder_RecordRejection(t *testing.T) {
	p := scenario.Proposal{
		ResourceName:    "temp-alert",
		CurrentState:    scenario.StateWaiting,
		TargetState:     scenario.StateSatisfied,
		SourceComponent: "conditionevaluator",
	}

	tests := []struct {
		name      string
		err       error
		wantWrite bool
	}{
		{"invalid transition", &scenario.TransitionError{From: scenario.StateIdle, To: scenario.StateSatisfied}, true},
		{"stale", &scenario.StaleError{Scenario: "temp-alert", Believed: scenario.StateWaiting, Actual: scenario.StateIdle}, true},
		{"contention", &scenario.ContentionError{Scenario: "temp-alert", Attempts: 5, State: scenario.StateSatisfied, Version: 3}, true},
		{"malformed", scenario.ErrInvalidProposal, false},
		{"cancelled", context.Canceled, false},
		{"store down", scenario.ErrStoreUnavailable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memoryRepo{}
			NewRecorder(repo, nil).RecordRejection(context.Background(), p, tt.err)

			if got := len(repo.events) == 1; got != tt.wantWrite {
				t.Fatalf("wrote %d events, want write = %v", len(repo.events), tt.wantWrite)
			}
			if !tt.wantWrite {
				return
			}
			e := repo.events[0]
			if e.Action != ActionProposalRejected || e.Scenario != "temp-alert" || e.Component != "conditionevaluator" {
				t.Errorf("event = %+v", e)
			}
			if e.Kind != string(scenario.KindOf(tt.err)) {
				t.Errorf("Kind = %q, want %q", e.Kind, scenario.KindOf(tt.err))
			}
			if e.Details["believed_state"] != "waiting" {
				t.Errorf("Details[believed_state] = %v", e.Details["believed_state"])
			}
		})
	}
}

func TestRecorder_RepositoryErrorIsLogged(t *testing.T) {
	repo := &memoryRepo{err: errors.New("disk full")}
	logger := &warnLogger{}
	r := NewRecorder(repo, logger)

	r.RecordTriggerFailure(context.Background(), notifier.Failure{Scenario: "a", Component: "actioncontroller"})

	if logger.warns != 1 {
		t.Errorf("warns = %d, want 1", logger.warns)
	}
}

type stubProposer struct {
	res *scenario.TransitionResult
	err error
}

func (s stubProposer) ProposeTransition(context.Context, scenario.Proposal) (*scenario.TransitionResult, error) {
	return s.res, s.err
}

func TestAuditingProposer(t *testing.T) {
	repo := &memoryRepo{}
	r := NewRecorder(repo, nil)
	ctx := context.Background()
	p := scenario.Proposal{ResourceName: "a", TargetState: scenario.StateWaiting, SourceComponent: "x"}

	ok := r.WrapProposer(stubProposer{res: &scenario.TransitionResult{Version: 1}})
	if res, err := ok.ProposeTransition(ctx, p); err != nil || res.Version != 1 {
		t.Fatalf("ProposeTransition() = %+v, %v", res, err)
	}
	if len(repo.events) != 0 {
		t.Errorf("commit was audited")
	}

	rejected := r.WrapProposer(stubProposer{err: &scenario.TransitionError{From: scenario.StateDenied, To: scenario.StateAllowed}})
	_, err := rejected.ProposeTransition(ctx, p)
	if !errors.Is(err, scenario.ErrInvalidTransition) {
		t.Errorf("error = %v, want ErrInvalidTransition passed through", err)
	}
	if len(repo.events) != 1 {
		t.Errorf("wrote %d events, want 1", len(repo.events))
	}
}
