package notifier

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nerrad567/scenario-state-core/internal/scenario"
)

// ─── Mock Dependencies ─────────────────────────────────────────────

type triggerCall struct {
	component   string
	req         TriggerRequest
	hasDeadline bool
	ctxErr      error
}

// mockTrigger answers from a script, then accepts.
type mockTrigger struct {
	mu     sync.Mutex
	calls  []triggerCall
	script []func() (TriggerResponse, error)
}

func (m *mockTrigger) Trigger(ctx context.Context, component string, req TriggerRequest) (TriggerResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, hasDeadline := ctx.Deadline()
	m.calls = append(m.calls, triggerCall{component: component, req: req, hasDeadline: hasDeadline, ctxErr: ctx.Err()})
	if len(m.script) > 0 {
		next := m.script[0]
		m.script = m.script[1:]
		return next()
	}
	return TriggerResponse{Accepted: true}, nil
}

func (m *mockTrigger) getCalls() []triggerCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]triggerCall(nil), m.calls...)
}

type mockRecorder struct {
	mu       sync.Mutex
	failures []Failure
}

func (m *mockRecorder) RecordTriggerFailure(_ context.Context, f Failure) {
	m.mu.Lock()
	m.failures = append(m.failures, f)
	m.mu.Unlock()
}

type mockMetrics struct {
	mu       sync.Mutex
	attempts map[string]int
	failed   map[string]int
}

func newMockMetrics() *mockMetrics {
	return &mockMetrics{attempts: map[string]int{}, failed: map[string]int{}}
}

func (m *mockMetrics) TriggerAttempt(component, result string) {
	m.mu.Lock()
	m.attempts[component+"/"+result]++
	m.mu.Unlock()
}

func (m *mockMetrics) TriggerFailed(component string) {
	m.mu.Lock()
	m.failed[component]++
	m.mu.Unlock()
}

func fastOptions() Options {
	return Options{Attempts: 3, TriggerTimeout: 50 * time.Millisecond, BackoffInitial: time.Millisecond}
}

func failWith(err error) func() (TriggerResponse, error) {
	return func() (TriggerResponse, error) { return TriggerResponse{}, err }
}

func reject(msg string) func() (TriggerResponse, error) {
	return func() (TriggerResponse, error) { return TriggerResponse{Accepted: false, Message: msg}, nil }
}

// ─── Tests ─────────────────────────────────────────────────────────

func TestAfterCommit_StageTable(t *testing.T) {
	tests := []struct {
		state     scenario.State
		component string
		entry     string
	}{
		{scenario.StateWaiting, ComponentActionController, EntryTriggerAction},
		{scenario.StateSatisfied, ComponentPolicyManager, EntryCheckPolicy},
		{scenario.StateAllowed, ComponentActionController, EntryExecuteAction},
		{scenario.StateDenied, "", ""},
		{scenario.StateCompleted, "", ""},
		{scenario.StateIdle, "", ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			trigger := &mockTrigger{}
			n := New(trigger, fastOptions(), nil)

			if err := n.AfterCommit(context.Background(), "temp-alert", tt.state, "cond-x-1"); err != nil {
				t.Fatalf("AfterCommit() error = %v", err)
			}

			calls := trigger.getCalls()
			if tt.component == "" {
				if len(calls) != 0 {
					t.Errorf("triggered %d times for %s, want none", len(calls), tt.state)
				}
				return
			}
			if len(calls) != 1 {
				t.Fatalf("calls = %d, want 1", len(calls))
			}
			got := calls[0]
			if got.component != tt.component || got.req.Entry != tt.entry {
				t.Errorf("triggered %s.%s, want %s.%s", got.component, got.req.Entry, tt.component, tt.entry)
			}
			if got.req.ScenarioName != "temp-alert" || got.req.TransitionID != "cond-x-1" || got.req.State != tt.state {
				t.Errorf("request = %+v", got.req)
			}
			if !got.hasDeadline {
				t.Error("trigger call has no deadline")
			}
		})
	}
}

func TestAfterCommit_RetriesThenSucceeds(t *testing.T) {
	trigger := &mockTrigger{script: []func() (TriggerResponse, error){
		failWith(errors.New("connection refused")),
		reject("busy"),
	}}
	metrics := newMockMetrics()
	recorder := &mockRecorder{}
	n := New(trigger, fastOptions(), nil)
	n.SetMetrics(metrics)
	n.AddFailureRecorder(recorder)

	if err := n.AfterCommit(context.Background(), "alpha", scenario.StateSatisfied, "id-1"); err != nil {
		t.Fatalf("AfterCommit() error = %v", err)
	}
	if got := len(trigger.getCalls()); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
	if len(recorder.failures) != 0 {
		t.Errorf("failure recorded for a delivered trigger")
	}
	want := map[string]int{
		"policymanager/error":    1,
		"policymanager/rejected": 1,
		"policymanager/accepted": 1,
	}
	for k, v := range want {
		if metrics.attempts[k] != v {
			t.Errorf("attempts[%s] = %d, want %d", k, metrics.attempts[k], v)
		}
	}
}

func TestAfterCommit_ExhaustedReportsFailure(t *testing.T) {
	trigger := &mockTrigger{script: []func() (TriggerResponse, error){
		reject("no"), reject("no"), reject("still no"),
	}}
	metrics := newMockMetrics()
	recorder := &mockRecorder{}
	n := New(trigger, fastOptions(), nil)
	n.SetMetrics(metrics)
	n.AddFailureRecorder(recorder)

	err := n.AfterCommit(context.Background(), "alpha", scenario.StateWaiting, "id-1")
	if !errors.Is(err, ErrDownstreamTriggerFailed) {
		t.Fatalf("AfterCommit() error = %v, want ErrDownstreamTriggerFailed", err)
	}
	if !errors.Is(err, ErrTriggerRejected) {
		t.Errorf("AfterCommit() error = %v, want it to wrap ErrTriggerRejected", err)
	}
	var terr *TriggerError
	if !errors.As(err, &terr) || terr.Attempts != 3 || terr.Component != ComponentActionController {
		t.Errorf("TriggerError = %+v", terr)
	}

	if len(recorder.failures) != 1 {
		t.Fatalf("failures recorded = %d, want 1", len(recorder.failures))
	}
	f := recorder.failures[0]
	if f.Scenario != "alpha" || f.TransitionID != "id-1" || f.Entry != EntryTriggerAction || f.Attempts != 3 {
		t.Errorf("failure = %+v", f)
	}
	if metrics.failed[ComponentActionController] != 1 {
		t.Errorf("failed[actioncontroller] = %d, want 1", metrics.failed[ComponentActionController])
	}
}

func TestAfterCommit_UnknownComponentNotRetried(t *testing.T) {
	trigger := &mockTrigger{script: []func() (TriggerResponse, error){
		failWith(ErrUnknownComponent),
	}}
	n := New(trigger, fastOptions(), nil)

	err := n.AfterCommit(context.Background(), "alpha", scenario.StateWaiting, "id-1")
	if !errors.Is(err, ErrUnknownComponent) || !errors.Is(err, ErrDownstreamTriggerFailed) {
		t.Fatalf("AfterCommit() error = %v", err)
	}
	if got := len(trigger.getCalls()); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestAfterCommit_DetachedFromCallerCancellation(t *testing.T) {
	trigger := &mockTrigger{}
	n := New(trigger, fastOptions(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := n.AfterCommit(ctx, "alpha", scenario.StateAllowed, "id-1"); err != nil {
		t.Fatalf("AfterCommit() error = %v", err)
	}
	calls := trigger.getCalls()
	if len(calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(calls))
	}
	if calls[0].ctxErr != nil {
		t.Errorf("trigger context already done: %v", calls[0].ctxErr)
	}
}

func TestOptions_Defaults(t *testing.T) {
	o := Options{}.withDefaults()
	if o.Attempts != DefaultAttempts || o.TriggerTimeout != DefaultTriggerTimeout || o.BackoffInitial != DefaultBackoffInitial {
		t.Errorf("withDefaults() = %+v", o)
	}
}
