package scenario

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func validProposal() Proposal {
	return Proposal{
		ResourceName:    "temp-alert",
		TargetState:     StateWaiting,
		SourceComponent: "ConditionEvaluator",
	}
}

func TestValidateProposal(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Proposal)
		wantErr string
	}{
		{name: "valid", mutate: func(*Proposal) {}},
		{name: "valid with current state", mutate: func(p *Proposal) { p.CurrentState = StateIdle }},
		{name: "valid with id", mutate: func(p *Proposal) { p.TransitionID = "cond-waiting-1" }},
		{name: "missing name", mutate: func(p *Proposal) { p.ResourceName = "" }, wantErr: "resource_name is required"},
		{name: "name with slash", mutate: func(p *Proposal) { p.ResourceName = "a/b" }, wantErr: "must match"},
		{name: "name with wildcard", mutate: func(p *Proposal) { p.ResourceName = "a+" }, wantErr: "must match"},
		{name: "name too long", mutate: func(p *Proposal) { p.ResourceName = strings.Repeat("a", 129) }, wantErr: "must match"},
		{name: "missing target", mutate: func(p *Proposal) { p.TargetState = "" }, wantErr: "target_state is required"},
		{name: "unknown target", mutate: func(p *Proposal) { p.TargetState = "paused" }, wantErr: "unknown target_state"},
		{name: "unknown current", mutate: func(p *Proposal) { p.CurrentState = "paused" }, wantErr: "unknown current_state"},
		{name: "missing source", mutate: func(p *Proposal) { p.SourceComponent = "  " }, wantErr: "source_component is required"},
		{name: "id with space", mutate: func(p *Proposal) { p.TransitionID = "a b" }, wantErr: "transition_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProposal()
			tt.mutate(&p)
			err := ValidateProposal(p)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateProposal() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidProposal) {
				t.Fatalf("ValidateProposal() error = %v, want ErrInvalidProposal", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateProposal() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseState(t *testing.T) {
	tests := []struct {
		in      string
		want    State
		wantErr bool
	}{
		{in: "waiting", want: StateWaiting},
		{in: " ALLOWED ", want: StateAllowed},
		{in: "", want: ""},
		{in: "paused", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseState(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidProposal) {
				t.Errorf("ParseState(%q) error = %v, want ErrInvalidProposal", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseState(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorKind
	}{
		{nil, KindNone},
		{&TransitionError{From: StateIdle, To: StateAllowed}, KindInvalidTransition},
		{&StaleError{Believed: StateIdle, Actual: StateWaiting}, KindStaleProposal},
		{&ContentionError{Attempts: 5}, KindContention},
		{storeError("load", errors.New("connection refused")), KindStoreUnavailable},
		{ErrInvalidProposal, KindInvalidRequest},
		{ErrDuplicateTransition, KindInvalidRequest},
		{ErrScenarioNotFound, KindNotFound},
		{storeError("load", context.Canceled), KindCancelled},
		{errors.New("boom"), KindInternal},
	}
	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}
