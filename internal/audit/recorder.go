package audit

import (
	"context"
	"errors"
	"time"

	"github.com/nerrad567/scenario-state-core/internal/notifier"
	"github.com/nerrad567/scenario-state-core/internal/scenario"
)

// Audit actions.
const (
	ActionProposalRejected        = "proposal_rejected"
	ActionDownstreamTriggerFailed = "downstream_trigger_failed"
)

// writeTimeout bounds one audit insert. Audit writes never fail the
// operation they describe.
const writeTimeout = 2 * time.Second

// Logger defines the logging interface used by this package.
type Logger interface {
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Warn(string, ...any) {}

// Proposer commits proposals. *scenario.Coordinator implements it.
type Proposer interface {
	ProposeTransition(ctx context.Context, p scenario.Proposal) (*scenario.TransitionResult, error)
}

// Recorder turns operational events into audit rows. It implements
// notifier.FailureRecorder and wraps a Proposer to record rejections.
type Recorder struct {
	repo   Repository
	logger Logger
	now    func() time.Time
}

// NewRecorder creates a recorder over repo. logger may be nil.
func NewRecorder(repo Repository, logger Logger) *Recorder {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Recorder{repo: repo, logger: logger, now: time.Now}
}

// RecordTriggerFailure implements notifier.FailureRecorder.
func (r *Recorder) RecordTriggerFailure(ctx context.Context, f notifier.Failure) {
	details := map[string]any{
		"state":    string(f.State),
		"entry":    f.Entry,
		"attempts": f.Attempts,
	}
	if f.Err != nil {
		details["error"] = f.Err.Error()
	}
	at := f.At
	if at.IsZero() {
		at = r.now()
	}
	r.append(ctx, &Event{
		Action:       ActionDownstreamTriggerFailed,
		Scenario:     f.Scenario,
		Component:    f.Component,
		TransitionID: f.TransitionID,
		Details:      details,
		CreatedAt:    at,
	})
}

// RecordRejection writes a proposal_rejected event when err says something
// about the scenario: an invalid transition, a stale belief or exhausted
// contention. Malformed requests, outages and cancellations are skipped.
func (r *Recorder) RecordRejection(ctx context.Context, p scenario.Proposal, err error) {
	kind := scenario.KindOf(err)
	switch kind {
	case scenario.KindInvalidTransition, scenario.KindStaleProposal, scenario.KindContention:
	default:
		return
	}

	details := map[string]any{
		"target_state": string(p.TargetState),
		"error":        err.Error(),
	}
	if p.CurrentState != "" {
		details["believed_state"] = string(p.CurrentState)
	}

	var (
		se *scenario.StaleError
		ce *scenario.ContentionError
	)
	switch {
	case errors.As(err, &se):
		details["actual_state"] = string(se.Actual)
		details["version"] = se.Version
	case errors.As(err, &ce):
		details["actual_state"] = string(ce.State)
		details["version"] = ce.Version
		details["attempts"] = ce.Attempts
	}

	r.append(ctx, &Event{
		Action:       ActionProposalRejected,
		Scenario:     p.ResourceName,
		Component:    p.SourceComponent,
		TransitionID: p.TransitionID,
		Kind:         string(kind),
		Details:      details,
		CreatedAt:    r.now(),
	})
}

func (r *Recorder) append(ctx context.Context, e *Event) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()
	if err := r.repo.Append(ctx, e); err != nil {
		r.logger.Warn("writing audit event failed",
			"action", e.Action,
			"scenario", e.Scenario,
			"error", err,
		)
	}
}

// AuditingProposer records rejected proposals before returning them.
type AuditingProposer struct {
	next     Proposer
	recorder *Recorder
}

// WrapProposer returns next with rejection auditing.
func (r *Recorder) WrapProposer(next Proposer) *AuditingProposer {
	return &AuditingProposer{next: next, recorder: r}
}

// ProposeTransition implements Proposer.
func (a *AuditingProposer) ProposeTransition(ctx context.Context, p scenario.Proposal) (*scenario.TransitionResult, error) {
	res, err := a.next.ProposeTransition(ctx, p)
	if err != nil {
		a.recorder.RecordRejection(ctx, p, err)
	}
	return res, err
}
