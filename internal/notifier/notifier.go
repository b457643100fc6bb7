package notifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/nerrad567/scenario-state-core/internal/scenario"
)

const tracerName = "github.com/nerrad567/scenario-state-core/internal/notifier"

// Default notifier settings.
const (
	DefaultAttempts       = 3
	DefaultTriggerTimeout = 2 * time.Second
	DefaultBackoffInitial = 100 * time.Millisecond
)

// Trigger results used as metric labels.
const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// TriggerRequest is delivered to a stage component.
type TriggerRequest struct {
	ScenarioName string         `json:"scenario_name"`
	TransitionID string         `json:"transition_id"`
	State        scenario.State `json:"state"`
	Entry        string         `json:"entry"`
}

// TriggerResponse is the component's answer.
type TriggerResponse struct {
	Accepted bool   `json:"accepted"`
	Message  string `json:"message,omitempty"`
}

// Trigger delivers one request to a component. Implementations must honour
// ctx's deadline.
type Trigger interface {
	Trigger(ctx context.Context, component string, req TriggerRequest) (TriggerResponse, error)
}

// Failure describes a stage that could not be triggered.
type Failure struct {
	Scenario     string
	TransitionID string
	State        scenario.State
	Component    string
	Entry        string
	Attempts     int
	Err          error
	At           time.Time
}

// FailureRecorder receives DownstreamTriggerFailed events.
type FailureRecorder interface {
	RecordTriggerFailure(ctx context.Context, f Failure)
}

// Metrics records trigger outcomes.
type Metrics interface {
	TriggerAttempt(component, result string)
	TriggerFailed(component string)
}

type noopMetrics struct{}

func (noopMetrics) TriggerAttempt(string, string) {}
func (noopMetrics) TriggerFailed(string)          {}

// Logger defines the logging interface used by the Notifier.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Options tunes trigger delivery.
type Options struct {
	// Attempts bounds deliveries per stage, including the first.
	Attempts int

	// TriggerTimeout bounds each delivery. It should be shorter than the
	// coordinator's proposal timeout.
	TriggerTimeout time.Duration

	// BackoffInitial is the first delay between attempts; it doubles after
	// each failure.
	BackoffInitial time.Duration
}

func (o Options) withDefaults() Options {
	if o.Attempts <= 0 {
		o.Attempts = DefaultAttempts
	}
	if o.TriggerTimeout <= 0 {
		o.TriggerTimeout = DefaultTriggerTimeout
	}
	if o.BackoffInitial <= 0 {
		o.BackoffInitial = DefaultBackoffInitial
	}
	return o
}

// Notifier wakes the next pipeline stage after a commit.
//
// It implements scenario.StageNotifier. Delivery is at-least-once within
// the attempt budget; an exhausted stage is reported to every
// FailureRecorder and never rolls back the commit.
type Notifier struct {
	trigger   Trigger
	opts      Options
	recorders []FailureRecorder
	metrics   Metrics
	tracer    trace.Tracer
	logger    Logger
	now       func() time.Time
}

// New creates a notifier that delivers through trigger.
func New(trigger Trigger, opts Options, logger Logger) *Notifier {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Notifier{
		trigger: trigger,
		opts:    opts.withDefaults(),
		metrics: noopMetrics{},
		tracer:  otel.Tracer(tracerName),
		logger:  logger,
		now:     time.Now,
	}
}

// AddFailureRecorder registers a recorder for exhausted triggers.
func (n *Notifier) AddFailureRecorder(r FailureRecorder) {
	n.recorders = append(n.recorders, r)
}

// SetMetrics sets the metrics sink.
func (n *Notifier) SetMetrics(m Metrics) {
	n.metrics = m
}

// AfterCommit triggers the stage for newState, if any.
//
// ctx supplies values only: each attempt runs under its own
// TriggerTimeout and is not cancelled with the proposer's request.
func (n *Notifier) AfterCommit(ctx context.Context, scenarioName string, newState scenario.State, transitionID string) error {
	stage, ok := StageFor(newState)
	if !ok {
		return nil
	}
	ctx = context.WithoutCancel(ctx)

	ctx, span := n.tracer.Start(ctx, "notifier.AfterCommit",
		trace.WithAttributes(
			attribute.String("scenario.name", scenarioName),
			attribute.String("scenario.transition_id", transitionID),
			attribute.String("stage.component", stage.Component),
			attribute.String("stage.entry", stage.Entry),
		))
	defer span.End()

	req := TriggerRequest{
		ScenarioName: scenarioName,
		TransitionID: transitionID,
		State:        newState,
		Entry:        stage.Entry,
	}

	attempts := 0
	operation := func() (TriggerResponse, error) {
		attempts++
		resp, err := n.deliver(ctx, stage.Component, req)
		if errors.Is(err, ErrUnknownComponent) {
			return resp, backoff.Permanent(err)
		}
		return resp, err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = n.opts.BackoffInitial
	b.Multiplier = 2
	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(n.opts.Attempts)),
		backoff.WithNotify(func(err error, next time.Duration) {
			n.logger.Warn("stage trigger failed, retrying",
				"scenario", scenarioName,
				"transition_id", transitionID,
				"component", stage.Component,
				"attempt", attempts,
				"backoff", next,
				"error", err,
			)
		}),
	)
	if err == nil {
		n.logger.Debug("stage triggered",
			"scenario", scenarioName,
			"transition_id", transitionID,
			"component", stage.Component,
			"entry", stage.Entry,
			"attempts", attempts,
		)
		return nil
	}

	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		err = perm.Unwrap()
	}
	terr := &TriggerError{
		Scenario:     scenarioName,
		TransitionID: transitionID,
		Component:    stage.Component,
		Entry:        stage.Entry,
		Attempts:     attempts,
		Err:          err,
	}
	span.RecordError(terr)
	span.SetStatus(codes.Error, terr.Error())
	n.fail(ctx, Failure{
		Scenario:     scenarioName,
		TransitionID: transitionID,
		State:        newState,
		Component:    stage.Component,
		Entry:        stage.Entry,
		Attempts:     attempts,
		Err:          err,
		At:           n.now().UTC(),
	})
	return terr
}

// deliver runs one attempt under its own timeout.
func (n *Notifier) deliver(ctx context.Context, component string, req TriggerRequest) (TriggerResponse, error) {
	callCtx, cancel := context.WithTimeout(ctx, n.opts.TriggerTimeout)
	defer cancel()

	resp, err := n.trigger.Trigger(callCtx, component, req)
	switch {
	case err != nil:
		n.metrics.TriggerAttempt(component, ResultError)
		return resp, err
	case !resp.Accepted:
		n.metrics.TriggerAttempt(component, ResultRejected)
		return resp, fmt.Errorf("%w: %s", ErrTriggerRejected, resp.Message)
	default:
		n.metrics.TriggerAttempt(component, ResultAccepted)
		return resp, nil
	}
}

func (n *Notifier) fail(ctx context.Context, f Failure) {
	n.logger.Error("downstream trigger failed",
		"scenario", f.Scenario,
		"transition_id", f.TransitionID,
		"state", f.State,
		"component", f.Component,
		"entry", f.Entry,
		"attempts", f.Attempts,
		"error", f.Err,
	)
	n.metrics.TriggerFailed(f.Component)
	for _, r := range n.recorders {
		r.RecordTriggerFailure(ctx, f)
	}
}
