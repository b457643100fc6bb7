package scenario

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/nerrad567/scenario-state-core/internal/scenario"

// Default coordinator settings.
const (
	DefaultMaxAttempts     = 5
	DefaultBackoffInitial  = 10 * time.Millisecond
	DefaultBackoffMax      = 250 * time.Millisecond
	DefaultProposalTimeout = 5 * time.Second
)

// StageNotifier hands a committed transition to the next pipeline stage.
type StageNotifier interface {
	AfterCommit(ctx context.Context, scenarioName string, newState State, transitionID string) error
}

// TransitionObserver receives every committed record after the commit.
// Implementations must not block for long; they run on the notification
// goroutine.
type TransitionObserver interface {
	TransitionCommitted(ctx context.Context, rec TransitionRecord)
}

// ObserverFunc adapts a function to TransitionObserver.
type ObserverFunc func(ctx context.Context, rec TransitionRecord)

// TransitionCommitted implements TransitionObserver.
func (f ObserverFunc) TransitionCommitted(ctx context.Context, rec TransitionRecord) { f(ctx, rec) }

// Metrics records coordinator outcomes.
type Metrics interface {
	ProposalFinished(outcome string, duration time.Duration)
	CommitConflict()
}

type noopMetrics struct{}

func (noopMetrics) ProposalFinished(string, time.Duration) {}
func (noopMetrics) CommitConflict()                        {}

// Outcome labels beyond the ErrorKind values.
const (
	OutcomeCommitted = "committed"
	OutcomeReplayed  = "replayed"
)

// Options tunes the coordinator's retry loop.
type Options struct {
	// MaxAttempts bounds the compare-and-swap rounds per proposal.
	MaxAttempts int

	// BackoffInitial and BackoffMax bound the jittered delay between rounds.
	BackoffInitial time.Duration
	BackoffMax     time.Duration

	// ProposalTimeout caps a proposal whose context has no deadline.
	ProposalTimeout time.Duration
}

// DefaultOptions returns the settings used when a field is zero.
func DefaultOptions() Options {
	return Options{
		MaxAttempts:     DefaultMaxAttempts,
		BackoffInitial:  DefaultBackoffInitial,
		BackoffMax:      DefaultBackoffMax,
		ProposalTimeout: DefaultProposalTimeout,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = d.MaxAttempts
	}
	if o.BackoffInitial <= 0 {
		o.BackoffInitial = d.BackoffInitial
	}
	if o.BackoffMax < o.BackoffInitial {
		o.BackoffMax = o.BackoffInitial
	}
	return o
}

// Coordinator accepts proposals, validates them against the state graph and
// commits them through the Registry.
//
// Proposals for the same scenario race on the store's conditional write; a
// loser re-reads and tries again until MaxAttempts is spent. After a commit
// the record is handed to observers and the StageNotifier on a tracked
// goroutine, so the proposer's reply never waits for downstream stages.
type Coordinator struct {
	registry  *Registry
	ids       *IDGenerator
	opts      Options
	notifier  StageNotifier
	observers []TransitionObserver
	metrics   Metrics
	tracer    trace.Tracer
	logger    Logger
	now       func() time.Time

	wg sync.WaitGroup
}

// NewCoordinator creates a coordinator over registry.
//
// Parameters:
//   - registry: Scenario registry used for reads and conditional writes
//   - opts: Retry settings; zero fields take defaults
//   - logger: Logger instance (nil for none)
func NewCoordinator(registry *Registry, opts Options, logger Logger) *Coordinator {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Coordinator{
		registry: registry,
		ids:      NewIDGenerator(),
		opts:     opts.withDefaults(),
		metrics:  noopMetrics{},
		tracer:   otel.Tracer(tracerName),
		logger:   logger,
		now:      time.Now,
	}
}

// SetNotifier sets the stage notifier called after each commit.
func (c *Coordinator) SetNotifier(n StageNotifier) {
	c.notifier = n
}

// AddObserver registers an observer for committed transitions.
// Must be called before the first proposal.
func (c *Coordinator) AddObserver(o TransitionObserver) {
	c.observers = append(c.observers, o)
}

// SetMetrics sets the metrics sink.
func (c *Coordinator) SetMetrics(m Metrics) {
	c.metrics = m
}

// Registry returns the registry the coordinator commits through.
func (c *Coordinator) Registry() *Registry {
	return c.registry
}

// Wait blocks until every in-flight post-commit notification has finished.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// conflictError is the retryable outcome of a lost conditional write.
type conflictError struct {
	state   State
	version int64
}

func (e *conflictError) Error() string {
	return fmt.Sprintf("commit conflict: store has %s at version %d", e.state, e.version)
}

// ProposeTransition validates p and commits it.
//
// A transition id already present in the history returns the original
// result with Replayed set and commits nothing. Otherwise the outcome is a
// committed TransitionResult or an error matching one of ErrInvalidProposal,
// ErrStaleProposal, ErrInvalidTransition, ErrContention or
// ErrStoreUnavailable. Nothing is written unless a TransitionResult is
// returned.
func (c *Coordinator) ProposeTransition(ctx context.Context, p Proposal) (*TransitionResult, error) {
	start := c.now()
	ctx, span := c.tracer.Start(ctx, "scenario.ProposeTransition",
		trace.WithAttributes(
			attribute.String("scenario.name", p.ResourceName),
			attribute.String("scenario.target_state", string(p.TargetState)),
			attribute.String("scenario.source_component", p.SourceComponent),
		))
	defer span.End()

	res, err := c.propose(ctx, p)

	outcome := string(KindOf(err))
	switch {
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logProposalError(p, err)
	case res.Replayed:
		outcome = OutcomeReplayed
	default:
		outcome = OutcomeCommitted
		span.SetAttributes(
			attribute.String("scenario.transition_id", res.TransitionID),
			attribute.Int64("scenario.version", res.Version),
			attribute.Int("scenario.attempts", res.Attempts),
		)
	}
	c.metrics.ProposalFinished(outcome, c.now().Sub(start))
	return res, err
}

func (c *Coordinator) logProposalError(p Proposal, err error) {
	args := []any{
		"scenario", p.ResourceName,
		"target", p.TargetState,
		"source_component", p.SourceComponent,
		"error", err,
	}
	switch KindOf(err) {
	case KindContention, KindStoreUnavailable, KindInternal:
		c.logger.Warn("proposal failed", args...)
	default:
		c.logger.Debug("proposal rejected", args...)
	}
}

func (c *Coordinator) propose(ctx context.Context, p Proposal) (*TransitionResult, error) {
	if err := ValidateProposal(p); err != nil {
		return nil, err
	}

	if _, ok := ctx.Deadline(); !ok && c.opts.ProposalTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.ProposalTimeout)
		defer cancel()
	}

	var (
		attempts int
		record   TransitionRecord
	)
	operation := func() (*TransitionResult, error) {
		attempts++
		if err := ctx.Err(); err != nil {
			return nil, backoff.Permanent(err)
		}
		res, rec, err := c.attempt(ctx, p)
		if err != nil {
			var ce *conflictError
			if errors.As(err, &ce) {
				return nil, err
			}
			return nil, backoff.Permanent(err)
		}
		record = rec
		return res, nil
	}

	res, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(c.newBackOff()),
		backoff.WithMaxTries(uint(c.opts.MaxAttempts)),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.logger.Debug("retrying proposal after conflict",
				"scenario", p.ResourceName,
				"attempt", attempts,
				"backoff", next,
				"error", err,
			)
		}),
	)
	if err != nil {
		// The final try is returned as-is, so a permanent error may still be wrapped.
		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			err = perm.Unwrap()
		}
		var ce *conflictError
		if errors.As(err, &ce) {
			return nil, &ContentionError{
				Scenario: p.ResourceName,
				Attempts: attempts,
				State:    ce.state,
				Version:  ce.version,
			}
		}
		return nil, err
	}

	if !res.Replayed {
		res.Attempts = attempts
		c.afterCommit(ctx, record)
	}
	return res, nil
}

func (c *Coordinator) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.opts.BackoffInitial
	b.MaxInterval = c.opts.BackoffMax
	b.RandomizationFactor = 0.5
	b.Multiplier = 2
	return b
}

// attempt runs one read-validate-commit round.
func (c *Coordinator) attempt(ctx context.Context, p Proposal) (*TransitionResult, TransitionRecord, error) {
	snap, err := c.registry.Snapshot(ctx, p.ResourceName)
	if err != nil {
		return nil, TransitionRecord{}, err
	}

	// The lookup follows the snapshot read: a duplicate committed after it
	// makes this round's write conflict, and the next round finds it here.
	if p.TransitionID != "" {
		res, err := c.replay(ctx, p)
		if err == nil {
			return res, TransitionRecord{}, nil
		}
		if !errors.Is(err, ErrTransitionNotFound) {
			return nil, TransitionRecord{}, err
		}
	}

	if p.CurrentState != "" && p.CurrentState != snap.State {
		// The cache may lag commits made by other nodes.
		snap, err = c.registry.Reload(ctx, p.ResourceName)
		if err != nil {
			return nil, TransitionRecord{}, err
		}
		if p.CurrentState != snap.State {
			return nil, TransitionRecord{}, &StaleError{
				Scenario: p.ResourceName,
				Believed: p.CurrentState,
				Actual:   snap.State,
				Version:  snap.Version,
			}
		}
	}

	to, err := Validate(snap.State, p.TargetState)
	if err != nil {
		return nil, TransitionRecord{}, err
	}

	ts := c.now().UTC().Truncate(time.Millisecond)
	if ts.Before(snap.UpdatedAt) {
		ts = snap.UpdatedAt
	}
	id := p.TransitionID
	if id == "" {
		id = c.ids.Next(p.SourceComponent, to, ts)
	}
	rec := TransitionRecord{
		TransitionID:    id,
		SourceComponent: p.SourceComponent,
		Reason:          p.Reason,
		Timestamp:       ts,
	}

	res, err := c.registry.TryCommit(ctx, p.ResourceName, snap.Version, snap.State, to, rec)
	if errors.Is(err, ErrDuplicateTransition) {
		if p.TransitionID != "" {
			// A concurrent proposal with the same id won.
			replayed, rerr := c.replay(ctx, p)
			return replayed, TransitionRecord{}, rerr
		}
		// Another node issued the same generated id; the generator has
		// already moved to the next suffix.
		return nil, TransitionRecord{}, &conflictError{state: snap.State, version: snap.Version}
	}
	if err != nil {
		return nil, TransitionRecord{}, err
	}
	if !res.Committed {
		c.metrics.CommitConflict()
		return nil, TransitionRecord{}, &conflictError{state: res.State, version: res.Version}
	}

	rec.Scenario = p.ResourceName
	rec.From = snap.State
	rec.To = to
	rec.Version = res.Version
	return &TransitionResult{
		Scenario:     p.ResourceName,
		From:         snap.State,
		State:        res.State,
		Version:      res.Version,
		TransitionID: id,
		CommittedAt:  ts,
	}, rec, nil
}

// replay returns the original result for an already committed id, or
// ErrTransitionNotFound.
func (c *Coordinator) replay(ctx context.Context, p Proposal) (*TransitionResult, error) {
	rec, err := c.registry.FindTransition(ctx, p.ResourceName, p.TransitionID)
	if err != nil {
		return nil, err
	}
	if rec.To != p.TargetState {
		return nil, fmt.Errorf("%w: %s was committed as %s -> %s",
			ErrDuplicateTransition, rec.TransitionID, rec.From, rec.To)
	}
	c.logger.Debug("transition replayed",
		"scenario", p.ResourceName,
		"transition_id", rec.TransitionID,
		"version", rec.Version,
	)
	return &TransitionResult{
		Scenario:     rec.Scenario,
		From:         rec.From,
		State:        rec.To,
		Version:      rec.Version,
		TransitionID: rec.TransitionID,
		CommittedAt:  rec.Timestamp,
		Replayed:     true,
	}, nil
}

// afterCommit hands rec to observers and the notifier without blocking the
// proposer. The goroutine keeps the request's values but not its
// cancellation.
func (c *Coordinator) afterCommit(ctx context.Context, rec TransitionRecord) {
	ctx = context.WithoutCancel(ctx)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for _, o := range c.observers {
			o.TransitionCommitted(ctx, rec)
		}
		if c.notifier == nil {
			return
		}
		if err := c.notifier.AfterCommit(ctx, rec.Scenario, rec.To, rec.TransitionID); err != nil {
			c.logger.Debug("stage notification failed",
				"scenario", rec.Scenario,
				"transition_id", rec.TransitionID,
				"error", err,
			)
		}
	}()
}
