package rpc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	statemanagerv1 "github.com/nerrad567/scenario-state-core/api/gen/go/scenario/statemanager/v1"
	"github.com/nerrad567/scenario-state-core/internal/scenario"
)

// Proposer commits proposals. *scenario.Coordinator implements it.
type Proposer interface {
	ProposeTransition(ctx context.Context, p scenario.Proposal) (*scenario.TransitionResult, error)
}

// ScenarioReader serves read-only queries. *scenario.Registry implements it.
type ScenarioReader interface {
	Snapshot(ctx context.Context, name string) (scenario.Snapshot, error)
	History(ctx context.Context, name string, limit int) ([]scenario.TransitionRecord, error)
	List(ctx context.Context, filter scenario.ListFilter) ([]scenario.Snapshot, error)
}

// Logger defines the logging interface used by this package.
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

// maxHistoryLimit caps GetHistory page sizes.
const maxHistoryLimit = 1000

// Service implements the StateManager gRPC API over a coordinator and
// registry.
type Service struct {
	statemanagerv1.UnimplementedStateManagerServer
	proposer Proposer
	reader   ScenarioReader
	logger   Logger
}

// NewService creates the StateManager service.
func NewService(proposer Proposer, reader ScenarioReader, logger Logger) *Service {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Service{proposer: proposer, reader: reader, logger: logger}
}

// ToProposal converts a wire request into a proposal.
func ToProposal(req *statemanagerv1.ProposeStateChangeRequest) (scenario.Proposal, error) {
	if !strings.EqualFold(strings.TrimSpace(req.GetResourceType()), scenario.ResourceTypeScenario) {
		return scenario.Proposal{}, fmt.Errorf("%w: resource_type %q is not %s",
			scenario.ErrInvalidProposal, req.GetResourceType(), scenario.ResourceTypeScenario)
	}
	current, err := scenario.ParseState(req.GetCurrentState())
	if err != nil {
		return scenario.Proposal{}, err
	}
	target, err := scenario.ParseState(req.GetTargetState())
	if err != nil {
		return scenario.Proposal{}, err
	}
	return scenario.Proposal{
		ResourceName:    strings.TrimSpace(req.GetResourceName()),
		CurrentState:    current,
		TargetState:     target,
		SourceComponent: strings.TrimSpace(req.GetSourceComponent()),
		Reason:          req.GetReason(),
		TransitionID:    strings.TrimSpace(req.GetTransitionId()),
	}, nil
}

// CodeFor maps an error to a response code.
func CodeFor(err error) string {
	switch scenario.KindOf(err) {
	case scenario.KindNone:
		return CodeSuccess
	case scenario.KindInvalidRequest, scenario.KindNotFound:
		return CodeInvalidRequest
	case scenario.KindInvalidTransition:
		return CodeInvalidTransition
	case scenario.KindStaleProposal:
		return CodeStaleProposal
	case scenario.KindContention:
		return CodeContention
	case scenario.KindStoreUnavailable:
		return CodeStoreUnavailable
	case scenario.KindCancelled:
		return CodeCancelled
	default:
		return CodeInternal
	}
}

// errorDetails extracts structured fields from typed errors.
func errorDetails(err error) map[string]string {
	var (
		te *scenario.TransitionError
		se *scenario.StaleError
		ce *scenario.ContentionError
	)
	switch {
	case errors.As(err, &te):
		return map[string]string{"from_state": string(te.From), "to_state": string(te.To)}
	case errors.As(err, &se):
		return map[string]string{
			"believed_state": string(se.Believed),
			"actual_state":   string(se.Actual),
			"version":        fmt.Sprint(se.Version),
		}
	case errors.As(err, &ce):
		return map[string]string{
			"attempts":     fmt.Sprint(ce.Attempts),
			"actual_state": string(ce.State),
			"version":      fmt.Sprint(ce.Version),
		}
	}
	return nil
}

// HandleProposal runs one proposal and builds the wire response. It is
// shared by the gRPC and MQTT ingress paths.
func HandleProposal(ctx context.Context, proposer Proposer, req *statemanagerv1.ProposeStateChangeRequest) *statemanagerv1.ProposeStateChangeResponse {
	p, err := ToProposal(req)
	if err == nil {
		var res *scenario.TransitionResult
		res, err = proposer.ProposeTransition(ctx, p)
		if err == nil {
			return &statemanagerv1.ProposeStateChangeResponse{
				Accepted:     true,
				NewState:     string(res.State),
				Version:      res.Version,
				TransitionId: res.TransitionID,
				Replayed:     res.Replayed,
				ErrorCode:    CodeSuccess,
				TimestampNs:  nowNs(),
			}
		}
	}

	code := CodeFor(err)
	msg := err.Error()
	if code == CodeInternal {
		msg = "internal error"
	}
	return &statemanagerv1.ProposeStateChangeResponse{
		Accepted:     false,
		ErrorCode:    code,
		Message:      msg,
		ErrorDetails: errorDetails(err),
		TimestampNs:  nowNs(),
	}
}

// ProposeStateChange implements StateManagerServer. Domain failures are
// reported in the response body; only a cancelled call becomes a gRPC error.
func (s *Service) ProposeStateChange(ctx context.Context, req *statemanagerv1.ProposeStateChangeRequest) (*statemanagerv1.ProposeStateChangeResponse, error) {
	resp := HandleProposal(ctx, s.proposer, req)
	if !resp.Accepted && ctx.Err() != nil {
		return nil, status.FromContextError(ctx.Err()).Err()
	}
	s.logger.Debug("proposal handled",
		"scenario", req.GetResourceName(),
		"target", req.GetTargetState(),
		"source_component", req.GetSourceComponent(),
		"code", resp.ErrorCode,
	)
	return resp, nil
}

// GetScenario implements StateManagerServer.
func (s *Service) GetScenario(ctx context.Context, req *statemanagerv1.GetScenarioRequest) (*statemanagerv1.GetScenarioResponse, error) {
	if err := scenario.ValidateName(req.GetScenarioName()); err != nil {
		return nil, statusFor(err)
	}
	snap, err := s.reader.Snapshot(ctx, req.GetScenarioName())
	if err != nil {
		return nil, statusFor(err)
	}
	return &statemanagerv1.GetScenarioResponse{Scenario: snapshotInfo(snap)}, nil
}

// GetHistory implements StateManagerServer.
func (s *Service) GetHistory(ctx context.Context, req *statemanagerv1.GetHistoryRequest) (*statemanagerv1.GetHistoryResponse, error) {
	if err := scenario.ValidateName(req.GetScenarioName()); err != nil {
		return nil, statusFor(err)
	}
	limit := req.GetLimit()
	if limit < 0 || limit > maxHistoryLimit {
		return nil, status.Errorf(codes.InvalidArgument, "limit must be between 0 and %d", maxHistoryLimit)
	}
	records, err := s.reader.History(ctx, req.GetScenarioName(), int(limit))
	if err != nil {
		return nil, statusFor(err)
	}
	resp := &statemanagerv1.GetHistoryResponse{
		ScenarioName: req.GetScenarioName(),
		Transitions:  make([]*statemanagerv1.TransitionInfo, 0, len(records)),
	}
	for _, r := range records {
		resp.Transitions = append(resp.Transitions, transitionInfo(r))
	}
	return resp, nil
}

// ListScenarios implements StateManagerServer.
func (s *Service) ListScenarios(ctx context.Context, req *statemanagerv1.ListScenariosRequest) (*statemanagerv1.ListScenariosResponse, error) {
	state, err := scenario.ParseState(req.GetState())
	if err != nil {
		return nil, statusFor(err)
	}
	snaps, err := s.reader.List(ctx, scenario.ListFilter{State: state})
	if err != nil {
		return nil, statusFor(err)
	}
	resp := &statemanagerv1.ListScenariosResponse{Scenarios: make([]*statemanagerv1.ScenarioInfo, 0, len(snaps))}
	for _, snap := range snaps {
		resp.Scenarios = append(resp.Scenarios, snapshotInfo(snap))
	}
	return resp, nil
}

// GetStateGraph implements StateManagerServer.
func (s *Service) GetStateGraph(context.Context, *statemanagerv1.GetStateGraphRequest) (*statemanagerv1.GetStateGraphResponse, error) {
	return GraphResponse(), nil
}

// statusFor maps a read error to a gRPC status.
func statusFor(err error) error {
	switch scenario.KindOf(err) {
	case scenario.KindInvalidRequest:
		return status.Error(codes.InvalidArgument, err.Error())
	case scenario.KindNotFound:
		return status.Error(codes.NotFound, err.Error())
	case scenario.KindStoreUnavailable:
		return status.Error(codes.Unavailable, err.Error())
	case scenario.KindCancelled:
		return status.FromContextError(err).Err()
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
