package rpc

import (
	"time"

	statemanagerv1 "github.com/nerrad567/scenario-state-core/api/gen/go/scenario/statemanager/v1"
	"github.com/nerrad567/scenario-state-core/internal/scenario"
)

// Response codes carried in ProposeStateChangeResponse.ErrorCode.
const (
	CodeSuccess           = "SUCCESS"
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeStaleProposal     = "STALE_PROPOSAL"
	CodeContention        = "CONTENTION"
	CodeStoreUnavailable  = "STORE_UNAVAILABLE"
	CodeCancelled         = "CANCELLED"
	CodeInternal          = "INTERNAL"
)

// StateManagerServiceName is the registered name of the StateManager service,
// also used for its health status.
var StateManagerServiceName = statemanagerv1.StateManager_ServiceDesc.ServiceName

func snapshotInfo(s scenario.Snapshot) *statemanagerv1.ScenarioInfo {
	info := &statemanagerv1.ScenarioInfo{
		Name:     s.Name,
		State:    string(s.State),
		Version:  s.Version,
		Terminal: scenario.IsTerminal(s.State),
	}
	if !s.UpdatedAt.IsZero() {
		info.UpdatedAtMs = s.UpdatedAt.UnixMilli()
	}
	return info
}

func transitionInfo(r scenario.TransitionRecord) *statemanagerv1.TransitionInfo {
	return &statemanagerv1.TransitionInfo{
		TransitionId:    r.TransitionID,
		SourceComponent: r.SourceComponent,
		FromState:       string(r.From),
		ToState:         string(r.To),
		Reason:          r.Reason,
		TimestampMs:     r.Timestamp.UnixMilli(),
		Version:         r.Version,
	}
}

// GraphResponse builds the state graph description.
func GraphResponse() *statemanagerv1.GetStateGraphResponse {
	resp := &statemanagerv1.GetStateGraphResponse{Initial: string(scenario.StateIdle)}
	for _, s := range scenario.AllStates {
		resp.States = append(resp.States, string(s))
		if scenario.IsTerminal(s) {
			resp.Terminal = append(resp.Terminal, string(s))
		}
	}
	for _, e := range scenario.Edges() {
		resp.Edges = append(resp.Edges, &statemanagerv1.EdgeInfo{From: string(e.From), To: string(e.To)})
	}
	return resp
}

func nowNs() int64 {
	return time.Now().UnixNano()
}
