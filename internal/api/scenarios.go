package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/scenario-state-core/internal/scenario"
)

// History page bounds.
const (
	defaultHistoryLimit = 100
	maxHistoryLimit     = 1000
)

// sourceComponentREST is recorded when a REST caller names no component.
const sourceComponentREST = "rest"

// scenarioView is a snapshot with its terminal flag and allowed successors.
type scenarioView struct {
	scenario.Snapshot
	Terminal bool             `json:"terminal"`
	Next     []scenario.State `json:"next"`
}

func newScenarioView(snap scenario.Snapshot) scenarioView {
	return scenarioView{
		Snapshot: snap,
		Terminal: scenario.IsTerminal(snap.State),
		Next:     scenario.Next(snap.State),
	}
}

// transitionRequest is the body of POST /scenarios/{name}/transitions.
type transitionRequest struct {
	CurrentState    string `json:"current_state"`
	TargetState     string `json:"target_state"`
	SourceComponent string `json:"source_component"`
	Reason          string `json:"reason"`
	TransitionID    string `json:"transition_id"`
}

// graphView describes the state graph.
type graphView struct {
	States   []scenario.State `json:"states"`
	Initial  scenario.State   `json:"initial"`
	Terminal []scenario.State `json:"terminal"`
	Edges    []scenario.Edge  `json:"edges"`
}

// handleGetGraph returns the fixed state graph.
func (s *Server) handleGetGraph(w http.ResponseWriter, _ *http.Request) {
	g := graphView{
		States:  scenario.AllStates,
		Initial: scenario.StateIdle,
		Edges:   scenario.Edges(),
	}
	for _, st := range scenario.AllStates {
		if scenario.IsTerminal(st) {
			g.Terminal = append(g.Terminal, st)
		}
	}
	writeJSON(w, http.StatusOK, g)
}

// handleListScenarios returns stored scenarios sorted by name.
//
// Query parameters:
//   - state: only scenarios currently in this state
func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	state, err := scenario.ParseState(r.URL.Query().Get("state"))
	if err != nil {
		writeBadRequest(w, "unknown state")
		return
	}

	snaps, err := s.reader.List(r.Context(), scenario.ListFilter{State: state})
	if err != nil {
		s.logger.Error("failed to list scenarios", "error", err)
		writeScenarioError(w, err)
		return
	}

	views := make([]scenarioView, 0, len(snaps))
	for _, snap := range snaps {
		views = append(views, newScenarioView(snap))
	}
	writeJSON(w, http.StatusOK, map[string]any{"scenarios": views, "count": len(views)})
}

// handleGetScenario returns one scenario. A name with no commits reads as
// idle at version 0.
func (s *Server) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := scenario.ValidateName(name); err != nil {
		writeBadRequest(w, "invalid scenario name")
		return
	}

	snap, err := s.reader.Snapshot(r.Context(), name)
	if err != nil {
		writeScenarioError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newScenarioView(snap))
}

// handleGetHistory returns committed transitions in commit order.
//
// Query parameters:
//   - limit: most recent entries to return (default 100, max 1000)
func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := scenario.ValidateName(name); err != nil {
		writeBadRequest(w, "invalid scenario name")
		return
	}

	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxHistoryLimit {
			writeBadRequest(w, "limit must be between 1 and "+strconv.Itoa(maxHistoryLimit))
			return
		}
		limit = n
	}

	records, err := s.reader.History(r.Context(), name, limit)
	if err != nil {
		writeScenarioError(w, err)
		return
	}
	if records == nil {
		records = []scenario.TransitionRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"scenario":    name,
		"transitions": records,
		"count":       len(records),
	})
}

// handleProposeTransition submits a proposal and returns the committed result.
// Rejections carry the stored state in the error details.
func (s *Server) handleProposeTransition(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req transitionRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	current, err := scenario.ParseState(req.CurrentState)
	if err != nil {
		writeScenarioError(w, err)
		return
	}
	target, err := scenario.ParseState(req.TargetState)
	if err != nil {
		writeScenarioError(w, err)
		return
	}
	source := strings.TrimSpace(req.SourceComponent)
	if source == "" {
		source = sourceComponentREST
	}

	res, err := s.proposer.ProposeTransition(r.Context(), scenario.Proposal{
		ResourceName:    name,
		CurrentState:    current,
		TargetState:     target,
		SourceComponent: source,
		Reason:          req.Reason,
		TransitionID:    strings.TrimSpace(req.TransitionID),
	})
	if err != nil {
		s.logger.Debug("proposal rejected",
			"scenario", name,
			"target", target,
			"kind", scenario.KindOf(err),
			"request_id", requestIDFrom(r.Context()),
		)
		writeScenarioError(w, err)
		return
	}

	status := http.StatusCreated
	if res.Replayed {
		status = http.StatusOK
	}
	writeJSON(w, status, res)
}
