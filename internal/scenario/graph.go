package scenario

import "sort"

// transitions is the scenario state graph. It is the only definition of
// which moves are legal; every component validates against it, and remote
// components fetch it through the API instead of keeping a copy.
var transitions = map[State][]State{
	StateIdle:      {StateWaiting},
	StateWaiting:   {StateSatisfied},
	StateSatisfied: {StateAllowed, StateDenied},
	StateAllowed:   {StateCompleted},
	StateDenied:    {},
	StateCompleted: {},
}

// Edge is one permitted transition.
type Edge struct {
	From State `json:"from"`
	To   State `json:"to"`
}

// CanTransition reports whether from -> to is an edge of the graph.
// Self-loops and moves out of terminal states are never permitted.
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Validate checks from -> to and returns the resulting state.
// A rejected pair is reported as a *TransitionError.
func Validate(from, to State) (State, error) {
	if !CanTransition(from, to) {
		return from, &TransitionError{From: from, To: to}
	}
	return to, nil
}

// IsTerminal reports whether s has no outgoing edges.
func IsTerminal(s State) bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// Next returns the states reachable from s in one step.
func Next(s State) []State {
	out := make([]State, len(transitions[s]))
	copy(out, transitions[s])
	return out
}

// Edges returns every permitted transition in lifecycle order.
func Edges() []Edge {
	order := make(map[State]int, len(AllStates))
	for i, s := range AllStates {
		order[s] = i
	}

	var edges []Edge
	for from, tos := range transitions {
		for _, to := range tos {
			edges = append(edges, Edge{From: from, To: to})
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return order[edges[i].From] < order[edges[j].From]
		}
		return order[edges[i].To] < order[edges[j].To]
	})
	return edges
}
