package scenario

import (
	"fmt"
	"regexp"
	"strings"
)

// ResourceTypeScenario is the only resource type accepted on the RPC surface.
const ResourceTypeScenario = "SCENARIO"

const maxTransitionIDLen = 200

// namePattern bounds scenario names. Names are embedded in store keys and
// MQTT topics, so separators and wildcards are excluded.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ValidateName checks a scenario name.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: resource_name is required", ErrInvalidProposal)
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: resource_name %q must match %s", ErrInvalidProposal, name, namePattern)
	}
	return nil
}

// ParseState converts a wire string to a State. Matching ignores case and
// surrounding whitespace; an empty string yields an empty State.
func ParseState(s string) (State, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	st := State(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: unknown state %q", ErrInvalidProposal, s)
	}
	return st, nil
}

// ValidateProposal checks the shape of p. It does not consult the graph.
func ValidateProposal(p Proposal) error {
	if err := ValidateName(p.ResourceName); err != nil {
		return err
	}
	if p.TargetState == "" {
		return fmt.Errorf("%w: target_state is required", ErrInvalidProposal)
	}
	if !p.TargetState.Valid() {
		return fmt.Errorf("%w: unknown target_state %q", ErrInvalidProposal, p.TargetState)
	}
	if p.CurrentState != "" && !p.CurrentState.Valid() {
		return fmt.Errorf("%w: unknown current_state %q", ErrInvalidProposal, p.CurrentState)
	}
	if strings.TrimSpace(p.SourceComponent) == "" {
		return fmt.Errorf("%w: source_component is required", ErrInvalidProposal)
	}
	if id := p.TransitionID; id != "" {
		if len(id) > maxTransitionIDLen || strings.ContainsAny(id, "/ \t\n") {
			return fmt.Errorf("%w: transition_id %q is not a valid id", ErrInvalidProposal, id)
		}
	}
	return nil
}
