package mqtt

import (
	"fmt"
	"strings"
)

// Topic roots.
const (
	// TopicPrefixScenario is the base for per-scenario topics.
	TopicPrefixScenario = "scenario"

	// TopicPrefixStateManager is the base for the state manager's request
	// and response topics.
	TopicPrefixStateManager = "scenario/statemanager"

	// TopicPrefixStage is the base for stage trigger topics.
	TopicPrefixStage = "scenario/stage"
)

// Topics provides builders for scenario MQTT topics.
//
//	topics := mqtt.Topics{}
//	topics.ScenarioState("temp-alert")
//	// Returns: "scenario/temp-alert/state"
type Topics struct{}

// =============================================================================
// State Manager Topics
// =============================================================================

// Propose returns the ingress topic for state change proposals.
//
// Example: scenario/statemanager/propose
func (Topics) Propose() string {
	return TopicPrefixStateManager + "/propose"
}

// ProposeResponse returns the reply topic for one proposal.
//
// Example: scenario/statemanager/response/7f0c...
func (Topics) ProposeResponse(requestID string) string {
	return fmt.Sprintf("%s/response/%s", TopicPrefixStateManager, requestID)
}

// Status returns the retained online/offline topic of the state manager.
//
// Example: scenario/statemanager/status
func (Topics) Status() string {
	return TopicPrefixStateManager + "/status"
}

// =============================================================================
// Scenario Topics
// =============================================================================

// ScenarioState returns the retained state topic of one scenario.
//
// Example: scenario/temp-alert/state
func (Topics) ScenarioState(name string) string {
	return fmt.Sprintf("%s/%s/state", TopicPrefixScenario, name)
}

// AllScenarioStates returns a wildcard over every scenario state topic.
// The statemanager and stage subtrees never end in /state.
func (Topics) AllScenarioStates() string {
	return TopicPrefixScenario + "/+/state"
}

// =============================================================================
// Stage Topics
// =============================================================================

// StageTrigger returns the trigger topic of a stage component.
//
// Example: scenario/stage/actioncontroller/trigger
func (Topics) StageTrigger(component string) string {
	return fmt.Sprintf("%s/%s/trigger", TopicPrefixStage, component)
}

// =============================================================================
// Topic Parsing
// =============================================================================

// ParseScenarioStateTopic extracts the scenario name from a state topic.
// It returns "" and false for any other topic.
func ParseScenarioStateTopic(topic string) (string, bool) {
	parts := strings.Split(topic, "/")
	if len(parts) != 3 || parts[0] != TopicPrefixScenario || parts[2] != "state" {
		return "", false
	}
	if parts[1] == "" || parts[1] == "statemanager" || parts[1] == "stage" {
		return "", false
	}
	return parts[1], true
}

// ParseStageTriggerTopic extracts the component from a stage trigger topic.
func ParseStageTriggerTopic(topic string) (string, bool) {
	rest, ok := strings.CutPrefix(topic, TopicPrefixStage+"/")
	if !ok {
		return "", false
	}
	component, ok := strings.CutSuffix(rest, "/trigger")
	if !ok || component == "" || strings.Contains(component, "/") {
		return "", false
	}
	return component, true
}
