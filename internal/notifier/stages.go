package notifier

import "github.com/nerrad567/scenario-state-core/internal/scenario"

// Stage components.
const (
	ComponentActionController = "actioncontroller"
	ComponentPolicyManager    = "policymanager"
)

// Stage entry points.
const (
	EntryTriggerAction = "TriggerAction"
	EntryCheckPolicy   = "CheckPolicy"
	EntryExecuteAction = "ExecuteAction"
)

// Stage names the component and entry point woken by a committed state.
type Stage struct {
	Component string `json:"component"`
	Entry     string `json:"entry"`
}

var stages = map[scenario.State]Stage{
	scenario.StateWaiting:   {Component: ComponentActionController, Entry: EntryTriggerAction},
	scenario.StateSatisfied: {Component: ComponentPolicyManager, Entry: EntryCheckPolicy},
	scenario.StateAllowed:   {Component: ComponentActionController, Entry: EntryExecuteAction},
}

// StageFor returns the stage to trigger after a commit into state.
// idle, denied and completed have none.
func StageFor(state scenario.State) (Stage, bool) {
	s, ok := stages[state]
	return s, ok
}

// Components lists every component that receives triggers.
func Components() []string {
	return []string{ComponentActionController, ComponentPolicyManager}
}
