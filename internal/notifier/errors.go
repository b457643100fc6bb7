package notifier

import (
	"errors"
	"fmt"
)

// Domain errors for the notifier package.
var (
	// ErrDownstreamTriggerFailed is returned when every trigger attempt for a
	// stage failed. The committed transition stands; reconciliation is left
	// to the downstream component or an operator.
	ErrDownstreamTriggerFailed = errors.New("notifier: downstream trigger failed")

	// ErrTriggerRejected is returned when the downstream component answered
	// with accepted=false.
	ErrTriggerRejected = errors.New("notifier: trigger rejected")

	// ErrUnknownComponent is returned when no address is configured for a
	// stage component.
	ErrUnknownComponent = errors.New("notifier: unknown component")
)

// TriggerError describes an exhausted trigger.
type TriggerError struct {
	Scenario     string
	TransitionID string
	Component    string
	Entry        string
	Attempts     int
	Err          error
}

func (e *TriggerError) Error() string {
	return fmt.Sprintf("%s: %s.%s for %s (%s) after %d attempts: %v",
		ErrDownstreamTriggerFailed, e.Component, e.Entry, e.Scenario, e.TransitionID, e.Attempts, e.Err)
}

// Unwrap matches both ErrDownstreamTriggerFailed and the last attempt's error.
func (e *TriggerError) Unwrap() []error {
	return []error{ErrDownstreamTriggerFailed, e.Err}
}
