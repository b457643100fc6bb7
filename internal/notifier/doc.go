// Package notifier hands committed scenario transitions to the next
// pipeline stage.
//
// The stage table maps a committed state to a component and entry point:
//
//	waiting   -> actioncontroller.TriggerAction
//	satisfied -> policymanager.CheckPolicy
//	allowed   -> actioncontroller.ExecuteAction
//
// Delivery goes through a Trigger (gRPC or MQTT). Each attempt has its own
// timeout, a response with accepted=false counts as a failure, and a stage
// that fails every attempt is reported to the registered FailureRecorders
// as a DownstreamTriggerFailed event. The commit itself is never undone.
package notifier
