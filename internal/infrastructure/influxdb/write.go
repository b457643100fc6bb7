package influxdb

import (
	"context"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/nerrad567/scenario-state-core/internal/notifier"
	"github.com/nerrad567/scenario-state-core/internal/scenario"
)

// Measurement names.
const (
	MeasurementTransitions      = "scenario_transitions"
	MeasurementMonitoringEvents = "monitoring_events"

	// EventDownstreamTriggerFailed tags a stage trigger that failed after
	// every retry.
	EventDownstreamTriggerFailed = "DownstreamTriggerFailed"
)

// TransitionCommitted implements scenario.TransitionObserver. Each commit
// becomes one point at the transition's own timestamp.
func (c *Client) TransitionCommitted(_ context.Context, rec scenario.TransitionRecord) {
	c.write(transitionPoint(rec))
}

// RecordTriggerFailure implements notifier.FailureRecorder.
func (c *Client) RecordTriggerFailure(_ context.Context, f notifier.Failure) {
	c.write(failurePoint(f))
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Example:
//
//	client.WritePoint("system_stats",
//	    map[string]string{"host": "core-01"},
//	    map[string]interface{}{"cached_scenarios": 12})
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	c.write(write.NewPoint(measurement, tags, fields, time.Now()))
}

// transitionPoint tags by scenario, edge and source. The transition id and
// version are fields because they are unbounded.
func transitionPoint(rec scenario.TransitionRecord) *write.Point {
	return write.NewPoint(
		MeasurementTransitions,
		map[string]string{
			"scenario":         rec.Scenario,
			"from_state":       string(rec.From),
			"to_state":         string(rec.To),
			"source_component": rec.SourceComponent,
		},
		map[string]interface{}{
			"transition_id": rec.TransitionID,
			"version":       rec.Version,
			"terminal":      scenario.IsTerminal(rec.To),
		},
		rec.Timestamp,
	)
}

func failurePoint(f notifier.Failure) *write.Point {
	at := f.At
	if at.IsZero() {
		at = time.Now()
	}
	fields := map[string]interface{}{
		"transition_id": f.TransitionID,
		"attempts":      f.Attempts,
	}
	if f.Err != nil {
		fields["error"] = f.Err.Error()
	}
	return write.NewPoint(
		MeasurementMonitoringEvents,
		map[string]string{
			"event":     EventDownstreamTriggerFailed,
			"scenario":  f.Scenario,
			"state":     string(f.State),
			"component": f.Component,
			"entry":     f.Entry,
		},
		fields,
		at,
	)
}
