// Package influxdb records scenario activity in InfluxDB.
//
// It wraps the official influxdb-client-go v2 library for connection
// management, batched non-blocking writes and health monitoring, and writes:
//   - scenario_transitions: one point per committed transition
//   - monitoring_events: DownstreamTriggerFailed and other operational events
//
// # Usage
//
//	client, err := influxdb.Connect(ctx, cfg.InfluxDB)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	coordinator.AddObserver(client)
//	stageNotifier.AddFailureRecorder(client)
//
// Writes never block the commit path. Batch failures reach the SetOnError
// callback; points written after Close are dropped.
package influxdb
