// Package mqtt provides MQTT connectivity for the scenario state manager.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support
//   - Last Will and Testament (LWT) for offline detection
//   - Mirroring committed scenario states to retained topics
//   - Delivering stage triggers when the MQTT transport is selected
//
// # Topics
//
//	scenario/statemanager/propose             proposals (ingress)
//	scenario/statemanager/response/{request}  proposal replies
//	scenario/statemanager/status              online/offline, retained
//	scenario/{name}/state                     current state, retained
//	scenario/stage/{component}/trigger        stage triggers
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against the broker ACL
//   - Anonymous access is only for local development
//
// # Usage
//
//	client, err := mqtt.Connect(ctx, cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	coordinator.AddObserver(mqtt.NewStatePublisher(client, client.QoS(), logger))
//
//	err = client.Subscribe(mqtt.Topics{}.AllScenarioStates(), 1,
//	    func(topic string, payload []byte) error {
//	        name, _ := mqtt.ParseScenarioStateTopic(topic)
//	        log.Printf("%s = %s", name, payload)
//	        return nil
//	    })
package mqtt
