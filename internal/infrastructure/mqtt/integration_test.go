//go:build integration

package mqtt

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nerrad567/scenario-state-core/internal/notifier"
	"github.com/nerrad567/scenario-state-core/internal/scenario"
)

// Integration tests against a running MQTT broker at 127.0.0.1:1883.
//
// Run with:
//   go test -tags=integration -count=1 -v ./internal/infrastructure/mqtt/...

// TestIntegration_SubscriptionTracking verifies the tracking used to
// restore subscriptions after a reconnect.
func TestIntegration_SubscriptionTracking(t *testing.T) {
	cfg := testConfig()
	cfg.Broker.ClientID = "statecore-int-sub-track"
	client := connectOrSkip(t, cfg)

	topics := []string{
		Topics{}.Propose(),
		Topics{}.AllScenarioStates(),
		Topics{}.StageTrigger("actioncontroller"),
	}
	handler := func(string, []byte) error { return nil }

	for _, topic := range topics {
		if err := client.Subscribe(topic, 1, handler); err != nil {
			t.Fatalf("Subscribe(%s) error = %v", topic, err)
		}
	}
	if client.SubscriptionCount() != len(topics) {
		t.Errorf("SubscriptionCount() = %d, want %d", client.SubscriptionCount(), len(topics))
	}

	if err := client.Unsubscribe(topics[0]); err != nil {
		t.Fatalf("Unsubscribe() error = %v", err)
	}
	if client.HasSubscription(topics[0]) {
		t.Errorf("HasSubscription(%s) = true after unsubscribe", topics[0])
	}
	if client.SubscriptionCount() != len(topics)-1 {
		t.Errorf("SubscriptionCount() = %d, want %d", client.SubscriptionCount(), len(topics)-1)
	}
}

// TestIntegration_RetainedStateForLateSubscriber checks that a subscriber
// arriving after a commit still sees the scenario's current state.
func TestIntegration_RetainedStateForLateSubscriber(t *testing.T) {
	cfg := testConfig()
	cfg.Broker.ClientID = "statecore-int-state-pub"
	pubClient := connectOrSkip(t, cfg)

	name := "int-retained-" + time.Now().Format("150405.000")
	sp := NewStatePublisher(pubClient, 1, nil)
	sp.TransitionCommitted(context.Background(), scenario.TransitionRecord{
		TransitionID:    "int-waiting-1",
		Scenario:        name,
		SourceComponent: "int",
		From:            scenario.StateIdle,
		To:              scenario.StateWaiting,
		Timestamp:       time.Now().UTC(),
		Version:         1,
	})
	t.Cleanup(func() {
		// Clear the retained message.
		_ = pubClient.Publish(Topics{}.ScenarioState(name), nil, 1, true)
	})

	cfg.Broker.ClientID = "statecore-int-state-sub"
	subClient := connectOrSkip(t, cfg)

	received := make(chan StatePayload, 1)
	err := subClient.Subscribe(Topics{}.AllScenarioStates(), 1, func(topic string, payload []byte) error {
		got, ok := ParseScenarioStateTopic(topic)
		if !ok || got != name {
			return nil
		}
		var state StatePayload
		if err := json.Unmarshal(payload, &state); err != nil {
			return err
		}
		select {
		case received <- state:
		default:
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	select {
	case state := <-received:
		if state.State != scenario.StateWaiting || state.Version != 1 {
			t.Errorf("state = %+v, want waiting v1", state)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for retained state")
	}
}

// TestIntegration_StageTriggerDelivered publishes a trigger and reads it
// back as a stage component would.
func TestIntegration_StageTriggerDelivered(t *testing.T) {
	cfg := testConfig()
	cfg.Broker.ClientID = "statecore-int-stage-pub"
	pubClient := connectOrSkip(t, cfg)

	cfg.Broker.ClientID = "statecore-int-stage-sub"
	stageClient := connectOrSkip(t, cfg)

	received := make(chan notifier.TriggerRequest, 1)
	err := stageClient.Subscribe(Topics{}.StageTrigger(notifier.ComponentActionController), 1,
		func(_ string, payload []byte) error {
			var req notifier.TriggerRequest
			if err := json.Unmarshal(payload, &req); err != nil {
				return err
			}
			received <- req
			return nil
		})
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	time.Sleep(100 * time.Millisecond)

	want := notifier.TriggerRequest{
		ScenarioName: "int-stage",
		TransitionID: "policy-allowed-1",
		State:        scenario.StateAllowed,
		Entry:        notifier.EntryExecuteAction,
	}
	resp, err := NewStageTrigger(pubClient).Trigger(context.Background(), notifier.ComponentActionController, want)
	if err != nil || !resp.Accepted {
		t.Fatalf("Trigger() = %+v, %v", resp, err)
	}

	select {
	case got := <-received:
		if got != want {
			t.Errorf("received %+v, want %+v", got, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for trigger")
	}
}

// TestIntegration_CallbacksRegistered verifies callbacks can be set and cleared.
func TestIntegration_CallbacksRegistered(t *testing.T) {
	cfg := testConfig()
	cfg.Broker.ClientID = "statecore-int-callbacks"
	client := connectOrSkip(t, cfg)

	var connectCount, disconnectCount int32
	client.SetOnConnect(func() { atomic.AddInt32(&connectCount, 1) })
	client.SetOnDisconnect(func(error) { atomic.AddInt32(&disconnectCount, 1) })

	client.SetOnConnect(nil)
	client.SetOnDisconnect(nil)
}

// TestIntegration_LoggerSet verifies logger can be set and cleared.
func TestIntegration_LoggerSet(t *testing.T) {
	cfg := testConfig()
	cfg.Broker.ClientID = "statecore-int-logger"
	client := connectOrSkip(t, cfg)

	client.SetLogger(&mockLogger{})
	if client.hooks().logger == nil {
		t.Error("logger = nil after SetLogger()")
	}

	client.SetLogger(nil)
	if client.hooks().logger != nil {
		t.Error("logger should be nil after SetLogger(nil)")
	}
}
