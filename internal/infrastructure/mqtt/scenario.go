package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nerrad567/scenario-state-core/internal/notifier"
	"github.com/nerrad567/scenario-state-core/internal/scenario"
)

// stageQoS is the delivery level for stage triggers: the broker's PUBACK
// is the delivery confirmation.
const stageQoS = 1

// Publisher is the publishing half of Client.
type Publisher interface {
	PublishContext(ctx context.Context, topic string, payload []byte, qos byte, retained bool) error
}

// StatePayload is the retained message on scenario/{name}/state.
type StatePayload struct {
	Scenario        string         `json:"scenario"`
	State           scenario.State `json:"state"`
	Version         int64          `json:"version"`
	TransitionID    string         `json:"transition_id"`
	SourceComponent string         `json:"source_component"`
	Timestamp       time.Time      `json:"timestamp"`
}

// StatePublisher mirrors committed transitions to the retained
// per-scenario state topic. It implements scenario.TransitionObserver.
//
// Observers run on separate goroutines, so commits can arrive out of
// order; a version older than the last one published is dropped.
type StatePublisher struct {
	pub    Publisher
	qos    byte
	logger Logger

	mu        sync.Mutex
	published map[string]int64
}

// NewStatePublisher creates a publisher. logger may be nil.
func NewStatePublisher(pub Publisher, qos byte, logger Logger) *StatePublisher {
	return &StatePublisher{
		pub:       pub,
		qos:       qos,
		logger:    logger,
		published: make(map[string]int64),
	}
}

// TransitionCommitted implements scenario.TransitionObserver.
func (p *StatePublisher) TransitionCommitted(ctx context.Context, rec scenario.TransitionRecord) {
	payload, err := json.Marshal(StatePayload{
		Scenario:        rec.Scenario,
		State:           rec.To,
		Version:         rec.Version,
		TransitionID:    rec.TransitionID,
		SourceComponent: rec.SourceComponent,
		Timestamp:       rec.Timestamp,
	})
	if err != nil {
		return
	}

	// Held across the publish so two versions of one scenario cannot
	// overtake each other on the wire.
	p.mu.Lock()
	defer p.mu.Unlock()
	if rec.Version <= p.published[rec.Scenario] {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, defaultPublishTimeout)
	defer cancel()
	if err := p.pub.PublishContext(ctx, Topics{}.ScenarioState(rec.Scenario), payload, p.qos, true); err != nil {
		if p.logger != nil {
			p.logger.Warn("publishing scenario state failed",
				"scenario", rec.Scenario,
				"version", rec.Version,
				"error", err,
			)
		}
		return
	}
	p.published[rec.Scenario] = rec.Version
}

// StageTrigger delivers stage triggers on scenario/stage/{component}/trigger.
// It implements notifier.Trigger; a publish acknowledged by the broker
// counts as accepted.
type StageTrigger struct {
	pub Publisher
}

// NewStageTrigger creates an MQTT stage trigger.
func NewStageTrigger(pub Publisher) *StageTrigger {
	return &StageTrigger{pub: pub}
}

// Trigger implements notifier.Trigger.
func (t *StageTrigger) Trigger(ctx context.Context, component string, req notifier.TriggerRequest) (notifier.TriggerResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return notifier.TriggerResponse{}, fmt.Errorf("encoding trigger: %w", err)
	}
	topic := Topics{}.StageTrigger(component)
	if err := t.pub.PublishContext(ctx, topic, payload, stageQoS, false); err != nil {
		return notifier.TriggerResponse{}, fmt.Errorf("%s: %w", topic, err)
	}
	return notifier.TriggerResponse{Accepted: true, Message: "published to " + topic}, nil
}
