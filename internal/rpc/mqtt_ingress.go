package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	statemanagerv1 "github.com/nerrad567/scenario-state-core/api/gen/go/scenario/statemanager/v1"
	"github.com/nerrad567/scenario-state-core/internal/infrastructure/mqtt"
)

const (
	// maxInflightProposals bounds concurrently handled MQTT proposals.
	maxInflightProposals = 32

	replyTimeout = 5 * time.Second
)

var errIngressStopped = errors.New("mqtt ingress stopped")

// MessageBus is the part of *mqtt.Client the ingress needs.
type MessageBus interface {
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
	Unsubscribe(topic string) error
	PublishContext(ctx context.Context, topic string, payload []byte, qos byte, retained bool) error
}

// MQTTProposal is a proposal received on scenario/statemanager/propose.
// The reply goes to scenario/statemanager/response/{request_id}.
type MQTTProposal struct {
	RequestID       string `json:"request_id"`
	ResourceType    string `json:"resource_type"`
	ResourceName    string `json:"resource_name"`
	CurrentState    string `json:"current_state,omitempty"`
	TargetState     string `json:"target_state"`
	SourceComponent string `json:"source_component"`
	Reason          string `json:"reason,omitempty"`
	TransitionID    string `json:"transition_id,omitempty"`
	TimestampNs     int64  `json:"timestamp_ns,omitempty"`
}

func (m *MQTTProposal) request() *statemanagerv1.ProposeStateChangeRequest {
	return &statemanagerv1.ProposeStateChangeRequest{
		ResourceType:    m.ResourceType,
		ResourceName:    m.ResourceName,
		CurrentState:    m.CurrentState,
		TargetState:     m.TargetState,
		SourceComponent: m.SourceComponent,
		Reason:          m.Reason,
		TransitionId:    m.TransitionID,
		TimestampNs:     m.TimestampNs,
	}
}

// MQTTProposalResponse is the reply to an MQTTProposal. It carries the
// same fields as the gRPC response.
type MQTTProposalResponse struct {
	RequestID    string            `json:"request_id"`
	Accepted     bool              `json:"accepted"`
	NewState     string            `json:"new_state,omitempty"`
	Version      int64             `json:"version,omitempty"`
	TransitionID string            `json:"transition_id,omitempty"`
	Replayed     bool              `json:"replayed,omitempty"`
	ErrorCode    string            `json:"error_code"`
	Message      string            `json:"message,omitempty"`
	ErrorDetails map[string]string `json:"error_details,omitempty"`
	TimestampNs  int64             `json:"timestamp_ns"`
}

func newMQTTProposalResponse(requestID string, resp *statemanagerv1.ProposeStateChangeResponse) MQTTProposalResponse {
	return MQTTProposalResponse{
		RequestID:    requestID,
		Accepted:     resp.GetAccepted(),
		NewState:     resp.GetNewState(),
		Version:      resp.GetVersion(),
		TransitionID: resp.GetTransitionId(),
		Replayed:     resp.GetReplayed(),
		ErrorCode:    resp.GetErrorCode(),
		Message:      resp.GetMessage(),
		ErrorDetails: resp.GetErrorDetails(),
		TimestampNs:  resp.GetTimestampNs(),
	}
}

// MQTTIngress accepts proposals over MQTT and answers them with the same
// response the gRPC service produces.
type MQTTIngress struct {
	bus      MessageBus
	proposer Proposer
	qos      byte
	logger   Logger

	ctx    context.Context
	cancel context.CancelFunc
	sem    chan struct{}

	mu      sync.Mutex
	stopped bool
	wg      sync.WaitGroup
}

// NewMQTTIngress creates an ingress. logger may be nil.
func NewMQTTIngress(bus MessageBus, proposer Proposer, qos byte, logger Logger) *MQTTIngress {
	if logger == nil {
		logger = noopLogger{}
	}
	return &MQTTIngress{
		bus:      bus,
		proposer: proposer,
		qos:      qos,
		logger:   logger,
		sem:      make(chan struct{}, maxInflightProposals),
	}
}

// Start subscribes to the proposal topic. Proposals run under ctx.
func (in *MQTTIngress) Start(ctx context.Context) error {
	in.ctx, in.cancel = context.WithCancel(ctx)
	if err := in.bus.Subscribe(mqtt.Topics{}.Propose(), in.qos, in.handle); err != nil {
		in.cancel()
		return fmt.Errorf("subscribing to proposals: %w", err)
	}
	in.logger.Info("MQTT proposal ingress started", "topic", mqtt.Topics{}.Propose())
	return nil
}

// Stop unsubscribes and waits for in-flight proposals.
func (in *MQTTIngress) Stop() {
	if in.cancel == nil {
		return
	}
	if err := in.bus.Unsubscribe(mqtt.Topics{}.Propose()); err != nil {
		in.logger.Debug("unsubscribing from proposals failed", "error", err)
	}
	in.mu.Lock()
	in.stopped = true
	in.mu.Unlock()
	in.cancel()
	in.wg.Wait()
}

// track counts one proposal as in flight unless Stop has begun.
func (in *MQTTIngress) track() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.stopped {
		return false
	}
	in.wg.Add(1)
	return true
}

// handle decodes a message and processes it off the MQTT goroutine.
func (in *MQTTIngress) handle(topic string, payload []byte) error {
	var msg MQTTProposal
	if err := json.Unmarshal(payload, &msg); err != nil {
		return fmt.Errorf("decoding proposal on %s: %w", topic, err)
	}
	if !validRequestID(msg.RequestID) {
		in.logger.Warn("MQTT proposal without usable request_id dropped",
			"request_id", msg.RequestID,
			"scenario", msg.ResourceName,
		)
		return nil
	}

	if !in.track() {
		return errIngressStopped
	}
	select {
	case in.sem <- struct{}{}:
	case <-in.ctx.Done():
		in.wg.Done()
		return in.ctx.Err()
	}
	go func() {
		defer in.wg.Done()
		defer func() { <-in.sem }()
		in.process(msg)
	}()
	return nil
}

func (in *MQTTIngress) process(msg MQTTProposal) {
	resp := HandleProposal(in.ctx, in.proposer, msg.request())
	in.logger.Debug("MQTT proposal handled",
		"request_id", msg.RequestID,
		"scenario", msg.ResourceName,
		"target", msg.TargetState,
		"code", resp.GetErrorCode(),
	)

	payload, err := json.Marshal(newMQTTProposalResponse(msg.RequestID, resp))
	if err != nil {
		in.logger.Error("encoding proposal response failed", "error", err)
		return
	}
	// The reply is sent even when ctx was cancelled mid-proposal, so the
	// caller learns the outcome.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(in.ctx), replyTimeout)
	defer cancel()
	if err := in.bus.PublishContext(ctx, mqtt.Topics{}.ProposeResponse(msg.RequestID), payload, in.qos, false); err != nil {
		in.logger.Warn("publishing proposal response failed",
			"request_id", msg.RequestID,
			"error", err,
		)
	}
}

// validRequestID rejects ids that would change the reply topic's shape.
func validRequestID(id string) bool {
	return id != "" && len(id) <= 128 && !strings.ContainsAny(id, "/+# \t\n")
}
