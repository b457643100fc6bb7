package api

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/nerrad567/scenario-state-core/internal/infrastructure/config"
	"github.com/nerrad567/scenario-state-core/internal/infrastructure/logging"
	"github.com/nerrad567/scenario-state-core/internal/scenario"
)

const (
	// ChannelTransitions carries every committed transition.
	ChannelTransitions = "scenario.transitions"

	// EventTransitionCommitted is the event_type of transition events.
	EventTransitionCommitted = "scenario.transition_committed"

	scenarioChannelPrefix = "scenario:"
)

// ScenarioChannel returns the channel carrying only name's transitions.
func ScenarioChannel(name string) string {
	return scenarioChannelPrefix + name
}

// validChannel reports whether a client may subscribe to ch.
func validChannel(ch string) bool {
	if ch == ChannelTransitions {
		return true
	}
	name, ok := strings.CutPrefix(ch, scenarioChannelPrefix)
	return ok && scenario.ValidateName(name) == nil
}

// Hub fans events out to WebSocket subscribers. Subscriptions are indexed
// by channel, so a publish only visits the connections that asked for one
// of its channels, and a connection on several of them is sent the event
// once.
//
// Every write to a connection's send queue happens under the hub lock, and
// the queue is only closed under the write lock, so a send never races the
// close.
type Hub struct {
	cfg    config.WebSocketConfig
	logger *logging.Logger

	mu     sync.RWMutex
	conns  map[*wsConn]struct{}
	topics map[string]map[*wsConn]struct{}
	closed bool
}

// NewHub creates a hub. Run must be called to release connections on shutdown.
func NewHub(cfg config.WebSocketConfig, logger *logging.Logger) *Hub {
	return &Hub{
		cfg:    cfg,
		logger: logger,
		conns:  make(map[*wsConn]struct{}),
		topics: make(map[string]map[*wsConn]struct{}),
	}
}

// Run blocks until ctx is done, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.conns {
		h.dropLocked(c)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// SubscriberCount returns the number of clients subscribed to channel.
func (h *Hub) SubscriberCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[channel])
}

// TransitionCommitted implements scenario.TransitionObserver.
func (h *Hub) TransitionCommitted(_ context.Context, rec scenario.TransitionRecord) {
	h.publish(EventTransitionCommitted, rec, ChannelTransitions, ScenarioChannel(rec.Scenario))
}

// Broadcast sends payload to the subscribers of channel, using the channel
// name as the event type.
func (h *Hub) Broadcast(channel string, payload any) {
	h.publish(channel, payload, channel)
}

func (h *Hub) publish(eventType string, payload any, channels ...string) {
	data, err := json.Marshal(Frame{
		Type:      FrameEvent,
		EventType: eventType,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Payload:   payload,
	})
	if err != nil {
		h.logger.Error("encoding websocket event failed", "event_type", eventType, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	seen := make(map[*wsConn]struct{})
	for _, ch := range channels {
		for c := range h.topics[ch] {
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			c.enqueue(data)
		}
	}
	if len(seen) > 0 {
		h.logger.Debug("websocket event published", "event_type", eventType, "recipients", len(seen))
	}
}

// attach adds c. It reports false once the hub has shut down.
func (h *Hub) attach(c *wsConn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.conns[c] = struct{}{}
	h.logger.Debug("websocket client connected", "clients", len(h.conns))
	return true
}

// detach removes c and closes its send queue. Safe to call more than once.
func (h *Hub) detach(c *wsConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.dropLocked(c) {
		h.logger.Debug("websocket client disconnected", "clients", len(h.conns))
	}
}

func (h *Hub) dropLocked(c *wsConn) bool {
	if _, ok := h.conns[c]; !ok {
		return false
	}
	delete(h.conns, c)
	for ch := range c.channels {
		h.leaveLocked(c, ch)
	}
	close(c.send)
	return true
}

func (h *Hub) subscribe(c *wsConn, channels []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[c]; !ok {
		return
	}
	for _, ch := range channels {
		subs := h.topics[ch]
		if subs == nil {
			subs = make(map[*wsConn]struct{})
			h.topics[ch] = subs
		}
		subs[c] = struct{}{}
		c.channels[ch] = struct{}{}
	}
}

func (h *Hub) unsubscribe(c *wsConn, channels []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range channels {
		h.leaveLocked(c, ch)
	}
}

func (h *Hub) leaveLocked(c *wsConn, ch string) {
	delete(c.channels, ch)
	if subs := h.topics[ch]; subs != nil {
		delete(subs, c)
		if len(subs) == 0 {
			delete(h.topics, ch)
		}
	}
}

// reply queues data for c alone, if it is still attached.
func (h *Hub) reply(c *wsConn, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.conns[c]; ok {
		c.enqueue(data)
	}
}
