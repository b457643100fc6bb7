package mqtt

import (
	"context"
	"errors"
	"sync"
)

type subscription struct {
	topic   string
	qos     byte
	handler MessageHandler
}

// subscriptions remembers what to re-subscribe after a reconnect; the
// broker keeps no session.
type subscriptions struct {
	mu      sync.RWMutex
	byTopic map[string]subscription
}

func newSubscriptions() *subscriptions {
	return &subscriptions{byTopic: make(map[string]subscription)}
}

func (s *subscriptions) put(sub subscription) {
	s.mu.Lock()
	s.byTopic[sub.topic] = sub
	s.mu.Unlock()
}

func (s *subscriptions) remove(topic string) {
	s.mu.Lock()
	delete(s.byTopic, topic)
	s.mu.Unlock()
}

func (s *subscriptions) all() []subscription {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]subscription, 0, len(s.byTopic))
	for _, sub := range s.byTopic {
		out = append(out, sub)
	}
	return out
}

// Subscribe routes messages matching topic (wildcards allowed) to handler
// and restores the subscription after every reconnect.
func (c *Client) Subscribe(topic string, qos byte, handler MessageHandler) error {
	if err := validate(topic, qos); err != nil {
		return err
	}
	if handler == nil {
		return &OpError{Op: "subscribe", Topic: topic, Err: errors.New("nil handler")}
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}

	sub := subscription{topic: topic, qos: qos, handler: handler}
	c.subs.put(sub)

	ctx, cancel := context.WithTimeout(context.Background(), defaultPublishTimeout)
	defer cancel()
	if err := await(ctx, c.paho.Subscribe(topic, qos, c.deliver(handler))); err != nil {
		c.subs.remove(topic)
		return &OpError{Op: "subscribe", Topic: topic, Err: err}
	}
	return nil
}

// Unsubscribe stops delivery for topic.
func (c *Client) Unsubscribe(topic string) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}
	c.subs.remove(topic)

	ctx, cancel := context.WithTimeout(context.Background(), defaultPublishTimeout)
	defer cancel()
	if err := await(ctx, c.paho.Unsubscribe(topic)); err != nil {
		return &OpError{Op: "unsubscribe", Topic: topic, Err: err}
	}
	return nil
}

// SubscriptionCount returns the number of subscriptions restored on reconnect.
func (c *Client) SubscriptionCount() int {
	c.subs.mu.RLock()
	defer c.subs.mu.RUnlock()
	return len(c.subs.byTopic)
}

// HasSubscription matches the exact topic string, not a pattern.
func (c *Client) HasSubscription(topic string) bool {
	c.subs.mu.RLock()
	defer c.subs.mu.RUnlock()
	_, ok := c.subs.byTopic[topic]
	return ok
}
