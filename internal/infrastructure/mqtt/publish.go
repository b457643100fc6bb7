package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
)

// maxPayloadSize bounds message payloads (1 MiB).
const maxPayloadSize = 1 << 20

func validate(topic string, qos byte) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if qos > maxQoS {
		return ErrInvalidQoS
	}
	return nil
}

// Publish is PublishContext bounded by defaultPublishTimeout.
func (c *Client) Publish(topic string, payload []byte, qos byte, retained bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultPublishTimeout)
	defer cancel()
	return c.PublishContext(ctx, topic, payload, qos, retained)
}

// PublishContext sends payload and waits until the broker acknowledges it
// (QoS 1 and 2) or the write completes (QoS 0). Scenario state topics are
// retained; proposals, replies and stage triggers are not.
func (c *Client) PublishContext(ctx context.Context, topic string, payload []byte, qos byte, retained bool) error {
	if err := validate(topic, qos); err != nil {
		return err
	}
	if len(payload) > maxPayloadSize {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrPayloadTooLarge, len(payload), maxPayloadSize)
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}
	if err := await(ctx, c.paho.Publish(topic, qos, retained, payload)); err != nil {
		return &OpError{Op: "publish", Topic: topic, Err: err}
	}
	return nil
}

// PublishJSON encodes v and publishes it.
func (c *Client) PublishJSON(ctx context.Context, topic string, v any, qos byte, retained bool) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return &OpError{Op: "publish", Topic: topic, Err: fmt.Errorf("encoding payload: %w", err)}
	}
	return c.PublishContext(ctx, topic, payload, qos, retained)
}
