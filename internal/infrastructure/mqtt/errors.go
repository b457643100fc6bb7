package mqtt

import (
	"context"
	"errors"
	"fmt"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
)

var (
	// ErrNotConnected is returned while the broker is unreachable.
	ErrNotConnected = errors.New("mqtt: not connected")

	// ErrTimeout is returned when the broker does not acknowledge in time.
	ErrTimeout = errors.New("mqtt: timed out waiting for broker")

	ErrInvalidTopic    = errors.New("mqtt: topic cannot be empty")
	ErrInvalidQoS      = errors.New("mqtt: QoS must be 0, 1 or 2")
	ErrPayloadTooLarge = errors.New("mqtt: payload too large")
)

// OpError reports a broker operation that failed.
type OpError struct {
	Op    string // connect, publish, subscribe or unsubscribe
	Topic string // broker URL for connect
	Err   error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("mqtt %s %s: %v", e.Op, e.Topic, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// await waits for token to complete or ctx to end.
func await(ctx context.Context, token pahomqtt.Token) error {
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
	}
}
