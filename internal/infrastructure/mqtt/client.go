package mqtt

import (
	"context"
	"sync"
	"sync/atomic"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/nerrad567/scenario-state-core/internal/infrastructure/config"
)

// Logger receives handler failures and connection loss.
// *logging.Logger satisfies it.
type Logger interface {
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
}

// MessageHandler handles one received message. It runs on a paho
// goroutine; a returned error is logged and the message is still
// acknowledged.
type MessageHandler func(topic string, payload []byte) error

// Client is a paho client that restores its subscriptions after every
// reconnect and keeps the retained status topic current.
// Safe for concurrent use.
type Client struct {
	paho      pahomqtt.Client
	cfg       config.MQTTConfig
	subs      *subscriptions
	connected atomic.Bool

	hookMu       sync.RWMutex
	logger       Logger
	onConnect    func()
	onDisconnect func(error)
}

func newClient(cfg config.MQTTConfig) *Client {
	return &Client{cfg: cfg, subs: newSubscriptions()}
}

// Connect dials the broker and waits for the first CONNACK until ctx ends,
// or defaultConnectTimeout when ctx has no deadline. Paho reconnects on its
// own afterwards.
func Connect(ctx context.Context, cfg config.MQTTConfig) (*Client, error) {
	c := newClient(cfg)

	opts := buildClientOptions(cfg)
	configureLWT(opts, cfg.Broker.ClientID)
	opts.SetOnConnectHandler(func(pahomqtt.Client) { c.connectedHook() })
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) { c.lostHook(err) })
	c.paho = pahomqtt.NewClient(opts)

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultConnectTimeout)
		defer cancel()
	}
	if err := await(ctx, c.paho.Connect()); err != nil {
		// Stops the connect-retry loop.
		c.paho.Disconnect(0)
		return nil, &OpError{Op: "connect", Topic: brokerURL(cfg), Err: err}
	}
	c.connected.Store(true)
	return c, nil
}

// connectedHook runs on every (re)connect.
func (c *Client) connectedHook() {
	c.connected.Store(true)
	for _, s := range c.subs.all() {
		c.paho.Subscribe(s.topic, s.qos, c.deliver(s.handler))
	}
	c.paho.Publish(Topics{}.Status(), c.QoS(), true, statusMessage(statusOnline, c.cfg.Broker.ClientID, ""))

	if fn := c.hooks().onConnect; fn != nil {
		fn()
	}
}

func (c *Client) lostHook(err error) {
	c.connected.Store(false)
	h := c.hooks()
	if h.logger != nil {
		h.logger.Warn("MQTT connection lost", "error", err)
	}
	if h.onDisconnect != nil {
		h.onDisconnect(err)
	}
}

type hookSet struct {
	logger       Logger
	onConnect    func()
	onDisconnect func(error)
}

func (c *Client) hooks() hookSet {
	c.hookMu.RLock()
	defer c.hookMu.RUnlock()
	return hookSet{logger: c.logger, onConnect: c.onConnect, onDisconnect: c.onDisconnect}
}

// SetLogger sets the logger for handler failures and connection loss.
func (c *Client) SetLogger(logger Logger) {
	c.hookMu.Lock()
	c.logger = logger
	c.hookMu.Unlock()
}

// SetOnConnect sets a callback run after every (re)connect.
func (c *Client) SetOnConnect(fn func()) {
	c.hookMu.Lock()
	c.onConnect = fn
	c.hookMu.Unlock()
}

// SetOnDisconnect sets a callback run when the connection drops.
func (c *Client) SetOnDisconnect(fn func(err error)) {
	c.hookMu.Lock()
	c.onDisconnect = fn
	c.hookMu.Unlock()
}

// IsConnected reports whether the broker is currently reachable.
func (c *Client) IsConnected() bool {
	return c.connected.Load() && c.paho != nil && c.paho.IsConnected()
}

// HealthCheck returns ErrNotConnected while the broker is unreachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}
	return nil
}

// QoS returns the configured QoS.
func (c *Client) QoS() byte {
	return byte(c.cfg.QoS) //nolint:gosec // validated to 0..2 by config
}

// Close marks the node offline on the status topic and disconnects.
func (c *Client) Close() error {
	if c.paho == nil {
		return nil
	}
	if c.IsConnected() {
		ctx, cancel := context.WithTimeout(context.Background(), defaultPublishTimeout)
		//nolint:errcheck // the will covers a lost offline message
		await(ctx, c.paho.Publish(Topics{}.Status(), c.QoS(), true,
			statusMessage(statusOffline, c.cfg.Broker.ClientID, "graceful_shutdown")))
		cancel()
	}
	c.paho.Disconnect(disconnectQuiesceMs)
	c.connected.Store(false)
	return nil
}

// deliver adapts h to paho, logging errors and recovering panics.
func (c *Client) deliver(h MessageHandler) pahomqtt.MessageHandler {
	return func(_ pahomqtt.Client, msg pahomqtt.Message) {
		logger := c.hooks().logger
		defer func() {
			if p := recover(); p != nil && logger != nil {
				logger.Error("MQTT handler panicked", "topic", msg.Topic(), "panic", p)
			}
		}()
		if err := h(msg.Topic(), msg.Payload()); err != nil && logger != nil {
			logger.Warn("MQTT handler failed", "topic", msg.Topic(), "error", err)
		}
	}
}
