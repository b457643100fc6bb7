package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nerrad567/scenario-state-core/internal/infrastructure/config"
)

// Frame types.
const (
	FrameSubscribe   = "subscribe"
	FrameUnsubscribe = "unsubscribe"
	FramePing        = "ping"
	FramePong        = "pong"
	FrameEvent       = "event"
	FrameResponse    = "response"
	FrameError       = "error"
)

// sendQueueSize bounds the frames buffered for one client. A client that
// falls further behind misses events rather than stalling the hub.
const sendQueueSize = 256

// Frame is one JSON message on the socket, in either direction.
type Frame struct {
	Type      string `json:"type"`
	ID        string `json:"id,omitempty"`
	EventType string `json:"event_type,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Payload   any    `json:"payload,omitempty"`
}

// SubscribePayload is the payload of subscribe and unsubscribe frames.
type SubscribePayload struct {
	Channels []string `json:"channels"`
}

// inboundFrame defers decoding the payload until the type is known.
type inboundFrame struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The CORS middleware has already vetted the origin.
	CheckOrigin: func(*http.Request) bool { return true },
}

// wsConn is one client. channels is guarded by the hub lock.
type wsConn struct {
	hub      *Hub
	ws       *websocket.Conn
	send     chan []byte
	channels map[string]struct{}
}

func newWSConn(hub *Hub, ws *websocket.Conn) *wsConn {
	return &wsConn{
		hub:      hub,
		ws:       ws,
		send:     make(chan []byte, sendQueueSize),
		channels: make(map[string]struct{}),
	}
}

// enqueue drops data when the queue is full. Callers hold the hub lock.
func (c *wsConn) enqueue(data []byte) {
	select {
	case c.send <- data:
	default:
		c.hub.logger.Warn("websocket client too slow, frame dropped", "queued", len(c.send))
	}
}

// handleWebSocket upgrades the request. The client receives nothing until
// it subscribes.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := newWSConn(s.Hub(), ws)
	if !c.hub.attach(c) {
		//nolint:errcheck // shutting down
		ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		ws.Close()
		return
	}

	go c.writeLoop(s.wsCfg)
	go c.readLoop(s.wsCfg)
}

// defaultPingInterval applies when websocket.ping_interval is unset.
const defaultPingInterval = 30 * time.Second

// keepalive returns the ping period and the read deadline extension.
func keepalive(cfg config.WebSocketConfig) (ping, wait time.Duration) {
	ping = time.Duration(cfg.PingInterval) * time.Second
	if ping <= 0 {
		ping = defaultPingInterval
	}
	wait = ping + time.Duration(cfg.PongTimeout)*time.Second
	return ping, wait
}

func (c *wsConn) readLoop(cfg config.WebSocketConfig) {
	defer func() {
		c.hub.detach(c)
		c.ws.Close()
	}()

	_, wait := keepalive(cfg)
	extend := func() error { return c.ws.SetReadDeadline(time.Now().Add(wait)) }

	c.ws.SetReadLimit(int64(cfg.MaxMessageSize))
	extend() //nolint:errcheck // the next read reports a broken connection
	c.ws.SetPongHandler(func(string) error { return extend() })

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("websocket read failed", "error", err)
			}
			return
		}
		// Application frames count as liveness for clients that ignore
		// protocol pings.
		extend() //nolint:errcheck // see above
		c.handleFrame(data)
	}
}

func (c *wsConn) writeLoop(cfg config.WebSocketConfig) {
	ping, _ := keepalive(cfg)
	writeWait := time.Duration(cfg.PongTimeout) * time.Second
	ticker := time.NewTicker(ping)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	write := func(kind int, data []byte) error {
		c.ws.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck // the write reports it
		return c.ws.WriteMessage(kind, data)
	}

	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				write(websocket.CloseMessage, nil) //nolint:errcheck // closing anyway
				return
			}
			if err := write(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			if err := write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *wsConn) handleFrame(data []byte) {
	var in inboundFrame
	if err := json.Unmarshal(data, &in); err != nil {
		c.replyError("", "invalid JSON message")
		return
	}

	switch in.Type {
	case FrameSubscribe, FrameUnsubscribe:
		channels, msg := decodeChannels(in.Payload)
		if msg != "" {
			c.replyError(in.ID, msg)
			return
		}
		if in.Type == FrameSubscribe {
			c.hub.subscribe(c, channels)
			c.reply(in.ID, FrameResponse, map[string]any{"subscribed": channels})
			return
		}
		c.hub.unsubscribe(c, channels)
		c.reply(in.ID, FrameResponse, map[string]any{"unsubscribed": channels})
	case FramePing:
		c.reply(in.ID, FramePong, nil)
	default:
		c.replyError(in.ID, "unknown message type: "+in.Type)
	}
}

// decodeChannels returns the requested channels or a client-facing error.
func decodeChannels(raw json.RawMessage) ([]string, string) {
	var p SubscribePayload
	if len(raw) == 0 || json.Unmarshal(raw, &p) != nil {
		return nil, "payload must be {\"channels\": [...]}"
	}
	if len(p.Channels) == 0 {
		return nil, "channels must not be empty"
	}
	for _, ch := range p.Channels {
		if !validChannel(ch) {
			return nil, "unknown channel: " + ch
		}
	}
	return p.Channels, ""
}

func (c *wsConn) reply(id, frameType string, payload any) {
	data, err := json.Marshal(Frame{
		Type:      frameType,
		ID:        id,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Payload:   payload,
	})
	if err != nil {
		return
	}
	c.hub.reply(c, data)
}

func (c *wsConn) replyError(id, message string) {
	c.reply(id, FrameError, map[string]string{"message": message})
}
