package rpc

import (
	"context"
	"fmt"
	"sort"

	"google.golang.org/grpc"

	stagev1 "github.com/nerrad567/scenario-state-core/api/gen/go/scenario/stage/v1"
	"github.com/nerrad567/scenario-state-core/internal/notifier"
)

// StageTriggerClient delivers stage triggers over gRPC. It implements
// notifier.Trigger with one connection per component.
type StageTriggerClient struct {
	conns   map[string]*grpc.ClientConn
	clients map[string]stagev1.StageTriggerClient
}

// DialStageTriggers creates lazy connections for every component -> address
// entry in targets.
func DialStageTriggers(targets map[string]string, opts ...grpc.DialOption) (*StageTriggerClient, error) {
	if len(opts) == 0 {
		opts = DefaultDialOptions()
	}
	c := &StageTriggerClient{
		conns:   make(map[string]*grpc.ClientConn, len(targets)),
		clients: make(map[string]stagev1.StageTriggerClient, len(targets)),
	}
	for component, addr := range targets {
		conn, err := grpc.NewClient(addr, opts...)
		if err != nil {
			c.Close() //nolint:errcheck // best effort cleanup on error path
			return nil, fmt.Errorf("dialing %s at %s: %w", component, addr, err)
		}
		c.conns[component] = conn
		c.clients[component] = stagev1.NewStageTriggerClient(conn)
	}
	return c, nil
}

// Components returns the configured component names, sorted.
func (c *StageTriggerClient) Components() []string {
	out := make([]string, 0, len(c.conns))
	for name := range c.conns {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Trigger implements notifier.Trigger.
func (c *StageTriggerClient) Trigger(ctx context.Context, component string, req notifier.TriggerRequest) (notifier.TriggerResponse, error) {
	client, ok := c.clients[component]
	if !ok {
		return notifier.TriggerResponse{}, fmt.Errorf("%w: %s", notifier.ErrUnknownComponent, component)
	}
	out, err := client.TriggerAction(ctx, &stagev1.TriggerActionRequest{
		ScenarioName: req.ScenarioName,
		TransitionId: req.TransitionID,
		State:        string(req.State),
		Entry:        req.Entry,
	})
	if err != nil {
		return notifier.TriggerResponse{}, fmt.Errorf("%s.%s: %w", component, req.Entry, err)
	}
	return notifier.TriggerResponse{Accepted: out.GetAccepted(), Message: out.GetMessage()}, nil
}

// Close closes every connection.
func (c *StageTriggerClient) Close() error {
	var firstErr error
	for _, conn := range c.conns {
		if err := conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
