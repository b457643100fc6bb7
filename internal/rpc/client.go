package rpc

import (
	"context"
	"fmt"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	statemanagerv1 "github.com/nerrad567/scenario-state-core/api/gen/go/scenario/statemanager/v1"
)

// DefaultDialOptions returns plaintext dial options with OTel propagation.
func DefaultDialOptions() []grpc.DialOption {
	return []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}
}

// Client calls the StateManager service.
type Client struct {
	conn *grpc.ClientConn
	api  statemanagerv1.StateManagerClient
	own  bool
}

// Dial creates a client for addr. The connection is established lazily.
func Dial(addr string, opts ...grpc.DialOption) (*Client, error) {
	if len(opts) == 0 {
		opts = DefaultDialOptions()
	}
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("dialing state manager at %s: %w", addr, err)
	}
	return &Client{conn: conn, api: statemanagerv1.NewStateManagerClient(conn), own: true}, nil
}

// NewClient wraps an existing connection. Close does not close conn.
func NewClient(conn *grpc.ClientConn) *Client {
	return &Client{conn: conn, api: statemanagerv1.NewStateManagerClient(conn)}
}

// Close closes the connection if the client created it.
func (c *Client) Close() error {
	if !c.own {
		return nil
	}
	return c.conn.Close()
}

// ProposeStateChange calls StateManager.ProposeStateChange.
func (c *Client) ProposeStateChange(ctx context.Context, req *statemanagerv1.ProposeStateChangeRequest, opts ...grpc.CallOption) (*statemanagerv1.ProposeStateChangeResponse, error) {
	return c.api.ProposeStateChange(ctx, req, opts...)
}

// GetScenario calls StateManager.GetScenario.
func (c *Client) GetScenario(ctx context.Context, req *statemanagerv1.GetScenarioRequest, opts ...grpc.CallOption) (*statemanagerv1.GetScenarioResponse, error) {
	return c.api.GetScenario(ctx, req, opts...)
}

// GetHistory calls StateManager.GetHistory.
func (c *Client) GetHistory(ctx context.Context, req *statemanagerv1.GetHistoryRequest, opts ...grpc.CallOption) (*statemanagerv1.GetHistoryResponse, error) {
	return c.api.GetHistory(ctx, req, opts...)
}

// ListScenarios calls StateManager.ListScenarios.
func (c *Client) ListScenarios(ctx context.Context, req *statemanagerv1.ListScenariosRequest, opts ...grpc.CallOption) (*statemanagerv1.ListScenariosResponse, error) {
	return c.api.ListScenarios(ctx, req, opts...)
}

// GetStateGraph calls StateManager.GetStateGraph.
func (c *Client) GetStateGraph(ctx context.Context, opts ...grpc.CallOption) (*statemanagerv1.GetStateGraphResponse, error) {
	return c.api.GetStateGraph(ctx, &statemanagerv1.GetStateGraphRequest{}, opts...)
}
