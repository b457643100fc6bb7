package rpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	statemanagerv1 "github.com/nerrad567/scenario-state-core/api/gen/go/scenario/statemanager/v1"
	"github.com/nerrad567/scenario-state-core/internal/scenario"
)

const bufSize = 1 << 20

// bufDialOptions dials lis in memory.
func bufDialOptions(lis *bufconn.Listener) []grpc.DialOption {
	return []grpc.DialOption{
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
}

type testEnv struct {
	client      *Client
	conn        *grpc.ClientConn
	coordinator *scenario.Coordinator
}

// newTestEnv starts a server over a memory store and returns a client.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	registry := scenario.NewRegistry(scenario.NewMemoryStore())
	coordinator := scenario.NewCoordinator(registry, scenario.Options{}, nil)
	return newTestEnvWith(t, NewService(coordinator, registry, nil), coordinator)
}

func newTestEnvWith(t *testing.T, svc statemanagerv1.StateManagerServer, coordinator *scenario.Coordinator) *testEnv {
	t.Helper()

	lis := bufconn.Listen(bufSize)
	srv := NewServer(svc, nil)
	srv.Serve(lis)

	conn, err := grpc.NewClient("passthrough:///bufnet", bufDialOptions(lis)...)
	if err != nil {
		t.Fatalf("grpc.NewClient() error = %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Close(ctx) //nolint:errcheck // test cleanup
		if coordinator != nil {
			coordinator.Wait()
		}
	})
	return &testEnv{client: NewClient(conn), conn: conn, coordinator: coordinator}
}

func proposeReq(name, current, target, source string) *statemanagerv1.ProposeStateChangeRequest {
	return &statemanagerv1.ProposeStateChangeRequest{
		ResourceType:    scenario.ResourceTypeScenario,
		ResourceName:    name,
		CurrentState:    current,
		TargetState:     target,
		SourceComponent: source,
	}
}

func TestProposeStateChange_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	steps := []struct {
		current, target, source string
	}{
		{"idle", "waiting", "actioncontroller"},
		{"waiting", "satisfied", "conditionevaluator"},
		{"satisfied", "allowed", "policymanager"},
		{"allowed", "completed", "actioncontroller"},
	}

	for i, step := range steps {
		resp, err := env.client.ProposeStateChange(ctx, proposeReq("temp-alert", step.current, step.target, step.source))
		if err != nil {
			t.Fatalf("step %d: ProposeStateChange() error = %v", i, err)
		}
		if !resp.Accepted || resp.ErrorCode != CodeSuccess {
			t.Fatalf("step %d: response = %+v, want accepted", i, resp)
		}
		if resp.NewState != step.target {
			t.Errorf("step %d: NewState = %q, want %q", i, resp.NewState, step.target)
		}
		if resp.Version != int64(i+1) {
			t.Errorf("step %d: Version = %d, want %d", i, resp.Version, i+1)
		}
		if resp.TransitionId == "" {
			t.Errorf("step %d: TransitionID is empty", i)
		}
	}

	got, err := env.client.GetScenario(ctx, &statemanagerv1.GetScenarioRequest{ScenarioName: "temp-alert"})
	if err != nil {
		t.Fatalf("GetScenario() error = %v", err)
	}
	if got.Scenario.State != "completed" || got.Scenario.Version != 4 || !got.Scenario.Terminal {
		t.Errorf("GetScenario() = %+v, want terminal completed v4", got.Scenario)
	}
}

func TestProposeStateChange_ErrorCodes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name        string
		req         *statemanagerv1.ProposeStateChangeRequest
		wantCode    string
		wantDetails map[string]string
	}{
		{
			name: "wrong resource type",
			req: &statemanagerv1.ProposeStateChangeRequest{
				ResourceType: "DEVICE", ResourceName: "a", TargetState: "waiting", SourceComponent: "x",
			},
			wantCode: CodeInvalidRequest,
		},
		{
			name:     "unknown target state",
			req:      proposeReq("b", "", "finished", "x"),
			wantCode: CodeInvalidRequest,
		},
		{
			name:     "missing source component",
			req:      proposeReq("c", "", "waiting", ""),
			wantCode: CodeInvalidRequest,
		},
		{
			name:        "skipped stage",
			req:         proposeReq("d", "idle", "satisfied", "conditionevaluator"),
			wantCode:    CodeInvalidTransition,
			wantDetails: map[string]string{"from_state": "idle", "to_state": "satisfied"},
		},
		{
			name:        "stale belief",
			req:         proposeReq("e", "waiting", "satisfied", "conditionevaluator"),
			wantCode:    CodeStaleProposal,
			wantDetails: map[string]string{"believed_state": "waiting", "actual_state": "idle", "version": "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := env.client.ProposeStateChange(ctx, tt.req)
			if err != nil {
				t.Fatalf("ProposeStateChange() error = %v", err)
			}
			if resp.Accepted {
				t.Fatal("Accepted = true, want false")
			}
			if resp.ErrorCode != tt.wantCode {
				t.Errorf("ErrorCode = %q, want %q (message %q)", resp.ErrorCode, tt.wantCode, resp.Message)
			}
			if resp.Message == "" {
				t.Error("Message is empty")
			}
			for k, want := range tt.wantDetails {
				if got := resp.ErrorDetails[k]; got != want {
					t.Errorf("ErrorDetails[%q] = %q, want %q", k, got, want)
				}
			}
		})
	}

	// Rejections commit nothing.
	list, err := env.client.ListScenarios(ctx, &statemanagerv1.ListScenariosRequest{})
	if err != nil {
		t.Fatalf("ListScenarios() error = %v", err)
	}
	if len(list.Scenarios) != 0 {
		t.Errorf("ListScenarios() = %+v, want none", list.Scenarios)
	}
}

func TestProposeStateChange_TerminalIsFinal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, target := range []string{"waiting", "satisfied", "denied"} {
		resp, err := env.client.ProposeStateChange(ctx, proposeReq("restricted", "", target, "x"))
		if err != nil || !resp.Accepted {
			t.Fatalf("propose %s: %+v, %v", target, resp, err)
		}
	}

	resp, err := env.client.ProposeStateChange(ctx, proposeReq("restricted", "", "allowed", "policymanager"))
	if err != nil {
		t.Fatalf("ProposeStateChange() error = %v", err)
	}
	if resp.ErrorCode != CodeInvalidTransition {
		t.Errorf("ErrorCode = %q, want %q", resp.ErrorCode, CodeInvalidTransition)
	}
}

func TestProposeStateChange_Replay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req := proposeReq("replay", "idle", "waiting", "actioncontroller")
	req.TransitionId = "ac-waiting-42"

	first, err := env.client.ProposeStateChange(ctx, req)
	if err != nil || !first.Accepted {
		t.Fatalf("first proposal: %+v, %v", first, err)
	}
	// current_state is now out of date, but the id was already committed.
	second, err := env.client.ProposeStateChange(ctx, req)
	if err != nil {
		t.Fatalf("second proposal error = %v", err)
	}
	if !second.Accepted || !second.Replayed {
		t.Fatalf("second = %+v, want accepted replay", second)
	}
	if second.Version != first.Version || second.TransitionId != "ac-waiting-42" {
		t.Errorf("second = %+v, want version %d", second, first.Version)
	}

	history, err := env.client.GetHistory(ctx, &statemanagerv1.GetHistoryRequest{ScenarioName: "replay"})
	if err != nil {
		t.Fatalf("GetHistory() error = %v", err)
	}
	if len(history.Transitions) != 1 {
		t.Errorf("history has %d records, want 1", len(history.Transitions))
	}
}

func TestGetScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.client.GetScenario(ctx, &statemanagerv1.GetScenarioRequest{ScenarioName: "never-seen"})
	if err != nil {
		t.Fatalf("GetScenario() error = %v", err)
	}
	if resp.Scenario.State != "idle" || resp.Scenario.Version != 0 || resp.Scenario.UpdatedAtMs != 0 {
		t.Errorf("GetScenario() = %+v, want idle v0", resp.Scenario)
	}

	_, err = env.client.GetScenario(ctx, &statemanagerv1.GetScenarioRequest{ScenarioName: "bad/name"})
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("GetScenario(bad name) code = %v, want InvalidArgument", status.Code(err))
	}
}

func TestGetHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, target := range []string{"waiting", "satisfied"} {
		if resp, err := env.client.ProposeStateChange(ctx, proposeReq("hist", "", target, "x")); err != nil || !resp.Accepted {
			t.Fatalf("propose %s: %+v, %v", target, resp, err)
		}
	}

	all, err := env.client.GetHistory(ctx, &statemanagerv1.GetHistoryRequest{ScenarioName: "hist"})
	if err != nil {
		t.Fatalf("GetHistory() error = %v", err)
	}
	if len(all.Transitions) != 2 {
		t.Fatalf("history has %d records, want 2", len(all.Transitions))
	}
	first := all.Transitions[0]
	if first.FromState != "idle" || first.ToState != "waiting" || first.Version != 1 {
		t.Errorf("first record = %+v", first)
	}
	if all.Transitions[1].TimestampMs < first.TimestampMs {
		t.Error("timestamps go backwards")
	}

	last, err := env.client.GetHistory(ctx, &statemanagerv1.GetHistoryRequest{ScenarioName: "hist", Limit: 1})
	if err != nil {
		t.Fatalf("GetHistory(limit 1) error = %v", err)
	}
	if len(last.Transitions) != 1 || last.Transitions[0].ToState != "satisfied" {
		t.Errorf("GetHistory(limit 1) = %+v, want the satisfied record", last.Transitions)
	}

	_, err = env.client.GetHistory(ctx, &statemanagerv1.GetHistoryRequest{ScenarioName: "hist", Limit: -1})
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("GetHistory(limit -1) code = %v, want InvalidArgument", status.Code(err))
	}
}

func TestListScenarios(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.client.ProposeStateChange(ctx, proposeReq("b-alert", "", "waiting", "x")) //nolint:errcheck
	env.client.ProposeStateChange(ctx, proposeReq("a-alert", "", "waiting", "x")) //nolint:errcheck
	env.client.ProposeStateChange(ctx, proposeReq("a-alert", "", "satisfied", "x")) //nolint:errcheck

	all, err := env.client.ListScenarios(ctx, &statemanagerv1.ListScenariosRequest{})
	if err != nil {
		t.Fatalf("ListScenarios() error = %v", err)
	}
	if len(all.Scenarios) != 2 || all.Scenarios[0].Name != "a-alert" {
		t.Errorf("ListScenarios() = %+v, want a-alert then b-alert", all.Scenarios)
	}

	waiting, err := env.client.ListScenarios(ctx, &statemanagerv1.ListScenariosRequest{State: "waiting"})
	if err != nil {
		t.Fatalf("ListScenarios(waiting) error = %v", err)
	}
	if len(waiting.Scenarios) != 1 || waiting.Scenarios[0].Name != "b-alert" {
		t.Errorf("ListScenarios(waiting) = %+v, want b-alert", waiting.Scenarios)
	}

	_, err = env.client.ListScenarios(ctx, &statemanagerv1.ListScenariosRequest{State: "exploded"})
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("ListScenarios(unknown state) code = %v, want InvalidArgument", status.Code(err))
	}
}

func TestGetStateGraph(t *testing.T) {
	env := newTestEnv(t)

	graph, err := env.client.GetStateGraph(context.Background())
	if err != nil {
		t.Fatalf("GetStateGraph() error = %v", err)
	}
	if graph.Initial != "idle" {
		t.Errorf("Initial = %q, want idle", graph.Initial)
	}
	if len(graph.States) != 6 {
		t.Errorf("States = %v, want 6 states", graph.States)
	}
	if len(graph.Terminal) != 2 {
		t.Errorf("Terminal = %v, want denied and completed", graph.Terminal)
	}
	if len(graph.Edges) != 5 {
		t.Errorf("Edges = %v, want 5", graph.Edges)
	}
	for _, e := range graph.Edges {
		if !scenario.CanTransition(scenario.State(e.From), scenario.State(e.To)) {
			t.Errorf("edge %s -> %s is not in the graph", e.From, e.To)
		}
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	health := grpc_health_v1.NewHealthClient(env.conn)
	resp, err := health.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: StateManagerServiceName})
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if resp.Status != grpc_health_v1.HealthCheckResponse_SERVING {
		t.Errorf("Status = %v, want SERVING", resp.Status)
	}
}

// stubProposer returns a fixed error.
type stubProposer struct {
	err error
}

func (p stubProposer) ProposeTransition(context.Context, scenario.Proposal) (*scenario.TransitionResult, error) {
	return nil, p.err
}

func TestProposeStateChange_InfrastructureErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:     "store unavailable",
			err:      fmt.Errorf("%w: load: connection refused", scenario.ErrStoreUnavailable),
			wantCode: CodeStoreUnavailable,
		},
		{
			name:     "contention",
			err:      &scenario.ContentionError{Scenario: "a", Attempts: 5, State: scenario.StateWaiting, Version: 3},
			wantCode: CodeContention,
		},
		{
			name:        "proposal timeout",
			err:         fmt.Errorf("commit alpha: %w", context.DeadlineExceeded),
			wantCode:    CodeCancelled,
			wantMessage: "commit alpha: context deadline exceeded",
		},
		{
			name:        "internal error is masked",
			err:         errors.New("sql: secret table layout"),
			wantCode:    CodeInternal,
			wantMessage: "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnvWith(t, NewService(stubProposer{err: tt.err}, nil, nil), nil)

			resp, err := env.client.ProposeStateChange(context.Background(), proposeReq("a", "", "waiting", "x"))
			if err != nil {
				t.Fatalf("ProposeStateChange() error = %v", err)
			}
			if resp.ErrorCode != tt.wantCode {
				t.Errorf("ErrorCode = %q, want %q", resp.ErrorCode, tt.wantCode)
			}
			if tt.wantMessage != "" && resp.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", resp.Message, tt.wantMessage)
			}
		})
	}
}

func TestProposeStateChange_CancelledCall(t *testing.T) {
	svc := NewService(stubProposer{err: context.Canceled}, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ProposeStateChange(ctx, proposeReq("a", "", "waiting", "x"))
	if status.Code(err) != codes.Canceled {
		t.Errorf("code = %v, want Canceled", status.Code(err))
	}
}

func TestCodeFor(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, CodeSuccess},
		{scenario.ErrInvalidProposal, CodeInvalidRequest},
		{scenario.ErrScenarioNotFound, CodeInvalidRequest},
		{&scenario.TransitionError{From: scenario.StateIdle, To: scenario.StateAllowed}, CodeInvalidTransition},
		{&scenario.StaleError{Scenario: "a", Believed: scenario.StateWaiting, Actual: scenario.StateIdle}, CodeStaleProposal},
		{&scenario.ContentionError{Scenario: "a", Attempts: 5}, CodeContention},
		{fmt.Errorf("%w: x", scenario.ErrStoreUnavailable), CodeStoreUnavailable},
		{context.Canceled, CodeCancelled},
		{fmt.Errorf("load: %w", context.DeadlineExceeded), CodeCancelled},
		{errors.New("boom"), CodeInternal},
	}

	for _, tt := range tests {
		if got := CodeFor(tt.err); got != tt.want {
			t.Errorf("CodeFor(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestJSONContentSubtype(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.client.ProposeStateChange(ctx, proposeReq("json-wire", "idle", "waiting", "x"), CallJSON())
	if err != nil {
		t.Fatalf("ProposeStateChange(json) error = %v", err)
	}
	if !resp.Accepted || resp.Version != 1 {
		t.Errorf("ProposeStateChange(json) = %+v, want accepted v1", resp)
	}

	got, err := env.client.GetScenario(ctx, &statemanagerv1.GetScenarioRequest{ScenarioName: "json-wire"}, CallJSON())
	if err != nil {
		t.Fatalf("GetScenario(json) error = %v", err)
	}
	if got.GetScenario().GetState() != "waiting" || got.GetScenario().GetVersion() != 1 {
		t.Errorf("GetScenario(json) = %+v", got.GetScenario())
	}
}

func TestJSONCodec_RejectsNonProto(t *testing.T) {
	if _, err := (jsonCodec{}).Marshal(struct{}{}); err == nil {
		t.Error("Marshal(struct{}) error = nil")
	}
	if err := (jsonCodec{}).Unmarshal([]byte("{}"), &struct{}{}); err == nil {
		t.Error("Unmarshal(struct{}) error = nil")
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want codes.Code
	}{
		{scenario.ErrInvalidProposal, codes.InvalidArgument},
		{scenario.ErrScenarioNotFound, codes.NotFound},
		{fmt.Errorf("%w: x", scenario.ErrStoreUnavailable), codes.Unavailable},
		{context.DeadlineExceeded, codes.DeadlineExceeded},
		{errors.New("boom"), codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := status.Code(statusFor(tt.err)); got != tt.want {
				t.Errorf("statusFor(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestToProposal(t *testing.T) {
	p, err := ToProposal(&statemanagerv1.ProposeStateChangeRequest{
		ResourceType:    "scenario",
		ResourceName:    " temp-alert ",
		CurrentState:    "IDLE",
		TargetState:     "Waiting",
		SourceComponent: "actioncontroller",
		TransitionId:    "ac-1",
	})
	if err != nil {
		t.Fatalf("ToProposal() error = %v", err)
	}
	if p.ResourceName != "temp-alert" || p.CurrentState != scenario.StateIdle || p.TargetState != scenario.StateWaiting {
		t.Errorf("ToProposal() = %+v", p)
	}

	if _, err := ToProposal(&statemanagerv1.ProposeStateChangeRequest{ResourceType: "LIGHT", ResourceName: "a", TargetState: "waiting"}); !errors.Is(err, scenario.ErrInvalidProposal) {
		t.Errorf("ToProposal(LIGHT) error = %v, want ErrInvalidProposal", err)
	}
}
