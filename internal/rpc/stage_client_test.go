package rpc

import (
	"context"
	"errors"
	"sync"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/proto"

	stagev1 "github.com/nerrad567/scenario-state-core/api/gen/go/scenario/stage/v1"
	"github.com/nerrad567/scenario-state-core/internal/notifier"
	"github.com/nerrad567/scenario-state-core/internal/scenario"
)

// fakeStage is a stage component recording its triggers.
type fakeStage struct {
	stagev1.UnimplementedStageTriggerServer
	mu       sync.Mutex
	requests []*stagev1.TriggerActionRequest
	accept   bool
	err      error
}

func (s *fakeStage) TriggerAction(_ context.Context, req *stagev1.TriggerActionRequest) (*stagev1.TriggerActionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	return &stagev1.TriggerActionResponse{Accepted: s.accept, Message: "seen " + req.GetEntry()}, nil
}

func (s *fakeStage) received() []*stagev1.TriggerActionRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*stagev1.TriggerActionRequest(nil), s.requests...)
}

// startStage serves stage on an in-memory listener.
func startStage(t *testing.T, stage stagev1.StageTriggerServer) *bufconn.Listener {
	t.Helper()
	lis := bufconn.Listen(bufSize)
	srv := grpc.NewServer()
	stagev1.RegisterStageTriggerServer(srv, stage)
	go srv.Serve(lis) //nolint:errcheck // stopped in cleanup
	t.Cleanup(srv.Stop)
	return lis
}

func TestStageTriggerClient_Trigger(t *testing.T) {
	stage := &fakeStage{accept: true}
	lis := startStage(t, stage)

	client, err := DialStageTriggers(map[string]string{
		notifier.ComponentActionController: "passthrough:///actioncontroller",
	}, bufDialOptions(lis)...)
	if err != nil {
		t.Fatalf("DialStageTriggers() error = %v", err)
	}
	defer client.Close()

	req := notifier.TriggerRequest{
		ScenarioName: "temp-alert",
		TransitionID: "ac-waiting-1772355600",
		State:        scenario.StateWaiting,
		Entry:        notifier.EntryTriggerAction,
	}
	resp, err := client.Trigger(context.Background(), notifier.ComponentActionController, req)
	if err != nil {
		t.Fatalf("Trigger() error = %v", err)
	}
	if !resp.Accepted || resp.Message != "seen TriggerAction" {
		t.Errorf("Trigger() = %+v", resp)
	}

	got := stage.received()
	if len(got) != 1 {
		t.Fatalf("stage received %d triggers, want 1", len(got))
	}
	want := &stagev1.TriggerActionRequest{
		ScenarioName: "temp-alert",
		TransitionId: "ac-waiting-1772355600",
		State:        "waiting",
		Entry:        "TriggerAction",
	}
	if !proto.Equal(got[0], want) {
		t.Errorf("stage received %v, want %v", got[0], want)
	}
}

func TestStageTriggerClient_Rejected(t *testing.T) {
	lis := startStage(t, &fakeStage{accept: false})

	client, err := DialStageTriggers(map[string]string{
		notifier.ComponentPolicyManager: "passthrough:///policymanager",
	}, bufDialOptions(lis)...)
	if err != nil {
		t.Fatalf("DialStageTriggers() error = %v", err)
	}
	defer client.Close()

	resp, err := client.Trigger(context.Background(), notifier.ComponentPolicyManager, notifier.TriggerRequest{Entry: notifier.EntryCheckPolicy})
	if err != nil {
		t.Fatalf("Trigger() error = %v", err)
	}
	if resp.Accepted {
		t.Error("Accepted = true, want false")
	}
}

func TestStageTriggerClient_Errors(t *testing.T) {
	lis := startStage(t, &fakeStage{err: status.Error(codes.Unavailable, "busy")})

	client, err := DialStageTriggers(map[string]string{
		notifier.ComponentActionController: "passthrough:///actioncontroller",
	}, bufDialOptions(lis)...)
	if err != nil {
		t.Fatalf("DialStageTriggers() error = %v", err)
	}
	defer client.Close()

	_, err = client.Trigger(context.Background(), notifier.ComponentActionController, notifier.TriggerRequest{Entry: notifier.EntryExecuteAction})
	if status.Code(errors.Unwrap(err)) != codes.Unavailable {
		t.Errorf("Trigger() error = %v, want Unavailable", err)
	}

	_, err = client.Trigger(context.Background(), notifier.ComponentPolicyManager, notifier.TriggerRequest{})
	if !errors.Is(err, notifier.ErrUnknownComponent) {
		t.Errorf("Trigger(unconfigured) error = %v, want ErrUnknownComponent", err)
	}
}

func TestStageTriggerClient_Components(t *testing.T) {
	client, err := DialStageTriggers(map[string]string{
		"policymanager":    "127.0.0.1:47005",
		"actioncontroller": "127.0.0.1:47001",
	})
	if err != nil {
		t.Fatalf("DialStageTriggers() error = %v", err)
	}
	defer client.Close()

	got := client.Components()
	if len(got) != 2 || got[0] != "actioncontroller" || got[1] != "policymanager" {
		t.Errorf("Components() = %v", got)
	}
}

// The notifier drives the gRPC client end to end.
func TestStageTriggerClient_WithNotifier(t *testing.T) {
	stage := &fakeStage{accept: true}
	lis := startStage(t, stage)

	client, err := DialStageTriggers(map[string]string{
		notifier.ComponentPolicyManager: "passthrough:///policymanager",
	}, bufDialOptions(lis)...)
	if err != nil {
		t.Fatalf("DialStageTriggers() error = %v", err)
	}
	defer client.Close()

	n := notifier.New(client, notifier.Options{}, nil)
	if err := n.AfterCommit(context.Background(), "temp-alert", scenario.StateSatisfied, "cond-satisfied-1"); err != nil {
		t.Fatalf("AfterCommit() error = %v", err)
	}

	got := stage.received()
	if len(got) != 1 || got[0].GetEntry() != notifier.EntryCheckPolicy || got[0].GetState() != "satisfied" {
		t.Errorf("stage received %+v", got)
	}
}
