package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nerrad567/scenario-state-core/internal/audit"
	"github.com/nerrad567/scenario-state-core/internal/infrastructure/config"
	"github.com/nerrad567/scenario-state-core/internal/infrastructure/database"
	"github.com/nerrad567/scenario-state-core/internal/infrastructure/logging"
	"github.com/nerrad567/scenario-state-core/internal/infrastructure/metrics"
	"github.com/nerrad567/scenario-state-core/internal/scenario"
	_ "github.com/nerrad567/scenario-state-core/migrations"
)

type testEnv struct {
	srv         *Server
	coordinator *scenario.Coordinator
	baseURL     string
}

func testLogger() *logging.Logger {
	return logging.NewWithWriter(io.Discard, config.LoggingConfig{Level: "error", Format: "text"}, "test")
}

func testDeps(t *testing.T) (Deps, *scenario.Coordinator) {
	t.Helper()
	registry := scenario.NewRegistry(scenario.NewMemoryStore())
	coordinator := scenario.NewCoordinator(registry, scenario.Options{}, nil)
	t.Cleanup(coordinator.Wait)

	return Deps{
		Config: config.APIConfig{
			Host:     "127.0.0.1",
			Port:     0,
			Timeouts: config.APITimeoutConfig{Read: 5, Write: 5, Idle: 5},
		},
		WS: config.WebSocketConfig{
			MaxMessageSize: 8192,
			PingInterval:   30,
			PongTimeout:    10,
		},
		Logger:   testLogger(),
		Proposer: coordinator,
		Reader:   registry,
		Version:  "test",
	}, coordinator
}

// startServer starts a server on a free port and registers its hub as an observer.
func startServer(t *testing.T, deps Deps, coordinator *scenario.Coordinator) *testEnv {
	t.Helper()
	srv, err := New(deps)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	coordinator.AddObserver(srv.Hub())
	if err := srv.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() { srv.Close() })
	return &testEnv{srv: srv, coordinator: coordinator, baseURL: "http://" + srv.Addr() + "/api/v1"}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	deps, coordinator := testDeps(t)
	return startServer(t, deps, coordinator)
}

func (e *testEnv) do(t *testing.T, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, e.baseURL+path, rd)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	var out map[string]any
	if len(bytes.TrimSpace(raw)) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("decoding %s: %v", raw, err)
		}
	}
	return resp, out
}

func (e *testEnv) propose(t *testing.T, name, body string) (*http.Response, map[string]any) {
	t.Helper()
	return e.do(t, http.MethodPost, "/scenarios/"+name+"/transitions", body)
}

func TestNew_RequiresDeps(t *testing.T) {
	deps, _ := testDeps(t)

	tests := map[string]func(*Deps){
		"logger":   func(d *Deps) { d.Logger = nil },
		"proposer": func(d *Deps) { d.Proposer = nil },
		"reader":   func(d *Deps) { d.Reader = nil },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			d := deps
			mutate(&d)
			if _, err := New(d); err == nil {
				t.Errorf("New() without %s succeeded", name)
			}
		})
	}
}

func TestServer_Health(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodGet, "/health", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body["status"] != "ok" || body["version"] != "test" {
		t.Errorf("body = %v", body)
	}
	if err := env.srv.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
}

func TestServer_HealthCheckBeforeStart(t *testing.T) {
	deps, _ := testDeps(t)
	srv, err := New(deps)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := srv.HealthCheck(context.Background()); err == nil {
		t.Error("HealthCheck() before Start succeeded")
	}
	if err := srv.Close(); err != nil {
		t.Errorf("Close() before Start error = %v", err)
	}
}

func TestServer_Graph(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodGet, "/graph", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if states := body["states"].([]any); len(states) != 6 {
		t.Errorf("states = %v", states)
	}
	if edges := body["edges"].([]any); len(edges) != 5 {
		t.Errorf("edges = %v", edges)
	}
	if body["initial"] != "idle" {
		t.Errorf("initial = %v", body["initial"])
	}
}

func TestServer_ProposeAndRead(t *testing.T) {
	env := newTestEnv(t)

	// An unknown scenario reads as idle.
	resp, body := env.do(t, http.MethodGet, "/scenarios/temp-alert", "")
	if resp.StatusCode != http.StatusOK || body["state"] != "idle" || body["version"] != float64(0) {
		t.Fatalf("GET unknown = %d %v", resp.StatusCode, body)
	}

	steps := []struct {
		current, target, source string
	}{
		{"idle", "waiting", "actioncontroller"},
		{"waiting", "satisfied", "conditionevaluator"},
		{"satisfied", "allowed", "policymanager"},
	}
	for i, s := range steps {
		resp, body := env.propose(t, "temp-alert",
			`{"current_state":"`+s.current+`","target_state":"`+s.target+`","source_component":"`+s.source+`"}`)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("step %d: status = %d, body = %v", i, resp.StatusCode, body)
		}
		if body["new_state"] != s.target || body["version"] != float64(i+1) {
			t.Errorf("step %d: body = %v", i, body)
		}
	}

	resp, body = env.do(t, http.MethodGet, "/scenarios/temp-alert", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["state"] != "allowed" || body["version"] != float64(3) || body["terminal"] != false {
		t.Errorf("scenario = %v", body)
	}
	if next := body["next"].([]any); len(next) != 1 || next[0] != "completed" {
		t.Errorf("next = %v", next)
	}

	resp, body = env.do(t, http.MethodGet, "/scenarios/temp-alert/history?limit=2", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("history status = %d", resp.StatusCode)
	}
	transitions := body["transitions"].([]any)
	if len(transitions) != 2 {
		t.Fatalf("history = %v", transitions)
	}
	last := transitions[1].(map[string]any)
	if last["to_state"] != "allowed" || last["source_component"] != "policymanager" {
		t.Errorf("last record = %v", last)
	}
}

func TestServer_ProposeErrors(t *testing.T) {
	env := newTestEnv(t)
	if resp, body := env.propose(t, "temp-alert", `{"target_state":"waiting","source_component":"actioncontroller"}`); resp.StatusCode != http.StatusCreated {
		t.Fatalf("setup: %d %v", resp.StatusCode, body)
	}

	tests := []struct {
		name       string
		scenario   string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"malformed JSON", "temp-alert", `{`, http.StatusBadRequest, ErrCodeBadRequest},
		{"unknown field", "temp-alert", `{"target":"waiting"}`, http.StatusBadRequest, ErrCodeBadRequest},
		{"unknown state", "temp-alert", `{"target_state":"paused"}`, http.StatusBadRequest, ErrCodeBadRequest},
		{"missing target", "temp-alert", `{"current_state":"waiting"}`, http.StatusBadRequest, ErrCodeBadRequest},
		{"bad name", "bad%20name", `{"target_state":"waiting"}`, http.StatusBadRequest, ErrCodeBadRequest},
		{"invalid transition", "temp-alert", `{"target_state":"allowed"}`, http.StatusUnprocessableEntity, ErrCodeInvalidTransition},
		{"self loop", "temp-alert", `{"target_state":"waiting"}`, http.StatusUnprocessableEntity, ErrCodeInvalidTransition},
		{"stale", "temp-alert", `{"current_state":"idle","target_state":"waiting"}`, http.StatusConflict, ErrCodeStaleProposal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := env.propose(t, tt.scenario, tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %v)", resp.StatusCode, tt.wantStatus, body)
			}
			if body["code"] != tt.wantCode {
				t.Errorf("code = %v, want %s", body["code"], tt.wantCode)
			}
		})
	}

	// Stale rejections report the stored state.
	_, body := env.propose(t, "temp-alert", `{"current_state":"idle","target_state":"waiting"}`)
	details, ok := body["details"].(map[string]any)
	if !ok || details["actual_state"] != "waiting" || details["version"] != float64(1) {
		t.Errorf("stale details = %v", body["details"])
	}
}

func TestServer_TerminalIsFinal(t *testing.T) {
	env := newTestEnv(t)
	for _, target := range []string{"waiting", "satisfied", "denied"} {
		if resp, body := env.propose(t, "door", `{"target_state":"`+target+`"}`); resp.StatusCode != http.StatusCreated {
			t.Fatalf("%s: %d %v", target, resp.StatusCode, body)
		}
	}
	for _, target := range []string{"idle", "waiting", "allowed", "completed"} {
		if resp, _ := env.propose(t, "door", `{"target_state":"`+target+`"}`); resp.StatusCode != http.StatusUnprocessableEntity {
			t.Errorf("denied -> %s: status = %d, want 422", target, resp.StatusCode)
		}
	}
}

func TestServer_ReplayReturnsOriginal(t *testing.T) {
	env := newTestEnv(t)
	body := `{"target_state":"waiting","source_component":"actioncontroller","transition_id":"ac-waiting-1"}`

	resp, first := env.propose(t, "temp-alert", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("first: %d %v", resp.StatusCode, first)
	}
	resp, second := env.propose(t, "temp-alert", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("replay: %d %v", resp.StatusCode, second)
	}
	if second["replayed"] != true || second["version"] != first["version"] || second["transition_id"] != "ac-waiting-1" {
		t.Errorf("replay = %v, first = %v", second, first)
	}
}

func TestServer_ListScenarios(t *testing.T) {
	env := newTestEnv(t)
	for _, name := range []string{"b-door", "a-temp"} {
		if resp, _ := env.propose(t, name, `{"target_state":"waiting"}`); resp.StatusCode != http.StatusCreated {
			t.Fatalf("propose %s: %d", name, resp.StatusCode)
		}
	}
	if resp, _ := env.propose(t, "a-temp", `{"target_state":"satisfied"}`); resp.StatusCode != http.StatusCreated {
		t.Fatalf("propose satisfied: %d", resp.StatusCode)
	}

	_, body := env.do(t, http.MethodGet, "/scenarios", "")
	list := body["scenarios"].([]any)
	if len(list) != 2 || list[0].(map[string]any)["name"] != "a-temp" {
		t.Errorf("scenarios = %v", list)
	}

	_, body = env.do(t, http.MethodGet, "/scenarios?state=waiting", "")
	list = body["scenarios"].([]any)
	if len(list) != 1 || list[0].(map[string]any)["name"] != "b-door" {
		t.Errorf("waiting scenarios = %v", list)
	}

	resp, _ := env.do(t, http.MethodGet, "/scenarios?state=paused", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown state filter: status = %d, want 400", resp.StatusCode)
	}
}

func TestServer_HistoryLimitValidation(t *testing.T) {
	env := newTestEnv(t)
	for _, limit := range []string{"0", "-1", "abc", "1001"} {
		resp, _ := env.do(t, http.MethodGet, "/scenarios/temp-alert/history?limit="+limit, "")
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("limit=%s: status = %d, want 400", limit, resp.StatusCode)
		}
	}

	resp, body := env.do(t, http.MethodGet, "/scenarios/temp-alert/history", "")
	if resp.StatusCode != http.StatusOK || body["count"] != float64(0) {
		t.Errorf("empty history = %d %v", resp.StatusCode, body)
	}
}

func TestServer_AuditTrail(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(ctx, database.Config{Path: database.MemoryPath})
	if err != nil {
		t.Fatalf("database.Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	repo := audit.NewSQLiteRepository(db.DB)

	deps, coordinator := testDeps(t)
	deps.Proposer = audit.NewRecorder(repo, nil).WrapProposer(coordinator)
	deps.Audit = repo
	env := startServer(t, deps, coordinator)

	if resp, _ := env.propose(t, "temp-alert", `{"target_state":"completed","source_component":"policymanager"}`); resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}

	resp, body := env.do(t, http.MethodGet, "/audit?scenario=temp-alert", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("audit status = %d", resp.StatusCode)
	}
	events := body["events"].([]any)
	if len(events) != 1 {
		t.Fatalf("events = %v", events)
	}
	entry := events[0].(map[string]any)
	if entry["action"] != audit.ActionProposalRejected || entry["component"] != "policymanager" || entry["kind"] != "invalid_transition" {
		t.Errorf("entry = %v", entry)
	}

	for _, q := range []string{"since=yesterday", "limit=-1", "offset=x"} {
		if resp, _ := env.do(t, http.MethodGet, "/audit?"+q, ""); resp.StatusCode != http.StatusBadRequest {
			t.Errorf("/audit?%s: status = %d, want 400", q, resp.StatusCode)
		}
	}

	future := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
	if _, body := env.do(t, http.MethodGet, "/audit?since="+future, ""); body["total"] != float64(0) {
		t.Errorf("future window total = %v, want 0", body["total"])
	}
}

func TestServer_AuditNotConfigured(t *testing.T) {
	env := newTestEnv(t)
	resp, body := env.do(t, http.MethodGet, "/audit", "")
	if resp.StatusCode != http.StatusServiceUnavailable || body["code"] != ErrCodeUnavailable {
		t.Errorf("audit = %d %v", resp.StatusCode, body)
	}
}

func TestServer_Metrics(t *testing.T) {
	m := metrics.New()
	m.CommitConflict()

	deps, coordinator := testDeps(t)
	deps.Metrics = m.Handler()
	env := startServer(t, deps, coordinator)

	resp, err := http.Get(env.baseURL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(raw), "statecore_commit_conflicts_total 1") {
		t.Errorf("metrics = %d\n%s", resp.StatusCode, raw)
	}
}

func TestMiddleware_RequestIDAndCORS(t *testing.T) {
	deps, coordinator := testDeps(t)
	deps.Config.CORS.AllowedOrigins = []string{"https://ops.example"}
	env := startServer(t, deps, coordinator)

	req, _ := http.NewRequest(http.MethodGet, env.baseURL+"/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	req.Header.Set("Origin", "https://ops.example")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want echo", got)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "https://ops.example" {
		t.Errorf("Allow-Origin = %q", got)
	}

	req, _ = http.NewRequest(http.MethodOptions, env.baseURL+"/scenarios/x/transitions", nil)
	req.Header.Set("Origin", "https://evil.example")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("OPTIONS: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("disallowed origin got Allow-Origin %q", got)
	}
	if got := resp.Header.Get("X-Request-ID"); len(got) != 36 {
		t.Errorf("generated X-Request-ID = %q, want uuid", got)
	}
}

func TestAccessLog_RecoversPanic(t *testing.T) {
	s := &Server{logger: testLogger()}
	h := s.accessLog(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/graph", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestCORSPolicy(t *testing.T) {
	tests := []struct {
		name    string
		origins []string
		origin  string
		want    bool
	}{
		{"empty list allows all", nil, "https://a.example", true},
		{"listed", []string{"https://a.example"}, "https://a.example", true},
		{"unlisted", []string{"https://a.example"}, "https://b.example", false},
		{"wildcard", []string{"https://a.example", "*"}, "https://b.example", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := newCORSPolicy(tt.origins, nil, nil).allows(tt.origin); got != tt.want {
				t.Errorf("allows(%q) = %v, want %v", tt.origin, got, tt.want)
			}
		})
	}

	p := newCORSPolicy(nil, []string{"GET"}, nil)
	if p.methods != "GET" || p.headers != "Content-Type, X-Request-ID" {
		t.Errorf("policy = %+v", p)
	}
}

func TestMiddleware_BodyLimit(t *testing.T) {
	env := newTestEnv(t)
	big := `{"reason":"` + strings.Repeat("x", maxRequestBodySize) + `","target_state":"waiting"}`
	resp, _ := env.propose(t, "temp-alert", big)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestWebSocket_TransitionStream(t *testing.T) {
	env := newTestEnv(t)

	wsURL := "ws" + strings.TrimPrefix(env.baseURL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	readMsg := func() Frame {
		t.Helper()
		conn.SetReadDeadline(time.Now().Add(2 * time.Second)) //nolint:errcheck // test deadline
		var msg Frame
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("ReadJSON() error = %v", err)
		}
		return msg
	}

	sub := Frame{Type: FrameSubscribe, ID: "1", Payload: SubscribePayload{
		Channels: []string{ChannelTransitions, ScenarioChannel("temp-alert")},
	}}
	if err := conn.WriteJSON(sub); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	if ack := readMsg(); ack.Type != FrameResponse || ack.ID != "1" {
		t.Fatalf("ack = %+v", ack)
	}

	if resp, body := env.propose(t, "temp-alert", `{"target_state":"waiting","source_component":"actioncontroller"}`); resp.StatusCode != http.StatusCreated {
		t.Fatalf("propose: %d %v", resp.StatusCode, body)
	}

	event := readMsg()
	if event.Type != FrameEvent || event.EventType != EventTransitionCommitted {
		t.Fatalf("event = %+v", event)
	}
	payload := event.Payload.(map[string]any)
	if payload["scenario"] != "temp-alert" || payload["to_state"] != "waiting" || payload["committed_version"] != float64(1) {
		t.Errorf("payload = %v", payload)
	}

	// Subscribed to both channels, the client still sees the event once.
	if err := conn.WriteJSON(Frame{Type: FramePing, ID: "2"}); err != nil {
		t.Fatalf("WriteJSON(ping) error = %v", err)
	}
	if pong := readMsg(); pong.Type != FramePong || pong.ID != "2" {
		t.Errorf("next message = %+v, want pong", pong)
	}
}

func TestWebSocket_UnsubscribedClientGetsNothing(t *testing.T) {
	env := newTestEnv(t)

	wsURL := "ws" + strings.TrimPrefix(env.baseURL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	sub := Frame{Type: FrameSubscribe, ID: "1", Payload: SubscribePayload{Channels: []string{ScenarioChannel("other")}}}
	if err := conn.WriteJSON(sub); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second)) //nolint:errcheck // test deadline
	var ack Frame
	if err := conn.ReadJSON(&ack); err != nil {
		t.Fatalf("ReadJSON(ack) error = %v", err)
	}

	if resp, _ := env.propose(t, "temp-alert", `{"target_state":"waiting"}`); resp.StatusCode != http.StatusCreated {
		t.Fatalf("propose: %d", resp.StatusCode)
	}
	env.coordinator.Wait()

	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond)) //nolint:errcheck // test deadline
	var msg Frame
	if err := conn.ReadJSON(&msg); err == nil {
		t.Errorf("unexpected message %+v", msg)
	}
}

func TestHub_SubscriptionIndex(t *testing.T) {
	hub := NewHub(config.WebSocketConfig{}, testLogger())
	c := newWSConn(hub, nil)
	if !hub.attach(c) {
		t.Fatal("attach() = false on a running hub")
	}
	hub.subscribe(c, []string{ChannelTransitions, ScenarioChannel("x")})
	if hub.ClientCount() != 1 || hub.SubscriberCount(ChannelTransitions) != 1 {
		t.Fatalf("clients = %d subscribers = %d", hub.ClientCount(), hub.SubscriberCount(ChannelTransitions))
	}

	hub.TransitionCommitted(context.Background(), scenario.TransitionRecord{Scenario: "x", To: scenario.StateWaiting})
	if n := len(c.send); n != 1 {
		t.Fatalf("queued %d frames, want 1", n)
	}
	if data := <-c.send; !bytes.Contains(data, []byte(EventTransitionCommitted)) {
		t.Errorf("sent %s", data)
	}

	hub.unsubscribe(c, []string{ChannelTransitions})
	hub.TransitionCommitted(context.Background(), scenario.TransitionRecord{Scenario: "y", To: scenario.StateWaiting})
	if n := len(c.send); n != 0 {
		t.Errorf("queued %d frames for an unsubscribed channel", n)
	}
	if hub.SubscriberCount(ChannelTransitions) != 0 {
		t.Errorf("empty topic kept %d subscribers", hub.SubscriberCount(ChannelTransitions))
	}

	hub.detach(c)
	hub.detach(c)
	if hub.ClientCount() != 0 || hub.SubscriberCount(ScenarioChannel("x")) != 0 {
		t.Errorf("clients = %d after detach", hub.ClientCount())
	}
	if _, open := <-c.send; open {
		t.Error("send queue still open after detach")
	}
}

func TestHub_RunClosesClients(t *testing.T) {
	hub := NewHub(config.WebSocketConfig{}, testLogger())
	c := newWSConn(hub, nil)
	hub.attach(c)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { hub.Run(ctx); close(done) }()
	cancel()
	<-done

	if _, open := <-c.send; open {
		t.Error("send queue still open after Run returned")
	}
	if hub.attach(newWSConn(hub, nil)) {
		t.Error("attach() succeeded after shutdown")
	}
	hub.detach(c)
}

func TestValidChannel(t *testing.T) {
	tests := []struct {
		channel string
		want    bool
	}{
		{ChannelTransitions, true},
		{ScenarioChannel("temp-alert"), true},
		{ScenarioChannel(""), false},
		{"scenario.other", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := validChannel(tt.channel); got != tt.want {
			t.Errorf("validChannel(%q) = %v, want %v", tt.channel, got, tt.want)
		}
	}
}
