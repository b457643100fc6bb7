package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/nerrad567/scenario-state-core/internal/audit"
	"github.com/nerrad567/scenario-state-core/internal/infrastructure/config"
	"github.com/nerrad567/scenario-state-core/internal/infrastructure/logging"
	"github.com/nerrad567/scenario-state-core/internal/scenario"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Proposer commits proposals. *scenario.Coordinator and
// *audit.AuditingProposer implement it.
type Proposer interface {
	ProposeTransition(ctx context.Context, p scenario.Proposal) (*scenario.TransitionResult, error)
}

// ScenarioReader serves read-only queries. *scenario.Registry implements it.
type ScenarioReader interface {
	Snapshot(ctx context.Context, name string) (scenario.Snapshot, error)
	History(ctx context.Context, name string, limit int) ([]scenario.TransitionRecord, error)
	List(ctx context.Context, filter scenario.ListFilter) ([]scenario.Snapshot, error)
}

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config   config.APIConfig
	WS       config.WebSocketConfig
	Logger   *logging.Logger
	Proposer Proposer
	Reader   ScenarioReader
	Audit    audit.Repository // optional: GET /audit answers 503 without it
	Metrics  http.Handler     // optional: Prometheus exposition for GET /metrics
	Hub      *Hub             // If set, the server uses this hub instead of creating its own
	Version  string
}

// Server is the HTTP API server.
//
// It manages the HTTP listener, routes, middleware, and WebSocket hub:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
type Server struct {
	cfg      config.APIConfig
	wsCfg    config.WebSocketConfig
	logger   *logging.Logger
	proposer Proposer
	reader   ScenarioReader
	audit    audit.Repository
	metrics  http.Handler
	version  string

	mu          sync.Mutex
	server      *http.Server
	listener    net.Listener
	hub         *Hub
	externalHub bool               // true if hub was injected externally
	cancel      context.CancelFunc // cancels background goroutines on Close()
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
//
// Returns:
//   - *Server: Configured server ready to start
//   - error: If required dependencies are missing
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Proposer == nil {
		return nil, fmt.Errorf("proposer is required")
	}
	if deps.Reader == nil {
		return nil, fmt.Errorf("scenario reader is required")
	}

	s := &Server{
		cfg:      deps.Config,
		wsCfg:    deps.WS,
		logger:   deps.Logger,
		proposer: deps.Proposer,
		reader:   deps.Reader,
		audit:    deps.Audit,
		metrics:  deps.Metrics,
		version:  deps.Version,
	}

	// The hub is usually injected so the coordinator can register it as an
	// observer before the server starts.
	if deps.Hub != nil {
		s.hub = deps.Hub
		s.externalHub = true
	}

	return s, nil
}

// Hub returns the WebSocket hub, creating it if Start has not run yet.
func (s *Server) Hub() *Hub {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hub == nil {
		s.hub = NewHub(s.wsCfg, s.logger)
	}
	return s.hub
}

// Start begins listening for HTTP connections.
//
// It binds the listener synchronously so that a port conflict is reported
// to the caller, then serves in a background goroutine. The server can be
// stopped with Close().
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	hub := s.Hub()

	s.mu.Lock()
	var srvCtx context.Context
	srvCtx, s.cancel = context.WithCancel(ctx)
	if !s.externalHub {
		go hub.Run(srvCtx)
	}

	s.listener = lis
	s.server = &http.Server{
		Handler:           s.buildRouter(),
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}
	srv := s.server
	s.mu.Unlock()

	s.logger.Info("API server starting", "address", lis.Addr().String())

	go func() {
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete,
// then forcefully closes remaining connections.
func (s *Server) Close() error {
	s.mu.Lock()
	srv, cancel := s.server, s.cancel
	s.mu.Unlock()

	if srv == nil {
		return nil
	}

	// Stops an internally owned hub.
	if cancel != nil {
		cancel()
	}

	ctx, done := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer done()

	s.logger.Info("API server shutting down")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running and the store is reachable.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	s.mu.Lock()
	started := s.server != nil
	s.mu.Unlock()
	if !started {
		return fmt.Errorf("api server not started")
	}

	if _, err := s.reader.List(ctx, scenario.ListFilter{State: scenario.StateCompleted}); err != nil {
		return fmt.Errorf("api health check: %w", err)
	}
	return nil
}
