package rpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	statemanagerv1 "github.com/nerrad567/scenario-state-core/api/gen/go/scenario/statemanager/v1"
)

// Server hosts the StateManager and health services.
type Server struct {
	grpcServer *grpc.Server
	health     *health.Server
	logger     Logger
	listener   net.Listener
}

// NewServer creates a gRPC server with svc registered. Extra options are
// appended after the defaults.
func NewServer(svc statemanagerv1.StateManagerServer, logger Logger, opts ...grpc.ServerOption) *Server {
	if logger == nil {
		logger = noopLogger{}
	}
	s := &Server{logger: logger}

	base := []grpc.ServerOption{
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(s.recoveryInterceptor, s.loggingInterceptor),
	}
	s.grpcServer = grpc.NewServer(append(base, opts...)...)
	s.health = health.NewServer()

	statemanagerv1.RegisterStateManagerServer(s.grpcServer, svc)
	grpc_health_v1.RegisterHealthServer(s.grpcServer, s.health)
	s.health.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(StateManagerServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	return s
}

// Start listens on addr and serves in a background goroutine.
func (s *Server) Start(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	s.Serve(lis)
	return nil
}

// Serve serves on lis in a background goroutine.
func (s *Server) Serve(lis net.Listener) {
	s.listener = lis
	s.logger.Info("gRPC server starting", "address", lis.Addr().String())
	go func() {
		err := s.grpcServer.Serve(lis)
		if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			s.logger.Error("gRPC server error", "error", err)
		}
	}()
}

// Addr returns the listener address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Close marks the server NOT_SERVING and stops it gracefully, forcing a stop
// if ctx ends first.
func (s *Server) Close(ctx context.Context) error {
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.grpcServer.Stop()
		<-done
	}
	s.logger.Info("gRPC server stopped")
	return nil
}

func (s *Server) recoveryInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in gRPC handler", "method", info.FullMethod, "panic", r)
			err = status.Error(codes.Internal, "internal error")
		}
	}()
	return handler(ctx, req)
}

func (s *Server) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.logger.Debug("gRPC call",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return resp, err
}
