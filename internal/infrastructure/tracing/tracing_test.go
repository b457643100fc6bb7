package tracing

import (
	"context"
	"testing"

	"github.com/nerrad567/scenario-state-core/internal/infrastructure/config"
)

func TestSetup_NoopWhenDisabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.TracingConfig
	}{
		{"disabled", config.TracingConfig{Enabled: false, Endpoint: "http://localhost:4318"}},
		{"no endpoint", config.TracingConfig{Enabled: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shutdown, err := Setup(context.Background(), tt.cfg, "statecore-test", "dev")
			if err != nil {
				t.Fatalf("Setup() error = %v", err)
			}
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			if err := shutdown(ctx); err != nil {
				t.Errorf("noop shutdown error = %v", err)
			}
		})
	}
}

func TestSetup_CreatesProvider(t *testing.T) {
	// Non-routable address; nothing is exported before shutdown.
	cfg := config.TracingConfig{Enabled: true, Endpoint: "http://192.0.2.1:4318"}

	shutdown, err := Setup(context.Background(), cfg, "statecore-test", "dev")
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error = %v", err)
	}
}
