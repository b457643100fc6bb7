package influxdb_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nerrad567/scenario-state-core/internal/infrastructure/config"
	"github.com/nerrad567/scenario-state-core/internal/infrastructure/influxdb"
	"github.com/nerrad567/scenario-state-core/internal/notifier"
	"github.com/nerrad567/scenario-state-core/internal/scenario"
)

// testConfig returns a configuration for a local dev InfluxDB.
func testConfig() config.InfluxDBConfig {
	return config.InfluxDBConfig{
		Enabled:       true,
		URL:           "http://127.0.0.1:8086",
		Token:         "statecore-dev-token",
		Org:           "statecore",
		Bucket:        "scenarios",
		BatchSize:     100,
		FlushInterval: 1,
	}
}

// connectOrSkip connects to the dev InfluxDB or skips the test.
func connectOrSkip(t *testing.T) *influxdb.Client {
	t.Helper()
	client, err := influxdb.Connect(context.Background(), testConfig())
	if err != nil {
		t.Skipf("InfluxDB not available: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

// captureErrors records async write errors.
func captureErrors(client *influxdb.Client) func() error {
	var (
		mu       sync.Mutex
		writeErr error
	)
	client.SetOnError(func(err error) {
		mu.Lock()
		writeErr = err
		mu.Unlock()
	})
	return func() error {
		mu.Lock()
		defer mu.Unlock()
		return writeErr
	}
}

func TestConnect_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false

	_, err := influxdb.Connect(context.Background(), cfg)
	if !errors.Is(err, influxdb.ErrDisabled) {
		t.Errorf("Connect() error = %v, want ErrDisabled", err)
	}
}

func TestConnect_InvalidURL(t *testing.T) {
	cfg := testConfig()
	cfg.URL = "http://127.0.0.1:59999"

	_, err := influxdb.Connect(context.Background(), cfg)
	if !errors.Is(err, influxdb.ErrUnreachable) {
		t.Errorf("Connect() error = %v, want ErrUnreachable", err)
	}
}

func TestHealthCheck(t *testing.T) {
	client := connectOrSkip(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.HealthCheck(ctx); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
}

func TestWriteTransitionAndFailure(t *testing.T) {
	client := connectOrSkip(t)
	writeErr := captureErrors(client)
	ctx := context.Background()

	client.TransitionCommitted(ctx, scenario.TransitionRecord{
		TransitionID:    "int-waiting-1",
		Scenario:        "influx-int",
		SourceComponent: "int",
		From:            scenario.StateIdle,
		To:              scenario.StateWaiting,
		Timestamp:       time.Now().UTC(),
		Version:         1,
	})
	client.RecordTriggerFailure(ctx, notifier.Failure{
		Scenario:  "influx-int",
		State:     scenario.StateWaiting,
		Component: notifier.ComponentActionController,
		Entry:     notifier.EntryTriggerAction,
		Attempts:  3,
		Err:       errors.New("unreachable"),
		At:        time.Now().UTC(),
	})
	client.Flush()
	time.Sleep(100 * time.Millisecond)

	if err := writeErr(); err != nil {
		t.Errorf("write error = %v", err)
	}
}

func TestClose(t *testing.T) {
	client := connectOrSkip(t)

	if err := client.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := client.HealthCheck(context.Background()); !errors.Is(err, influxdb.ErrClosed) {
		t.Errorf("HealthCheck() after Close() error = %v, want ErrClosed", err)
	}
}
