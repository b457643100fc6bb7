// Scenario State Core
//
// statecore is the single writer for scenario lifecycle state. Pipeline
// components (action controller, condition evaluator, policy manager)
// propose transitions over gRPC, MQTT or REST; statecore validates them
// against the state graph, commits them with optimistic concurrency and
// wakes the next stage once the commit is durable.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	backend "github.com/redis/go-redis/v9"

	_ "github.com/nerrad567/scenario-state-core/migrations"

	"github.com/nerrad567/scenario-state-core/internal/api"
	"github.com/nerrad567/scenario-state-core/internal/audit"
	"github.com/nerrad567/scenario-state-core/internal/infrastructure/config"
	"github.com/nerrad567/scenario-state-core/internal/infrastructure/database"
	"github.com/nerrad567/scenario-state-core/internal/infrastructure/influxdb"
	"github.com/nerrad567/scenario-state-core/internal/infrastructure/logging"
	"github.com/nerrad567/scenario-state-core/internal/infrastructure/metrics"
	"github.com/nerrad567/scenario-state-core/internal/infrastructure/mqtt"
	"github.com/nerrad567/scenario-state-core/internal/infrastructure/tracing"
	"github.com/nerrad567/scenario-state-core/internal/notifier"
	"github.com/nerrad567/scenario-state-core/internal/rpc"
	"github.com/nerrad567/scenario-state-core/internal/scenario"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

const (
	// defaultConfigPath is used when STATECORE_CONFIG is unset.
	defaultConfigPath = "configs/config.yaml"

	serviceName = "statecore"

	// shutdownTimeout bounds each component's graceful stop.
	shutdownTimeout = 10 * time.Second
)

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// It blocks until ctx is cancelled, then stops components in reverse order:
// ingress first, then the coordinator's pending notifications, then the
// transports and the store they write to.
func run(ctx context.Context) error { //nolint:gocognit,gocyclo // startup wiring: one block per component
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting scenario state core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log = logging.New(cfg.Logging, version).With("service_id", cfg.Service.ID)
	log.Info("configuration loaded",
		"path", configPath,
		"store", cfg.Store.Backend,
		"level", cfg.Logging.Level,
	)

	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing, serviceName, version)
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if shutdownErr := shutdownTracing(sctx); shutdownErr != nil {
			log.Error("error flushing traces", "error", shutdownErr)
		}
	}()

	var checks []healthCheck

	// SQLite holds the audit trail and, for the sqlite backend, the scenarios.
	var db *database.DB
	if cfg.Database.Path != "" {
		db, err = database.Open(ctx, database.Config{
			Path:        cfg.Database.Path,
			WALMode:     cfg.Database.WALMode,
			BusyTimeout: cfg.Database.BusyTimeout,
		})
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer func() {
			log.Info("closing database")
			if closeErr := db.Close(); closeErr != nil {
				log.Error("error closing database", "error", closeErr)
			}
		}()
		if migrateErr := db.Migrate(ctx); migrateErr != nil {
			return fmt.Errorf("running migrations: %w", migrateErr)
		}
		log.Info("database ready", "path", cfg.Database.Path)
		checks = append(checks, healthCheck{"database", db.HealthCheck})
	}

	store, storeCheck, closeStore, err := openStore(ctx, cfg, db)
	if err != nil {
		return err
	}
	defer closeStore()
	if storeCheck != nil {
		checks = append(checks, healthCheck{"store", storeCheck})
	}

	registry := scenario.NewRegistry(store)
	registry.SetLogger(log)
	if refreshErr := registry.RefreshCache(ctx); refreshErr != nil {
		return fmt.Errorf("loading scenario registry: %w", refreshErr)
	}
	log.Info("scenario registry initialised", "scenarios", registry.CachedCount())

	m := metrics.New()
	m.RegisterGauge("cached_scenarios", "Scenarios held in the registry cache.", func() float64 {
		return float64(registry.CachedCount())
	})

	coordinator := scenario.NewCoordinator(registry, scenario.Options{
		MaxAttempts:     cfg.Coordinator.MaxAttempts,
		BackoffInitial:  config.Milliseconds(cfg.Coordinator.BackoffInitial),
		BackoffMax:      config.Milliseconds(cfg.Coordinator.BackoffMax),
		ProposalTimeout: config.Milliseconds(cfg.Coordinator.ProposalTimeout),
	}, log)
	coordinator.SetMetrics(m)

	var (
		auditRepo audit.Repository
		recorder  *audit.Recorder
	)
	if db != nil {
		repo := audit.NewSQLiteRepository(db.DB)
		auditRepo = repo
		recorder = audit.NewRecorder(repo, log)
	}

	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(ctx, cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		mqttClient.SetLogger(log)
		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)
		coordinator.AddObserver(mqtt.NewStatePublisher(mqttClient, mqttClient.QoS(), log))
		checks = append(checks, healthCheck{"mqtt", mqttClient.HealthCheck})
	} else {
		log.Info("MQTT disabled")
	}

	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(ctx, cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)
		coordinator.AddObserver(influxClient)
		checks = append(checks, healthCheck{"influxdb", influxClient.HealthCheck})
	} else {
		log.Info("InfluxDB disabled")
	}

	hub := api.NewHub(cfg.WebSocket, log)
	go hub.Run(ctx)
	coordinator.AddObserver(hub)

	if cfg.Notifier.Enabled {
		trigger, closeTrigger, triggerErr := newStageTrigger(cfg, mqttClient)
		if triggerErr != nil {
			return triggerErr
		}
		defer closeTrigger()

		n := notifier.New(trigger, notifier.Options{
			Attempts:       cfg.Notifier.Attempts,
			TriggerTimeout: config.Milliseconds(cfg.Notifier.TriggerTimeout),
			BackoffInitial: config.Milliseconds(cfg.Notifier.BackoffInitial),
		}, log)
		n.SetMetrics(m)
		if recorder != nil {
			n.AddFailureRecorder(recorder)
		}
		if influxClient != nil {
			n.AddFailureRecorder(influxClient)
		}
		coordinator.SetNotifier(n)
		log.Info("stage notifier enabled", "transport", cfg.Notifier.Transport)
	} else {
		log.Info("stage notifier disabled")
	}

	// Runs after every ingress below has stopped, before the transports
	// the notifications use are closed.
	defer func() {
		log.Info("waiting for pending stage notifications")
		coordinator.Wait()
	}()

	var proposer rpc.Proposer = coordinator
	if recorder != nil {
		proposer = recorder.WrapProposer(coordinator)
	}

	grpcServer := rpc.NewServer(rpc.NewService(proposer, registry, log), log)
	if startErr := grpcServer.Start(cfg.GRPCAddr()); startErr != nil {
		return fmt.Errorf("starting gRPC server: %w", startErr)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if closeErr := grpcServer.Close(sctx); closeErr != nil {
			log.Error("error stopping gRPC server", "error", closeErr)
		}
	}()
	log.Info("gRPC server started", "address", grpcServer.Addr())

	apiServer, err := api.New(api.Deps{
		Config:   cfg.API,
		WS:       cfg.WebSocket,
		Logger:   log,
		Proposer: proposer,
		Reader:   registry,
		Audit:    auditRepo,
		Metrics:  m.Handler(),
		Hub:      hub,
		Version:  version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if startErr := apiServer.Start(ctx); startErr != nil {
		return fmt.Errorf("starting API server: %w", startErr)
	}
	defer func() {
		if closeErr := apiServer.Close(); closeErr != nil {
			log.Error("error stopping API server", "error", closeErr)
		}
	}()
	checks = append(checks, healthCheck{"api", apiServer.HealthCheck})

	if mqttClient != nil {
		ingress := rpc.NewMQTTIngress(mqttClient, proposer, mqttClient.QoS(), log)
		if startErr := ingress.Start(ctx); startErr != nil {
			return fmt.Errorf("starting MQTT proposal ingress: %w", startErr)
		}
		defer ingress.Stop()
	}

	if err := runHealthChecks(ctx, checks); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")
	<-ctx.Done()
	log.Info("shutdown signal received, cleaning up")

	return nil
}

// getConfigPath returns the configuration file path.
// Uses STATECORE_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("STATECORE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// openStore builds the configured scenario store. The returned check probes
// a remote backend and is nil for local ones.
func openStore(ctx context.Context, cfg *config.Config, db *database.DB) (scenario.Store, func(context.Context) error, func(), error) {
	switch cfg.Store.Backend {
	case config.StoreBackendSQLite:
		if db == nil {
			return nil, nil, nil, fmt.Errorf("sqlite store requires database.path")
		}
		return scenario.NewSQLiteStore(db), nil, func() {}, nil

	case config.StoreBackendRedis:
		client := backend.NewClient(&backend.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store := scenario.NewRedisStore(client, scenario.WithKeyPrefix(cfg.Redis.Prefix))
		if err := store.Ping(ctx); err != nil {
			store.Close() //nolint:errcheck // already failing
			return nil, nil, nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Redis.Addr, err)
		}
		return store, store.Ping, func() { store.Close() }, nil //nolint:errcheck // best-effort close at shutdown

	case config.StoreBackendMemory:
		return scenario.NewMemoryStore(), nil, func() {}, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// newStageTrigger selects the transport that wakes downstream stages.
func newStageTrigger(cfg *config.Config, mqttClient *mqtt.Client) (notifier.Trigger, func(), error) {
	switch cfg.Notifier.Transport {
	case config.NotifierTransportMQTT:
		if mqttClient == nil {
			return nil, nil, fmt.Errorf("notifier transport mqtt requires MQTT")
		}
		return mqtt.NewStageTrigger(mqttClient), func() {}, nil

	default:
		client, err := rpc.DialStageTriggers(cfg.Notifier.Targets)
		if err != nil {
			return nil, nil, fmt.Errorf("dialing stage components: %w", err)
		}
		return client, func() { client.Close() }, nil //nolint:errcheck // best-effort close at shutdown
	}
}

// healthCheck names one startup probe.
type healthCheck struct {
	name  string
	check func(context.Context) error
}

// runHealthChecks returns the first failing probe.
func runHealthChecks(ctx context.Context, checks []healthCheck) error {
	for _, c := range checks {
		if err := c.check(ctx); err != nil {
			return fmt.Errorf("%s: %w", c.name, err)
		}
	}
	return nil
}
