package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the scenario state core.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Service     ServiceConfig     `yaml:"service"`
	Database    DatabaseConfig    `yaml:"database"`
	Store       StoreConfig       `yaml:"store"`
	Redis       RedisConfig       `yaml:"redis"`
	MQTT        MQTTConfig        `yaml:"mqtt"`
	API         APIConfig         `yaml:"api"`
	GRPC        GRPCConfig        `yaml:"grpc"`
	WebSocket   WebSocketConfig   `yaml:"websocket"`
	InfluxDB    InfluxDBConfig    `yaml:"influxdb"`
	Logging     LoggingConfig     `yaml:"logging"`
	Coordinator CoordinatorConfig `yaml:"coordinator"`
	Notifier    NotifierConfig    `yaml:"notifier"`
	Tracing     TracingConfig     `yaml:"tracing"`
}

// ServiceConfig identifies this node.
type ServiceConfig struct {
	ID   string `yaml:"id" env:"STATECORE_SERVICE_ID"`
	Name string `yaml:"name"`
}

// DatabaseConfig contains SQLite database settings.
type DatabaseConfig struct {
	Path        string `yaml:"path" env:"STATECORE_DATABASE_PATH"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// Store backends.
const (
	StoreBackendSQLite = "sqlite"
	StoreBackendRedis  = "redis"
	StoreBackendMemory = "memory"
)

// StoreConfig selects the backend that holds scenario state and history.
type StoreConfig struct {
	Backend string `yaml:"backend" env:"STATECORE_STORE_BACKEND"`
}

// RedisConfig contains Redis connection settings for the redis store backend.
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"STATECORE_REDIS_ADDR"`
	Password string `yaml:"password" env:"STATECORE_REDIS_PASSWORD"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Enabled   bool                `yaml:"enabled" env:"STATECORE_MQTT_ENABLED"`
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host" env:"STATECORE_MQTT_HOST"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username" env:"STATECORE_MQTT_USERNAME"`
	Password string `yaml:"password" env:"STATECORE_MQTT_PASSWORD"`
}

// MQTTReconnectConfig contains MQTT reconnection settings (seconds).
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
}

// APIConfig contains HTTP API server settings.
type APIConfig struct {
	Host     string           `yaml:"host" env:"STATECORE_API_HOST"`
	Port     int              `yaml:"port" env:"STATECORE_API_PORT"`
	Timeouts APITimeoutConfig `yaml:"timeouts"`
	CORS     CORSConfig       `yaml:"cors"`
}

// APITimeoutConfig contains HTTP timeout settings (seconds).
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// CORSConfig contains Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

// GRPCConfig contains the StateManager gRPC listener settings.
type GRPCConfig struct {
	Host string `yaml:"host" env:"STATECORE_GRPC_HOST"`
	Port int    `yaml:"port" env:"STATECORE_GRPC_PORT"`
}

// WebSocketConfig contains WebSocket server settings.
type WebSocketConfig struct {
	MaxMessageSize int `yaml:"max_message_size"`
	PingInterval   int `yaml:"ping_interval"`
	PongTimeout    int `yaml:"pong_timeout"`
}

// InfluxDBConfig contains InfluxDB connection settings.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled" env:"STATECORE_INFLUXDB_ENABLED"`
	URL           string `yaml:"url" env:"STATECORE_INFLUXDB_URL"`
	Token         string `yaml:"token" env:"STATECORE_INFLUXDB_TOKEN"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"STATECORE_LOG_LEVEL"`
	Format string `yaml:"format" env:"STATECORE_LOG_FORMAT"`
	Output string `yaml:"output"`
}

// CoordinatorConfig tunes the transition commit loop. Durations are milliseconds.
type CoordinatorConfig struct {
	// MaxAttempts bounds compare-and-swap attempts per proposal before Contention.
	MaxAttempts int `yaml:"max_attempts"`

	// BackoffInitial and BackoffMax shape the jittered retry delay after a conflict.
	BackoffInitial int `yaml:"backoff_initial_ms"`
	BackoffMax     int `yaml:"backoff_max_ms"`

	// ProposalTimeout applies when the caller sets no deadline.
	ProposalTimeout int `yaml:"proposal_timeout_ms"`
}

// Notifier transports.
const (
	NotifierTransportGRPC = "grpc"
	NotifierTransportMQTT = "mqtt"
)

// NotifierConfig configures downstream stage triggers. Durations are milliseconds.
type NotifierConfig struct {
	Enabled        bool   `yaml:"enabled" env:"STATECORE_NOTIFIER_ENABLED"`
	Transport      string `yaml:"transport" env:"STATECORE_NOTIFIER_TRANSPORT"`
	Attempts       int    `yaml:"attempts"`
	TriggerTimeout int    `yaml:"trigger_timeout_ms"`
	BackoffInitial int    `yaml:"backoff_initial_ms"`

	// Targets maps a component name (actioncontroller, policymanager) to its
	// gRPC address. Unused by the mqtt transport.
	Targets map[string]string `yaml:"targets"`
}

// TracingConfig configures the OpenTelemetry exporter.
type TracingConfig struct {
	Enabled  bool   `yaml:"enabled" env:"STATECORE_TRACING_ENABLED"`
	Endpoint string `yaml:"endpoint" env:"STATECORE_OTLP_ENDPOINT"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables are declared with `env` struct tags and follow the
// pattern STATECORE_SECTION_KEY, e.g. STATECORE_DATABASE_PATH.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			ID:   "statecore-01",
			Name: "Scenario State Core",
		},
		Database: DatabaseConfig{
			Path:        "./data/statecore.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		Store: StoreConfig{
			Backend: StoreBackendSQLite,
		},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "statecore",
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "statecore",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
			},
		},
		API: APIConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		GRPC: GRPCConfig{
			Host: "0.0.0.0",
			Port: 47003,
		},
		WebSocket: WebSocketConfig{
			MaxMessageSize: 8192,
			PingInterval:   30,
			PongTimeout:    10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Coordinator: CoordinatorConfig{
			MaxAttempts:     5,
			BackoffInitial:  10,
			BackoffMax:      250,
			ProposalTimeout: 5000,
		},
		Notifier: NotifierConfig{
			Enabled:        true,
			Transport:      NotifierTransportGRPC,
			Attempts:       3,
			TriggerTimeout: 2000,
			BackoffInitial: 100,
		},
	}
}

// applyEnvOverrides applies STATECORE_* environment variables on top of the file values.
// Unset variables leave the field untouched.
func applyEnvOverrides(cfg *Config) error {
	return env.Parse(cfg)
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Service.ID == "" {
		bad("service.id is required")
	}

	switch c.Store.Backend {
	case StoreBackendSQLite:
		if c.Database.Path == "" {
			bad("database.path is required for the sqlite store")
		}
	case StoreBackendRedis:
		if c.Redis.Addr == "" {
			bad("redis.addr is required for the redis store")
		}
	case StoreBackendMemory:
	default:
		bad("store.backend %q must be sqlite, redis or memory", c.Store.Backend)
	}

	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		bad("mqtt.qos must be 0, 1, or 2")
	}

	if c.API.Port < 1 || c.API.Port > 65535 {
		bad("api.port must be between 1 and 65535")
	}
	if c.GRPC.Port < 1 || c.GRPC.Port > 65535 {
		bad("grpc.port must be between 1 and 65535")
	}
	if c.GRPC.Port == c.API.Port && c.GRPC.Host == c.API.Host {
		bad("grpc.port and api.port must differ")
	}

	if c.Coordinator.MaxAttempts < 1 {
		bad("coordinator.max_attempts must be at least 1")
	}
	if c.Coordinator.BackoffInitial < 0 || c.Coordinator.BackoffMax < c.Coordinator.BackoffInitial {
		bad("coordinator.backoff_max_ms must be >= backoff_initial_ms >= 0")
	}

	if c.Notifier.Enabled {
		switch c.Notifier.Transport {
		case NotifierTransportGRPC:
		case NotifierTransportMQTT:
			if !c.MQTT.Enabled {
				bad("notifier.transport mqtt requires mqtt.enabled")
			}
		default:
			bad("notifier.transport %q must be grpc or mqtt", c.Notifier.Transport)
		}
		if c.Notifier.Attempts < 1 {
			bad("notifier.attempts must be at least 1")
		}
		// The trigger must give up before the proposal it follows would time out.
		if c.Notifier.TriggerTimeout <= 0 || c.Notifier.TriggerTimeout >= c.Coordinator.ProposalTimeout {
			bad("notifier.trigger_timeout_ms must be positive and shorter than coordinator.proposal_timeout_ms")
		}
	}

	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		bad("tracing.endpoint is required when tracing is enabled")
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("configuration errors:\n%w", err)
	}
	return nil
}

// GetReadTimeout returns the API read timeout as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the API write timeout as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the API idle timeout as a Duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Idle) * time.Second
}

// GRPCAddr returns the host:port the StateManager service listens on.
func (c *Config) GRPCAddr() string {
	return fmt.Sprintf("%s:%d", c.GRPC.Host, c.GRPC.Port)
}

// Milliseconds converts a millisecond config value to a Duration.
func Milliseconds(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
