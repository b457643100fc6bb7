// Package logging provides structured logging for the scenario state core.
//
// It wraps log/slog so every package logs with the same handler, a level
// that can be changed at runtime, and default fields (service, version).
// Records logged with a context carrying an OpenTelemetry span also get
// trace_id and span_id.
//
// # Configuration
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr
//
// # Usage
//
//	logger := logging.New(cfg.Logging, version)
//	logger.Info("transition committed", "scenario", name, "version", v)
//
// Keys are snake_case. Never log broker or Redis passwords.
package logging
