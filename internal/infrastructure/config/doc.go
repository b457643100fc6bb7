// Package config handles loading and validating the scenario state core configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with STATECORE_* environment variables (env struct tags)
//   - Validation of required fields and cross-field constraints
//   - Default value handling
//
// Security Considerations:
//   - Broker and Redis passwords, and the InfluxDB token, should be set via
//     environment variables rather than committed to the config file
//   - The config file should have restricted permissions (0600)
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.GRPCAddr())
package config
