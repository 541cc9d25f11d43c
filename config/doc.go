// Package config loads config.yml for the bus demo: window, assets,
// simulation seed, telemetry server and logging.
package config
