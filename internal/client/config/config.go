// Package config handles configuration for the portfolio client, including
// defaults, JSON overlay, command-line flags, and environment variables.
package config

import "time"

// Config holds runtime settings for the portfolio client.
//
// Fields:
//   - ServerEndpointURL: base URL of the portfolio backend.
//   - RequestTimeout: per-operation deadline for remote calls.
type Config struct {
	ServerEndpointURL string
	RequestTimeout    time.Duration
}

// LoadDefaults populates Config with sensible development defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 30 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, command-line flags, and finally environment
// variables. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	parseEnv(cfg)
	return cfg
}
