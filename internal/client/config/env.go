package config

import "os"

// parseEnv overlays Config with values from environment variables. Env wins
// over flags.
func parseEnv(cfg *Config) {
	if v, ok := os.LookupEnv("SERVER_ENDPOINT_URL"); ok {
		cfg.ServerEndpointURL = v
	}
}
