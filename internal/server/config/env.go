package config

import "os"

// parseEnv overlays Config with values from environment variables. Env wins
// over flags so deployments can keep secrets out of process arguments.
func parseEnv(cfg *Config) {
	if v, ok := os.LookupEnv("RUN_ADDRESS"); ok {
		cfg.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		cfg.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("SECRET_KEY"); ok {
		cfg.SecretKey = v
	}
	if v, ok := os.LookupEnv("OWNER_USERNAME"); ok {
		cfg.OwnerUsername = v
	}
	if v, ok := os.LookupEnv("S3_ROOT_USER"); ok {
		cfg.S3RootUser = v
	}
	if v, ok := os.LookupEnv("S3_ROOT_PASSWORD"); ok {
		cfg.S3RootPassword = v
	}
	if v, ok := os.LookupEnv("S3_BUCKET"); ok {
		cfg.S3Bucket = v
	}
	if v, ok := os.LookupEnv("S3_REGION"); ok {
		cfg.S3Region = v
	}
	if v, ok := os.LookupEnv("S3_BASE_ENDPOINT"); ok {
		cfg.S3BaseEndpoint = v
	}
}
