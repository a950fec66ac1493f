package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config fields from environment variables. A variable
// that is unset or fails to parse leaves the current value untouched.
//
// Recognized variables:
//
//	ENDPOINT_ADDR           HTTP bind address
//	DATABASE_DSN            PostgreSQL DSN
//	SECRET_KEY              JWT HMAC secret
//	ACCESS_TOKEN_VALIDITY   token lifetime, e.g. "15m"
//	MIGRATE_ON_START        "true"/"false"
//	HASH_POOL_SIZE          max concurrent hashing jobs
func parseEnv(config *Config) {
	if v := os.Getenv("ENDPOINT_ADDR"); v != "" {
		config.EndpointAddr = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("ACCESS_TOKEN_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.AccessTokenValidityDuration = d
		}
	}
	if v := os.Getenv("MIGRATE_ON_START"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.MigrateOnStart = b
		}
	}
	if v := os.Getenv("HASH_POOL_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.HashPoolSize = n
		}
	}
}
