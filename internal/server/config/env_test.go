package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_parseEnv(t *testing.T) {
	t.Setenv("ENDPOINT_ADDR", ":9999")
	t.Setenv("DATABASE_DSN", "postgres://env/journal")
	t.Setenv("SECRET_KEY", "env_secret")
	t.Setenv("ACCESS_TOKEN_VALIDITY", "1h")
	t.Setenv("MIGRATE_ON_START", "false")
	t.Setenv("HASH_POOL_SIZE", "4")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":9999", cfg.EndpointAddr)
	assert.Equal(t, "postgres://env/journal", cfg.DatabaseDSN)
	assert.Equal(t, "env_secret", cfg.SecretKey)
	assert.Equal(t, time.Hour, cfg.AccessTokenValidityDuration)
	assert.False(t, cfg.MigrateOnStart)
	assert.Equal(t, 4, cfg.HashPoolSize)
}

func Test_parseEnv_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_VALIDITY", "soon")
	t.Setenv("MIGRATE_ON_START", "maybe")
	t.Setenv("HASH_POOL_SIZE", "many")

	cfg := &Config{}
	cfg.LoadDefaults()
	before := *cfg
	parseEnv(cfg)

	assert.Equal(t, before, *cfg)
}
