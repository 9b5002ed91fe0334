package config

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := fromLookup(lookupFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 1000, cfg.LogStore.DefaultCapacity)
	assert.Equal(t, 1_000_000, cfg.LogStore.MaxCapacity)
	assert.Equal(t, BackendFile, cfg.Persistence.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Usage.Period)
	assert.Equal(t, time.Minute, cfg.Usage.PollInterval)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.False(t, cfg.IsProduction())
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := fromLookup(lookupFrom(map[string]string{
		"LOGVAULT_ADDR":        ":9090",
		"ENVIRONMENT":          "production",
		"LOG_DEFAULT_CAPACITY": "500",
		"LOG_MAX_CAPACITY":     "5000",
		"PERSISTENCE_BACKEND":  "Redis",
		"REDIS_URL":            "redis://localhost:6379/0",
		"CHECKPOINT_INTERVAL":  "0s",
		"USAGE_PERIOD":         "1h",
		"KAFKA_BROKERS":        "kafka:9092",
		"ADMIN_API_TOKEN":      " secret ",
		"TRUSTED_PROXIES":      "10.0.0.0/8,172.16.0.1",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 500, cfg.LogStore.DefaultCapacity)
	assert.Equal(t, 5000, cfg.LogStore.MaxCapacity)
	assert.Equal(t, BackendRedis, cfg.Persistence.Backend)
	assert.Zero(t, cfg.Persistence.CheckpointInterval)
	assert.Equal(t, time.Hour, cfg.Usage.Period)
	assert.Equal(t, "kafka:9092", cfg.Kafka.Brokers)
	assert.Equal(t, "secret", cfg.AdminAPIToken)
	assert.Equal(t, []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("172.16.0.1/32"),
	}, cfg.TrustedProxies)
}

func TestFromEnvErrors(t *testing.T) {
	tests := map[string]map[string]string{
		"bad integer":          {"LOG_DEFAULT_CAPACITY": "many"},
		"bad duration":         {"USAGE_PERIOD": "daily"},
		"default above max":    {"LOG_DEFAULT_CAPACITY": "10", "LOG_MAX_CAPACITY": "5"},
		"zero period":          {"USAGE_PERIOD": "0s"},
		"unknown backend":      {"PERSISTENCE_BACKEND": "s3"},
		"postgres without url": {"PERSISTENCE_BACKEND": "postgres"},
		"redis without url":    {"PERSISTENCE_BACKEND": "redis"},
		"negative checkpoint":  {"CHECKPOINT_INTERVAL": "-1m"},
		"bad trusted proxy":    {"TRUSTED_PROXIES": "10.0.0.0/33"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := fromLookup(lookupFrom(env))
			assert.Error(t, err)
		})
	}
}
