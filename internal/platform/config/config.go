package config

import (
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"logvault/pkg/platform/middleware/metadata"
)

// Backend names accepted by PERSISTENCE_BACKEND.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendPebble   = "pebble"
	BackendMemory   = "memory"
)

// Server captures process level configuration.
type Server struct {
	Addr            string
	Environment     string
	LogLevel        string
	ShutdownTimeout time.Duration
	AdminAPIToken   string
	TrustedProxies  []netip.Prefix

	LogStore    LogStore
	Persistence Persistence
	Usage       Usage
	Redis       RedisConfig
	Kafka       KafkaConfig
}

// LogStore holds capacity bounds.
type LogStore struct {
	DefaultCapacity int
	MaxCapacity     int
}

// Persistence selects and configures the snapshot backend.
type Persistence struct {
	Backend            string
	SnapshotPath       string
	DatabaseURL        string
	RedisSnapshotKey   string
	PebbleDir          string
	CheckpointInterval time.Duration
}

// Usage configures the usage accountant.
type Usage struct {
	Period       time.Duration
	PollInterval time.Duration
	Topic        string
}

// RedisConfig configures the redis client used by the redis backend.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the usage report producer. An empty broker list
// disables reporting.
type KafkaConfig struct {
	Brokers         string
	Acks            string
	Retries         int
	DeliveryTimeout time.Duration
}

// Default returns the configuration used when no environment is set.
func Default() Server {
	return Server{
		Addr:            ":8080",
		Environment:     "local",
		LogLevel:        "info",
		ShutdownTimeout: 15 * time.Second,
		LogStore: LogStore{
			DefaultCapacity: 1000,
			MaxCapacity:     1_000_000,
		},
		Persistence: Persistence{
			Backend:            BackendFile,
			SnapshotPath:       "data/logvault.snapshot.json",
			RedisSnapshotKey:   "logvault:snapshot",
			PebbleDir:          "data/pebble",
			CheckpointInterval: time.Minute,
		},
		Usage: Usage{
			Period:       24 * time.Hour,
			PollInterval: time.Minute,
			Topic:        "logvault.usage",
		},
		Redis: RedisConfig{
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{
			Acks:            "all",
			Retries:         3,
			DeliveryTimeout: 30 * time.Second,
		},
	}
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Server, error) {
	cfg := Default()
	p := parser{lookup: lookup}

	p.str("LOGVAULT_ADDR", &cfg.Addr)
	p.str("ENVIRONMENT", &cfg.Environment)
	p.str("LOG_LEVEL", &cfg.LogLevel)
	p.duration("SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout)
	p.str("ADMIN_API_TOKEN", &cfg.AdminAPIToken)
	p.prefixes("TRUSTED_PROXIES", &cfg.TrustedProxies)

	p.integer("LOG_DEFAULT_CAPACITY", &cfg.LogStore.DefaultCapacity)
	p.integer("LOG_MAX_CAPACITY", &cfg.LogStore.MaxCapacity)

	p.str("PERSISTENCE_BACKEND", &cfg.Persistence.Backend)
	p.str("SNAPSHOT_PATH", &cfg.Persistence.SnapshotPath)
	p.str("DATABASE_URL", &cfg.Persistence.DatabaseURL)
	p.str("REDIS_SNAPSHOT_KEY", &cfg.Persistence.RedisSnapshotKey)
	p.str("PEBBLE_DIR", &cfg.Persistence.PebbleDir)
	p.duration("CHECKPOINT_INTERVAL", &cfg.Persistence.CheckpointInterval)

	p.duration("USAGE_PERIOD", &cfg.Usage.Period)
	p.duration("USAGE_POLL_INTERVAL", &cfg.Usage.PollInterval)
	p.str("USAGE_TOPIC", &cfg.Usage.Topic)

	p.str("REDIS_URL", &cfg.Redis.URL)
	p.str("KAFKA_BROKERS", &cfg.Kafka.Brokers)
	p.str("KAFKA_ACKS", &cfg.Kafka.Acks)

	if p.err != nil {
		return Server{}, p.err
	}
	cfg.Persistence.Backend = strings.ToLower(cfg.Persistence.Backend)
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c Server) Validate() error {
	if c.LogStore.MaxCapacity < 1 {
		return fmt.Errorf("LOG_MAX_CAPACITY must be positive")
	}
	if c.LogStore.DefaultCapacity < 1 || c.LogStore.DefaultCapacity > c.LogStore.MaxCapacity {
		return fmt.Errorf("LOG_DEFAULT_CAPACITY must be between 1 and %d", c.LogStore.MaxCapacity)
	}
	if c.Usage.Period <= 0 {
		return fmt.Errorf("USAGE_PERIOD must be positive")
	}
	if c.Usage.PollInterval <= 0 {
		return fmt.Errorf("USAGE_POLL_INTERVAL must be positive")
	}
	if c.Persistence.CheckpointInterval < 0 {
		return fmt.Errorf("CHECKPOINT_INTERVAL must not be negative")
	}

	switch c.Persistence.Backend {
	case BackendFile:
		if c.Persistence.SnapshotPath == "" {
			return fmt.Errorf("SNAPSHOT_PATH is required for the file backend")
		}
	case BackendPostgres:
		if c.Persistence.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	case BackendRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("REDIS_URL is required for the redis backend")
		}
	case BackendPebble:
		if c.Persistence.PebbleDir == "" {
			return fmt.Errorf("PEBBLE_DIR is required for the pebble backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown PERSISTENCE_BACKEND %q", c.Persistence.Backend)
	}
	return nil
}

// IsProduction reports whether the environment is production.
func (c Server) IsProduction() bool {
	return c.Environment == "production"
}

type parser struct {
	lookup func(string) (string, bool)
	err    error
}

func (p *parser) get(key string) (string, bool) {
	v, ok := p.lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func (p *parser) str(key string, dst *string) {
	if v, ok := p.get(key); ok {
		*dst = v
	}
}

func (p *parser) integer(key string, dst *int) {
	v, ok := p.get(key)
	if !ok || p.err != nil {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.err = fmt.Errorf("%s: invalid integer %q", key, v)
		return
	}
	*dst = n
}

func (p *parser) duration(key string, dst *time.Duration) {
	v, ok := p.get(key)
	if !ok || p.err != nil {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.err = fmt.Errorf("%s: invalid duration %q", key, v)
		return
	}
	*dst = d
}

func (p *parser) prefixes(key string, dst *[]netip.Prefix) {
	v, ok := p.get(key)
	if !ok || p.err != nil {
		return
	}
	parsed, err := metadata.ParseTrustedProxies(v)
	if err != nil {
		p.err = fmt.Errorf("%s: %w", key, err)
		return
	}
	*dst = parsed
}
