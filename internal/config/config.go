package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownBackend is returned for a store backend name that is not
	// memory, redis or sqlite.
	ErrUnknownBackend = errors.New("unknown store backend")
	// ErrIncompleteTLS is returned when only some of the TLS files are
	// configured.
	ErrIncompleteTLS = errors.New("tls requires cert, key and ca")
)

// Store backend names.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Config represents the overall application configuration
type Config struct {
	Store StoreConfig `yaml:"store"`
	GRPC  GRPCConfig  `yaml:"grpc"`
	HTTP  HTTPConfig  `yaml:"http"`
}

// StoreConfig selects and parameterizes the user store backend
type StoreConfig struct {
	Backend string       `yaml:"backend"`
	Redis   RedisConfig  `yaml:"redis"`
	SQLite  SQLiteConfig `yaml:"sqlite"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// GRPCConfig represents the gRPC listener configuration
type GRPCConfig struct {
	Addr string    `yaml:"addr"`
	TLS  TLSConfig `yaml:"tls"`
}

// TLSConfig holds PEM file paths for mutual TLS.  All three empty
// disables TLS.
type TLSConfig struct {
	Cert string `yaml:"cert"`
	Key  string `yaml:"key"`
	CA   string `yaml:"ca"`
}

// Enabled reports whether any TLS file is configured.
func (t TLSConfig) Enabled() bool {
	return t.Cert != "" || t.Key != "" || t.CA != ""
}

// HTTPConfig represents the REST gateway configuration.  An empty Addr
// disables the gateway.
type HTTPConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: BackendMemory,
			Redis: RedisConfig{
				Addr: "127.0.0.1:6379",
				Key:  "users",
			},
			SQLite: SQLiteConfig{
				Path: "users.db",
			},
		},
		GRPC: GRPCConfig{
			Addr: "0.0.0.0:9090",
		},
		HTTP: HTTPConfig{
			AllowedOrigins: []string{"*"},
		},
	}
}

// Load reads the YAML file at path over the defaults.  An empty path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.Store.Redis.Addr == "" {
			return errors.New("store.redis.addr is required for the redis backend")
		}
	case BackendSQLite:
		if c.Store.SQLite.Path == "" {
			return errors.New("store.sqlite.path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Store.Backend)
	}

	if c.GRPC.Addr == "" {
		return errors.New("grpc.addr is required")
	}
	t := c.GRPC.TLS
	if t.Enabled() && (t.Cert == "" || t.Key == "" || t.CA == "") {
		return ErrIncompleteTLS
	}
	return nil
}
