package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Store drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

const defaultJWTSecret = "development-secret"

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/plant-catalog/config.yaml",
}

// ConfigPathEnvVar overrides the config file location
const ConfigPathEnvVar = "CONFIG_PATH"

// Config is the complete service configuration
type Config struct {
	Service   ServiceConfig   `koanf:"service"`
	Server    ServerConfig    `koanf:"server"`
	Store     StoreConfig     `koanf:"store"`
	Database  DatabaseConfig  `koanf:"database"`
	Redis     RedisConfig     `koanf:"redis"`
	Kafka     KafkaConfig     `koanf:"kafka"`
	Auth      AuthConfig      `koanf:"auth"`
	Tracing   TracingConfig   `koanf:"tracing"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	Breaker   BreakerConfig   `koanf:"breaker"`
}

type ServiceConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
	LogLevel    string `koanf:"log_level"`
}

type ServerConfig struct {
	HTTPPort        int           `koanf:"http_port"`
	GRPCPort        int           `koanf:"grpc_port"`
	RequestTimeout  time.Duration `koanf:"request_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// StoreConfig selects the catalog backend
type StoreConfig struct {
	Driver     string `koanf:"driver"`
	SQLitePath string `koanf:"sqlite_path"`
	Seed       bool   `koanf:"seed"`
}

type DatabaseConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Name     string `koanf:"name"`
	SSLMode  string `koanf:"sslmode"`
}

// RedisConfig is optional; an empty Addr disables the shared rate limiter
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// KafkaConfig is optional; no brokers means events are not published
type KafkaConfig struct {
	Brokers []string `koanf:"brokers"`
}

type AuthConfig struct {
	JWTSecret string        `koanf:"jwt_secret"`
	TokenTTL  time.Duration `koanf:"token_ttl"`
}

type TracingConfig struct {
	Enabled        bool   `koanf:"enabled"`
	JaegerEndpoint string `koanf:"jaeger_endpoint"`
}

type RateLimitConfig struct {
	Requests int           `koanf:"requests"`
	Window   time.Duration `koanf:"window"`
}

type BreakerConfig struct {
	Enabled          bool          `koanf:"enabled"`
	FailureThreshold uint32        `koanf:"failure_threshold"`
	Timeout          time.Duration `koanf:"timeout"`
}

func defaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			Name:        "catalog-service",
			Version:     "1.0.0",
			Environment: "development",
			LogLevel:    "info",
		},
		Server: ServerConfig{
			HTTPPort:        8080,
			GRPCPort:        9090,
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
		},
		Store: StoreConfig{
			Driver:     DriverPostgres,
			SQLitePath: "catalog.db",
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Name:     "catalogdb",
			SSLMode:  "disable",
		},
		Kafka: KafkaConfig{Brokers: []string{}},
		Auth: AuthConfig{
			JWTSecret: defaultJWTSecret,
			TokenTTL:  24 * time.Hour,
		},
		Tracing: TracingConfig{
			Enabled:        true,
			JaegerEndpoint: "http://localhost:14268/api/traces",
		},
		RateLimit: RateLimitConfig{
			Requests: 100,
			Window:   time.Minute,
		},
		Breaker: BreakerConfig{
			Enabled:          true,
			FailureThreshold: 5,
			Timeout:          30 * time.Second,
		},
	}
}

// Load layers defaults, an optional YAML file and the environment, in that
// order of increasing priority. A .env file, when present, is loaded into
// the environment first without overriding variables that are already set.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

var envMappings = map[string]string{
	"otel_service_name":         "service.name",
	"service_version":           "service.version",
	"environment":               "service.environment",
	"log_level":                 "service.log_level",
	"http_port":                 "server.http_port",
	"grpc_port":                 "server.grpc_port",
	"request_timeout":           "server.request_timeout",
	"shutdown_timeout":          "server.shutdown_timeout",
	"cors_origins":              "server.cors_origins",
	"store_driver":              "store.driver",
	"sqlite_path":               "store.sqlite_path",
	"seed_catalog":              "store.seed",
	"db_host":                   "database.host",
	"db_port":                   "database.port",
	"db_user":                   "database.user",
	"db_password":               "database.password",
	"db_name":                   "database.name",
	"db_sslmode":                "database.sslmode",
	"redis_addr":                "redis.addr",
	"redis_password":            "redis.password",
	"redis_db":                  "redis.db",
	"kafka_brokers":             "kafka.brokers",
	"jwt_secret":                "auth.jwt_secret",
	"token_ttl":                 "auth.token_ttl",
	"tracing_enabled":           "tracing.enabled",
	"jaeger_endpoint":           "tracing.jaeger_endpoint",
	"rate_limit_requests":       "rate_limit.requests",
	"rate_limit_window":         "rate_limit.window",
	"breaker_enabled":           "breaker.enabled",
	"breaker_failure_threshold": "breaker.failure_threshold",
	"breaker_timeout":           "breaker.timeout",
}

// envTransformFunc maps known environment variables onto config paths and
// drops everything else
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

var sliceConfigPaths = []string{
	"server.cors_origins",
	"kafka.brokers",
}

// processSliceFields splits comma-separated environment values
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		raw, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		parts := make([]string, 0)
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// Validate rejects configurations the service cannot start with
func (c *Config) Validate() error {
	var errs []error

	switch c.Store.Driver {
	case DriverPostgres, DriverSQLite, DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("store.driver must be one of postgres, sqlite, memory; got %q", c.Store.Driver))
	}
	if c.Store.Driver == DriverSQLite && c.Store.SQLitePath == "" {
		errs = append(errs, errors.New("store.sqlite_path is required for the sqlite driver"))
	}

	for name, port := range map[string]int{
		"server.http_port": c.Server.HTTPPort,
		"server.grpc_port": c.Server.GRPCPort,
	} {
		if port < 1 || port > 65535 {
			errs = append(errs, fmt.Errorf("%s must be between 1 and 65535; got %d", name, port))
		}
	}
	if c.Server.HTTPPort == c.Server.GRPCPort {
		errs = append(errs, errors.New("server.http_port and server.grpc_port must differ"))
	}
	if c.Store.Driver == DriverPostgres && (c.Database.Port < 1 || c.Database.Port > 65535) {
		errs = append(errs, fmt.Errorf("database.port must be between 1 and 65535; got %d", c.Database.Port))
	}

	if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("rate_limit.requests and rate_limit.window must be positive"))
	}

	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret is required"))
	} else if c.IsProduction() && c.Auth.JWTSecret == defaultJWTSecret {
		errs = append(errs, errors.New("auth.jwt_secret must be changed in production"))
	}

	return errors.Join(errs...)
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Service.Environment, "production")
}

// Addr helpers used by the servers
func (c ServerConfig) HTTPAddr() string { return fmt.Sprintf(":%d", c.HTTPPort) }
func (c ServerConfig) GRPCAddr() string { return fmt.Sprintf(":%d", c.GRPCPort) }
