package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolateEnv clears the variables the loader reads and restores them afterwards
func isolateEnv(t *testing.T) {
	t.Helper()
	for key := range envMappings {
		name := strings.ToUpper(key)
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
}

func TestLoad_Defaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTPPort != 8080 || cfg.Server.GRPCPort != 9090 {
		t.Errorf("ports = %d/%d, want 8080/9090", cfg.Server.HTTPPort, cfg.Server.GRPCPort)
	}
	if cfg.Store.Driver != DriverPostgres {
		t.Errorf("driver = %q, want postgres", cfg.Store.Driver)
	}
	if cfg.RateLimit.Window != time.Minute || cfg.RateLimit.Requests != 100 {
		t.Errorf("rate limit = %d/%v", cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}
	if len(cfg.Kafka.Brokers) != 0 {
		t.Errorf("brokers = %v, want none", cfg.Kafka.Brokers)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	isolateEnv(t)
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/plants.db")
	t.Setenv("HTTP_PORT", "8181")
	t.Setenv("SEED_CATALOG", "true")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("OTEL_SERVICE_NAME", "plants")
	t.Setenv("UNRELATED_SETTING", "ignored")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Store.Driver != DriverSQLite || cfg.Store.SQLitePath != "/tmp/plants.db" || !cfg.Store.Seed {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Server.HTTPPort != 8181 {
		t.Errorf("http port = %d, want 8181", cfg.Server.HTTPPort)
	}
	if cfg.RateLimit.Window != 30*time.Second {
		t.Errorf("window = %v, want 30s", cfg.RateLimit.Window)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "kafka-2:9092" {
		t.Errorf("brokers = %v", cfg.Kafka.Brokers)
	}
	if cfg.Service.Name != "plants" {
		t.Errorf("service name = %q", cfg.Service.Name)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	isolateEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlConfig := `
store:
  driver: memory
server:
  http_port: 8000
  grpc_port: 9000
rate_limit:
  requests: 5
`
	if err := os.WriteFile(path, []byte(yamlConfig), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("GRPC_PORT", "9500")

	cfg, err := Load(filepath.Join(dir, "absent.env"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Store.Driver != DriverMemory || cfg.Server.HTTPPort != 8000 || cfg.RateLimit.Requests != 5 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Server.GRPCPort != 9500 {
		t.Errorf("grpc port = %d, env should win over file", cfg.Server.GRPCPort)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	isolateEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("DB_NAME=fromdotenv\nDB_PORT=6543\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Name != "fromdotenv" || cfg.Database.Port != 6543 {
		t.Errorf("database = %+v", cfg.Database)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.Store.Driver = "mongo" }, wantErr: "store.driver"},
		{name: "sqlite without path", mutate: func(c *Config) {
			c.Store.Driver = DriverSQLite
			c.Store.SQLitePath = ""
		}, wantErr: "sqlite_path"},
		{name: "port out of range", mutate: func(c *Config) { c.Server.HTTPPort = 70000 }, wantErr: "server.http_port"},
		{name: "same ports", mutate: func(c *Config) { c.Server.GRPCPort = c.Server.HTTPPort }, wantErr: "must differ"},
		{name: "bad database port", mutate: func(c *Config) { c.Database.Port = 0 }, wantErr: "database.port"},
		{name: "database port ignored for memory", mutate: func(c *Config) {
			c.Store.Driver = DriverMemory
			c.Database.Port = 0
		}},
		{name: "zero rate limit", mutate: func(c *Config) { c.RateLimit.Requests = 0 }, wantErr: "rate_limit"},
		{name: "default secret in production", mutate: func(c *Config) { c.Service.Environment = "production" }, wantErr: "jwt_secret"},
		{name: "custom secret in production", mutate: func(c *Config) {
			c.Service.Environment = "production"
			c.Auth.JWTSecret = "s3cret"
		}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}
