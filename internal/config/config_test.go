package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "easykanban.yaml")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad_EmptyPathYieldsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") = %v", err)
	}

	checks := []struct {
		name      string
		got, want any
	}{
		{"port", cfg.Server.Port, 8080},
		{"read timeout", cfg.Server.ReadTimeout, 30 * time.Second},
		{"driver", cfg.Database.Driver, "postgres"},
		{"token ttl", cfg.Auth.TokenTTL, 10 * time.Minute},
		{"algorithm", cfg.Auth.JWTAlgorithm, "HS256"},
		{"self service", cfg.Auth.EnforceSelfService, false},
		{"log level", cfg.LogLevel(), slog.LevelInfo},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestLoad_SQLiteDevConfig(t *testing.T) {
	t.Setenv("TEST_KANBAN_SECRET", "from-env")
	path := writeConfig(t, `
server:
  port: 9090
  host: "127.0.0.1"
database:
  driver: sqlite3
  url: "/var/lib/easykanban/kanban.db"
  max_open_conns: 1
auth:
  jwt_secret: "${TEST_KANBAN_SECRET}"
  jwt_algorithm: HS512
  token_ttl: 5m
  enforce_self_service: true
log:
  level: debug
cors:
  allowed_origins: ["http://localhost:5173"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if cfg.Addr() != "127.0.0.1:9090" {
		t.Errorf("Addr = %s", cfg.Addr())
	}
	if cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("unset write timeout should keep its default, got %v", cfg.Server.WriteTimeout)
	}
	if cfg.Database.Driver != "sqlite3" || cfg.Database.MaxOpenConns != 1 {
		t.Errorf("database = %+v", cfg.Database)
	}
	if cfg.Database.URL != "/var/lib/easykanban/kanban.db" {
		t.Errorf("sqlite path = %s", cfg.Database.URL)
	}
	if cfg.Auth.JWTSecret != "from-env" {
		t.Errorf("secret = %q, want expanded value", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.TokenTTL != 5*time.Minute || cfg.Auth.JWTAlgorithm != "HS512" || !cfg.Auth.EnforceSelfService {
		t.Errorf("auth = %+v", cfg.Auth)
	}
	if cfg.LogLevel() != slog.LevelDebug {
		t.Errorf("log level = %v", cfg.LogLevel())
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "http://localhost:5173" {
		t.Errorf("cors = %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\nauth:\n  jwt_secret: file-secret\n")
	env := map[string]string{
		"EASYKANBAN_DATABASE_DRIVER": "sqlite3",
		"EASYKANBAN_DATABASE_URL":    "/tmp/env.db",
		"EASYKANBAN_PORT":            "3000",
		"EASYKANBAN_HOST":            "10.0.0.1",
		"EASYKANBAN_JWT_SECRET":      "env-secret",
		"EASYKANBAN_JWT_ALGORITHM":   "HS384",
		"EASYKANBAN_LOG_LEVEL":       "warn",
	}
	for k, v := range env {
		t.Setenv(k, v)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Driver != "sqlite3" || cfg.Database.URL != "/tmp/env.db" {
		t.Errorf("database = %+v", cfg.Database)
	}
	if cfg.Addr() != "10.0.0.1:3000" {
		t.Errorf("Addr = %s", cfg.Addr())
	}
	if cfg.Auth.JWTSecret != "env-secret" || cfg.Auth.JWTAlgorithm != "HS384" {
		t.Errorf("auth = %+v", cfg.Auth)
	}
	if cfg.LogLevel() != slog.LevelWarn {
		t.Errorf("log level = %v", cfg.LogLevel())
	}
}

func TestEnvOverrides_BadPortIgnored(t *testing.T) {
	t.Setenv("EASYKANBAN_PORT", "eighty")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port kept, got %d", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := defaults()
		cfg.Auth.JWTSecret = "secret"
		return cfg
	}

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"sqlite driver", func(c *Config) { c.Database.Driver = "sqlite3"; c.Database.URL = "kanban.db" }, false},
		{"port too low", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, true},
		{"zero read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }, true},
		{"zero write timeout", func(c *Config) { c.Server.WriteTimeout = 0 }, true},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, true},
		{"empty db url", func(c *Config) { c.Database.URL = "" }, true},
		{"negative pool", func(c *Config) { c.Database.MaxOpenConns = -1 }, true},
		{"empty secret", func(c *Config) { c.Auth.JWTSecret = "" }, true},
		{"asymmetric algorithm", func(c *Config) { c.Auth.JWTAlgorithm = "RS256" }, true},
		{"zero ttl", func(c *Config) { c.Auth.TokenTTL = 0 }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_DefaultsNeedSecret(t *testing.T) {
	if err := defaults().Validate(); err == nil {
		t.Error("expected defaults without a jwt secret to be rejected")
	}
}

func TestAddr(t *testing.T) {
	cfg := defaults()
	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("expected 0.0.0.0:8080, got %s", cfg.Addr())
	}
}

func TestLogLevel_FallsBackToInfo(t *testing.T) {
	cfg := defaults()
	cfg.Log.Level = "nonsense"
	if cfg.LogLevel() != slog.LevelInfo {
		t.Errorf("expected info, got %v", cfg.LogLevel())
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_KANBAN_VAR", "hello")
	result := expandEnvVars("value: ${TEST_KANBAN_VAR}")
	if result != "value: hello" {
		t.Errorf("expected 'value: hello', got %s", result)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(writeConfig(t, "{{invalid yaml")); err == nil {
		t.Error("expected error for invalid YAML")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
