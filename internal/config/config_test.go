package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/testdb")
	t.Setenv("AUTH_JWT_SECRET", "this-is-a-very-long-jwt-secret-for-testing-32+")
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  write_timeout: "15s"
  idle_timeout: "30s"
  shutdown_timeout: "5s"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10
  min_conns: 2

auth:
  jwt_secret: "this-is-a-very-long-jwt-secret-for-testing-32+"
  access_token_ttl: "8h"
  password_hash_cost: 12

inventory:
  low_stock_threshold: 15
  large_sale_threshold: 75000

push:
  subscriber_buffer: 32

log:
  level: "debug"
  format: "text"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Server
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want %v", cfg.Server.ReadTimeout, 5*time.Second)
	}

	// Database
	if cfg.Database.DSN != "postgres://u:p@localhost:5432/testdb" {
		t.Errorf("database.dsn = %q", cfg.Database.DSN)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("database.max_conns = %d, want 10", cfg.Database.MaxConns)
	}

	// Auth
	if cfg.Auth.AccessTokenTTL != 8*time.Hour {
		t.Errorf("auth.access_token_ttl = %v, want 8h", cfg.Auth.AccessTokenTTL)
	}
	if cfg.Auth.PasswordHashCost != 12 {
		t.Errorf("auth.password_hash_cost = %d, want 12", cfg.Auth.PasswordHashCost)
	}

	// Inventory
	if cfg.Inventory.LowStockThreshold != 15 {
		t.Errorf("inventory.low_stock_threshold = %d, want 15", cfg.Inventory.LowStockThreshold)
	}
	if cfg.Inventory.LargeSaleThreshold != 75000 {
		t.Errorf("inventory.large_sale_threshold = %v, want 75000", cfg.Inventory.LargeSaleThreshold)
	}

	// Push
	if cfg.Push.SubscriberBuffer != 32 {
		t.Errorf("push.subscriber_buffer = %d, want 32", cfg.Push.SubscriberBuffer)
	}

	// Log
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "text")
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("INVENTORY_LOW_STOCK_THRESHOLD", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Inventory.LowStockThreshold != 5 {
		t.Errorf("inventory.low_stock_threshold = %d, want 5 (ENV override)", cfg.Inventory.LowStockThreshold)
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	validEnv(t)

	t.Setenv("CONFIG_PATH", "")
	// Set working dir to a temp dir with no config.yaml
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080 (default)", cfg.Server.Port)
	}
	if cfg.Inventory.LowStockThreshold != 10 {
		t.Errorf("inventory.low_stock_threshold = %d, want 10 (default)", cfg.Inventory.LowStockThreshold)
	}
	if cfg.Inventory.LargeSaleThreshold != 50000 {
		t.Errorf("inventory.large_sale_threshold = %v, want 50000 (default)", cfg.Inventory.LargeSaleThreshold)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate_JWTSecretTooShort(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.JWTSecret = "short"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for short JWT secret")
	}
}

func TestValidate_JWTSecretEmpty(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.JWTSecret = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty JWT secret")
	}
}

func TestValidate_PasswordHashCostOutOfRange(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.PasswordHashCost = 3

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for hash cost below bcrypt minimum")
	}

	cfg.Auth.PasswordHashCost = 32
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for hash cost above bcrypt maximum")
	}
}

func TestValidate_LowStockThresholdZero(t *testing.T) {
	cfg := validConfig()
	cfg.Inventory.LowStockThreshold = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for LowStockThreshold = 0")
	}
}

func TestValidate_LargeSaleThresholdNegative(t *testing.T) {
	cfg := validConfig()
	cfg.Inventory.LargeSaleThreshold = -1

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative LargeSaleThreshold")
	}
}

func TestValidate_SubscriberBufferZero(t *testing.T) {
	cfg := validConfig()
	cfg.Push.SubscriberBuffer = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for SubscriberBuffer = 0")
	}
}

// validConfig returns a Config that passes all validation checks.
func validConfig() Config {
	return Config{
		Auth: AuthConfig{
			JWTSecret:        "this-is-a-very-long-jwt-secret-for-testing-32+",
			PasswordHashCost: 10,
		},
		Inventory: InventoryConfig{
			LowStockThreshold:  10,
			LargeSaleThreshold: 50000,
		},
		Push: PushConfig{
			SubscriberBuffer: 16,
		},
	}
}
