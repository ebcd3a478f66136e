package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("Expected default DB host localhost, got %s", cfg.Database.Host)
	}
	if cfg.Kafka.Topic != "easyshop.events" {
		t.Errorf("Expected default topic easyshop.events, got %s", cfg.Kafka.Topic)
	}
	if !cfg.Telebirr.UseMock {
		t.Error("Expected mock payments by default")
	}
	if cfg.Telebirr.UseMockSigning {
		t.Error("Expected real signing by default")
	}
	if cfg.Telebirr.Timeout != 30*time.Second {
		t.Errorf("Expected 30s gateway timeout, got %v", cfg.Telebirr.Timeout)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("Expected 24h token TTL, got %v", cfg.Auth.TokenTTL)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("TELEBIRR_USE_MOCK", "false")
	t.Setenv("TELEBIRR_MERCHANT_CODE", "MC777")
	t.Setenv("REDIS_TTL_SECONDS", "60")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Telebirr.UseMock {
		t.Error("Expected mock to be disabled")
	}
	if cfg.Telebirr.MerchantCode != "MC777" {
		t.Errorf("Expected merchant code MC777, got %s", cfg.Telebirr.MerchantCode)
	}
	if cfg.Redis.TTL != time.Minute {
		t.Errorf("Expected 60s Redis TTL, got %v", cfg.Redis.TTL)
	}
}

func TestLoad_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("TELEBIRR_USE_MOCK", "maybe")

	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("Expected fallback port 8080, got %d", cfg.Server.Port)
	}
	if !cfg.Telebirr.UseMock {
		t.Error("Expected fallback mock default")
	}
}

func TestDatabaseConnectionString(t *testing.T) {
	db := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "shop",
		Password: "secret",
		Name:     "orders",
		SSLMode:  "require",
	}

	want := "host=db.internal port=5433 user=shop password=secret dbname=orders sslmode=require"
	if got := db.ConnectionString(); got != want {
		t.Errorf("ConnectionString() = %q, want %q", got, want)
	}
}
