package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DB.Port != "5432" {
		t.Errorf("expected default DB port 5432, got %q", cfg.DB.Port)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("expected default server port 8080, got %q", cfg.Server.Port)
	}
	if cfg.JWT.ExpirationHours != 24 {
		t.Errorf("expected default expiration 24h, got %d", cfg.JWT.ExpirationHours)
	}
	if cfg.Media.Bucket != "car-listings" {
		t.Errorf("expected default bucket car-listings, got %q", cfg.Media.Bucket)
	}
	if cfg.IsProduction() {
		t.Error("default environment should not be production")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("DB_CONN_MAX_LIFETIME", "30m")
	t.Setenv("APP_ENV", "production")
	t.Setenv("MEDIA_USE_SSL", "true")
	t.Setenv("METRICS_PREFIX", "marketplace")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DB.Host != "db.internal" {
		t.Errorf("expected DB host override, got %q", cfg.DB.Host)
	}
	if cfg.DB.MaxOpenConns != 25 {
		t.Errorf("expected 25 open conns, got %d", cfg.DB.MaxOpenConns)
	}
	if cfg.DB.ConnMaxLifetime != 30*time.Minute {
		t.Errorf("expected 30m lifetime, got %v", cfg.DB.ConnMaxLifetime)
	}
	if !cfg.IsProduction() {
		t.Error("expected production environment")
	}
	if !cfg.Media.UseSSL {
		t.Error("expected media SSL enabled")
	}
	if cfg.Metrics.Prefix != "marketplace" {
		t.Errorf("expected metrics prefix override, got %q", cfg.Metrics.Prefix)
	}
}

func TestGetDSN(t *testing.T) {
	db := DBConfig{
		Host: "localhost", Port: "5432", User: "postgres",
		Password: "secret", DBName: "carmarket", SSLMode: "disable",
	}
	want := "host=localhost port=5432 user=postgres password=secret dbname=carmarket sslmode=disable"
	if got := db.GetDSN(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestInvalidEnvValuesFallBack(t *testing.T) {
	t.Setenv("DB_MAX_IDLE_CONNS", "many")
	t.Setenv("DB_CONN_MAX_LIFETIME", "forever")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DB.MaxIdleConns != 10 {
		t.Errorf("expected fallback 10, got %d", cfg.DB.MaxIdleConns)
	}
	if cfg.DB.ConnMaxLifetime != time.Hour {
		t.Errorf("expected fallback 1h, got %v", cfg.DB.ConnMaxLifetime)
	}
}
