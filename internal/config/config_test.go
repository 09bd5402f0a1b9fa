package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("SALON_API_BASE_URL", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.SalonAPIBaseURL != "http://localhost:9000" {
		t.Fatalf("expected default salon API base URL, got %s", cfg.SalonAPIBaseURL)
	}
	if cfg.BookingFeePence != 50 {
		t.Fatalf("expected default booking fee, got %d", cfg.BookingFeePence)
	}
	if cfg.ConfirmMaxAttempts != 10 {
		t.Fatalf("expected default confirm attempts, got %d", cfg.ConfirmMaxAttempts)
	}
	if cfg.ConfirmRetryStep != time.Second {
		t.Fatalf("expected default confirm retry step, got %s", cfg.ConfirmRetryStep)
	}
	if cfg.SessionTTL != 30*24*time.Hour {
		t.Fatalf("expected default session TTL, got %s", cfg.SessionTTL)
	}
	if cfg.DefaultCurrency != "GBP" {
		t.Fatalf("expected default currency, got %s", cfg.DefaultCurrency)
	}
	if len(cfg.CORSAllowedOrigins) != 0 {
		t.Fatalf("expected no CORS origins by default, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SALON_API_BASE_URL", "https://api.salon.example")
	t.Setenv("SALON_API_TIMEOUT", "5s")
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("BOOKING_FEE_PENCE", "75")
	t.Setenv("CONFIRM_MAX_ATTEMPTS", "3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://shop.example, https://admin.example")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.SalonAPIBaseURL != "https://api.salon.example" {
		t.Fatalf("expected base URL override, got %s", cfg.SalonAPIBaseURL)
	}
	if cfg.SalonAPITimeout != 5*time.Second {
		t.Fatalf("expected timeout override, got %s", cfg.SalonAPITimeout)
	}
	if cfg.RedisAddr != "cache:6380" {
		t.Fatalf("expected redis addr override, got %s", cfg.RedisAddr)
	}
	if !cfg.RedisTLS {
		t.Fatalf("expected redis TLS enabled")
	}
	if cfg.BookingFeePence != 75 {
		t.Fatalf("expected booking fee override, got %d", cfg.BookingFeePence)
	}
	if cfg.ConfirmMaxAttempts != 3 {
		t.Fatalf("expected confirm attempts override, got %d", cfg.ConfirmMaxAttempts)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://admin.example" {
		t.Fatalf("expected CORS origins override, got %v", cfg.CORSAllowedOrigins)
	}
}
