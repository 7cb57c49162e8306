package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "CORS_ORIGINS", "IMAGE_FOLDER_ROOT", "ORDER_CACHE_TTL", "REDIS_URL", "AMQP_EXCHANGE"} {
		t.Setenv(k, "")
	}
	cfg := Load()

	if cfg.Port != "8081" {
		t.Errorf("expected port 8081, got %s", cfg.Port)
	}
	if cfg.ImageFolderRoot != "phoo/orders" {
		t.Errorf("expected image folder root phoo/orders, got %s", cfg.ImageFolderRoot)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("expected CORS origins [*], got %v", cfg.CORSOrigins)
	}
	if cfg.OrderCacheTTL != 30*time.Second {
		t.Errorf("expected cache TTL 30s, got %s", cfg.OrderCacheTTL)
	}
	if cfg.RedisURL != "" {
		t.Errorf("expected redis disabled by default, got %s", cfg.RedisURL)
	}
	if cfg.AMQPExchange != "bakery.orders" {
		t.Errorf("expected exchange bakery.orders, got %s", cfg.AMQPExchange)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CORS_ORIGINS", " https://a.example , https://b.example,, ")
	t.Setenv("ORDER_CACHE_TTL", "5s")
	cfg := Load()

	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("unexpected CORS origins %v", cfg.CORSOrigins)
	}
	if cfg.OrderCacheTTL != 5*time.Second {
		t.Errorf("expected cache TTL 5s, got %s", cfg.OrderCacheTTL)
	}
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("ORDER_CACHE_TTL", "soon")
	if got := Load().OrderCacheTTL; got != 30*time.Second {
		t.Errorf("expected fallback 30s, got %s", got)
	}
}
