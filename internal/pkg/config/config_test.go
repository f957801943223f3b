package config

import (
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" || cfg.Env != "development" || cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.MealDB.BaseURL != "https://www.themealdb.com/api/json/v1/1" {
		t.Fatalf("unexpected meal db url %q", cfg.MealDB.BaseURL)
	}
	if cfg.DefaultWidth != 1200 || cfg.EmailJS.Workers != 4 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.SessionIdle != time.Hour || cfg.SessionSweep != 5*time.Minute {
		t.Fatalf("unexpected session defaults: %v / %v", cfg.SessionIdle, cfg.SessionSweep)
	}
	if cfg.IsProduction() {
		t.Fatalf("expected development environment")
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(envconfig.MapLookuper(map[string]string{
		"ENV":                "production",
		"REDIS_ADDR":         "cache:6379",
		"REDIS_DB":           "2",
		"EMAILJS_PUBLIC_KEY": "pk",
		"TOKEN_TTL":          "2h",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.IsProduction() || cfg.Redis.Addr != "cache:6379" || cfg.Redis.DB != 2 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.EmailJS.PublicKey != "pk" || cfg.TokenTTL != 2*time.Hour {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadWith_InvalidValue(t *testing.T) {
	if _, err := LoadWith(envconfig.MapLookuper(map[string]string{"REDIS_DB": "zero"})); err == nil {
		t.Fatalf("expected error for non-numeric REDIS_DB")
	}
}
