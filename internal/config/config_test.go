package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"ENV", "LLM_PROVIDER", "LLM_TIMEOUT_SECONDS", "LLM_MAX_RETRIES",
		"CACHE_TTL_MINUTES", "ESTIMATE_TAX_RATE",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Env != "dev" {
		t.Fatalf("expected dev env, got %s", cfg.Env)
	}
	if cfg.LLMProvider != "openai" {
		t.Fatalf("expected openai provider, got %s", cfg.LLMProvider)
	}
	if cfg.UpstreamTimeout != 60*time.Second {
		t.Fatalf("expected 60s timeout, got %s", cfg.UpstreamTimeout)
	}
	if cfg.MaxRetries != 2 {
		t.Fatalf("expected 2 retries, got %d", cfg.MaxRetries)
	}
	if cfg.CacheTTL != time.Hour {
		t.Fatalf("expected 1h cache TTL, got %s", cfg.CacheTTL)
	}
	if cfg.TaxRate != 0.08 {
		t.Fatalf("expected default tax rate, got %g", cfg.TaxRate)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "PROD")
	t.Setenv("LLM_TIMEOUT_SECONDS", "90")
	t.Setenv("LLM_MAX_RETRIES", "4")
	t.Setenv("ESTIMATE_TAX_RATE", "0.095")

	cfg := Load()
	if cfg.Env != "production" {
		t.Fatalf("expected normalized production env, got %s", cfg.Env)
	}
	if cfg.UpstreamTimeout != 90*time.Second {
		t.Fatalf("expected 90s timeout, got %s", cfg.UpstreamTimeout)
	}
	if cfg.MaxRetries != 4 {
		t.Fatalf("expected 4 retries, got %d", cfg.MaxRetries)
	}
	if cfg.TaxRate != 0.095 {
		t.Fatalf("expected tax rate 0.095, got %g", cfg.TaxRate)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("LLM_TIMEOUT_SECONDS", "not-a-number")
	t.Setenv("LLM_MAX_RETRIES", "-3")
	t.Setenv("ESTIMATE_TAX_RATE", "-1")

	cfg := Load()
	if cfg.UpstreamTimeout != 60*time.Second {
		t.Fatalf("bad timeout should fall back to default, got %s", cfg.UpstreamTimeout)
	}
	if cfg.MaxRetries != 2 {
		t.Fatalf("negative retries should fall back to default, got %d", cfg.MaxRetries)
	}
	if cfg.TaxRate != 0.08 {
		t.Fatalf("negative rate should fall back to default, got %g", cfg.TaxRate)
	}
}
