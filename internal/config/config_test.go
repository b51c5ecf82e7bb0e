package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredKeys(t *testing.T) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("MAPS_API_KEY", "maps-key")
	t.Setenv("VISUALCROSSING_API_KEY", "vc-key")
}

func TestLoadAppliesDefaults(t *testing.T) {
	setRequiredKeys(t)
	t.Setenv("ZEPHYR_HTTP_ADDR", "")
	t.Setenv("ZEPHYR_PROVIDER_TIMEOUT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.HTTP.Addr)
	}
	if cfg.Weather.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout = %s, want 10s", cfg.Weather.RequestTimeout)
	}
	if cfg.AI.GeminiKey != "gemini-key" || cfg.Maps.APIKey != "maps-key" || cfg.Weather.VisualCrossingKey != "vc-key" {
		t.Errorf("keys not loaded: %+v", cfg)
	}
}

func TestLoadParsesTimeout(t *testing.T) {
	setRequiredKeys(t)
	t.Setenv("ZEPHYR_PROVIDER_TIMEOUT", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Weather.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %s, want 30s", cfg.Weather.RequestTimeout)
	}
}

func TestLoadFallsBackOnBadTimeout(t *testing.T) {
	setRequiredKeys(t)
	t.Setenv("ZEPHYR_PROVIDER_TIMEOUT", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Weather.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout = %s, want the 10s default", cfg.Weather.RequestTimeout)
	}
}

func TestLoadErrorsOnMissingRequiredKey(t *testing.T) {
	setRequiredKeys(t)
	t.Setenv("MAPS_API_KEY", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected an error for a missing required key")
	}
	if !strings.Contains(err.Error(), "MAPS_API_KEY") {
		t.Errorf("error should name the missing key, got %q", err)
	}
}
