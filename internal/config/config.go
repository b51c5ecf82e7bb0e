// README: Config loader with env defaults for HTTP, AI, maps, and provider settings.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	AI struct {
		GeminiKey string
	}
	Maps struct {
		APIKey string
	}
	Weather struct {
		VisualCrossingKey string
		RequestTimeout    time.Duration
	}
}

func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: no .env file found: %v", err)
	}

	var cfg Config
	var err error
	cfg.HTTP.Addr = envOrDefault("ZEPHYR_HTTP_ADDR", ":8080")
	if cfg.AI.GeminiKey, err = envOrError("GEMINI_API_KEY"); err != nil {
		return Config{}, err
	}
	if cfg.Maps.APIKey, err = envOrError("MAPS_API_KEY"); err != nil {
		return Config{}, err
	}
	if cfg.Weather.VisualCrossingKey, err = envOrError("VISUALCROSSING_API_KEY"); err != nil {
		return Config{}, err
	}
	cfg.Weather.RequestTimeout = envOrDefaultDuration("ZEPHYR_PROVIDER_TIMEOUT", 10*time.Second)
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrError(key string) (string, error) {
	if v := os.Getenv(key); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("environment variable %s is required", key)
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
