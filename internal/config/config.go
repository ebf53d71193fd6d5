package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	defaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	defaultForecastURL  = "https://api.open-meteo.com/v1/forecast"
)

type AppConfig struct {
	// Open-Meteo endpoints.
	GeocodingBaseURL string `validate:"required,url"`
	ForecastBaseURL  string `validate:"required,url"`
	UserAgent        string

	// DefaultCity is searched once at startup.
	DefaultCity string

	// RefreshInterval re-runs the latest search periodically (0 = never).
	RefreshInterval time.Duration `validate:"gte=0"`

	// HTTPTimeout bounds each outbound provider call.
	HTTPTimeout time.Duration `validate:"gt=0"`

	// Search history retention.
	HistoryMaxEntries int           `validate:"gte=0"` // 0 = unlimited
	HistoryMaxAge     time.Duration `validate:"gte=0"` // 0 = unlimited

	LogLevel string `validate:"oneof=debug info warn error"`
	Port     string `validate:"required,numeric"`
}

var validate = validator.New()

// Load reads configuration from the environment (and an optional .env file) with sensible defaults.
func Load() (*AppConfig, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	cfg := &AppConfig{
		GeocodingBaseURL:  getenvDefault("GEOCODING_BASE_URL", defaultGeocodingURL),
		ForecastBaseURL:   getenvDefault("FORECAST_BASE_URL", defaultForecastURL),
		UserAgent:         getenvDefault("USER_AGENT", "weather-lookup/1.0"),
		DefaultCity:       getenvDefault("DEFAULT_CITY", "Delhi"),
		LogLevel:          getenvDefault("LOG_LEVEL", "info"),
		Port:              getenvDefault("PORT", "8080"),
	}

	var err error
	if cfg.HistoryMaxEntries, err = getenvInt("HISTORY_MAX", 50); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", "0"); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.HistoryMaxAge, err = getenvDuration("HISTORY_MAX_AGE", "24h"); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
