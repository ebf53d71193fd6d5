package app

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/i474232898/weather-lookup/internal/config"
	"github.com/i474232898/weather-lookup/internal/store"
	"github.com/i474232898/weather-lookup/internal/weather"
	"github.com/i474232898/weather-lookup/internal/weather/providers"
)

// NewService wires the Open-Meteo providers and search history into a weather.Service.
func NewService(cfg *config.AppConfig, logger *zap.Logger) (*weather.Service, *store.MemoryStore) {
	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	geocoder := providers.NewOpenMeteoGeocoder(httpClient, providers.Config{
		BaseURL:   cfg.GeocodingBaseURL,
		UserAgent: cfg.UserAgent,
	})
	forecaster := providers.NewOpenMeteoForecaster(httpClient, providers.Config{
		BaseURL:   cfg.ForecastBaseURL,
		UserAgent: cfg.UserAgent,
	})

	history := store.NewMemoryStore(cfg.HistoryMaxEntries, cfg.HistoryMaxAge)
	return weather.NewService(geocoder, forecaster, history, logger.Named("weather")), history
}
