package main

import (
	"log"

	"github.com/miyamo2/qilin"
	"go.uber.org/zap"

	"github.com/i474232898/weather-lookup/internal/app"
	"github.com/i474232898/weather-lookup/internal/config"
	"github.com/i474232898/weather-lookup/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// zap writes to stderr, leaving stdout to the stdio transport.
	zl, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	service, _ := app.NewService(cfg, zl)
	h := &handlers{service: service}

	q := qilin.New("weather-lookup", qilin.WithVersion("1.0.0"))

	q.Tool("lookup_weather",
		(*lookupWeatherRequest)(nil),
		h.LookupWeather,
		qilin.ToolWithDescription("Resolve a city and return its current conditions and 5-day forecast"))

	q.Tool("classify_weather_code",
		(*classifyRequest)(nil),
		h.ClassifyWeatherCode,
		qilin.ToolWithDescription("Describe an Open-Meteo (WMO) weather code"))

	q.Resource(
		"Latest Weather",
		"weather://current",
		h.CurrentView,
		qilin.ResourceWithDescription("Result of the most recent weather lookup"),
		qilin.ResourceWithMimeType("application/json"))

	if err := q.Start(); err != nil {
		zl.Fatal("mcp server stopped", zap.Error(err))
	}
}
