package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/miyamo2/qilin"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// searcher is the part of *weather.Service the tools need.
type searcher interface {
	Search(ctx context.Context, query string) (weather.View, error)
	View() weather.View
}

type handlers struct {
	service searcher
}

// lookupWeatherRequest contains input parameters for the lookup_weather tool.
type lookupWeatherRequest struct {
	City string `json:"city" jsonschema:"description=City name to look up"`
}

// classifyRequest contains input parameters for the classify_weather_code tool.
type classifyRequest struct {
	Code int `json:"code" jsonschema:"description=Open-Meteo weather code"`
}

func (h *handlers) LookupWeather(c qilin.ToolContext) error {
	var req lookupWeatherRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	view, err := h.service.Search(c.Context(), req.City)
	if err != nil {
		if errors.Is(err, weather.ErrEmptyQuery) {
			return fmt.Errorf("city is required")
		}
		return errors.New(weather.Message(err))
	}
	return c.JSON(view)
}

func (h *handlers) ClassifyWeatherCode(c qilin.ToolContext) error {
	var req classifyRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	cls := weather.Classify(req.Code)
	return c.String(fmt.Sprintf("%d: %s %s (theme %s)", req.Code, cls.Icon, cls.Label, weather.ThemeFor(req.Code)))
}

func (h *handlers) CurrentView(c qilin.ResourceContext) error {
	return c.JSON(h.service.View())
}
