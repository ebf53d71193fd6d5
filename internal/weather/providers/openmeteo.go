package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-lookup/internal/weather"
)

const (
	DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	DefaultForecastURL  = "https://api.open-meteo.com/v1/forecast"

	currentParams = "temperature_2m,relative_humidity_2m,apparent_temperature,wind_speed_10m,weather_code"
	dailyParams   = "weather_code,temperature_2m_max,temperature_2m_min"

	currentTimeLayout = "2006-01-02T15:04"
	dailyTimeLayout   = "2006-01-02"
)

var (
	_ weather.Resolver = (*OpenMeteoGeocoder)(nil)
	_ weather.Fetcher  = (*OpenMeteoForecaster)(nil)
)

// OpenMeteoGeocoder implements weather.Resolver with the Open-Meteo geocoding API.
type OpenMeteoGeocoder struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoGeocoder(client *http.Client, cfg Config) *OpenMeteoGeocoder {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultGeocodingURL
	}
	return &OpenMeteoGeocoder{
		baseURL: baseURL,
		httpCfg: httpConfig(client, cfg),
		circuit: newCircuitBreaker("openmeteo-geocoding"),
	}
}

// Resolve returns the single best match for placeName.
func (g *OpenMeteoGeocoder) Resolve(ctx context.Context, placeName string) (weather.Location, error) {
	name := strings.TrimSpace(placeName)
	if name == "" {
		return weather.Location{}, weather.ErrEmptyQuery
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("name", name)
		values.Set("count", "1")
		values.Set("language", "en")
		values.Set("format", "json")

		return http.NewRequest(http.MethodGet, g.baseURL+"?"+values.Encode(), nil)
	}

	resp, err := doRequestWithResilience(ctx, g.httpCfg, g.circuit, buildRequest)
	if err != nil {
		return weather.Location{}, fmt.Errorf("geocoding %q: %w: %w", name, weather.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var payload struct {
		Results []struct {
			Name      string  `json:"name"`
			Country   string  `json:"country"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Timezone  string  `json:"timezone"`
		} `json:"results"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Location{}, fmt.Errorf("decoding geocoding response: %w: %w", weather.ErrUnavailable, err)
	}

	if len(payload.Results) == 0 {
		return weather.Location{}, fmt.Errorf("%w: %q", weather.ErrNotFound, name)
	}

	r := payload.Results[0]
	return weather.Location{
		Name:      r.Name,
		Country:   r.Country,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Timezone:  r.Timezone,
	}, nil
}

// OpenMeteoForecaster implements weather.Fetcher with the Open-Meteo forecast API.
type OpenMeteoForecaster struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoForecaster(client *http.Client, cfg Config) *OpenMeteoForecaster {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultForecastURL
	}
	return &OpenMeteoForecaster{
		baseURL: baseURL,
		httpCfg: httpConfig(client, cfg),
		circuit: newCircuitBreaker("openmeteo-forecast"),
	}
}

// FetchWeather requests current and daily data in one call with timezone=auto.
// The first weather.ForecastDays daily entries are returned in provider order.
func (f *OpenMeteoForecaster) FetchWeather(ctx context.Context, loc weather.Location) (weather.CurrentConditions, weather.Forecast, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
		values.Set("longitude", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
		values.Set("current", currentParams)
		values.Set("daily", dailyParams)
		values.Set("timezone", "auto")

		return http.NewRequest(http.MethodGet, f.baseURL+"?"+values.Encode(), nil)
	}

	resp, err := doRequestWithResilience(ctx, f.httpCfg, f.circuit, buildRequest)
	if err != nil {
		return weather.CurrentConditions{}, nil, fmt.Errorf("forecast for %s: %w: %w", loc.DisplayName(), weather.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var payload struct {
		UTCOffsetSeconds     int    `json:"utc_offset_seconds"`
		TimezoneAbbreviation string `json:"timezone_abbreviation"`
		Current              struct {
			Time                string  `json:"time"`
			Temperature         float64 `json:"temperature_2m"`
			RelativeHumidity    float64 `json:"relative_humidity_2m"`
			ApparentTemperature float64 `json:"apparent_temperature"`
			WindSpeed           float64 `json:"wind_speed_10m"`
			WeatherCode         int     `json:"weather_code"`
		} `json:"current"`
		Daily struct {
			Time        []string  `json:"time"`
			WeatherCode []int     `json:"weather_code"`
			TempMax     []float64 `json:"temperature_2m_max"`
			TempMin     []float64 `json:"temperature_2m_min"`
		} `json:"daily"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.CurrentConditions{}, nil, fmt.Errorf("decoding forecast response: %w: %w", weather.ErrUnavailable, err)
	}

	// timezone=auto makes all times local to the location, without an offset suffix.
	zone := time.FixedZone(payload.TimezoneAbbreviation, payload.UTCOffsetSeconds)

	observed, err := time.ParseInLocation(currentTimeLayout, payload.Current.Time, zone)
	if err != nil {
		observed = time.Now().In(zone)
	}

	current := weather.CurrentConditions{
		Temperature: payload.Current.Temperature,
		FeelsLike:   payload.Current.ApparentTemperature,
		Humidity:    payload.Current.RelativeHumidity,
		WindSpeed:   payload.Current.WindSpeed,
		WeatherCode: payload.Current.WeatherCode,
		ObservedAt:  observed,
	}

	daily := payload.Daily
	n := min(len(daily.Time), len(daily.WeatherCode), len(daily.TempMax), len(daily.TempMin), weather.ForecastDays)

	forecast := make(weather.Forecast, 0, n)
	for i := 0; i < n; i++ {
		date, err := time.ParseInLocation(dailyTimeLayout, daily.Time[i], zone)
		if err != nil {
			return weather.CurrentConditions{}, nil, fmt.Errorf("parsing forecast date %q: %w: %w", daily.Time[i], weather.ErrUnavailable, err)
		}
		forecast = append(forecast, weather.DailyForecastEntry{
			Date:        date,
			WeatherCode: daily.WeatherCode[i],
			TempMax:     daily.TempMax[i],
			TempMin:     daily.TempMin[i],
		})
	}

	return current, forecast, nil
}
