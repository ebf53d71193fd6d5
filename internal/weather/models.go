package weather

import (
	"time"
)

// ForecastDays is the number of daily entries kept from the provider's series.
const ForecastDays = 5

// Condition represents a normalized weather condition derived from a WMO weather code.
type Condition string

const (
	ConditionUnknown          Condition = "unknown"
	ConditionClear            Condition = "clear"
	ConditionPartlyCloudy     Condition = "partly-cloudy"
	ConditionOvercast         Condition = "overcast"
	ConditionFog              Condition = "fog"
	ConditionDrizzle          Condition = "drizzle"
	ConditionFreezingDrizzle  Condition = "freezing-drizzle"
	ConditionRain             Condition = "rain"
	ConditionFreezingRain     Condition = "freezing-rain"
	ConditionSnow             Condition = "snow"
	ConditionSnowGrains       Condition = "snow-grains"
	ConditionRainShowers      Condition = "rain-showers"
	ConditionSnowShowers      Condition = "snow-showers"
	ConditionThunderstorm     Condition = "thunderstorm"
	ConditionThunderstormHail Condition = "thunderstorm-hail"
)

// Classification is the human-readable rendering of a weather code.
type Classification struct {
	Condition Condition `json:"condition"`
	Label     string    `json:"label"`
	Icon      string    `json:"icon"`
}

// Theme is the visual theme tag selected from the current weather code.
type Theme string

const (
	ThemeDefault Theme = "default"
	ThemeStorm   Theme = "storm"
	ThemeRain    Theme = "rain"
	ThemeSnow    Theme = "snow"
	ThemeSun     Theme = "sun"
	ThemeCloud   Theme = "cloud"
)

// Location is a resolved place. It is never mutated after the resolver builds it.
type Location struct {
	Name      string  `json:"name"`
	Country   string  `json:"country,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// DisplayName returns "Name, Country", or just the name when the country is unknown.
func (l Location) DisplayName() string {
	if l.Country == "" {
		return l.Name
	}
	return l.Name + ", " + l.Country
}

// CurrentConditions holds the provider's current observation.
type CurrentConditions struct {
	Temperature    float64        `json:"temperatureC"`
	FeelsLike      float64        `json:"feelsLikeC"`
	Humidity       float64        `json:"humidityPercent"`
	WindSpeed      float64        `json:"windSpeedKmh"`
	WeatherCode    int            `json:"weatherCode"`
	ObservedAt     time.Time      `json:"observedAt"`
	Classification Classification `json:"classification"`
}

// DailyForecastEntry is one day's aggregated summary.
type DailyForecastEntry struct {
	Date           time.Time      `json:"date"`
	WeatherCode    int            `json:"weatherCode"`
	TempMax        float64        `json:"tempMaxC"`
	TempMin        float64        `json:"tempMinC"`
	Classification Classification `json:"classification"`
}

// Forecast is a chronologically ordered list of daily entries, as given by the provider.
type Forecast []DailyForecastEntry

// View is the presentation state produced by one search cycle.
// Location, Current and Forecast are either all set or all cleared.
type View struct {
	SearchID  string             `json:"searchId,omitempty"`
	Query     string             `json:"query,omitempty"`
	Location  *Location          `json:"location"`
	Current   *CurrentConditions `json:"current"`
	Forecast  Forecast           `json:"forecast"`
	Theme     Theme              `json:"theme"`
	Loading   bool               `json:"loading"`
	Error     string             `json:"error,omitempty"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// Ready reports whether the view carries a complete result.
func (v View) Ready() bool {
	return v.Location != nil && v.Current != nil && len(v.Forecast) > 0
}

// Clone returns a deep copy safe to hand to other goroutines.
func (v View) Clone() View {
	out := v
	if v.Location != nil {
		loc := *v.Location
		out.Location = &loc
	}
	if v.Current != nil {
		cur := *v.Current
		out.Current = &cur
	}
	out.Forecast = make(Forecast, len(v.Forecast))
	copy(out.Forecast, v.Forecast)
	return out
}
