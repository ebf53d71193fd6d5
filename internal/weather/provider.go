package weather

import (
	"context"
)

// Resolver maps a free-text place name to its best-matching Location.
type Resolver interface {
	Resolve(ctx context.Context, placeName string) (Location, error)
}

// Fetcher retrieves current conditions and the daily forecast for a Location.
// The returned forecast holds at most ForecastDays entries in provider order.
type Fetcher interface {
	FetchWeather(ctx context.Context, loc Location) (CurrentConditions, Forecast, error)
}

// HistoryStore records completed search results. Implementations must be safe for concurrent use.
type HistoryStore interface {
	SaveView(view View)
}
