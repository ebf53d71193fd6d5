package weather

import "errors"

var (
	// ErrEmptyQuery is returned for blank place names. No request is issued.
	ErrEmptyQuery = errors.New("empty place name")
	// ErrNotFound is returned when geocoding yields no match.
	ErrNotFound = errors.New("city not found")
	// ErrUnavailable is returned when a provider request does not succeed.
	ErrUnavailable = errors.New("weather not available")
	// ErrSuperseded is returned by a search whose result was discarded because a newer search started.
	ErrSuperseded = errors.New("search superseded by a newer request")
	// ErrBusy is returned by Refresh when a search is already in flight.
	ErrBusy = errors.New("a search is already in progress")
)

// Message converts a search error into the text shown to users.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyQuery):
		return "Please enter a city name."
	case errors.Is(err, ErrNotFound):
		return "City not found!"
	case errors.Is(err, ErrUnavailable):
		return "Weather not available!"
	default:
		return "Something went wrong!"
	}
}
