package weather

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	mu    sync.Mutex
	calls []string
	fn    func(ctx context.Context, name string) (Location, error)
}

func (r *stubResolver) Resolve(ctx context.Context, name string) (Location, error) {
	r.mu.Lock()
	r.calls = append(r.calls, name)
	r.mu.Unlock()
	return r.fn(ctx, name)
}

type stubFetcher struct {
	mu    sync.Mutex
	calls []Location
	fn    func(ctx context.Context, loc Location) (CurrentConditions, Forecast, error)
}

func (f *stubFetcher) FetchWeather(ctx context.Context, loc Location) (CurrentConditions, Forecast, error) {
	f.mu.Lock()
	f.calls = append(f.calls, loc)
	f.mu.Unlock()
	return f.fn(ctx, loc)
}

type recordingHistory struct {
	mu    sync.Mutex
	views []View
}

func (h *recordingHistory) SaveView(v View) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.views = append(h.views, v)
}

var delhi = Location{Name: "Delhi", Country: "India", Latitude: 28.65195, Longitude: 77.23149, Timezone: "Asia/Kolkata"}

func delhiResolver() *stubResolver {
	return &stubResolver{fn: func(context.Context, string) (Location, error) { return delhi, nil }}
}

func sevenDayFetcher() *stubFetcher {
	return &stubFetcher{fn: func(context.Context, Location) (CurrentConditions, Forecast, error) {
		start := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
		var fc Forecast
		for i := 0; i < 7; i++ {
			fc = append(fc, DailyForecastEntry{
				Date:        start.AddDate(0, 0, i),
				WeatherCode: []int{0, 2, 61, 95, 71, 3, 45}[i],
				TempMax:     32 - float64(i),
				TempMin:     21 - float64(i),
			})
		}
		return CurrentConditions{
			Temperature: 30.4,
			FeelsLike:   33.1,
			Humidity:    48,
			WindSpeed:   7.9,
			WeatherCode: 1,
			ObservedAt:  start.Add(12 * time.Hour),
		}, fc, nil
	}}
}

func TestSearch_Success(t *testing.T) {
	history := &recordingHistory{}
	svc := NewService(delhiResolver(), sevenDayFetcher(), history, nil)

	view, err := svc.Search(context.Background(), "  Delhi ")
	require.NoError(t, err)

	require.True(t, view.Ready())
	assert.Equal(t, "Delhi", view.Query)
	assert.Equal(t, "India", view.Location.Country)
	assert.Equal(t, ConditionPartlyCloudy, view.Current.Classification.Condition)
	assert.Equal(t, ThemeSun, view.Theme)
	assert.Empty(t, view.Error)
	assert.False(t, view.Loading)
	assert.NotEmpty(t, view.SearchID)

	require.Len(t, view.Forecast, ForecastDays)
	for i, day := range view.Forecast {
		assert.Equal(t, Classify(day.WeatherCode), day.Classification)
		if i > 0 {
			assert.False(t, day.Date.Before(view.Forecast[i-1].Date), "forecast out of order at %d", i)
		}
	}

	assert.Equal(t, view, svc.View())
	require.Len(t, history.views, 1)
	assert.Equal(t, view.SearchID, history.views[0].SearchID)
}

func TestSearch_BlankQueryIsNoop(t *testing.T) {
	resolver := delhiResolver()
	fetcher := sevenDayFetcher()
	svc := NewService(resolver, fetcher, nil, nil)

	_, err := svc.Search(context.Background(), "Delhi")
	require.NoError(t, err)
	before := svc.View()

	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := svc.Search(context.Background(), q)
		assert.ErrorIs(t, err, ErrEmptyQuery)
	}

	assert.Len(t, resolver.calls, 1)
	assert.Len(t, fetcher.calls, 1)
	assert.Equal(t, before, svc.View())
}

func TestSearch_GeocodingFailureClearsState(t *testing.T) {
	resolver := delhiResolver()
	fetcher := sevenDayFetcher()
	svc := NewService(resolver, fetcher, nil, nil)

	_, err := svc.Search(context.Background(), "Delhi")
	require.NoError(t, err)

	resolver.fn = func(_ context.Context, name string) (Location, error) {
		return Location{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	view, err := svc.Search(context.Background(), "Atlantis")
	require.ErrorIs(t, err, ErrNotFound)

	assert.Nil(t, view.Location)
	assert.Nil(t, view.Current)
	assert.Empty(t, view.Forecast)
	assert.Equal(t, "City not found!", view.Error)
	assert.Equal(t, ThemeDefault, view.Theme)
	assert.Len(t, fetcher.calls, 1, "forecast must not be fetched after a failed geocode")
	assert.Equal(t, view, svc.View())
}

func TestSearch_ForecastFailureClearsLocation(t *testing.T) {
	history := &recordingHistory{}
	fetcher := &stubFetcher{fn: func(context.Context, Location) (CurrentConditions, Forecast, error) {
		return CurrentConditions{}, nil, fmt.Errorf("forecast: %w", ErrUnavailable)
	}}
	svc := NewService(delhiResolver(), fetcher, history, nil)

	view, err := svc.Search(context.Background(), "Delhi")
	require.ErrorIs(t, err, ErrUnavailable)

	assert.Nil(t, view.Location)
	assert.Nil(t, view.Current)
	assert.Empty(t, view.Forecast)
	assert.Equal(t, "Weather not available!", view.Error)
	assert.False(t, view.Loading)
	assert.Empty(t, history.views)
}

func TestSearch_NewSearchSupersedesInFlight(t *testing.T) {
	started := make(chan struct{})
	resolver := &stubResolver{fn: func(ctx context.Context, name string) (Location, error) {
		if name == "Slowville" {
			close(started)
			<-ctx.Done()
			return Location{}, ctx.Err()
		}
		return delhi, nil
	}}
	svc := NewService(resolver, sevenDayFetcher(), nil, nil)

	type result struct {
		view View
		err  error
	}
	done := make(chan result, 1)
	go func() {
		v, err := svc.Search(context.Background(), "Slowville")
		done <- result{v, err}
	}()

	<-started
	assert.True(t, svc.View().Loading)

	view, err := svc.Search(context.Background(), "Delhi")
	require.NoError(t, err)
	assert.Equal(t, "Delhi", view.Location.Name)

	select {
	case r := <-done:
		assert.ErrorIs(t, r.err, ErrSuperseded)
	case <-time.After(2 * time.Second):
		t.Fatal("superseded search did not return")
	}

	got := svc.View()
	require.True(t, got.Ready())
	assert.Equal(t, "Delhi", got.Location.Name)
	assert.Empty(t, got.Error)
}

func TestSearch_ForecastTruncatedToFiveDays(t *testing.T) {
	svc := NewService(delhiResolver(), sevenDayFetcher(), nil, nil)

	view, err := svc.Search(context.Background(), "Delhi")
	require.NoError(t, err)
	assert.Len(t, view.Forecast, 5)
	assert.Equal(t, 0, view.Forecast[0].WeatherCode)
	assert.Equal(t, 71, view.Forecast[4].WeatherCode)
}

func TestView_ReturnsCopy(t *testing.T) {
	svc := NewService(delhiResolver(), sevenDayFetcher(), nil, nil)
	_, err := svc.Search(context.Background(), "Delhi")
	require.NoError(t, err)

	v := svc.View()
	v.Location.Name = "Mutated"
	v.Forecast[0].TempMax = -100

	again := svc.View()
	assert.Equal(t, "Delhi", again.Location.Name)
	assert.NotEqual(t, -100.0, again.Forecast[0].TempMax)
}

func TestRefresh_SkipsWhileSearchInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	resolver := &stubResolver{fn: func(_ context.Context, name string) (Location, error) {
		if name == "Paris" {
			close(started)
			<-release
			return Location{Name: "Paris", Country: "France"}, nil
		}
		return delhi, nil
	}}
	svc := NewService(resolver, sevenDayFetcher(), nil, nil)

	type result struct {
		view View
		err  error
	}
	done := make(chan result, 1)
	go func() {
		v, err := svc.Search(context.Background(), "Paris")
		done <- result{v, err}
	}()
	<-started

	_, err := svc.Refresh(context.Background(), "Delhi")
	assert.ErrorIs(t, err, ErrBusy)
	close(release)

	r := <-done
	require.NoError(t, r.err)
	assert.Equal(t, "Paris", r.view.Location.Name)
	assert.Equal(t, "Paris", svc.View().Location.Name)
	assert.Equal(t, []string{"Paris"}, resolver.calls)
}

func TestRefresh_UsesLastSuccessfulQuery(t *testing.T) {
	resolver := &stubResolver{fn: func(_ context.Context, name string) (Location, error) {
		if name == "Atlantis" {
			return Location{}, ErrNotFound
		}
		return Location{Name: name}, nil
	}}
	svc := NewService(resolver, sevenDayFetcher(), nil, nil)

	view, err := svc.Refresh(context.Background(), "Delhi")
	require.NoError(t, err)
	assert.Equal(t, "Delhi", view.Location.Name, "falls back before any search succeeded")

	_, err = svc.Search(context.Background(), "Oslo")
	require.NoError(t, err)
	_, err = svc.Search(context.Background(), "Atlantis")
	require.ErrorIs(t, err, ErrNotFound)

	view, err = svc.Refresh(context.Background(), "Delhi")
	require.NoError(t, err)
	assert.Equal(t, "Oslo", view.Query)
	assert.Equal(t, []string{"Delhi", "Oslo", "Atlantis", "Oslo"}, resolver.calls)
}

func TestRefresh_NothingToRefresh(t *testing.T) {
	resolver := delhiResolver()
	svc := NewService(resolver, sevenDayFetcher(), nil, nil)

	_, err := svc.Refresh(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.Empty(t, resolver.calls)
	assert.False(t, svc.View().Loading)
}
