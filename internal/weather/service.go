package weather

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Service runs search cycles (resolve, fetch, classify) and owns the resulting View.
type Service struct {
	resolver Resolver
	fetcher  Fetcher
	history  HistoryStore
	logger   *zap.Logger
	now      func() time.Time

	// generation identifies the most recent search; older completions are dropped.
	generation *atomic.Uint64

	mu     sync.RWMutex
	view   View
	cancel context.CancelFunc
	// lastQuery is the query of the most recent successful search.
	lastQuery string
}

// NewService creates a new Service. history may be nil.
func NewService(resolver Resolver, fetcher Fetcher, history HistoryStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		resolver:   resolver,
		fetcher:    fetcher,
		history:    history,
		logger:     logger,
		now:        time.Now,
		generation: atomic.NewUint64(0),
		view:       emptyView(),
	}
}

func emptyView() View {
	return View{
		Forecast: Forecast{},
		Theme:    ThemeDefault,
	}
}

// View returns a copy of the current presentation state.
func (s *Service) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view.Clone()
}

// Search runs one full cycle for query and returns the view it produced.
//
// A blank query is a no-op returning ErrEmptyQuery. Starting a search cancels
// any search still in flight; if this search is itself overtaken before it
// completes, its result is discarded and ErrSuperseded is returned.
func (s *Service) Search(ctx context.Context, query string) (View, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return s.View(), ErrEmptyQuery
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	gen := s.beginLocked(cancel)
	s.mu.Unlock()

	return s.run(ctx, gen, q)
}

// Refresh re-runs the most recent successful search, or fallback when no
// search has succeeded yet. It never interrupts a search in flight: in that
// case it returns ErrBusy without touching the view. A Search started while
// the refresh runs supersedes it as usual.
func (s *Service) Refresh(ctx context.Context, fallback string) (View, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if s.cancel != nil {
		s.mu.Unlock()
		return s.View(), ErrBusy
	}
	q := s.lastQuery
	if q == "" {
		q = strings.TrimSpace(fallback)
	}
	if q == "" {
		s.mu.Unlock()
		return s.View(), ErrEmptyQuery
	}
	gen := s.beginLocked(cancel)
	s.mu.Unlock()

	return s.run(ctx, gen, q)
}

// beginLocked registers a new in-flight search. s.mu must be held.
func (s *Service) beginLocked(cancel context.CancelFunc) uint64 {
	gen := s.generation.Inc()
	s.cancel = cancel
	s.view.Loading = true
	s.view.Error = ""
	return gen
}

func (s *Service) run(ctx context.Context, gen uint64, q string) (View, error) {
	id := uuid.NewString()
	log := s.logger.With(zap.String("search_id", id), zap.String("query", q))
	log.Debug("search started", zap.Uint64("generation", gen))
	start := s.now()

	loc, err := s.resolver.Resolve(ctx, q)
	if err != nil {
		return s.fail(gen, id, q, err, log)
	}

	current, forecast, err := s.fetcher.FetchWeather(ctx, loc)
	if err != nil {
		return s.fail(gen, id, q, err, log)
	}

	current.Classification = Classify(current.WeatherCode)
	entries := make(Forecast, 0, len(forecast))
	for i, day := range forecast {
		if i >= ForecastDays {
			break
		}
		day.Classification = Classify(day.WeatherCode)
		entries = append(entries, day)
	}

	next := View{
		SearchID:  id,
		Query:     q,
		Location:  &loc,
		Current:   &current,
		Forecast:  entries,
		Theme:     ThemeFor(current.WeatherCode),
		UpdatedAt: s.now(),
	}

	if !s.commit(gen, next) {
		log.Info("discarding stale search result", zap.String("location", loc.DisplayName()))
		return next, ErrSuperseded
	}

	log.Info("search completed",
		zap.String("location", loc.DisplayName()),
		zap.String("condition", string(current.Classification.Condition)),
		zap.Int("forecast_days", len(entries)),
		zap.Duration("took", s.now().Sub(start)),
	)

	if s.history != nil {
		s.history.SaveView(next.Clone())
	}
	return next.Clone(), nil
}

// fail clears location, conditions and forecast together and records the error message.
func (s *Service) fail(gen uint64, id, q string, cause error, log *zap.Logger) (View, error) {
	next := emptyView()
	next.SearchID = id
	next.Query = q
	next.Error = Message(cause)
	next.UpdatedAt = s.now()

	if !s.commit(gen, next) {
		log.Debug("discarding stale search failure", zap.Error(cause))
		return next, ErrSuperseded
	}

	if errors.Is(cause, ErrNotFound) || errors.Is(cause, ErrEmptyQuery) {
		log.Info("search failed", zap.Error(cause))
	} else {
		log.Warn("search failed", zap.Error(cause))
	}
	return next.Clone(), cause
}

// commit replaces the view atomically if gen is still the latest search.
func (s *Service) commit(gen uint64, next View) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation.Load() {
		return false
	}
	s.view = next
	s.cancel = nil
	if next.Ready() {
		s.lastQuery = next.Query
	}
	return true
}
