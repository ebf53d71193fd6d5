package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// Refresher re-runs the latest successful search without interrupting one in
// flight; *weather.Service satisfies it.
type Refresher interface {
	Refresh(ctx context.Context, fallback string) (weather.View, error)
}

// Scheduler loads the default city on start and optionally refreshes the
// most recently successful search periodically.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Refresher
	city      string
	interval  time.Duration
	timeout   time.Duration
	logger    *zap.Logger
}

// New creates a new Scheduler. An interval <= 0 runs the default search once.
func New(city string, interval time.Duration, service Refresher, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		city:      city,
		interval:  interval,
		timeout:   30 * time.Second,
		logger:    logger.Named("scheduler"),
	}
}

// Start runs the default search immediately and schedules refreshes when an interval is set.
// Without a default city, refreshes begin once a search has succeeded.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		if s.city == "" {
			s.logger.Info("no default city configured; nothing to schedule")
			return nil
		}
		go s.run()
		return nil
	}

	// gocron v1 runs the first execution immediately.
	if _, err := s.scheduler.Every(s.interval).SingletonMode().Do(s.run); err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	view, err := s.service.Refresh(ctx, s.city)
	switch {
	case err == nil:
		s.logger.Debug("refreshed city", zap.String("city", view.Query))
	case errors.Is(err, weather.ErrBusy), errors.Is(err, weather.ErrSuperseded):
		s.logger.Debug("skipping refresh; a user search is in progress")
	case errors.Is(err, weather.ErrEmptyQuery):
		s.logger.Debug("nothing to refresh yet")
	default:
		s.logger.Warn("scheduled search failed", zap.String("city", view.Query), zap.Error(err))
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
