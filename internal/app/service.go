// Package app wires the timer to its collaborators: settings, statistics,
// the session journal, feedback and background jobs.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"

	"focustimer/internal/core/model"
	"focustimer/internal/core/stats"
	"focustimer/internal/core/timer"
	"focustimer/internal/logfields"
	"focustimer/internal/metrics"
	"focustimer/internal/platform"
	"focustimer/internal/settings"
)

// Journal records every session the timer produces.
type Journal interface {
	AppendSession(ctx context.Context, record model.SessionRecord) error
}

// Options wires a Service. Settings and Stats are required.
type Options struct {
	Settings   *settings.Store
	Stats      *stats.Aggregator
	Journal    Journal
	Dispatcher timer.Dispatcher

	// Idle auto-pause is disabled when IdlePauseAfter is zero or Idle is nil.
	Idle              platform.IdleProvider
	IdlePauseAfter    time.Duration
	IdleCheckInterval time.Duration

	TickInterval time.Duration
	Location     *time.Location
	Clock        clockwork.Clock
	Rand         timer.RandomSource
	Logger       *slog.Logger
	Metrics      metrics.Recorder
}

// Service owns the running timer.
type Service struct {
	options   Options
	timer     *timer.Timer
	logger    *slog.Logger
	scheduler gocron.Scheduler

	idleDisabled bool
}

// New builds the timer from the current settings and subscribes it to
// settings changes.
func New(options Options) (*Service, error) {
	if options.Settings == nil || options.Stats == nil {
		return nil, fmt.Errorf("app: settings and stats are required")
	}
	if options.Clock == nil {
		options.Clock = clockwork.NewRealClock()
	}
	if options.Location == nil {
		options.Location = time.Local
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.Metrics == nil {
		options.Metrics = metrics.NoopRecorder{}
	}
	if options.IdleCheckInterval <= 0 {
		options.IdleCheckInterval = 5 * time.Second
	}

	service := &Service{options: options, logger: options.Logger}
	service.timer = timer.New(options.Settings.Get(), timer.Config{
		TickInterval: options.TickInterval,
		Clock:        options.Clock,
		Rand:         options.Rand,
		Dispatcher:   options.Dispatcher,
		OnSession:    service.handleSession,
		Logger:       options.Logger,
		Metrics:      options.Metrics,
	})
	options.Settings.OnChange(service.timer.UpdateSettings)

	scheduler, err := gocron.NewScheduler(
		gocron.WithClock(options.Clock),
		gocron.WithLocation(options.Location),
		gocron.WithLogger(gocronLogger{options.Logger}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	service.scheduler = scheduler
	if err := service.registerJobs(); err != nil {
		_ = scheduler.Shutdown()
		return nil, err
	}
	return service, nil
}

// Timer exposes the state machine for UI and CLI control.
func (s *Service) Timer() *timer.Timer {
	return s.timer
}

// Stats exposes the aggregator.
func (s *Service) Stats() *stats.Aggregator {
	return s.options.Stats
}

// Run drives the timer and background jobs until ctx is cancelled. Any
// running phase is stopped on the way out.
func (s *Service) Run(ctx context.Context) error {
	s.logger.Info("Starting scheduler")
	s.scheduler.Start()

	s.timer.Run(ctx)

	s.timer.Stop()
	s.logger.Info("Stopping scheduler")
	if err := s.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("stop scheduler: %w", err)
	}
	return nil
}

// handleSession runs on the timer's delivery path after each completed phase.
// Only focus sessions reach the aggregator; the journal keeps everything.
func (s *Service) handleSession(record model.SessionRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.options.Journal != nil {
		if err := s.options.Journal.AppendSession(ctx, record); err != nil {
			s.logger.Warn("Failed to journal session",
				logfields.SessionID(record.ID),
				logfields.SessionType(string(record.Type)),
				logfields.Error(err))
		}
	}

	if record.Type != model.SessionFocus {
		return
	}
	snapshot, err := s.options.Stats.RecordSession(ctx, record)
	if err != nil {
		s.logger.Warn("Failed to persist statistics", logfields.SessionID(record.ID), logfields.Error(err))
	}
	s.logger.Info("Focus session recorded",
		logfields.SessionID(record.ID),
		slog.Int("total_sessions", snapshot.TotalSessions),
		slog.Int("consecutive_days", snapshot.ConsecutiveDays))
}
