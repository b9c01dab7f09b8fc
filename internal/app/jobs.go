package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"focustimer/internal/core/timer"
	"focustimer/internal/logfields"
	"focustimer/internal/platform"
)

const (
	jobIdlePause     = "idle-pause"
	jobStreakRefresh = "streak-refresh"
)

func (s *Service) registerJobs() error {
	if s.options.Idle != nil && s.options.IdlePauseAfter > 0 {
		_, err := s.scheduler.NewJob(
			gocron.DurationJob(s.options.IdleCheckInterval),
			gocron.NewTask(s.checkIdle),
			gocron.WithName(jobIdlePause),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return fmt.Errorf("failed to create idle job: %w", err)
		}
	}

	// A few seconds past midnight so the new day key is unambiguous.
	_, err := s.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 0, 5))),
		gocron.NewTask(s.refreshStreak),
		gocron.WithName(jobStreakRefresh),
	)
	if err != nil {
		return fmt.Errorf("failed to create streak job: %w", err)
	}
	return nil
}

// checkIdle pauses a focus session once the user has been away for
// IdlePauseAfter. Breaks keep running.
func (s *Service) checkIdle() {
	if s.idleDisabled {
		return
	}
	if s.timer.Status().State != timer.StateFocusing {
		return
	}

	idle, err := s.options.Idle.IdleDuration()
	if errors.Is(err, platform.ErrIdleUnsupported) {
		s.idleDisabled = true
		s.logger.Info("Idle detection unavailable, auto-pause disabled", logfields.Job(jobIdlePause))
		return
	}
	if err != nil {
		s.logger.Debug("Idle check failed", logfields.Job(jobIdlePause), logfields.Error(err))
		return
	}
	if idle < s.options.IdlePauseAfter {
		return
	}

	if err := s.timer.Pause(); err != nil {
		s.logger.Debug("Idle pause skipped", logfields.Job(jobIdlePause), logfields.Error(err))
		return
	}
	s.logger.Info("Paused focus session after inactivity",
		logfields.Job(jobIdlePause), slog.Duration("idle", idle.Round(time.Second)))
}

func (s *Service) refreshStreak() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.options.Stats.RefreshStreak(ctx); err != nil {
		s.logger.Warn("Failed to refresh streak", logfields.Job(jobStreakRefresh), logfields.Error(err))
		return
	}
	s.logger.Debug("Streak refreshed",
		logfields.Job(jobStreakRefresh),
		slog.Int("consecutive_days", s.options.Stats.Snapshot().ConsecutiveDays))
}

// gocronLogger routes scheduler logs through slog.
type gocronLogger struct {
	logger *slog.Logger
}

func (l gocronLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l gocronLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }
func (l gocronLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l gocronLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
